package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the tracker CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tracker",
		Short:         "Personal expense tracker API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())

	return root
}
