package commands

import (
	"github.com/spf13/cobra"

	"expense-tracker-go-be/database"
	"expense-tracker-go-be/logging"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.DatabaseDriver, cfg.DSN(), log)
			if err != nil {
				return err
			}
			defer database.Close(db)

			log.Info().Str(logging.FieldOperation, logging.OpMigrate).Msg("Running migrations...")
			if err := database.Migrate(db); err != nil {
				return err
			}
			log.Info().Str(logging.FieldOperation, logging.OpMigrate).Msg("Database migrated successfully")
			return nil
		},
	}
}
