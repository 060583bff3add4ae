package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-tracker-go-be/config"
	"expense-tracker-go-be/database"
	"expense-tracker-go-be/logging"
)

func TestRootHasSubcommands(t *testing.T) {
	root := NewRootCmd()

	names := []string{}
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "migrate")

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.NotNil(t, serve.Flags().Lookup("skip-migrate"))
}

func TestMigrateCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	dbPath := filepath.Join(dir, "tracker.db")
	t.Setenv("DATABASE_DRIVER", config.DriverSQLite)
	t.Setenv("DATABASE_URL", dbPath)
	t.Setenv("JWT_SECRET", "commands-test-secret-0123")
	t.Setenv("PORT", "3000")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "error")

	root := NewRootCmd()
	root.SetArgs([]string{"migrate"})
	require.NoError(t, root.Execute())

	db, err := database.Open(config.DriverSQLite, dbPath, logging.Nop())
	require.NoError(t, err)
	defer database.Close(db)

	assert.True(t, db.Migrator().HasTable("users"))
	assert.True(t, db.Migrator().HasTable("transactions"))
	assert.True(t, db.Migrator().HasTable("categories"))
}

func TestMigrateRejectsInvalidConfig(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATABASE_DRIVER", config.DriverSQLite)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("LOG_LEVEL", "error")

	root := NewRootCmd()
	root.SetArgs([]string{"migrate"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}
