// Package testutil holds helpers shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"expense-tracker-go-be/config"
	"expense-tracker-go-be/database"
	"expense-tracker-go-be/logging"
)

// NewDB opens a migrated SQLite database in a temp dir that is closed when
// the test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(config.DriverSQLite, filepath.Join(t.TempDir(), "tracker.db"), logging.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
