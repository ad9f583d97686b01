// Package dbtest opens migrated SQLite databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/babyshop/db"
	"github.com/Ramsey-B/babyshop/pkg/database"
)

// Logger returns a logger that discards everything.
func Logger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

// New opens a fresh SQLite database under t.TempDir and applies the
// embedded migrations. The database is closed when the test ends.
func New(t *testing.T) database.DB {
	t.Helper()

	logger := Logger()
	instance, err := database.Open(context.Background(), database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "babyshop.db"),
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = instance.Close() })

	migrations := database.NewMigrationService(logger, &database.MigrationConfig{Embedded: db.Migrations})
	require.NoError(t, migrations.Run(instance))

	return instance
}
