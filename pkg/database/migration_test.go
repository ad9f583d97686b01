package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/babyshop/db"
	"github.com/Ramsey-B/babyshop/pkg/database"
	"github.com/Ramsey-B/babyshop/pkg/database/dbtest"
)

func TestMigrationsCreateSchema(t *testing.T) {
	instance := dbtest.New(t)

	for _, table := range []string{"admins", "carte_bancaires", "produits", "produit_gestionnaires", "commandes", "ligne_commandes", "avis"} {
		var count int
		err := instance.GetContext(context.Background(), &count,
			"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s", table)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	instance := dbtest.New(t)

	migrations := database.NewMigrationService(dbtest.Logger(), &database.MigrationConfig{Embedded: db.Migrations})
	assert.NoError(t, migrations.Run(instance))
}

func TestLatestVersion(t *testing.T) {
	for _, dir := range []string{"pg", "sqlite"} {
		version, err := database.LatestVersion(db.Migrations, dir)
		require.NoError(t, err)
		assert.Equal(t, 1, version)
	}

	_, err := database.LatestVersion(db.Migrations, "missing")
	assert.Error(t, err)
}

func TestFlavorFor(t *testing.T) {
	assert.Equal(t, "SQLite", database.FlavorFor(database.DriverSQLite).String())
	assert.Equal(t, "PostgreSQL", database.FlavorFor(database.DriverPostgres).String())
}

func TestTransactionNesting(t *testing.T) {
	instance := dbtest.New(t)
	ctx := context.Background()

	ctx, outer, err := instance.GetTx(ctx, nil)
	require.NoError(t, err)

	_, inner, err := instance.GetTx(ctx, nil)
	require.NoError(t, err)

	_, err = inner.ExecContext(ctx, "INSERT INTO produits (nom) VALUES (?)", "Poussette")
	require.NoError(t, err)

	// the nested commit is a no-op, the outer transaction stays open
	require.NoError(t, inner.Commit(ctx))
	assert.True(t, outer.IsOpen())

	require.NoError(t, outer.Rollback(ctx))
	assert.False(t, outer.IsOpen())

	var count int
	require.NoError(t, instance.GetContext(context.Background(), &count, "SELECT COUNT(*) FROM produits"))
	assert.Equal(t, 0, count)
}

func TestQueryerFrom(t *testing.T) {
	instance := dbtest.New(t)

	assert.Same(t, instance, database.QueryerFrom(context.Background(), instance))

	ctx, tx, err := instance.GetTx(context.Background(), nil)
	require.NoError(t, err)
	assert.NotSame(t, instance, database.QueryerFrom(ctx, instance))

	require.NoError(t, tx.Commit(ctx))
	assert.Same(t, instance, database.QueryerFrom(ctx, instance))
}
