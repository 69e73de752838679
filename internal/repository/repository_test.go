package repository_test

import (
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// openDatabase starts a postgres container with every migration applied and
// returns a pool to it. Both are released when t finishes.
func openDatabase(t testing.TB) *pgxpool.Pool {
	t.Helper()
	ctx := t.Context()

	migrations, err := filepath.Glob("../migrations/*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithDatabase("storefront"),
		postgres.WithInitScripts(migrations...),
	)
	testcontainers.CleanupContainer(t, postgresContainer)
	require.NoError(t, err, "postgres.Run")

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "pc.ConnectionString")

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err, "pgxpool.New")
	t.Cleanup(pool.Close)

	return pool
}
