// Package dbtest opens a migrated Postgres for store tests. Tests skip unless
// TEST_DATABASE_URL is set.
package dbtest

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"timeclock/internal/platform/db"
	"timeclock/migrations"
)

func Open(t *testing.T) *db.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, db.Migrate(ctx, pool, migrations.FS))
	return pool
}

// Employee inserts an active hourly employee with a fresh id.
func Employee(t *testing.T, q db.Querier, hourlyRate string) string {
	t.Helper()
	id := "emp-" + uuid.NewString()
	err := db.UpsertEmployees(context.Background(), q, []db.SeedEmployee{{
		ID:           id,
		Name:         "Store Test",
		HourlyRate:   hourlyRate,
		Status:       "active",
		Compensation: "hourly",
	}})
	require.NoError(t, err)
	return id
}
