// Package testutil holds helpers for integration tests. Helpers skip the test
// when TEST_DATABASE_URL is not set, so unit runs never need a database.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/tripsearch/migrations"
)

// NewPool returns a pool on TEST_DATABASE_URL that is closed with the test.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("testutil.NewPool: open pool: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}

	t.Cleanup(pool.Close)
	return pool
}

// MustMigrate applies every pending migration to dsn. It is meant for
// TestMain, where no *testing.T is available, and panics on failure.
func MustMigrate(dsn string) {
	if _, err := migrations.Up(context.Background(), dsn); err != nil {
		panic("testutil.MustMigrate: " + err.Error())
	}
}
