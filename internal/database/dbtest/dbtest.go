// Package dbtest provides a seeded in-memory store for tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/music-request-api/internal/database"
)

// Open returns an in-memory SQLite store with the schema created and
// database.SampleData loaded.  The store is closed when the test finishes.
func Open(t testing.TB) *sql.DB {
	t.Helper()

	db, err := database.Open(database.Options{Driver: database.DriverSQLite, Path: ":memory:"})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	if err := database.CreateSchema(ctx, db, database.DriverSQLite); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	if err := database.Seed(ctx, db, database.SampleData(), bcrypt.MinCost); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}
