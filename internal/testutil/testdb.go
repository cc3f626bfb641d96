package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/pagepace/internal/db"
)

// NewTestDB opens a migrated in-memory database that is closed with t.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
