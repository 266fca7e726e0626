package database

import (
	"path/filepath"
	"runtime"
	"testing"
)

// migrationsDir points at the repository's migrations directory
func migrationsDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("unable to locate test file")
	}
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}

// TestDatabaseIntegration tests the complete database lifecycle
func TestDatabaseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "test_integration.db")

	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(migrationsDir(t)); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Running twice must be a no-op
	if err := db.RunMigrations(migrationsDir(t)); err != nil {
		t.Fatalf("Second migration run failed: %v", err)
	}

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", "kv_entries").Scan(&name)
	if err != nil {
		t.Fatalf("Table kv_entries not found: %v", err)
	}

	// Upsert twice, last write wins
	for _, value := range []string{"first", "second"} {
		if _, err := db.Exec(db.Dialect.UpsertEntryQuery(), "ns", "k", value); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	var value string
	if err := db.QueryRow("SELECT entry_value FROM kv_entries WHERE namespace = ? AND entry_key = ?", "ns", "k").Scan(&value); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if value != "second" {
		t.Errorf("value = %q, want second", value)
	}
}

// TestDatabaseTransactions tests transaction support
func TestDatabaseTransactions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := Initialize(filepath.Join(t.TempDir(), "test_transactions.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(migrationsDir(t)); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	if _, err := tx.Exec(tx.GetDialect().UpsertEntryQuery(), "ns", "rolled", "back"); err != nil {
		tx.Rollback()
		t.Fatalf("Failed to insert in transaction: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Failed to rollback: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM kv_entries WHERE entry_key = ?", "rolled").Scan(&count); err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected rolled back row to be absent, found %d", count)
	}
}
