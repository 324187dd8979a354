package storage

import (
	"strings"
	"testing"

	"msgboard/internal/config"
)

func TestOpenMigrateAndEnsureMessages(t *testing.T) {
	name := strings.ReplaceAll(t.Name(), "/", "_")
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Driver: "sqlite3",
			Path:   "file:" + name + "?mode=memory&cache=shared",
		},
	}
	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	// Both migrations are idempotent, so repeated runs must succeed.
	for i := 0; i < 2; i++ {
		if err := Migrate(db, "sqlite3"); err != nil {
			t.Fatalf("migrate run %d: %v", i, err)
		}
		if err := EnsureMessagesTable(db, "sqlite3"); err != nil {
			t.Fatalf("ensure messages run %d: %v", i, err)
		}
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM messages`).Scan(&count); err != nil {
		t.Fatalf("query messages table: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty messages table, got %d rows", count)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: "postgres"},
	}
	if _, err := Open(cfg); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}
