package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/yourusername/tradescore/internal/config"
)

// SetupTestDB creates a test database connection and verifies it.
// Tests using it are skipped unless TRADESCORE_TEST_DB is set, so the
// unit suite stays runnable without a database.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()
	if os.Getenv("TRADESCORE_TEST_DB") == "" {
		t.Skip("TRADESCORE_TEST_DB not set; skipping database-backed test")
	}

	cfg, err := config.Load(os.Getenv("TRADESCORE_TEST_CONFIG"))
	if err != nil {
		t.Fatalf("failed to load test config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		t.Fatalf("failed to create test database connection: %v", err)
	}

	verifyCtx, verifyCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer verifyCancel()
	if err := db.Ping(verifyCtx); err != nil {
		db.Close()
		t.Fatalf("failed to ping test database: %v", err)
	}

	return db
}

// TeardownTestDB closes the database connection cleanly
func TeardownTestDB(t *testing.T, db *DB) {
	t.Helper()
	db.Close()
}
