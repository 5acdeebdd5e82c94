package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/lib/pq"

	dbsetup "github.com/healthnet-hms/clinic-service/internal/db"
)

// SetupTestDB creates a connection to the test database and ensures the
// healthnet schema exists. Connection parameters come from TEST_DB_* env vars
// with local defaults.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("TEST_DB_HOST", "localhost")
	port := envOr("TEST_DB_PORT", "5432")
	user := envOr("TEST_DB_USER", "postgres")
	password := envOr("TEST_DB_PASSWORD", "postgres")
	name := envOr("TEST_DB_NAME", "healthnet_test")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, name)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	if err := dbsetup.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("Failed to ensure test schema: %v", err)
	}

	return db
}

// CleanupTestDB truncates all application tables. Activity and appointments
// go first so the person tables can be emptied despite the foreign keys.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	t.Helper()

	tables := []string{
		"healthnet.activity_log",
		"healthnet.appointments",
		"healthnet.patients",
		"healthnet.doctors",
		"healthnet.staff",
		"healthnet.users",
	}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			t.Logf("Warning: Failed to clean up %s: %v", table, err)
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
