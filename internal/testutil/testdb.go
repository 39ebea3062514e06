package testutil

import (
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/jmertens/billsight/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations
// applied. The database is closed when the test completes.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	conn, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
	})
	return conn
}
