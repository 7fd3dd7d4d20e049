package testutil

import (
	"context"
	"testing"

	"github.com/thenoetrevino/snipboard/internal/database"
)

// SetupTestStore creates a local store on an in-memory database.
// The database is closed when the test ends.
func SetupTestStore(t *testing.T, opts ...database.StoreOption) *database.Store {
	t.Helper()

	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	return database.NewStore(db, opts...)
}
