package database

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/snipboard/internal/models"
	"github.com/thenoetrevino/snipboard/internal/persistence"
)

// ============================================================================
// Local Test Helpers (to avoid import cycle with testutil)
// ============================================================================

var storeNow = time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func setupTestStore(t *testing.T, opts ...StoreOption) *Store {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	base := []StoreOption{
		WithClock(func() time.Time { return storeNow }),
		WithIDGenerator(sequentialIDs()),
	}
	return NewStore(db, append(base, opts...)...)
}

// ============================================================================
// Seeding
// ============================================================================

func TestLoadAll_SeedsFirstBoard(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	snippets, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, snippets, 3)

	assert.Equal(t, "Python Dict Sort", snippets[0].Title, "newest sample first")
	assert.Equal(t, storeNow.UnixMilli()+2, snippets[0].OrderKey)

	categories := map[string]int{}
	for _, s := range snippets {
		categories[s.Category]++
		assert.True(t, s.Color.Valid())
	}
	assert.Equal(t, map[string]int{"Alle Snippets": 2, "In Uitvoering": 1}, categories)

	again, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, snippets, again, "seeding happens once")
}

func TestLoadAll_EmptyBoardIsNotReseeded(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAll(ctx, nil))
	snippets, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, snippets)
}

func TestLoadAll_WithoutSeed(t *testing.T) {
	store := setupTestStore(t, WithoutSeed())

	snippets, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snippets)
}

func TestLoadAll_SeedUsesRenamedColumns(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	settings := models.DefaultSettings()
	settings.ColumnTitles = []string{"Inbox", "Doing"}
	require.NoError(t, store.SaveSettings(ctx, settings))

	snippets, err := store.LoadAll(ctx)
	require.NoError(t, err)
	for _, s := range snippets {
		assert.Contains(t, []string{"Inbox", "Doing"}, s.Category)
	}
}

// ============================================================================
// CRUD
// ============================================================================

func TestCreate_LandsOnTop(t *testing.T) {
	store := setupTestStore(t, WithoutSeed())
	ctx := context.Background()

	created, err := store.Create(ctx, models.Draft{Title: "T", Code: "c", Color: "Weird", Category: "Review"})
	require.NoError(t, err)

	assert.Equal(t, "id-1", created.ID)
	assert.Equal(t, storeNow.UnixMilli()+models.CrossColumnOffset, created.OrderKey)
	assert.Equal(t, models.ColorDefault, created.Color)

	snippets, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Snippet{created}, snippets)
}

func TestUpdate(t *testing.T) {
	store := setupTestStore(t, WithoutSeed())
	ctx := context.Background()

	created, err := store.Create(ctx, models.Draft{Title: "T", Code: "c", Category: "Review"})
	require.NoError(t, err)

	moved := created
	moved.Category = "Voltooid"
	moved.OrderKey = 42
	updated, err := store.Update(ctx, created.ID, models.PlacementPatch(moved))
	require.NoError(t, err)
	assert.Equal(t, moved, updated)

	_, err = store.Update(ctx, "missing", models.Patch{})
	assert.ErrorIs(t, err, persistence.ErrNotFound)
}

func TestDelete(t *testing.T) {
	store := setupTestStore(t, WithoutSeed())
	ctx := context.Background()

	created, err := store.Create(ctx, models.Draft{Title: "T", Code: "c"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, created.ID))
	assert.ErrorIs(t, store.Delete(ctx, created.ID), persistence.ErrNotFound)

	snippets, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, snippets)
}

func TestSaveAll_ReplacesCollection(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	want := []models.Snippet{
		{ID: "b", Title: "B", Code: "b", Color: models.ColorRed, Category: "Review", OrderKey: 1},
		{ID: "a", Title: "A", Code: "a", Color: models.ColorBlue, Category: "Review", OrderKey: 2},
	}
	require.NoError(t, store.SaveAll(ctx, want))

	got, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Snippet{want[1], want[0]}, got, "returned in display order")
}

// ============================================================================
// Settings
// ============================================================================

func TestSettings_DefaultsAndRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	settings, err := store.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), settings)

	settings.Mode = models.ModeRemote
	settings.Endpoint = "http://localhost:8787"
	settings.Username = "dev"
	settings.Session = &models.Session{Token: "tok", Username: "dev", ValidUntil: storeNow.Add(time.Hour)}
	require.NoError(t, store.SaveSettings(ctx, settings))

	loaded, err := store.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.Mode, loaded.Mode)
	assert.Equal(t, settings.Endpoint, loaded.Endpoint)
	require.NotNil(t, loaded.Session)
	assert.True(t, loaded.Session.ValidUntil.Equal(settings.Session.ValidUntil))
}

func TestSettings_LegacyModeNames(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, putRecord(ctx, store.DB(), models.SettingsRecordKey,
		`{"column_titles":["A","B"],"persistence_type":"api"}`))

	settings, err := store.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ModeRemote, settings.Mode)
	assert.Equal(t, []string{"A", "B"}, settings.ColumnTitles)
}

func TestSettings_NoPasswordInRecord(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	settings := models.DefaultSettings()
	settings.Username = "dev"
	require.NoError(t, store.SaveSettings(ctx, settings))

	raw, found, err := getRecord(ctx, store.DB(), models.SettingsRecordKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.NotContains(t, raw, "password")
}

func TestInitDB_PersistsAcrossOpens(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	ctx := context.Background()

	db, err := InitDB(ctx, dir)
	require.NoError(t, err)
	store := NewStore(db, WithoutSeed())
	_, err = store.Create(ctx, models.Draft{Title: "T", Code: "c"})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = InitDB(ctx, dir)
	require.NoError(t, err)
	defer db.Close()

	snippets, err := NewStore(db).LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, snippets, 1)
	assert.Equal(t, "T", snippets[0].Title)
}

// ============================================================================
// Schema and transactions
// ============================================================================

func TestMigrationIdempotency(t *testing.T) {
	store := setupTestStore(t, WithoutSeed())
	ctx := context.Background()

	created, err := store.Create(ctx, models.Draft{Title: "Kept", Code: "x"})
	require.NoError(t, err)

	for range 2 {
		require.NoError(t, runMigrations(ctx, store.DB()))
	}

	snippets, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, snippets, 1)
	assert.Equal(t, created.ID, snippets[0].ID)
}

func TestMutate_FailureLeavesRecordUntouched(t *testing.T) {
	store := setupTestStore(t, WithoutSeed())
	ctx := context.Background()

	_, err := store.Create(ctx, models.Draft{Title: "Before", Code: "x"})
	require.NoError(t, err)

	boom := fmt.Errorf("boom")
	err = store.mutate(ctx, func(all []models.Snippet) ([]models.Snippet, error) {
		all[0].Title = "Changed"
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	snippets, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, snippets, 1)
	assert.Equal(t, "Before", snippets[0].Title)
}
