package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thenoetrevino/snipboard/internal/models"
	"github.com/thenoetrevino/snipboard/internal/ordering"
	"github.com/thenoetrevino/snipboard/internal/persistence"
)

// Store is the local persistence adapter.
// Every mutation reads the whole snippet record, changes it and writes it back.
type Store struct {
	db    *sql.DB
	mu    sync.Mutex
	now   func() time.Time
	newID func() string
	seed  bool
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithClock overrides the clock used for order keys
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator overrides snippet ID generation
func WithIDGenerator(newID func() string) StoreOption {
	return func(s *Store) {
		s.newID = newID
	}
}

// WithoutSeed disables the sample snippets written on first load
func WithoutSeed() StoreOption {
	return func(s *Store) {
		s.seed = false
	}
}

// NewStore wraps an opened database
func NewStore(db *sql.DB, opts ...StoreOption) *Store {
	s := &Store{
		db:    db,
		now:   time.Now,
		newID: uuid.NewString,
		seed:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ persistence.Adapter       = (*Store)(nil)
	_ persistence.BatchWriter   = (*Store)(nil)
	_ persistence.SettingsStore = (*Store)(nil)
)

// Mode implements persistence.Adapter
func (s *Store) Mode() models.PersistenceMode {
	return models.ModeLocal
}

// DB exposes the underlying connection
func (s *Store) DB() *sql.DB {
	return s.db
}

// LoadAll returns every snippet in display order, seeding sample data the first
// time the board is opened.
func (s *Store) LoadAll(ctx context.Context) ([]models.Snippet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, found, err := getRecord(ctx, s.db, models.SnippetsRecordKey)
	if err != nil {
		return nil, err
	}

	if !found {
		if !s.seed {
			return []models.Snippet{}, nil
		}
		settings, err := s.loadSettings(ctx)
		if err != nil {
			return nil, err
		}
		snippets := seedSnippets(settings.ColumnTitles, s.now(), s.newID)
		if err := s.writeSnippets(ctx, s.db, snippets); err != nil {
			return nil, err
		}
		return ordering.SortDescending(snippets), nil
	}

	snippets, err := decodeSnippets(raw)
	if err != nil {
		return nil, err
	}
	return ordering.SortDescending(snippets), nil
}

// Create stores a new snippet on top of its column
func (s *Store) Create(ctx context.Context, draft models.Draft) (models.Snippet, error) {
	snippet := models.Snippet{
		ID:       s.newID(),
		Title:    draft.Title,
		Code:     draft.Code,
		Color:    models.NormalizeColor(draft.Color),
		Category: draft.Category,
		OrderKey: s.now().UnixMilli() + models.CrossColumnOffset,
	}

	err := s.mutate(ctx, func(all []models.Snippet) ([]models.Snippet, error) {
		return append(all, snippet), nil
	})
	if err != nil {
		return models.Snippet{}, fmt.Errorf("failed to create snippet: %w", err)
	}
	return snippet, nil
}

// Update applies a patch to a stored snippet
func (s *Store) Update(ctx context.Context, id string, patch models.Patch) (models.Snippet, error) {
	var updated models.Snippet
	err := s.mutate(ctx, func(all []models.Snippet) ([]models.Snippet, error) {
		idx := slices.IndexFunc(all, func(sn models.Snippet) bool { return sn.ID == id })
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", persistence.ErrNotFound, id)
		}
		updated = patch.Apply(all[idx])
		all[idx] = updated
		return all, nil
	})
	if err != nil {
		return models.Snippet{}, err
	}
	return updated, nil
}

// Delete removes a stored snippet
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, func(all []models.Snippet) ([]models.Snippet, error) {
		idx := slices.IndexFunc(all, func(sn models.Snippet) bool { return sn.ID == id })
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", persistence.ErrNotFound, id)
		}
		return slices.Delete(all, idx, idx+1), nil
	})
}

// SaveAll replaces the whole snippet collection in one write
func (s *Store) SaveAll(ctx context.Context, snippets []models.Snippet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeSnippets(ctx, s.db, snippets)
}

// LoadSettings returns the stored settings, or the defaults when none were saved
func (s *Store) LoadSettings(ctx context.Context) (models.BoardSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadSettings(ctx)
}

// SaveSettings replaces the settings record
func (s *Store) SaveSettings(ctx context.Context, settings models.BoardSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return putRecord(ctx, s.db, models.SettingsRecordKey, string(data))
}

func (s *Store) loadSettings(ctx context.Context) (models.BoardSettings, error) {
	raw, found, err := getRecord(ctx, s.db, models.SettingsRecordKey)
	if err != nil {
		return models.BoardSettings{}, err
	}
	if !found {
		return models.DefaultSettings(), nil
	}

	var settings models.BoardSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return models.BoardSettings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	settings.ApplyDefaults()
	return settings, nil
}

// mutate runs a read-modify-write of the snippet record inside one transaction
func (s *Store) mutate(ctx context.Context, fn func([]models.Snippet) ([]models.Snippet, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		raw, found, err := getRecord(ctx, tx, models.SnippetsRecordKey)
		if err != nil {
			return err
		}

		var all []models.Snippet
		if found {
			if all, err = decodeSnippets(raw); err != nil {
				return err
			}
		}

		next, err := fn(all)
		if err != nil {
			return err
		}
		return s.writeSnippets(ctx, tx, next)
	})
}

func (s *Store) writeSnippets(ctx context.Context, q queryer, snippets []models.Snippet) error {
	if snippets == nil {
		snippets = []models.Snippet{}
	}
	data, err := json.Marshal(ordering.SortDescending(snippets))
	if err != nil {
		return fmt.Errorf("failed to encode snippets: %w", err)
	}
	return putRecord(ctx, q, models.SnippetsRecordKey, string(data))
}

func decodeSnippets(raw string) ([]models.Snippet, error) {
	var snippets []models.Snippet
	if err := json.Unmarshal([]byte(raw), &snippets); err != nil {
		return nil, fmt.Errorf("failed to decode snippets: %w", err)
	}
	for i := range snippets {
		snippets[i].Color = models.NormalizeColor(snippets[i].Color)
	}
	return snippets, nil
}
