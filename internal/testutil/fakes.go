package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/thenoetrevino/snipboard/internal/models"
	"github.com/thenoetrevino/snipboard/internal/persistence"
)

// ============================================================================
// Clock
// ============================================================================

// Clock is a manually advanced clock
type Clock struct {
	mu sync.Mutex
	t  time.Time
}

// NewClock returns a clock stopped at t
func NewClock(t time.Time) *Clock {
	return &Clock{t: t}
}

// Now returns the current fake time
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the clock forward by d
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// ============================================================================
// Adapter
// ============================================================================

// FailFunc decides whether an adapter call fails. op is one of
// load, create, update, delete, save_all, login.
type FailFunc func(op, id string) error

// FakeAdapter is an in-memory remote-style adapter: no batch writes, and every
// write stamps a fresh, strictly increasing order key like a backend clock would.
type FakeAdapter struct {
	mu       sync.Mutex
	snippets []models.Snippet
	calls    []string
	fail     FailFunc
	clock    int64
	nextID   int
	session  *models.Session
	users    map[string]string
	block    chan struct{}
}

// NewFakeAdapter returns an adapter holding snippets
func NewFakeAdapter(snippets ...models.Snippet) *FakeAdapter {
	return &FakeAdapter{
		snippets: slices.Clone(snippets),
		clock:    2_000_000_000_000,
		users:    map[string]string{"dev": "secret"},
	}
}

var (
	_ persistence.Adapter       = (*FakeAdapter)(nil)
	_ persistence.Authenticator = (*FakeAdapter)(nil)
)

// FailWith installs a failure hook
func (f *FakeAdapter) FailWith(fn FailFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = fn
}

// Block makes every write wait until the returned function is called
func (f *FakeAdapter) Block() (release func()) {
	ch := make(chan struct{})
	f.mu.Lock()
	f.block = ch
	f.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

// Calls returns the recorded calls as "op:id"
func (f *FakeAdapter) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// Stored returns the stored snippets
func (f *FakeAdapter) Stored() []models.Snippet {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.snippets)
}

// StoredSnippet returns one stored snippet
func (f *FakeAdapter) StoredSnippet(id string) (models.Snippet, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.index(id); i >= 0 {
		return f.snippets[i], true
	}
	return models.Snippet{}, false
}

func (f *FakeAdapter) enter(op, id string) error {
	f.mu.Lock()
	block := f.block
	f.mu.Unlock()
	if block != nil && op != "load" && op != "login" {
		<-block
	}

	f.mu.Lock()
	if id == "" {
		f.calls = append(f.calls, op)
	} else {
		f.calls = append(f.calls, op+":"+id)
	}
	fail := f.fail
	f.mu.Unlock()

	if fail != nil {
		return fail(op, id)
	}
	return nil
}

func (f *FakeAdapter) index(id string) int {
	return slices.IndexFunc(f.snippets, func(s models.Snippet) bool { return s.ID == id })
}

func (f *FakeAdapter) tick() int64 {
	f.clock++
	return f.clock
}

// Mode implements persistence.Adapter
func (f *FakeAdapter) Mode() models.PersistenceMode {
	return models.ModeRemote
}

// LoadAll implements persistence.Adapter
func (f *FakeAdapter) LoadAll(ctx context.Context) ([]models.Snippet, error) {
	if err := f.enter("load", ""); err != nil {
		return nil, err
	}
	return f.Stored(), nil
}

// Create implements persistence.Adapter
func (f *FakeAdapter) Create(ctx context.Context, draft models.Draft) (models.Snippet, error) {
	if err := f.enter("create", ""); err != nil {
		return models.Snippet{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	s := models.Snippet{
		ID:       fmt.Sprintf("new-%d", f.nextID),
		Title:    draft.Title,
		Code:     draft.Code,
		Color:    models.NormalizeColor(draft.Color),
		Category: draft.Category,
		OrderKey: f.tick(),
	}
	f.snippets = append(f.snippets, s)
	return s, nil
}

// Update implements persistence.Adapter. The order key of the patch is ignored
// and replaced by the adapter clock.
func (f *FakeAdapter) Update(ctx context.Context, id string, patch models.Patch) (models.Snippet, error) {
	if err := f.enter("update", id); err != nil {
		return models.Snippet{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(id)
	if i < 0 {
		return models.Snippet{}, fmt.Errorf("%w: %s", persistence.ErrNotFound, id)
	}
	patch.OrderKey = nil
	s := patch.Apply(f.snippets[i])
	s.OrderKey = f.tick()
	f.snippets[i] = s
	return s, nil
}

// Delete implements persistence.Adapter
func (f *FakeAdapter) Delete(ctx context.Context, id string) error {
	if err := f.enter("delete", id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", persistence.ErrNotFound, id)
	}
	f.snippets = slices.Delete(f.snippets, i, i+1)
	return nil
}

// Login implements persistence.Authenticator
func (f *FakeAdapter) Login(ctx context.Context, username, password string) (*models.Session, error) {
	if err := f.enter("login", username); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if pw, ok := f.users[username]; !ok || pw != password {
		return nil, fmt.Errorf("login: %w", persistence.ErrAuth)
	}
	f.session = &models.Session{Token: "token-" + username, Username: username}
	s := *f.session
	return &s, nil
}

// SetSession implements persistence.Authenticator
func (f *FakeAdapter) SetSession(session *models.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = session
}

// Session implements persistence.Authenticator
func (f *FakeAdapter) Session() *models.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

// FakeBatchAdapter is a local-style adapter: SaveAll replaces everything and
// the order keys it is given are kept.
type FakeBatchAdapter struct {
	*FakeAdapter
}

// NewFakeBatchAdapter returns a batch-capable adapter holding snippets
func NewFakeBatchAdapter(snippets ...models.Snippet) *FakeBatchAdapter {
	return &FakeBatchAdapter{FakeAdapter: NewFakeAdapter(snippets...)}
}

var _ persistence.BatchWriter = (*FakeBatchAdapter)(nil)

// Mode implements persistence.Adapter
func (f *FakeBatchAdapter) Mode() models.PersistenceMode {
	return models.ModeLocal
}

// SaveAll implements persistence.BatchWriter
func (f *FakeBatchAdapter) SaveAll(ctx context.Context, snippets []models.Snippet) error {
	if err := f.enter("save_all", ""); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snippets = slices.Clone(snippets)
	return nil
}

// ============================================================================
// Settings store
// ============================================================================

// FakeSettingsStore keeps settings in memory
type FakeSettingsStore struct {
	mu       sync.Mutex
	settings models.BoardSettings
	saves    int
	err      error
}

// NewFakeSettingsStore returns a store holding settings
func NewFakeSettingsStore(settings models.BoardSettings) *FakeSettingsStore {
	return &FakeSettingsStore{settings: settings.Clone()}
}

var _ persistence.SettingsStore = (*FakeSettingsStore)(nil)

// FailWith makes every call fail with err
func (f *FakeSettingsStore) FailWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// LoadSettings implements persistence.SettingsStore
func (f *FakeSettingsStore) LoadSettings(ctx context.Context) (models.BoardSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.BoardSettings{}, f.err
	}
	return f.settings.Clone(), nil
}

// SaveSettings implements persistence.SettingsStore
func (f *FakeSettingsStore) SaveSettings(ctx context.Context, settings models.BoardSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.settings = settings.Clone()
	f.saves++
	return nil
}

// Current returns the stored settings
func (f *FakeSettingsStore) Current() models.BoardSettings {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settings.Clone()
}

// Saves returns how many times settings were written
func (f *FakeSettingsStore) Saves() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}
