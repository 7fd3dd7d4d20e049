// Package board owns the in-memory snippet board: optimistic moves, the load
// lifecycle, edit mode and the serialized commit of every change to the active
// persistence adapter.
//
// The snippet collection is only ever replaced as a whole. Readers get copies,
// so a slice handed out by the controller never changes under its holder.
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/thenoetrevino/snipboard/internal/models"
	"github.com/thenoetrevino/snipboard/internal/ordering"
	"github.com/thenoetrevino/snipboard/internal/persistence"
)

// AdapterFactory builds the persistence adapter for the given settings
type AdapterFactory func(settings models.BoardSettings) (persistence.Adapter, error)

// Controller is the board state machine
type Controller struct {
	mu       sync.Mutex
	snippets []models.Snippet
	settings models.BoardSettings
	state    State
	loaded   bool
	editMode bool
	pending  map[string]struct{}
	banner   string
	adapter  persistence.Adapter

	settingsStore persistence.SettingsStore
	factory       AdapterFactory
	validate      *validator.Validate
	now           func() time.Time
	logger        *slog.Logger
	notifications chan Notification
	queue         *commitQueue
}

// Option configures a Controller
type Option func(*Controller)

// WithClock overrides the clock that supplies the base for key assignment
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithAdapter starts the controller with an already built adapter.
// The factory is still used after a mode or endpoint change.
func WithAdapter(adapter persistence.Adapter) Option {
	return func(c *Controller) {
		c.adapter = adapter
	}
}

// New creates an idle controller. Nothing is read until Load.
func New(settingsStore persistence.SettingsStore, factory AdapterFactory, opts ...Option) *Controller {
	c := &Controller{
		settings:      models.DefaultSettings(),
		pending:       make(map[string]struct{}),
		settingsStore: settingsStore,
		factory:       factory,
		validate:      newValidator(),
		now:           time.Now,
		logger:        slog.Default(),
		notifications: make(chan Notification, notificationBuffer),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.queue = newCommitQueue()
	return c
}

// ============================================================================
// Lifecycle
// ============================================================================

// Load (re)reads settings and snippets. It moves the board through Loading into
// Ready, Error or Unauthenticated and clears the pending set on success.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.state = StateLoading
	c.mu.Unlock()

	settings, err := c.settingsStore.LoadSettings(ctx)
	if err != nil {
		return c.failLoad(fmt.Errorf("failed to load settings: %w", err))
	}

	c.mu.Lock()
	c.settings = settings
	adapter := c.adapter
	c.mu.Unlock()

	if adapter == nil {
		if adapter, err = c.factory(settings); err != nil {
			return c.failLoad(fmt.Errorf("failed to open %s storage: %w", settings.Mode, err))
		}
		c.mu.Lock()
		c.adapter = adapter
		c.mu.Unlock()
	}

	snippets, err := adapter.LoadAll(ctx)
	if err != nil {
		return c.failLoad(err)
	}

	c.mu.Lock()
	c.snippets = ordering.SortDescending(snippets)
	c.pending = make(map[string]struct{})
	c.loaded = true
	c.state = StateReady
	c.banner = ""
	c.mu.Unlock()

	c.logger.Info("board loaded", "mode", adapter.Mode(), "snippets", len(snippets))
	return nil
}

func (c *Controller) failLoad(err error) error {
	if persistence.IsAuth(err) {
		c.expireSession(context.Background(), "log in to load the remote board")
		return err
	}

	c.mu.Lock()
	c.state = StateError
	c.banner = bannerFor(err)
	c.mu.Unlock()

	c.logger.Error("board load failed", "error", err)
	c.publish(LevelError, bannerFor(err))
	return err
}

// Wait blocks until every queued commit has settled. It returns the first
// commit error seen since the previous Wait.
func (c *Controller) Wait(ctx context.Context) error {
	return c.queue.wait(ctx)
}

// Close waits for queued commits and stops the commit worker
func (c *Controller) Close(ctx context.Context) error {
	return c.queue.close(ctx)
}

// Resync discards local state and reloads from the adapter
func (c *Controller) Resync(ctx context.Context) error {
	_ = c.Wait(ctx)
	return c.Load(ctx)
}

// ClearError dismisses the banner; an errored board becomes Ready again
func (c *Controller) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.banner = ""
	if c.state == StateError && c.loaded {
		c.state = StateReady
	}
}

// ============================================================================
// Read accessors
// ============================================================================

// State returns the lifecycle state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Banner returns the current error banner, or "" when there is none
func (c *Controller) Banner() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.banner
}

// EditMode reports whether destructive actions are enabled
func (c *Controller) EditMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editMode
}

// SetEditMode toggles destructive actions
func (c *Controller) SetEditMode(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editMode = on
}

// Settings returns a copy of the board settings
func (c *Controller) Settings() models.BoardSettings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings.Clone()
}

// Mode returns the active persistence mode
func (c *Controller) Mode() models.PersistenceMode {
	return c.Settings().Mode
}

// Snippets returns every snippet in display order
func (c *Controller) Snippets() []models.Snippet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.snippets)
}

// Snippet returns one snippet by ID
func (c *Controller) Snippet(id string) (models.Snippet, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := slices.IndexFunc(c.snippets, func(s models.Snippet) bool { return s.ID == id }); i >= 0 {
		return c.snippets[i], true
	}
	return models.Snippet{}, false
}

// Columns returns every column in board order, each filtered by search
func (c *Controller) Columns(search string) []models.Column {
	c.mu.Lock()
	titles := slices.Clone(c.settings.ColumnTitles)
	snippets := c.snippets
	c.mu.Unlock()

	columns := make([]models.Column, len(titles))
	for i, title := range titles {
		columns[i] = models.Column{Index: i, Title: title, Snippets: filter(ordering.Column(snippets, title), search)}
	}
	return columns
}

// Column returns one column filtered by search
func (c *Controller) Column(title, search string) (models.Column, error) {
	for _, col := range c.Columns(search) {
		if col.Title == title {
			return col, nil
		}
	}
	return models.Column{}, fmt.Errorf("%w: %q", models.ErrUnknownColumn, title)
}

// Pending returns the IDs whose last commit failed, sorted
func (c *Controller) Pending() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Sorted(maps.Keys(c.pending))
}

// Notifications delivers background messages. The channel is never closed.
func (c *Controller) Notifications() <-chan Notification {
	return c.notifications
}

func filter(snippets []models.Snippet, search string) []models.Snippet {
	out := make([]models.Snippet, 0, len(snippets))
	for _, s := range snippets {
		if s.Matches(search) {
			out = append(out, s)
		}
	}
	return out
}

// ============================================================================
// Failure handling
// ============================================================================

// fail records a failed commit: ids become pending, the board enters Error
// (or Unauthenticated for auth failures) and a banner is shown
func (c *Controller) fail(op string, err error, ids ...string) {
	c.logger.Error("commit failed", "op", op, "snippet_ids", ids, "error", err)

	c.mu.Lock()
	for _, id := range ids {
		c.pending[id] = struct{}{}
	}
	c.mu.Unlock()

	if persistence.IsAuth(err) {
		c.expireSession(context.Background(), "session expired, log in again")
		return
	}

	msg := fmt.Sprintf("%s failed: %s", op, bannerFor(err))
	c.mu.Lock()
	c.state = StateError
	c.banner = msg
	c.mu.Unlock()
	c.publish(LevelError, msg)
}

// warnMissing reports a snippet the backend no longer has. The local copy is kept
// until the next load.
func (c *Controller) warnMissing(op, id string) {
	msg := fmt.Sprintf("%s: %s", op, bannerFor(persistence.ErrNotFound))
	c.logger.Warn("snippet missing in backend", "op", op, "snippet_id", id)

	c.mu.Lock()
	c.banner = msg
	c.mu.Unlock()
	c.publish(LevelWarning, msg)
}

// expireSession drops the stored token and asks the user to log in
func (c *Controller) expireSession(ctx context.Context, msg string) {
	c.mu.Lock()
	c.state = StateUnauthenticated
	c.banner = msg
	hadSession := c.settings.Session != nil
	c.settings.Session = nil
	settings := c.settings.Clone()
	adapter := c.adapter
	c.mu.Unlock()

	if auth, ok := adapter.(persistence.Authenticator); ok {
		auth.SetSession(nil)
	}
	if hadSession {
		if err := c.settingsStore.SaveSettings(ctx, settings); err != nil {
			c.logger.Error("failed to clear stored session", "error", err)
		}
	}
	c.logger.Warn("remote session unusable", "message", msg)
	c.publish(LevelWarning, msg)
}

// bannerFor turns a persistence error into a short user-facing message
func bannerFor(err error) string {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case persistence.IsConnectivity(err):
		return "backend unreachable, changes are kept locally until a resync"
	case persistence.IsAuth(err):
		return "authentication required"
	case persistence.IsNotFound(err):
		return "snippet no longer exists in the backend"
	case errors.Is(err, persistence.ErrRejected):
		return "backend rejected the change"
	}
	return err.Error()
}
