package board

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/thenoetrevino/snipboard/internal/models"
	"github.com/thenoetrevino/snipboard/internal/ordering"
	"github.com/thenoetrevino/snipboard/internal/persistence"
)

// ============================================================================
// Moves
// ============================================================================

// ReorderWithinColumn places draggedID immediately above targetID in their shared
// column. The board changes at once; the new keys are committed in the background.
// Unknown IDs, equal IDs and targets in another column leave the board untouched.
func (c *Controller) ReorderWithinColumn(draggedID, targetID string) error {
	c.mu.Lock()
	if !c.state.Interactive() {
		c.mu.Unlock()
		return ErrNotReady
	}
	dragged, ok := find(c.snippets, draggedID)
	if !ok {
		c.mu.Unlock()
		return nil
	}

	column := ordering.Column(c.snippets, dragged.Category)
	res := ordering.ReorderWithinColumn(column, draggedID, targetID, c.now().UnixMilli())
	if len(res.Changed) == 0 {
		c.mu.Unlock()
		return nil
	}
	c.snippets = replaceByID(c.snippets, res.Snippets)
	snapshot, adapter := c.snippets, c.adapter
	c.mu.Unlock()

	c.logger.Debug("reordered snippet", "snippet_id", draggedID, "target_id", targetID, "changed", len(res.Changed))
	return c.commitPlacement("reorder", adapter, snapshot, res.Changed)
}

// MoveToColumn drops draggedID on the column titled targetColumn: onto the top of
// its own column, or above everything when the column changes.
func (c *Controller) MoveToColumn(draggedID, targetColumn string) error {
	c.mu.Lock()
	if !c.state.Interactive() {
		c.mu.Unlock()
		return ErrNotReady
	}
	if !c.settings.HasColumn(targetColumn) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", models.ErrUnknownColumn, targetColumn)
	}

	res := ordering.MoveToColumn(c.snippets, draggedID, targetColumn, c.now().UnixMilli())
	if len(res.Changed) == 0 {
		c.mu.Unlock()
		return nil
	}
	c.snippets = ordering.SortDescending(res.Snippets)
	snapshot, adapter := c.snippets, c.adapter
	c.mu.Unlock()

	c.logger.Debug("moved snippet", "snippet_id", draggedID, "column", targetColumn, "changed", len(res.Changed))
	return c.commitPlacement("move", adapter, snapshot, res.Changed)
}

// RenameColumn renames the column at index and retags its snippets
func (c *Controller) RenameColumn(index int, newTitle string) error {
	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		return models.ErrEmptyColumnTitle
	}
	if len([]rune(newTitle)) > models.MaxTitleLength {
		return &ValidationError{Fields: []FieldError{{Field: "title", Message: fmt.Sprintf("must be at most %d characters", models.MaxTitleLength)}}}
	}

	c.mu.Lock()
	if !c.state.Interactive() {
		c.mu.Unlock()
		return ErrNotReady
	}
	if index < 0 || index >= len(c.settings.ColumnTitles) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %d", models.ErrColumnIndex, index)
	}
	oldTitle := c.settings.ColumnTitles[index]
	if oldTitle == newTitle {
		c.mu.Unlock()
		return nil
	}
	if c.settings.HasColumn(newTitle) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", models.ErrDuplicateColumn, newTitle)
	}

	settings := c.settings.Clone()
	settings.ColumnTitles[index] = newTitle
	res := ordering.Retag(c.snippets, oldTitle, newTitle)

	c.settings = settings
	c.snippets = res.Snippets
	snapshot, adapter := c.snippets, c.adapter
	c.mu.Unlock()

	c.logger.Info("renamed column", "from", oldTitle, "to", newTitle, "retagged", len(res.Changed))

	err := c.queue.enqueue(job{name: "save settings", run: func(ctx context.Context) error {
		if err := c.settingsStore.SaveSettings(ctx, settings); err != nil {
			c.fail("rename column", err)
			return err
		}
		return nil
	}})
	if err != nil || len(res.Changed) == 0 {
		return err
	}
	return c.commitPlacement("rename column", adapter, snapshot, res.Changed)
}

// ============================================================================
// Snippet CRUD
// ============================================================================

// CreateSnippet validates and stores a new snippet. An empty category lands it in
// the first column. It returns once the adapter has assigned an ID.
func (c *Controller) CreateSnippet(ctx context.Context, draft models.Draft) (models.Snippet, error) {
	draft, err := c.validateDraft(draft)
	if err != nil {
		return models.Snippet{}, err
	}
	draft.Color = models.NormalizeColor(draft.Color)

	c.mu.Lock()
	if !c.state.Interactive() {
		c.mu.Unlock()
		return models.Snippet{}, ErrNotReady
	}
	if draft.Category == "" {
		draft.Category = c.settings.DefaultColumn()
	} else if !c.settings.HasColumn(draft.Category) {
		c.mu.Unlock()
		return models.Snippet{}, fmt.Errorf("%w: %q", models.ErrUnknownColumn, draft.Category)
	}
	adapter := c.adapter
	c.mu.Unlock()

	var created models.Snippet
	err = c.queue.submit(ctx, job{name: "create", run: func(ctx context.Context) error {
		got, err := adapter.Create(ctx, draft)
		if err != nil {
			c.fail("create", err)
			return err
		}
		created = got

		c.mu.Lock()
		c.snippets = ordering.SortDescending(append(slices.Clone(c.snippets), got))
		c.mu.Unlock()
		return nil
	}})
	if err != nil {
		return models.Snippet{}, err
	}

	c.logger.Info("created snippet", "snippet_id", created.ID, "column", created.Category)
	return created, nil
}

// PasteSnippet creates a snippet from clipboard text, titled after its first characters
func (c *Controller) PasteSnippet(ctx context.Context, text string, color models.Color) (models.Snippet, error) {
	return c.CreateSnippet(ctx, models.Draft{
		Title: models.TitleFromClipboard(text),
		Code:  text,
		Color: color,
	})
}

// EditSnippet applies a partial update. Order keys cannot be edited.
func (c *Controller) EditSnippet(id string, patch models.Patch) error {
	patch.OrderKey = nil
	if patch.IsEmpty() {
		return nil
	}
	if err := c.validatePatch(patch); err != nil {
		return err
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title
	}

	c.mu.Lock()
	if !c.state.Interactive() {
		c.mu.Unlock()
		return ErrNotReady
	}
	current, ok := find(c.snippets, id)
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrSnippetNotFound, id)
	}
	if patch.Category != nil && !c.settings.HasColumn(*patch.Category) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", models.ErrUnknownColumn, *patch.Category)
	}
	updated := patch.Apply(current)
	c.snippets = replaceByID(c.snippets, []models.Snippet{updated})
	adapter := c.adapter
	c.mu.Unlock()

	return c.queue.enqueue(job{name: "edit", run: func(ctx context.Context) error {
		got, err := adapter.Update(ctx, id, patch)
		if persistence.IsNotFound(err) {
			c.warnMissing("edit", id)
			return nil
		}
		if err != nil {
			c.fail("edit", err, id)
			return err
		}
		c.reconcile([]models.Snippet{updated}, []models.Snippet{got})
		c.settle([]string{id})
		return nil
	}})
}

// DeleteSnippet removes a snippet. It requires edit mode. Local boards drop the
// snippet at once; remote boards drop it when the backend confirms.
func (c *Controller) DeleteSnippet(id string) error {
	c.mu.Lock()
	if !c.state.Interactive() {
		c.mu.Unlock()
		return ErrNotReady
	}
	if !c.editMode {
		c.mu.Unlock()
		return ErrEditModeRequired
	}
	if _, ok := find(c.snippets, id); !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrSnippetNotFound, id)
	}
	adapter := c.adapter
	immediate := adapter.Mode() == models.ModeLocal
	if immediate {
		c.snippets = removeByID(c.snippets, id)
	}
	c.mu.Unlock()

	return c.queue.enqueue(job{name: "delete", run: func(ctx context.Context) error {
		err := adapter.Delete(ctx, id)
		if err != nil && !persistence.IsNotFound(err) {
			c.fail("delete", err, id)
			return err
		}

		c.mu.Lock()
		c.snippets = removeByID(c.snippets, id)
		delete(c.pending, id)
		c.mu.Unlock()
		c.logger.Info("deleted snippet", "snippet_id", id)
		return nil
	}})
}

// ============================================================================
// Settings and authentication
// ============================================================================

// SetPersistenceMode switches the backend and reloads the board from it
func (c *Controller) SetPersistenceMode(ctx context.Context, mode models.PersistenceMode) error {
	if _, err := models.ParseMode(string(mode)); err != nil {
		return err
	}
	return c.changeSettings(ctx, func(s *models.BoardSettings) {
		s.Mode = mode
	})
}

// SetEndpoint points remote mode at another backend. The stored session is dropped.
func (c *Controller) SetEndpoint(ctx context.Context, endpoint string) error {
	endpoint = strings.TrimSpace(endpoint)
	return c.changeSettings(ctx, func(s *models.BoardSettings) {
		if s.Endpoint != endpoint {
			s.Session = nil
		}
		s.Endpoint = endpoint
	})
}

func (c *Controller) changeSettings(ctx context.Context, change func(*models.BoardSettings)) error {
	_ = c.Wait(ctx)

	settings, err := c.storedSettings(ctx)
	if err != nil {
		return err
	}
	change(&settings)

	if err := c.settingsStore.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	c.mu.Lock()
	c.settings = settings
	c.adapter = nil
	c.snippets = nil
	c.loaded = false
	c.pending = make(map[string]struct{})
	c.mu.Unlock()

	return c.Load(ctx)
}

// Login authenticates against the remote backend, stores the session and reloads
func (c *Controller) Login(ctx context.Context, username, password string) error {
	if _, err := c.storedSettings(ctx); err != nil {
		return err
	}
	auth, err := c.authenticator()
	if err != nil {
		return err
	}

	session, err := auth.Login(ctx, username, password)
	if err != nil {
		c.mu.Lock()
		if persistence.IsAuth(err) {
			c.state = StateUnauthenticated
			c.banner = "invalid username or password"
		} else {
			c.banner = bannerFor(err)
		}
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	settings := c.settings.Clone()
	c.mu.Unlock()
	settings.Username = session.Username
	settings.Session = session
	if err := c.settingsStore.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	c.mu.Lock()
	c.settings = settings
	c.mu.Unlock()
	c.publish(LevelInfo, "logged in as "+session.Username)

	return c.Load(ctx)
}

// Logout forgets the session. The board becomes Unauthenticated.
func (c *Controller) Logout(ctx context.Context) error {
	_ = c.Wait(ctx)

	settings, err := c.storedSettings(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	adapter := c.adapter
	c.mu.Unlock()

	if auth, ok := adapter.(persistence.Authenticator); ok {
		auth.SetSession(nil)
	}
	settings.Session = nil
	if err := c.settingsStore.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	c.mu.Lock()
	c.settings = settings
	c.snippets = nil
	c.loaded = false
	c.state = StateUnauthenticated
	c.banner = "logged out"
	c.mu.Unlock()
	return nil
}

// storedSettings rereads the persisted settings so a change applies on top of
// them even when the board was never loaded
func (c *Controller) storedSettings(ctx context.Context) (models.BoardSettings, error) {
	settings, err := c.settingsStore.LoadSettings(ctx)
	if err != nil {
		return models.BoardSettings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	c.mu.Lock()
	c.settings = settings
	c.mu.Unlock()
	return settings.Clone(), nil
}

// authenticator returns the active adapter as an Authenticator, building it if needed
func (c *Controller) authenticator() (persistence.Authenticator, error) {
	c.mu.Lock()
	adapter, settings := c.adapter, c.settings.Clone()
	c.mu.Unlock()

	if adapter == nil {
		var err error
		if adapter, err = c.factory(settings); err != nil {
			return nil, fmt.Errorf("failed to open %s storage: %w", settings.Mode, err)
		}
		c.mu.Lock()
		c.adapter = adapter
		c.mu.Unlock()
	}

	auth, ok := adapter.(persistence.Authenticator)
	if !ok {
		return nil, ErrNotRemote
	}
	return auth, nil
}

// ============================================================================
// Commit plumbing
// ============================================================================

// commitPlacement persists the column and key of every changed snippet.
// Batch-capable adapters get the whole snapshot in one write. Others get one
// update per snippet, bottom of the board first, so a backend that stamps its
// own order keys on write ends up with the same arrangement. A failed update
// stops the batch: it and every later snippet become pending.
func (c *Controller) commitPlacement(op string, adapter persistence.Adapter, snapshot []models.Snippet, changed []string) error {
	if bw, ok := adapter.(persistence.BatchWriter); ok {
		return c.queue.enqueue(job{name: op, run: func(ctx context.Context) error {
			if err := bw.SaveAll(ctx, snapshot); err != nil {
				c.fail(op, err, changed...)
				return err
			}
			c.settle(changed)
			return nil
		}})
	}

	writes := pick(snapshot, changed)
	slices.SortFunc(writes, func(a, b models.Snippet) int {
		if n := cmp.Compare(a.OrderKey, b.OrderKey); n != 0 {
			return n
		}
		return cmp.Compare(b.ID, a.ID)
	})

	return c.queue.enqueue(job{name: op, run: func(ctx context.Context) error {
		sent := make([]models.Snippet, 0, len(writes))
		stored := make([]models.Snippet, 0, len(writes))
		for i, s := range writes {
			got, err := adapter.Update(ctx, s.ID, models.PlacementPatch(s))
			if persistence.IsNotFound(err) {
				c.warnMissing(op, s.ID)
				continue
			}
			if err != nil {
				c.fail(op, err, ids(writes[i:])...)
				return err
			}
			sent = append(sent, s)
			stored = append(stored, got)
		}
		c.reconcile(sent, stored)
		c.settle(changed)
		return nil
	}})
}

// reconcile adopts the order keys the backend assigned, for snippets that have
// not moved again since they were sent
func (c *Controller) reconcile(sent, stored []models.Snippet) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := slices.Clone(c.snippets)
	changed := false
	for i, s := range sent {
		got := stored[i]
		idx := slices.IndexFunc(next, func(cur models.Snippet) bool { return cur.ID == s.ID })
		if idx < 0 || got.OrderKey == 0 {
			continue
		}
		cur := next[idx]
		if cur.OrderKey != s.OrderKey || cur.Category != s.Category || cur.OrderKey == got.OrderKey {
			continue
		}
		cur.OrderKey = got.OrderKey
		next[idx] = cur
		changed = true
	}
	if changed {
		c.snippets = ordering.SortDescending(next)
	}
}

// settle clears ids from the pending set after a successful commit
func (c *Controller) settle(ids []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		delete(c.pending, id)
	}
}

func find(snippets []models.Snippet, id string) (models.Snippet, bool) {
	if i := slices.IndexFunc(snippets, func(s models.Snippet) bool { return s.ID == id }); i >= 0 {
		return snippets[i], true
	}
	return models.Snippet{}, false
}

// replaceByID returns all with every snippet in updated swapped in, in display order
func replaceByID(all, updated []models.Snippet) []models.Snippet {
	byID := make(map[string]models.Snippet, len(updated))
	for _, s := range updated {
		byID[s.ID] = s
	}
	out := make([]models.Snippet, len(all))
	for i, s := range all {
		if u, ok := byID[s.ID]; ok {
			s = u
		}
		out[i] = s
	}
	return ordering.SortDescending(out)
}

func removeByID(all []models.Snippet, id string) []models.Snippet {
	return slices.DeleteFunc(slices.Clone(all), func(s models.Snippet) bool { return s.ID == id })
}

func pick(all []models.Snippet, wanted []string) []models.Snippet {
	out := make([]models.Snippet, 0, len(wanted))
	for _, s := range all {
		if slices.Contains(wanted, s.ID) {
			out = append(out, s)
		}
	}
	return out
}

func ids(snippets []models.Snippet) []string {
	out := make([]string, len(snippets))
	for i, s := range snippets {
		out[i] = s.ID
	}
	return out
}
