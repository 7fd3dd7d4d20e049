// Package persistence defines the storage contract shared by the local and remote backends
package persistence

import (
	"context"

	"github.com/thenoetrevino/snipboard/internal/models"
)

// Adapter stores snippets. Implementations own durable storage and are the
// source of truth whenever the board (re)loads.
type Adapter interface {
	// LoadAll returns every stored snippet.
	// Fails with ErrConnectivity or ErrAuth.
	LoadAll(ctx context.Context) ([]models.Snippet, error)

	// Create stores a draft and returns it with an ID and order key assigned
	Create(ctx context.Context, draft models.Draft) (models.Snippet, error)

	// Update applies a partial update and returns the stored snippet, whose
	// order key may have been refreshed by the backend.
	Update(ctx context.Context, id string, patch models.Patch) (models.Snippet, error)

	// Delete removes a snippet. Fails with ErrNotFound when it no longer exists.
	Delete(ctx context.Context, id string) error

	// Mode reports which persistence mode the adapter implements
	Mode() models.PersistenceMode
}

// BatchWriter is implemented by adapters that can persist the whole collection
// in a single write
type BatchWriter interface {
	SaveAll(ctx context.Context, snippets []models.Snippet) error
}

// Authenticator is implemented by adapters that need a login
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*models.Session, error)
	SetSession(session *models.Session)
	Session() *models.Session
}

// SettingsStore keeps the board settings record
type SettingsStore interface {
	LoadSettings(ctx context.Context) (models.BoardSettings, error)
	SaveSettings(ctx context.Context, settings models.BoardSettings) error
}
