// Package app wires configuration, storage, the remote client and the board
// controller into one container shared by the CLI and the TUI.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/thenoetrevino/snipboard/internal/board"
	"github.com/thenoetrevino/snipboard/internal/config"
	"github.com/thenoetrevino/snipboard/internal/database"
	"github.com/thenoetrevino/snipboard/internal/models"
	"github.com/thenoetrevino/snipboard/internal/persistence"
	"github.com/thenoetrevino/snipboard/internal/remote"
)

// ErrNoEndpoint is returned when remote mode is selected without a backend URL
var ErrNoEndpoint = errors.New("remote mode needs an endpoint: run `snipboard settings endpoint <url>`")

// App holds all application services and provides dependency injection.
type App struct {
	Config *config.Config
	Store  *database.Store
	Board  *board.Controller

	db      *sql.DB
	logger  *slog.Logger
	metrics *remote.Metrics
	opts    appConfig
}

// New opens the local database under cfg.DataDir and builds the container
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	db, err := database.InitDB(ctx, cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db, cfg, opts...), nil
}

// NewWithDB builds the container around an open database. The App owns db from here on.
func NewWithDB(db *sql.DB, cfg *config.Config, opts ...Option) *App {
	o := appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{
		Config:  cfg,
		db:      db,
		logger:  o.logger,
		metrics: remote.NewMetrics(o.registerer),
		opts:    o,
	}

	var storeOpts []database.StoreOption
	if o.now != nil {
		storeOpts = append(storeOpts, database.WithClock(o.now))
	}
	a.Store = database.NewStore(db, storeOpts...)

	boardOpts := []board.Option{board.WithLogger(o.logger)}
	if o.now != nil {
		boardOpts = append(boardOpts, board.WithClock(o.now))
	}
	a.Board = board.New(a.Store, a.AdapterFor, boardOpts...)

	return a
}

// AdapterFor builds the persistence adapter selected by settings.
// Local mode shares the settings store; remote mode gets a fresh client
// carrying the stored session.
func (a *App) AdapterFor(settings models.BoardSettings) (persistence.Adapter, error) {
	switch settings.Mode {
	case models.ModeLocal, "":
		return a.Store, nil
	case models.ModeRemote:
		return a.remoteClient(settings)
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownMode, settings.Mode)
	}
}

// Endpoint resolves the backend URL: the board settings win over the config file
func (a *App) Endpoint(settings models.BoardSettings) string {
	if settings.Endpoint != "" {
		return settings.Endpoint
	}
	return a.Config.Remote.BaseURL
}

func (a *App) remoteClient(settings models.BoardSettings) (*remote.Client, error) {
	endpoint := a.Endpoint(settings)
	if endpoint == "" {
		return nil, ErrNoEndpoint
	}

	httpClient := a.opts.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: a.Config.Remote.Timeout}
	}

	clientOpts := []remote.Option{
		remote.WithHTTPClient(httpClient),
		remote.WithRetryPolicy(a.Config.Remote.MaxAttempts, a.Config.Remote.BaseDelay),
		remote.WithSession(settings.Session),
		remote.WithMetrics(a.metrics),
		remote.WithLogger(a.logger),
	}
	if a.opts.sleeper != nil {
		clientOpts = append(clientOpts, remote.WithSleeper(a.opts.sleeper))
	}
	if a.opts.now != nil {
		clientOpts = append(clientOpts, remote.WithClock(a.opts.now))
	}

	return remote.NewClient(endpoint, clientOpts...)
}

// Close waits for pending commits, then releases the database
func (a *App) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	boardErr := a.Board.Close(ctx)
	if boardErr != nil {
		a.logger.Warn("pending changes were not saved", "error", boardErr)
	}
	return errors.Join(boardErr, a.db.Close())
}
