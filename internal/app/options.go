package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/thenoetrevino/snipboard/internal/remote"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	logger     *slog.Logger
	httpClient *http.Client
	registerer prometheus.Registerer
	sleeper    remote.Sleeper
	now        func() time.Time
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithHTTPClient replaces the HTTP client used by the remote adapter
func WithHTTPClient(hc *http.Client) Option {
	return func(cfg *appConfig) {
		cfg.httpClient = hc
	}
}

// WithRegisterer registers the remote adapter metrics with reg
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(cfg *appConfig) {
		cfg.registerer = reg
	}
}

// WithSleeper replaces the wait between remote retries
func WithSleeper(sleep remote.Sleeper) Option {
	return func(cfg *appConfig) {
		cfg.sleeper = sleep
	}
}

// WithClock sets the clock for storage, remote sessions and the board
func WithClock(now func() time.Time) Option {
	return func(cfg *appConfig) {
		cfg.now = now
	}
}
