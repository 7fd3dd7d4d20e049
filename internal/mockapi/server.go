// Package mockapi is a self-contained HTTP backend speaking the remote snippet
// protocol. It keeps everything in memory and can inject failures, which makes
// it useful for trying the remote persistence mode and for tests.
package mockapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Defaults for an unconfigured server
const (
	DefaultAddr     = "127.0.0.1:8787"
	DefaultTokenTTL = 8 * time.Hour
	shutdownTimeout = 5 * time.Second
)

// Config configures the mock backend
type Config struct {
	Addr     string
	Users    map[string]string // username -> password
	TokenTTL time.Duration
}

// Server is the mock backend
type Server struct {
	cfg     Config
	engine  *gin.Engine
	store   *memoryStore
	metrics *Metrics
	logger  *slog.Logger
	now     func() time.Time

	mu     sync.Mutex
	tokens map[string]time.Time // token -> expiry
	faults faultPlan

	httpServer   *http.Server
	shutdownOnce sync.Once
}

// faultPlan answers the next count requests with status
type faultPlan struct {
	count  int
	status int
}

// Option configures a Server
type Option func(*Server)

// WithClock overrides the clock used for tokens and timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a mock backend. It does not listen until Start is called.
func NewServer(cfg Config, opts ...Option) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}

	s := &Server{
		cfg:    cfg,
		logger: slog.Default(),
		now:    time.Now,
		tokens: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.store = newMemoryStore(s.now)
	s.metrics = NewMetrics(s.store.size)
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler, for use with httptest
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Metrics returns the server metrics
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// InjectFailures makes the next count requests to the snippet routes fail with status.
// A count of zero clears the plan.
func (s *Server) InjectFailures(count, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = faultPlan{count: count, status: status}
}

// RevokeTokens invalidates every issued token
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]time.Time)
	s.metrics.ActiveSessions.Set(0)
}

func (s *Server) routes() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), s.countRequests())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))

	apiGroup := engine.Group("/api")
	apiGroup.POST("/auth/login", s.handleLogin)

	snippets := apiGroup.Group("/snippets", s.injectFaults(), s.requireToken())
	snippets.GET("", s.handleList)
	snippets.POST("", s.handleCreate)
	snippets.PUT("/:id", s.handleUpdate)
	snippets.DELETE("/:id", s.handleDelete)

	return engine
}

// Start listens on the configured address and serves until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	listener, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is cancelled
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.logger.Info("mock backend listening", "addr", listener.Addr().String())

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("mock backend context cancelled, shutting down")
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("mock backend stopped: %w", err)
		}
		return nil
	}

	return s.Shutdown()
}

// Shutdown stops the HTTP server, waiting for in-flight requests
func (s *Server) Shutdown() error {
	var err error
	s.shutdownOnce.Do(func() {
		if s.httpServer == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err = s.httpServer.Shutdown(ctx)
	})
	return err
}
