// Package remote is the persistence adapter for the authenticated HTTP backend.
//
// Every request is attempted up to MaxAttempts times with exponential backoff
// (1s, 2s, 4s, ...) on transient failures. Authentication failures are never
// retried: they invalidate the session and surface immediately.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/thenoetrevino/snipboard/internal/api"
	"github.com/thenoetrevino/snipboard/internal/models"
	"github.com/thenoetrevino/snipboard/internal/persistence"
)

// Default retry policy
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 1 * time.Second
	DefaultTimeout     = 10 * time.Second
)

// ErrSessionExpired is returned (wrapped in ErrAuth) when a request is attempted
// without a valid session
var ErrSessionExpired = errors.New("session missing or expired")

// Sleeper waits for d or until ctx is done
type Sleeper func(ctx context.Context, d time.Duration) error

// Client is the remote persistence adapter
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu      sync.RWMutex
	session *models.Session

	maxAttempts int
	baseDelay   time.Duration
	sleep       Sleeper
	now         func() time.Time

	metrics        *Metrics
	logger         *slog.Logger
	onUnauthorized func()
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRetryPolicy sets the attempt budget and the first backoff delay
func WithRetryPolicy(maxAttempts int, baseDelay time.Duration) Option {
	return func(c *Client) {
		if maxAttempts > 0 {
			c.maxAttempts = maxAttempts
		}
		if baseDelay > 0 {
			c.baseDelay = baseDelay
		}
	}
}

// WithSleeper replaces the backoff wait
func WithSleeper(sleep Sleeper) Option {
	return func(c *Client) {
		c.sleep = sleep
	}
}

// WithClock overrides the clock used for session checks and key fallbacks
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithSession starts the client with an existing session
func WithSession(session *models.Session) Option {
	return func(c *Client) {
		c.session = session
	}
}

// WithMetrics records request counters
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// OnUnauthorized registers a callback fired whenever the session is invalidated
func OnUnauthorized(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// NewClient creates a client for the backend at baseURL
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: must be an absolute http(s) URL", baseURL)
	}

	c := &Client{
		baseURL:     strings.TrimRight(parsed.String(), "/"),
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultBaseDelay,
		sleep:       sleepContext,
		now:         time.Now,
		metrics:     NewMetrics(nil),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var (
	_ persistence.Adapter       = (*Client)(nil)
	_ persistence.Authenticator = (*Client)(nil)
)

// Mode implements persistence.Adapter
func (c *Client) Mode() models.PersistenceMode {
	return models.ModeRemote
}

// BaseURL returns the backend root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Session returns a copy of the current session, or nil
func (c *Client) Session() *models.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

// SetSession replaces the current session
func (c *Client) SetSession(session *models.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = session
}

// Login exchanges credentials for a session. The password is not kept.
func (c *Client) Login(ctx context.Context, username, password string) (*models.Session, error) {
	var resp api.LoginResponse
	req := api.LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, "login", http.MethodPost, api.LoginPath, req, &resp, false); err != nil {
		return nil, err
	}

	session := &models.Session{
		Token:      resp.Token,
		Username:   username,
		ValidUntil: resp.ExpiresAt,
	}
	c.SetSession(session)
	c.logger.Info("remote login succeeded", "username", username, "valid_until", resp.ExpiresAt)

	s := *session
	return &s, nil
}

// LoadAll implements persistence.Adapter
func (c *Client) LoadAll(ctx context.Context) ([]models.Snippet, error) {
	var records []api.Snippet
	if err := c.do(ctx, "load", http.MethodGet, api.SnippetsPath, nil, &records, true); err != nil {
		return nil, err
	}

	now := c.now()
	snippets := make([]models.Snippet, 0, len(records))
	for _, rec := range records {
		snippets = append(snippets, flatten(rec, now))
	}
	return snippets, nil
}

// Create implements persistence.Adapter
func (c *Client) Create(ctx context.Context, draft models.Draft) (models.Snippet, error) {
	color := string(models.NormalizeColor(draft.Color))
	body := api.WriteRequest{
		Title:    &draft.Title,
		Code:     &draft.Code,
		Color:    &color,
		Category: &draft.Category,
	}

	var rec api.Snippet
	if err := c.do(ctx, "create", http.MethodPost, api.SnippetsPath, body, &rec, true); err != nil {
		return models.Snippet{}, err
	}
	return flatten(rec, c.now()), nil
}

// Update implements persistence.Adapter. The order key is not sent: the backend
// refreshes updated_at, which becomes the new key.
func (c *Client) Update(ctx context.Context, id string, patch models.Patch) (models.Snippet, error) {
	body := api.WriteRequest{
		Title:    patch.Title,
		Code:     patch.Code,
		Category: patch.Category,
	}
	if patch.Color != nil {
		color := string(models.NormalizeColor(*patch.Color))
		body.Color = &color
	}

	var rec api.Snippet
	if err := c.do(ctx, "update", http.MethodPut, snippetPath(id), body, &rec, true); err != nil {
		return models.Snippet{}, err
	}
	return flatten(rec, c.now()), nil
}

// Delete implements persistence.Adapter
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, "delete", http.MethodDelete, snippetPath(id), nil, nil, true)
}

// do performs one logical request with the retry policy.
// out may be nil when the response body is not needed.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any, authenticated bool) error {
	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
	}

	var token string
	if authenticated {
		session := c.Session()
		if !session.Valid(c.now()) {
			c.invalidate()
			return &StatusError{Op: op, Kind: persistence.ErrAuth, Cause: ErrSessionExpired}
		}
		token = session.Token
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			delay := c.baseDelay << (attempt - 2)
			c.metrics.Retries.Inc()
			c.logger.Warn("retrying remote request",
				"op", op, "attempt", attempt, "delay", delay, "error", lastErr)
			if err := c.sleep(ctx, delay); err != nil {
				return err
			}
		}

		retry, err := c.attempt(ctx, op, method, path, token, payload, out)
		if err == nil {
			c.metrics.Requests.WithLabelValues(op, "ok").Inc()
			return nil
		}
		lastErr = err

		switch {
		case persistence.IsAuth(err):
			c.metrics.Requests.WithLabelValues(op, "auth").Inc()
			c.metrics.AuthFailures.Inc()
			if authenticated {
				c.invalidate()
			}
			return err
		case !retry:
			c.metrics.Requests.WithLabelValues(op, "error").Inc()
			return err
		}
		c.metrics.Requests.WithLabelValues(op, "retry").Inc()
	}

	c.logger.Error("remote request failed", "op", op, "attempts", c.maxAttempts, "error", lastErr)
	return lastErr
}

// attempt sends a single HTTP request
func (c *Client) attempt(ctx context.Context, op, method, path, token string, payload []byte, out any) (retry bool, err error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return false, fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		return true, &StatusError{Op: op, Kind: persistence.ErrConnectivity, Cause: err}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		if err := resp.Body.Close(); err != nil {
			c.logger.Debug("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		kind, retry := classify(resp.StatusCode)
		return retry, &StatusError{Op: op, StatusCode: resp.StatusCode, Kind: kind}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return false, nil
	}
	// The backend has already applied the request, so a bad body is never retried
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, &StatusError{Op: op, StatusCode: resp.StatusCode, Kind: persistence.ErrConnectivity, Cause: err}
	}
	return false, nil
}

// invalidate drops the session and notifies the owner
func (c *Client) invalidate() {
	c.mu.Lock()
	hadSession := c.session != nil
	c.session = nil
	c.mu.Unlock()

	if hadSession {
		c.logger.Warn("remote session invalidated")
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

func snippetPath(id string) string {
	return api.SnippetsPath + "/" + url.PathEscape(id)
}

// flatten converts the wire record into a board snippet
func flatten(rec api.Snippet, now time.Time) models.Snippet {
	return models.Snippet{
		ID:       rec.ID,
		Title:    rec.Data.Title,
		Code:     rec.Data.Code,
		Color:    models.NormalizeColor(models.Color(rec.Data.Color)),
		Category: rec.Data.Category,
		OrderKey: rec.Data.Meta.OrderKey(now),
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
