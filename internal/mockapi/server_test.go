package mockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/snipboard/internal/api"
	"github.com/thenoetrevino/snipboard/internal/models"
	"github.com/thenoetrevino/snipboard/internal/persistence"
	"github.com/thenoetrevino/snipboard/internal/remote"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeClock is a settable clock; reads do not advance it
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time { return f.t }

func newTestServer(t *testing.T) (*Server, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	srv := NewServer(Config{
		Users:    map[string]string{"dev": "secret"},
		TokenTTL: time.Hour,
	}, WithClock(clock.now))
	return srv, clock
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, api.LoginPath, "", api.LoginRequest{Username: "dev", Password: "secret"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp api.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func ptr[T any](v T) *T { return &v }

// ============================================================================
// Authentication
// ============================================================================

func TestLogin(t *testing.T) {
	srv, clock := newTestServer(t)
	h := srv.Handler()

	t.Run("valid credentials issue a token", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, api.LoginPath, "", api.LoginRequest{Username: "dev", Password: "secret"})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.ExpiresAt.Equal(clock.t.Add(time.Hour)))
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, api.LoginPath, "", api.LoginRequest{Username: "dev", Password: "x"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, api.LoginPath, "", map[string]string{"username": "dev"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSnippetRoutesRequireToken(t *testing.T) {
	srv, clock := newTestServer(t)
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodGet, api.SnippetsPath, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodGet, api.SnippetsPath, "made-up", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := login(t, h)
	rec = doJSON(t, h, http.MethodGet, api.SnippetsPath, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	clock.t = clock.t.Add(time.Hour)
	rec = doJSON(t, h, http.MethodGet, api.SnippetsPath, token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "token expires after its TTL")
}

func TestRevokeTokens(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()
	token := login(t, h)

	srv.RevokeTokens()

	rec := doJSON(t, h, http.MethodGet, api.SnippetsPath, token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0.0, testutil.ToFloat64(srv.Metrics().ActiveSessions))
}

// ============================================================================
// Snippet CRUD
// ============================================================================

func TestSnippetLifecycle(t *testing.T) {
	srv, clock := newTestServer(t)
	h := srv.Handler()
	token := login(t, h)

	rec := doJSON(t, h, http.MethodPost, api.SnippetsPath, token, api.WriteRequest{
		Title: ptr("Hook"), Code: ptr("useState()"), Color: ptr("Blauw"), Category: ptr("Review"),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created api.Snippet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Blauw", created.Data.Color)
	require.NotNil(t, created.Data.Meta.UpdatedAt)

	rec = doJSON(t, h, http.MethodPut, api.SnippetsPath+"/"+created.ID, token, api.WriteRequest{Category: ptr("Voltooid")})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated api.Snippet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Voltooid", updated.Data.Category)
	assert.Equal(t, "Hook", updated.Data.Title, "missing fields are unchanged")
	assert.True(t, updated.Data.Meta.UpdatedAt.After(created.Data.Meta.UpdatedAt.Time),
		"updated_at must advance even when the clock does not")
	assert.Equal(t, clock.t.UnixMilli(), updated.Data.Meta.CreatedAt.UnixMilli())

	rec = doJSON(t, h, http.MethodGet, api.SnippetsPath, token, nil)
	var listed []api.Snippet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)

	rec = doJSON(t, h, http.MethodDelete, api.SnippetsPath+"/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, api.SnippetsPath+"/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodPut, api.SnippetsPath+"/"+created.ID, token, api.WriteRequest{Title: ptr("x")})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()
	token := login(t, h)

	tests := []struct {
		name string
		body api.WriteRequest
	}{
		{"missing title", api.WriteRequest{Code: ptr("x")}},
		{"missing code", api.WriteRequest{Title: ptr("x")}},
		{"blank title", api.WriteRequest{Title: ptr("  "), Code: ptr("x")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, api.SnippetsPath, token, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	rec := doJSON(t, h, http.MethodPost, api.SnippetsPath, token, api.WriteRequest{
		Title: ptr("t"), Code: ptr("c"), Color: ptr("Magenta"),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"color":"Default"`)
}

// ============================================================================
// Fault injection and metrics
// ============================================================================

func TestInjectFailures(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()
	token := login(t, h)

	srv.InjectFailures(2, http.StatusServiceUnavailable)

	assert.Equal(t, http.StatusServiceUnavailable, doJSON(t, h, http.MethodGet, api.SnippetsPath, token, nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, doJSON(t, h, http.MethodGet, api.SnippetsPath, token, nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, h, http.MethodGet, api.SnippetsPath, token, nil).Code)
	assert.Equal(t, 2.0, testutil.ToFloat64(srv.Metrics().InjectedFaults))
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()
	token := login(t, h)
	doJSON(t, h, http.MethodPost, api.SnippetsPath, token, api.WriteRequest{Title: ptr("t"), Code: ptr("c")})

	rec := doJSON(t, h, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "snipboard_mockapi_stored_snippets 1")
	assert.True(t, strings.Contains(body, `snipboard_mockapi_requests_total{code="201",route="/api/snippets"} 1`), body)
}

// ============================================================================
// Remote adapter against the mock backend
// ============================================================================

func TestRemoteClientRoundTrip(t *testing.T) {
	srv, clock := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	var delays []time.Duration
	client, err := remote.NewClient(ts.URL,
		remote.WithClock(clock.now),
		remote.WithSleeper(func(_ context.Context, d time.Duration) error {
			delays = append(delays, d)
			return nil
		}),
	)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = client.LoadAll(ctx)
	require.ErrorIs(t, err, persistence.ErrAuth, "no session yet")

	_, err = client.Login(ctx, "dev", "secret")
	require.NoError(t, err)

	a, err := client.Create(ctx, models.Draft{Title: "A", Code: "a", Category: "Review"})
	require.NoError(t, err)
	b, err := client.Create(ctx, models.Draft{Title: "B", Code: "b", Category: "Review"})
	require.NoError(t, err)
	assert.Greater(t, b.OrderKey, a.OrderKey, "later writes sort first")

	srv.InjectFailures(2, http.StatusInternalServerError)
	moved, err := client.Update(ctx, a.ID, models.PlacementPatch(models.Snippet{ID: a.ID, Category: "Voltooid"}))
	require.NoError(t, err)
	assert.Equal(t, "Voltooid", moved.Category)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, delays)

	all, err := client.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, a.ID, all[0].ID, "the last write has the newest key")

	require.NoError(t, client.Delete(ctx, b.ID))
	assert.ErrorIs(t, client.Delete(ctx, b.ID), persistence.ErrNotFound)

	srv.RevokeTokens()
	_, err = client.LoadAll(ctx)
	assert.ErrorIs(t, err, persistence.ErrAuth)
	assert.Nil(t, client.Session())
}

func TestServeStopsOnCancel(t *testing.T) {
	srv, _ := newTestServer(t)
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, listener) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + listener.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
