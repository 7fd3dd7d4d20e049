package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/snipboard/internal/api"
	"github.com/thenoetrevino/snipboard/internal/models"
	"github.com/thenoetrevino/snipboard/internal/persistence"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// recordingSleeper records backoff delays without waiting
type recordingSleeper struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *recordingSleeper) sleep(_ context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delays = append(r.delays, d)
	return nil
}

func (r *recordingSleeper) recorded() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.delays...)
}

func validSession() *models.Session {
	return &models.Session{Token: "tok-1", Username: "dev", ValidUntil: testNow.Add(time.Hour)}
}

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *recordingSleeper) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sleeper := &recordingSleeper{}
	base := []Option{
		WithSleeper(sleeper.sleep),
		WithClock(func() time.Time { return testNow }),
		WithSession(validSession()),
	}
	c, err := NewClient(srv.URL, append(base, opts...)...)
	require.NoError(t, err)
	return c, sleeper
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ============================================================================
// Retry policy
// ============================================================================

func TestClient_RetriesTransientFailuresWithBackoff(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(t, w, http.StatusOK, []api.Snippet{})
	})

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	c, sleeper := newTestClient(t, handler, WithMetrics(metrics))

	snippets, err := c.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snippets)

	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, sleeper.recorded())
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Retries))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Requests.WithLabelValues("load", "ok")))
}

func TestClient_CreateRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var body api.WriteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(t, w, http.StatusCreated, api.Snippet{ID: "s9", Data: api.SnippetData{
			Title: *body.Title, Code: *body.Code, Color: *body.Color, Category: *body.Category,
			Meta: api.Meta{CreatedAt: api.NewTimestamp(testNow)},
		}})
	})
	c, sleeper := newTestClient(t, handler)

	got, err := c.Create(context.Background(), models.Draft{Title: "Retry", Code: "go run .", Category: "Review"})
	require.NoError(t, err)

	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, sleeper.recorded())
	assert.Equal(t, models.Snippet{
		ID:       "s9",
		Title:    "Retry",
		Code:     "go run .",
		Color:    models.ColorDefault,
		Category: "Review",
		OrderKey: testNow.UnixMilli(),
	}, got)
}

func TestClient_UndecodableSuccessIsNotResent(t *testing.T) {
	var posts atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posts.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"s1","data":`))
	})
	c, sleeper := newTestClient(t, handler)

	_, err := c.Create(context.Background(), models.Draft{Title: "T", Code: "x", Category: "Review"})
	require.Error(t, err)
	assert.ErrorIs(t, err, persistence.ErrConnectivity)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusCreated, statusErr.StatusCode)

	assert.Equal(t, int32(1), posts.Load())
	assert.Empty(t, sleeper.recorded())
}

func TestClient_GivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	c, sleeper := newTestClient(t, handler)

	_, err := c.LoadAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, persistence.ErrConnectivity)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)

	assert.Equal(t, int32(DefaultMaxAttempts), calls.Load())
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, sleeper.recorded())
}

func TestClient_BackoffDoublesUpToConfiguredAttempts(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	c, sleeper := newTestClient(t, handler, WithRetryPolicy(4, time.Second))

	err := c.Delete(context.Background(), "s1")
	require.Error(t, err)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, sleeper.recorded())
}

func TestClient_UnreachableBackendIsConnectivityError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	sleeper := &recordingSleeper{}
	c, err := NewClient(url,
		WithSleeper(sleeper.sleep),
		WithClock(func() time.Time { return testNow }),
		WithSession(validSession()),
	)
	require.NoError(t, err)

	_, err = c.LoadAll(context.Background())
	assert.ErrorIs(t, err, persistence.ErrConnectivity)
	assert.Len(t, sleeper.recorded(), DefaultMaxAttempts-1)
}

func TestClient_CancelledContextStopsRetrying(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	ctx, cancel := context.WithCancel(context.Background())
	sleepCalls := 0
	cancelOnSleep := func(ctx context.Context, d time.Duration) error {
		sleepCalls++
		cancel()
		return ctx.Err()
	}
	c, _ := newTestClient(t, handler, WithSleeper(cancelOnSleep))

	_, err := c.LoadAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, sleepCalls)
}

// ============================================================================
// Authentication
// ============================================================================

func TestClient_UnauthorizedIsNotRetriedAndClearsSession(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			var calls atomic.Int32
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(status)
			})

			var notified atomic.Int32
			c, sleeper := newTestClient(t, handler, OnUnauthorized(func() { notified.Add(1) }))

			_, err := c.LoadAll(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, persistence.ErrAuth)
			assert.True(t, persistence.IsAuth(err))

			assert.Equal(t, int32(1), calls.Load(), "auth failures must not be retried")
			assert.Empty(t, sleeper.recorded())
			assert.Nil(t, c.Session(), "session should be invalidated")
			assert.Equal(t, int32(1), notified.Load())
		})
	}
}

func TestClient_ExpiredSessionFailsWithoutRequest(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(t, w, http.StatusOK, []api.Snippet{})
	})

	expired := &models.Session{Token: "old", ValidUntil: testNow.Add(-time.Minute)}
	c, _ := newTestClient(t, handler, WithSession(expired))

	_, err := c.LoadAll(context.Background())
	assert.ErrorIs(t, err, persistence.ErrAuth)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Zero(t, calls.Load())
	assert.Nil(t, c.Session())
}

func TestClient_MissingSessionFailsWithoutRequest(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})
	c, _ := newTestClient(t, handler)
	c.SetSession(nil)

	err := c.Delete(context.Background(), "s1")
	assert.ErrorIs(t, err, persistence.ErrAuth)
	assert.Zero(t, calls.Load())
}

func TestClient_SendsBearerToken(t *testing.T) {
	var got string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, []api.Snippet{})
	})
	c, _ := newTestClient(t, handler)

	_, err := c.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", got)
}

func TestClient_Login(t *testing.T) {
	expires := testNow.Add(2 * time.Hour)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, api.LoginPath, r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Username != "dev" || req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(t, w, http.StatusOK, api.LoginResponse{Token: "fresh", ExpiresAt: expires})
	})
	c, _ := newTestClient(t, handler)
	c.SetSession(nil)

	t.Run("valid credentials", func(t *testing.T) {
		session, err := c.Login(context.Background(), "dev", "secret")
		require.NoError(t, err)
		assert.Equal(t, "fresh", session.Token)
		assert.Equal(t, "dev", session.Username)
		assert.True(t, session.ValidUntil.Equal(expires))
		assert.Equal(t, "fresh", c.Session().Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := c.Login(context.Background(), "dev", "nope")
		assert.ErrorIs(t, err, persistence.ErrAuth)
	})
}

// ============================================================================
// Operations
// ============================================================================

func TestClient_LoadAllFlattensRecords(t *testing.T) {
	updated := testNow.Add(-time.Minute)
	created := testNow.Add(-time.Hour)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, []api.Snippet{
			{ID: "a", Data: api.SnippetData{
				Title: "A", Code: "a()", Color: "Groen", Category: "Review",
				Meta: api.Meta{CreatedAt: api.NewTimestamp(created), UpdatedAt: api.NewTimestamp(updated)},
			}},
			{ID: "b", Data: api.SnippetData{
				Title: "B", Code: "b()", Color: "Magenta", Category: "Review",
				Meta: api.Meta{CreatedAt: api.NewTimestamp(created)},
			}},
			{ID: "c", Data: api.SnippetData{Title: "C", Code: "c()", Category: "Review"}},
		})
	})
	c, _ := newTestClient(t, handler)

	snippets, err := c.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, snippets, 3)

	assert.Equal(t, models.Snippet{
		ID: "a", Title: "A", Code: "a()", Color: models.ColorGreen, Category: "Review",
		OrderKey: updated.UnixMilli(),
	}, snippets[0])
	assert.Equal(t, created.UnixMilli(), snippets[1].OrderKey, "falls back to created_at")
	assert.Equal(t, models.ColorDefault, snippets[1].Color, "unknown colors normalize")
	assert.Equal(t, testNow.UnixMilli(), snippets[2].OrderKey, "falls back to now")
}

func TestClient_UpdateSendsPatchFields(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		require.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		writeJSON(t, w, http.StatusOK, api.Snippet{ID: "x/1", Data: api.SnippetData{
			Title: "T", Category: "Voltooid",
			Meta: api.Meta{UpdatedAt: api.NewTimestamp(testNow)},
		}})
	})
	c, _ := newTestClient(t, handler)

	moved := models.Snippet{ID: "x/1", Category: "Voltooid", OrderKey: 42}
	got, err := c.Update(context.Background(), moved.ID, models.PlacementPatch(moved))
	require.NoError(t, err)

	assert.Equal(t, "/api/snippets/x%2F1", gotPath)
	assert.Equal(t, map[string]any{"category": "Voltooid"}, gotBody, "only set fields are sent")
	assert.Equal(t, testNow.UnixMilli(), got.OrderKey)
}

func TestClient_CreatePostsDraft(t *testing.T) {
	var gotBody api.WriteRequest
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		writeJSON(t, w, http.StatusCreated, api.Snippet{ID: "new", Data: api.SnippetData{
			Title: *gotBody.Title, Code: *gotBody.Code, Color: *gotBody.Color, Category: *gotBody.Category,
			Meta: api.Meta{CreatedAt: api.NewTimestamp(testNow)},
		}})
	})
	c, _ := newTestClient(t, handler)

	got, err := c.Create(context.Background(), models.Draft{Title: "T", Code: "x", Category: "Alle Snippets"})
	require.NoError(t, err)
	assert.Equal(t, "new", got.ID)
	assert.Equal(t, models.ColorDefault, got.Color)
	assert.Equal(t, "Default", *gotBody.Color)
}

func TestClient_DeleteMapsNotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == api.SnippetsPath+"/gone" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	c, sleeper := newTestClient(t, handler)

	require.NoError(t, c.Delete(context.Background(), "present"))

	err := c.Delete(context.Background(), "gone")
	assert.ErrorIs(t, err, persistence.ErrNotFound)
	assert.Empty(t, sleeper.recorded(), "not found is not retried")
}

func TestClient_BadRequestIsRejected(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, api.ErrorResponse{Error: "title is required"})
	})
	c, sleeper := newTestClient(t, handler)

	_, err := c.Create(context.Background(), models.Draft{Code: "x"})
	assert.ErrorIs(t, err, persistence.ErrRejected)
	assert.Empty(t, sleeper.recorded())
}

func TestNewClient_RejectsRelativeEndpoint(t *testing.T) {
	_, err := NewClient("localhost:8080")
	assert.Error(t, err)

	c, err := NewClient("http://localhost:8080/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.BaseURL())
	assert.Equal(t, models.ModeRemote, c.Mode())
}
