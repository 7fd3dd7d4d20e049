// Package api holds the JSON shapes exchanged with the remote snippet backend
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Resource paths, relative to the backend base URL
const (
	SnippetsPath = "/api/snippets"
	LoginPath    = "/api/auth/login"
)

// Snippet is the enriched record returned by list and write endpoints
type Snippet struct {
	ID   string      `json:"id"`
	Data SnippetData `json:"data"`
}

// SnippetData is the payload part of a stored snippet
type SnippetData struct {
	Title    string `json:"title"`
	Code     string `json:"code"`
	Color    string `json:"color"`
	Category string `json:"category"`
	Meta     Meta   `json:"meta"`
}

// Meta carries the backend timestamps. Either may be missing.
type Meta struct {
	CreatedAt *Timestamp `json:"created_at,omitempty"`
	UpdatedAt *Timestamp `json:"updated_at,omitempty"`
}

// WriteRequest is the body of POST and PUT. PUT treats missing fields as unchanged.
type WriteRequest struct {
	Title    *string `json:"title,omitempty"`
	Code     *string `json:"code,omitempty"`
	Color    *string `json:"color,omitempty"`
	Category *string `json:"category,omitempty"`
}

// LoginRequest is the body of the login endpoint
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on a successful login
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ErrorResponse is the body of every non-2xx reply from the mock backend
type ErrorResponse struct {
	Error string `json:"error"`
}

// Timestamp decodes either epoch milliseconds or an RFC 3339 string,
// and encodes as RFC 3339 with nanoseconds.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

// MarshalJSON implements json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
		t.Time = parsed
		return nil
	}

	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", data, err)
	}
	t.Time = time.UnixMilli(ms)
	return nil
}

// OrderKey derives a snippet's order key: updated_at, else created_at, else now
func (m Meta) OrderKey(now time.Time) int64 {
	switch {
	case m.UpdatedAt != nil && !m.UpdatedAt.IsZero():
		return m.UpdatedAt.UnixMilli()
	case m.CreatedAt != nil && !m.CreatedAt.IsZero():
		return m.CreatedAt.UnixMilli()
	}
	return now.UnixMilli()
}
