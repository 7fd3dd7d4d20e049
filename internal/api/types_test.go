package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_DecodesStringAndMillis(t *testing.T) {
	var meta Meta
	err := json.Unmarshal([]byte(`{"created_at": 1700000000000, "updated_at": "2024-01-02T03:04:05.006Z"}`), &meta)
	require.NoError(t, err)

	assert.Equal(t, int64(1700000000000), meta.CreatedAt.UnixMilli())
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.UTC).UnixMilli(), meta.UpdatedAt.UnixMilli())
}

func TestTimestamp_NullIsMissing(t *testing.T) {
	var meta Meta
	require.NoError(t, json.Unmarshal([]byte(`{"created_at": null}`), &meta))

	assert.Nil(t, meta.UpdatedAt)
	now := time.UnixMilli(42)
	assert.Equal(t, int64(42), meta.OrderKey(now))
}

func TestTimestamp_RejectsGarbage(t *testing.T) {
	var meta Meta
	assert.Error(t, json.Unmarshal([]byte(`{"created_at": "yesterday"}`), &meta))
}

func TestMeta_OrderKeyPrecedence(t *testing.T) {
	created := NewTimestamp(time.UnixMilli(100))
	updated := NewTimestamp(time.UnixMilli(200))
	now := time.UnixMilli(300)

	tests := []struct {
		name string
		meta Meta
		want int64
	}{
		{"updated wins", Meta{CreatedAt: created, UpdatedAt: updated}, 200},
		{"created fallback", Meta{CreatedAt: created}, 100},
		{"now fallback", Meta{}, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.meta.OrderKey(now))
		})
	}
}
