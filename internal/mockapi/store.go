package mockapi

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thenoetrevino/snipboard/internal/api"
	"github.com/thenoetrevino/snipboard/internal/models"
)

var errNoSnippet = errors.New("snippet not found")

// record is a stored snippet with its server-side timestamps
type record struct {
	id        string
	title     string
	code      string
	color     string
	category  string
	createdAt time.Time
	updatedAt time.Time
}

func (r record) wire() api.Snippet {
	return api.Snippet{
		ID: r.id,
		Data: api.SnippetData{
			Title:    r.title,
			Code:     r.code,
			Color:    r.color,
			Category: r.category,
			Meta: api.Meta{
				CreatedAt: api.NewTimestamp(r.createdAt),
				UpdatedAt: api.NewTimestamp(r.updatedAt),
			},
		},
	}
}

// memoryStore keeps snippets in memory.
// Every write gets a strictly increasing updated_at, at millisecond resolution.
type memoryStore struct {
	mu      sync.Mutex
	records map[string]record
	last    time.Time
	now     func() time.Time
}

func newMemoryStore(now func() time.Time) *memoryStore {
	return &memoryStore{
		records: make(map[string]record),
		now:     now,
	}
}

// tick returns the next write time. Must be called with mu held.
func (s *memoryStore) tick() time.Time {
	t := s.now().UTC().Truncate(time.Millisecond)
	if !t.After(s.last) {
		t = s.last.Add(time.Millisecond)
	}
	s.last = t
	return t
}

func (s *memoryStore) list() []api.Snippet {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]api.Snippet, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.wire())
	}
	slices.SortFunc(out, func(a, b api.Snippet) int {
		return b.Data.Meta.UpdatedAt.Compare(a.Data.Meta.UpdatedAt.Time)
	})
	return out
}

func (s *memoryStore) create(req api.WriteRequest) api.Snippet {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := s.tick()
	r := record{
		id:        uuid.NewString(),
		color:     string(models.ColorDefault),
		createdAt: at,
		updatedAt: at,
	}
	r = applyWrite(r, req)
	s.records[r.id] = r
	return r.wire()
}

func (s *memoryStore) update(id string, req api.WriteRequest) (api.Snippet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok {
		return api.Snippet{}, errNoSnippet
	}
	r = applyWrite(r, req)
	r.updatedAt = s.tick()
	s.records[id] = r
	return r.wire(), nil
}

func (s *memoryStore) delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return errNoSnippet
	}
	delete(s.records, id)
	return nil
}

func (s *memoryStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func applyWrite(r record, req api.WriteRequest) record {
	if req.Title != nil {
		r.title = *req.Title
	}
	if req.Code != nil {
		r.code = *req.Code
	}
	if req.Color != nil {
		r.color = string(models.NormalizeColor(models.Color(*req.Color)))
	}
	if req.Category != nil {
		r.category = *req.Category
	}
	return r
}
