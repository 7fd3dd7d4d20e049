package models

import "strings"

// Snippet is a single card on the board.
// Category holds the literal title of the column the snippet lives in.
// OrderKey decides the position inside that column: higher keys are shown first.
type Snippet struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Code     string `json:"code"`
	Color    Color  `json:"color"`
	Category string `json:"category"`
	OrderKey int64  `json:"order_key"`
}

// GetID returns the snippet ID (used by the CLI quiet output)
func (s Snippet) GetID() string {
	return s.ID
}

// Matches reports whether the snippet title or code contains term, ignoring case.
// An empty term matches everything.
func (s Snippet) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Title), term) ||
		strings.Contains(strings.ToLower(s.Code), term)
}

// Draft is a snippet that has not been stored yet (no ID, no order key)
type Draft struct {
	Title    string `json:"title" validate:"required,max=255"`
	Code     string `json:"code" validate:"required"`
	Color    Color  `json:"color" validate:"omitempty,palette"`
	Category string `json:"category"`
}

// Patch carries a partial snippet update. Nil fields are left untouched.
type Patch struct {
	Title    *string `json:"title,omitempty"`
	Code     *string `json:"code,omitempty"`
	Color    *Color  `json:"color,omitempty"`
	Category *string `json:"category,omitempty"`
	OrderKey *int64  `json:"-"`
}

// IsEmpty reports whether the patch changes nothing
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Code == nil && p.Color == nil && p.Category == nil && p.OrderKey == nil
}

// Apply returns a copy of s with the patch applied
func (p Patch) Apply(s Snippet) Snippet {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Code != nil {
		s.Code = *p.Code
	}
	if p.Color != nil {
		s.Color = NormalizeColor(*p.Color)
	}
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.OrderKey != nil {
		s.OrderKey = *p.OrderKey
	}
	return s
}

// PlacementPatch builds the patch that persists a snippet's column and position
func PlacementPatch(s Snippet) Patch {
	category := s.Category
	key := s.OrderKey
	return Patch{Category: &category, OrderKey: &key}
}

// TitleFromClipboard derives a snippet title from pasted code:
// the first 12 characters of the trimmed text, with "..." when it was cut.
func TitleFromClipboard(text string) string {
	trimmed := strings.TrimSpace(text)
	runes := []rune(trimmed)
	if len(runes) <= ClipboardTitleLength {
		return trimmed
	}
	return strings.TrimSpace(string(runes[:ClipboardTitleLength])) + "..."
}
