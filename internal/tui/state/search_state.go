package state

import "unicode/utf8"

// maxQueryLength bounds the search query in runes
const maxQueryLength = 100

// SearchState manages the vim-style search: the query text and whether the
// filter is applied to the board.
type SearchState struct {
	// Query is the current search text entered by the user
	Query string

	// IsActive indicates whether the search filter is applied
	IsActive bool
}

// NewSearchState creates a new SearchState with default values.
func NewSearchState() *SearchState {
	return &SearchState{}
}

// AppendText appends typed text to the query.
// Returns false when the query is already at its maximum length.
func (s *SearchState) AppendText(text string) bool {
	if text == "" || utf8.RuneCountInString(s.Query)+utf8.RuneCountInString(text) > maxQueryLength {
		return false
	}
	s.Query += text
	return true
}

// Backspace removes the last character from the search query.
// Returns true if a character was removed, false if query was already empty.
func (s *SearchState) Backspace() bool {
	if s.Query == "" {
		return false
	}
	_, size := utf8.DecodeLastRuneInString(s.Query)
	s.Query = s.Query[:len(s.Query)-size]
	return true
}

// Clear resets the search query to empty string.
func (s *SearchState) Clear() {
	s.Query = ""
}

// Activate applies the filter. Called when the user presses enter in search mode.
func (s *SearchState) Activate() {
	s.IsActive = true
}

// Deactivate clears the filter.
func (s *SearchState) Deactivate() {
	s.IsActive = false
}

// Filter returns the term the board should be filtered by: the query while it
// is being typed or applied, "" otherwise.
func (s *SearchState) Filter(mode Mode) string {
	if s.IsActive || mode == SearchMode {
		return s.Query
	}
	return ""
}
