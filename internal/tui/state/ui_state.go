// Package state holds the view state of the board TUI. Board data itself lives
// in the board controller; these types only track what the user is looking at.
package state

// Mode represents the current interaction mode of the TUI.
// Each mode determines which keyboard shortcuts are active and what UI is displayed.
type Mode int

const (
	NormalMode        Mode = iota // Default navigation mode
	HelpMode                      // Displaying help screen
	SearchMode                    // Typing a search filter (/)
	SnippetFormMode               // Adding or editing a snippet
	RenameColumnMode              // Renaming the selected column
	LoginMode                     // Entering remote credentials
	DeleteConfirmMode             // Confirming snippet deletion
)

// UIState manages the user interface state.
// This includes navigation (column/snippet selection), the grabbed snippet,
// viewport scrolling, terminal dimensions, and the current interaction mode.
type UIState struct {
	selectedColumn  int
	selectedSnippet int

	// grabbed is the ID of the snippet being dragged, "" when nothing is held
	grabbed string

	// editing is the ID of the snippet open in the form, "" for a new snippet
	editing string

	// expanded holds the IDs of cards showing their full code
	expanded map[string]bool

	width  int
	height int
	mode   Mode

	// viewportOffset is the index of the leftmost visible column
	viewportOffset int

	// viewportSize is the number of columns that fit on the screen
	viewportSize int

	// scrollOffsets tracks the index of the first visible snippet per column index
	scrollOffsets map[int]int
}

// NewUIState creates a new UIState with default values.
func NewUIState() *UIState {
	return &UIState{
		mode:          NormalMode,
		viewportSize:  1, // recalculated when width is set
		scrollOffsets: make(map[int]int),
		expanded:      make(map[string]bool),
	}
}

// SelectedColumn returns the index of the currently selected column.
func (s *UIState) SelectedColumn() int {
	return s.selectedColumn
}

// SetSelectedColumn updates the selected column index.
func (s *UIState) SetSelectedColumn(index int) {
	s.selectedColumn = index
}

// SelectedSnippet returns the index of the selected snippet within the selected column.
func (s *UIState) SelectedSnippet() int {
	return s.selectedSnippet
}

// SetSelectedSnippet updates the selected snippet index.
func (s *UIState) SetSelectedSnippet(index int) {
	s.selectedSnippet = index
}

// Grabbed returns the ID of the held snippet
func (s *UIState) Grabbed() string {
	return s.grabbed
}

// Grab picks up the snippet with id
func (s *UIState) Grab(id string) {
	s.grabbed = id
}

// Drop releases the held snippet
func (s *UIState) Drop() {
	s.grabbed = ""
}

// Editing returns the ID of the snippet being edited
func (s *UIState) Editing() string {
	return s.editing
}

// SetEditing records which snippet the form edits ("" for a new one)
func (s *UIState) SetEditing(id string) {
	s.editing = id
}

// ToggleExpanded flips whether the card with id shows its full code
func (s *UIState) ToggleExpanded(id string) {
	if s.expanded[id] {
		delete(s.expanded, id)
		return
	}
	s.expanded[id] = true
}

// IsExpanded reports whether the card with id shows its full code
func (s *UIState) IsExpanded(id string) bool {
	return s.expanded[id]
}

// ExpandedCards returns the set of expanded card IDs. Callers must not modify it.
func (s *UIState) ExpandedCards() map[string]bool {
	return s.expanded
}

// Width returns the current terminal width.
func (s *UIState) Width() int {
	return s.width
}

// SetWidth updates the terminal width and recalculates viewport size.
func (s *UIState) SetWidth(width int) {
	s.width = width
	s.calculateViewportSize()
}

// Height returns the current terminal height.
func (s *UIState) Height() int {
	return s.height
}

// SetHeight updates the terminal height.
func (s *UIState) SetHeight(height int) {
	s.height = height
}

// ContentHeight returns the height left for columns once the header and
// status bar are drawn, with a minimum of 5.
func (s *UIState) ContentHeight() int {
	const headerHeight = 3
	const statusBarHeight = 2
	return max(s.height-headerHeight-statusBarHeight, 5)
}

// Mode returns the current interaction mode.
func (s *UIState) Mode() Mode {
	return s.mode
}

// SetMode updates the current interaction mode.
func (s *UIState) SetMode(mode Mode) {
	s.mode = mode
}

// ViewportOffset returns the index of the leftmost visible column.
func (s *UIState) ViewportOffset() int {
	return s.viewportOffset
}

// SetViewportOffset updates the viewport offset.
func (s *UIState) SetViewportOffset(offset int) {
	s.viewportOffset = offset
}

// ViewportSize returns the number of columns that fit on screen.
func (s *UIState) ViewportSize() int {
	return s.viewportSize
}

// ColumnWidth is the outer width of one rendered column including spacing
const ColumnWidth = 38

// calculateViewportSize calculates how many columns fit in the terminal width,
// keeping 4 characters for margins and always showing at least one column.
func (s *UIState) calculateViewportSize() {
	if s.width == 0 {
		s.viewportSize = 1
		return
	}

	const reservedWidth = 4
	s.viewportSize = max(1, (s.width-reservedWidth)/ColumnWidth)
}

// EnsureSelectionVisible adjusts the viewport to ensure the selected column is visible.
func (s *UIState) EnsureSelectionVisible(selectedColumn int) {
	if selectedColumn < s.viewportOffset {
		s.viewportOffset = selectedColumn
	}
	if selectedColumn >= s.viewportOffset+s.viewportSize {
		s.viewportOffset = selectedColumn - s.viewportSize + 1
	}
}

// Clamp keeps the selection inside the board after its contents changed.
// columnLens holds the number of visible snippets per column.
func (s *UIState) Clamp(columnLens []int) {
	if len(columnLens) == 0 {
		s.selectedColumn, s.selectedSnippet, s.viewportOffset = 0, 0, 0
		return
	}
	s.selectedColumn = min(max(s.selectedColumn, 0), len(columnLens)-1)
	s.selectedSnippet = min(max(s.selectedSnippet, 0), max(columnLens[s.selectedColumn]-1, 0))
	s.EnsureSelectionVisible(s.selectedColumn)
}

// ScrollOffset returns the index of the first visible snippet in a column.
func (s *UIState) ScrollOffset(column int) int {
	return s.scrollOffsets[column]
}

// EnsureSnippetVisible adjusts the scroll offset so the selected snippet is on screen.
func (s *UIState) EnsureSnippetVisible(column, selected, visibleCount int) {
	offset := s.scrollOffsets[column]
	if selected < offset {
		offset = selected
	}
	if visibleCount > 0 && selected >= offset+visibleCount {
		offset = selected - visibleCount + 1
	}
	s.scrollOffsets[column] = max(0, offset)
}
