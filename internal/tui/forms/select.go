package forms

import (
	"slices"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// Select picks one option from a short horizontal list
type Select struct {
	key     string
	title   string
	options []string
	focused bool
	cursor  int

	// Render styles a single option; nil renders the plain label
	Render func(option string, selected bool) string
}

// NewSelect creates a select field with value preselected when it is one of options
func NewSelect(key, title string, options []string, value string) *Select {
	cursor := max(slices.Index(options, value), 0)
	return &Select{
		key:     key,
		title:   title,
		options: options,
		cursor:  cursor,
	}
}

// Update handles messages
func (s *Select) Update(msg tea.Msg) (Field, tea.Cmd) {
	if !s.focused {
		return s, nil
	}

	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "left", "h":
			if s.cursor > 0 {
				s.cursor--
			}
		case "right", "l":
			if s.cursor < len(s.options)-1 {
				s.cursor++
			}
		}
	}

	return s, nil
}

// View renders the options on one line with the selected one marked
func (s *Select) View() string {
	cursorStyle := lipgloss.NewStyle().Bold(true).Underline(true)

	line := ""
	for i, option := range s.options {
		selected := i == s.cursor
		label := option
		if s.Render != nil {
			label = s.Render(option, selected)
		}
		if selected {
			label = cursorStyle.Render("[" + label + "]")
		} else {
			label = " " + label + " "
		}
		line += label
	}
	return TitleStyle.Render(s.title) + "\n" + line
}

// Focus focuses the field
func (s *Select) Focus() tea.Cmd {
	s.focused = true
	return nil
}

// Blur removes focus
func (s *Select) Blur() {
	s.focused = false
}

// Focused returns whether the field is focused
func (s *Select) Focused() bool {
	return s.focused
}

// Key returns the field key
func (s *Select) Key() string {
	return s.key
}

// Value returns the selected option
func (s *Select) Value() string {
	if s.cursor < len(s.options) {
		return s.options[s.cursor]
	}
	return ""
}
