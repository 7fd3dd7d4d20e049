// Package forms holds the small field/form toolkit used by the board dialogs.
package forms

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// FormState represents the state of the form
type FormState int

const (
	StateInProgress FormState = iota
	StateCompleted
	StateAborted
)

// TitleStyle renders field titles. The TUI replaces it when a theme is applied.
var TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

// Field is the interface that all form fields must implement
type Field interface {
	// Update handles messages and updates the field
	Update(tea.Msg) (Field, tea.Cmd)

	// View renders the field
	View() string

	// Focus focuses the field
	Focus() tea.Cmd

	// Blur removes focus from the field
	Blur()

	// Focused returns whether the field is focused
	Focused() bool

	// Key returns the field's key (used to retrieve values)
	Key() string

	// Value returns the field's current value
	Value() string
}

// multiline is implemented by fields that consume enter themselves
type multiline interface {
	Multiline() bool
}

// Form manages a collection of fields.
// esc aborts, tab and shift+tab move focus, ctrl+s submits from anywhere and
// enter submits from a single-line last field.
type Form struct {
	fields       []Field
	focusedIndex int
	state        FormState
}

// NewForm creates a new form with the given fields
func NewForm(fields ...Field) *Form {
	return &Form{
		fields:       fields,
		focusedIndex: 0,
		state:        StateInProgress,
	}
}

// Init initializes the form
func (f *Form) Init() tea.Cmd {
	if len(f.fields) > 0 {
		return f.fields[0].Focus()
	}
	return nil
}

// Update handles messages for the form
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	if f.state != StateInProgress || len(f.fields) == 0 {
		return f, nil
	}

	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "esc":
			f.state = StateAborted
			return f, nil

		case "tab", "shift+tab":
			return f, f.handleTabNavigation(keyMsg.String() == "shift+tab")

		case "ctrl+s":
			f.state = StateCompleted
			return f, nil

		case "enter":
			if f.focusedIndex == len(f.fields)-1 && !isMultiline(f.fields[f.focusedIndex]) {
				f.state = StateCompleted
				return f, nil
			}
			if !isMultiline(f.fields[f.focusedIndex]) {
				return f, f.handleTabNavigation(false)
			}
		}
	}

	if f.focusedIndex < len(f.fields) {
		var cmd tea.Cmd
		f.fields[f.focusedIndex], cmd = f.fields[f.focusedIndex].Update(msg)
		return f, cmd
	}

	return f, nil
}

func isMultiline(field Field) bool {
	m, ok := field.(multiline)
	return ok && m.Multiline()
}

// handleTabNavigation moves focus between fields
func (f *Form) handleTabNavigation(reverse bool) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}

	f.fields[f.focusedIndex].Blur()

	if reverse {
		f.focusedIndex--
		if f.focusedIndex < 0 {
			f.focusedIndex = len(f.fields) - 1
		}
	} else {
		f.focusedIndex++
		if f.focusedIndex >= len(f.fields) {
			f.focusedIndex = 0
		}
	}

	return f.fields[f.focusedIndex].Focus()
}

// View renders the form
func (f *Form) View() string {
	s := ""
	for _, field := range f.fields {
		s += field.View() + "\n\n"
	}
	return s
}

// State returns the current form state
func (f *Form) State() FormState {
	return f.state
}

// Focused returns the key of the focused field
func (f *Form) Focused() string {
	if f.focusedIndex < len(f.fields) {
		return f.fields[f.focusedIndex].Key()
	}
	return ""
}

// Value returns the value of the field with key, or "" if there is none
func (f *Form) Value(key string) string {
	for _, field := range f.fields {
		if field.Key() == key {
			return field.Value()
		}
	}
	return ""
}
