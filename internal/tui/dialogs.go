package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/snipboard/internal/models"
	"github.com/thenoetrevino/snipboard/internal/tui/components"
	"github.com/thenoetrevino/snipboard/internal/tui/forms"
	"github.com/thenoetrevino/snipboard/internal/tui/layers"
	"github.com/thenoetrevino/snipboard/internal/tui/state"
	"github.com/thenoetrevino/snipboard/internal/tui/theme"
	"github.com/thenoetrevino/snipboard/internal/user"
)

// Form field keys
const (
	fieldTitle    = "title"
	fieldCode     = "code"
	fieldColor    = "color"
	fieldUsername = "username"
	fieldPassword = "password"
)

// ============================================================================
// OPENING DIALOGS
// ============================================================================

// openSnippetForm opens the add form, or the edit form for s when editing
func (m Model) openSnippetForm(s models.Snippet, editing bool) (tea.Model, tea.Cmd) {
	if !m.board.State().Interactive() {
		m.notify(state.LevelWarning, "The board is "+m.board.State().String())
		return m, nil
	}

	colors := make([]string, len(models.Palette))
	for i, c := range models.Palette {
		colors[i] = string(c)
	}
	colorField := forms.NewSelect(fieldColor, "Color (←/→)", colors, string(models.NormalizeColor(s.Color)))
	colorField.Render = func(option string, _ bool) string {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(models.Color(option).Hex())).Render("■ " + option)
	}

	code := forms.NewTextArea(fieldCode, "Code (ctrl+s saves)", "Paste or type code...", 8, s.Code)
	code.SetWidth(layers.DialogWidth(m.uiState.Width()))

	m.form = forms.NewForm(
		forms.NewTextInput(fieldTitle, "Title", "Snippet title...", s.Title),
		code,
		colorField,
	)
	m.uiState.Drop()
	m.uiState.SetEditing("")
	if editing {
		m.uiState.SetEditing(s.ID)
	}
	m.uiState.SetMode(state.SnippetFormMode)
	return m, m.form.Init()
}

func (m Model) openRenameForm() (tea.Model, tea.Cmd) {
	column, ok := m.currentColumn()
	if !ok {
		return m, nil
	}
	m.form = forms.NewForm(forms.NewTextInput(fieldTitle, "Rename column", "Column title...", column.Title))
	m.uiState.Drop()
	m.uiState.SetMode(state.RenameColumnMode)
	return m, m.form.Init()
}

func (m Model) openLoginForm() (tea.Model, tea.Cmd) {
	if m.board.Mode() != models.ModeRemote {
		m.notify(state.LevelWarning, "Switch to remote storage with "+m.config.KeyMappings.ToggleMode+" first")
		return m, nil
	}
	m.form = forms.NewForm(
		forms.NewTextInput(fieldUsername, "Username", "", user.LoginName(m.board.Settings().Username)),
		forms.NewPasswordInput(fieldPassword, "Password"),
	)
	m.uiState.Drop()
	m.uiState.SetMode(state.LoginMode)
	return m, m.form.Init()
}

// ============================================================================
// FORM MODE
// ============================================================================

// handleFormMode forwards keys to the open form and acts once it completes
func (m Model) handleFormMode(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.uiState.SetMode(state.NormalMode)
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)

	switch m.form.State() {
	case forms.StateAborted:
		return m.closeForm(), nil
	case forms.StateCompleted:
		return m.submitForm()
	}
	return m, cmd
}

func (m Model) closeForm() Model {
	m.form = nil
	m.uiState.SetEditing("")
	m.uiState.SetMode(state.NormalMode)
	return m
}

// submitForm applies the completed form of the current mode
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	form, mode, editing := m.form, m.uiState.Mode(), m.uiState.Editing()
	m = m.closeForm()

	switch mode {
	case state.SnippetFormMode:
		title := strings.TrimSpace(form.Value(fieldTitle))
		code := form.Value(fieldCode)
		color := models.Color(form.Value(fieldColor))

		if editing != "" {
			patch := models.Patch{Title: &title, Code: &code, Color: &color}
			if err := m.board.EditSnippet(editing, patch); err != nil {
				m.report(err)
				return m, nil
			}
			m.notify(state.LevelInfo, "Saved '"+title+"'")
			return m, m.waitCommitted("edit")
		}

		column, _ := m.currentColumn()
		draft := models.Draft{Title: title, Code: code, Color: color, Category: column.Title}
		b, ctx := m.board, m.ctx
		return m, func() tea.Msg {
			s, err := b.CreateSnippet(ctx, draft)
			return createdMsg{snippet: s, err: err}
		}

	case state.RenameColumnMode:
		column, ok := m.currentColumn()
		if !ok {
			return m, nil
		}
		if err := m.board.RenameColumn(column.Index, form.Value(fieldTitle)); err != nil {
			m.report(err)
			return m, nil
		}
		return m, m.waitCommitted("rename")

	case state.LoginMode:
		username, password := strings.TrimSpace(form.Value(fieldUsername)), form.Value(fieldPassword)
		b, ctx := m.board, m.ctx
		m.notify(state.LevelInfo, "Logging in as "+username+"...")
		return m, func() tea.Msg {
			return loginMsg{err: b.Login(ctx, username, password)}
		}
	}
	return m, nil
}

// ============================================================================
// RENDERING
// ============================================================================

// renderDialog renders the modal of the current mode, or "" when there is none
func (m Model) renderDialog() string {
	box := components.DialogStyle().Width(layers.DialogWidth(m.uiState.Width()) + 6)
	hint := components.SubtleStyle()

	switch m.uiState.Mode() {
	case state.SnippetFormMode:
		heading := "New snippet"
		if m.uiState.Editing() != "" {
			heading = "Edit snippet"
		}
		return box.Render(components.TitleStyle().Render(heading) + "\n\n" + m.formView() +
			hint.Render("tab: next field · ctrl+s: save · esc: cancel"))
	case state.RenameColumnMode, state.LoginMode:
		return box.Render(m.formView() + hint.Render("enter: confirm · esc: cancel"))
	case state.DeleteConfirmMode:
		s, ok := m.currentSnippet()
		if !ok {
			return ""
		}
		danger := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ErrorFg))
		return box.BorderForeground(lipgloss.Color(theme.ErrorFg)).
			Render(danger.Render("Delete '"+s.Title+"'?") + "\n\n[y]es  [n]o")
	case state.HelpMode:
		return box.Render(m.helpText())
	}
	return ""
}

func (m Model) formView() string {
	if m.form == nil {
		return ""
	}
	return m.form.View()
}
