package inboxview

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"triage/internal/dates"
	"triage/internal/tui/theme"
)

// PhrasePickerModel is a searchable suggestion dialog for date
// phrases ("today", "this friday", "last monday", ...). The typed text
// itself can be accepted even when it matches no suggestion; the
// caller decides whether it parses.
type PhrasePickerModel struct {
	textInput   textinput.Model
	suggestions []string
	cursor      int
	Width       int
}

// PhraseResultMsg is sent when a phrase is chosen or the picker is
// dismissed
type PhraseResultMsg struct {
	Phrase    string
	Cancelled bool
}

// NewPhrasePicker creates a phrase picker seeded with the empty-query
// suggestions
func NewPhrasePicker() *PhrasePickerModel {
	ti := textinput.New()
	ti.Placeholder = "today, this friday, last monday..."
	ti.Focus()
	ti.CharLimit = 64
	return &PhrasePickerModel{
		textInput:   ti,
		suggestions: dates.Suggest(""),
	}
}

// Init implements tea.Model
func (m *PhrasePickerModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key events and emits PhraseResultMsg on completion
func (m *PhrasePickerModel) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return func() tea.Msg {
				return PhraseResultMsg{Cancelled: true}
			}

		case "enter":
			phrase := m.textInput.Value()
			if m.cursor < len(m.suggestions) {
				phrase = m.suggestions[m.cursor]
			}
			return func() tea.Msg {
				return PhraseResultMsg{Phrase: phrase}
			}

		case "down", "ctrl+n", "tab":
			if len(m.suggestions) > 0 {
				m.cursor = (m.cursor + 1) % len(m.suggestions)
			}
			return nil

		case "up", "ctrl+p", "shift+tab":
			if len(m.suggestions) > 0 {
				m.cursor = (m.cursor + len(m.suggestions) - 1) % len(m.suggestions)
			}
			return nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.suggestions = dates.Suggest(m.textInput.Value())
	m.cursor = 0
	return cmd
}

// View renders the picker
func (m *PhrasePickerModel) View() string {
	content := theme.ModalTitle.Render("Move to daily note") + "\n\n"
	content += m.textInput.View() + "\n\n"

	for i, s := range m.suggestions {
		if i == m.cursor {
			content += theme.Cursor.Render("> ") + theme.SelectedBg.Render(s) + "\n"
		} else {
			content += "  " + s + "\n"
		}
	}

	content += "\n" + theme.ModalHelp.Render("↑/↓ choose  [enter] accept  [esc] cancel")
	return theme.ModalBox.Width(m.Width).Render(content)
}
