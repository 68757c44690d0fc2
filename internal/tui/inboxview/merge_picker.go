package inboxview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"triage/internal/tui/theme"
	"triage/internal/vault"
)

type mergeMode int

const (
	mergeModeSelect mergeMode = iota
	mergeModeFilter
	mergeModeName
)

// MergePickerModel is a fuzzy-searchable multi-select over inbox
// notes with a free-text name entry for the merged note.
type MergePickerModel struct {
	notes    []vault.Note
	filtered []int // indices into notes
	selected map[string]bool
	cursor   int
	mode     mergeMode
	input    textinput.Model
	query    string
	Width    int
	Height   int
}

// MergeRequestMsg carries the chosen notes and target name
type MergeRequestMsg struct {
	Notes []vault.Note
	Name  string
}

// MergeCancelledMsg dismisses the picker
type MergeCancelledMsg struct{}

// NewMergePicker creates a merge picker over the given inbox notes
func NewMergePicker(notes []vault.Note) *MergePickerModel {
	ti := textinput.New()
	ti.Placeholder = "Press / to filter..."
	ti.CharLimit = 64
	ti.Width = 40
	ti.Blur()

	filtered := make([]int, len(notes))
	for i := range notes {
		filtered[i] = i
	}

	return &MergePickerModel{
		notes:    notes,
		filtered: filtered,
		selected: make(map[string]bool),
		input:    ti,
	}
}

func (m *MergePickerModel) selectedNotes() []vault.Note {
	var out []vault.Note
	for _, n := range m.notes {
		if m.selected[n.Path] {
			out = append(out, n)
		}
	}
	return out
}

func (m *MergePickerModel) applyFilter() {
	if m.query == "" {
		m.filtered = make([]int, len(m.notes))
		for i := range m.notes {
			m.filtered[i] = i
		}
	} else {
		names := make([]string, len(m.notes))
		for i, n := range m.notes {
			names[i] = n.Name()
		}
		matches := fuzzy.Find(m.query, names)
		m.filtered = make([]int, len(matches))
		for i, match := range matches {
			m.filtered[i] = match.Index
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

// Update handles key events; emits MergeRequestMsg or MergeCancelledMsg
func (m *MergePickerModel) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}

	switch m.mode {
	case mergeModeFilter:
		switch key.String() {
		case "esc":
			m.input.SetValue("")
			m.query = ""
			m.applyFilter()
			m.input.Blur()
			m.mode = mergeModeSelect
			m.cursor = 0
			return nil
		case "enter":
			m.input.Blur()
			m.mode = mergeModeSelect
			return nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			m.query = m.input.Value()
			m.applyFilter()
			m.cursor = 0
			return cmd
		}

	case mergeModeName:
		switch key.String() {
		case "esc":
			m.input.SetValue("")
			m.input.Placeholder = "Press / to filter..."
			m.input.Blur()
			m.mode = mergeModeSelect
			return nil
		case "enter":
			name := strings.TrimSpace(m.input.Value())
			notes := m.selectedNotes()
			return func() tea.Msg {
				return MergeRequestMsg{Notes: notes, Name: name}
			}
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return cmd
		}
	}

	// Select mode
	switch key.String() {
	case "esc", "q":
		return func() tea.Msg { return MergeCancelledMsg{} }
	case "j", "down":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "/":
		m.mode = mergeModeFilter
		m.input.Placeholder = "Press / to filter..."
		m.input.SetValue(m.query)
		return m.input.Focus()
	case " ":
		if m.cursor < len(m.filtered) {
			p := m.notes[m.filtered[m.cursor]].Path
			m.selected[p] = !m.selected[p]
		}
	case "enter":
		if len(m.selectedNotes()) < 2 {
			return nil
		}
		m.mode = mergeModeName
		m.input.Placeholder = "New note name..."
		m.input.SetValue("")
		return m.input.Focus()
	}
	return nil
}

// View renders the picker
func (m *MergePickerModel) View() string {
	content := theme.ModalTitle.Render("Merge notes") + "\n\n"

	if m.mode == mergeModeFilter || m.mode == mergeModeName {
		content += m.input.View() + "\n\n"
	}

	maxRows := m.Height - 10
	if maxRows < 3 {
		maxRows = 3
	}
	for i, idx := range m.filtered {
		if i >= maxRows {
			content += theme.Muted.Render(fmt.Sprintf("  ... %d more", len(m.filtered)-maxRows)) + "\n"
			break
		}
		note := m.notes[idx]
		check := "[ ]"
		if m.selected[note.Path] {
			check = theme.Selected.Render("[x]")
		}
		line := check + " " + note.Name()
		if i == m.cursor && m.mode != mergeModeName {
			line = theme.Cursor.Render("> ") + line
		} else {
			line = "  " + line
		}
		content += line + "\n"
	}

	content += "\n" + theme.Muted.Render(fmt.Sprintf("%d selected", len(m.selectedNotes()))) + "\n"

	switch m.mode {
	case mergeModeFilter:
		content += theme.ModalHelp.Render("type to filter  [enter] done  [esc] clear")
	case mergeModeName:
		content += theme.ModalHelp.Render("[enter] merge  [esc] back")
	default:
		content += theme.ModalHelp.Render("[space] toggle  [/] filter  [enter] name & merge  [esc] cancel")
	}

	return theme.ModalBox.Width(m.Width).Render(content)
}
