package settingsview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"triage/internal/config"
	"triage/internal/tui/messages"
	"triage/internal/tui/shared"
	"triage/internal/tui/theme"
)

const (
	fieldInbox = iota
	fieldDaily
	fieldFormat
	fieldAutoImport
	fieldCount
)

var labels = [fieldCount]string{
	"Inbox folder",
	"Daily notes folder",
	"Timestamp format",
	"Auto-import daily note",
}

// SavedMsg reports that settings were persisted
type SavedMsg struct {
	Err error
}

// Model is the settings form: text fields for the folder paths and
// timestamp pattern plus the auto-import toggle. Changes are persisted
// on save (ctrl+s) and discarded on esc.
type Model struct {
	cfg        *config.Config
	persist    func() error
	inputs     [3]textinput.Model
	autoImport bool
	focus      int
	width      int
	height     int
}

// New creates the settings form seeded from cfg. persist writes the
// config file.
func New(cfg *config.Config, persist func() error) Model {
	m := Model{cfg: cfg, persist: persist}
	for i := range m.inputs {
		ti := textinput.New()
		ti.CharLimit = 128
		ti.Width = 40
		m.inputs[i] = ti
	}
	m.Reset()
	return m
}

// Reset re-seeds the form from the current configuration.
func (m *Model) Reset() {
	m.inputs[fieldInbox].SetValue(m.cfg.InboxFolder)
	m.inputs[fieldDaily].SetValue(m.cfg.DailyFolder)
	m.inputs[fieldFormat].SetValue(m.cfg.TimestampFormat)
	m.autoImport = m.cfg.AutoImport
	m.setFocus(0)
}

// SetSize updates the view dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) setFocus(field int) {
	m.focus = field
	for i := range m.inputs {
		if i == field {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// Update handles settings form events
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "esc":
		m.Reset()
		return m, messages.SwitchView(messages.ViewInbox)

	case "ctrl+s":
		return m, m.save()

	case "tab", "down":
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil

	case "shift+tab", "up":
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil
	}

	if m.focus == fieldAutoImport {
		switch key.String() {
		case " ", "enter":
			m.autoImport = !m.autoImport
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) save() tea.Cmd {
	inboxFolder := strings.TrimSpace(m.inputs[fieldInbox].Value())
	dailyFolder := strings.TrimSpace(m.inputs[fieldDaily].Value())
	format := strings.TrimSpace(m.inputs[fieldFormat].Value())
	if inboxFolder == "" || dailyFolder == "" || format == "" {
		return func() tea.Msg {
			return messages.NoticeMsg{Text: "Folders and timestamp format cannot be empty"}
		}
	}

	m.cfg.InboxFolder = inboxFolder
	m.cfg.DailyFolder = dailyFolder
	m.cfg.TimestampFormat = format
	m.cfg.AutoImport = m.autoImport

	err := m.persist()
	return tea.Batch(
		func() tea.Msg { return SavedMsg{Err: err} },
		messages.SwitchView(messages.ViewInbox),
	)
}

// HintText returns the raw hint string for the status bar.
func (m Model) HintText() string {
	return "tab:next field  ctrl+s:save  esc:back"
}

// View renders the settings form
func (m Model) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Width(24)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Settings") + "\n\n")

	for i, input := range m.inputs {
		marker := "  "
		if m.focus == i {
			marker = theme.Cursor.Render("> ")
		}
		b.WriteString(marker + labelStyle.Render(labels[i]) + input.View() + "\n")
	}

	toggle := "[ ] off"
	if m.autoImport {
		toggle = theme.Ok.Render("[x] on")
	}
	marker := "  "
	if m.focus == fieldAutoImport {
		marker = theme.Cursor.Render("> ")
	}
	b.WriteString(marker + labelStyle.Render(labels[fieldAutoImport]) + toggle + "\n")

	b.WriteString("\n" + theme.Muted.Render(fmt.Sprintf("Vault: %s", m.cfg.VaultDir)))

	return shared.CenterContent(b.String(), m.height)
}
