package inboxview

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"triage/internal/config"
	"triage/internal/daily"
	"triage/internal/dates"
	"triage/internal/inbox"
	"triage/internal/logs"
	"triage/internal/tui/messages"
	"triage/internal/tui/theme"
	"triage/internal/vault"
)

// Model is the inbox browser: a sorted note list with a preview pane,
// inline fuzzy search, and modal dialogs for merge and daily-note
// moves.
type Model struct {
	inboxSvc inbox.Service
	dailySvc daily.Service
	store    vault.Store
	vlt      *vault.Vault
	cfg      *config.Config

	notes     []vault.Note
	summaries map[string]vault.Summary
	preview   string
	cursor    int
	scroll    int

	// Inline search
	searchActive bool
	searchTyping bool
	searchInput  textinput.Model
	filtered     []int // indices into notes

	// Modal overlays
	mergePicker  *MergePickerModel
	phrasePicker *PhrasePickerModel
	pendingMove  *vault.Note

	width  int
	height int
}

// New creates the inbox browser model.
func New(inboxSvc inbox.Service, dailySvc daily.Service, vlt *vault.Vault, cfg *config.Config) Model {
	si := textinput.New()
	si.Placeholder = "type to filter..."
	si.CharLimit = 64

	m := Model{
		inboxSvc:    inboxSvc,
		dailySvc:    dailySvc,
		store:       vlt,
		vlt:         vlt,
		cfg:         cfg,
		summaries:   make(map[string]vault.Summary),
		searchInput: si,
	}
	m.Refresh()
	return m
}

// SetSize updates the view dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureCursorVisible()
}

// IsInModalState reports whether a modal dialog owns the keyboard.
func (m *Model) IsInModalState() bool {
	return m.mergePicker != nil || m.phrasePicker != nil || m.searchTyping
}

// Refresh re-lists the inbox and rebuilds summaries and the preview.
func (m *Model) Refresh() {
	notes, err := m.inboxSvc.List()
	if err != nil {
		logs.Logger.WithError(err).Warn("could not list inbox")
		return
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Name() < notes[j].Name() })
	m.notes = notes

	m.summaries = make(map[string]vault.Summary, len(notes))
	for _, n := range notes {
		content, err := m.store.Read(n)
		if err != nil {
			continue
		}
		m.summaries[n.Path] = vault.Summarize(n, content)
	}

	m.applyFilter()
	m.loadPreview()
}

func (m *Model) applyFilter() {
	query := m.searchInput.Value()
	if !m.searchActive || query == "" {
		m.filtered = make([]int, len(m.notes))
		for i := range m.notes {
			m.filtered[i] = i
		}
	} else {
		names := make([]string, len(m.notes))
		for i, n := range m.notes {
			names[i] = n.Name()
		}
		matches := fuzzy.Find(query, names)
		m.filtered = make([]int, len(matches))
		for i, match := range matches {
			m.filtered[i] = match.Index
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
	m.ensureCursorVisible()
}

func (m *Model) cursorNote() *vault.Note {
	if m.cursor >= len(m.filtered) {
		return nil
	}
	n := m.notes[m.filtered[m.cursor]]
	return &n
}

func (m *Model) loadPreview() {
	m.preview = ""
	if note := m.cursorNote(); note != nil {
		if content, err := m.store.Read(*note); err == nil {
			m.preview = content
		}
	}
}

// moveCursorTo places the cursor on the note at path, if visible.
func (m *Model) moveCursorTo(path string) {
	for i, idx := range m.filtered {
		if m.notes[idx].Path == path {
			m.cursor = i
			break
		}
	}
	m.ensureCursorVisible()
	m.loadPreview()
}

func (m *Model) ensureCursorVisible() {
	rows := m.listHeight()
	if rows <= 0 {
		return
	}
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+rows {
		m.scroll = m.cursor - rows + 1
	}
}

func (m *Model) listHeight() int {
	h := m.height - 2 // title + search line
	if h < 1 {
		h = 1
	}
	return h
}

// Update handles inbox view events
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MergeRequestMsg:
		m.mergePicker = nil
		merged, err := m.inboxSvc.Merge(msg.Notes, msg.Name)
		m.Refresh()
		if err != nil {
			return m, nil
		}
		m.moveCursorTo(merged.Path)
		return m, m.openInEditor(merged)

	case MergeCancelledMsg:
		m.mergePicker = nil
		return m, nil

	case PhraseResultMsg:
		m.phrasePicker = nil
		if msg.Cancelled || m.pendingMove == nil {
			m.pendingMove = nil
			return m, nil
		}
		note := *m.pendingMove
		m.pendingMove = nil
		day, ok := dates.ParsePhrase(msg.Phrase, time.Now())
		if !ok {
			return m, notice(fmt.Sprintf("Cannot understand date phrase %q", msg.Phrase))
		}
		m.dailySvc.MoveToDaily(note, day)
		m.Refresh()
		return m, nil

	case messages.EditorFinishedMsg:
		if msg.Err != nil {
			logs.Logger.WithError(msg.Err).Warn("editor exited with error")
		}
		m.Refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Modal dialogs own the keyboard while open.
	if m.mergePicker != nil {
		return m, m.mergePicker.Update(msg)
	}
	if m.phrasePicker != nil {
		return m, m.phrasePicker.Update(msg)
	}

	if m.searchTyping {
		switch msg.String() {
		case "esc":
			m.searchActive = false
			m.searchTyping = false
			m.searchInput.SetValue("")
			m.searchInput.Blur()
			m.applyFilter()
			m.loadPreview()
			return m, nil
		case "enter":
			m.searchTyping = false
			m.searchInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			m.applyFilter()
			m.loadPreview()
			return m, cmd
		}
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
			m.ensureCursorVisible()
			m.loadPreview()
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
			m.loadPreview()
		}
	case "g":
		m.cursor = 0
		m.ensureCursorVisible()
		m.loadPreview()
	case "G":
		m.cursor = max(0, len(m.filtered)-1)
		m.ensureCursorVisible()
		m.loadPreview()

	case "/":
		m.searchActive = true
		m.searchTyping = true
		return m, m.searchInput.Focus()

	case "n":
		next, err := m.inboxSvc.NextAfter(m.cursorNote())
		if err != nil {
			return m, nil
		}
		m.moveCursorTo(next.Path)

	case "r":
		if note := m.cursorNote(); note != nil {
			m.inboxSvc.MarkAsRead(*note)
			m.Refresh()
		}

	case "s":
		if note := m.cursorNote(); note != nil {
			m.inboxSvc.Snooze(*note)
			m.Refresh()
		}

	case "m":
		if len(m.notes) < 2 {
			return m, notice("Need at least two inbox notes to merge")
		}
		m.mergePicker = NewMergePicker(m.notes)
		m.mergePicker.Width = min(m.width-8, 60)
		m.mergePicker.Height = m.height

	case "d":
		if note := m.cursorNote(); note != nil {
			n := *note
			m.pendingMove = &n
			m.phrasePicker = NewPhrasePicker()
			m.phrasePicker.Width = min(m.width-8, 50)
			return m, m.phrasePicker.Init()
		}

	case "f":
		if note := m.cursorNote(); note != nil {
			day, err := dates.ParseFilename(note.Basename(), m.cfg.TimestampFormat, time.Now())
			if err != nil {
				return m, notice(err.Error())
			}
			m.dailySvc.MoveToDaily(*note, day)
			m.Refresh()
		}

	case "i":
		m.dailySvc.ImportToInbox(time.Now())
		m.Refresh()

	case "enter":
		if note := m.cursorNote(); note != nil {
			return m, m.openInEditor(*note)
		}
	}

	return m, nil
}

// HintText returns the raw hint string for the status bar.
func (m Model) HintText() string {
	if m.searchTyping {
		return "type to filter  enter:confirm  esc:cancel"
	}
	return "j/k:move  n:next  r:read  s:snooze  m:merge  d:to daily  i:import  enter:open  ?:help  q:quit"
}

func (m Model) openInEditor(note vault.Note) tea.Cmd {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	c := exec.Command(editor, m.vlt.Abs(note.Path))
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return messages.EditorFinishedMsg{Err: err}
	})
}

func notice(text string) tea.Cmd {
	return func() tea.Msg {
		return messages.NoticeMsg{Text: text}
	}
}

// View renders the inbox browser
func (m Model) View() string {
	if m.mergePicker != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.mergePicker.View())
	}
	if m.phrasePicker != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.phrasePicker.View())
	}

	listWidth := m.width * 2 / 5
	if listWidth < 24 {
		listWidth = min(24, m.width)
	}

	var list strings.Builder
	list.WriteString(theme.Title.Render(fmt.Sprintf("Inbox (%d)", len(m.notes))) + "\n")
	if m.searchActive {
		list.WriteString(m.searchInput.View() + "\n")
	} else {
		list.WriteString("\n")
	}

	rows := m.listHeight()
	for i := m.scroll; i < len(m.filtered) && i < m.scroll+rows; i++ {
		note := m.notes[m.filtered[i]]
		line := m.renderNoteLine(note, listWidth-2)
		if i == m.cursor {
			line = theme.Cursor.Render("> ") + line
		} else {
			line = "  " + line
		}
		list.WriteString(line + "\n")
	}
	if len(m.filtered) == 0 {
		list.WriteString(theme.Muted.Render("  nothing here") + "\n")
	}

	left := lipgloss.NewStyle().Width(listWidth).Height(m.height).Render(list.String())
	right := m.renderPreview(m.width - listWidth - 2)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderNoteLine(note vault.Note, width int) string {
	name := note.Name()
	style := lipgloss.NewStyle()
	switch {
	case strings.HasPrefix(name, inbox.ReadMarker):
		style = theme.ReadNote
	case strings.Contains(name, "(snoozed)"):
		style = theme.Snoozed
	}
	if len(name) > width && width > 3 {
		name = name[:width-3] + "..."
	}
	return style.Render(name)
}

func (m Model) renderPreview(width int) string {
	if width < 10 {
		return ""
	}

	var b strings.Builder
	if note := m.cursorNote(); note != nil {
		summary := m.summaries[note.Path]
		b.WriteString(theme.Subtitle.Render(summary.Title) + "\n")
		if summary.Preview != "" {
			b.WriteString(theme.Muted.Render(summary.Preview) + "\n")
		}
		b.WriteString("\n")

		lines := strings.Split(m.preview, "\n")
		maxLines := m.height - 5
		for i, line := range lines {
			if i >= maxLines {
				b.WriteString(theme.Muted.Render("...") + "\n")
				break
			}
			if len(line) > width-2 {
				line = line[:width-2]
			}
			b.WriteString(line + "\n")
		}
	} else {
		b.WriteString(theme.Muted.Render("No note selected"))
	}

	return theme.PreviewPane.Width(width).Height(m.height).Render(b.String())
}
