package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"triage/internal/config"
	"triage/internal/daily"
	"triage/internal/inbox"
	"triage/internal/tui/inboxview"
	"triage/internal/tui/messages"
	"triage/internal/tui/settingsview"
	"triage/internal/tui/shared"
	"triage/internal/tui/theme"
	"triage/internal/vault"
)

// startupCheckDelay gives the terminal a moment to settle before the
// daily-note auto-import prompt can appear.
const startupCheckDelay = 2 * time.Second

const noticeDuration = 4 * time.Second

// AppModel is the root model that dispatches to child views
type AppModel struct {
	cfg      *config.Config
	dailySvc daily.Service

	currentView  messages.ViewType
	inboxView    inboxview.Model
	settingsView settingsview.Model

	confirmModal *inboxview.ConfirmationModal

	notices   <-chan string
	watcher   <-chan struct{}
	notice    string
	noticeGen int

	showHelp bool
	width    int
	height   int
	ready    bool
}

// NewAppModel creates the root application model. notices carries
// service notifications into the UI; watcher signals external vault
// changes and may be nil.
func NewAppModel(cfg *config.Config, inboxSvc inbox.Service, dailySvc daily.Service, vlt *vault.Vault, persist func() error, notices <-chan string, watcher <-chan struct{}) AppModel {
	return AppModel{
		cfg:          cfg,
		dailySvc:     dailySvc,
		currentView:  messages.ViewInbox,
		inboxView:    inboxview.New(inboxSvc, dailySvc, vlt, cfg),
		settingsView: settingsview.New(cfg, persist),
		notices:      notices,
		watcher:      watcher,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.waitForNotice(),
		tea.Tick(startupCheckDelay, func(time.Time) tea.Msg {
			return messages.AutoCheckMsg{}
		}),
	}
	if m.watcher != nil {
		cmds = append(cmds, m.waitForWatcher())
	}
	return tea.Batch(cmds...)
}

func (m AppModel) waitForNotice() tea.Cmd {
	return func() tea.Msg {
		return messages.NoticeMsg{Text: <-m.notices}
	}
}

func (m AppModel) waitForWatcher() tea.Cmd {
	return func() tea.Msg {
		<-m.watcher
		return messages.RefreshMsg{}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		contentHeight := msg.Height - 3 // Reserve space for status bar
		m.inboxView.SetSize(msg.Width, contentHeight)
		m.settingsView.SetSize(msg.Width, contentHeight)
		return m, nil

	case messages.NoticeMsg:
		m.notice = msg.Text
		m.noticeGen++
		gen := m.noticeGen
		return m, tea.Batch(
			m.waitForNotice(),
			tea.Tick(noticeDuration, func(time.Time) tea.Msg {
				return messages.NoticeExpiredMsg{Gen: gen}
			}),
		)

	case messages.NoticeExpiredMsg:
		if msg.Gen == m.noticeGen {
			m.notice = ""
		}
		return m, nil

	case messages.RefreshMsg:
		m.inboxView.Refresh()
		return m, m.waitForWatcher()

	case messages.AutoCheckMsg:
		if m.dailySvc.ShouldPrompt(time.Now()) {
			m.confirmModal = inboxview.NewConfirmationModal(
				"Import today's daily note?",
				"Today's daily note has unprocessed content.",
				min(m.width-8, 50),
			)
		}
		return m, nil

	case inboxview.ConfirmationResultMsg:
		m.confirmModal = nil
		if msg.Confirmed {
			m.dailySvc.ImportToInbox(time.Now())
			m.inboxView.Refresh()
		}
		return m, nil

	case messages.SwitchViewMsg:
		m.currentView = msg.View
		if msg.View == messages.ViewSettings {
			m.settingsView.Reset()
		}
		return m, nil

	case settingsview.SavedMsg:
		if msg.Err != nil {
			m.notice = "Could not save settings: " + msg.Err.Error()
		} else {
			m.notice = "Settings saved"
		}
		m.noticeGen++
		m.inboxView.Refresh()
		return m, nil

	case tea.KeyMsg:
		// Global keys: ctrl+c always quits
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Dismiss help overlay on any key
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		if m.confirmModal != nil {
			return m, m.confirmModal.Update(msg)
		}

		// Let modal states inside the child views see every key.
		if m.currentView == messages.ViewInbox && !m.inboxView.IsInModalState() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case ",":
				m.currentView = messages.ViewSettings
				m.settingsView.Reset()
				return m, nil
			case "?":
				m.showHelp = true
				return m, nil
			}
		}
	}

	// Dispatch to current child view
	var cmd tea.Cmd
	switch m.currentView {
	case messages.ViewInbox:
		m.inboxView, cmd = m.inboxView.Update(msg)
		return m, cmd
	case messages.ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	var content, hints string
	switch m.currentView {
	case messages.ViewSettings:
		content = m.settingsView.View()
		hints = m.settingsView.HintText()
	default:
		content = m.inboxView.View()
		hints = m.inboxView.HintText()
	}

	if m.confirmModal != nil {
		content = lipgloss.Place(m.width, m.height-3, lipgloss.Center, lipgloss.Center, m.confirmModal.View())
		hints = "y:import  n:skip"
	}

	statusText := hints
	if m.notice != "" {
		statusText = theme.Notice.Render(m.notice)
	}
	statusBar := theme.StatusBar.Width(m.width).Render(statusText)

	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}

func (m AppModel) renderHelpOverlay() string {
	sections := []shared.HelpSection{
		{
			Title: "Inbox",
			Binds: []shared.HelpBind{
				{Key: "j / k", Desc: "Navigate notes"},
				{Key: "g / G", Desc: "First / last note"},
				{Key: "/", Desc: "Fuzzy filter"},
				{Key: "n", Desc: "Cycle to next note"},
				{Key: "enter", Desc: "Open note in $EDITOR"},
			},
		},
		{
			Title: "Triage",
			Binds: []shared.HelpBind{
				{Key: "r", Desc: "Mark note as read"},
				{Key: "s", Desc: "Snooze note"},
				{Key: "m", Desc: "Merge notes"},
				{Key: "d", Desc: "Move note to a daily note"},
				{Key: "f", Desc: "Move note to the daily note in its filename"},
				{Key: "i", Desc: "Import today's daily note"},
			},
		},
		{
			Title: "Application",
			Binds: []shared.HelpBind{
				{Key: ",", Desc: "Settings"},
				{Key: "?", Desc: "Show this help"},
				{Key: "q", Desc: "Quit"},
				{Key: "ctrl+c", Desc: "Force quit"},
			},
		},
	}
	return shared.RenderHelpPopup(sections, m.width, m.height)
}
