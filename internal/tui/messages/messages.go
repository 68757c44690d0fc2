package messages

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ViewType represents the different views in the application
type ViewType int

const (
	ViewInbox ViewType = iota
	ViewSettings
)

// SwitchViewMsg is sent by child views to switch to a different view
type SwitchViewMsg struct {
	View ViewType
}

// NoticeMsg carries a transient user-visible notification
type NoticeMsg struct {
	Text string
}

// NoticeExpiredMsg clears the notice bar; Gen guards against a stale
// timer clearing a newer notice
type NoticeExpiredMsg struct {
	Gen int
}

// RefreshMsg signals that the inbox should be re-listed
type RefreshMsg struct{}

// AutoCheckMsg fires once, shortly after startup, to run the daily
// note import check
type AutoCheckMsg struct{}

// EditorFinishedMsg is sent when the external editor exits
type EditorFinishedMsg struct {
	Err error
}

func SwitchView(v ViewType) tea.Cmd {
	return func() tea.Msg {
		return SwitchViewMsg{View: v}
	}
}
