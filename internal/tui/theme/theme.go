package theme

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Color palette — ANSI 0-15 + one 256-color accent
// ---------------------------------------------------------------------------

var (
	Text       = lipgloss.Color("7")
	TextMuted  = lipgloss.Color("8")
	TextBright = lipgloss.Color("15")

	Primary   = lipgloss.Color("4")   // blue
	Secondary = lipgloss.Color("6")   // cyan
	Success   = lipgloss.Color("2")   // green
	Warning   = lipgloss.Color("3")   // yellow
	Danger    = lipgloss.Color("1")   // red
	Surface   = lipgloss.Color("236") // dark bg
	Border    = lipgloss.Color("8")   // dim
)

// ---------------------------------------------------------------------------
// Semantic text styles
// ---------------------------------------------------------------------------

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Subtitle = lipgloss.NewStyle().Bold(true).Foreground(Secondary)
	Muted    = lipgloss.NewStyle().Foreground(TextMuted)

	Error = lipgloss.NewStyle().Bold(true).Foreground(Danger)
	Ok    = lipgloss.NewStyle().Bold(true).Foreground(Success)

	Cursor     = lipgloss.NewStyle().Bold(true).Foreground(Success)
	Selected   = lipgloss.NewStyle().Bold(true).Foreground(Warning)
	SelectedBg = lipgloss.NewStyle().Foreground(TextBright).Background(Surface)

	ReadNote = lipgloss.NewStyle().Foreground(TextMuted)
	Snoozed  = lipgloss.NewStyle().Foreground(Secondary)
)

// ---------------------------------------------------------------------------
// Reusable component helpers
// ---------------------------------------------------------------------------

var (
	ModalBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	ModalTitle = lipgloss.NewStyle().Bold(true).Foreground(Warning)

	ModalHelp = lipgloss.NewStyle().Foreground(TextMuted)

	StatusBar = lipgloss.NewStyle().
			Foreground(TextMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	Notice = lipgloss.NewStyle().Bold(true).Foreground(Warning)

	PreviewPane = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(Border).
			PaddingLeft(1)
)
