package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#818CF8"}
	muted  = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	green  = lipgloss.Color("#16A34A")
	red    = lipgloss.Color("#DC2626")

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(accent)
	statStyle      = lipgloss.NewStyle().Foreground(muted)
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(muted)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(accent)
	onStyle        = lipgloss.NewStyle().Foreground(green).Bold(true)
	offStyle       = lipgloss.NewStyle().Foreground(muted)
	errorStyle     = lipgloss.NewStyle().Foreground(red).Bold(true)
	placeholder    = lipgloss.NewStyle().Faint(true).Italic(true)
	successStyle   = lipgloss.NewStyle().Foreground(green)
	dangerStyle    = lipgloss.NewStyle().Foreground(red)
	modalStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2)
)
