package ui

import "github.com/charmbracelet/lipgloss"

// theme is the semantic palette for the TUI.
type theme struct {
	Border  lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

var palette = theme{
	Border:  lipgloss.Color("#4D4C57"),
	Muted:   lipgloss.Color("#858392"),
	Text:    lipgloss.Color("#DFDBDD"),
	Primary: lipgloss.Color("#6B50FF"),
	Accent:  lipgloss.Color("#FF60FF"),
	Success: lipgloss.Color("#00FFB2"),
	Warning: lipgloss.Color("#FFD300"),
	Error:   lipgloss.Color("#E94090"),
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(palette.Primary).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(palette.Muted)
	errorStyle  = lipgloss.NewStyle().Foreground(palette.Error)
	warnStyle   = lipgloss.NewStyle().Foreground(palette.Warning)
	cursorStyle = lipgloss.NewStyle().Foreground(palette.Accent).Bold(true)
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Border).
			Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Foreground(palette.Muted)
	valueStyle = lipgloss.NewStyle().Foreground(palette.Text).Bold(true)
)
