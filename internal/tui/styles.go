package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Roelanb/wacheck/internal/checker"
)

var (
	panelBorder     = lipgloss.Color("#2D6A80")
	accentPrimary   = lipgloss.Color("#50E3C2")
	accentSecondary = lipgloss.Color("#F6AE2D")
	mutedText       = lipgloss.Color("#8CA1AE")
	warningText     = lipgloss.Color("#FF6B6B")
)

var (
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(accentPrimary)

	connectedStyle = lipgloss.NewStyle().Foreground(accentPrimary).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(warningText).Bold(true)
	infoStyle      = lipgloss.NewStyle().Foreground(mutedText)
	helpStyle      = lipgloss.NewStyle().Foreground(mutedText)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#05090C")).
			Background(accentPrimary)

	disabledButtonStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(mutedText).
				Background(lipgloss.Color("#1B2730"))

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(accentPrimary).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(panelBorder).
			Padding(0, 1)

	notificationStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				Padding(0, 1).
				MaxWidth(40)
)

func kindStyle(k checker.ResultKind) lipgloss.Style {
	switch k {
	case checker.KindSuccess:
		return connectedStyle
	case checker.KindError:
		return errorStyle
	default:
		return infoStyle
	}
}

func renderPanel(title, body string, width int, focused bool) string {
	style := panelStyle.Copy().Width(width)
	if focused {
		style = style.BorderForeground(accentSecondary)
	}
	return style.Render(panelTitleStyle.Render(title) + "\n" + body)
}
