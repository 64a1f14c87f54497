package tui

import (
	"github.com/charmbracelet/lipgloss"
)

const headerHeight = 3

const logo = `▀█▀ ▄▀█ █▀▀ █▀▄ █ █ █▄▀ █▀▀
 █  █▀█ █▄█ █▄▀ █▄█ █ █ ██▄`

func renderHeader(width int, title string) string {
	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorBrand)).
		Bold(true)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDim))

	headerPadding := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1).
		Width(width)

	logoRendered := logoStyle.Render(logo)
	if title == "" {
		return headerPadding.Render(logoRendered)
	}

	// Title sits on the last logo row, right aligned
	contentWidth := width - 2
	gap := contentWidth - lipgloss.Width(logoRendered) - lipgloss.Width(title)
	if gap < 1 {
		return headerPadding.Render(logoRendered)
	}

	headerContent := lipgloss.JoinHorizontal(
		lipgloss.Bottom,
		logoRendered,
		lipgloss.NewStyle().Width(gap).Render(""),
		titleStyle.Render(title),
	)
	return headerPadding.Render(headerContent)
}
