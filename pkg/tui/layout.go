package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// Layout computes pane sizes. Wide terminals put the categories and the
// preview side by side; narrow ones stack them.
type Layout struct {
	Width       int
	Height      int
	Narrow      bool
	ShowHeader  bool
	narrowWidth int

	listWidth     int
	listHeight    int
	previewWidth  int
	previewHeight int
}

// NewLayout creates a layout switching to the stacked form below narrowWidth
func NewLayout(narrowWidth int, showHeader bool) *Layout {
	return &Layout{narrowWidth: narrowWidth, ShowHeader: showHeader}
}

// SetSize updates the layout dimensions and recalculates cached values
func (l *Layout) SetSize(width, height int) {
	l.Width = width
	l.Height = height
	l.Narrow = width < l.narrowWidth
	l.recalculateDimensions()
}

func (l *Layout) recalculateDimensions() {
	// header, help pane, status line and borders
	reserved := 8
	if l.ShowHeader && !l.Narrow {
		reserved += headerHeight
	}
	available := l.Height - reserved
	if available < 6 {
		available = 6
	}

	if l.Narrow {
		l.listWidth = l.Width - 4
		l.previewWidth = l.Width - 4
		l.previewHeight = available / 3
		if l.previewHeight < 3 {
			l.previewHeight = 3
		}
		l.listHeight = available - l.previewHeight - 3
		if l.listHeight < 3 {
			l.listHeight = 3
		}
		return
	}

	l.listWidth = (l.Width-6)*3/5 - 2
	l.previewWidth = l.Width - 6 - l.listWidth - 4
	l.listHeight = available
	l.previewHeight = available
}

// ListSize returns the inner size of the categories pane
func (l *Layout) ListSize() (int, int) {
	return l.listWidth, l.listHeight
}

// PreviewSize returns the inner size of the preview pane
func (l *Layout) PreviewSize() (int, int) {
	return l.previewWidth, l.previewHeight
}

// JoinPanes places the two panes according to the current form
func (l *Layout) JoinPanes(list, preview string) string {
	if l.Narrow {
		return lipgloss.JoinVertical(lipgloss.Left, list, preview)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, list, " ", preview)
}

// RenderPane wraps content in a border whose color follows focus
func (l *Layout) RenderPane(heading, badge, content string, width, height int, active bool) string {
	header := l.RenderHeader(heading, active, badge, width)
	body := lipgloss.NewStyle().Width(width).Height(height).Render(content)
	return GetBorderStyle(active).
		Width(width+2).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
}

// RenderHeader renders a header with colons and optional badge
func (l *Layout) RenderHeader(heading string, active bool, badge string, availableWidth int) string {
	badgeWidth := 0
	if badge != "" {
		badgeWidth = lipgloss.Width(badge) + 1
	}

	colonSpace := availableWidth - lipgloss.Width(heading) - badgeWidth - 1
	if colonSpace < 3 {
		colonSpace = 3
	}

	var result strings.Builder
	result.WriteString(GetActiveHeaderStyle(active).Render(heading))
	result.WriteString(" ")
	result.WriteString(GetActiveColonStyle(active).Render(strings.Repeat(":", colonSpace)))
	if badge != "" {
		result.WriteString(" ")
		result.WriteString(badge)
	}
	return result.String()
}

// RenderHelpPane renders the help text in a bordered pane
func (l *Layout) RenderHelpPane(rows [][]key.Binding) string {
	helpContent := formatHelpTextRows(rows, l.Width-6)

	return HelpBorderStyle.
		Width(l.Width-2).
		Padding(0, 1).
		Render(helpContent)
}

// formatHelpTextRows lays out "key desc" items, wrapping a row onto further
// lines when it does not fit
func formatHelpTextRows(rows [][]key.Binding, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorActive))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorNormal))
	sep := "  "

	var lines []string
	for _, row := range rows {
		var line strings.Builder
		lineWidth := 0
		for _, b := range row {
			if !b.Enabled() {
				continue
			}
			h := b.Help()
			item := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Desc)
			itemWidth := lipgloss.Width(item)

			if lineWidth > 0 && lineWidth+len(sep)+itemWidth > width {
				lines = append(lines, line.String())
				line.Reset()
				lineWidth = 0
			}
			if lineWidth > 0 {
				line.WriteString(sep)
				lineWidth += len(sep)
			}
			line.WriteString(item)
			lineWidth += itemWidth
		}
		if lineWidth > 0 {
			lines = append(lines, line.String())
		}
	}
	return strings.Join(lines, "\n")
}
