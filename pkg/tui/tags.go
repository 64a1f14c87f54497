package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/tagduke/tagduke-cli/pkg/models"
)

const (
	markerSelected = "✓"
	markerNone     = " "
	ellipsis       = "…"
)

// truncateTag shortens a tag to maxWidth terminal cells. Japanese tags take
// two cells per character, so byte or rune counts are not enough here.
func truncateTag(tag string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(tag) <= maxWidth {
		return tag
	}
	return runewidth.Truncate(tag, maxWidth, ellipsis)
}

// renderTagChip renders one tag as a colored chip, prefixed with a marker
// column so selected and unselected chips line up
func renderTagChip(tag string, maxWidth int, selected bool) string {
	marker := markerNone
	if selected {
		marker = MarkerStyle.Render(markerSelected)
	}

	// marker + space + chip padding
	label := truncateTag(tag, maxWidth-4)
	return marker + " " + GetTagChipStyle(models.GetTagColor(tag)).Render(label)
}

// renderTagChips renders tags as small colored chips on one line, ending
// with a +N indicator for whatever did not fit
func renderTagChips(tagNames []string, maxWidth int) string {
	if len(tagNames) == 0 {
		return ""
	}

	moreStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDim))

	var chips []string
	currentWidth := 0
	for i, tag := range tagNames {
		chip := GetTagChipStyle(models.GetTagColor(tag)).Render(tag)
		chipWidth := lipgloss.Width(chip)

		// Leave room for the separator and a +N indicator
		reserve := 0
		if i < len(tagNames)-1 {
			reserve = len(fmt.Sprintf(" +%d", len(tagNames)-i))
		}
		if currentWidth+chipWidth+reserve > maxWidth {
			break
		}

		chips = append(chips, chip)
		currentWidth += chipWidth + 1
	}

	result := strings.Join(chips, " ")
	if hidden := len(tagNames) - len(chips); hidden > 0 {
		if result != "" {
			result += " "
		}
		result += moreStyle.Render(fmt.Sprintf("+%d", hidden))
	}
	return result
}
