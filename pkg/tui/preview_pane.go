package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// wrapPreview wraps on spaces first, then hard wraps lines without any,
// which is common for runs of Japanese tags joined by newline
func wrapPreview(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wrap.String(wordwrap.String(text, width), width)
}

// clipLines keeps the first n lines, marking the cut
func clipLines(text string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) <= n {
		return text
	}
	lines = lines[:n]
	lines[n-1] = PlaceholderStyle.Render("…")
	return strings.Join(lines, "\n")
}

func (a *App) renderPreview() string {
	width, height := a.layout.PreviewSize()
	active := a.mode == previewView

	tags := a.state.Preview.CurrentTags()
	badge := GetPreviewBadgeStyle(len(tags)).
		Render(fmt.Sprintf("%d tags · %s", len(tags), a.state.Preview.Delimiter()))

	var content string
	switch {
	case active:
		content = a.preview.View()
	case a.state.Preview.Text() == "":
		content = PlaceholderStyle.Render("Press enter on a tag to add it")
	default:
		chips := renderTagChips(tags, width)
		body := clipLines(wrapPreview(a.state.Preview.Text(), width), height-2)
		content = body + "\n\n" + chips
	}

	return a.layout.RenderPane("PREVIEW", badge, content, width, height, active)
}
