package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tagduke/tagduke-cli/pkg/models"
)

// reload re-reads the categories and rebuilds the row index
func (a *App) reload() {
	a.categories = a.state.Catalog.List()

	a.rows = a.rows[:0]
	for ci, cat := range a.categories {
		a.rows = append(a.rows, row{category: ci, tag: -1})
		for ti := range cat.Tags {
			a.rows = append(a.rows, row{category: ci, tag: ti})
		}
	}

	if a.cursor >= len(a.rows) {
		a.cursor = len(a.rows) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) currentRow() (row, bool) {
	if a.cursor < 0 || a.cursor >= len(a.rows) {
		return row{}, false
	}
	r := a.rows[a.cursor]
	if r.category >= len(a.categories) || r.tag >= len(a.categories[r.category].Tags) {
		return row{}, false
	}
	return r, true
}

func (a *App) currentCategory() (models.Category, bool) {
	r, ok := a.currentRow()
	if !ok {
		return models.Category{}, false
	}
	return a.categories[r.category], true
}

// currentTag returns the tag under the cursor; title rows have none
func (a *App) currentTag() (string, bool) {
	r, ok := a.currentRow()
	if !ok || r.tag < 0 {
		return "", false
	}
	return a.categories[r.category].Tags[r.tag], true
}

func (a *App) moveCursor(delta int) {
	if len(a.rows) == 0 {
		return
	}
	a.cursor += delta
	if a.cursor < 0 {
		a.cursor = 0
	}
	if a.cursor >= len(a.rows) {
		a.cursor = len(a.rows) - 1
	}
}

func (a *App) cursorToCategory(id string) {
	for i, r := range a.rows {
		if r.tag == -1 && a.categories[r.category].ID == id {
			a.cursor = i
			return
		}
	}
}

// tagSelected reports whether a chip shows the selection marker. Narrow
// terminals show the toggle marker, wide ones show preview membership.
func (a *App) tagSelected(tag string) bool {
	if a.layout.Narrow {
		return a.state.Preview.Marked(tag)
	}
	return a.state.Preview.Contains(tag)
}

// refreshList renders the category rows into the viewport and scrolls so
// the cursor stays visible
func (a *App) refreshList() {
	width, height := a.layout.ListSize()
	current, hasCurrent := a.currentRow()

	var lines []string
	cursorLine := 0

	for ci, cat := range a.categories {
		onTitle := hasCurrent && current.category == ci && current.tag == -1
		if onTitle {
			cursorLine = len(lines)
		}
		lines = append(lines, a.renderCategoryTitle(cat, onTitle, hasCurrent && current.category == ci, width))

		if a.mode == editView && cat.ID == a.editingID {
			lines = append(lines, strings.Split(a.editor.View(), "\n")...)
			continue
		}

		if len(cat.Tags) == 0 {
			lines = append(lines, "    "+EmptyInactiveStyle.Render("No tags yet, press e to add some"))
			continue
		}

		for ti, tag := range cat.Tags {
			onTag := hasCurrent && current.category == ci && current.tag == ti
			prefix := "  "
			if onTag {
				cursorLine = len(lines)
				prefix = CursorStyle.Render("▸") + " "
			}
			lines = append(lines, "  "+prefix+renderTagChip(tag, width-4, a.tagSelected(tag)))
		}
	}

	if len(lines) == 0 {
		lines = append(lines, EmptyActiveStyle.Render("No categories. Press n to create one"))
	}

	a.list.SetContent(strings.Join(lines, "\n"))

	if height > 0 {
		if cursorLine < a.list.YOffset {
			a.list.SetYOffset(cursorLine)
		} else if cursorLine >= a.list.YOffset+height {
			a.list.SetYOffset(cursorLine - height + 1)
		}
	}
}

func (a *App) renderCategoryTitle(cat models.Category, onTitle, inCategory bool, width int) string {
	prefix := "  "
	name := CategoryTitleStyle.Render(cat.Name)
	if onTitle {
		prefix = CursorStyle.Render("▸") + " "
		name = SelectedStyle.Render(cat.Name)
	}

	title := prefix + name + " " + ActionHintStyle.Render(fmt.Sprintf("(%d)", len(cat.Tags)))
	if inCategory && a.mode == browseView {
		hint := ActionHintStyle.Render("a add all · e edit · d delete")
		if lipgloss.Width(title)+lipgloss.Width(hint)+2 <= width {
			title += "  " + hint
		}
	}
	return title
}

func (a *App) renderList() string {
	width, height := a.layout.ListSize()
	badge := ActionHintStyle.Render(fmt.Sprintf("%d", len(a.categories)))
	return a.layout.RenderPane("CATEGORIES", badge, a.list.View(), width, height, a.mode != previewView)
}
