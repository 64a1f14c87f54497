package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/tagduke/tagduke-cli/pkg/app"
	"github.com/tagduke/tagduke-cli/pkg/models"
)

type sessionState int

const (
	browseView sessionState = iota
	previewView
	editView
	promptView
)

const statusTimeout = 3 * time.Second

// row addresses one line of the category list. tag is -1 on the title row.
type row struct {
	category int
	tag      int
}

type App struct {
	state    *app.State
	settings *models.Settings
	keys     keyMap
	layout   *Layout
	help     help.Model

	mode       sessionState
	categories []models.Category
	rows       []row
	cursor     int

	list      viewport.Model
	preview   textarea.Model
	editor    textarea.Model
	editingID string
	nameInput textinput.Model
	confirm   *ConfirmationModel

	width     int
	height    int
	statusMsg string
	statusSeq int
}

// NewApp builds the TUI around loaded application state
func NewApp(state *app.State, settings *models.Settings) *App {
	if settings == nil {
		settings = models.DefaultSettings()
	}

	preview := textarea.New()
	preview.ShowLineNumbers = false
	preview.Prompt = ""
	preview.CharLimit = 0
	preview.MaxHeight = 0
	preview.Placeholder = "Tags you add appear here"
	preview.SetValue(state.Preview.Text())

	editor := textarea.New()
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.Placeholder = "One tag per line"

	nameInput := textinput.New()
	nameInput.Placeholder = "Category name"
	nameInput.Prompt = "New category: "
	nameInput.CharLimit = 64

	a := &App{
		state:     state,
		settings:  settings,
		keys:      newKeyMap(),
		layout:    NewLayout(settings.UI.NarrowWidth, settings.UI.ShowHeader),
		help:      help.New(),
		mode:      browseView,
		list:      viewport.New(0, 0),
		preview:   preview,
		editor:    editor,
		nameInput: nameInput,
		confirm:   NewConfirmation(),
	}
	a.reload()
	return a
}

func (a *App) Init() tea.Cmd {
	if !a.state.Catalog.Seeded() {
		return nil
	}
	n := a.state.Catalog.Len()
	return func() tea.Msg {
		return StatusMsg(fmt.Sprintf("Loaded %d built-in categories", n))
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.setSize(msg.Width, msg.Height)

	case StatusMsg:
		cmd = a.setStatus(string(msg))

	case clearStatusMsg:
		// Only the latest message may be cleared by its own timer
		if msg.seq == a.statusSeq {
			a.statusMsg = ""
		}

	case copyResultMsg:
		log.Debug().Stringer("notice", msg.notice).Msg("copy finished")
		cmd = a.setStatus(msg.notice.String())

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.confirm.Active() {
			cmd = a.confirm.Update(msg)
			break
		}
		switch a.mode {
		case editView:
			cmd = a.updateEditor(msg)
		case promptView:
			cmd = a.updatePrompt(msg)
		case previewView:
			cmd = a.updatePreview(msg)
		default:
			cmd = a.updateBrowse(msg)
		}

	default:
		// Cursor blink and similar messages go to the focused input
		switch a.mode {
		case editView:
			a.editor, cmd = a.editor.Update(msg)
		case promptView:
			a.nameInput, cmd = a.nameInput.Update(msg)
		case previewView:
			a.preview, cmd = a.preview.Update(msg)
		}
	}

	a.refreshList()
	return a, cmd
}

func (a *App) updateBrowse(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit

	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1)

	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1)

	case key.Matches(msg, a.keys.Focus):
		a.mode = previewView
		return a.preview.Focus()

	case key.Matches(msg, a.keys.Add):
		return a.activateTag()

	case key.Matches(msg, a.keys.Remove):
		tag, ok := a.currentTag()
		if !ok {
			return nil
		}
		res, cmd := a.dispatch(app.Action{Kind: app.ActionRemoveTag, Tag: tag})
		if cmd != nil || !res.Changed {
			return cmd
		}
		return a.setStatus(fmt.Sprintf("Removed %s", tag))

	case key.Matches(msg, a.keys.AddAll):
		cat, ok := a.currentCategory()
		if !ok {
			return nil
		}
		before := len(a.state.Preview.CurrentTags())
		if _, cmd := a.dispatch(app.Action{Kind: app.ActionAddAll, CategoryID: cat.ID}); cmd != nil {
			return cmd
		}
		added := len(a.state.Preview.CurrentTags()) - before
		return a.setStatus(fmt.Sprintf("Added %d tags from %s", added, cat.Name))

	case key.Matches(msg, a.keys.Edit):
		return a.startEdit()

	case key.Matches(msg, a.keys.Delete):
		a.confirmDelete()

	case key.Matches(msg, a.keys.New):
		a.nameInput.Reset()
		a.mode = promptView
		return a.nameInput.Focus()

	case key.Matches(msg, a.keys.Delimiter):
		next := a.state.Preview.Delimiter().Toggle()
		if _, cmd := a.dispatch(app.Action{Kind: app.ActionSetDelimiter, Delimiter: next}); cmd != nil {
			return cmd
		}
		return a.setStatus(fmt.Sprintf("Delimiter: %s", next))

	case key.Matches(msg, a.keys.Copy):
		return a.copyPreview()

	case key.Matches(msg, a.keys.Clear):
		if _, cmd := a.dispatch(app.Action{Kind: app.ActionClearPreview}); cmd != nil {
			return cmd
		}
		return a.setStatus("Preview cleared")
	}

	return nil
}

// activateTag adds the tag under the cursor. On narrow terminals it
// toggles instead, since there is no room for separate add and remove.
func (a *App) activateTag() tea.Cmd {
	tag, ok := a.currentTag()
	if !ok {
		return nil
	}

	if a.layout.Narrow {
		res, cmd := a.dispatch(app.Action{Kind: app.ActionToggleTag, Tag: tag})
		if cmd != nil {
			return cmd
		}
		if res.Selected {
			return a.setStatus(fmt.Sprintf("Selected %s", tag))
		}
		return a.setStatus(fmt.Sprintf("Unselected %s", tag))
	}

	res, cmd := a.dispatch(app.Action{Kind: app.ActionAddTag, Tag: tag})
	if cmd != nil {
		return cmd
	}
	if !res.Changed {
		return a.setStatus(fmt.Sprintf("%s is already in the preview", tag))
	}
	return nil
}

// copyPreview copies a snapshot of the preview text off the update loop
func (a *App) copyPreview() tea.Cmd {
	snapshot := a.state.Preview.Text()
	exp := a.state.Exporter
	return func() tea.Msg {
		return copyResultMsg{notice: exp.Copy(snapshot)}
	}
}

func (a *App) confirmDelete() {
	cat, ok := a.currentCategory()
	if !ok {
		return
	}

	deleteCategory := func(confirmed bool) (app.Result, tea.Cmd) {
		return a.dispatch(app.Action{Kind: app.ActionDeleteCategory, CategoryID: cat.ID, Confirmed: confirmed})
	}

	config := ConfirmationConfig{
		Message:     fmt.Sprintf("Delete category %q with %d tags?", cat.Name, len(cat.Tags)),
		Destructive: true,
	}
	if queued := a.queuedTags(cat); queued > 0 {
		config.Warning = fmt.Sprintf("(%d of its tags stay in the preview)", queued)
	}

	a.confirm.Show(
		config,
		func() tea.Cmd {
			res, cmd := deleteCategory(true)
			if cmd != nil || !res.Changed {
				return cmd
			}
			return a.setStatus(fmt.Sprintf("Deleted %s", cat.Name))
		},
		func() tea.Cmd {
			deleteCategory(false)
			return a.setStatus("Deletion cancelled")
		},
	)
}

// queuedTags counts the category's tags already in the preview
func (a *App) queuedTags(cat models.Category) int {
	n := 0
	for _, tag := range cat.Tags {
		if a.state.Preview.Contains(tag) {
			n++
		}
	}
	return n
}

func (a *App) startEdit() tea.Cmd {
	cat, ok := a.currentCategory()
	if !ok {
		return nil
	}

	_, listHeight := a.layout.ListSize()
	height := len(cat.Tags) + 1
	if height < 3 {
		height = 3
	}
	if height > listHeight-2 && listHeight > 4 {
		height = listHeight - 2
	}

	a.editingID = cat.ID
	a.editor.SetValue(models.JoinTagLines(cat.Tags))
	a.editor.SetHeight(height)
	a.mode = editView

	// Keep the cursor on the title so the editor stays in view
	a.cursorToCategory(cat.ID)
	return a.editor.Focus()
}

func (a *App) updateEditor(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Save):
		id := a.editingID
		a.stopEdit()
		if _, cmd := a.dispatch(app.Action{Kind: app.ActionReplaceTags, CategoryID: id, Text: a.editor.Value()}); cmd != nil {
			return cmd
		}
		if cat, ok := a.state.Catalog.Get(id); ok {
			return a.setStatus(fmt.Sprintf("Saved %d tags to %s", len(cat.Tags), cat.Name))
		}
		return nil

	case key.Matches(msg, a.keys.Cancel):
		a.stopEdit()
		return nil
	}

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	return cmd
}

func (a *App) stopEdit() {
	a.editingID = ""
	a.editor.Blur()
	a.mode = browseView
}

func (a *App) updatePrompt(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Confirm):
		return a.finishPrompt(a.nameInput.Value())

	case key.Matches(msg, a.keys.Cancel):
		// A cancelled prompt is an empty name
		return a.finishPrompt("")
	}

	var cmd tea.Cmd
	a.nameInput, cmd = a.nameInput.Update(msg)
	return cmd
}

func (a *App) finishPrompt(name string) tea.Cmd {
	a.nameInput.Blur()
	a.mode = browseView

	res, cmd := a.dispatch(app.Action{Kind: app.ActionCreateCategory, Name: name})
	if cmd != nil || res.Category == nil {
		return cmd
	}
	a.cursorToCategory(res.Category.ID)
	return a.setStatus(fmt.Sprintf("Created %s", res.Category.Name))
}

func (a *App) updatePreview(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, a.keys.Cancel, a.keys.Focus) {
		a.preview.Blur()
		a.mode = browseView
		return nil
	}

	before := a.preview.Value()
	var cmd tea.Cmd
	a.preview, cmd = a.preview.Update(msg)

	if text := a.preview.Value(); text != before {
		if _, errCmd := a.dispatch(app.Action{Kind: app.ActionEditPreview, Text: text}); errCmd != nil {
			return tea.Batch(cmd, errCmd)
		}
	}
	return cmd
}

// dispatch runs an action and refreshes derived view state. The returned
// command is non-nil only when the action failed.
func (a *App) dispatch(action app.Action) (app.Result, tea.Cmd) {
	res, err := a.state.Dispatch(action)
	if err != nil {
		log.Error().Err(err).Stringer("action", action.Kind).Msg("action failed")
		return res, a.setStatus(fmt.Sprintf("Error: %v", err))
	}

	log.Debug().Stringer("action", action.Kind).Bool("changed", res.Changed).Msg("dispatched")
	a.reload()
	if action.Kind != app.ActionEditPreview {
		a.syncPreview()
	}
	return res, nil
}

func (a *App) setStatus(msg string) tea.Cmd {
	a.statusSeq++
	seq := a.statusSeq
	a.statusMsg = msg
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (a *App) setSize(width, height int) {
	a.width = width
	a.height = height
	a.layout.SetSize(width, height)

	listWidth, listHeight := a.layout.ListSize()
	a.list.Width = listWidth
	a.list.Height = listHeight
	a.editor.SetWidth(listWidth - 4)

	previewWidth, previewHeight := a.layout.PreviewSize()
	a.preview.SetWidth(previewWidth)
	a.preview.SetHeight(max(previewHeight-2, 1))

	a.help.Width = width
	a.nameInput.Width = min(40, width-20)
}

// syncPreview copies the buffer text into the textarea after changes made
// from the list
func (a *App) syncPreview() {
	if text := a.state.Preview.Text(); a.preview.Value() != text {
		a.preview.SetValue(text)
	}
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var sections []string

	if a.layout.ShowHeader && !a.layout.Narrow {
		title := fmt.Sprintf("%d categories", len(a.categories))
		sections = append(sections, renderHeader(a.width, title), "")
	}

	sections = append(sections, a.layout.JoinPanes(a.renderList(), a.renderPreview()))

	switch {
	case a.confirm.Active():
		sections = append(sections, a.confirm.ViewWithWidth(a.width))
	case a.mode == editView:
		sections = append(sections, a.help.ShortHelpView(a.keys.editorHelp()))
	case a.mode == promptView:
		sections = append(sections,
			InputStyle.Render(a.nameInput.View()),
			a.help.ShortHelpView(a.keys.promptHelp()))
	case a.mode == previewView:
		sections = append(sections, a.help.ShortHelpView(a.keys.previewHelp()))
	default:
		sections = append(sections, a.layout.RenderHelpPane(a.keys.helpRows()))
	}

	if a.statusMsg != "" {
		sections = append(sections, StatusBarStyle.Render(a.statusMsg))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
