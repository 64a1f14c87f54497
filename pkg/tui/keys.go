package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Add       key.Binding
	Remove    key.Binding
	AddAll    key.Binding
	Edit      key.Binding
	Delete    key.Binding
	New       key.Binding
	Delimiter key.Binding
	Copy      key.Binding
	Clear     key.Binding
	Focus     key.Binding
	Save      key.Binding
	Cancel    key.Binding
	Confirm   key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Add:       key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "add tag")),
		Remove:    key.NewBinding(key.WithKeys("backspace", "-"), key.WithHelp("-", "remove tag")),
		AddAll:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add all")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new category")),
		Delimiter: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "space/newline")),
		Copy:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		Clear:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear")),
		Focus:     key.NewBinding(key.WithKeys(append([]string{"tab"}, Shortcuts.Focus.Keys()...)...), key.WithHelp("tab", "switch pane")),
		Save:      key.NewBinding(key.WithKeys(Shortcuts.Save.Keys()...), key.WithHelp(Shortcuts.Save.Get(), helpWithWarning("save", Shortcuts.Save.Warning()))),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "create")),
		Quit:      key.NewBinding(key.WithKeys(Shortcuts.Quit.Get(), "q"), key.WithHelp("q", "quit")),
	}
}

// helpRows groups the list bindings for the help pane
func (k keyMap) helpRows() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Add, k.Remove, k.Focus, k.Quit},
		{k.AddAll, k.Edit, k.Delete, k.New, k.Delimiter, k.Copy, k.Clear},
	}
}

// ShortHelp and FullHelp satisfy help.KeyMap for the list view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.AddAll, k.Copy, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return k.helpRows()
}

// helpWithWarning appends a terminal conflict hint to a help description
func helpWithWarning(desc, warning string) string {
	if warning == "" {
		return desc
	}
	return desc + " " + warning
}

func (k keyMap) editorHelp() []key.Binding {
	return []key.Binding{k.Save, k.Cancel}
}

func (k keyMap) promptHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

func (k keyMap) previewHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc/tab", "back to categories")),
	}
}
