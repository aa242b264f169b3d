package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the directory TUI.
type KeyMap struct {
	// List navigation.
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding

	// Query.
	Search       key.Binding
	CycleDept    key.Binding
	CycleRole    key.Binding
	ClearFilters key.Binding
	SortName     key.Binding
	SortDept     key.Binding
	PageSize     key.Binding

	// Records.
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding

	// Form and prompts.
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Cancel    key.Binding
	Yes       key.Binding
	No        key.Binding

	Quit key.Binding
}

// DefaultKeyMap pairs vim-style movement with the arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left", "pgup"),
		key.WithHelp("h/←", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right", "pgdown"),
		key.WithHelp("l/→", "next page"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	CycleDept: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "department"),
	),
	CycleRole: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "role"),
	),
	ClearFilters: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear filters"),
	),
	SortName: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "sort name"),
	),
	SortDept: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "sort dept"),
	),
	PageSize: key.NewBinding(
		key.WithKeys("z"),
		key.WithHelp("z", "page size"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("Tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("S-Tab", "prev field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n", "no"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k KeyMap) listHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevPage, k.NextPage, k.Search, k.CycleDept, k.CycleRole,
		k.ClearFilters, k.SortName, k.SortDept, k.PageSize, k.Add, k.Edit, k.Delete, k.Quit}
}

func (k KeyMap) formHelp() []key.Binding {
	return []key.Binding{k.NextField, k.PrevField, k.Submit, k.Cancel}
}
