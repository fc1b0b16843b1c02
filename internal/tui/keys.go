package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Enter    key.Binding
	Tab      key.Binding
	Add      key.Binding
	Done     key.Binding
	Delete   key.Binding
	Move     key.Binding
	Search   key.Binding
	Stats    key.Binding
	Notify   key.Binding
	Export   key.Binding
	Import   key.Binding
	Collapse key.Binding
	Help     key.Binding
	Quit     key.Binding
	Escape   key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "new task")),
	Done:     key.NewBinding(key.WithKeys("x", " "), key.WithHelp("x", "toggle done")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Move:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Stats:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stats")),
	Notify:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "reminders")),
	Export:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
	Import:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
	Collapse: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "fold completed")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Done, k.Delete, k.Move, k.Search, k.Stats, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Add, k.Done, k.Delete, k.Move},
		{k.Search, k.Stats, k.Notify, k.Collapse},
		{k.Export, k.Import, k.Help, k.Quit},
	}
}
