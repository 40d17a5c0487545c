package cli

import "github.com/charmbracelet/bubbles/key"

type boardKeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	AddCard    key.Binding
	EditCard   key.Binding
	DeleteCard key.Binding
	Move       key.Binding
	AddList    key.Binding
	RenameList key.Binding
	DeleteList key.Binding
	Export     key.Binding
	Import     key.Binding
	Reset      key.Binding
	Help       key.Binding
	Cancel     key.Binding
	Quit       key.Binding
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddCard, k.Move, k.AddList, k.Help, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.AddCard, k.EditCard, k.DeleteCard, k.Move},
		{k.AddList, k.RenameList, k.DeleteList},
		{k.Export, k.Import, k.Reset, k.Help, k.Quit},
	}
}

var boardKeys = boardKeyMap{
	Left:       key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "prev list")),
	Right:      key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "next list")),
	Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "prev card")),
	Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "next card")),
	AddCard:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add card")),
	EditCard:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit card")),
	DeleteCard: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete card")),
	Move:       key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "pick up/drop")),
	AddList:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new list")),
	RenameList: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename list")),
	DeleteList: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete list")),
	Export:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
	Import:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
	Reset:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset board")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
