package views

import (
	"github.com/charmbracelet/bubbles/key"

	"bookcat/internal/ui/state"
)

// KeyMap is the short help shown in the footer. It satisfies help.KeyMap.
type KeyMap struct {
	Move    key.Binding
	Page    key.Binding
	Screens key.Binding
	Open    key.Binding
	Search  key.Binding
	Years   key.Binding
	New     key.Binding
	Delete  key.Binding
	Help    key.Binding
	Quit    key.Binding

	screen state.Screen
}

// KeysFor returns the footer bindings relevant to a screen
func KeysFor(screen state.Screen) KeyMap {
	km := KeyMap{
		Move:    key.NewBinding(key.WithKeys("up", "down", "j", "k"), key.WithHelp("↑/↓", "move")),
		Page:    key.NewBinding(key.WithKeys("left", "right", "h", "l"), key.WithHelp("←/→", "page")),
		Screens: key.NewBinding(key.WithKeys("tab", "1", "2", "3", "4"), key.WithHelp("tab/1-4", "screens")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Years:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "years")),
		New:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		screen:  screen,
	}
	if screen == state.ScreenUsers {
		km.Open.SetHelp("enter", "edit")
	}
	return km
}

// ShortHelp returns the bindings for the current screen
func (k KeyMap) ShortHelp() []key.Binding {
	switch k.screen {
	case state.ScreenHome:
		return []key.Binding{k.Move, k.Open, k.Search, k.Screens, k.Help, k.Quit}
	case state.ScreenBooks:
		return []key.Binding{k.Move, k.Page, k.Open, k.Search, k.Years, k.New, k.Delete, k.Help, k.Quit}
	case state.ScreenUsers:
		return []key.Binding{k.Move, k.Page, k.Open, k.New, k.Delete, k.Help, k.Quit}
	default:
		return []key.Binding{k.Screens, k.Help, k.Quit}
	}
}

// FullHelp returns all bindings grouped in columns
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Page, k.Screens},
		{k.Open, k.Search, k.Years},
		{k.New, k.Delete, k.Help, k.Quit},
	}
}
