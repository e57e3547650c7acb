package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next             key.Binding
	Prev             key.Binding
	AddIngredient    key.Binding
	RemoveIngredient key.Binding
	PickImage        key.Binding
	ClearImage       key.Binding
	Submit           key.Binding
	CopyCurl         key.Binding
	ScrollUp         key.Binding
	ScrollDown       key.Binding
	Cancel           key.Binding
	Help             key.Binding
	Quit             key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.PickImage, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.ScrollUp, k.ScrollDown},
		{k.AddIngredient, k.RemoveIngredient},
		{k.PickImage, k.ClearImage, k.Cancel},
		{k.Submit, k.CopyCurl, k.Help, k.Quit},
	}
}

var keys = keyMap{
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
	AddIngredient: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n", "add ingredient"),
	),
	RemoveIngredient: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "remove ingredient (in list)"),
	),
	PickImage: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "choose image"),
	),
	ClearImage: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "remove image"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "create recipe"),
	),
	CopyCurl: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy as curl"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "scroll up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "scroll down"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close picker"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}
