package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next     key.Binding
	Increase key.Binding
	Decrease key.Binding
	Left     key.Binding
	Right    key.Binding
	Reset    key.Binding
	Theme    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next parameter")),
		Increase: key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "increase")),
		Decrease: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "decrease")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "angle -5°")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "angle +5°")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Increase, k.Decrease, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Increase, k.Decrease},
		{k.Left, k.Right},
		{k.Reset, k.Theme, k.Help, k.Quit},
	}
}
