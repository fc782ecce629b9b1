package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Init    key.Binding
	Refresh key.Binding
	Check   key.Binding
	Batch   key.Binding
	Next    key.Binding
	Prev    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Init:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "initialize session")),
	Refresh: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh status")),
	Check:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "check number")),
	Batch:   key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "start batch")),
	Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
	Prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev pane")),
	Help:    key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "toggle help")),
	Quit:    key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
}

func (k keyMap) helpLine() string {
	line := ""
	for i, b := range []key.Binding{k.Init, k.Refresh, k.Check, k.Batch, k.Next, k.Help, k.Quit} {
		if i > 0 {
			line += " | "
		}
		h := b.Help()
		line += h.Key + " " + h.Desc
	}
	return line
}
