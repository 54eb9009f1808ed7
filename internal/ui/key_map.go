package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	left   key.Binding
	right  key.Binding
	toggle key.Binding
	enter  key.Binding
	tab    key.Binding
	inc    key.Binding
	dec    key.Binding
	submit key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle seat")),
		enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "continue")),
		tab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		inc:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more")),
		dec:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "less")),
		submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right},
		{k.toggle, k.enter, k.tab},
		{k.inc, k.dec, k.submit, k.quit},
	}
}
