package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	next     key.Binding
	prev     key.Binding
	generate key.Binding
	submit   key.Binding
	play     key.Binding
	shorter  key.Binding
	longer   key.Binding
	sample   key.Binding
	theme    key.Binding
	blur     key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		generate: key.NewBinding(key.WithKeys("g", "ctrl+g"), key.WithHelp("g", "generate")),
		submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "generate")),
		play:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		shorter:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "shorter/rewind")),
		longer:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "longer/forward")),
		sample:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "preview sample")),
		theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		blur:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave field/cancel")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.next, k.generate, k.play, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.next, k.prev, k.blur},
		{k.generate, k.submit, k.play},
		{k.shorter, k.longer, k.sample},
		{k.theme, k.quit},
	}
}
