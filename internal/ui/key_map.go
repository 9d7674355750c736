package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	like    key.Binding
	dislike key.Binding
	comment key.Binding
	edit    key.Binding
	del     key.Binding
	open    key.Binding
	channel key.Binding
	refresh key.Binding
	yes     key.Binding
	no      key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		like:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "like")),
		dislike: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dislike")),
		comment: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "comment")),
		edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		del:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
		channel: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "my channel")),
		refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.like, k.dislike, k.comment},
		{k.edit, k.del, k.open},
		{k.channel, k.refresh, k.quit},
	}
}
