// Package keymap holds the dashboard key bindings.
package keymap

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap is the set of bindings shared by the views. It satisfies
// help.KeyMap so the bubbles help component can render it.
type KeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Back     key.Binding
	Cancel   key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Select   key.Binding
	Refresh  key.Binding

	// NextTab and PrevTab cycle the GitHub summary tabs.
	NextTab key.Binding
	PrevTab key.Binding

	// Move opens the status picker for a Jira ticket.
	Move key.Binding

	// Toggle and Decrease step the selected setting.
	Toggle   key.Binding
	Decrease key.Binding
}

func bind(helpKey, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey, desc))
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:     bind("q", "quit", "q", "ctrl+c"),
		Help:     bind("?", "help", "?"),
		Back:     bind("esc", "back", "esc"),
		Cancel:   bind("esc", "cancel", "esc"),
		Up:       bind("↑/k", "up", "up", "k"),
		Down:     bind("↓/j", "down", "down", "j"),
		PageUp:   bind("pgup", "page up", "pgup", "ctrl+u"),
		PageDown: bind("pgdn", "page down", "pgdown", "ctrl+d"),
		Select:   bind("enter", "select", "enter"),
		Refresh:  bind("r", "refresh", "r"),
		NextTab:  bind("tab", "next tab", "tab", "right", "l"),
		PrevTab:  bind("shift+tab", "previous tab", "shift+tab", "left", "h"),
		Move:     bind("m", "move ticket", "m"),
		Toggle:   bind("enter/→", "change", "enter", " ", "right", "l"),
		Decrease: bind("←", "decrease", "left", "h"),
	}
}

// ShortHelp is shown in the status bar outside lists.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// ListHelp is shown in the status bar while a list has focus.
func (k *KeyMap) ListHelp() []key.Binding {
	return []key.Binding{k.Up, k.Select, k.Refresh, k.Back}
}

// FullHelp groups every binding into columns for the help screen.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Select, k.Back, k.Refresh},
		{k.NextTab, k.PrevTab, k.Move},
		{k.Toggle, k.Decrease, k.Quit},
	}
}

// Matches reports whether the key string is bound to binding.
func Matches(keyStr string, binding key.Binding) bool {
	return slices.Contains(binding.Keys(), keyStr)
}
