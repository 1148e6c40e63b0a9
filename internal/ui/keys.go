package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Home    key.Binding
	End     key.Binding
	Enter   key.Binding
	Press   key.Binding
	Add     key.Binding
	Pick    key.Binding
	Remove  key.Binding
	Submit  key.Binding
	Reset   key.Binding
	Browse  key.Binding
	Detach  key.Binding
	Open    key.Binding
	Copy    key.Binding
	Dismiss key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		Up:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:    key.NewBinding(key.WithKeys("left")),
		Right:   key.NewBinding(key.WithKeys("right")),
		Home:    key.NewBinding(key.WithKeys("home")),
		End:     key.NewBinding(key.WithKeys("end")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Press:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "press")),
		Add:     key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add to list")),
		Pick:    key.NewBinding(key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7", "alt+8", "alt+9"), key.WithHelp("alt+1…9", "pick suggestion")),
		Remove:  key.NewBinding(key.WithKeys("x", "delete", "backspace"), key.WithHelp("x", "remove")),
		Submit:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		Reset:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "clear form")),
		Browse:  key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "choose file")),
		Detach:  key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "forget file")),
		Open:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open preview")),
		Copy:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy url")),
		Dismiss: key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "dismiss")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Add, k.Submit, k.Reset, k.Browse, k.Open, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Enter, k.Add, k.Pick, k.Remove},
		{k.Submit, k.Reset, k.Browse, k.Detach},
		{k.Open, k.Copy, k.Dismiss, k.Quit},
	}
}

// pickIndex returns the zero-based suggestion slot for alt+1..alt+9.
func pickIndex(s string) (int, bool) {
	if len(s) != len("alt+1") || s[:4] != "alt+" {
		return 0, false
	}
	d := s[4]
	if d < '1' || d > '9' {
		return 0, false
	}
	return int(d - '1'), true
}
