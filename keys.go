package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Toggle    key.Binding
	Undo      key.Binding
	Redo      key.Binding
	Save      key.Binding
	Open      key.Binding
	Clear     key.Binding
	Shrink    key.Binding
	Grow      key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	ExportPNG key.Binding
	ExportTXT key.Binding
	Copy      key.Binding
	Paste     key.Binding
	Reload    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("k", "up", "K", "shift+up"), key.WithHelp("k/↑", "up")),
		Down:      key.NewBinding(key.WithKeys("j", "down", "J", "shift+down"), key.WithHelp("j/↓", "down")),
		Left:      key.NewBinding(key.WithKeys("h", "left", "H", "shift+left"), key.WithHelp("h/←", "left")),
		Right:     key.NewBinding(key.WithKeys("l", "right", "L", "shift+right"), key.WithHelp("l/→", "right")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle cell")),
		Undo:      key.NewBinding(key.WithKeys("ctrl+z", "u"), key.WithHelp("ctrl+z/u", "undo")),
		Redo:      key.NewBinding(key.WithKeys("ctrl+y", "ctrl+r", "U"), key.WithHelp("ctrl+y/U", "redo")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s", "s"), key.WithHelp("ctrl+s", "save")),
		Open:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		Clear:     key.NewBinding(key.WithKeys("delete", "backspace"), key.WithHelp("del", "clear grid")),
		Shrink:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "smaller grid")),
		Grow:      key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "bigger grid")),
		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:   key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		ExportPNG: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "export PNG")),
		ExportTXT: key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "export text")),
		Copy:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy JSON")),
		Paste:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "paste JSON")),
		Reload:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload file")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Undo, k.Redo, k.Save, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Toggle},
		{k.Undo, k.Redo, k.Clear, k.Shrink, k.Grow, k.ZoomIn, k.ZoomOut},
		{k.Save, k.Open, k.ExportPNG, k.ExportTXT, k.Copy, k.Paste, k.Reload},
		{k.Help, k.Quit},
	}
}
