package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Generate key.Binding
	Back     key.Binding
	Forward  key.Binding
	Mode     key.Binding
	Target   key.Binding
	Up       key.Binding
	Down     key.Binding
	Edit     key.Binding
	Export   key.Binding
	Help     key.Binding
	Quit     key.Binding

	Apply  key.Binding
	Cancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Generate: key.NewBinding(key.WithKeys("g", " "), key.WithHelp("g/space", "generate")),
		Back:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "back")),
		Forward:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "forward")),
		Mode:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "toggle mode")),
		Target:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "next target")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous role")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next role")),
		Edit:     key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e/enter", "edit role")),
		Export:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Apply:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Generate, k.Back, k.Forward, k.Edit, k.Export, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Generate, k.Mode, k.Target},
		{k.Back, k.Forward},
		{k.Up, k.Down, k.Edit},
		{k.Export, k.Help, k.Quit},
	}
}

type editKeyMap struct {
	apply  key.Binding
	cancel key.Binding
}

func (k editKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.apply, k.cancel}
}

func (k editKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
