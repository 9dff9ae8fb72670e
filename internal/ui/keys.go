package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit   key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Ratio  key.Binding
	Export key.Binding
	Reload key.Binding
}

var keys = keyMap{
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Ratio:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "edit ratio")),
	Export: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export PDF")),
	Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
}

// pickerKeys and analysisKeys adapt keyMap to help.KeyMap for each screen.
type pickerKeys keyMap

func (k pickerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

func (k pickerKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

type analysisKeys keyMap

func (k analysisKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Ratio, k.Export, k.Reload, k.Back, k.Quit}
}

func (k analysisKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
