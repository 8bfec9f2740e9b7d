package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pause     key.Binding
	Remount   key.Binding
	Left      key.Binding
	Right     key.Binding
	Go        key.Binding
	Back      key.Binding
	Wireframe key.Binding
	Record    key.Binding
	Snapshot  key.Binding
	Theme     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Pause:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		Remount:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "remount")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next")),
		Go:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("⏎", "open")),
		Back:      key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "back")),
		Wireframe: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "wireframe")),
		Record:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "record gif")),
		Snapshot:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "svg snapshot")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Go, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Remount, k.Left, k.Right, k.Go, k.Back},
		{k.Wireframe, k.Record, k.Snapshot, k.Theme, k.Help, k.Quit},
	}
}
