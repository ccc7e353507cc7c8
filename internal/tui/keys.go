package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the form's key bindings.
type keyMap struct {
	Add      key.Binding
	Location key.Binding
	Exit     key.Binding
	Submit   key.Binding
	Back     key.Binding
	Yes      key.Binding
	Quit     key.Binding
}

// defaultKeys returns the key bindings used by Model.
func defaultKeys() keyMap {
	return keyMap{
		Add: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "add contact"),
		),
		Location: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "file location"),
		),
		Exit: key.NewBinding(
			key.WithKeys("3", "q"),
			key.WithHelp("3/q", "exit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to menu"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "save"),
		),
		// ctrl+c always quits, even while typing in a field.
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
