package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the global chords. Everything else is an edit for the focused
// field.
type keyMap struct {
	ToggleFocus   key.Binding
	TogglePanel   key.Binding
	ToggleMode    key.Binding
	ExportPattern key.Binding
	ExportOutput  key.Binding
	CopyPattern   key.Binding
	CopyOutput    key.Binding
	Quit          key.Binding

	substitution bool
}

func newKeyMap(substitution bool) keyMap {
	return keyMap{
		ToggleFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus"),
		),
		TogglePanel: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("^h", "quick reference"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("^x", "match/substitution"),
		),
		ExportPattern: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("^e", "export regex"),
		),
		ExportOutput: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("^o", "export output"),
		),
		CopyPattern: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("^y", "copy regex"),
		),
		CopyOutput: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("^r", "copy output"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("^q", "quit"),
		),
		substitution: substitution,
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	bindings := []key.Binding{k.ToggleFocus}
	if k.substitution {
		bindings = append(bindings, k.ToggleMode)
	}
	return append(bindings, k.ExportPattern, k.ExportOutput, k.TogglePanel, k.CopyPattern, k.Quit)
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.ShortHelp(),
		{k.CopyOutput},
	}
}
