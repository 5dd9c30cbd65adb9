package ui

import (
	"fmt"

	"github.com/atomicstack/regexplay/internal/logging"
	"github.com/atomicstack/regexplay/internal/logging/events"
	"github.com/atomicstack/regexplay/internal/ui/command"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

var writeClipboard = clipboard.WriteAll

// clipboardResultMsg reports the outcome of a copy.
type clipboardResultMsg struct {
	what string
	err  error
}

func (m *Model) copyToClipboard(what, text string) tea.Cmd {
	return m.bus.Execute(command.Request{
		ID:    "clipboard." + what,
		Label: "copy " + what,
		Run: func() tea.Msg {
			err := writeClipboard(text)
			events.Clipboard.Copy(what, len(text), err)
			return clipboardResultMsg{what: what, err: err}
		},
	})
}

func (m *Model) handleClipboardResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(clipboardResultMsg)
	if !ok {
		return nil
	}
	if result.err != nil {
		err := fmt.Errorf("copy %s: %w", result.what, result.err)
		logging.Error(err)
		m.errMsg = err.Error()
		m.forceClearInfo()
		return nil
	}
	m.errMsg = ""
	m.setInfo(fmt.Sprintf("Copied %s to clipboard", result.what))
	return nil
}
