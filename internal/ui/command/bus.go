package command

import (
	"fmt"

	"github.com/atomicstack/regexplay/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates a side effect to run outside the update loop.
type Request struct {
	ID    string
	Label string
	Run   func() tea.Msg
}

// Bus turns requests into Bubble Tea commands.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps req into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Run == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		msg := req.Run()
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
