package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type doneMsg struct{ value string }

func TestExecuteRunsRequest(t *testing.T) {
	bus := New()
	calls := 0
	cmd := bus.Execute(Request{ID: "copy", Label: "copy", Run: func() tea.Msg {
		calls++
		return doneMsg{value: "ok"}
	}})
	if calls != 0 {
		t.Fatalf("expected request to run lazily")
	}
	msg := cmd()
	if calls != 1 {
		t.Fatalf("expected one call, got %d", calls)
	}
	if got, ok := msg.(doneMsg); !ok || got.value != "ok" {
		t.Fatalf("unexpected message %#v", msg)
	}
}

func TestExecuteNilRunIsSkipped(t *testing.T) {
	if msg := New().Execute(Request{ID: "noop"})(); msg != nil {
		t.Fatalf("expected nil message, got %#v", msg)
	}
}
