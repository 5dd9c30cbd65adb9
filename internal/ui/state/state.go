// Package state holds the interaction state machine: which field has focus,
// which auxiliary panel is shown, and whether substitution is active.
//
// State values are immutable; Next computes the successor for an event and
// never mutates its input.
package state

// Focus identifies the editable buffer receiving keystrokes.
type Focus int

const (
	FocusPattern Focus = iota
	FocusSubstitution
	FocusBody
)

func (f Focus) String() string {
	switch f {
	case FocusPattern:
		return "pattern"
	case FocusSubstitution:
		return "substitution"
	case FocusBody:
		return "body"
	default:
		return "unknown"
	}
}

// Panel identifies the auxiliary, read-only information view.
type Panel int

const (
	PanelCaptures Panel = iota
	PanelQuickReference
)

func (p Panel) String() string {
	if p == PanelQuickReference {
		return "reference"
	}
	return "captures"
}

// Mode is the top-level mode.
type Mode int

const (
	ModeMatch Mode = iota
	ModeSubstitute
)

func (m Mode) String() string {
	if m == ModeSubstitute {
		return "substitute"
	}
	return "match"
}

// Event is an abstract input event.
type Event int

const (
	EventCommitEdit Event = iota
	EventToggleFocus
	EventTogglePanel
	EventToggleMode
	EventExportPattern
	EventExportOutput
	EventQuit
)

// Action tells the event loop what to do after a transition.
type Action int

const (
	ActionContinue Action = iota
	ActionEdit
	ActionExportPattern
	ActionExportOutput
	ActionQuit
)

// Terminal reports whether the action ends the interactive loop.
func (a Action) Terminal() bool {
	return a == ActionExportPattern || a == ActionExportOutput || a == ActionQuit
}

// State is the complete interaction state.
type State struct {
	Focus Focus
	Panel Panel
	Mode  Mode
	// Substitution enables ModeSubstitute. When false, EventToggleMode is a no-op.
	Substitution bool
}

// New returns the initial state. startSubstitute is honoured only when
// substitution is enabled.
func New(substitution, startSubstitute bool) State {
	s := State{Focus: FocusPattern, Panel: PanelCaptures, Mode: ModeMatch, Substitution: substitution}
	if substitution && startSubstitute {
		s.Mode = ModeSubstitute
	}
	return s
}

// Transition is the result of applying an event.
type Transition struct {
	State  State
	Action Action
	// Target is the buffer an ActionEdit applies to.
	Target Focus
}

// Next applies ev to s.
func Next(s State, ev Event) Transition {
	switch ev {
	case EventToggleFocus:
		s.Focus = nextFocus(s.FocusOrder(), s.Focus)
		return Transition{State: s, Action: ActionContinue, Target: s.Focus}
	case EventTogglePanel:
		if s.Panel == PanelCaptures {
			s.Panel = PanelQuickReference
		} else {
			s.Panel = PanelCaptures
		}
		return Transition{State: s, Action: ActionContinue, Target: s.Focus}
	case EventToggleMode:
		if !s.Substitution {
			return Transition{State: s, Action: ActionContinue, Target: s.Focus}
		}
		if s.Mode == ModeMatch {
			s.Mode = ModeSubstitute
		} else {
			s.Mode = ModeMatch
		}
		if !s.Accepts(s.Focus) {
			s.Focus = FocusPattern
		}
		return Transition{State: s, Action: ActionContinue, Target: s.Focus}
	case EventCommitEdit:
		return Transition{State: s, Action: ActionEdit, Target: s.Focus}
	case EventExportPattern:
		return Transition{State: s, Action: ActionExportPattern, Target: s.Focus}
	case EventExportOutput:
		return Transition{State: s, Action: ActionExportOutput, Target: s.Focus}
	case EventQuit:
		return Transition{State: s, Action: ActionQuit, Target: s.Focus}
	default:
		return Transition{State: s, Action: ActionContinue, Target: s.Focus}
	}
}

// FocusOrder lists the focus targets valid in the current mode, in cycle order.
func (s State) FocusOrder() []Focus {
	if s.Mode == ModeSubstitute {
		return []Focus{FocusPattern, FocusSubstitution, FocusBody}
	}
	return []Focus{FocusPattern, FocusBody}
}

// Accepts reports whether f is a valid focus target in the current mode.
func (s State) Accepts(f Focus) bool {
	for _, candidate := range s.FocusOrder() {
		if candidate == f {
			return true
		}
	}
	return false
}

func nextFocus(order []Focus, current Focus) Focus {
	for i, f := range order {
		if f == current {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}
