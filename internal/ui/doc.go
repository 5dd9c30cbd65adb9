// Package ui contains the Bubble Tea program for the regex playground.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry keyed by message type.
//   - Key presses matching a global chord become events for the interaction
//     state machine in internal/ui/state. Every other key is an edit: the
//     state machine names the focused buffer and the key is forwarded to that
//     editor (textinput for the pattern and template, textarea for the body).
//   - When an editor's value changes the session in internal/state is
//     updated, recompiling the pattern if needed, and the frame of derived
//     views (segments, captures, output, hints) is recomputed.
//
// Rendering:
//   - View lays out bordered boxes for the pattern, the optional template, the
//     highlighted body, the substitution output and an info panel holding
//     either the capture table or the quick reference.
//   - The body is drawn from the frame's segments rather than by the textarea,
//     with the editor's cursor overlaid, so highlighting stays live while
//     typing into the body.
//
// Side effects such as clipboard writes run as tea.Cmd values created by the
// command bus in internal/ui/command.
package ui
