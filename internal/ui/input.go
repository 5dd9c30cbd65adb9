package ui

import (
	"github.com/atomicstack/regexplay/internal/logging/events"
	uistate "github.com/atomicstack/regexplay/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m.dispatch(uistate.EventQuit, keyMsg)
	case key.Matches(keyMsg, m.keys.ToggleFocus):
		return m.dispatch(uistate.EventToggleFocus, keyMsg)
	case key.Matches(keyMsg, m.keys.TogglePanel):
		return m.dispatch(uistate.EventTogglePanel, keyMsg)
	case key.Matches(keyMsg, m.keys.ToggleMode):
		return m.dispatch(uistate.EventToggleMode, keyMsg)
	case key.Matches(keyMsg, m.keys.ExportPattern):
		return m.dispatch(uistate.EventExportPattern, keyMsg)
	case key.Matches(keyMsg, m.keys.ExportOutput):
		return m.dispatch(uistate.EventExportOutput, keyMsg)
	case key.Matches(keyMsg, m.keys.CopyPattern):
		return m.copyToClipboard("pattern", m.session.ExportPattern())
	case key.Matches(keyMsg, m.keys.CopyOutput):
		return m.copyToClipboard("output", m.session.ExportOutput())
	}
	return m.dispatch(uistate.EventCommitEdit, keyMsg)
}

// dispatch runs ev through the state machine and performs the resulting
// action.
func (m *Model) dispatch(ev uistate.Event, msg tea.KeyMsg) tea.Cmd {
	prev := m.ui
	tr := uistate.Next(m.ui, ev)
	m.ui = tr.State
	if tr.Action == uistate.ActionEdit {
		return m.edit(tr.Target, msg)
	}
	if !tr.Action.Terminal() {
		return m.noteTransition(prev)
	}
	switch tr.Action {
	case uistate.ActionExportPattern:
		m.result, m.exported = m.session.ExportPattern(), true
		events.Export.Pattern(m.result)
	case uistate.ActionExportOutput:
		m.result, m.exported = m.session.ExportOutput(), true
		events.Export.Output(len(m.result))
	default:
		events.Export.Quit()
	}
	return tea.Quit
}

func (m *Model) noteTransition(prev uistate.State) tea.Cmd {
	if prev.Mode != m.ui.Mode {
		events.UI.Mode(m.ui.Mode.String(), m.ui.Focus.String())
		m.layout()
	}
	if prev.Panel != m.ui.Panel {
		events.UI.Panel(m.ui.Panel.String())
	}
	if prev.Focus == m.ui.Focus {
		return nil
	}
	events.UI.Focus(m.ui.Focus.String())
	return m.applyFocus()
}

// applyFocus focuses the editor matching the interaction state and blurs the
// others.
func (m *Model) applyFocus() tea.Cmd {
	m.pattern.Blur()
	m.template.Blur()
	m.body.Blur()
	switch m.ui.Focus {
	case uistate.FocusPattern:
		return m.pattern.Focus()
	case uistate.FocusSubstitution:
		return m.template.Focus()
	case uistate.FocusBody:
		return m.body.Focus()
	}
	return nil
}

// edit forwards msg to the editor for target and pushes any change into the
// session.
func (m *Model) edit(target uistate.Focus, msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	changed := false
	switch target {
	case uistate.FocusPattern:
		before := m.pattern.Value()
		m.pattern, cmd = m.pattern.Update(msg)
		if after := m.pattern.Value(); after != before {
			m.session.SetPattern(after)
			events.Edit.Applied(target.String(), len(after))
			changed = true
		}
	case uistate.FocusSubstitution:
		before := m.template.Value()
		m.template, cmd = m.template.Update(msg)
		if after := m.template.Value(); after != before {
			m.session.SetTemplate(after)
			events.Edit.Applied(target.String(), len(after))
			changed = true
		}
	case uistate.FocusBody:
		before := m.body.Value()
		m.body, cmd = m.body.Update(msg)
		if after := m.body.Value(); after != before {
			body := applyBodyEdit(m.session.Body(), before, after)
			m.session.SetBody(body)
			events.Edit.Applied(target.String(), len(body))
			changed = true
		}
	}
	if changed {
		m.errMsg = ""
		m.refresh()
	}
	return cmd
}

// bodyCursor returns the body editor's cursor as a logical row and a rune
// column.
func (m *Model) bodyCursor() (int, int) {
	info := m.body.LineInfo()
	return m.body.Line(), info.StartColumn + info.ColumnOffset
}
