package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/regexplay/internal/state"
	"github.com/atomicstack/regexplay/internal/theme"
	"github.com/atomicstack/regexplay/internal/ui/command"
	uistate "github.com/atomicstack/regexplay/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

var styles = theme.Default()

// bodyWrapWidth keeps the body editor from soft wrapping, so its logical
// rows line up with the highlighted display lines.
const bodyWrapWidth = 4096

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a new Model.
type Options struct {
	Pattern  string
	Template string
	Body     string

	Width  int
	Height int

	Substitution    bool
	StartSubstitute bool
	StartReference  bool
	ShowFooter      bool
	Blink           bool
}

// Model implements the Bubble Tea model for the playground.
type Model struct {
	session *state.Session
	ui      uistate.State
	frame   state.Frame

	pattern  textinput.Model
	template textinput.Model
	body     textarea.Model
	bodyView viewport.Model
	bodyXOff int
	help     help.Model
	keys     keyMap

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	blink       bool

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	result   string
	exported bool

	handlers map[reflect.Type]msgHandler
	bus      *command.Bus
}

// NewModel builds the model with the given initial buffers and settings.
func NewModel(opts Options) *Model {
	m := &Model{
		session:    state.NewSession(opts.Pattern, opts.Template, opts.Body),
		ui:         uistate.New(opts.Substitution, opts.StartSubstitute),
		keys:       newKeyMap(opts.Substitution),
		help:       help.New(),
		bus:        command.New(),
		showFooter: opts.ShowFooter,
		blink:      opts.Blink,
	}
	if opts.StartReference {
		m.ui.Panel = uistate.PanelQuickReference
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.pattern = m.newField("type a regular expression", opts.Pattern)
	m.template = m.newField("type a substitution, e.g. <$0>", opts.Template)
	m.body = m.newBodyEditor(opts.Body)
	m.bodyView = viewport.New(0, 0)
	m.applyFocus()
	m.layout()
	m.refresh()
	m.registerHandlers()
	return m
}

func (m *Model) newField(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 0
	ti.SetValue(value)
	if styles.Field != nil {
		ti.TextStyle = *styles.Field
	}
	if styles.Placeholder != nil {
		ti.PlaceholderStyle = *styles.Placeholder
	}
	if styles.Cursor != nil {
		ti.Cursor.Style = *styles.Cursor
	}
	m.applyCursorMode(&ti.Cursor)
	return ti
}

func (m *Model) newBodyEditor(value string) textarea.Model {
	ta := textarea.New()
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.MaxWidth = 0
	ta.SetWidth(bodyWrapWidth)
	ta.SetValue(value)
	m.applyCursorMode(&ta.Cursor)
	return ta
}

func (m *Model) applyCursorMode(c *cursor.Model) {
	if m.blink {
		c.SetMode(cursor.CursorBlink)
		return
	}
	c.SetMode(cursor.CursorStatic)
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.blink {
		return textinput.Blink
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}
	cmds = append(cmds, m.forwardToWidgets(msg)...)
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):         m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):  m.handleWindowSizeMsg,
		reflect.TypeOf(clipboardResultMsg{}): m.handleClipboardResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// forwardToWidgets hands non-key messages, such as cursor blinks, to the
// editors. Unfocused editors ignore them.
func (m *Model) forwardToWidgets(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.pattern, cmd = m.pattern.Update(msg)
	cmds = appendCmd(cmds, cmd)
	m.template, cmd = m.template.Update(msg)
	cmds = appendCmd(cmds, cmd)
	m.body, cmd = m.body.Update(msg)
	cmds = appendCmd(cmds, cmd)
	return cmds
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func appendCmd(cmds []tea.Cmd, cmd tea.Cmd) []tea.Cmd {
	if cmd == nil {
		return cmds
	}
	return append(cmds, cmd)
}

// refresh recomputes the derived frame from the session.
func (m *Model) refresh() {
	m.frame = m.session.Frame()
}

// Result returns the exported value, if an export ended the program.
func (m *Model) Result() (string, bool) {
	return m.result, m.exported
}

// State returns the current interaction state.
func (m *Model) State() uistate.State {
	return m.ui
}

// Session exposes the underlying buffers.
func (m *Model) Session() *state.Session {
	return m.session
}
