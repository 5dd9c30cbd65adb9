package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/atomicstack/regexplay/internal/highlight"
	"github.com/atomicstack/regexplay/internal/logging/events"
	"github.com/atomicstack/regexplay/internal/theme"
	uistate "github.com/atomicstack/regexplay/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	headerRows   = 2
	fieldRows    = 3
	statusRows   = 1
	footerRows   = 1
	minPanelRows = 3

	sideLayoutMinWidth = 100 // below this the info panel stacks under the body
	sidePanelFraction  = 0.4

	zeroWidthMarker = "▏"
	newlineMarker   = "↵"
	missingCell     = "∅"
	infoDuration    = 5 * time.Second
)

// layoutPlan is the row and column budget for one frame.
type layoutPlan struct {
	width      int
	mainWidth  int
	panelWidth int // 0 when the panel is stacked
	bodyRows   int
	outputRows int
	panelRows  int
}

func (m *Model) plan() layoutPlan {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	substitute := m.ui.Mode == uistate.ModeSubstitute
	rows := h - headerRows - fieldRows - statusRows
	if substitute {
		rows -= fieldRows
	}
	if m.showFooter {
		rows -= footerRows
	}
	p := layoutPlan{width: w, mainWidth: w}
	if w >= sideLayoutMinWidth {
		p.panelWidth = int(float64(w) * sidePanelFraction)
		p.mainWidth = w - p.panelWidth
		p.panelRows = rows
	} else {
		p.panelRows = rows / 3
		rows -= p.panelRows
	}
	if substitute {
		p.outputRows = rows / 2
		rows -= p.outputRows
	}
	p.bodyRows = rows
	p.panelRows = atLeast(p.panelRows, minPanelRows)
	p.bodyRows = atLeast(p.bodyRows, minPanelRows)
	if substitute {
		p.outputRows = atLeast(p.outputRows, minPanelRows)
	}
	return p
}

func atLeast(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}

// layout pushes the current plan into the widgets.
func (m *Model) layout() {
	p := m.plan()
	fieldWidth := p.width - 3
	if fieldWidth < 1 {
		fieldWidth = 1
	}
	m.pattern.Width = fieldWidth
	m.template.Width = fieldWidth
	m.bodyView.Width = atLeast(p.mainWidth-2, 1)
	m.bodyView.Height = atLeast(p.bodyRows-2, 1)
	m.help.Width = p.width
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	m.layout()
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	p := m.plan()
	sections := []string{
		m.renderHeader(p.width),
		m.renderPatternBox(p.width),
	}
	substitute := m.ui.Mode == uistate.ModeSubstitute
	if substitute {
		sections = append(sections, m.renderTemplateBox(p.width))
	}
	main := []string{m.renderBodyBox(p.mainWidth, p.bodyRows)}
	if substitute {
		main = append(main, m.renderOutputBox(p.mainWidth, p.outputRows))
	}
	mainColumn := strings.Join(main, "\n")
	if p.panelWidth > 0 {
		panel := m.renderInfoPanel(p.panelWidth, p.panelRows)
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, mainColumn, panel))
	} else {
		sections = append(sections, mainColumn, m.renderInfoPanel(p.width, p.panelRows))
	}
	sections = append(sections, m.renderStatus(p.width))
	if m.showFooter {
		sections = append(sections, m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return strings.Join(sections, "\n")
}

func (m *Model) renderHeader(width int) string {
	mode := "match"
	if m.ui.Mode == uistate.ModeSubstitute {
		mode = "match + substitution"
	}
	title := paint(styles.HeaderAccent, "regexplay") + paint(styles.Header, " · "+mode)
	return fitWidth(title, width) + "\n"
}

func (m *Model) renderPatternBox(width int) string {
	title, style := "regex", styles.Title
	info := ""
	switch {
	case m.frame.Diagnostic != nil:
		title, style = "regex: "+m.frame.Diagnostic.Error(), styles.PatternInvalid
	case m.session.Matcher() != nil:
		style = styles.PatternValid
		if n := len(m.session.Matcher().Groups()) - 1; n > 0 {
			info = plural(n, "group")
		}
	}
	focused := m.ui.Focus == uistate.FocusPattern
	content := m.fieldView(m.pattern.View(), m.session.Pattern(), m.pattern.Placeholder, focused)
	return renderBox(boxSpec{title: title, titleStyle: style, info: info, width: width, height: fieldRows, focused: focused}, []string{content})
}

func (m *Model) renderTemplateBox(width int) string {
	focused := m.ui.Focus == uistate.FocusSubstitution
	content := m.fieldView(m.template.View(), m.session.Template(), m.template.Placeholder, focused)
	return renderBox(boxSpec{title: "substitution", titleStyle: styles.Title, width: width, height: fieldRows, focused: focused}, []string{content})
}

// fieldView renders a single-line editor. Unfocused fields show their value
// as plain text.
func (m *Model) fieldView(editor, value, placeholder string, focused bool) string {
	if focused {
		return editor
	}
	if value == "" {
		return paint(styles.Placeholder, placeholder)
	}
	return paint(styles.Field, value)
}

func (m *Model) renderBodyBox(width, height int) string {
	focused := m.ui.Focus == uistate.FocusBody
	innerW := atLeast(width-2, 1)
	m.bodyView.Width = innerW
	m.bodyView.Height = atLeast(height-2, 1)
	m.bodyView.SetContent(strings.Join(m.bodyLines(innerW, focused), "\n"))
	if focused {
		row, _ := m.bodyCursor()
		m.scrollBodyTo(row)
	}
	info := plural(m.frame.Matches, "match")
	if m.session.Matcher() == nil {
		info = ""
	}
	content := strings.Split(m.bodyView.View(), "\n")
	return renderBox(boxSpec{title: "text", titleStyle: styles.Title, info: info, width: width, height: height, focused: focused}, content)
}

func (m *Model) scrollBodyTo(row int) {
	h := m.bodyView.Height
	switch {
	case row < m.bodyView.YOffset:
		m.bodyView.SetYOffset(row)
	case row >= m.bodyView.YOffset+h:
		m.bodyView.SetYOffset(row - h + 1)
	}
}

// bodyLines renders the highlighted body, one string per display line,
// scrolled horizontally so the cursor stays visible.
func (m *Model) bodyLines(width int, focused bool) []string {
	cursorRow, cursorCol := -1, -1
	if focused {
		cursorRow, cursorCol = m.bodyCursor()
	}
	lines := make([]string, len(m.frame.Lines))
	cursorCell := -1
	for i, segs := range m.frame.Lines {
		col := -1
		if i == cursorRow {
			col = cursorCol
		}
		var cell int
		lines[i], cell = renderLine(segs, col)
		if i == cursorRow {
			cursorCell = cell
		}
	}
	if cursorCell >= 0 {
		if cursorCell < m.bodyXOff {
			m.bodyXOff = cursorCell
		} else if cursorCell >= m.bodyXOff+width {
			m.bodyXOff = cursorCell - width + 1
		}
	}
	if m.bodyXOff > 0 {
		for i, line := range lines {
			lines[i] = ansi.Cut(line, m.bodyXOff, m.bodyXOff+width)
		}
		return lines
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "")
	}
	return lines
}

// renderLine styles one display line. cursorCol is the rune column of the
// cursor in the body editor, or -1; the returned cell is where the cursor was
// drawn. Text is drawn the way the editor holds it (see displayText) so the
// two agree on columns.
func renderLine(segs []highlight.Segment, cursorCol int) (string, int) {
	var b strings.Builder
	cell, col, cursorCell := 0, 0, -1
	for _, seg := range segs {
		style := segmentStyle(seg)
		if seg.IsMatch() && seg.Text == "" && !seg.Newline {
			b.WriteString(paint(styles.ZeroWidth, zeroWidthMarker))
			cell++
			continue
		}
		runes := []rune(displayText(seg.Text))
		if cursorCell < 0 && cursorCol >= col && cursorCol < col+len(runes) {
			at := cursorCol - col
			before, under, after := string(runes[:at]), string(runes[at]), string(runes[at+1:])
			b.WriteString(paint(&style, before))
			cell += ansi.StringWidth(before)
			cursorCell = cell
			b.WriteString(paint(styles.Cursor, under))
			cell += ansi.StringWidth(under)
			b.WriteString(paint(&style, after))
			cell += ansi.StringWidth(after)
		} else {
			text := string(runes)
			b.WriteString(paint(&style, text))
			cell += ansi.StringWidth(text)
		}
		col += len(runes)
		if seg.IsMatch() && seg.Newline {
			if cursorCol == col && cursorCell < 0 {
				cursorCell = cell
				b.WriteString(paint(styles.Cursor, newlineMarker))
			} else {
				b.WriteString(paint(&style, newlineMarker))
			}
			cell++
		}
	}
	if cursorCol >= 0 && cursorCell < 0 {
		cursorCell = cell
		b.WriteString(paint(styles.Cursor, " "))
	}
	return b.String(), cursorCell
}

// displayText mirrors what the body editor stores for text: tabs become
// four spaces and other control characters are dropped.
func displayText(text string) string {
	if !strings.ContainsFunc(text, isHiddenRune) {
		return text
	}
	var b strings.Builder
	for _, r := range text {
		switch {
		case r == '\t':
			b.WriteString(tabExpansion)
		case r == '\n':
			b.WriteRune(r)
		case isHiddenRune(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isHiddenRune(r rune) bool {
	return r == utf8.RuneError || (r != '\n' && unicode.IsControl(r))
}

func segmentStyle(seg highlight.Segment) lipgloss.Style {
	if seg.IsMatch() {
		return theme.Match(seg.Match)
	}
	if styles.Body != nil {
		return *styles.Body
	}
	return lipgloss.NewStyle()
}

func (m *Model) renderOutputBox(width, height int) string {
	title, style := "output", styles.Title
	if hints := m.frame.Hints; len(hints) > 0 {
		title, style = "output: "+hints[0].String(), styles.Hint
		if len(hints) > 1 {
			title += fmt.Sprintf(" (+%d more)", len(hints)-1)
		}
	}
	lines := strings.Split(displayText(m.frame.Output), "\n")
	for i, line := range lines {
		lines[i] = paint(styles.Body, line)
	}
	return renderBox(boxSpec{title: title, titleStyle: style, width: width, height: height}, lines)
}

func (m *Model) renderInfoPanel(width, height int) string {
	if m.ui.Panel == uistate.PanelQuickReference {
		return renderBox(boxSpec{title: "quick reference", titleStyle: styles.Title, width: width, height: height}, referenceLines())
	}
	lines, info := m.captureLines()
	return renderBox(boxSpec{title: "captures", titleStyle: styles.Title, info: info, width: width, height: height}, lines)
}

func (m *Model) captureLines() ([]string, string) {
	tbl := m.frame.Captures
	if tbl.Empty() {
		if m.frame.Diagnostic != nil {
			return []string{paint(styles.Error, "pattern does not compile")}, ""
		}
		return []string{paint(styles.Placeholder, "no pattern")}, ""
	}
	rows := tbl.Format(missingCell)
	out := make([]string, 0, len(rows)+1)
	for i, row := range rows {
		if i == 0 {
			out = append(out, paint(styles.TableHeader, row))
			continue
		}
		out = append(out, paint(styles.TableCell, row))
	}
	if len(tbl.Rows) == 0 {
		out = append(out, paint(styles.Placeholder, "no matches"))
	}
	return out, plural(len(tbl.Rows), "row")
}

func (m *Model) renderStatus(width int) string {
	if m.errMsg != "" {
		return fitWidth(paint(styles.Error, "Error: "+m.errMsg), width)
	}
	if info := m.currentInfo(); info != "" {
		return fitWidth(paint(styles.Info, info), width)
	}
	return ""
}

// boxSpec describes a bordered panel.
type boxSpec struct {
	title      string
	titleStyle *lipgloss.Style
	info       string
	width      int
	height     int
	focused    bool
}

// renderBox draws a rounded box with exactly spec.height rows and
// spec.width columns. The title sits in the top border and info, when set,
// on its right end.
func renderBox(spec boxSpec, content []string) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)
	border := styles.Border
	if spec.focused && styles.FocusedBorder != nil {
		border = styles.FocusedBorder
	}
	innerW := atLeast(spec.width-2, 1)
	innerH := atLeast(spec.height-2, 1)

	titleSeg := " " + spec.title + " "
	infoSeg := ""
	if spec.info != "" {
		infoSeg = " " + spec.info + " "
	}
	dashes := spec.width - 4 - ansi.StringWidth(titleSeg) - ansi.StringWidth(infoSeg)
	if dashes < 0 {
		infoSeg = ""
		dashes = spec.width - 4 - ansi.StringWidth(titleSeg)
	}
	if dashes < 0 {
		room := spec.width - 4
		if room < 1 {
			room = 1
		}
		titleSeg = truncate.StringWithTail(titleSeg, uint(room), "…")
		dashes = spec.width - 4 - ansi.StringWidth(titleSeg)
	}
	if dashes < 0 {
		dashes = 0
	}
	topLine := paint(border, tlc+hz) +
		paint(spec.titleStyle, titleSeg) +
		paint(border, strings.Repeat(hz, dashes)) +
		paint(styles.TitleInfo, infoSeg) +
		paint(border, hz+trc)
	bottomLine := paint(border, blc+strings.Repeat(hz, innerW)+brc)

	rows := make([]string, 0, spec.height)
	rows = append(rows, topLine)
	for i := 0; i < innerH; i++ {
		var line string
		if i < len(content) {
			line = content[i]
		}
		if i == innerH-1 && len(content) > innerH {
			line = paint(styles.TitleInfo, fmt.Sprintf("… %d more", len(content)-innerH+1))
		}
		rows = append(rows, paint(border, vt)+fitWidth(line, innerW)+paint(border, vt))
	}
	rows = append(rows, bottomLine)
	return strings.Join(rows, "\n")
}

// fitWidth truncates or pads an ANSI-styled line to exactly width cells.
func fitWidth(line string, width int) string {
	if width <= 0 {
		return line
	}
	w := lipgloss.Width(line)
	if w > width {
		line = truncate.StringWithTail(line, uint(width-1), "…")
		w = lipgloss.Width(line)
	}
	if w < width {
		line += strings.Repeat(" ", width-w)
	}
	return line
}

func paint(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	if strings.HasSuffix(noun, "ch") {
		return fmt.Sprintf("%d %ses", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoDuration)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}
