package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Header         *lipgloss.Style
	HeaderAccent   *lipgloss.Style
	Footer         *lipgloss.Style
	Border         *lipgloss.Style
	FocusedBorder  *lipgloss.Style
	Title          *lipgloss.Style
	TitleInfo      *lipgloss.Style
	PatternValid   *lipgloss.Style
	PatternInvalid *lipgloss.Style
	Field          *lipgloss.Style
	Placeholder    *lipgloss.Style
	Body           *lipgloss.Style
	ZeroWidth      *lipgloss.Style
	TableHeader    *lipgloss.Style
	TableCell      *lipgloss.Style
	Missing        *lipgloss.Style
	Reference      *lipgloss.Style
	Hint           *lipgloss.Style
	Error          *lipgloss.Style
	Info           *lipgloss.Style
	Cursor         *lipgloss.Style
}

// MatchPalette cycles through background colors so adjacent matches stay
// distinguishable.
var MatchPalette = []lipgloss.Color{"25", "28", "130", "91", "30", "94"}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	HeaderAccent: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Border: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	FocusedBorder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	TitleInfo: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	PatternValid: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("120")),
	),
	PatternInvalid: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("210")).Bold(true),
	),
	Field: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	),
	Placeholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Body: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	ZeroWidth: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	),
	TableHeader: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	TableCell: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Missing: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	Reference: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Hint: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Match returns the style for the match with the given ordinal.
func Match(ordinal int) lipgloss.Style {
	if ordinal < 0 {
		ordinal = -ordinal
	}
	bg := MatchPalette[ordinal%len(MatchPalette)]
	return lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(bg)
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
