// Package captures turns regex matches into a grid of capture group values.
package captures

import (
	"github.com/atomicstack/regexplay/internal/format/table"
	"github.com/atomicstack/regexplay/internal/regex"
)

// Cell holds one group's value for one match. Valid is false when the group
// did not participate in the match.
type Cell struct {
	Text  string
	Valid bool
}

// Row is the per-match tuple of group values, aligned with Table.Labels.
type Row []Cell

// Strings returns the cell texts, using the empty string for missing groups.
func (r Row) Strings() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.Text
	}
	return out
}

// Table is the capture grid for one (body, matcher) pair.
type Table struct {
	Labels []string
	Rows   []Row
}

// Empty reports whether the table has no columns.
func (t Table) Empty() bool {
	return len(t.Labels) == 0
}

// Tabulate runs matcher over body. A nil matcher yields an empty table.
func Tabulate(body string, matcher *regex.Matcher) Table {
	if matcher == nil {
		return Table{}
	}
	return FromMatches(body, matcher.Groups(), matcher.FindAll(body))
}

// FromMatches builds the table from an existing match set.
func FromMatches(body string, groups []regex.Group, matches []regex.Match) Table {
	if len(groups) == 0 {
		return Table{}
	}
	labels := make([]string, len(groups))
	for i, g := range groups {
		labels[i] = g.Label()
	}
	rows := make([]Row, 0, len(matches))
	for _, m := range matches {
		row := make(Row, len(groups))
		for i := range groups {
			span := m.Group(i)
			if !span.Valid() {
				continue
			}
			row[i] = Cell{Text: span.Text(body), Valid: true}
		}
		rows = append(rows, row)
	}
	return Table{Labels: labels, Rows: rows}
}

// Format renders the header and rows as aligned text lines, header first.
// Missing groups are shown as missing; empty matches as empty.
func (t Table) Format(missing string) []string {
	if t.Empty() {
		return nil
	}
	grid := make([][]string, 0, len(t.Rows)+1)
	grid = append(grid, t.Labels)
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			if !c.Valid {
				cells[i] = missing
				continue
			}
			cells[i] = printable(c.Text)
		}
		grid = append(grid, cells)
	}
	return table.Format(grid, nil)
}

// printable escapes control characters so a multi-line capture stays on one
// table row.
func printable(text string) string {
	out := make([]rune, 0, len(text))
	for _, r := range text {
		switch r {
		case '\n':
			out = append(out, '\\', 'n')
		case '\t':
			out = append(out, '\\', 't')
		case '\r':
			out = append(out, '\\', 'r')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
