// Package regex wraps Go's regexp package behind the narrow surface the
// playground needs: compile a pattern, iterate its matches, and describe its
// capture groups.
package regex

import (
	"errors"
	"fmt"
	"regexp"
	"regexp/syntax"
	"strconv"
	"strings"
)

// Span is a half-open byte range into the haystack. Start and End are -1 for
// a group that did not participate in a match.
type Span struct {
	Start int
	End   int
}

// Valid reports whether the span refers to matched text.
func (s Span) Valid() bool {
	return s.Start >= 0 && s.End >= s.Start
}

// Empty reports whether the span is a zero-width match.
func (s Span) Empty() bool {
	return s.Start == s.End
}

// Text returns the slice of haystack covered by the span.
func (s Span) Text(haystack string) string {
	if !s.Valid() || s.End > len(haystack) {
		return ""
	}
	return haystack[s.Start:s.End]
}

// Match is one leftmost-first match. Groups[0] is the whole match.
type Match struct {
	Groups []Span
}

// Span returns the whole-match span.
func (m Match) Span() Span {
	if len(m.Groups) == 0 {
		return Span{Start: -1, End: -1}
	}
	return m.Groups[0]
}

// Group returns the span for group i, or an invalid span when i is out of range.
func (m Match) Group(i int) Span {
	if i < 0 || i >= len(m.Groups) {
		return Span{Start: -1, End: -1}
	}
	return m.Groups[i]
}

// indexes rebuilds the flat index slice regexp.Expand expects.
func (m Match) indexes() []int {
	out := make([]int, 0, len(m.Groups)*2)
	for _, g := range m.Groups {
		out = append(out, g.Start, g.End)
	}
	return out
}

// Group identifies a capture group by position and optional name.
type Group struct {
	Index int
	Name  string
}

// Label is the column heading for the group: its name when named, otherwise
// its index.
func (g Group) Label() string {
	if g.Name != "" {
		return g.Name
	}
	return strconv.Itoa(g.Index)
}

// Matcher is an immutable compiled pattern.
type Matcher struct {
	source string
	re     *regexp.Regexp
	groups []Group
}

// Compile parses pattern. Failures are reported as *Diagnostic.
func Compile(pattern string) (*Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, newDiagnostic(pattern, err)
	}
	names := re.SubexpNames()
	groups := make([]Group, len(names))
	for i, name := range names {
		groups[i] = Group{Index: i, Name: name}
	}
	return &Matcher{source: pattern, re: re, groups: groups}, nil
}

// Source returns the pattern text the matcher was compiled from.
func (m *Matcher) Source() string {
	if m == nil {
		return ""
	}
	return m.source
}

// Groups returns the ordered group identifiers, group 0 first.
func (m *Matcher) Groups() []Group {
	if m == nil {
		return nil
	}
	out := make([]Group, len(m.groups))
	copy(out, m.groups)
	return out
}

// FindAll returns every non-overlapping match in body, left to right.
func (m *Matcher) FindAll(body string) []Match {
	if m == nil {
		return nil
	}
	raw := m.re.FindAllStringSubmatchIndex(body, -1)
	if len(raw) == 0 {
		return nil
	}
	matches := make([]Match, len(raw))
	for i, idx := range raw {
		groups := make([]Span, len(idx)/2)
		for g := range groups {
			groups[g] = Span{Start: idx[2*g], End: idx[2*g+1]}
		}
		matches[i] = Match{Groups: groups}
	}
	return matches
}

// Expand appends template to dst with $-references resolved against match.
// Unknown names and out-of-range indexes expand to nothing, and a '$' that
// does not start a valid reference is copied literally.
func (m *Matcher) Expand(dst []byte, template, body string, match Match) []byte {
	if m == nil {
		return append(dst, template...)
	}
	return m.re.ExpandString(dst, template, body, match.indexes())
}

// Diagnostic describes why a pattern failed to compile.
type Diagnostic struct {
	Pattern  string
	Message  string
	Fragment string
	Offset   int
	err      error
}

func newDiagnostic(pattern string, err error) *Diagnostic {
	d := &Diagnostic{Pattern: pattern, Offset: -1, err: err}
	var syn *syntax.Error
	if errors.As(err, &syn) {
		d.Message = string(syn.Code)
		d.Fragment = syn.Expr
		if syn.Expr != "" {
			d.Offset = locate(pattern, syn)
		}
		return d
	}
	d.Message = strings.TrimPrefix(err.Error(), "error parsing regexp: ")
	return d
}

// locate finds where syn.Expr sits in pattern. The parser stops at the first
// error, so the right occurrence is the earliest one whose prefix already
// fails with the same error.
func locate(pattern string, syn *syntax.Error) int {
	first := strings.Index(pattern, syn.Expr)
	for at := first; at >= 0; {
		_, err := syntax.Parse(pattern[:at+len(syn.Expr)], syntax.Perl)
		var got *syntax.Error
		if errors.As(err, &got) && got.Code == syn.Code && got.Expr == syn.Expr {
			return at
		}
		next := strings.Index(pattern[at+1:], syn.Expr)
		if next < 0 {
			break
		}
		at += 1 + next
	}
	return first
}

func (d *Diagnostic) Error() string {
	if d == nil {
		return ""
	}
	switch {
	case d.Fragment != "" && d.Offset >= 0:
		return fmt.Sprintf("%s: `%s` at position %d", d.Message, d.Fragment, d.Offset)
	case d.Fragment != "":
		return fmt.Sprintf("%s: `%s`", d.Message, d.Fragment)
	default:
		return d.Message
	}
}

func (d *Diagnostic) Unwrap() error {
	if d == nil {
		return nil
	}
	return d.err
}
