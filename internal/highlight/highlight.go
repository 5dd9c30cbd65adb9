// Package highlight partitions a body of text into plain and matched runs.
//
// The segments produced here always tile the body exactly: joining every
// segment's Text in order reproduces the input byte for byte, including
// newlines. Zero-width matches appear as their own empty segments so they can
// still be drawn.
package highlight

import (
	"strings"

	"github.com/atomicstack/regexplay/internal/regex"
)

// Plain is the Match value for text outside any match.
const Plain = -1

// Segment is a contiguous run of the body with a display style.
type Segment struct {
	Text string
	// Match is the 0-based ordinal of the match this run belongs to, or Plain.
	Match int
	// Newline is set by Lines when a trailing newline was cut from Text.
	Newline bool
}

// IsMatch reports whether the segment belongs to a match.
func (s Segment) IsMatch() bool {
	return s.Match != Plain
}

// Segments runs matcher over body and splits the result. A nil matcher yields
// a single plain segment covering the whole body.
func Segments(body string, matcher *regex.Matcher) []Segment {
	if matcher == nil {
		return splitNewlines(nil, Segment{Text: body, Match: Plain})
	}
	return Split(body, matcher.FindAll(body))
}

// Split partitions body around already computed matches. Matches must be
// ordered and non-overlapping, as returned by Matcher.FindAll.
func Split(body string, matches []regex.Match) []Segment {
	if len(matches) == 0 {
		return splitNewlines(nil, Segment{Text: body, Match: Plain})
	}
	out := make([]Segment, 0, 2*len(matches)+1)
	pos := 0
	for i, m := range matches {
		span := m.Span()
		if !span.Valid() || span.Start < pos || span.End > len(body) {
			continue
		}
		if span.Start > pos {
			out = splitNewlines(out, Segment{Text: body[pos:span.Start], Match: Plain})
		}
		out = splitNewlines(out, Segment{Text: body[span.Start:span.End], Match: i})
		pos = span.End
	}
	if pos < len(body) {
		out = splitNewlines(out, Segment{Text: body[pos:], Match: Plain})
	}
	return out
}

// splitNewlines appends seg to dst, cut after every newline. The newline stays
// with the piece it terminates.
func splitNewlines(dst []Segment, seg Segment) []Segment {
	text := seg.Text
	for {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 || idx == len(text)-1 {
			return append(dst, Segment{Text: text, Match: seg.Match})
		}
		dst = append(dst, Segment{Text: text[:idx+1], Match: seg.Match})
		text = text[idx+1:]
	}
}

// Lines groups segments into display lines. Trailing newlines are dropped
// from the segment text and recorded in Newline; a body ending in a newline
// yields a final empty line.
func Lines(segments []Segment) [][]Segment {
	lines := [][]Segment{{}}
	for _, seg := range segments {
		cur := len(lines) - 1
		if strings.HasSuffix(seg.Text, "\n") {
			lines[cur] = append(lines[cur], Segment{Text: strings.TrimSuffix(seg.Text, "\n"), Match: seg.Match, Newline: true})
			lines = append(lines, []Segment{})
			continue
		}
		lines[cur] = append(lines[cur], seg)
	}
	return lines
}

// Join concatenates the segment texts.
func Join(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// MatchCount returns the number of distinct matches represented in segments.
// A match split across lines is counted once.
func MatchCount(segments []Segment) int {
	count := 0
	last := Plain
	for _, seg := range segments {
		if seg.IsMatch() && seg.Match != last {
			count++
			last = seg.Match
		}
	}
	return count
}
