package state

import (
	"github.com/atomicstack/regexplay/internal/captures"
	"github.com/atomicstack/regexplay/internal/highlight"
	"github.com/atomicstack/regexplay/internal/logging/events"
	"github.com/atomicstack/regexplay/internal/regex"
	"github.com/atomicstack/regexplay/internal/substitute"
)

// Session owns the three editable buffers and the matcher compiled from the
// pattern buffer.
//
// The matcher is nil whenever the pattern is empty or fails to compile, so
// derived views never show results from an older pattern.
type Session struct {
	pattern    string
	template   string
	body       string
	matcher    *regex.Matcher
	diagnostic *regex.Diagnostic
}

// NewSession returns a session with the given initial buffers. The pattern is
// compiled immediately.
func NewSession(pattern, template, body string) *Session {
	s := &Session{template: template, body: body}
	s.compile(pattern)
	return s
}

func (s *Session) Pattern() string {
	return s.pattern
}

func (s *Session) Template() string {
	return s.template
}

func (s *Session) Body() string {
	return s.body
}

// Matcher returns the current compiled pattern, or nil.
func (s *Session) Matcher() *regex.Matcher {
	return s.matcher
}

// Diagnostic returns the current compile error, or nil.
func (s *Session) Diagnostic() *regex.Diagnostic {
	return s.diagnostic
}

// SetPattern replaces the pattern text and recompiles when it changed.
// It reports whether a recompilation happened.
func (s *Session) SetPattern(text string) bool {
	if text == s.pattern {
		return false
	}
	s.compile(text)
	return true
}

func (s *Session) SetTemplate(text string) {
	s.template = text
}

func (s *Session) SetBody(text string) {
	s.body = text
}

func (s *Session) compile(text string) {
	s.pattern = text
	s.matcher = nil
	s.diagnostic = nil
	if text == "" {
		events.Pattern.Cleared()
		return
	}
	m, err := regex.Compile(text)
	if err != nil {
		if d, ok := err.(*regex.Diagnostic); ok {
			s.diagnostic = d
		} else {
			s.diagnostic = &regex.Diagnostic{Pattern: text, Message: err.Error(), Offset: -1}
		}
		events.Pattern.Rejected(text, err)
		return
	}
	s.matcher = m
	events.Pattern.Compiled(m.Source(), len(m.Groups()))
}

// Frame is everything the view needs for one redraw.
type Frame struct {
	Segments   []highlight.Segment
	Lines      [][]highlight.Segment
	Captures   captures.Table
	Output     string
	Hints      []substitute.Hint
	Matches    int
	Diagnostic *regex.Diagnostic
}

// Frame derives the presentation data from a single pass of the matcher over
// the body.
func (s *Session) Frame() Frame {
	matches := s.matcher.FindAll(s.body)
	groups := s.matcher.Groups()
	segments := highlight.Split(s.body, matches)
	return Frame{
		Segments:   segments,
		Lines:      highlight.Lines(segments),
		Captures:   captures.FromMatches(s.body, groups, matches),
		Output:     substitute.FromMatches(s.body, s.matcher, matches, s.template),
		Hints:      substitute.Check(s.template, groups),
		Matches:    highlight.MatchCount(segments),
		Diagnostic: s.diagnostic,
	}
}

// ExportPattern returns the pattern text as the program result.
func (s *Session) ExportPattern() string {
	return s.pattern
}

// ExportOutput returns the substitution output for the current template, or
// the body unchanged when there is no matcher.
func (s *Session) ExportOutput() string {
	return substitute.Render(s.body, s.matcher, s.template)
}
