package state

import (
	"errors"
	"reflect"
	"regexp/syntax"
	"testing"

	"github.com/atomicstack/regexplay/internal/highlight"
)

func TestNewSessionCompilesPattern(t *testing.T) {
	s := NewSession(`a+`, "", "baaab")
	if s.Matcher() == nil {
		t.Fatalf("expected compiled matcher")
	}
	f := s.Frame()
	if f.Matches != 1 {
		t.Fatalf("expected 1 match, got %d", f.Matches)
	}
	if !reflect.DeepEqual(f.Captures.Labels, []string{"0"}) {
		t.Fatalf("unexpected labels %v", f.Captures.Labels)
	}
	if got := f.Captures.Rows[0].Strings(); !reflect.DeepEqual(got, []string{"aaa"}) {
		t.Fatalf("unexpected row %v", got)
	}
	if highlight.Join(f.Segments) != "baaab" {
		t.Fatalf("segments do not tile body")
	}
}

func TestInvalidPatternClearsMatcher(t *testing.T) {
	s := NewSession(`a`, "", "aaa")
	if !s.SetPattern("(") {
		t.Fatalf("expected recompilation")
	}
	if s.Matcher() != nil {
		t.Fatalf("expected matcher cleared after invalid pattern")
	}
	d := s.Diagnostic()
	if d == nil || d.Error() == "" {
		t.Fatalf("expected diagnostic")
	}
	var syn *syntax.Error
	if !errors.As(d, &syn) || syn.Code != syntax.ErrMissingParen {
		t.Fatalf("expected missing paren error, got %v", d)
	}
	f := s.Frame()
	if len(f.Segments) != 1 || f.Segments[0].IsMatch() || f.Segments[0].Text != "aaa" {
		t.Fatalf("expected a single plain segment, got %#v", f.Segments)
	}
	if !f.Captures.Empty() || len(f.Captures.Rows) != 0 {
		t.Fatalf("expected empty capture table, got %#v", f.Captures)
	}
	if f.Diagnostic != d {
		t.Fatalf("expected frame to carry diagnostic")
	}
	if f.Output != "aaa" {
		t.Fatalf("expected body passthrough, got %q", f.Output)
	}
}

func TestEmptyPatternMeansNoPattern(t *testing.T) {
	s := NewSession("", "x", "abc")
	if s.Matcher() != nil || s.Diagnostic() != nil {
		t.Fatalf("expected neither matcher nor diagnostic for empty pattern")
	}
	f := s.Frame()
	if f.Matches != 0 || len(f.Segments) != 1 {
		t.Fatalf("expected no highlighting, got %#v", f)
	}
}

func TestSetPatternSkipsUnchangedText(t *testing.T) {
	s := NewSession(`\d`, "", "")
	before := s.Matcher()
	if s.SetPattern(`\d`) {
		t.Fatalf("expected no recompilation for identical text")
	}
	if s.Matcher() != before {
		t.Fatalf("expected matcher to be reused")
	}
	if !s.SetPattern(`\d+`) || s.Matcher() == before {
		t.Fatalf("expected a new matcher for changed text")
	}
}

func TestRecoveryAfterInvalidPattern(t *testing.T) {
	s := NewSession("(", "", "xy")
	s.SetPattern("(y)")
	if s.Diagnostic() != nil || s.Matcher() == nil {
		t.Fatalf("expected recovery after valid edit")
	}
	if got := s.Frame().Matches; got != 1 {
		t.Fatalf("expected 1 match, got %d", got)
	}
}

func TestBodyEditsReuseMatcher(t *testing.T) {
	s := NewSession(`o`, "0", "foo")
	s.SetBody("foo\nboo")
	if s.Body() != "foo\nboo" {
		t.Fatalf("unexpected body %q", s.Body())
	}
	f := s.Frame()
	if f.Matches != 4 {
		t.Fatalf("expected 4 matches, got %d", f.Matches)
	}
	if len(f.Lines) != 2 {
		t.Fatalf("expected 2 display lines, got %d", len(f.Lines))
	}
	if f.Output != "f00\nb00" {
		t.Fatalf("unexpected output %q", f.Output)
	}
}

func TestFrameHintsAndExports(t *testing.T) {
	s := NewSession(`(?<word>\w+)`, "<$wrd>", "hi there")
	f := s.Frame()
	if len(f.Hints) != 1 || f.Hints[0].Suggestion != "word" {
		t.Fatalf("expected a hint suggesting word, got %#v", f.Hints)
	}
	if f.Output != "<> <>" {
		t.Fatalf("unexpected output %q", f.Output)
	}
	if got := s.ExportPattern(); got != `(?<word>\w+)` {
		t.Fatalf("unexpected exported pattern %q", got)
	}
	s.SetTemplate("[$word]")
	if got := s.ExportOutput(); got != "[hi] [there]" {
		t.Fatalf("unexpected exported output %q", got)
	}
	s.SetPattern("")
	if got := s.ExportOutput(); got != "hi there" {
		t.Fatalf("expected body without a matcher, got %q", got)
	}
}
