package regex

import (
	"errors"
	"reflect"
	"regexp/syntax"
	"strings"
	"testing"
)

func TestCompileReportsGroups(t *testing.T) {
	m, err := Compile(`(?<year>\d{4})-(\d{2})`)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	want := []Group{{Index: 0}, {Index: 1, Name: "year"}, {Index: 2}}
	if got := m.Groups(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected groups %#v, got %#v", want, got)
	}
	labels := make([]string, 0, len(want))
	for _, g := range m.Groups() {
		labels = append(labels, g.Label())
	}
	if strings.Join(labels, ",") != "0,year,2" {
		t.Fatalf("unexpected labels %v", labels)
	}
	if got := m.Source(); got != `(?<year>\d{4})-(\d{2})` {
		t.Fatalf("expected source to be kept, got %q", got)
	}
}

func TestCompileInvalidPatternReturnsDiagnostic(t *testing.T) {
	m, err := Compile("(")
	if m != nil {
		t.Fatalf("expected nil matcher for invalid pattern")
	}
	var diag *Diagnostic
	if !errors.As(err, &diag) {
		t.Fatalf("expected *Diagnostic, got %T", err)
	}
	if diag.Error() == "" {
		t.Fatalf("expected non-empty diagnostic")
	}
	if diag.Offset != 0 {
		t.Fatalf("expected offset 0, got %d", diag.Offset)
	}
	var syn *syntax.Error
	if !errors.As(err, &syn) {
		t.Fatalf("expected diagnostic to unwrap to *syntax.Error")
	}
	if syn.Code != syntax.ErrMissingParen {
		t.Fatalf("expected missing paren code, got %q", syn.Code)
	}
}

func TestDiagnosticPositionPointsAtFragment(t *testing.T) {
	_, err := Compile(`ab[c`)
	var diag *Diagnostic
	if !errors.As(err, &diag) {
		t.Fatalf("expected diagnostic, got %v", err)
	}
	if diag.Fragment != "[c" {
		t.Fatalf("expected fragment [c, got %q", diag.Fragment)
	}
	if diag.Offset != 2 {
		t.Fatalf("expected offset 2, got %d", diag.Offset)
	}
	if !strings.Contains(diag.Error(), "at position 2") {
		t.Fatalf("expected position in message, got %q", diag.Error())
	}
}

func TestDiagnosticPositionWithRepeatedFragment(t *testing.T) {
	cases := []struct {
		pattern  string
		fragment string
		offset   int
	}{
		{`a** b**`, "**", 1},
		{`[z-a] [z-a]`, "z-a", 1},
		{`x z-a [z-a]`, "z-a", 7},
	}
	for _, tc := range cases {
		_, err := Compile(tc.pattern)
		var diag *Diagnostic
		if !errors.As(err, &diag) {
			t.Fatalf("%q: expected diagnostic, got %v", tc.pattern, err)
		}
		if diag.Fragment != tc.fragment || diag.Offset != tc.offset {
			t.Fatalf("%q: expected %q at %d, got %q at %d", tc.pattern, tc.fragment, tc.offset, diag.Fragment, diag.Offset)
		}
	}
}

func TestFindAllOrdersNonOverlappingMatches(t *testing.T) {
	m, err := Compile(`a+`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	matches := m.FindAll("baaab aa")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	first, second := matches[0].Span(), matches[1].Span()
	if first != (Span{Start: 1, End: 4}) || second != (Span{Start: 6, End: 8}) {
		t.Fatalf("unexpected spans %#v %#v", first, second)
	}
}

func TestFindAllZeroWidth(t *testing.T) {
	m, err := Compile(`x*`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	matches := m.FindAll("ab")
	if len(matches) != 3 {
		t.Fatalf("expected 3 empty matches, got %d", len(matches))
	}
	for i, match := range matches {
		span := match.Span()
		if !span.Empty() || span.Start != i {
			t.Fatalf("match %d: expected empty span at %d, got %#v", i, i, span)
		}
	}
}

func TestUnmatchedGroupIsInvalid(t *testing.T) {
	m, err := Compile(`(a)|(b)`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	matches := m.FindAll("b")
	if len(matches) != 1 {
		t.Fatalf("expected one match, got %d", len(matches))
	}
	if matches[0].Group(1).Valid() {
		t.Fatalf("expected group 1 not to participate")
	}
	if got := matches[0].Group(2).Text("b"); got != "b" {
		t.Fatalf("expected group 2 to be b, got %q", got)
	}
	if matches[0].Group(9).Valid() {
		t.Fatalf("expected out of range group to be invalid")
	}
}

func TestExpandResolvesReferences(t *testing.T) {
	m, err := Compile(`(?<key>\w+)=(\w+)`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	body := "a=1"
	match := m.FindAll(body)[0]
	got := string(m.Expand(nil, "$2:${key}:$0:$9:$nope:$$:$!", body, match))
	if got != "1:a:a=1:::$:$!" {
		t.Fatalf("unexpected expansion %q", got)
	}
}

func TestNilMatcherIsInert(t *testing.T) {
	var m *Matcher
	if m.FindAll("abc") != nil {
		t.Fatalf("expected no matches from nil matcher")
	}
	if m.Groups() != nil {
		t.Fatalf("expected no groups from nil matcher")
	}
	if m.Source() != "" {
		t.Fatalf("expected empty source from nil matcher")
	}
}
