package ui

import (
	"strings"
	"testing"
)

func TestApplyBodyEdit(t *testing.T) {
	cases := []struct {
		name   string
		raw    string
		before string
		after  string
		want   string
	}{
		{"append after tab", "a\tb", "a    b", "a    bc", "a\tbc"},
		{"insert at start", "a\tb", "a    b", "xa    b", "xa\tb"},
		{"insert before tab", "a\tb", "a    b", "ax    b", "ax\tb"},
		{"insert after tab", "a\tb", "a    b", "a     b", "a\t b"},
		{"delete inside tab", "a\tb", "a    b", "a   b", "a   b"},
		{"delete last rune", "a\tb", "a    b", "a    ", "a\t"},
		{"newline", "x\ty", "x    y", "x    \ny", "x\t\ny"},
		{"control runes kept", "a\x01b", "ab", "axb", "a\x01xb"},
		{"plain text", "hello", "hello", "help", "help"},
		{"out of sync", "abc", "xyz", "xyzw", "xyzw"},
	}
	for _, tc := range cases {
		if got := applyBodyEdit(tc.raw, tc.before, tc.after); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestApplyBodyEditKeepsTextBeyondEditor(t *testing.T) {
	raw := "a\nb\nc"
	if got := applyBodyEdit(raw, "a\nb", "a\nbx"); got != "a\nbx\nc" {
		t.Fatalf("expected hidden tail preserved, got %q", got)
	}
}

func TestAlignBodyRejectsForeignText(t *testing.T) {
	if _, _, ok := alignBody("a\tb", []rune("a b")); ok {
		t.Fatalf("expected tab with single space to be rejected")
	}
	units, mapped, ok := alignBody("a\tb", []rune("a    b"))
	if !ok || mapped != 3 || len(units) != 3 {
		t.Fatalf("unexpected alignment %v %d %v", units, mapped, ok)
	}
	if tab := units[1]; tab.edStart != 1 || tab.edEnd != 1+len(tabExpansion) {
		t.Fatalf("unexpected tab unit %#v", tab)
	}
}

func TestDisplayTextMatchesEditor(t *testing.T) {
	if got := displayText("a\tb\x01c\n"); got != "a"+strings.Repeat(" ", 4)+"bc\n" {
		t.Fatalf("unexpected display text %q", got)
	}
}
