package table

import (
	"reflect"
	"testing"
)

func TestFormatPadsColumns(t *testing.T) {
	rows := [][]string{
		{"0", "word"},
		{"hi", "hi"},
		{"there", "there"},
	}
	got := Format(rows, nil)
	want := []string{
		"0      word",
		"hi     hi",
		"there  there",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatRightAlignment(t *testing.T) {
	rows := [][]string{{"#", "x"}, {"10", "y"}}
	got := Format(rows, []Alignment{AlignRight})
	want := []string{" #  x", "10  y"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatRaggedRowsAndWideRunes(t *testing.T) {
	rows := [][]string{{"日本", "a"}, {"x"}}
	got := Format(rows, nil)
	want := []string{"日本  a", "x     "}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}
