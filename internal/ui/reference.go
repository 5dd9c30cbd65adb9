package ui

import (
	"sync"

	"github.com/atomicstack/regexplay/internal/format/table"
)

var referenceEntries = [][]string{
	{".", "any character except newline"},
	{`\d \w \s`, "digit, word character, whitespace"},
	{`\D \W \S`, "not digit, word character, whitespace"},
	{"[abc]", "any of a, b or c"},
	{"[^abc]", "not a, b or c"},
	{"[a-z]", "character range"},
	{"[[:alpha:]]", "ASCII class"},
	{`\pL \p{Greek}`, "Unicode class"},
	{"^ $", "start/end of text, of line with (?m)"},
	{`\A \z`, "start/end of text"},
	{`\b \B`, "word boundary, not a boundary"},
	{"x* x+ x?", "zero or more, one or more, optional"},
	{"x{n} x{n,m}", "exactly n, between n and m"},
	{"x*? x+?", "non-greedy"},
	{"(re)", "numbered group"},
	{"(?<name>re)", "named group, also (?P<name>re)"},
	{"(?:re)", "non-capturing group"},
	{"a|b", "a or b"},
	{"(?i) (?m) (?s)", "ignore case, multi-line, . matches \\n"},
	{`\Q...\E`, "literal text"},
	{"", ""},
	{"$0 ${0}", "whole match"},
	{"$1 ${1}", "numbered group"},
	{"$name ${name}", "named group"},
	{"$$", "literal $"},
}

var (
	referenceOnce  sync.Once
	referenceCache []string
)

// referenceLines returns the aligned quick-reference text for Go regular
// expressions and substitution templates.
func referenceLines() []string {
	referenceOnce.Do(func() {
		referenceCache = table.Format(referenceEntries, nil)
	})
	return referenceCache
}
