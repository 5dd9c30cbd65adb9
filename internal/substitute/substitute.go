// Package substitute renders a substitution template over every match in a
// body of text.
package substitute

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/regexplay/internal/regex"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Render replaces every match of matcher in body with template. A nil matcher
// returns body unchanged.
func Render(body string, matcher *regex.Matcher, template string) string {
	if matcher == nil {
		return body
	}
	return FromMatches(body, matcher, matcher.FindAll(body), template)
}

// FromMatches renders using an existing match set, which must come from
// matcher over body.
func FromMatches(body string, matcher *regex.Matcher, matches []regex.Match, template string) string {
	if matcher == nil || len(matches) == 0 {
		return body
	}
	out := make([]byte, 0, len(body)+len(template)*len(matches))
	pos := 0
	for _, m := range matches {
		span := m.Span()
		if !span.Valid() || span.Start < pos {
			continue
		}
		out = append(out, body[pos:span.Start]...)
		out = matcher.Expand(out, template, body, m)
		pos = span.End
	}
	out = append(out, body[pos:]...)
	return string(out)
}

// Reference is a $-reference found in a template.
type Reference struct {
	Token string
	Name  string
	Index int
}

// References lists the well-formed references in template, in order.
// Malformed tokens and escaped dollars are skipped.
func References(template string) []Reference {
	var refs []Reference
	for i := 0; i < len(template); i++ {
		if template[i] != '$' || i+1 >= len(template) {
			continue
		}
		next := template[i+1]
		if next == '$' {
			i++
			continue
		}
		var name, token string
		if next == '{' {
			end := strings.IndexByte(template[i+2:], '}')
			if end < 0 {
				continue
			}
			name = template[i+2 : i+2+end]
			token = template[i : i+3+end]
		} else {
			j := i + 1
			for j < len(template) && isNameByte(template[j]) {
				j++
			}
			name = template[i+1 : j]
			token = template[i:j]
		}
		if name == "" || !validName(name) {
			continue
		}
		ref := Reference{Token: token, Name: name, Index: -1}
		if n, err := strconv.Atoi(name); err == nil {
			ref.Index = n
			ref.Name = ""
		}
		refs = append(refs, ref)
		i += len(token) - 1
	}
	return refs
}

// Hint flags a reference that will always expand to nothing because the
// pattern has no such group.
type Hint struct {
	Reference  Reference
	Suggestion string
}

func (h Hint) String() string {
	if h.Suggestion != "" {
		return fmt.Sprintf("unknown group %s (did you mean $%s?)", h.Reference.Token, h.Suggestion)
	}
	return fmt.Sprintf("unknown group %s", h.Reference.Token)
}

// Check reports references in template that do not resolve against groups.
func Check(template string, groups []regex.Group) []Hint {
	if len(groups) == 0 {
		return nil
	}
	names := make([]string, 0, len(groups))
	known := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		if g.Name != "" {
			names = append(names, g.Name)
			known[g.Name] = struct{}{}
		}
	}
	var hints []Hint
	for _, ref := range References(template) {
		if ref.Index >= 0 {
			if ref.Index < len(groups) {
				continue
			}
			hints = append(hints, Hint{Reference: ref})
			continue
		}
		if _, ok := known[ref.Name]; ok {
			continue
		}
		hints = append(hints, Hint{Reference: ref, Suggestion: suggest(ref.Name, names)})
	}
	return hints
}

// suggest picks the closest known group name: a fuzzy subsequence hit first,
// otherwise the nearest name within two edits.
func suggest(name string, names []string) string {
	if len(names) == 0 {
		return ""
	}
	if ranks := fuzzy.RankFindNormalizedFold(name, names); len(ranks) > 0 {
		best := ranks[0]
		for _, rank := range ranks[1:] {
			if rank.Distance < best.Distance {
				best = rank
			}
		}
		return best.Target
	}
	best, bestDist := "", 3
	for _, candidate := range names {
		if d := fuzzy.LevenshteinDistance(strings.ToLower(name), strings.ToLower(candidate)); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

func isNameByte(c byte) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func validName(name string) bool {
	for i := 0; i < len(name); i++ {
		if !isNameByte(name[i]) {
			return false
		}
	}
	return true
}
