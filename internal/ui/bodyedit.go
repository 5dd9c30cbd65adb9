package ui

import (
	"unicode"
	"unicode/utf8"
)

// tabExpansion is what the body editor stores in place of a tab.
const tabExpansion = "    "

// bodyUnit ties one rune of the raw body to the editor runes showing it.
// Runes the editor drops have an empty editor range.
type bodyUnit struct {
	rawStart, rawEnd int
	edStart, edEnd   int
}

// alignBody maps raw onto editor, the editor's sanitized copy of it. mapped
// is the raw byte offset where the editor's copy ends; text after it (lines
// beyond the editor limit) has no editor counterpart. ok is false when editor
// is not a copy of raw.
func alignBody(raw string, editor []rune) (units []bodyUnit, mapped int, ok bool) {
	pos := 0
	for i := 0; i < len(raw); {
		if pos == len(editor) {
			return units, i, true
		}
		r, size := utf8.DecodeRuneInString(raw[i:])
		u := bodyUnit{rawStart: i, rawEnd: i + size, edStart: pos, edEnd: pos}
		switch {
		case r == utf8.RuneError:
		case r == '\t':
			if !hasRunes(editor[pos:], tabExpansion) {
				return nil, 0, false
			}
			u.edEnd = pos + len(tabExpansion)
		case r == '\r' || r == '\n':
			if editor[pos] != '\n' {
				return nil, 0, false
			}
			u.edEnd = pos + 1
		case unicode.IsControl(r):
		default:
			if editor[pos] != r {
				return nil, 0, false
			}
			u.edEnd = pos + 1
		}
		units = append(units, u)
		pos = u.edEnd
		i += size
	}
	if pos != len(editor) {
		return nil, 0, false
	}
	return units, len(raw), true
}

func hasRunes(rs []rune, s string) bool {
	if len(rs) < len(s) {
		return false
	}
	for i, r := range s {
		if rs[i] != r {
			return false
		}
	}
	return true
}

// applyBodyEdit carries the change from before to after (successive editor
// values) over to raw, leaving untouched raw text as it was. An edit that
// cuts into a tab's expansion replaces the whole tab with what the editor
// now shows there. When raw and before disagree the editor value wins.
func applyBodyEdit(raw, before, after string) string {
	old, cur := []rune(before), []rune(after)
	units, mapped, ok := alignBody(raw, old)
	if !ok {
		return after
	}

	prefix := 0
	for prefix < len(old) && prefix < len(cur) && old[prefix] == cur[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(old)-prefix && suffix < len(cur)-prefix &&
		old[len(old)-1-suffix] == cur[len(cur)-1-suffix] {
		suffix++
	}
	start, end := prefix, len(old)-suffix

	rawStart, rawEnd := mapped, -1
	for _, u := range units {
		if u.edEnd > u.edStart && u.edEnd > start {
			rawStart = u.rawStart
			if u.edStart < start {
				start = u.edStart
			}
			break
		}
	}
	for i := len(units) - 1; i >= 0; i-- {
		u := units[i]
		if u.edEnd > u.edStart && u.edStart < end {
			rawEnd = u.rawEnd
			if u.edEnd > end {
				end = u.edEnd
			}
			break
		}
	}
	if rawEnd < rawStart {
		rawEnd = rawStart
	}
	inserted := string(cur[start : len(cur)-(len(old)-end)])
	return raw[:rawStart] + inserted + raw[rawEnd:]
}
