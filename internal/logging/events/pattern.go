package events

import "github.com/atomicstack/regexplay/internal/logging"

type PatternTracer struct{}

var Pattern = PatternTracer{}

func (PatternTracer) Compiled(pattern string, groups int) {
	logging.Trace("pattern.compiled", map[string]interface{}{"pattern": pattern, "groups": groups})
}

func (PatternTracer) Rejected(pattern string, err error) {
	payload := map[string]interface{}{"pattern": pattern}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("pattern.rejected", payload)
}

func (PatternTracer) Cleared() {
	logging.Trace("pattern.cleared", nil)
}
