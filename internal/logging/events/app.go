package events

import "github.com/atomicstack/regexplay/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Prefill(lines int) {
	logging.Trace("app.prefill", map[string]interface{}{"lines": lines})
}

func (AppTracer) Exit(exported bool, err error) {
	payload := map[string]interface{}{"exported": exported}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.exit", payload)
}
