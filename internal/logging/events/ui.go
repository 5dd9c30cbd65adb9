package events

import "github.com/atomicstack/regexplay/internal/logging"

type UITracer struct{}

type EditTracer struct{}

type ExportTracer struct{}

type CommandTracer struct{}

type ClipboardTracer struct{}

var (
	UI        = UITracer{}
	Edit      = EditTracer{}
	Export    = ExportTracer{}
	Command   = CommandTracer{}
	Clipboard = ClipboardTracer{}
)

func (UITracer) Focus(target string) {
	logging.Trace("ui.focus", map[string]interface{}{"target": target})
}

func (UITracer) Panel(panel string) {
	logging.Trace("ui.panel", map[string]interface{}{"panel": panel})
}

func (UITracer) Mode(mode, focus string) {
	logging.Trace("ui.mode", map[string]interface{}{"mode": mode, "focus": focus})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (EditTracer) Applied(target string, length int) {
	logging.Trace("edit.applied", map[string]interface{}{"target": target, "length": length})
}

func (ExportTracer) Pattern(pattern string) {
	logging.Trace("export.pattern", map[string]interface{}{"pattern": pattern})
}

func (ExportTracer) Output(length int) {
	logging.Trace("export.output", map[string]interface{}{"length": length})
}

func (ExportTracer) Quit() {
	logging.Trace("export.quit", nil)
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}

func (ClipboardTracer) Copy(what string, length int, err error) {
	payload := map[string]interface{}{"what": what, "length": length}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("clipboard.copy", payload)
}
