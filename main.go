package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/regexplay/internal/app"
	"github.com/atomicstack/regexplay/internal/config"
	"github.com/atomicstack/regexplay/internal/logging"
	"github.com/atomicstack/regexplay/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	traceStartup(runtimeCfg)

	result, err := app.Run(runtimeCfg.App, os.Stdin, os.Stdout)
	events.App.Exit(result.Exported, err)
	if err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if result.Exported {
		fmt.Println(result.Text)
	}
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if cfg.File != "" {
		payload["configFile"] = cfg.File
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

// ttyDetails records how each standard stream is attached. A piped stdin
// prefills the body and a redirected stdout sends the view to stderr.
type ttyDetails struct {
	Size   *ttySize   `json:"size,omitempty"`
	Input  string     `json:"input"`
	View   string     `json:"view"`
	Probes []ttyProbe `json:"probes"`
}

type ttySize struct {
	From   string `json:"from"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbe struct {
	Name     string `json:"name"`
	Terminal bool   `json:"terminal"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Error    string `json:"error,omitempty"`
}

func probeStream(name string, f *os.File) ttyProbe {
	p := ttyProbe{Name: name}
	fd := int(f.Fd())
	if fd < 0 || !term.IsTerminal(fd) {
		return p
	}
	p.Terminal = true
	width, height, err := term.GetSize(fd)
	if err != nil {
		p.Error = err.Error()
		return p
	}
	p.Width, p.Height = width, height
	return p
}

func collectTTYDetails() ttyDetails {
	probes := []ttyProbe{
		probeStream("stdin", os.Stdin),
		probeStream("stdout", os.Stdout),
		probeStream("stderr", os.Stderr),
	}
	details := ttyDetails{Input: "stdin", View: "stdout", Probes: probes}
	if !probes[0].Terminal {
		details.Input = "tty"
	}
	if !probes[1].Terminal {
		details.View = "stderr"
	}
	for _, p := range probes {
		if p.Terminal && p.Error == "" {
			details.Size = &ttySize{From: p.Name, Width: p.Width, Height: p.Height}
			break
		}
	}
	return details
}
