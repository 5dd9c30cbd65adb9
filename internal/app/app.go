package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atomicstack/regexplay/internal/logging/events"
	"github.com/atomicstack/regexplay/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

const (
	ModeMatch      = "match"
	ModeSubstitute = "substitute"

	PanelCaptures  = "captures"
	PanelReference = "reference"
)

// maxPrefillLine bounds a single line read from piped stdin.
const maxPrefillLine = 16 * 1024 * 1024

// Config describes user-provided application options.
type Config struct {
	Pattern      string
	Template     string
	Mode         string
	Substitution bool
	Panel        string
	Width        int
	Height       int
	ShowFooter   bool
	Blink        bool
}

// Options maps the configuration onto the UI model options.
func (c Config) Options(body string) ui.Options {
	return ui.Options{
		Pattern:         c.Pattern,
		Template:        c.Template,
		Body:            body,
		Width:           c.Width,
		Height:          c.Height,
		Substitution:    c.Substitution,
		StartSubstitute: c.Mode == ModeSubstitute,
		StartReference:  c.Panel == PanelReference,
		ShowFooter:      c.ShowFooter,
		Blink:           c.Blink,
	}
}

// Result is what the interactive session handed back on exit.
type Result struct {
	Text     string
	Exported bool
}

var isTerminal = func(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Run bootstraps and executes the Bubble Tea program. Piped stdin prefills
// the body; keyboard input then comes from the controlling terminal.
func Run(cfg Config, stdin, stdout *os.File) (Result, error) {
	body := ""
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if !isTerminal(stdin) {
		lines, err := ReadPrefill(stdin)
		if err != nil {
			return Result{}, fmt.Errorf("read stdin: %w", err)
		}
		events.App.Prefill(len(lines))
		body = strings.Join(lines, "\n")
		opts = append(opts, tea.WithInputTTY())
	}
	if !isTerminal(stdout) {
		opts = append(opts, tea.WithOutput(os.Stderr))
	}
	model := ui.NewModel(cfg.Options(body))
	program := tea.NewProgram(model, opts...)
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return Result{}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("run program: %w", err)
	}
	text, ok := model.Result()
	return Result{Text: text, Exported: ok}, nil
}

// ReadPrefill reads r line by line. Line terminators, including a trailing
// carriage return, are dropped.
func ReadPrefill(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxPrefillLine)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
