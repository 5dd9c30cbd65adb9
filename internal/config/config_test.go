package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/regexplay/internal/app"
	"github.com/spf13/pflag"
)

// isolatedEnv points config discovery at an empty directory.
func isolatedEnv(t *testing.T, extra ...string) []string {
	t.Helper()
	dir := t.TempDir()
	return append([]string{"HOME=" + dir, "XDG_CONFIG_HOME=" + filepath.Join(dir, "xdg")}, extra...)
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, isolatedEnv(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App != Defaults().App {
		t.Fatalf("expected defaults, got %#v", cfg.App)
	}
	if cfg.File != "" {
		t.Fatalf("expected no config file, got %q", cfg.File)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadArgsFlags(t *testing.T) {
	args := []string{"-p", `\d+`, "--template", "<$0>", "--mode", "substitute", "--panel", "reference",
		"--footer=false", "--blink=false", "--width", "100", "--height", "30", "--log-file", "x.log", "--trace"}
	cfg, err := LoadArgs(args, isolatedEnv(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := app.Config{
		Pattern:      `\d+`,
		Template:     "<$0>",
		Mode:         app.ModeSubstitute,
		Substitution: true,
		Panel:        app.PanelReference,
		Width:        100,
		Height:       30,
	}
	if cfg.App != want {
		t.Fatalf("expected %#v, got %#v", want, cfg.App)
	}
	if cfg.Logging.FilePath != "x.log" || !cfg.Logging.Trace {
		t.Fatalf("unexpected logging %#v", cfg.Logging)
	}
	if cfg.Flags["pattern"] != `\d+` || cfg.Flags["width"] != "100" || cfg.Flags["footer"] != "false" {
		t.Fatalf("unexpected flags map %#v", cfg.Flags)
	}
	if len(cfg.Args) != len(args) {
		t.Fatalf("expected args preserved, got %v", cfg.Args)
	}
}

func TestLoadArgsEnvironment(t *testing.T) {
	env := isolatedEnv(t,
		"REGEXPLAY_PATTERN=a+",
		"REGEXPLAY_SUBSTITUTION=false",
		"REGEXPLAY_WIDTH=not-a-number",
		"REGEXPLAY_HEIGHT=20",
		"REGEXPLAY_TRACE=1",
	)
	cfg, err := LoadArgs(nil, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Pattern != "a+" || cfg.App.Substitution {
		t.Fatalf("expected env overrides, got %#v", cfg.App)
	}
	if cfg.App.Width != 0 || cfg.App.Height != 20 {
		t.Fatalf("expected invalid width ignored and height 20, got %dx%d", cfg.App.Width, cfg.App.Height)
	}
	if !cfg.Logging.Trace {
		t.Fatalf("expected trace from env")
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	cfg, err := LoadArgs([]string{"--pattern", "flag"}, isolatedEnv(t, "REGEXPLAY_PATTERN=env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Pattern != "flag" {
		t.Fatalf("expected flag to win, got %q", cfg.App.Pattern)
	}
}

func TestNoSubstitutionFlag(t *testing.T) {
	cfg, err := LoadArgs([]string{"--no-substitution"}, isolatedEnv(t, "REGEXPLAY_SUBSTITUTION=true"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Substitution {
		t.Fatalf("expected substitution disabled")
	}
}

func TestDiscoveredYAMLConfig(t *testing.T) {
	env := isolatedEnv(t)
	xdg := strings.TrimPrefix(env[1], "XDG_CONFIG_HOME=")
	path := writeConfig(t, filepath.Join(xdg, "regexplay"), "config.yaml",
		"pattern: '(\\w+)@(\\w+)'\nmode: substitute\ntemplate: $2\nfooter: false\nlog_file: /tmp/r.log\n")

	cfg, err := LoadArgs(nil, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.File != path {
		t.Fatalf("expected file %q, got %q", path, cfg.File)
	}
	if cfg.App.Pattern != `(\w+)@(\w+)` || cfg.App.Template != "$2" || cfg.App.Mode != app.ModeSubstitute {
		t.Fatalf("unexpected app config %#v", cfg.App)
	}
	if cfg.App.ShowFooter {
		t.Fatalf("expected footer disabled by file")
	}
	if !cfg.App.Blink || !cfg.App.Substitution {
		t.Fatalf("expected keys absent from the file to keep defaults, got %#v", cfg.App)
	}
	if cfg.Logging.FilePath != "/tmp/r.log" {
		t.Fatalf("unexpected log file %q", cfg.Logging.FilePath)
	}
}

func TestExplicitTOMLConfigBelowEnvironment(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "play.toml", "pattern = \"file\"\npanel = \"reference\"\nwidth = 90\n")
	cfg, err := LoadArgs([]string{"--config", path}, isolatedEnv(t, "REGEXPLAY_PATTERN=env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Pattern != "env" {
		t.Fatalf("expected env to override file, got %q", cfg.App.Pattern)
	}
	if cfg.App.Panel != app.PanelReference || cfg.App.Width != 90 {
		t.Fatalf("expected file values, got %#v", cfg.App)
	}
	if cfg.Flags["config"] != path {
		t.Fatalf("expected config path recorded, got %q", cfg.Flags["config"])
	}
}

func TestExplicitConfigMustExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := LoadArgs(nil, isolatedEnv(t, "REGEXPLAY_CONFIG="+missing)); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestConfigRejectsUnknownFormat(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.json", "{}")
	if _, err := LoadArgs([]string{"-c", path}, isolatedEnv(t)); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestConfigRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "width: [")
	if _, err := LoadArgs([]string{"--config", path}, isolatedEnv(t)); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadArgsHelpAndUnknownFlags(t *testing.T) {
	if _, err := LoadArgs([]string{"--help"}, isolatedEnv(t)); !errors.Is(err, pflag.ErrHelp) {
		t.Fatalf("expected ErrHelp, got %v", err)
	}
	if _, err := LoadArgs([]string{"--socket", "x"}, isolatedEnv(t)); err == nil {
		t.Fatalf("expected unknown flag error")
	}
	if usage := Usage(); !strings.Contains(usage, "--pattern") || !strings.Contains(usage, "--no-substitution") {
		t.Fatalf("usage missing flags:\n%s", usage)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		edit func(*Config)
		ok   bool
	}{
		{"defaults", func(*Config) {}, true},
		{"bad mode", func(c *Config) { c.App.Mode = "replace" }, false},
		{"bad panel", func(c *Config) { c.App.Panel = "help" }, false},
		{"negative width", func(c *Config) { c.App.Width = -1 }, false},
		{"negative height", func(c *Config) { c.App.Height = -5 }, false},
		{"substitute without substitution", func(c *Config) {
			c.App.Mode = app.ModeSubstitute
			c.App.Substitution = false
		}, false},
		{"match without substitution", func(c *Config) { c.App.Substitution = false }, true},
	}
	for _, tc := range cases {
		cfg := Defaults()
		tc.edit(&cfg)
		err := Validate(cfg)
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}
