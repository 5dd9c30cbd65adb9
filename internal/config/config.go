package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/atomicstack/regexplay/internal/app"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	// File is the configuration file that was read, if any.
	File  string
	Flags map[string]string
	Args  []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envPattern      = "REGEXPLAY_PATTERN"
	envTemplate     = "REGEXPLAY_TEMPLATE"
	envMode         = "REGEXPLAY_MODE"
	envSubstitution = "REGEXPLAY_SUBSTITUTION"
	envPanel        = "REGEXPLAY_PANEL"
	envFooter       = "REGEXPLAY_FOOTER"
	envBlink        = "REGEXPLAY_BLINK"
	envWidth        = "REGEXPLAY_WIDTH"
	envHeight       = "REGEXPLAY_HEIGHT"
	envConfig       = "REGEXPLAY_CONFIG"
	envLogFile      = "REGEXPLAY_LOG_FILE"
	envTrace        = "REGEXPLAY_TRACE"
)

const appName = "regexplay"

var configFileNames = []string{"config.yaml", "config.yml", "config.toml"}

// fileConfig is the on-disk shape shared by the YAML and TOML formats. Only
// keys present in the file override defaults.
type fileConfig struct {
	Pattern      *string `yaml:"pattern" toml:"pattern"`
	Template     *string `yaml:"template" toml:"template"`
	Mode         *string `yaml:"mode" toml:"mode"`
	Substitution *bool   `yaml:"substitution" toml:"substitution"`
	Panel        *string `yaml:"panel" toml:"panel"`
	Footer       *bool   `yaml:"footer" toml:"footer"`
	Blink        *bool   `yaml:"blink" toml:"blink"`
	Width        *int    `yaml:"width" toml:"width"`
	Height       *int    `yaml:"height" toml:"height"`
	LogFile      *string `yaml:"log_file" toml:"log_file"`
	Trace        *bool   `yaml:"trace" toml:"trace"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		App: app.Config{
			Mode:         app.ModeMatch,
			Substitution: true,
			Panel:        app.PanelCaptures,
			ShowFooter:   true,
			Blink:        true,
		},
	}
}

// Load parses configuration from the config file, environment variables and
// CLI arguments.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Later sources
// win: defaults, then the config file, then the environment, then flags.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Defaults()

	path, explicit := configPath(fs, env)
	if path != "" {
		fc, err := readFile(path)
		switch {
		case err == nil:
			fc.apply(&cfg)
			cfg.File = path
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg, env)
	applyFlags(&cfg, fs)

	cfg.Flags = map[string]string{
		"pattern":      cfg.App.Pattern,
		"template":     cfg.App.Template,
		"mode":         cfg.App.Mode,
		"substitution": strconv.FormatBool(cfg.App.Substitution),
		"panel":        cfg.App.Panel,
		"footer":       strconv.FormatBool(cfg.App.ShowFooter),
		"blink":        strconv.FormatBool(cfg.App.Blink),
		"width":        strconv.Itoa(cfg.App.Width),
		"height":       strconv.Itoa(cfg.App.Height),
		"config":       cfg.File,
		"trace":        strconv.FormatBool(cfg.Logging.Trace),
		"logFile":      cfg.Logging.FilePath,
	}
	cfg.Args = append([]string(nil), args...)
	return cfg, nil
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	d := Defaults()
	fs.StringP("pattern", "p", d.App.Pattern, "initial regular expression")
	fs.StringP("template", "t", d.App.Template, "initial substitution template")
	fs.String("mode", d.App.Mode, "initial mode: match or substitute")
	fs.Bool("no-substitution", false, "disable substitution mode")
	fs.String("panel", d.App.Panel, "initial info panel: captures or reference")
	fs.Bool("footer", d.App.ShowFooter, "show the key hint footer")
	fs.Bool("blink", d.App.Blink, "blink the text cursor")
	fs.Int("width", d.App.Width, "viewport width in cells (0 uses terminal width)")
	fs.Int("height", d.App.Height, "viewport height in rows (0 uses terminal height)")
	fs.StringP("config", "c", "", "path to a YAML or TOML config file")
	fs.String("log-file", d.Logging.FilePath, "path to the log file")
	fs.Bool("trace", d.Logging.Trace, "enable verbose JSON trace logging")
	return fs
}

// Usage describes the command line flags.
func Usage() string {
	return fmt.Sprintf("Usage: %s [flags] < sample.txt\n\n%s", appName, newFlagSet().FlagUsages())
}

// configPath picks the config file. explicit is true when the user named it,
// in which case a missing file is an error.
func configPath(fs *pflag.FlagSet, env map[string]string) (string, bool) {
	if fs.Changed("config") {
		path, _ := fs.GetString("config")
		return path, true
	}
	if path := strings.TrimSpace(env[envConfig]); path != "" {
		return path, true
	}
	dir := ""
	if xdg := strings.TrimSpace(env["XDG_CONFIG_HOME"]); xdg != "" {
		dir = filepath.Join(xdg, appName)
	} else if home := strings.TrimSpace(env["HOME"]); home != "" {
		dir = filepath.Join(home, ".config", appName)
	} else if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".config", appName)
	}
	if dir == "" {
		return "", false
	}
	for _, name := range configFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, false
		}
	}
	return "", false
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &fc); err != nil {
			return fileConfig{}, err
		}
		return fc, nil
	case ".yaml", ".yml", "":
		data, err := os.ReadFile(path)
		if err != nil {
			return fileConfig{}, err
		}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return fileConfig{}, err
		}
		return fc, nil
	default:
		return fileConfig{}, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

func (fc fileConfig) apply(cfg *Config) {
	if fc.Pattern != nil {
		cfg.App.Pattern = *fc.Pattern
	}
	if fc.Template != nil {
		cfg.App.Template = *fc.Template
	}
	if fc.Mode != nil {
		cfg.App.Mode = *fc.Mode
	}
	if fc.Substitution != nil {
		cfg.App.Substitution = *fc.Substitution
	}
	if fc.Panel != nil {
		cfg.App.Panel = *fc.Panel
	}
	if fc.Footer != nil {
		cfg.App.ShowFooter = *fc.Footer
	}
	if fc.Blink != nil {
		cfg.App.Blink = *fc.Blink
	}
	if fc.Width != nil {
		cfg.App.Width = *fc.Width
	}
	if fc.Height != nil {
		cfg.App.Height = *fc.Height
	}
	if fc.LogFile != nil {
		cfg.Logging.FilePath = *fc.LogFile
	}
	if fc.Trace != nil {
		cfg.Logging.Trace = *fc.Trace
	}
}

func applyEnv(cfg *Config, env map[string]string) {
	cfg.App.Pattern = envOrDefault(env, envPattern, cfg.App.Pattern)
	cfg.App.Template = envOrDefault(env, envTemplate, cfg.App.Template)
	cfg.App.Mode = envOrDefault(env, envMode, cfg.App.Mode)
	cfg.App.Substitution = envOrBool(env, envSubstitution, cfg.App.Substitution)
	cfg.App.Panel = envOrDefault(env, envPanel, cfg.App.Panel)
	cfg.App.ShowFooter = envOrBool(env, envFooter, cfg.App.ShowFooter)
	cfg.App.Blink = envOrBool(env, envBlink, cfg.App.Blink)
	cfg.App.Width = envOrInt(env, envWidth, cfg.App.Width)
	cfg.App.Height = envOrInt(env, envHeight, cfg.App.Height)
	cfg.Logging.FilePath = envOrDefault(env, envLogFile, cfg.Logging.FilePath)
	cfg.Logging.Trace = envOrBool(env, envTrace, cfg.Logging.Trace)
}

func applyFlags(cfg *Config, fs *pflag.FlagSet) {
	if fs.Changed("pattern") {
		cfg.App.Pattern, _ = fs.GetString("pattern")
	}
	if fs.Changed("template") {
		cfg.App.Template, _ = fs.GetString("template")
	}
	if fs.Changed("mode") {
		cfg.App.Mode, _ = fs.GetString("mode")
	}
	if fs.Changed("no-substitution") {
		off, _ := fs.GetBool("no-substitution")
		cfg.App.Substitution = !off
	}
	if fs.Changed("panel") {
		cfg.App.Panel, _ = fs.GetString("panel")
	}
	if fs.Changed("footer") {
		cfg.App.ShowFooter, _ = fs.GetBool("footer")
	}
	if fs.Changed("blink") {
		cfg.App.Blink, _ = fs.GetBool("blink")
	}
	if fs.Changed("width") {
		cfg.App.Width, _ = fs.GetInt("width")
	}
	if fs.Changed("height") {
		cfg.App.Height, _ = fs.GetInt("height")
	}
	if fs.Changed("log-file") {
		cfg.Logging.FilePath, _ = fs.GetString("log-file")
	}
	if fs.Changed("trace") {
		cfg.Logging.Trace, _ = fs.GetBool("trace")
	}
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits. --help prints usage and exits 0.
func MustLoad() Config {
	cfg, err := Load()
	if errors.Is(err, pflag.ErrHelp) {
		fmt.Fprint(os.Stderr, Usage())
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects settings the application cannot start with.
func Validate(cfg Config) error {
	switch cfg.App.Mode {
	case app.ModeMatch, app.ModeSubstitute:
	default:
		return fmt.Errorf("mode must be %q or %q (got %q)", app.ModeMatch, app.ModeSubstitute, cfg.App.Mode)
	}
	switch cfg.App.Panel {
	case app.PanelCaptures, app.PanelReference:
	default:
		return fmt.Errorf("panel must be %q or %q (got %q)", app.PanelCaptures, app.PanelReference, cfg.App.Panel)
	}
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if cfg.App.Mode == app.ModeSubstitute && !cfg.App.Substitution {
		return errors.New("substitute mode requires substitution to be enabled")
	}
	return nil
}
