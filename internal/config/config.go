// Package config loads the contactpicker configuration: the embedded
// defaults overlaid with an optional user YAML file.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/contactpicker/pkg/settings"
)

//go:embed default_config.yaml
var defaultConfigYAML []byte

// Config is the merged application configuration.
type Config struct {
	App       App          `yaml:"app" json:"app" toml:"app"`
	Directory Directory    `yaml:"directory" json:"directory" toml:"directory"`
	Picker    Picker       `yaml:"picker" json:"picker" toml:"picker"`
	Case      CaseDefaults `yaml:"case" json:"case" toml:"case"`
	UI        UI           `yaml:"ui" json:"ui" toml:"ui"`
}

type App struct {
	Name    string `yaml:"name" json:"name" toml:"name"`
	Debug   bool   `yaml:"debug" json:"debug" toml:"debug"`
	LogFile string `yaml:"log_file" json:"log_file" toml:"log_file"`
}

type Directory struct {
	Path      string `yaml:"path" json:"path" toml:"path"`
	LatencyMS int    `yaml:"latency_ms" json:"latency_ms" toml:"latency_ms"`
}

// Picker holds the timing and paging parameters of the contact picker.
type Picker struct {
	PageSize        int `yaml:"page_size" json:"page_size" toml:"page_size"`
	DebounceMS      int `yaml:"debounce_ms" json:"debounce_ms" toml:"debounce_ms"`
	CloseDelayMS    int `yaml:"close_delay_ms" json:"close_delay_ms" toml:"close_delay_ms"`
	ReloadDelayMS   int `yaml:"reload_delay_ms" json:"reload_delay_ms" toml:"reload_delay_ms"`
	ToastDurationMS int `yaml:"toast_duration_ms" json:"toast_duration_ms" toml:"toast_duration_ms"`
	CompactWidth    int `yaml:"compact_width" json:"compact_width" toml:"compact_width"`
}

type CaseDefaults struct {
	DefaultID string `yaml:"default_id" json:"default_id" toml:"default_id"`
}

type UI struct {
	Theme   string                 `yaml:"theme" json:"theme" toml:"theme"`
	NoColor bool                   `yaml:"no_color" json:"no_color" toml:"no_color"`
	Themes  map[string]ThemeColors `yaml:"themes" json:"themes" toml:"themes"`
}

// ThemeColors are lipgloss color strings (ANSI numbers or hex).
type ThemeColors struct {
	Accent     string `yaml:"accent" json:"accent" toml:"accent"`
	Text       string `yaml:"text" json:"text" toml:"text"`
	Muted      string `yaml:"muted" json:"muted" toml:"muted"`
	Border     string `yaml:"border" json:"border" toml:"border"`
	HeaderBG   string `yaml:"header_bg" json:"header_bg" toml:"header_bg"`
	SelectedFG string `yaml:"selected_fg" json:"selected_fg" toml:"selected_fg"`
	SelectedBG string `yaml:"selected_bg" json:"selected_bg" toml:"selected_bg"`
	Error      string `yaml:"error" json:"error" toml:"error"`
	Warning    string `yaml:"warning" json:"warning" toml:"warning"`
	Success    string `yaml:"success" json:"success" toml:"success"`
	Info       string `yaml:"info" json:"info" toml:"info"`
}

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }

func (p Picker) Debounce() time.Duration      { return ms(p.DebounceMS) }
func (p Picker) CloseDelay() time.Duration    { return ms(p.CloseDelayMS) }
func (p Picker) ReloadDelay() time.Duration   { return ms(p.ReloadDelayMS) }
func (p Picker) ToastDuration() time.Duration { return ms(p.ToastDurationMS) }
func (d Directory) Latency() time.Duration    { return ms(d.LatencyMS) }

// DefaultYAML returns a copy of the embedded default configuration.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultConfigYAML...)
}

// Default returns the embedded default configuration.
func Default() (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		return cfg, fmt.Errorf("decode default config: %w", err)
	}
	return cfg, nil
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path loads the defaults only. Keys missing from the file keep their
// default values; theme maps are merged by name.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the picker cannot run with.
func (c Config) Validate() error {
	if c.Picker.PageSize < 1 {
		return fmt.Errorf("picker.page_size must be at least 1, got %d", c.Picker.PageSize)
	}
	for name, v := range map[string]int{
		"picker.debounce_ms":       c.Picker.DebounceMS,
		"picker.close_delay_ms":    c.Picker.CloseDelayMS,
		"picker.reload_delay_ms":   c.Picker.ReloadDelayMS,
		"picker.toast_duration_ms": c.Picker.ToastDurationMS,
		"directory.latency_ms":     c.Directory.LatencyMS,
	} {
		if v < 0 {
			return fmt.Errorf("%s must be non-negative, got %d", name, v)
		}
	}
	if _, ok := c.UI.Themes[c.UI.Theme]; !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", c.UI.Theme, strings.Join(c.ThemeNames(), ", "))
	}
	return nil
}

// ThemeNames lists the configured theme names, sorted.
func (c Config) ThemeNames() []string {
	names := make([]string, 0, len(c.UI.Themes))
	for name := range c.UI.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ActiveTheme returns the colors of the selected theme.
func (c Config) ActiveTheme() ThemeColors {
	return c.UI.Themes[c.UI.Theme]
}

// ResolvePath returns explicit when set, otherwise the user config file in
// the XDG config directory if it exists, otherwise "".
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidate := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

// DatabasePath returns the configured directory database, defaulting to
// the XDG data directory.
func (c Config) DatabasePath() string {
	if c.Directory.Path != "" {
		return expandHome(c.Directory.Path)
	}
	return filepath.Join(xdgDir("XDG_DATA_HOME", ".local", "share"), settings.CliBinaryName, "directory.db")
}

// LogFilePath returns the configured log file, defaulting to the XDG state
// directory.
func (c Config) LogFilePath() string {
	if c.App.LogFile != "" {
		return expandHome(c.App.LogFile)
	}
	return filepath.Join(xdgDir("XDG_STATE_HOME", ".local", "state"), settings.CliBinaryName, settings.CliBinaryName+".log")
}

func xdgDir(env string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
