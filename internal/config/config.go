// Package config loads editor settings from a TOML file with
// environment overrides. The resulting Config is fixed for the life of
// the process; changing a setting means restarting the editor.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// REDITOR_TAB_WIDTH=8.
const EnvPrefix = "REDITOR_"

// Config holds all editor settings. Values are resolved once at
// startup from defaults, then the config file, then the environment.
type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	UI      UIConfig      `toml:"ui"`
	Logging LoggingConfig `toml:"logging"`
}

// EditorConfig controls buffer and input behavior.
type EditorConfig struct {
	TabWidth   int    `toml:"tab_width"`
	KeymapFile string `toml:"keymap_file"`
}

// UIConfig controls the rendered chrome.
type UIConfig struct {
	Theme        string `toml:"theme"`
	ThemeFile    string `toml:"theme_file"`
	SidebarWidth int    `toml:"sidebar_width"`
	ShowSidebar  bool   `toml:"show_sidebar"`
}

// LoggingConfig controls the debug log.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			TabWidth: 4,
		},
		UI: UIConfig{
			Theme:        "one-dark",
			SidebarWidth: 30,
			ShowSidebar:  true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the conventional config file location,
// ~/.config/reditor/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "reditor", "config.toml")
}

// Load resolves the configuration: defaults, then the TOML file at
// path if it exists, then REDITOR_* environment variables. A missing
// file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Fall through to env overrides.
		case err != nil:
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(os.Environ()); err != nil {
		return cfg, err
	}
	return cfg, cfg.validate()
}

// applyEnv overlays REDITOR_* variables onto the config.
func (c *Config) applyEnv(environ []string) error {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, EnvPrefix) {
			continue
		}
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if err := c.setFromEnv(strings.TrimPrefix(name, EnvPrefix), value); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) setFromEnv(name, value string) error {
	switch name {
	case "TAB_WIDTH":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err)
		}
		c.Editor.TabWidth = n
	case "KEYMAP_FILE":
		c.Editor.KeymapFile = value
	case "THEME":
		c.UI.Theme = value
	case "THEME_FILE":
		c.UI.ThemeFile = value
	case "SIDEBAR_WIDTH":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err)
		}
		c.UI.SidebarWidth = n
	case "SHOW_SIDEBAR":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err)
		}
		c.UI.ShowSidebar = b
	case "LOG_LEVEL":
		c.Logging.Level = value
	case "LOG_FILE":
		c.Logging.File = value
	}
	return nil
}

func (c *Config) validate() error {
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		return fmt.Errorf("config: tab_width %d out of range [1,16]", c.Editor.TabWidth)
	}
	if c.UI.SidebarWidth < 10 || c.UI.SidebarWidth > 80 {
		return fmt.Errorf("config: sidebar_width %d out of range [10,80]", c.UI.SidebarWidth)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error", "off":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Logging.Level)
	}
	return nil
}
