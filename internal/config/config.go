// Package config loads and saves reader settings from a TOML file under
// the user config directory.
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const configFileName = "config.toml"

// Config holds reader settings persisted between sessions.
type Config struct {
	WPM                   int     `toml:"wpm"`
	ParagraphPauseSeconds float64 `toml:"paragraph_pause_seconds"`
	Theme                 string  `toml:"theme"`
	LogLevel              string  `toml:"log_level"`
}

// Default returns the out-of-the-box settings.
func Default() Config {
	return Config{
		WPM:                   300,
		ParagraphPauseSeconds: 1.0,
		Theme:                 "dark",
		LogLevel:              "info",
	}
}

// Normalize clamps values to the ranges the playback engine accepts.
func (c Config) Normalize() Config {
	if c.WPM < 100 {
		c.WPM = 100
	}
	if c.WPM > 1000 {
		c.WPM = 1000
	}
	if c.ParagraphPauseSeconds < 0 {
		c.ParagraphPauseSeconds = 0
	}
	if c.ParagraphPauseSeconds > 5 {
		c.ParagraphPauseSeconds = 5
	}
	if c.Theme != "light" && c.Theme != "dark" {
		c.Theme = "dark"
	}
	return c
}

// Dir returns the config directory: BLINK_CONFIG_DIR if set, otherwise
// the platform user config dir plus "blink".
func Dir() string {
	if dir := os.Getenv("BLINK_CONFIG_DIR"); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "blink")
}

// Load reads config.toml from dir (Dir() when empty). A missing file
// yields the defaults; a malformed one is an error so a typo is never
// silently discarded.
func Load(dir string) (Config, error) {
	if dir == "" {
		dir = Dir()
	}
	c := Default()

	data, err := os.ReadFile(filepath.Join(dir, configFileName))
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return c, err
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return Default(), err
	}
	return c.Normalize(), nil
}

// Save writes the settings to config.toml in dir (Dir() when empty),
// creating the directory as needed.
func Save(dir string, c Config) error {
	if dir == "" {
		dir = Dir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := toml.Marshal(c.Normalize())
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, configFileName), data, 0644)
}
