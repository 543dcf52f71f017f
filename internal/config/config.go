package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// Config holds all configurable studyhall settings.
type Config struct {
	DataDir          string `json:"data_dir"`           // override XDG data dir
	Backend          string `json:"backend"`            // "local" | "document"
	GeminiModel      string `json:"gemini_model"`       // model name for AI features
	DebounceMillis   int    `json:"debounce_millis"`    // persistence debounce window
	DefaultPlanned   int    `json:"default_planned"`    // default planned minutes
	DefaultTimerMode string `json:"default_timer_mode"` // "countdown" | "stopwatch"
}

// Defaults returns sensible default configuration values.
func Defaults() Config {
	return Config{
		Backend:          "local",
		GeminiModel:      "gemini-2.5-flash",
		DebounceMillis:   750,
		DefaultPlanned:   25,
		DefaultTimerMode: "stopwatch",
	}
}

// Debounce returns the persistence debounce window as a duration.
func (c Config) Debounce() time.Duration {
	if c.DebounceMillis <= 0 {
		return 750 * time.Millisecond
	}
	return time.Duration(c.DebounceMillis) * time.Millisecond
}

// LoadGlobal reads ~/.config/studyhall/config.json.
// Returns defaults if the file is absent.
func LoadGlobal() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(home, ".config", "studyhall", "config.json")
	return loadFile(path, true)
}

// LoadProject reads .studyhallconfig in the current working directory.
// Returns nil (no error) if the file is absent.
func LoadProject() (*Config, error) {
	return loadFile(".studyhallconfig", false)
}

// loadFile reads and parses a JSON config file at path.
// If returnDefaults is true, returns defaults when the file is absent.
// If returnDefaults is false, returns nil when the file is absent.
func loadFile(path string, returnDefaults bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if returnDefaults {
				d := Defaults()
				return &d, nil
			}
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Merge combines global and project configs, with project taking precedence.
// Missing keys fall back to global, then defaults.
func Merge(global, project *Config) Config {
	result := Defaults()

	apply := func(c *Config) {
		if c == nil {
			return
		}
		if c.DataDir != "" {
			result.DataDir = c.DataDir
		}
		if c.Backend != "" {
			result.Backend = c.Backend
		}
		if c.GeminiModel != "" {
			result.GeminiModel = c.GeminiModel
		}
		if c.DebounceMillis > 0 {
			result.DebounceMillis = c.DebounceMillis
		}
		if c.DefaultPlanned > 0 {
			result.DefaultPlanned = c.DefaultPlanned
		}
		if c.DefaultTimerMode != "" {
			result.DefaultTimerMode = c.DefaultTimerMode
		}
	}

	// Apply global values over defaults, then project values over global.
	apply(global)
	apply(project)

	return result
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
