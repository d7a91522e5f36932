// Package config loads and live-reloads the movie player's configuration:
// default palette, audio sample rate, display scale, and debug-log
// component toggles. Grounded on the teacher's cmd/emulator/main.go flag
// wiring (-scale, -log, -unlimited), promoted from flags-only to
// TOML-file-plus-flag-override, using github.com/BurntSushi/toml (already
// present in the teacher's indirect require graph) and
// github.com/fsnotify/fsnotify for the live-reload watch loop.
package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/BurntSushi/toml"

	"directorcore/internal/debug"
)

// Config is the movie player's tunable configuration, loaded from a
// director.toml file and overridable by CLI flags in cmd/director-player.
type Config struct {
	Palette     string            `toml:"palette"`
	SampleRate  uint32            `toml:"sample_rate"`
	Scale       int               `toml:"scale"`
	NumChannels int               `toml:"num_channels"`
	LogLevel    string            `toml:"log_level"`
	LogComponents map[string]bool `toml:"log_components"`
}

// Default returns the built-in fallback configuration, used when no
// director.toml is present.
func Default() Config {
	return Config{
		Palette:     "System-Win",
		SampleRate:  22050,
		Scale:       2,
		NumChannels: 8,
		LogLevel:    "Info",
		LogComponents: map[string]bool{
			"Score": false, "Compositor": false, "Audio": false,
			"Lingo": false, "Builtin": false, "Host": false, "System": false,
		},
	}
}

// Load reads path as TOML into a Config, starting from Default() so
// unset fields keep their defaults (toml.Decode only overwrites fields
// present in the file, mirroring the teacher's flag-default pattern).
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyLogging wires a Config's log level and component toggles onto a
// debug.Logger, matching cmd/emulator/main.go's -log-driven
// SetComponentEnabled calls.
func (c Config) ApplyLogging(logger *debug.Logger) {
	if level, ok := parseLogLevel(c.LogLevel); ok {
		logger.SetMinLevel(level)
	}
	for name, enabled := range c.LogComponents {
		logger.SetComponentEnabled(debug.Component(name), enabled)
	}
}

func parseLogLevel(s string) (debug.LogLevel, bool) {
	switch s {
	case "None":
		return debug.LogLevelNone, true
	case "Error":
		return debug.LogLevelError, true
	case "Warning":
		return debug.LogLevelWarning, true
	case "Info":
		return debug.LogLevelInfo, true
	case "Debug":
		return debug.LogLevelDebug, true
	case "Trace":
		return debug.LogLevelTrace, true
	default:
		return debug.LogLevelNone, false
	}
}

// Store holds the live Config; Watch replaces it when the backing file
// changes, and readers pick up the new value on their next Get.
type Store struct {
	mu  sync.RWMutex
	cfg Config
}

// NewStore wraps an initial Config for concurrent access from the watch
// goroutine and the player's main tick.
func NewStore(cfg Config) *Store {
	return &Store{cfg: cfg}
}

// Get returns the current Config.
func (s *Store) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *Store) set(cfg Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}
