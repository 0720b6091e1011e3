// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"regexp"
	"slices"
	"strings"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/fieldmap/lib/areaengine"
	"github.com/bureau-foundation/fieldmap/lib/tui"
)

// EnvironmentVariable names the config file when --config is absent.
const EnvironmentVariable = "FIELDMAP_CONFIG"

// Config is fieldmap's configuration.
type Config struct {
	View    ViewConfig    `yaml:"view"`
	Areas   AreasConfig   `yaml:"areas"`
	Feed    FeedConfig    `yaml:"feed"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ViewConfig configures the canvas.
type ViewConfig struct {
	// Scale is the number of terminal columns per world unit.
	// Default: 4
	Scale float64 `yaml:"scale"`

	// Brightness multiplies area opacity, in [0.2, 2].
	// Default: 1
	Brightness float64 `yaml:"brightness"`

	// Theme overrides individual colors of the built-in theme, keyed
	// by tui.ThemeKeys, with "#rrggbb" values.
	Theme map[string]string `yaml:"theme,omitempty"`
}

// AreasConfig configures area creation.
type AreasConfig struct {
	// Palette is cycled through for new areas' colors.
	Palette []string `yaml:"palette"`

	// NamePrefix names new areas "<prefix> <n>".
	// Default: Area
	NamePrefix string `yaml:"name_prefix"`

	// FlashDuration is how long a new area pulses.
	// Default: 1.5s
	FlashDuration string `yaml:"flash_duration"`
}

// FeedConfig selects where the field comes from. At most one of
// Socket, WebSocket, File and Replay may be set; none means an empty
// field to draw on.
type FeedConfig struct {
	Socket    string `yaml:"socket"`
	WebSocket string `yaml:"websocket"`
	File      string `yaml:"file"`
	Replay    string `yaml:"replay"`

	// ReplayInterval is the delay between replayed frames.
	// Default: 50ms
	ReplayInterval string `yaml:"replay_interval"`

	// Record writes every received frame to this file (.zst, .lz4 or
	// plain CBOR).
	Record string `yaml:"record"`

	// InitialBackoff and MaxBackoff bound reconnect delays.
	// Defaults: 1s, 30s
	InitialBackoff string `yaml:"initial_backoff"`
	MaxBackoff     string `yaml:"max_backoff"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is the minimum level shown: debug, info, warn or error.
	// Default: info
	Level string `yaml:"level"`

	// Output is a file that receives every record as JSON.
	Output string `yaml:"output"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Address is a host:port to serve /metrics on. Empty disables it.
	Address string `yaml:"address"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		View: ViewConfig{
			Scale:      4,
			Brightness: 1,
		},
		Areas: AreasConfig{
			Palette:       slices.Clone(areaengine.DefaultPalette),
			NamePrefix:    areaengine.DefaultNamePrefix,
			FlashDuration: "1.5s",
		},
		Feed: FeedConfig{
			ReplayInterval: "50ms",
			InitialBackoff: "1s",
			MaxBackoff:     "30s",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads the file named by FIELDMAP_CONFIG, or returns the
// defaults when the variable is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		config := Default()
		config.expandVariables()
		return config, nil
	}
	return LoadFile(path)
}

// LoadFile loads the config file at path over the defaults.
func LoadFile(path string) (*Config, error) {
	config := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	config.expandVariables()
	return config, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} in path values.
func (config *Config) expandVariables() {
	for _, value := range []*string{
		&config.Feed.Socket,
		&config.Feed.File,
		&config.Feed.Replay,
		&config.Feed.Record,
		&config.Log.Output,
	} {
		*value = expandVars(*value)
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// Validate checks the configuration and reports every problem.
func (config *Config) Validate() error {
	var errs []error

	if !(config.View.Scale > 0) || math.IsInf(config.View.Scale, 0) {
		errs = append(errs, fmt.Errorf("view.scale must be positive, got %v", config.View.Scale))
	}
	if !(config.View.Brightness >= areaengine.MinBrightness && config.View.Brightness <= areaengine.MaxBrightness) {
		errs = append(errs, fmt.Errorf("view.brightness must be in [%v, %v], got %v",
			areaengine.MinBrightness, areaengine.MaxBrightness, config.View.Brightness))
	}
	if _, err := tui.DefaultTheme.WithOverrides(config.View.Theme); err != nil {
		errs = append(errs, fmt.Errorf("view.theme: %w", err))
	}

	if len(config.Areas.Palette) == 0 {
		errs = append(errs, errors.New("areas.palette must list at least one color"))
	}
	for index, color := range config.Areas.Palette {
		if _, err := colorful.Hex(color); err != nil {
			errs = append(errs, fmt.Errorf("areas.palette[%d]: %q is not #rrggbb", index, color))
		}
	}
	if strings.TrimSpace(config.Areas.NamePrefix) == "" {
		errs = append(errs, errors.New("areas.name_prefix is required"))
	}

	for _, duration := range []struct{ key, value string }{
		{"areas.flash_duration", config.Areas.FlashDuration},
		{"feed.replay_interval", config.Feed.ReplayInterval},
		{"feed.initial_backoff", config.Feed.InitialBackoff},
		{"feed.max_backoff", config.Feed.MaxBackoff},
	} {
		if parsed, err := time.ParseDuration(duration.value); err != nil || parsed <= 0 {
			errs = append(errs, fmt.Errorf("%s must be a positive duration, got %q", duration.key, duration.value))
		}
	}

	var sources []string
	for _, source := range []struct{ key, value string }{
		{"feed.socket", config.Feed.Socket},
		{"feed.websocket", config.Feed.WebSocket},
		{"feed.file", config.Feed.File},
		{"feed.replay", config.Feed.Replay},
	} {
		if source.value != "" {
			sources = append(sources, source.key)
		}
	}
	if len(sources) > 1 {
		errs = append(errs, fmt.Errorf("only one feed source may be set, got %s", strings.Join(sources, ", ")))
	}
	if config.Feed.WebSocket != "" && !strings.HasPrefix(config.Feed.WebSocket, "ws://") && !strings.HasPrefix(config.Feed.WebSocket, "wss://") {
		errs = append(errs, fmt.Errorf("feed.websocket must be a ws:// or wss:// URL, got %q", config.Feed.WebSocket))
	}

	if _, err := ParseLevel(config.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}

// ParseLevel parses a log level name.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("%q is not one of debug, info, warn, error", name)
	}
	return level, nil
}

// mustDuration parses a duration Validate has already checked.
func mustDuration(value string, fallback time.Duration) time.Duration {
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

// FlashDuration returns areas.flash_duration.
func (config *Config) FlashDuration() time.Duration {
	return mustDuration(config.Areas.FlashDuration, 1500*time.Millisecond)
}

// ReplayInterval returns feed.replay_interval.
func (config *Config) ReplayInterval() time.Duration {
	return mustDuration(config.Feed.ReplayInterval, 50*time.Millisecond)
}

// Backoff returns feed.initial_backoff and feed.max_backoff.
func (config *Config) Backoff() (initial, maximum time.Duration) {
	return mustDuration(config.Feed.InitialBackoff, time.Second), mustDuration(config.Feed.MaxBackoff, 30*time.Second)
}

// Theme returns the built-in theme with view.theme applied. Invalid
// entries are skipped; Validate reports them.
func (config *Config) Theme() tui.Theme {
	theme, _ := tui.DefaultTheme.WithOverrides(config.View.Theme)
	return theme
}
