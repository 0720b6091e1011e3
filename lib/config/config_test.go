// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fieldmap.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	config := Default()
	if err := config.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if config.FlashDuration() != 1500*time.Millisecond {
		t.Errorf("FlashDuration = %v, want 1.5s", config.FlashDuration())
	}
	initial, maximum := config.Backoff()
	if initial != time.Second || maximum != 30*time.Second {
		t.Errorf("Backoff = %v, %v", initial, maximum)
	}
}

func TestLoadWithoutEnvironmentUsesDefaults(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")
	config, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if config.View.Scale != Default().View.Scale {
		t.Errorf("Scale = %v, want default", config.View.Scale)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	path := writeConfig(t, `
view:
  scale: 8
  theme:
    background: "#000000"
areas:
  name_prefix: Zone
  flash_duration: 2s
feed:
  socket: ${FIELDMAP_TEST_RUN:-/run/fieldmap}/feed.sock
log:
  level: debug
`)
	t.Setenv(EnvironmentVariable, path)
	t.Setenv("FIELDMAP_TEST_RUN", "")

	config, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := config.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if config.View.Scale != 8 || config.Areas.NamePrefix != "Zone" {
		t.Errorf("file values not applied: %+v", config)
	}
	if config.View.Brightness != 1 {
		t.Errorf("Brightness = %v, want the default kept", config.View.Brightness)
	}
	if len(config.Areas.Palette) == 0 {
		t.Error("palette default lost")
	}
	if config.Feed.Socket != "/run/fieldmap/feed.sock" {
		t.Errorf("Socket = %q, want the ${VAR:-default} fallback", config.Feed.Socket)
	}
	if config.FlashDuration() != 2*time.Second {
		t.Errorf("FlashDuration = %v", config.FlashDuration())
	}
	if config.Theme().Background != "#000000" {
		t.Errorf("Theme().Background = %s", config.Theme().Background)
	}
	level, _ := ParseLevel(config.Log.Level)
	if level != slog.LevelDebug {
		t.Errorf("level = %v", level)
	}
}

func TestExpandVariablesFromEnvironment(t *testing.T) {
	t.Setenv("FIELDMAP_TEST_HOME", "/home/field")
	path := writeConfig(t, "log:\n  output: ${FIELDMAP_TEST_HOME}/fieldmap.log\n")
	config, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if config.Log.Output != "/home/field/fieldmap.log" {
		t.Errorf("Output = %q", config.Log.Output)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFile of a missing file succeeded")
	}
	if _, err := LoadFile(writeConfig(t, "view: [unclosed\n")); err == nil {
		t.Error("LoadFile of malformed YAML succeeded")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"zero scale", func(c *Config) { c.View.Scale = 0 }, "view.scale"},
		{"brightness too high", func(c *Config) { c.View.Brightness = 3 }, "view.brightness"},
		{"unknown theme key", func(c *Config) { c.View.Theme = map[string]string{"sky": "#000000"} }, "view.theme"},
		{"empty palette", func(c *Config) { c.Areas.Palette = nil }, "areas.palette"},
		{"bad palette color", func(c *Config) { c.Areas.Palette = []string{"green"} }, "areas.palette[0]"},
		{"blank prefix", func(c *Config) { c.Areas.NamePrefix = " " }, "areas.name_prefix"},
		{"bad duration", func(c *Config) { c.Areas.FlashDuration = "soon" }, "areas.flash_duration"},
		{"negative backoff", func(c *Config) { c.Feed.MaxBackoff = "-1s" }, "feed.max_backoff"},
		{"two sources", func(c *Config) { c.Feed.Socket = "/s"; c.Feed.File = "/f" }, "only one feed source"},
		{"http websocket", func(c *Config) { c.Feed.WebSocket = "http://host/feed" }, "feed.websocket"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := Default()
			test.modify(config)
			err := config.Validate()
			if err == nil {
				t.Fatal("Validate accepted the config")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("Validate() = %v, want mention of %q", err, test.want)
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	config := Default()
	config.View.Scale = -1
	config.Log.Level = "loud"
	err := config.Validate()
	if err == nil || !strings.Contains(err.Error(), "view.scale") || !strings.Contains(err.Error(), "log.level") {
		t.Errorf("Validate() = %v, want both problems", err)
	}
}
