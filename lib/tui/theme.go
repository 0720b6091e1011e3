// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme is the palette for fieldmap's terminal views. Colors are
// "#rrggbb" so the canvas can blend area fills toward the background;
// lipgloss downsamples them to whatever the terminal supports.
type Theme struct {
	// Background is the empty ground.
	Background lipgloss.Color

	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Gesture chrome.
	Preview lipgloss.Color
	Handle  lipgloss.Color
	Pulse   lipgloss.Color

	// Agent glyph colors by status.
	AgentIdle    lipgloss.Color
	AgentWorking lipgloss.Color
	AgentWaiting lipgloss.Color
	AgentError   lipgloss.Color
	AgentOffline lipgloss.Color

	// SelectedBackground sits behind selected agents and structures.
	SelectedBackground lipgloss.Color

	// Structure is the fill for structures without their own color.
	Structure lipgloss.Color

	// Status bar.
	StatusBarForeground lipgloss.Color
	StatusBarBackground lipgloss.Color
	HelpText            lipgloss.Color

	// Log lines shown in the status bar, by level.
	LogWarn  lipgloss.Color
	LogError lipgloss.Color

	// Tooltips and context menus.
	TooltipForeground lipgloss.Color
	TooltipBackground lipgloss.Color
}

// AgentStatusColor returns the glyph color for an agent status.
// Unknown statuses are drawn as idle.
func (theme Theme) AgentStatusColor(status string) lipgloss.Color {
	switch status {
	case "working":
		return theme.AgentWorking
	case "waiting":
		return theme.AgentWaiting
	case "error":
		return theme.AgentError
	case "offline":
		return theme.AgentOffline
	default:
		return theme.AgentIdle
	}
}

// DefaultTheme is the built-in dark-terminal scheme.
var DefaultTheme = Theme{
	Background: lipgloss.Color("#1c1c1c"),

	NormalText: lipgloss.Color("#d0d0d0"),
	FaintText:  lipgloss.Color("#8a8a8a"),

	Preview: lipgloss.Color("#eeeeee"),
	Handle:  lipgloss.Color("#ffd75f"),
	Pulse:   lipgloss.Color("#ffaf00"),

	AgentIdle:    lipgloss.Color("#8a8a8a"),
	AgentWorking: lipgloss.Color("#87d787"), // green
	AgentWaiting: lipgloss.Color("#ffd75f"), // amber
	AgentError:   lipgloss.Color("#ff5f5f"), // red
	AgentOffline: lipgloss.Color("#585858"), // dim gray

	SelectedBackground: lipgloss.Color("#444444"),

	Structure: lipgloss.Color("#5f87af"),

	StatusBarForeground: lipgloss.Color("#eeeeee"),
	StatusBarBackground: lipgloss.Color("#303030"),
	HelpText:            lipgloss.Color("#767676"),

	LogWarn:  lipgloss.Color("#ffd75f"),
	LogError: lipgloss.Color("#ff5f5f"),

	TooltipForeground: lipgloss.Color("#d0d0d0"),
	TooltipBackground: lipgloss.Color("#3a3a3a"),
}

// slots maps the configuration key of each theme color to its field.
func (theme *Theme) slots() map[string]*lipgloss.Color {
	return map[string]*lipgloss.Color{
		"background":            &theme.Background,
		"normal_text":           &theme.NormalText,
		"faint_text":            &theme.FaintText,
		"preview":               &theme.Preview,
		"handle":                &theme.Handle,
		"pulse":                 &theme.Pulse,
		"agent_idle":            &theme.AgentIdle,
		"agent_working":         &theme.AgentWorking,
		"agent_waiting":         &theme.AgentWaiting,
		"agent_error":           &theme.AgentError,
		"agent_offline":         &theme.AgentOffline,
		"selected_background":   &theme.SelectedBackground,
		"structure":             &theme.Structure,
		"status_bar_foreground": &theme.StatusBarForeground,
		"status_bar_background": &theme.StatusBarBackground,
		"help_text":             &theme.HelpText,
		"log_warn":              &theme.LogWarn,
		"log_error":             &theme.LogError,
		"tooltip_foreground":    &theme.TooltipForeground,
		"tooltip_background":    &theme.TooltipBackground,
	}
}

// ThemeKeys lists the keys WithOverrides accepts, sorted.
func ThemeKeys() []string {
	var theme Theme
	return slices.Sorted(maps.Keys(theme.slots()))
}

// WithOverrides returns a copy of theme with the colors named in
// overrides replaced. Keys are the snake_case field names listed by
// [ThemeKeys]; values must be "#rrggbb". Every bad entry is reported.
func (theme Theme) WithOverrides(overrides map[string]string) (Theme, error) {
	slots := theme.slots()
	var errs []error
	for _, key := range slices.Sorted(maps.Keys(overrides)) {
		value := overrides[key]
		slot, known := slots[key]
		if !known {
			errs = append(errs, fmt.Errorf("unknown theme color %q", key))
			continue
		}
		if _, err := colorful.Hex(value); err != nil {
			errs = append(errs, fmt.Errorf("theme color %s: %q is not #rrggbb", key, value))
			continue
		}
		*slot = lipgloss.Color(value)
	}
	return theme, errors.Join(errs...)
}
