// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fieldui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/fieldmap/lib/geometry"
	"github.com/bureau-foundation/fieldmap/lib/tui"
)

// View implements tea.Model: the canvas, the status bar, and any
// tooltip or context menu on top.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	output := model.canvas.Render()
	if output != "" {
		output += "\n"
	}
	output += model.renderStatusBar()

	switch {
	case model.menu != nil:
		output = model.overlay(output, model.menu.lines, model.menu.anchorX, model.menu.anchorY)
	case model.pointerValid && !model.scene.Gesturing():
		agentID, structureID := model.scene.Hovered()
		if lines := tooltipLines(model.store.State(), agentID, structureID); lines != nil {
			output = model.overlay(output, lines, model.pointerX, model.pointerY)
		}
	}
	return output
}

// overlay draws a popup anchored at a canvas cell, kept inside the
// canvas.
func (model Model) overlay(frame string, lines []string, anchorX, anchorY int) string {
	popup := tui.Popup(model.theme, lines, popupMaxWidth)
	if len(popup) == 0 {
		return frame
	}
	viewport := model.canvas.Viewport()
	x, y := tui.PlacePopup(anchorX, anchorY, ansi.StringWidth(popup[0]), len(popup),
		viewport.Width, viewport.Height)
	return tui.SpliceOverlay(frame, popup, x, y)
}

// toolLabel names the engine's mode for the status bar.
func toolLabel(tool geometry.Kind) string {
	switch tool {
	case geometry.KindRectangle:
		return "RECT"
	case geometry.KindCircle:
		return "CIRCLE"
	default:
		return "SELECT"
	}
}

// renderStatusBar renders the single line under the canvas: mode,
// selection, brightness, feed state and last event, then either the
// most recent log line or the key help.
func (model Model) renderStatusBar() string {
	engine := model.scene.Engine()
	state := model.store.State()

	parts := []string{"[" + toolLabel(engine.DrawingTool()) + "]"}
	if area, exists := state.Areas[engine.SelectedAreaID()]; exists {
		parts = append(parts, area.Name)
	}
	if structure, exists := state.Structures[state.SelectedStructureID]; exists {
		parts = append(parts, describeStructure(structure)[0])
	}
	if count := len(state.SelectedAgentIDs); count > 0 {
		parts = append(parts, fmt.Sprintf("%d agents", count))
	}
	parts = append(parts, fmt.Sprintf("☀ %.1f", engine.Brightness()))
	if model.source != nil {
		feedState := "open"
		if stater, ok := model.source.(stater); ok {
			feedState = stater.State()
		}
		if model.feedClosed {
			feedState = "closed"
		}
		parts = append(parts, "feed "+feedState)
	}
	if event, ok := model.scene.LastEvent(); ok {
		last := string(event.Kind)
		if event.TargetID != "" {
			last += " " + event.TargetID
		}
		parts = append(parts, last)
	}
	status := lipgloss.NewStyle().
		Foreground(model.theme.StatusBarForeground).
		Render(" " + strings.Join(parts, "  ") + "  ")

	var tail string
	if model.logRecord != nil {
		color := model.theme.StatusBarForeground
		switch {
		case model.logRecord.Level >= slog.LevelError:
			color = model.theme.LogError
		case model.logRecord.Level >= slog.LevelWarn:
			color = model.theme.LogWarn
		}
		tail = lipgloss.NewStyle().Foreground(color).Bold(true).Render(model.logRecord.Summary)
	} else {
		tail = lipgloss.NewStyle().Foreground(model.theme.HelpText).
			Render("r/c draw  x archive  u restore  del remove  f raise  [/] brightness  +/- zoom  q quit")
	}

	line := ansi.Truncate(status+tail, model.width, "…")
	return lipgloss.NewStyle().
		Background(model.theme.StatusBarBackground).
		Width(model.width).
		Render(line)
}
