// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay draws popup lines over a rendered frame with the
// popup's top-left cell at (column, row). Escape sequences on either
// side of the popup survive. Popup lines that fall outside the frame
// are dropped.
func SpliceOverlay(frame string, popup []string, column, row int) string {
	if len(popup) == 0 {
		return frame
	}
	lines := strings.Split(frame, "\n")
	for index, popupLine := range popup {
		target := row + index
		if target < 0 || target >= len(lines) {
			continue
		}
		line := lines[target]
		var spliced strings.Builder
		if column > 0 {
			spliced.WriteString(ansi.Truncate(line, column, ""))
		}
		spliced.WriteString("\x1b[0m")
		spliced.WriteString(popupLine)
		spliced.WriteString("\x1b[0m")
		if after := column + ansi.StringWidth(popupLine); after < ansi.StringWidth(line) {
			spliced.WriteString(ansi.TruncateLeft(line, after, ""))
		}
		lines[target] = spliced.String()
	}
	return strings.Join(lines, "\n")
}

// Popup renders lines as a padded box in the tooltip colors. Lines
// wider than maxWidth are truncated with an ellipsis. Every returned
// line has the same display width.
func Popup(theme Theme, lines []string, maxWidth int) []string {
	if len(lines) == 0 {
		return nil
	}
	lines = slices.Clone(lines)
	width := 0
	for index, line := range lines {
		if ansi.StringWidth(line) > maxWidth {
			line = ansi.Truncate(line, maxWidth, "…")
			lines[index] = line
		}
		width = max(width, ansi.StringWidth(line))
	}
	style := lipgloss.NewStyle().
		Foreground(theme.TooltipForeground).
		Background(theme.TooltipBackground)

	rendered := make([]string, len(lines))
	for index, line := range lines {
		padding := strings.Repeat(" ", width-ansi.StringWidth(line))
		rendered[index] = style.Render(" " + line + padding + " ")
	}
	return rendered
}

// PlacePopup returns the top-left cell for a popup of the given size
// anchored just below and right of (column, row), shifted so it stays
// inside a width x height frame.
func PlacePopup(column, row, popupWidth, popupHeight, width, height int) (int, int) {
	x, y := column+1, row+1
	if x+popupWidth > width {
		x = max(0, width-popupWidth)
	}
	if y+popupHeight > height {
		y = max(0, row-popupHeight)
	}
	return x, y
}
