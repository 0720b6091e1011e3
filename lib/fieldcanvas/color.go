// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fieldcanvas

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// fallbackColor is used when a color string does not parse.
var fallbackColor = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// parseColor parses a "#rrggbb" color, falling back to gray.
func parseColor(value string) colorful.Color {
	parsed, err := colorful.Hex(value)
	if err != nil {
		return fallbackColor
	}
	return parsed
}

func themeColor(color lipgloss.Color) colorful.Color {
	return parseColor(string(color))
}

// blend mixes fill over background at the given opacity in [0, 1].
func blend(background, fill colorful.Color, opacity float64) colorful.Color {
	opacity = min(max(opacity, 0), 1)
	return background.BlendRgb(fill, opacity).Clamped()
}

// brighten moves color toward white by amount in [0, 1].
func brighten(color colorful.Color, amount float64) colorful.Color {
	return color.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, amount).Clamped()
}
