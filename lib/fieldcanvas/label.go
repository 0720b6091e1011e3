// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fieldcanvas

import "github.com/charmbracelet/x/ansi"

// fitLabel truncates name to at most width cells, marking the cut with
// an ellipsis. Returns "" when not even one character and the
// ellipsis fit.
func fitLabel(name string, width int) string {
	if width <= 1 {
		return ""
	}
	if ansi.StringWidth(name) <= width {
		return name
	}
	return ansi.Truncate(name, width, "…")
}

func labelWidth(label string) int {
	return ansi.StringWidth(label)
}
