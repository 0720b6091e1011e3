// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fieldui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the field view.
type KeyMap struct {
	// Drawing tools.
	Rectangle key.Binding
	Circle    key.Binding
	Cancel    key.Binding // Cancel the gesture, close a popup, or drop the tool.

	// Area opacity.
	Dimmer   key.Binding
	Brighter key.Binding

	// Selected area.
	Archive key.Binding
	Restore key.Binding // Restores the most recently archived area.
	Remove  key.Binding
	Raise   key.Binding

	// Viewport.
	PanUp    key.Binding
	PanDown  key.Binding
	PanLeft  key.Binding
	PanRight key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding

	Save key.Binding
	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Rectangle: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rectangle"),
	),
	Circle: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "circle"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Dimmer: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "dimmer"),
	),
	Brighter: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "brighter"),
	),
	Archive: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "archive"),
	),
	Restore: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "restore"),
	),
	Remove: key.NewBinding(
		key.WithKeys("delete"),
		key.WithHelp("del", "remove"),
	),
	Raise: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "raise"),
	),
	PanUp: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "pan"),
	),
	PanDown: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "pan"),
	),
	PanLeft: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "pan"),
	),
	PanRight: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "pan"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "zoom out"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "save"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
