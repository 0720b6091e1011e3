// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package field

import "github.com/bureau-foundation/fieldmap/lib/geometry"

// Agent is an externally owned worker shown on the field. Only the
// fields that affect how the agent is drawn are modeled.
type Agent struct {
	ID       string        `json:"id"`
	Name     string        `json:"name,omitempty"`
	Position geometry.Vec2 `json:"position"`

	// Status drives the glyph color ("idle", "working", "waiting",
	// "error", "offline"). Unknown values render as idle.
	Status string `json:"status,omitempty"`

	// Class is the agent's role, shown as the glyph letter.
	Class string `json:"class,omitempty"`

	// TaskCount is the number of tasks currently assigned.
	TaskCount int `json:"task_count,omitempty"`
}

// Structure is an externally owned building on the field.
type Structure struct {
	ID       string        `json:"id"`
	Name     string        `json:"name,omitempty"`
	Kind     string        `json:"kind,omitempty"`
	Position geometry.Vec2 `json:"position"`
	Width    float64       `json:"width,omitempty"`
	Depth    float64       `json:"depth,omitempty"`
	Color    string        `json:"color,omitempty"`
	Status   string        `json:"status,omitempty"`
}

// Footprint returns the structure's ground rectangle, falling back to
// a 1x1 footprint when no size is given.
func (structure Structure) Footprint() geometry.Rect {
	width, depth := structure.Width, structure.Depth
	if width <= 0 {
		width = 1
	}
	if depth <= 0 {
		depth = 1
	}
	return geometry.Rect{Width: width, Height: depth}
}

// Contains reports whether point lies on the structure's footprint.
func (structure Structure) Contains(point geometry.Vec2) bool {
	return geometry.Contains(structure.Position, structure.Footprint(), point)
}
