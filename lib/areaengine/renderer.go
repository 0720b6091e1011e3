// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package areaengine

import (
	"github.com/bureau-foundation/fieldmap/lib/field"
	"github.com/bureau-foundation/fieldmap/lib/geometry"
)

// Visual is something the renderer draws until it is disposed.
// Dispose may fail (for example when the renderer was torn down
// first); the engine logs such failures and moves on.
type Visual interface {
	Dispose() error
}

// AreaVisual is the visual for one area. Update restyles or reshapes
// it in place.
type AreaVisual interface {
	Visual
	Update(area field.Area, style AreaStyle) error
}

// AreaStyle is how an area should be drawn right now.
type AreaStyle struct {
	// Opacity is the fill strength in [0, 1], already scaled by the
	// engine's brightness.
	Opacity float64

	// Selected marks the highlighted area.
	Selected bool
}

// Renderer creates visuals. Implementations decide what a visual
// looks like; the engine decides when visuals exist.
type Renderer interface {
	// CreateArea returns a visual for area.
	CreateArea(area field.Area, style AreaStyle) (AreaVisual, error)

	// CreatePreview returns an outline for an in-progress draw
	// gesture.
	CreatePreview(center geometry.Vec2, shape geometry.Shape) (Visual, error)

	// CreateHandle returns the visual for one resize handle.
	CreateHandle(handle ResizeHandle) (Visual, error)
}

// Store is the part of the field store the engine needs. Unknown IDs
// passed to UpdateArea are a no-op.
type Store interface {
	State() field.State
	AddArea(area field.Area)
	UpdateArea(areaID string, patch field.AreaPatch) bool
	NextZIndex() int
}

// ResizeHandle is a pickable control point on the selected area.
type ResizeHandle struct {
	AreaID   string
	Type     geometry.HandleType
	Position geometry.Vec2
}
