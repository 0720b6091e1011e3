// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fieldcanvas

import (
	"math"

	"github.com/bureau-foundation/fieldmap/lib/geometry"
)

const (
	// DefaultScale is the number of columns per world unit.
	DefaultScale = 4.0

	// MinScale and MaxScale bound zooming.
	MinScale = 0.5
	MaxScale = 32.0
)

// Viewport maps world positions to terminal cells. Origin is the world
// position at the top-left corner of cell (0, 0).
type Viewport struct {
	Width  int
	Height int
	Scale  float64
	Origin geometry.Vec2
}

// NewViewport returns a width x height viewport centered on the world
// origin.
func NewViewport(width, height int, scale float64) Viewport {
	viewport := Viewport{Width: width, Height: height, Scale: scale}
	if viewport.Scale <= 0 {
		viewport.Scale = DefaultScale
	}
	viewport.CenterOn(geometry.Vec2{})
	return viewport
}

func (viewport Viewport) rowScale() float64 {
	return viewport.Scale / 2
}

// WorldToCell returns the cell containing position. The cell may lie
// outside the viewport.
func (viewport Viewport) WorldToCell(position geometry.Vec2) (int, int) {
	x := math.Floor((position.X - viewport.Origin.X) * viewport.Scale)
	y := math.Floor((position.Z - viewport.Origin.Z) * viewport.rowScale())
	return int(x), int(y)
}

// CellToWorld returns the world position at the center of a cell.
func (viewport Viewport) CellToWorld(x, y int) geometry.Vec2 {
	return geometry.Vec2{
		X: viewport.Origin.X + (float64(x)+0.5)/viewport.Scale,
		Z: viewport.Origin.Z + (float64(y)+0.5)/viewport.rowScale(),
	}
}

// InBounds reports whether a cell is inside the viewport.
func (viewport Viewport) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < viewport.Width && y < viewport.Height
}

// CellSize returns the world size of one cell.
func (viewport Viewport) CellSize() geometry.Vec2 {
	return geometry.Vec2{X: 1 / viewport.Scale, Z: 1 / viewport.rowScale()}
}

// Center returns the world position at the middle of the viewport.
func (viewport Viewport) Center() geometry.Vec2 {
	return geometry.Vec2{
		X: viewport.Origin.X + float64(viewport.Width)/2/viewport.Scale,
		Z: viewport.Origin.Z + float64(viewport.Height)/2/viewport.rowScale(),
	}
}

// CenterOn moves the viewport so position is in the middle.
func (viewport *Viewport) CenterOn(position geometry.Vec2) {
	viewport.Origin = geometry.Vec2{
		X: position.X - float64(viewport.Width)/2/viewport.Scale,
		Z: position.Z - float64(viewport.Height)/2/viewport.rowScale(),
	}
}

// Pan shifts the view by a number of cells.
func (viewport *Viewport) Pan(columns, rows int) {
	viewport.Origin.X += float64(columns) / viewport.Scale
	viewport.Origin.Z += float64(rows) / viewport.rowScale()
}

// Zoom multiplies the scale by factor, clamped to [MinScale,
// MaxScale], keeping the center fixed.
func (viewport *Viewport) Zoom(factor float64) {
	if factor <= 0 || math.IsNaN(factor) {
		return
	}
	center := viewport.Center()
	viewport.Scale = min(max(viewport.Scale*factor, MinScale), MaxScale)
	viewport.CenterOn(center)
}

// Resize changes the viewport's cell dimensions, keeping the center
// fixed.
func (viewport *Viewport) Resize(width, height int) {
	center := viewport.Center()
	viewport.Width = max(width, 0)
	viewport.Height = max(height, 0)
	viewport.CenterOn(center)
}
