// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package geometry

// HandleType identifies a resize or move control point.
type HandleType string

const (
	// HandleMove translates the whole area.
	HandleMove HandleType = "move"
	// HandleNW is the north-west (min x, min z) rectangle corner.
	HandleNW HandleType = "nw"
	// HandleNE is the north-east (max x, min z) rectangle corner.
	HandleNE HandleType = "ne"
	// HandleSW is the south-west (min x, max z) rectangle corner.
	HandleSW HandleType = "sw"
	// HandleSE is the south-east (max x, max z) rectangle corner.
	HandleSE HandleType = "se"
	// HandleRadius sets a circle's radius.
	HandleRadius HandleType = "radius"
)

// IsCorner reports whether handle is one of the four rectangle corners.
func (handle HandleType) IsCorner() bool {
	switch handle {
	case HandleNW, HandleNE, HandleSW, HandleSE:
		return true
	}
	return false
}

// HandlePlacement is a handle type at a world position.
type HandlePlacement struct {
	Type     HandleType
	Position Vec2
}

// HandlePlacements returns the handles an area of the given shape
// exposes when selected: the four corners for a rectangle, one radius
// handle on the +x edge for a circle, and a move handle at the center
// for both. Corner handles come first so a picking pass that stops at
// the first match prefers resizing over moving when they overlap on a
// tiny area.
func HandlePlacements(center Vec2, shape Shape) []HandlePlacement {
	switch shape := shape.(type) {
	case Rect:
		half := shape.HalfExtent()
		return []HandlePlacement{
			{Type: HandleNW, Position: Vec2{X: center.X - half.X, Z: center.Z - half.Z}},
			{Type: HandleNE, Position: Vec2{X: center.X + half.X, Z: center.Z - half.Z}},
			{Type: HandleSW, Position: Vec2{X: center.X - half.X, Z: center.Z + half.Z}},
			{Type: HandleSE, Position: Vec2{X: center.X + half.X, Z: center.Z + half.Z}},
			{Type: HandleMove, Position: center},
		}
	case Circle:
		return []HandlePlacement{
			{Type: HandleRadius, Position: Vec2{X: center.X + shape.Radius, Z: center.Z}},
			{Type: HandleMove, Position: center},
		}
	default:
		return nil
	}
}

// cornerSigns returns the direction each axis grows when the given
// corner is dragged outward.
func cornerSigns(handle HandleType) (signX, signZ float64) {
	switch handle {
	case HandleNW:
		return -1, -1
	case HandleNE:
		return 1, -1
	case HandleSW:
		return -1, 1
	case HandleSE:
		return 1, 1
	}
	return 0, 0
}

// ResizeCorner computes a rectangle's new size from a corner drag.
// delta is the pointer displacement since the drag started and
// original is the size captured at that moment. The rectangle grows
// or shrinks symmetrically about its unchanged center, so each axis
// changes by twice the pointer delta:
//
//	newDimension = max(MinSize, original ± 2·delta)
//
// The sign depends on the corner: dragging se by (+1, +0.5) widens by 2
// and heightens by 1; dragging nw by the same delta shrinks instead.
// Non-corner handles return original unchanged.
func ResizeCorner(original Rect, handle HandleType, delta Vec2) Rect {
	signX, signZ := cornerSigns(handle)
	if signX == 0 {
		return original
	}
	return Rect{
		Width:  ClampDimension(original.Width + signX*2*delta.X),
		Height: ClampDimension(original.Height + signZ*2*delta.Z),
	}
}

// ResizeRadius returns a circle whose radius is the absolute distance
// from center to pointer, clamped at [MinSize]. Unlike corner resizing
// this does not depend on where the drag started.
func ResizeRadius(center, pointer Vec2) Circle {
	return Circle{Radius: ClampDimension(center.Distance(pointer))}
}
