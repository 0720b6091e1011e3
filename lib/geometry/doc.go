// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package geometry provides the ground-plane math shared by the area
// engine, the scene input router and the terminal canvas.
//
// All positions are [Vec2] values on the x/z ground plane. Area
// geometry is a sealed sum type: a [Shape] is either a [Rect] or a
// [Circle], and code switches on the concrete type instead of checking
// which optional fields happen to be set. Both shapes are stored
// relative to a center point; a rectangle's Width and Height are full
// extents, not half extents.
//
// Every dimension produced by this package for a committed area is
// floor-clamped to [MinSize]. Previews use the lower [PreviewThreshold]
// to decide whether anything is worth drawing at all.
//
// Corner resizing is symmetric about the center: dragging a corner by
// delta changes the matching dimension by 2*delta and leaves the
// center in place (see [ResizeCorner]). Radius resizing is absolute:
// the new radius is the distance from the center to the pointer (see
// [ResizeRadius]).
//
// This package has no dependencies on other fieldmap packages.
package geometry
