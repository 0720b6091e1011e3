// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package geometry

import "math"

// Vec2 is a point or displacement on the ground plane. Z grows
// "south" (down the screen in the terminal canvas).
type Vec2 struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Z: v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Z: v.Z - other.Z}
}

// Length returns the Euclidean length of v.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Z)
}

// Distance returns the Euclidean distance between v and other.
func (v Vec2) Distance(other Vec2) float64 {
	return v.Sub(other).Length()
}

// Round rounds value to the given number of decimal places. Used to
// quantize coordinates before fingerprinting so that sub-centimeter
// jitter during continuous movement does not register as a change.
func Round(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}

// RoundVec rounds both components of v to the given number of decimal
// places.
func RoundVec(v Vec2, places int) Vec2 {
	return Vec2{X: Round(v.X, places), Z: Round(v.Z, places)}
}
