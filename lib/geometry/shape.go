// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package geometry

import "math"

// MinSize is the smallest width, height or radius a committed area may
// have. Gestures that would produce anything smaller are rejected, and
// every resize clamps to it.
const MinSize = 0.5

// PreviewThreshold is the smallest dimension worth drawing while a
// draw gesture is in progress. Below it the preview is hidden.
const PreviewThreshold = 0.1

// Kind names the shape variant of an area. The string values are the
// wire and file representation.
type Kind string

const (
	// KindRectangle is an axis-aligned rectangle stored as center plus
	// full width (x) and height (z).
	KindRectangle Kind = "rectangle"
	// KindCircle is a circle stored as center plus radius.
	KindCircle Kind = "circle"
)

// ParseKind validates a kind string from a file or the wire.
func ParseKind(value string) (Kind, bool) {
	switch Kind(value) {
	case KindRectangle, KindCircle:
		return Kind(value), true
	default:
		return "", false
	}
}

// Shape is the sealed set of area geometries. Implementations are
// [Rect] and [Circle]; no other package can add variants.
type Shape interface {
	// Kind reports which variant this is.
	Kind() Kind

	// Contains reports whether a point at the given offset from the
	// shape's center lies inside or on the boundary.
	Contains(offset Vec2) bool

	// HalfExtent returns half the axis-aligned bounding box size.
	HalfExtent() Vec2

	// Clamped returns a copy with every dimension raised to at least
	// [MinSize].
	Clamped() Shape

	// MinDimension returns the smallest dimension of the shape, used
	// by the minimum-size and preview visibility checks.
	MinDimension() float64

	sealed()
}

// Rect is an axis-aligned rectangle. Width spans x, Height spans z.
type Rect struct {
	Width  float64
	Height float64
}

// Kind returns [KindRectangle].
func (Rect) Kind() Kind { return KindRectangle }

// Contains is an axis-aligned bounding-box membership test:
// |dx| <= width/2 and |dz| <= height/2.
func (rect Rect) Contains(offset Vec2) bool {
	return math.Abs(offset.X) <= rect.Width/2 && math.Abs(offset.Z) <= rect.Height/2
}

// HalfExtent returns (width/2, height/2).
func (rect Rect) HalfExtent() Vec2 {
	return Vec2{X: rect.Width / 2, Z: rect.Height / 2}
}

// Clamped floors both dimensions at [MinSize].
func (rect Rect) Clamped() Shape {
	return Rect{Width: ClampDimension(rect.Width), Height: ClampDimension(rect.Height)}
}

// MinDimension returns min(width, height).
func (rect Rect) MinDimension() float64 {
	return math.Min(rect.Width, rect.Height)
}

func (Rect) sealed() {}

// Circle is a circle of the given radius.
type Circle struct {
	Radius float64
}

// Kind returns [KindCircle].
func (Circle) Kind() Kind { return KindCircle }

// Contains reports distance(offset) <= radius.
func (circle Circle) Contains(offset Vec2) bool {
	return offset.Length() <= circle.Radius
}

// HalfExtent returns (radius, radius).
func (circle Circle) HalfExtent() Vec2 {
	return Vec2{X: circle.Radius, Z: circle.Radius}
}

// Clamped floors the radius at [MinSize].
func (circle Circle) Clamped() Shape {
	return Circle{Radius: ClampDimension(circle.Radius)}
}

// MinDimension returns the radius.
func (circle Circle) MinDimension() float64 {
	return circle.Radius
}

func (Circle) sealed() {}

// ClampDimension floors a single dimension at [MinSize]. NaN is
// treated as zero so a corrupt input cannot poison later arithmetic.
func ClampDimension(value float64) float64 {
	if math.IsNaN(value) || value < MinSize {
		return MinSize
	}
	return value
}

// Contains reports whether point lies inside shape placed at center.
func Contains(center Vec2, shape Shape, point Vec2) bool {
	if shape == nil {
		return false
	}
	return shape.Contains(point.Sub(center))
}

// MeetsMinimum reports whether every dimension of shape is at least
// [MinSize]. Draw gestures that fail this check are discarded.
func MeetsMinimum(shape Shape) bool {
	return shape != nil && shape.MinDimension() >= MinSize
}

// PreviewVisible reports whether a gesture preview is large enough to
// draw. Tiny previews are hidden rather than rendered as a dot.
func PreviewVisible(shape Shape) bool {
	return shape != nil && shape.MinDimension() >= PreviewThreshold
}

// RectFromCorners returns the center and size of the rectangle spanned
// by two opposite corners. Width and height are absolute, so the
// gesture may run in any direction.
func RectFromCorners(anchor, corner Vec2) (Vec2, Rect) {
	center := Vec2{X: (anchor.X + corner.X) / 2, Z: (anchor.Z + corner.Z) / 2}
	return center, Rect{
		Width:  math.Abs(corner.X - anchor.X),
		Height: math.Abs(corner.Z - anchor.Z),
	}
}

// CircleFromDrag returns a circle centered on anchor whose radius is
// the distance from anchor to pointer.
func CircleFromDrag(anchor, pointer Vec2) (Vec2, Circle) {
	return anchor, Circle{Radius: anchor.Distance(pointer)}
}

// LabelAnchor returns where a name label for shape should sit: centered
// horizontally on the top edge.
func LabelAnchor(center Vec2, shape Shape) Vec2 {
	if shape == nil {
		return center
	}
	return Vec2{X: center.X, Z: center.Z - shape.HalfExtent().Z}
}
