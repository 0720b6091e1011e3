// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package geometry

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestRectContains(t *testing.T) {
	center := Vec2{X: 1, Z: -2}
	rect := Rect{Width: 4, Height: 2}

	tests := []struct {
		name  string
		point Vec2
		want  bool
	}{
		{"center", Vec2{X: 1, Z: -2}, true},
		{"east edge", Vec2{X: 3, Z: -2}, true},
		{"north-west corner", Vec2{X: -1, Z: -3}, true},
		{"just outside east", Vec2{X: 3.001, Z: -2}, false},
		{"just outside south", Vec2{X: 1, Z: -0.999}, false},
		{"far away", Vec2{X: 100, Z: 100}, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Contains(center, rect, test.point); got != test.want {
				t.Errorf("Contains(%v) = %v, want %v", test.point, got, test.want)
			}
		})
	}
}

func TestCircleContains(t *testing.T) {
	center := Vec2{X: 2, Z: 2}
	circle := Circle{Radius: 3}

	if !Contains(center, circle, Vec2{X: 5, Z: 2}) {
		t.Error("point on the boundary should be contained")
	}
	if Contains(center, circle, Vec2{X: 4.2, Z: 4.2}) {
		t.Error("point outside the radius but inside the bounding box should not be contained")
	}
	if !Contains(center, circle, Vec2{X: 2, Z: 2}) {
		t.Error("center should be contained")
	}
}

// TestContainsMatchesDefinition checks random points against the
// closed-form membership definitions for both shapes.
func TestContainsMatchesDefinition(t *testing.T) {
	random := rand.New(rand.NewPCG(1, 2))
	for iteration := 0; iteration < 2000; iteration++ {
		center := Vec2{X: random.Float64()*20 - 10, Z: random.Float64()*20 - 10}
		point := Vec2{X: random.Float64()*30 - 15, Z: random.Float64()*30 - 15}

		rect := Rect{Width: 0.5 + random.Float64()*10, Height: 0.5 + random.Float64()*10}
		wantRect := point.X >= center.X-rect.Width/2 && point.X <= center.X+rect.Width/2 &&
			point.Z >= center.Z-rect.Height/2 && point.Z <= center.Z+rect.Height/2
		if got := Contains(center, rect, point); got != wantRect {
			t.Fatalf("rect %v at %v, point %v: got %v, want %v", rect, center, point, got, wantRect)
		}

		circle := Circle{Radius: 0.5 + random.Float64()*10}
		wantCircle := math.Hypot(point.X-center.X, point.Z-center.Z) <= circle.Radius
		if got := Contains(center, circle, point); got != wantCircle {
			t.Fatalf("circle %v at %v, point %v: got %v, want %v", circle, center, point, got, wantCircle)
		}
	}
}

func TestContainsNilShape(t *testing.T) {
	if Contains(Vec2{}, nil, Vec2{}) {
		t.Error("nil shape should contain nothing")
	}
}

func TestResizeCornerSymmetric(t *testing.T) {
	original := Rect{Width: 4, Height: 2}

	got := ResizeCorner(original, HandleSE, Vec2{X: 1, Z: 0.5})
	if got.Width != 6 || got.Height != 3 {
		t.Errorf("se drag (1, 0.5): got %vx%v, want 6x3", got.Width, got.Height)
	}

	tests := []struct {
		handle HandleType
		delta  Vec2
		want   Rect
	}{
		{HandleNW, Vec2{X: -1, Z: -0.5}, Rect{Width: 6, Height: 3}},
		{HandleNE, Vec2{X: 1, Z: -0.5}, Rect{Width: 6, Height: 3}},
		{HandleSW, Vec2{X: -1, Z: 0.5}, Rect{Width: 6, Height: 3}},
		{HandleNW, Vec2{X: 1, Z: 0.5}, Rect{Width: 2, Height: 1}},
		{HandleSE, Vec2{X: -10, Z: -10}, Rect{Width: MinSize, Height: MinSize}},
		{HandleMove, Vec2{X: 3, Z: 3}, original},
	}
	for _, test := range tests {
		got := ResizeCorner(original, test.handle, test.delta)
		if got != test.want {
			t.Errorf("%s drag %v: got %+v, want %+v", test.handle, test.delta, got, test.want)
		}
	}
}

func TestResizeRadiusIsAbsolute(t *testing.T) {
	got := ResizeRadius(Vec2{X: 2, Z: 2}, Vec2{X: 5, Z: 2})
	if got.Radius != 3 {
		t.Errorf("radius = %v, want 3", got.Radius)
	}

	got = ResizeRadius(Vec2{X: 2, Z: 2}, Vec2{X: 2.1, Z: 2})
	if got.Radius != MinSize {
		t.Errorf("radius = %v, want clamped %v", got.Radius, MinSize)
	}
}

func TestRectFromCornersAnyDirection(t *testing.T) {
	center, rect := RectFromCorners(Vec2{X: 4, Z: 3}, Vec2{X: 0, Z: 1})
	if center != (Vec2{X: 2, Z: 2}) {
		t.Errorf("center = %v, want (2, 2)", center)
	}
	if rect.Width != 4 || rect.Height != 2 {
		t.Errorf("size = %vx%v, want 4x2", rect.Width, rect.Height)
	}
}

func TestCircleFromDrag(t *testing.T) {
	center, circle := CircleFromDrag(Vec2{X: 1, Z: 1}, Vec2{X: 4, Z: 5})
	if center != (Vec2{X: 1, Z: 1}) {
		t.Errorf("center = %v, want anchor", center)
	}
	if circle.Radius != 5 {
		t.Errorf("radius = %v, want 5", circle.Radius)
	}
}

func TestMinimumAndPreviewThresholds(t *testing.T) {
	if MeetsMinimum(Rect{Width: 0.49, Height: 10}) {
		t.Error("rectangle narrower than MinSize should not meet minimum")
	}
	if !MeetsMinimum(Rect{Width: 0.5, Height: 0.5}) {
		t.Error("rectangle exactly MinSize should meet minimum")
	}
	if MeetsMinimum(Circle{Radius: 0.3}) {
		t.Error("circle below MinSize should not meet minimum")
	}
	if PreviewVisible(Circle{Radius: 0.05}) {
		t.Error("preview below threshold should be hidden")
	}
	if !PreviewVisible(Rect{Width: 0.2, Height: 0.3}) {
		t.Error("preview above threshold should be visible")
	}
}

func TestClampedFloorsDimensions(t *testing.T) {
	if got := (Rect{Width: 0.1, Height: 7}).Clamped(); got != (Rect{Width: MinSize, Height: 7}) {
		t.Errorf("Clamped rect = %+v", got)
	}
	if got := (Circle{Radius: -3}).Clamped(); got != (Circle{Radius: MinSize}) {
		t.Errorf("Clamped circle = %+v", got)
	}
	if got := ClampDimension(math.NaN()); got != MinSize {
		t.Errorf("ClampDimension(NaN) = %v, want %v", got, MinSize)
	}
}

func TestHandlePlacements(t *testing.T) {
	rectHandles := HandlePlacements(Vec2{}, Rect{Width: 4, Height: 2})
	if len(rectHandles) != 5 {
		t.Fatalf("rectangle handles = %d, want 5", len(rectHandles))
	}
	for _, handle := range rectHandles {
		if handle.Type == HandleSE && handle.Position != (Vec2{X: 2, Z: 1}) {
			t.Errorf("se handle at %v, want (2, 1)", handle.Position)
		}
	}

	circleHandles := HandlePlacements(Vec2{X: 2, Z: 2}, Circle{Radius: 3})
	if len(circleHandles) != 2 {
		t.Fatalf("circle handles = %d, want 2", len(circleHandles))
	}
	if circleHandles[0].Type != HandleRadius || circleHandles[0].Position != (Vec2{X: 5, Z: 2}) {
		t.Errorf("radius handle = %+v", circleHandles[0])
	}
}

func TestRound(t *testing.T) {
	if got := Round(1.23456, 2); got != 1.23 {
		t.Errorf("Round(1.23456, 2) = %v", got)
	}
	if got := RoundVec(Vec2{X: 0.004, Z: -0.006}, 2); got != (Vec2{X: 0, Z: -0.01}) {
		t.Errorf("RoundVec = %v", got)
	}
}

func TestLabelAnchor(t *testing.T) {
	anchor := LabelAnchor(Vec2{X: 1, Z: 1}, Circle{Radius: 2})
	if anchor != (Vec2{X: 1, Z: -1}) {
		t.Errorf("LabelAnchor = %v, want (1, -1)", anchor)
	}
}
