// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package areaengine

import (
	"testing"

	"github.com/bureau-foundation/fieldmap/lib/field"
	"github.com/bureau-foundation/fieldmap/lib/geometry"
)

func TestDrawRectangle(t *testing.T) {
	f := newFixture(t)
	var created []field.Area
	f.engine.SetOnAreaCreated(func(area field.Area) { created = append(created, area) })

	f.engine.SetDrawingTool(geometry.KindRectangle)
	if !f.engine.StartDrawing(geometry.Vec2{X: 4, Z: 2}) {
		t.Fatal("StartDrawing failed with a tool active")
	}

	f.engine.UpdateDrawing(geometry.Vec2{X: 4.05, Z: 2.05})
	if got := len(f.renderer.liveOf("preview")); got != 0 {
		t.Errorf("preview shown below the visibility threshold (%d live)", got)
	}
	f.engine.UpdateDrawing(geometry.Vec2{X: 2, Z: 1})
	previews := f.renderer.liveOf("preview")
	if len(previews) != 1 {
		t.Fatalf("live previews = %d, want 1", len(previews))
	}
	if previews[0].shape != (geometry.Rect{Width: 2, Height: 1}) {
		t.Errorf("preview shape = %+v, want 2x1", previews[0].shape)
	}

	// Dragging up and to the left still yields positive dimensions.
	area, ok := f.engine.FinishDrawing(geometry.Vec2{X: 0, Z: 0})
	if !ok {
		t.Fatal("FinishDrawing rejected a 4x2 rectangle")
	}
	if area.Shape != (geometry.Rect{Width: 4, Height: 2}) {
		t.Errorf("shape = %+v, want 4x2", area.Shape)
	}
	if area.Center != (geometry.Vec2{X: 2, Z: 1}) {
		t.Errorf("center = %+v, want (2, 1)", area.Center)
	}
	if area.ID != "area-1" || area.Name != "Area 1" || area.Color != DefaultPalette[0] {
		t.Errorf("defaults: id=%q name=%q color=%q", area.ID, area.Name, area.Color)
	}

	stored := f.area(t, "area-1")
	if stored.ZIndex != area.ZIndex {
		t.Errorf("stored z=%d, returned z=%d", stored.ZIndex, area.ZIndex)
	}
	if len(f.renderer.liveOf("preview")) != 0 {
		t.Error("preview survived the commit")
	}
	if f.renderer.areaVisual("area-1") == nil {
		t.Error("committed area was not rendered")
	}
	if len(created) != 1 || created[0].ID != "area-1" {
		t.Errorf("creation callback got %v", created)
	}
	if f.engine.IsDrawing() {
		t.Error("still drawing after FinishDrawing")
	}
}

func TestDrawCircle(t *testing.T) {
	f := newFixture(t)
	f.engine.SetDrawingTool(geometry.KindCircle)
	f.engine.StartDrawing(geometry.Vec2{X: 1, Z: 1})

	area, ok := f.engine.FinishDrawing(geometry.Vec2{X: 4, Z: 5})
	if !ok {
		t.Fatal("FinishDrawing rejected a radius-5 circle")
	}
	if area.Center != (geometry.Vec2{X: 1, Z: 1}) {
		t.Errorf("center = %+v, want the anchor", area.Center)
	}
	if area.Shape != (geometry.Circle{Radius: 5}) {
		t.Errorf("shape = %+v, want radius 5", area.Shape)
	}
}

func TestNewAreasStackOnTop(t *testing.T) {
	f := newFixture(t)
	f.addRect("existing", geometry.Vec2{}, 10, 10, 40)

	f.engine.SetDrawingTool(geometry.KindRectangle)
	f.engine.StartDrawing(geometry.Vec2{X: -1, Z: -1})
	area, _ := f.engine.FinishDrawing(geometry.Vec2{X: 1, Z: 1})

	if area.ZIndex <= 40 {
		t.Errorf("new area z=%d, want above 40", area.ZIndex)
	}
	if hit, _ := f.engine.AreaAt(geometry.Vec2{}); hit.ID != area.ID {
		t.Errorf("AreaAt = %q, want the new area on top", hit.ID)
	}
	if area.Name != "Area 2" || area.Color != DefaultPalette[1] {
		t.Errorf("name=%q color=%q, want the second default", area.Name, area.Color)
	}
}

func TestDefaultNamesDoNotRepeatAfterRemoval(t *testing.T) {
	f := newFixture(t)
	f.engine.SetDrawingTool(geometry.KindRectangle)
	draw := func(x float64) field.Area {
		f.engine.StartDrawing(geometry.Vec2{X: x})
		area, ok := f.engine.FinishDrawing(geometry.Vec2{X: x + 2, Z: 2})
		if !ok {
			t.Fatalf("drawing at x=%v was rejected", x)
		}
		return area
	}

	first := draw(0)
	second := draw(10)
	f.store.RemoveArea(first.ID)
	third := draw(20)

	if third.Name == second.Name {
		t.Errorf("third area reuses the name %q", third.Name)
	}
	if third.Name != "Area 3" || third.Color != DefaultPalette[2] {
		t.Errorf("third area name=%q color=%q, want Area 3 and the third default", third.Name, third.Color)
	}
}

func TestFinishDrawingRejectsSmallShapes(t *testing.T) {
	tests := []struct {
		name  string
		tool  geometry.Kind
		start geometry.Vec2
		end   geometry.Vec2
	}{
		{"narrow rectangle", geometry.KindRectangle, geometry.Vec2{}, geometry.Vec2{X: 0.4, Z: 3}},
		{"flat rectangle", geometry.KindRectangle, geometry.Vec2{}, geometry.Vec2{X: 3, Z: 0.49}},
		{"click without drag", geometry.KindRectangle, geometry.Vec2{X: 1, Z: 1}, geometry.Vec2{X: 1, Z: 1}},
		{"small circle", geometry.KindCircle, geometry.Vec2{}, geometry.Vec2{X: 0.3, Z: 0.3}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := newFixture(t)
			called := false
			f.engine.SetOnAreaCreated(func(field.Area) { called = true })
			f.engine.SetDrawingTool(test.tool)
			f.engine.StartDrawing(test.start)
			f.engine.UpdateDrawing(test.end)

			if _, ok := f.engine.FinishDrawing(test.end); ok {
				t.Error("FinishDrawing accepted a shape below the minimum")
			}
			if len(f.store.State().Areas) != 0 {
				t.Error("rejected shape reached the store")
			}
			if called {
				t.Error("creation callback ran for a rejected shape")
			}
			if len(f.renderer.live) != 0 {
				t.Errorf("%d visuals alive after rejection", len(f.renderer.live))
			}
		})
	}
}

func TestStartDrawingRequiresTool(t *testing.T) {
	f := newFixture(t)
	if f.engine.StartDrawing(geometry.Vec2{}) {
		t.Error("StartDrawing succeeded with no tool")
	}
	if _, ok := f.engine.FinishDrawing(geometry.Vec2{X: 5, Z: 5}); ok {
		t.Error("FinishDrawing created an area without a gesture")
	}

	f.engine.SetDrawingTool("hexagon")
	if f.engine.DrawingTool() != "" {
		t.Errorf("DrawingTool = %q after an unknown kind", f.engine.DrawingTool())
	}
}

func TestCancelDrawing(t *testing.T) {
	f := newFixture(t)
	f.engine.SetDrawingTool(geometry.KindRectangle)
	f.engine.StartDrawing(geometry.Vec2{})
	f.engine.UpdateDrawing(geometry.Vec2{X: 3, Z: 3})

	f.engine.CancelDrawing()
	f.engine.CancelDrawing()

	if f.engine.IsDrawing() {
		t.Error("still drawing after CancelDrawing")
	}
	if len(f.renderer.live) != 0 {
		t.Errorf("%d visuals alive after cancel", len(f.renderer.live))
	}
	if f.engine.DrawingTool() != geometry.KindRectangle {
		t.Error("CancelDrawing dropped the tool")
	}
	if len(f.store.State().Areas) != 0 {
		t.Error("cancelled gesture reached the store")
	}
}

func TestChangingToolCancelsGesture(t *testing.T) {
	f := newFixture(t)
	f.engine.SetDrawingTool(geometry.KindRectangle)
	f.engine.StartDrawing(geometry.Vec2{})
	f.engine.UpdateDrawing(geometry.Vec2{X: 3, Z: 3})

	f.engine.SetDrawingTool(geometry.KindCircle)
	if f.engine.IsDrawing() {
		t.Error("gesture survived a tool change")
	}
	if len(f.renderer.liveOf("preview")) != 0 {
		t.Error("preview survived a tool change")
	}
}

func TestGesturesAreExclusive(t *testing.T) {
	f := newFixture(t)
	f.addRect("a", geometry.Vec2{}, 4, 2, 1)
	handle := ResizeHandle{AreaID: "a", Type: geometry.HandleSE, Position: geometry.Vec2{X: 2, Z: 1}}

	f.engine.SetDrawingTool(geometry.KindRectangle)
	f.engine.StartDrawing(geometry.Vec2{X: 10})
	if f.engine.StartResize(handle, handle.Position) {
		t.Error("StartResize succeeded during a draw gesture")
	}
	f.engine.CancelDrawing()

	if !f.engine.StartResize(handle, handle.Position) {
		t.Fatal("StartResize failed with drawing idle")
	}
	if f.engine.StartDrawing(geometry.Vec2{X: 10}) {
		t.Error("StartDrawing succeeded during a resize")
	}
	if f.engine.StartResize(handle, handle.Position) {
		t.Error("second StartResize succeeded")
	}
}
