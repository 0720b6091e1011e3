// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package areaengine

import (
	"testing"

	"github.com/bureau-foundation/fieldmap/lib/geometry"
)

func handleOf(t *testing.T, engine *Engine, handleType geometry.HandleType) ResizeHandle {
	t.Helper()
	for _, handle := range engine.ResizeHandles() {
		if handle.Type == handleType {
			return handle
		}
	}
	t.Fatalf("no %s handle on the selected area", handleType)
	return ResizeHandle{}
}

func TestCornerResizeIsSymmetric(t *testing.T) {
	tests := []struct {
		handle geometry.HandleType
		delta  geometry.Vec2
		want   geometry.Rect
	}{
		{geometry.HandleSE, geometry.Vec2{X: 1, Z: 0.5}, geometry.Rect{Width: 6, Height: 3}},
		{geometry.HandleNW, geometry.Vec2{X: -1, Z: -0.5}, geometry.Rect{Width: 6, Height: 3}},
		{geometry.HandleNE, geometry.Vec2{X: 1, Z: 0.5}, geometry.Rect{Width: 6, Height: 1}},
		{geometry.HandleSW, geometry.Vec2{X: 1, Z: 0.5}, geometry.Rect{Width: 2, Height: 3}},
	}
	for _, test := range tests {
		t.Run(string(test.handle), func(t *testing.T) {
			f := newFixture(t)
			f.addRect("a", geometry.Vec2{}, 4, 2, 1)
			f.engine.SyncFromStore()
			f.engine.HighlightArea("a")

			handle := handleOf(t, f.engine, test.handle)
			if !f.engine.StartResize(handle, handle.Position) {
				t.Fatal("StartResize failed")
			}
			f.engine.UpdateResize(handle.Position.Add(test.delta))

			area := f.area(t, "a")
			if area.Shape != test.want {
				t.Errorf("shape = %+v, want %+v", area.Shape, test.want)
			}
			if area.Center != (geometry.Vec2{}) {
				t.Errorf("center moved to %+v", area.Center)
			}
			if got := f.renderer.areaVisual("a").area.Shape; got != test.want {
				t.Errorf("visual shape = %+v, want %+v", got, test.want)
			}
		})
	}
}

func TestCornerResizeClampsAtMinimum(t *testing.T) {
	f := newFixture(t)
	f.addRect("a", geometry.Vec2{}, 4, 2, 1)
	f.engine.HighlightArea("a")

	handle := handleOf(t, f.engine, geometry.HandleSE)
	f.engine.StartResize(handle, handle.Position)
	f.engine.UpdateResize(geometry.Vec2{X: -50, Z: -50})

	if shape := f.area(t, "a").Shape; shape != (geometry.Rect{Width: geometry.MinSize, Height: geometry.MinSize}) {
		t.Errorf("shape = %+v, want both dimensions at the minimum", shape)
	}
}

func TestRadiusResizeIsAbsolute(t *testing.T) {
	f := newFixture(t)
	f.addCircle("c", geometry.Vec2{X: 2, Z: 2}, 1, 1)
	f.engine.HighlightArea("c")

	handle := handleOf(t, f.engine, geometry.HandleRadius)
	// Grab the handle off-center; the result must not depend on where.
	f.engine.StartResize(handle, geometry.Vec2{X: 3.2, Z: 2.1})
	f.engine.UpdateResize(geometry.Vec2{X: 5, Z: 2})

	if shape := f.area(t, "c").Shape; shape != (geometry.Circle{Radius: 3}) {
		t.Errorf("shape = %+v, want radius 3", shape)
	}

	f.engine.UpdateResize(geometry.Vec2{X: 2, Z: 2.1})
	if shape := f.area(t, "c").Shape; shape != (geometry.Circle{Radius: geometry.MinSize}) {
		t.Errorf("shape = %+v, want radius clamped to the minimum", shape)
	}
}

func TestMoveIsComputedFromSnapshot(t *testing.T) {
	f := newFixture(t)
	f.addRect("a", geometry.Vec2{X: 1, Z: 1}, 2, 2, 1)
	f.engine.HighlightArea("a")

	handle := handleOf(t, f.engine, geometry.HandleMove)
	f.engine.StartResize(handle, geometry.Vec2{X: 1, Z: 1})
	f.engine.UpdateResize(geometry.Vec2{X: 2, Z: 1})
	f.engine.UpdateResize(geometry.Vec2{X: 3, Z: 4})

	area := f.area(t, "a")
	if area.Center != (geometry.Vec2{X: 3, Z: 4}) {
		t.Errorf("center = %+v, want (3, 4)", area.Center)
	}
	if area.Shape != (geometry.Rect{Width: 2, Height: 2}) {
		t.Errorf("move changed the shape to %+v", area.Shape)
	}
}

func TestFinishResizeRebuildsHandles(t *testing.T) {
	f := newFixture(t)
	f.addRect("a", geometry.Vec2{}, 4, 2, 1)
	f.engine.SyncFromStore()
	f.engine.HighlightArea("a")

	handle := handleOf(t, f.engine, geometry.HandleSE)
	f.engine.StartResize(handle, handle.Position)
	f.engine.UpdateResize(handle.Position.Add(geometry.Vec2{X: 1, Z: 0.5}))
	f.engine.FinishResize()
	f.engine.FinishResize()

	if f.engine.IsResizing() {
		t.Error("still resizing after FinishResize")
	}
	se := handleOf(t, f.engine, geometry.HandleSE)
	if se.Position != (geometry.Vec2{X: 3, Z: 1.5}) {
		t.Errorf("se handle at %+v, want (3, 1.5)", se.Position)
	}
	if got := len(f.renderer.liveOf("handle")); got != 5 {
		t.Errorf("live handle visuals = %d, want 5", got)
	}
	if f.renderer.doubleDisposes != 0 {
		t.Errorf("double disposes = %d", f.renderer.doubleDisposes)
	}
}

func TestCancelResizeRestores(t *testing.T) {
	f := newFixture(t)
	f.addRect("a", geometry.Vec2{}, 4, 2, 1)
	f.engine.HighlightArea("a")

	handle := handleOf(t, f.engine, geometry.HandleSE)
	f.engine.StartResize(handle, handle.Position)
	f.engine.UpdateResize(geometry.Vec2{X: 10, Z: 10})
	f.engine.CancelResize()

	area := f.area(t, "a")
	if area.Shape != (geometry.Rect{Width: 4, Height: 2}) || area.Center != (geometry.Vec2{}) {
		t.Errorf("area = %+v after cancel, want the original", area)
	}
	if f.engine.IsResizing() {
		t.Error("still resizing after CancelResize")
	}
}

func TestStartResizeRejectsMismatchedHandle(t *testing.T) {
	f := newFixture(t)
	f.addRect("rect", geometry.Vec2{}, 4, 2, 1)
	f.addCircle("circle", geometry.Vec2{X: 10}, 1, 2)

	if f.engine.StartResize(ResizeHandle{AreaID: "rect", Type: geometry.HandleRadius}, geometry.Vec2{}) {
		t.Error("radius handle accepted on a rectangle")
	}
	if f.engine.StartResize(ResizeHandle{AreaID: "circle", Type: geometry.HandleNE}, geometry.Vec2{}) {
		t.Error("corner handle accepted on a circle")
	}
	if f.engine.StartResize(ResizeHandle{AreaID: "missing", Type: geometry.HandleMove}, geometry.Vec2{}) {
		t.Error("resize started on a missing area")
	}
	f.store.ArchiveArea("rect")
	if f.engine.StartResize(ResizeHandle{AreaID: "rect", Type: geometry.HandleMove}, geometry.Vec2{}) {
		t.Error("resize started on an archived area")
	}
}

func TestResizeEndsWhenAreaVanishes(t *testing.T) {
	f := newFixture(t)
	f.addRect("a", geometry.Vec2{}, 4, 2, 1)
	f.engine.StartResize(ResizeHandle{AreaID: "a", Type: geometry.HandleMove}, geometry.Vec2{})

	f.store.RemoveArea("a")
	f.engine.UpdateResize(geometry.Vec2{X: 1})

	if f.engine.IsResizing() {
		t.Error("resize survived the area's removal")
	}
}
