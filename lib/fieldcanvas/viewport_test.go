// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fieldcanvas

import (
	"math"
	"testing"

	"github.com/bureau-foundation/fieldmap/lib/geometry"
)

func near(a, b geometry.Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Z-b.Z) < 1e-9
}

func TestCellRoundTrip(t *testing.T) {
	viewport := NewViewport(40, 20, 3)
	for y := -2; y < 22; y++ {
		for x := -2; x < 42; x++ {
			gotX, gotY := viewport.WorldToCell(viewport.CellToWorld(x, y))
			if gotX != x || gotY != y {
				t.Fatalf("cell (%d, %d) round-tripped to (%d, %d)", x, y, gotX, gotY)
			}
		}
	}
}

func TestCellAspect(t *testing.T) {
	viewport := testViewport()
	size := viewport.CellSize()
	if size.Z != 2*size.X {
		t.Errorf("cell size = %+v, want rows twice as tall as columns", size)
	}
}

func TestNewViewportCentersOrigin(t *testing.T) {
	viewport := NewViewport(40, 20, 0)
	if viewport.Scale != DefaultScale {
		t.Errorf("Scale = %v, want default %v", viewport.Scale, DefaultScale)
	}
	if !near(viewport.Center(), geometry.Vec2{}) {
		t.Errorf("Center = %+v, want origin", viewport.Center())
	}
}

func TestZoomKeepsCenter(t *testing.T) {
	viewport := NewViewport(40, 20, 4)
	viewport.CenterOn(geometry.Vec2{X: 3, Z: -2})

	viewport.Zoom(2)
	if viewport.Scale != 8 {
		t.Errorf("Scale = %v, want 8", viewport.Scale)
	}
	if !near(viewport.Center(), geometry.Vec2{X: 3, Z: -2}) {
		t.Errorf("Center = %+v after zoom", viewport.Center())
	}

	viewport.Zoom(1000)
	if viewport.Scale != MaxScale {
		t.Errorf("Scale = %v, want clamp to %v", viewport.Scale, MaxScale)
	}
	viewport.Zoom(-1)
	if viewport.Scale != MaxScale {
		t.Error("negative zoom factor changed the scale")
	}
}

func TestPan(t *testing.T) {
	viewport := testViewport()
	viewport.Pan(4, 2)
	if !near(viewport.Origin, geometry.Vec2{X: 2, Z: 2}) {
		t.Errorf("Origin = %+v after pan, want (2, 2)", viewport.Origin)
	}
}

func TestResizeKeepsCenter(t *testing.T) {
	viewport := NewViewport(40, 20, 4)
	viewport.CenterOn(geometry.Vec2{X: 1, Z: 1})
	viewport.Resize(80, 10)
	if viewport.Width != 80 || viewport.Height != 10 {
		t.Errorf("size = %dx%d", viewport.Width, viewport.Height)
	}
	if !near(viewport.Center(), geometry.Vec2{X: 1, Z: 1}) {
		t.Errorf("Center = %+v after resize", viewport.Center())
	}
}
