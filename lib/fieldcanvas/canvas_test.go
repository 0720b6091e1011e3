// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fieldcanvas

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/fieldmap/lib/areaengine"
	"github.com/bureau-foundation/fieldmap/lib/field"
	"github.com/bureau-foundation/fieldmap/lib/geometry"
	"github.com/bureau-foundation/fieldmap/lib/scene"
	"github.com/bureau-foundation/fieldmap/lib/tui"
)

// testViewport maps one world unit to two columns and one row, with
// the world origin at cell (0, 0).
func testViewport() Viewport {
	return Viewport{Width: 20, Height: 10, Scale: 2}
}

func newTestCanvas() *Canvas {
	return New(tui.DefaultTheme, testViewport())
}

// plainFrame renders the canvas and strips styling.
func plainFrame(t *testing.T, canvas *Canvas) [][]rune {
	t.Helper()
	lines := strings.Split(ansi.Strip(canvas.Render()), "\n")
	if len(lines) != canvas.viewport.Height {
		t.Fatalf("frame has %d lines, want %d", len(lines), canvas.viewport.Height)
	}
	frame := make([][]rune, len(lines))
	for index, line := range lines {
		frame[index] = []rune(line)
		if len(frame[index]) != canvas.viewport.Width {
			t.Fatalf("line %d has %d cells, want %d: %q", index, len(frame[index]), canvas.viewport.Width, line)
		}
	}
	return frame
}

func rectArea(id string, center geometry.Vec2, width, height float64, zIndex int) field.Area {
	return field.Area{
		ID:     id,
		Shape:  geometry.Rect{Width: width, Height: height},
		Center: center,
		Color:  "#4e9a06",
		ZIndex: zIndex,
	}
}

func TestRenderRectangleOutlineAndLabel(t *testing.T) {
	canvas := newTestCanvas()
	area := rectArea("a", geometry.Vec2{X: 5, Z: 5}, 4, 4, 1)
	area.Name = "Zone"
	if _, err := canvas.CreateArea(area, areaengine.AreaStyle{Opacity: 0.3}); err != nil {
		t.Fatalf("CreateArea: %v", err)
	}

	frame := plainFrame(t, canvas)
	want := map[[2]int]rune{
		{6, 3}: '┌', {13, 3}: '┐', {6, 6}: '└', {13, 6}: '┘',
		{7, 3}: '─', {12, 6}: '─', {6, 4}: '│', {13, 5}: '│',
		{8, 4}: 'Z', {11, 4}: 'e', {7, 5}: ' ', {5, 4}: ' ',
	}
	for position, glyph := range want {
		if got := frame[position[1]][position[0]]; got != glyph {
			t.Errorf("cell %v = %q, want %q", position, got, glyph)
		}
	}
}

func TestRenderZOrder(t *testing.T) {
	for _, test := range []struct {
		name       string
		lowerZ     int
		upperZ     int
		wantAtCell rune
	}{
		{"small area on top", 1, 2, '─'},
		{"large area on top", 2, 1, '│'},
	} {
		t.Run(test.name, func(t *testing.T) {
			canvas := newTestCanvas()
			canvas.CreateArea(rectArea("large", geometry.Vec2{X: 5, Z: 5}, 4, 4, test.lowerZ), areaengine.AreaStyle{Opacity: 0.3})
			canvas.CreateArea(rectArea("small", geometry.Vec2{X: 7, Z: 5}, 2, 2, test.upperZ), areaengine.AreaStyle{Opacity: 0.3})

			frame := plainFrame(t, canvas)
			if got := frame[4][13]; got != test.wantAtCell {
				t.Errorf("overlap cell = %q, want %q", got, test.wantAtCell)
			}
		})
	}
}

func TestRenderPreviewAndHandles(t *testing.T) {
	canvas := newTestCanvas()
	canvas.CreatePreview(geometry.Vec2{X: 5, Z: 5}, geometry.Rect{Width: 4, Height: 4})
	canvas.CreateHandle(areaengine.ResizeHandle{AreaID: "a", Type: geometry.HandleSE, Position: geometry.Vec2{X: 7, Z: 7}})
	canvas.CreateHandle(areaengine.ResizeHandle{AreaID: "a", Type: geometry.HandleMove, Position: geometry.Vec2{X: 5, Z: 5}})

	frame := plainFrame(t, canvas)
	if got := frame[3][7]; got != glyphPreview {
		t.Errorf("preview edge = %q, want %q", got, glyphPreview)
	}
	if got := frame[4][8]; got != ' ' {
		t.Errorf("preview interior = %q, want blank", got)
	}
	if got := frame[7][14]; got != glyphHandle {
		t.Errorf("corner handle = %q, want %q", got, glyphHandle)
	}
	if got := frame[5][10]; got != glyphMoveHandle {
		t.Errorf("move handle = %q, want %q", got, glyphMoveHandle)
	}
}

func TestRenderAgentsAndStructures(t *testing.T) {
	canvas := newTestCanvas()
	canvas.SyncAgents(map[string]field.Agent{
		"builder-1": {ID: "builder-1", Class: "builder", Position: geometry.Vec2{X: 1, Z: 1}},
		"anon":      {ID: "anon", Position: geometry.Vec2{X: 3, Z: 8}},
	}, map[string]struct{}{"builder-1": {}})
	canvas.SyncStructures(map[string]field.Structure{
		"hq": {ID: "hq", Position: geometry.Vec2{X: 8, Z: 2}, Width: 2, Depth: 2},
	}, "")

	frame := plainFrame(t, canvas)
	if got := frame[1][2]; got != 'B' {
		t.Errorf("builder glyph = %q, want B", got)
	}
	if got := frame[8][6]; got != glyphAgent {
		t.Errorf("classless agent glyph = %q, want %q", got, glyphAgent)
	}
	for _, position := range [][2]int{{14, 1}, {17, 2}} {
		if got := frame[position[1]][position[0]]; got != glyphStructure {
			t.Errorf("structure cell %v = %q", position, got)
		}
	}
	if got := frame[1][13]; got == glyphStructure {
		t.Error("structure drawn outside its footprint")
	}
}

func TestPicking(t *testing.T) {
	canvas := newTestCanvas()
	canvas.SyncAgents(map[string]field.Agent{
		"agent-1": {ID: "agent-1", Position: geometry.Vec2{X: 1, Z: 1}},
	}, nil)
	canvas.SyncStructures(map[string]field.Structure{
		"hq":    {ID: "hq", Position: geometry.Vec2{X: 8, Z: 2}, Width: 2, Depth: 2},
		"kiosk": {ID: "kiosk", Position: geometry.Vec2{X: 1.2, Z: 7.3}, Width: 0.1, Depth: 0.1},
	}, "hq")

	if id, found := canvas.HitAgent(2, 1); !found || id != "agent-1" {
		t.Errorf("HitAgent(2, 1) = %q, %v", id, found)
	}
	if _, found := canvas.HitAgent(3, 1); found {
		t.Error("HitAgent matched an empty cell")
	}
	if id, found := canvas.StructureAt(scene.Point{X: 15, Y: 2}); !found || id != "hq" {
		t.Errorf("StructureAt = %q, %v", id, found)
	}
	if id, found := canvas.HitStructure(2, 7); !found || id != "kiosk" {
		t.Errorf("sub-cell structure not pickable in its cell: %q, %v", id, found)
	}
	if _, found := canvas.HitStructure(13, 1); found {
		t.Error("HitStructure matched outside the footprint")
	}
}

func TestDisposeTwice(t *testing.T) {
	canvas := newTestCanvas()
	area, _ := canvas.CreateArea(rectArea("a", geometry.Vec2{}, 2, 2, 1), areaengine.AreaStyle{})
	preview, _ := canvas.CreatePreview(geometry.Vec2{}, geometry.Circle{Radius: 1})
	handle, _ := canvas.CreateHandle(areaengine.ResizeHandle{AreaID: "a", Type: geometry.HandleMove})
	if canvas.VisualCount() != 3 {
		t.Fatalf("VisualCount = %d, want 3", canvas.VisualCount())
	}

	for _, visual := range []areaengine.Visual{area, preview, handle} {
		if err := visual.Dispose(); err != nil {
			t.Errorf("first Dispose: %v", err)
		}
		if err := visual.Dispose(); !errors.Is(err, ErrDisposed) {
			t.Errorf("second Dispose error = %v, want ErrDisposed", err)
		}
	}
	if err := area.Update(rectArea("a", geometry.Vec2{}, 3, 3, 1), areaengine.AreaStyle{}); !errors.Is(err, ErrDisposed) {
		t.Errorf("Update after Dispose error = %v, want ErrDisposed", err)
	}
	if canvas.VisualCount() != 0 {
		t.Errorf("VisualCount = %d after disposal, want 0", canvas.VisualCount())
	}
}

func TestPulse(t *testing.T) {
	canvas := newTestCanvas()
	canvas.SetPulse("a", true)
	if !canvas.pulses["a"] {
		t.Fatal("pulse not recorded")
	}
	canvas.SetPulse("a", false)
	canvas.SetPulse("never-pulsed", false)
	if len(canvas.pulses) != 0 {
		t.Errorf("pulses = %v after clearing", canvas.pulses)
	}
}

func TestFitLabel(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  string
	}{
		{"Zone", 10, "Zone"},
		{"Warehouse district", 6, "Wareh…"},
		{"Anything", 1, ""},
	}
	for _, test := range tests {
		if got := fitLabel(test.name, test.width); got != test.want {
			t.Errorf("fitLabel(%q, %d) = %q, want %q", test.name, test.width, got, test.want)
		}
	}
}

func TestEmptyViewportRendersNothing(t *testing.T) {
	canvas := New(tui.DefaultTheme, Viewport{Scale: 2})
	if frame := canvas.Render(); frame != "" {
		t.Errorf("Render = %q for a zero-size viewport", frame)
	}
}
