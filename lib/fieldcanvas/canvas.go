// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fieldcanvas

import (
	"errors"
	"maps"

	"github.com/bureau-foundation/fieldmap/lib/areaengine"
	"github.com/bureau-foundation/fieldmap/lib/field"
	"github.com/bureau-foundation/fieldmap/lib/geometry"
	"github.com/bureau-foundation/fieldmap/lib/scene"
	"github.com/bureau-foundation/fieldmap/lib/tui"
)

// ErrDisposed is returned when a visual is disposed or updated after
// it was already disposed.
var ErrDisposed = errors.New("fieldcanvas: visual already disposed")

// Canvas is a terminal renderer for the field.
type Canvas struct {
	theme    tui.Theme
	viewport Viewport

	areas   map[*areaVisual]struct{}
	outline map[*previewVisual]struct{}
	handles map[*handleVisual]struct{}

	agents            map[string]field.Agent
	selectedAgents    map[string]struct{}
	structures        map[string]field.Structure
	selectedStructure string

	pulses map[string]bool
}

// New creates a canvas with the given theme and viewport.
func New(theme tui.Theme, viewport Viewport) *Canvas {
	return &Canvas{
		theme:          theme,
		viewport:       viewport,
		areas:          make(map[*areaVisual]struct{}),
		outline:        make(map[*previewVisual]struct{}),
		handles:        make(map[*handleVisual]struct{}),
		agents:         make(map[string]field.Agent),
		selectedAgents: make(map[string]struct{}),
		structures:     make(map[string]field.Structure),
		pulses:         make(map[string]bool),
	}
}

// Viewport returns a pointer to the canvas's viewport for panning and
// zooming.
func (canvas *Canvas) Viewport() *Viewport {
	return &canvas.viewport
}

type areaVisual struct {
	canvas   *Canvas
	area     field.Area
	style    areaengine.AreaStyle
	disposed bool
}

func (visual *areaVisual) Dispose() error {
	if visual.disposed {
		return ErrDisposed
	}
	visual.disposed = true
	delete(visual.canvas.areas, visual)
	return nil
}

func (visual *areaVisual) Update(area field.Area, style areaengine.AreaStyle) error {
	if visual.disposed {
		return ErrDisposed
	}
	visual.area = area.Clone()
	visual.style = style
	return nil
}

type previewVisual struct {
	canvas   *Canvas
	center   geometry.Vec2
	shape    geometry.Shape
	disposed bool
}

func (visual *previewVisual) Dispose() error {
	if visual.disposed {
		return ErrDisposed
	}
	visual.disposed = true
	delete(visual.canvas.outline, visual)
	return nil
}

type handleVisual struct {
	canvas   *Canvas
	handle   areaengine.ResizeHandle
	disposed bool
}

func (visual *handleVisual) Dispose() error {
	if visual.disposed {
		return ErrDisposed
	}
	visual.disposed = true
	delete(visual.canvas.handles, visual)
	return nil
}

// CreateArea implements [areaengine.Renderer].
func (canvas *Canvas) CreateArea(area field.Area, style areaengine.AreaStyle) (areaengine.AreaVisual, error) {
	visual := &areaVisual{canvas: canvas, area: area.Clone(), style: style}
	canvas.areas[visual] = struct{}{}
	return visual, nil
}

// CreatePreview implements [areaengine.Renderer].
func (canvas *Canvas) CreatePreview(center geometry.Vec2, shape geometry.Shape) (areaengine.Visual, error) {
	if shape == nil {
		return nil, errors.New("fieldcanvas: preview without a shape")
	}
	visual := &previewVisual{canvas: canvas, center: center, shape: shape}
	canvas.outline[visual] = struct{}{}
	return visual, nil
}

// CreateHandle implements [areaengine.Renderer].
func (canvas *Canvas) CreateHandle(handle areaengine.ResizeHandle) (areaengine.Visual, error) {
	visual := &handleVisual{canvas: canvas, handle: handle}
	canvas.handles[visual] = struct{}{}
	return visual, nil
}

// SyncAgents replaces the agents to draw.
func (canvas *Canvas) SyncAgents(agents map[string]field.Agent, selected map[string]struct{}) {
	canvas.agents = maps.Clone(agents)
	canvas.selectedAgents = maps.Clone(selected)
}

// SyncStructures replaces the structures to draw.
func (canvas *Canvas) SyncStructures(structures map[string]field.Structure, selectedID string) {
	canvas.structures = maps.Clone(structures)
	canvas.selectedStructure = selectedID
}

// SetPulse turns an area's creation indicator on or off.
func (canvas *Canvas) SetPulse(areaID string, on bool) {
	if on {
		canvas.pulses[areaID] = true
		return
	}
	delete(canvas.pulses, areaID)
}

// HitAgent returns the agent drawn at a cell.
func (canvas *Canvas) HitAgent(x, y int) (string, bool) {
	best := ""
	for agentID, agent := range canvas.agents {
		agentX, agentY := canvas.viewport.WorldToCell(agent.Position)
		if agentX == x && agentY == y && (best == "" || agentID < best) {
			best = agentID
		}
	}
	return best, best != ""
}

// HitStructure returns the structure whose footprint covers a cell.
// Where footprints overlap, the one drawn last (highest ID) wins.
func (canvas *Canvas) HitStructure(x, y int) (string, bool) {
	position := canvas.viewport.CellToWorld(x, y)
	best := ""
	for structureID, structure := range canvas.structures {
		if canvas.structureCovers(structure, x, y, position) && structureID > best {
			best = structureID
		}
	}
	return best, best != ""
}

// structureCovers reports whether a structure is drawn in a cell.
// Footprints smaller than a cell still occupy the cell they sit in.
func (canvas *Canvas) structureCovers(structure field.Structure, x, y int, position geometry.Vec2) bool {
	if structure.Contains(position) {
		return true
	}
	anchorX, anchorY := canvas.viewport.WorldToCell(structure.Position)
	return anchorX == x && anchorY == y
}

// AgentAt implements [scene.Picker].
func (canvas *Canvas) AgentAt(point scene.Point) (string, bool) {
	return canvas.HitAgent(point.X, point.Y)
}

// StructureAt implements [scene.Picker].
func (canvas *Canvas) StructureAt(point scene.Point) (string, bool) {
	return canvas.HitStructure(point.X, point.Y)
}

// HandleTolerance is the handle pick distance that makes a handle
// grabbable anywhere in its own cell at the current zoom.
func (canvas *Canvas) HandleTolerance() float64 {
	size := canvas.viewport.CellSize()
	return max(size.X, size.Z) / 2
}

// VisualCount returns the number of live area, preview and handle
// visuals.
func (canvas *Canvas) VisualCount() int {
	return len(canvas.areas) + len(canvas.outline) + len(canvas.handles)
}
