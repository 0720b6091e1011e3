// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scene

import (
	"github.com/bureau-foundation/fieldmap/lib/areaengine"
	"github.com/bureau-foundation/fieldmap/lib/callback"
	"github.com/bureau-foundation/fieldmap/lib/geometry"
)

// Point is a pointer position: world coordinates for geometry and
// the screen cell for pickers and popups.
type Point struct {
	World geometry.Vec2
	X     int
	Y     int
}

func (scene *Scene) event(kind callback.Kind, targetID string, point Point) callback.Event {
	return callback.Event{
		Kind:     kind,
		TargetID: targetID,
		Position: point.World,
		ScreenX:  point.X,
		ScreenY:  point.Y,
	}
}

func (scene *Scene) structureAt(point Point) (string, bool) {
	if scene.sinks.Picker != nil {
		return scene.sinks.Picker.StructureAt(point)
	}
	for structureID, structure := range scene.store.State().Structures {
		if structure.Contains(point.World) {
			return structureID, true
		}
	}
	return "", false
}

func (scene *Scene) agentAt(point Point) (string, bool) {
	if scene.sinks.Picker != nil {
		return scene.sinks.Picker.AgentAt(point)
	}
	for agentID, agent := range scene.store.State().Agents {
		if agent.Position.Distance(point.World) <= scene.options.HandleTolerance {
			return agentID, true
		}
	}
	return "", false
}

// PointerDown handles a primary button press.
func (scene *Scene) PointerDown(point Point) {
	if !scene.Attached() || scene.gesture != gestureNone {
		return
	}
	engine := scene.engine

	if engine.DrawingTool() != "" {
		if engine.StartDrawing(point.World) {
			scene.gesture = gestureDraw
		}
		return
	}

	if handle, found := engine.HandleAt(point.World, scene.options.HandleTolerance); found {
		if engine.StartResize(handle, point.World) {
			scene.gesture = gestureResize
		}
		return
	}

	if area, found := engine.AreaAt(point.World); found {
		engine.HighlightArea(area.ID)
		scene.trigger(scene.event(callback.AreaClick, area.ID, point))
		move := areaengine.ResizeHandle{AreaID: area.ID, Type: geometry.HandleMove, Position: area.Center}
		if engine.StartResize(move, point.World) {
			scene.gesture = gestureResize
		}
		return
	}

	engine.HighlightArea("")
	if structureID, found := scene.structureAt(point); found {
		scene.trigger(scene.event(callback.BuildingClick, structureID, point))
		return
	}
	scene.trigger(scene.event(callback.GroundClick, "", point))
}

// PointerMove drives the active gesture, or tracks hover when there is
// none.
func (scene *Scene) PointerMove(point Point) {
	if !scene.Attached() {
		return
	}
	switch scene.gesture {
	case gestureDraw:
		scene.engine.UpdateDrawing(point.World)
		return
	case gestureResize:
		scene.engine.UpdateResize(point.World)
		if !scene.engine.IsResizing() {
			scene.gesture = gestureNone
		}
		return
	}
	scene.updateHover(point)
}

// PointerUp ends the active gesture.
func (scene *Scene) PointerUp(point Point) {
	if !scene.Attached() {
		return
	}
	switch scene.gesture {
	case gestureDraw:
		scene.engine.FinishDrawing(point.World)
	case gestureResize:
		scene.engine.UpdateResize(point.World)
		scene.engine.FinishResize()
	}
	scene.gesture = gestureNone
}

// CancelGesture abandons a draw gesture, or reverts a resize.
func (scene *Scene) CancelGesture() {
	if !scene.Attached() {
		return
	}
	switch scene.gesture {
	case gestureDraw:
		scene.engine.CancelDrawing()
	case gestureResize:
		scene.engine.CancelResize()
	}
	scene.gesture = gestureNone
}

// Gesturing reports whether a draw or resize gesture is in progress.
func (scene *Scene) Gesturing() bool {
	return scene.gesture != gestureNone
}

// DoubleClick fires AreaDoubleClick or BuildingDoubleClick for the
// entity under the pointer.
func (scene *Scene) DoubleClick(point Point) {
	if !scene.Attached() {
		return
	}
	if area, found := scene.engine.AreaAt(point.World); found {
		scene.trigger(scene.event(callback.AreaDoubleClick, area.ID, point))
		return
	}
	if structureID, found := scene.structureAt(point); found {
		scene.trigger(scene.event(callback.BuildingDoubleClick, structureID, point))
	}
}

// ContextMenu fires a ContextMenu event naming the area, structure or
// agent under the pointer, or no target over empty ground.
func (scene *Scene) ContextMenu(point Point) {
	if !scene.Attached() {
		return
	}
	targetID := ""
	if area, found := scene.engine.AreaAt(point.World); found {
		targetID = area.ID
	} else if structureID, found := scene.structureAt(point); found {
		targetID = structureID
	} else if agentID, found := scene.agentAt(point); found {
		targetID = agentID
	}
	scene.trigger(scene.event(callback.ContextMenu, targetID, point))
}

func (scene *Scene) updateHover(point Point) {
	agentID, _ := scene.agentAt(point)
	if agentID != scene.hoverAgent {
		if scene.hoverAgent != "" {
			scene.trigger(scene.event(callback.AgentHoverLeave, scene.hoverAgent, point))
		}
		scene.hoverAgent = agentID
		if agentID != "" {
			scene.trigger(scene.event(callback.AgentHoverEnter, agentID, point))
		}
	}

	structureID, _ := scene.structureAt(point)
	if structureID != scene.hoverStructure {
		if scene.hoverStructure != "" {
			scene.trigger(scene.event(callback.StructureHoverLeave, scene.hoverStructure, point))
		}
		scene.hoverStructure = structureID
		if structureID != "" {
			scene.trigger(scene.event(callback.StructureHoverEnter, structureID, point))
		}
	}
}

// Hovered returns the agent and structure under the pointer.
func (scene *Scene) Hovered() (agentID, structureID string) {
	return scene.hoverAgent, scene.hoverStructure
}
