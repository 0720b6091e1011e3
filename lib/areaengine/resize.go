// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package areaengine

import (
	"github.com/bureau-foundation/fieldmap/lib/field"
	"github.com/bureau-foundation/fieldmap/lib/geometry"
)

// StartResize begins dragging handle from position. The area is
// snapshotted so every update is computed from where the gesture
// began. Returns false when a draw gesture or another resize is in
// progress, the area is missing or archived, or the handle does not
// apply to the area's shape.
func (engine *Engine) StartResize(handle ResizeHandle, position geometry.Vec2) bool {
	if engine.disposed || engine.drawing || engine.resizing {
		return false
	}
	area, exists := engine.store.State().Areas[handle.AreaID]
	if !exists || area.Archived {
		return false
	}
	if !handleApplies(handle.Type, area.Kind()) {
		return false
	}
	engine.resizing = true
	engine.resizeHandle = handle.Type
	engine.resizeOriginalArea = area.Clone()
	engine.resizeStart = position
	return true
}

func handleApplies(handle geometry.HandleType, kind geometry.Kind) bool {
	switch {
	case handle == geometry.HandleMove:
		return true
	case handle.IsCorner():
		return kind == geometry.KindRectangle
	case handle == geometry.HandleRadius:
		return kind == geometry.KindCircle
	}
	return false
}

// IsResizing reports whether a resize or move gesture is in progress.
func (engine *Engine) IsResizing() bool {
	return engine.resizing
}

// ResizingAreaID returns the area being resized, or "".
func (engine *Engine) ResizingAreaID() string {
	if !engine.resizing {
		return ""
	}
	return engine.resizeOriginalArea.ID
}

// UpdateResize applies the gesture with the pointer at position. If
// the area vanished from the store mid-gesture the gesture ends.
func (engine *Engine) UpdateResize(position geometry.Vec2) {
	if !engine.resizing {
		return
	}
	original := engine.resizeOriginalArea
	if current, exists := engine.store.State().Areas[original.ID]; !exists || current.Archived {
		engine.resizing = false
		return
	}
	delta := position.Sub(engine.resizeStart)

	var patch field.AreaPatch
	switch {
	case engine.resizeHandle == geometry.HandleMove:
		center := original.Center.Add(delta)
		patch.Center = &center
	case engine.resizeHandle.IsCorner():
		rect, ok := original.Shape.(geometry.Rect)
		if !ok {
			return
		}
		patch.Shape = geometry.ResizeCorner(rect, engine.resizeHandle, delta)
	case engine.resizeHandle == geometry.HandleRadius:
		patch.Shape = geometry.ResizeRadius(original.Center, position)
	}

	if !engine.store.UpdateArea(original.ID, patch) {
		engine.resizing = false
		return
	}
	if updated, exists := engine.store.State().Areas[original.ID]; exists {
		engine.UpdateAreaMesh(updated)
	}
}

// FinishResize ends the gesture, leaving the area where the last
// update put it. Handles are rebuilt if the area is still selected.
// Calling it with no gesture in progress does nothing.
func (engine *Engine) FinishResize() {
	if !engine.resizing {
		return
	}
	areaID := engine.resizeOriginalArea.ID
	engine.resizing = false
	engine.resizeOriginalArea = field.Area{}
	if engine.selectedID == areaID {
		engine.rebuildHandles()
	}
}

// CancelResize ends the gesture and puts the area back the way it was
// when the gesture started.
func (engine *Engine) CancelResize() {
	if !engine.resizing {
		return
	}
	original := engine.resizeOriginalArea
	center := original.Center
	engine.store.UpdateArea(original.ID, field.AreaPatch{Center: &center, Shape: original.Shape})
	if restored, exists := engine.store.State().Areas[original.ID]; exists {
		engine.UpdateAreaMesh(restored)
	}
	engine.FinishResize()
}
