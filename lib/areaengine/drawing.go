// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package areaengine

import (
	"fmt"

	"github.com/bureau-foundation/fieldmap/lib/field"
	"github.com/bureau-foundation/fieldmap/lib/geometry"
)

// SetDrawingTool selects the shape the next draw gesture creates. An
// empty kind puts the engine back in select mode. Changing the tool
// cancels a gesture in progress. Unknown kinds are ignored.
func (engine *Engine) SetDrawingTool(kind geometry.Kind) {
	if engine.disposed {
		return
	}
	if kind != "" && kind != geometry.KindRectangle && kind != geometry.KindCircle {
		return
	}
	if kind != engine.tool {
		engine.CancelDrawing()
	}
	engine.tool = kind
}

// DrawingTool returns the active tool, or "" in select mode.
func (engine *Engine) DrawingTool() geometry.Kind {
	return engine.tool
}

// IsDrawing reports whether a draw gesture is in progress.
func (engine *Engine) IsDrawing() bool {
	return engine.drawing
}

// StartDrawing anchors a draw gesture at position. Returns false when
// no tool is active or another gesture is already running.
func (engine *Engine) StartDrawing(position geometry.Vec2) bool {
	if engine.disposed || engine.tool == "" || engine.drawing || engine.resizing {
		return false
	}
	engine.drawing = true
	engine.anchor = position
	return true
}

// gestureShape returns the shape the current gesture would create if
// released at position.
func (engine *Engine) gestureShape(position geometry.Vec2) (geometry.Vec2, geometry.Shape) {
	if engine.tool == geometry.KindCircle {
		return geometry.CircleFromDrag(engine.anchor, position)
	}
	return geometry.RectFromCorners(engine.anchor, position)
}

// UpdateDrawing moves the preview to follow the pointer. Previews
// smaller than [geometry.PreviewThreshold] are hidden.
func (engine *Engine) UpdateDrawing(position geometry.Vec2) {
	if !engine.drawing {
		return
	}
	engine.disposeQuietly(engine.preview, "preview", "")
	engine.preview = nil

	center, shape := engine.gestureShape(position)
	if !geometry.PreviewVisible(shape) {
		return
	}
	preview, err := engine.renderer.CreatePreview(center, shape)
	if err != nil {
		engine.logger.Warn("creating draw preview", "error", err)
		return
	}
	engine.preview = preview
}

// FinishDrawing ends the gesture at position. If the shape reaches the
// minimum size it is committed to the store as a new area, rendered,
// and passed to the creation callback. Returns the new area and true,
// or false when nothing was created.
func (engine *Engine) FinishDrawing(position geometry.Vec2) (field.Area, bool) {
	if !engine.drawing {
		return field.Area{}, false
	}
	center, shape := engine.gestureShape(position)
	engine.CancelDrawing()

	if !geometry.MeetsMinimum(shape) {
		return field.Area{}, false
	}

	// Default names never repeat, even after removals.
	engine.drawn = max(engine.drawn, len(engine.store.State().Areas)) + 1
	area := field.Area{
		ID:     engine.newID(),
		Shape:  shape,
		Center: center,
		Color:  engine.palette[(engine.drawn-1)%len(engine.palette)],
		Name:   fmt.Sprintf("%s %d", engine.namePrefix, engine.drawn),
		ZIndex: engine.store.NextZIndex(),
	}
	engine.store.AddArea(area)
	engine.RenderArea(area)

	if engine.onAreaCreated != nil {
		engine.onAreaCreated(area)
	}
	return area, true
}

// CancelDrawing abandons the gesture and removes the preview. Calling
// it with no gesture in progress does nothing.
func (engine *Engine) CancelDrawing() {
	engine.disposeQuietly(engine.preview, "preview", "")
	engine.preview = nil
	engine.drawing = false
}
