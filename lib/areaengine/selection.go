// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package areaengine

import (
	"math"

	"github.com/bureau-foundation/fieldmap/lib/field"
	"github.com/bureau-foundation/fieldmap/lib/geometry"
)

// AreaAt returns the topmost non-archived area containing position.
// Higher z-index wins.
func (engine *Engine) AreaAt(position geometry.Vec2) (field.Area, bool) {
	if engine.disposed {
		return field.Area{}, false
	}
	areas := engine.store.State().ActiveAreas()
	for index := len(areas) - 1; index >= 0; index-- {
		if areas[index].Contains(position) {
			return areas[index], true
		}
	}
	return field.Area{}, false
}

// HighlightArea selects an area, or clears the selection when areaID
// is empty or does not name an active area. Every area is restyled and
// the selected area's handles are rebuilt.
func (engine *Engine) HighlightArea(areaID string) {
	if engine.disposed {
		return
	}
	if area, exists := engine.store.State().Areas[areaID]; !exists || area.Archived {
		areaID = ""
	}
	engine.selectedID = areaID
	engine.restyleAll()
	engine.rebuildHandles()
}

// SelectedAreaID returns the highlighted area, or "".
func (engine *Engine) SelectedAreaID() string {
	return engine.selectedID
}

// SetBrightness sets the multiplier applied to every area's opacity,
// clamped to [MinBrightness, MaxBrightness], and restyles all areas.
// NaN is ignored.
func (engine *Engine) SetBrightness(brightness float64) {
	if engine.disposed || math.IsNaN(brightness) {
		return
	}
	brightness = clampBrightness(brightness)
	if brightness == engine.brightness {
		return
	}
	engine.brightness = brightness
	engine.restyleAll()
}

// Brightness returns the current multiplier.
func (engine *Engine) Brightness() float64 {
	return engine.brightness
}

func (engine *Engine) styleFor(areaID string) AreaStyle {
	base := engine.idleOpacity
	selected := areaID != "" && areaID == engine.selectedID
	if selected {
		base = engine.selectedOpacity
	}
	return AreaStyle{
		Opacity:  min(max(base*engine.brightness, 0), 1),
		Selected: selected,
	}
}

func (engine *Engine) restyleAll() {
	for areaID, entry := range engine.visuals {
		style := engine.styleFor(areaID)
		if style == entry.style {
			continue
		}
		if err := entry.visual.Update(entry.area, style); err != nil {
			engine.logger.Warn("restyling area", "area", areaID, "error", err)
			continue
		}
		entry.style = style
	}
}

// ResizeHandles returns the handles of the selected area, corners (or
// radius) first and the move handle last.
func (engine *Engine) ResizeHandles() []ResizeHandle {
	handles := make([]ResizeHandle, len(engine.handles))
	for index, entry := range engine.handles {
		handles[index] = entry.handle
	}
	return handles
}

// HandleAt returns the first handle within tolerance of position.
func (engine *Engine) HandleAt(position geometry.Vec2, tolerance float64) (ResizeHandle, bool) {
	for _, entry := range engine.handles {
		offset := position.Sub(entry.handle.Position)
		if math.Abs(offset.X) <= tolerance && math.Abs(offset.Z) <= tolerance {
			return entry.handle, true
		}
	}
	return ResizeHandle{}, false
}

func (engine *Engine) clearHandles() {
	for _, entry := range engine.handles {
		engine.disposeQuietly(entry.visual, "handle", entry.handle.AreaID+"/"+string(entry.handle.Type))
	}
	engine.handles = nil
}

// rebuildHandles destroys every handle and creates fresh ones for the
// selected area, if any.
func (engine *Engine) rebuildHandles() {
	engine.clearHandles()
	if engine.selectedID == "" {
		return
	}
	area, exists := engine.store.State().Areas[engine.selectedID]
	if !exists || area.Archived {
		return
	}
	for _, placement := range geometry.HandlePlacements(area.Center, area.Shape) {
		handle := ResizeHandle{AreaID: area.ID, Type: placement.Type, Position: placement.Position}
		visual, err := engine.renderer.CreateHandle(handle)
		if err != nil {
			engine.logger.Warn("creating resize handle",
				"area", area.ID,
				"handle", string(placement.Type),
				"error", err,
			)
			continue
		}
		engine.handles = append(engine.handles, handleEntry{handle: handle, visual: visual})
	}
}
