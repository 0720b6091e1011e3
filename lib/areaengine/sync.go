// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package areaengine

import (
	"slices"

	"github.com/bureau-foundation/fieldmap/lib/field"
)

// SyncFromStore reconciles the visual cache against the store by ID.
// Visuals of missing or archived areas are disposed; active areas get
// a visual created, or updated if the area changed. Running it twice
// in a row does nothing the second time.
func (engine *Engine) SyncFromStore() {
	if engine.disposed {
		return
	}
	state := engine.store.State()

	for areaID := range engine.visuals {
		if area, exists := state.Areas[areaID]; !exists || area.Archived {
			engine.RemoveAreaMesh(areaID)
		}
	}
	for _, area := range state.ActiveAreas() {
		engine.RenderArea(area)
	}
	if engine.selectedID != "" {
		if area, exists := state.Areas[engine.selectedID]; !exists || area.Archived {
			engine.selectedID = ""
			engine.clearHandles()
		}
	}
}

// RenderAllAreas disposes every area visual and rebuilds the set from
// the store.
func (engine *Engine) RenderAllAreas() {
	if engine.disposed {
		return
	}
	for areaID, entry := range engine.visuals {
		engine.disposeQuietly(entry.visual, "area", areaID)
	}
	clear(engine.visuals)
	state := engine.store.State()
	for _, area := range state.ActiveAreas() {
		engine.RenderArea(area)
	}
	if area, exists := state.Areas[engine.selectedID]; !exists || area.Archived {
		engine.selectedID = ""
	}
	engine.rebuildHandles()
}

// RenderArea makes area visible: a new visual if it has none, an
// update if its visual is out of date. Archived areas are removed
// instead.
func (engine *Engine) RenderArea(area field.Area) {
	if engine.disposed {
		return
	}
	if area.Archived {
		engine.RemoveAreaMesh(area.ID)
		return
	}
	if _, exists := engine.visuals[area.ID]; exists {
		engine.UpdateAreaMesh(area)
		return
	}
	style := engine.styleFor(area.ID)
	visual, err := engine.renderer.CreateArea(area, style)
	if err != nil {
		engine.logger.Warn("creating area visual", "area", area.ID, "error", err)
		return
	}
	engine.visuals[area.ID] = &areaEntry{area: area.Clone(), style: style, visual: visual}
}

// UpdateAreaMesh brings an existing visual up to date with area. If
// the area has no visual yet one is created. When the selected area
// moves or changes size its handles follow.
func (engine *Engine) UpdateAreaMesh(area field.Area) {
	if engine.disposed {
		return
	}
	entry, exists := engine.visuals[area.ID]
	if !exists {
		engine.RenderArea(area)
		return
	}
	if area.Archived {
		engine.RemoveAreaMesh(area.ID)
		return
	}
	style := engine.styleFor(area.ID)
	if sameArea(entry.area, area) && style == entry.style {
		return
	}
	geometryChanged := entry.area.Center != area.Center || entry.area.Shape != area.Shape
	if err := entry.visual.Update(area, style); err != nil {
		engine.logger.Warn("updating area visual", "area", area.ID, "error", err)
		return
	}
	entry.area = area.Clone()
	entry.style = style
	if geometryChanged && area.ID == engine.selectedID {
		engine.rebuildHandles()
	}
}

// RemoveAreaMesh disposes the visual for areaID, and its handles if
// it was selected. Unknown IDs are ignored.
func (engine *Engine) RemoveAreaMesh(areaID string) {
	entry, exists := engine.visuals[areaID]
	if !exists {
		return
	}
	engine.disposeQuietly(entry.visual, "area", areaID)
	delete(engine.visuals, areaID)
	if areaID == engine.selectedID {
		engine.clearHandles()
	}
}

// VisualCount returns the number of area visuals the engine holds.
func (engine *Engine) VisualCount() int {
	return len(engine.visuals)
}

func sameArea(a, b field.Area) bool {
	return a.ID == b.ID &&
		a.Shape == b.Shape &&
		a.Center == b.Center &&
		a.Color == b.Color &&
		a.Name == b.Name &&
		a.ZIndex == b.ZIndex &&
		a.Archived == b.Archived &&
		slices.Equal(a.AssignedAgentIDs, b.AssignedAgentIDs) &&
		slices.Equal(a.Directories, b.Directories)
}
