// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package field

import (
	"cmp"
	"slices"
)

// State is a point-in-time snapshot of everything on the field. The
// maps belong to the store: readers must not modify them, and must not
// hold on to a State across store mutations.
type State struct {
	Areas      map[string]Area
	Agents     map[string]Agent
	Structures map[string]Structure

	// SelectedAgentIDs is the set of agents the operator has selected.
	SelectedAgentIDs map[string]struct{}

	// SelectedStructureID is the selected structure, or empty.
	SelectedStructureID string
}

// AgentSelected reports whether the agent is in the selection.
func (state State) AgentSelected(agentID string) bool {
	_, selected := state.SelectedAgentIDs[agentID]
	return selected
}

// ActiveAreas returns every non-archived area sorted by z-index
// ascending (paint order). Ties are broken by ID so the order is
// deterministic.
func (state State) ActiveAreas() []Area {
	areas := make([]Area, 0, len(state.Areas))
	for _, area := range state.Areas {
		if area.Archived {
			continue
		}
		areas = append(areas, area)
	}
	SortByZIndex(areas)
	return areas
}

// SortByZIndex sorts areas by z-index ascending, then by ID.
func SortByZIndex(areas []Area) {
	slices.SortFunc(areas, func(a, b Area) int {
		if order := cmp.Compare(a.ZIndex, b.ZIndex); order != 0 {
			return order
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
