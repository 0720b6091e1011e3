// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fieldui

import (
	"fmt"

	"github.com/bureau-foundation/fieldmap/lib/callback"
	"github.com/bureau-foundation/fieldmap/lib/field"
	"github.com/bureau-foundation/fieldmap/lib/geometry"
)

// popupMaxWidth caps tooltip and context menu width in cells.
const popupMaxWidth = 40

// contextMenu is the popup opened by a right click. It stays until
// the next key press or click.
type contextMenu struct {
	lines   []string
	anchorX int
	anchorY int
}

// describeArea summarizes an area's shape and stacking.
func describeArea(area field.Area) []string {
	lines := []string{area.Name}
	switch shape := area.Shape.(type) {
	case geometry.Rect:
		lines = append(lines, fmt.Sprintf("rectangle %.1f x %.1f", shape.Width, shape.Height))
	case geometry.Circle:
		lines = append(lines, fmt.Sprintf("circle r %.1f", shape.Radius))
	}
	lines = append(lines, fmt.Sprintf("at (%.1f, %.1f)  z %d", area.Center.X, area.Center.Z, area.ZIndex))
	if count := len(area.AssignedAgentIDs); count > 0 {
		lines = append(lines, fmt.Sprintf("%d assigned", count))
	}
	return lines
}

func describeAgent(agent field.Agent) []string {
	name := agent.Name
	if name == "" {
		name = agent.ID
	}
	lines := []string{name}
	if agent.Class != "" {
		lines = append(lines, agent.Class)
	}
	status := agent.Status
	if status == "" {
		status = "idle"
	}
	lines = append(lines, fmt.Sprintf("%s, %d tasks", status, agent.TaskCount))
	return lines
}

func describeStructure(structure field.Structure) []string {
	name := structure.Name
	if name == "" {
		name = structure.ID
	}
	lines := []string{name}
	if structure.Kind != "" {
		lines = append(lines, structure.Kind)
	}
	if structure.Status != "" {
		lines = append(lines, structure.Status)
	}
	return lines
}

// contextMenuLines describes the target of a context menu event along
// with the keys that act on it.
func contextMenuLines(state field.State, event callback.Event) []string {
	if area, exists := state.Areas[event.TargetID]; exists && !area.Archived {
		return append(describeArea(area), "x archive  del remove  f raise")
	}
	if structure, exists := state.Structures[event.TargetID]; exists {
		return describeStructure(structure)
	}
	if agent, exists := state.Agents[event.TargetID]; exists {
		return describeAgent(agent)
	}
	return []string{
		fmt.Sprintf("ground (%.1f, %.1f)", event.Position.X, event.Position.Z),
		"r rectangle  c circle",
	}
}

// tooltipLines describes the hovered agent, or failing that the
// hovered structure. Returns nil when nothing is hovered.
func tooltipLines(state field.State, agentID, structureID string) []string {
	if agent, exists := state.Agents[agentID]; exists {
		return describeAgent(agent)
	}
	if structure, exists := state.Structures[structureID]; exists {
		return describeStructure(structure)
	}
	return nil
}
