// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenesync

import (
	"github.com/bureau-foundation/fieldmap/lib/field"
	"github.com/bureau-foundation/fieldmap/lib/fingerprint"
	"github.com/bureau-foundation/fieldmap/lib/geometry"
)

// AgentFingerprint covers every agent field that changes how an agent
// is drawn, plus whether it is selected.
func AgentFingerprint(state field.State) fingerprint.Fingerprint {
	return fingerprint.Compute(state.Agents, func(hasher *fingerprint.Hasher, agent field.Agent) {
		hasher.String(agent.Name)
		hasher.Vec(agent.Position)
		hasher.String(agent.Status)
		hasher.String(agent.Class)
		hasher.Int(agent.TaskCount)
		hasher.Bool(state.AgentSelected(agent.ID))
	})
}

// AreaFingerprint covers area geometry, styling, stacking and the
// archived flag. Assigned agents and directories are not drawn and do
// not participate.
func AreaFingerprint(state field.State) fingerprint.Fingerprint {
	return fingerprint.Compute(state.Areas, func(hasher *fingerprint.Hasher, area field.Area) {
		hasher.String(string(area.Kind()))
		hasher.Vec(area.Center)
		switch shape := area.Shape.(type) {
		case geometry.Rect:
			hasher.Float(shape.Width)
			hasher.Float(shape.Height)
		case geometry.Circle:
			hasher.Float(shape.Radius)
		}
		hasher.String(area.Color)
		hasher.String(area.Name)
		hasher.Int(area.ZIndex)
		hasher.Bool(area.Archived)
	})
}

// StructureFingerprint covers structure placement, footprint and
// styling, plus whether it is the selected structure.
func StructureFingerprint(state field.State) fingerprint.Fingerprint {
	return fingerprint.Compute(state.Structures, func(hasher *fingerprint.Hasher, structure field.Structure) {
		hasher.String(structure.Name)
		hasher.String(structure.Kind)
		hasher.Vec(structure.Position)
		hasher.Float(structure.Width)
		hasher.Float(structure.Depth)
		hasher.String(structure.Color)
		hasher.String(structure.Status)
		hasher.Bool(structure.ID == state.SelectedStructureID)
	})
}
