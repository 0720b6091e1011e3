// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"

	"github.com/bureau-foundation/fieldmap/lib/feed"
	"github.com/bureau-foundation/fieldmap/lib/field"
)

// entry is one entity with its canonical encoding.
type entry struct {
	raw   []byte
	frame feed.Frame
}

// index keys a snapshot's entities by ID. Later duplicates win.
type index struct {
	areas      map[string]entry
	agents     map[string]entry
	structures map[string]entry
}

func encode(value any) []byte {
	// Entities are plain structs of strings, numbers and slices;
	// encoding cannot fail.
	raw, _ := json.Marshal(value)
	return raw
}

func buildIndex(snapshot Snapshot) index {
	built := index{
		areas:      make(map[string]entry, len(snapshot.Areas)),
		agents:     make(map[string]entry, len(snapshot.Agents)),
		structures: make(map[string]entry, len(snapshot.Structures)),
	}
	for _, record := range snapshot.Areas {
		if record.ID == "" {
			continue
		}
		built.areas[record.ID] = entry{
			raw:   encode(record),
			frame: feed.Frame{Type: feed.TypePutArea, ID: record.ID, Area: &record},
		}
	}
	for _, agent := range snapshot.Agents {
		if agent.ID != "" {
			built.agents[agent.ID] = entry{raw: encode(agent), frame: feed.PutAgent(agent)}
		}
	}
	for _, structure := range snapshot.Structures {
		if structure.ID != "" {
			built.structures[structure.ID] = entry{raw: encode(structure), frame: feed.PutStructure(structure)}
		}
	}
	return built
}

// diffEntries appends puts for new or changed entries, then removes,
// each in ID order.
func diffEntries(frames []feed.Frame, previous, current map[string]entry, removeType feed.FrameType) []feed.Frame {
	for _, id := range slices.Sorted(maps.Keys(current)) {
		old, exists := previous[id]
		if !exists || !bytes.Equal(old.raw, current[id].raw) {
			frames = append(frames, current[id].frame)
		}
	}
	for _, id := range slices.Sorted(maps.Keys(previous)) {
		if _, exists := current[id]; !exists {
			frames = append(frames, feed.Remove(removeType, id))
		}
	}
	return frames
}

// Diff returns the frames that turn previous into current. Entities
// whose canonical encoding is unchanged produce no frame. Selection
// frames come last so they refer to entities that exist.
func Diff(previous, current Snapshot) []feed.Frame {
	before, after := buildIndex(previous), buildIndex(current)

	var frames []feed.Frame
	frames = diffEntries(frames, before.structures, after.structures, feed.TypeRemoveStructure)
	frames = diffEntries(frames, before.agents, after.agents, feed.TypeRemoveAgent)
	frames = diffEntries(frames, before.areas, after.areas, feed.TypeRemoveArea)

	if !sameSelection(previous.SelectedAgents, current.SelectedAgents) {
		frames = append(frames, feed.Frame{Type: feed.TypeSelectAgents, AgentIDs: slices.Clone(current.SelectedAgents)})
	}
	if previous.SelectedStructure != current.SelectedStructure {
		frames = append(frames, feed.Frame{Type: feed.TypeSelectStructure, ID: current.SelectedStructure})
	}
	return frames
}

func sameSelection(a, b []string) bool {
	a, b = slices.Clone(a), slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(slices.Compact(a), slices.Compact(b))
}

// Frames returns the frames that load snapshot into an empty store:
// a reset followed by a put for every entity.
func Frames(snapshot Snapshot) []feed.Frame {
	return append([]feed.Frame{{Type: feed.TypeReset}}, Diff(Snapshot{}, snapshot)...)
}

// FromState captures a store state as a snapshot, for saving the
// current field.
func FromState(state field.State) Snapshot {
	var snapshot Snapshot
	for _, id := range slices.Sorted(maps.Keys(state.Areas)) {
		snapshot.Areas = append(snapshot.Areas, state.Areas[id].Record())
	}
	for _, id := range slices.Sorted(maps.Keys(state.Agents)) {
		snapshot.Agents = append(snapshot.Agents, state.Agents[id])
	}
	for _, id := range slices.Sorted(maps.Keys(state.Structures)) {
		snapshot.Structures = append(snapshot.Structures, state.Structures[id])
	}
	snapshot.SelectedAgents = slices.Sorted(maps.Keys(state.SelectedAgentIDs))
	snapshot.SelectedStructure = state.SelectedStructureID
	return snapshot
}
