// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fieldstore

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/bureau-foundation/fieldmap/lib/field"
)

// Listener is called after the store changes. The state is only valid
// until the next mutation.
type Listener = func(state field.State)

type subscription struct {
	listener Listener
	active   bool
}

// Store holds the field state. The zero value is not usable; call
// [New].
type Store struct {
	logger *slog.Logger

	areas             map[string]field.Area
	agents            map[string]field.Agent
	structures        map[string]field.Structure
	selectedAgents    map[string]struct{}
	selectedStructure string

	nextZIndex int

	subscriptions []*subscription

	batchDepth int
	dirty      bool
}

// New creates an empty store. A nil logger discards.
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		logger:         logger,
		areas:          make(map[string]field.Area),
		agents:         make(map[string]field.Agent),
		structures:     make(map[string]field.Structure),
		selectedAgents: make(map[string]struct{}),
		nextZIndex:     1,
	}
}

// Subscribe registers listener and returns a function that removes
// it. Calling the returned function more than once is harmless. A
// listener removed while a notification is in progress is not called
// for the rest of that notification.
func (store *Store) Subscribe(listener Listener) func() {
	entry := &subscription{listener: listener, active: true}
	store.subscriptions = append(store.subscriptions, entry)
	return func() {
		if !entry.active {
			return
		}
		entry.active = false
		store.subscriptions = slices.DeleteFunc(store.subscriptions, func(candidate *subscription) bool {
			return candidate == entry
		})
	}
}

// State returns the current state. The maps are the store's own;
// callers must not modify them.
func (store *Store) State() field.State {
	return field.State{
		Areas:               store.areas,
		Agents:              store.agents,
		Structures:          store.structures,
		SelectedAgentIDs:    store.selectedAgents,
		SelectedStructureID: store.selectedStructure,
	}
}

// Batch runs fn and delivers at most one notification after the
// outermost Batch returns, and only if something changed.
func (store *Store) Batch(fn func()) {
	store.batchDepth++
	defer func() {
		store.batchDepth--
		if store.batchDepth == 0 && store.dirty {
			store.dirty = false
			store.notify()
		}
	}()
	fn()
}

// changed records a mutation and notifies unless a batch is open.
func (store *Store) changed() {
	if store.batchDepth > 0 {
		store.dirty = true
		return
	}
	store.notify()
}

func (store *Store) notify() {
	state := store.State()
	for _, entry := range slices.Clone(store.subscriptions) {
		if !entry.active {
			continue
		}
		entry.listener(state)
	}
}

// NextZIndex allocates a z-index above every z-index the store has
// seen.
func (store *Store) NextZIndex() int {
	value := store.nextZIndex
	store.nextZIndex++
	return value
}

func (store *Store) observeZIndex(zIndex int) {
	if zIndex >= store.nextZIndex {
		store.nextZIndex = zIndex + 1
	}
}

// AddArea inserts area, replacing any area with the same ID. Areas
// with no ID or no shape are ignored. Dimensions are clamped to the
// minimum size.
func (store *Store) AddArea(area field.Area) {
	if area.ID == "" || area.Shape == nil {
		store.logger.Debug("ignoring area without id or shape", "id", area.ID)
		return
	}
	area = area.Clone()
	area.Shape = area.Shape.Clamped()
	store.observeZIndex(area.ZIndex)
	store.areas[area.ID] = area
	store.changed()
}

// UpdateArea applies patch to the area with the given ID. Returns
// false, without notifying, if no such area exists or the patch is
// empty.
func (store *Store) UpdateArea(areaID string, patch field.AreaPatch) bool {
	area, exists := store.areas[areaID]
	if !exists || patch.IsEmpty() {
		return false
	}
	updated := area.Apply(patch)
	if patch.ZIndex != nil {
		store.observeZIndex(updated.ZIndex)
	}
	store.areas[areaID] = updated
	store.changed()
	return true
}

// Area returns the area with the given ID.
func (store *Store) Area(areaID string) (field.Area, bool) {
	area, exists := store.areas[areaID]
	return area, exists
}

// RemoveArea deletes an area outright. Returns false if it did not
// exist.
func (store *Store) RemoveArea(areaID string) bool {
	if _, exists := store.areas[areaID]; !exists {
		return false
	}
	delete(store.areas, areaID)
	store.changed()
	return true
}

// ArchiveArea marks an area archived. Returns false if the area does
// not exist or is already archived.
func (store *Store) ArchiveArea(areaID string) bool {
	return store.setArchived(areaID, true)
}

// RestoreArea clears an area's archived flag. Returns false if the
// area does not exist or is not archived.
func (store *Store) RestoreArea(areaID string) bool {
	return store.setArchived(areaID, false)
}

func (store *Store) setArchived(areaID string, archived bool) bool {
	area, exists := store.areas[areaID]
	if !exists || area.Archived == archived {
		return false
	}
	area.Archived = archived
	store.areas[areaID] = area
	store.changed()
	return true
}

// RaiseArea moves an area to the top of the stack by giving it a fresh
// z-index. Returns false if the area does not exist.
func (store *Store) RaiseArea(areaID string) bool {
	if _, exists := store.areas[areaID]; !exists {
		return false
	}
	zIndex := store.NextZIndex()
	return store.UpdateArea(areaID, field.AreaPatch{ZIndex: &zIndex})
}

// PutAgent inserts or replaces an agent. Agents without an ID are
// ignored.
func (store *Store) PutAgent(agent field.Agent) {
	if agent.ID == "" {
		return
	}
	store.agents[agent.ID] = agent
	store.changed()
}

// RemoveAgent deletes an agent and drops it from the selection.
// Returns false if it did not exist.
func (store *Store) RemoveAgent(agentID string) bool {
	if _, exists := store.agents[agentID]; !exists {
		return false
	}
	delete(store.agents, agentID)
	delete(store.selectedAgents, agentID)
	store.changed()
	return true
}

// PutStructure inserts or replaces a structure. Structures without an
// ID are ignored.
func (store *Store) PutStructure(structure field.Structure) {
	if structure.ID == "" {
		return
	}
	store.structures[structure.ID] = structure
	store.changed()
}

// RemoveStructure deletes a structure and clears the structure
// selection if it pointed at it. Returns false if it did not exist.
func (store *Store) RemoveStructure(structureID string) bool {
	if _, exists := store.structures[structureID]; !exists {
		return false
	}
	delete(store.structures, structureID)
	if store.selectedStructure == structureID {
		store.selectedStructure = ""
	}
	store.changed()
	return true
}

// SelectAgents replaces the agent selection. IDs of agents the store
// does not know are dropped.
func (store *Store) SelectAgents(agentIDs []string) {
	selection := make(map[string]struct{}, len(agentIDs))
	for _, agentID := range agentIDs {
		if _, exists := store.agents[agentID]; exists {
			selection[agentID] = struct{}{}
		}
	}
	if maps.Equal(selection, store.selectedAgents) {
		return
	}
	store.selectedAgents = selection
	store.changed()
}

// SelectStructure selects a structure, or clears the selection when
// structureID is empty. Unknown IDs are ignored.
func (store *Store) SelectStructure(structureID string) {
	if structureID != "" {
		if _, exists := store.structures[structureID]; !exists {
			return
		}
	}
	if structureID == store.selectedStructure {
		return
	}
	store.selectedStructure = structureID
	store.changed()
}

// Reset removes every entity and clears the selection. The z-index
// counter is kept so values are never reused.
func (store *Store) Reset() {
	store.areas = make(map[string]field.Area)
	store.agents = make(map[string]field.Agent)
	store.structures = make(map[string]field.Structure)
	store.selectedAgents = make(map[string]struct{})
	store.selectedStructure = ""
	store.changed()
}
