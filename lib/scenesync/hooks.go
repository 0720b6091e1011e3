// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scenesync

import (
	"errors"
	"log/slog"

	"github.com/bureau-foundation/fieldmap/lib/clock"
	"github.com/bureau-foundation/fieldmap/lib/field"
	"github.com/bureau-foundation/fieldmap/lib/fingerprint"
)

// Store is the subscription side of the field store.
type Store interface {
	Subscribe(listener func(state field.State)) func()
	State() field.State
}

// AreaSyncer reconciles area visuals against the store. The area
// engine implements it.
type AreaSyncer interface {
	SyncFromStore()
}

// AgentSink redraws every agent.
type AgentSink interface {
	SyncAgents(agents map[string]field.Agent, selected map[string]struct{})
}

// StructureSink redraws every structure.
type StructureSink interface {
	SyncStructures(structures map[string]field.Structure, selectedID string)
}

// Options configures [Hooks]. Any sink may be nil, in which case that
// collection is not tracked.
type Options struct {
	Areas      AreaSyncer
	Agents     AgentSink
	Structures StructureSink

	Clock   clock.Clock
	Metrics *Metrics
	Logger  *slog.Logger
}

// Hooks subscribes to a store and resyncs each collection when its
// fingerprint changes.
type Hooks struct {
	options Options
	logger  *slog.Logger
	clock   clock.Clock

	agentTracker     fingerprint.Tracker
	areaTracker      fingerprint.Tracker
	structureTracker fingerprint.Tracker

	store       Store
	unsubscribe func()
	attached    bool
}

// ErrAttached is returned by [Hooks.Attach] when the hooks are
// already subscribed.
var ErrAttached = errors.New("scenesync: hooks already attached")

// New creates hooks. Nothing happens until [Hooks.Attach].
func New(options Options) *Hooks {
	hooks := &Hooks{options: options, logger: options.Logger, clock: options.Clock}
	if hooks.logger == nil {
		hooks.logger = slog.New(slog.DiscardHandler)
	}
	if hooks.clock == nil {
		hooks.clock = clock.Real()
	}
	return hooks
}

// Attach subscribes to store and runs a full sync of every collection.
func (hooks *Hooks) Attach(store Store) error {
	if hooks.attached {
		return ErrAttached
	}
	hooks.store = store
	hooks.attached = true
	hooks.unsubscribe = store.Subscribe(hooks.onChange)
	hooks.Resync()
	return nil
}

// Detach unsubscribes. Safe to call more than once.
func (hooks *Hooks) Detach() {
	if !hooks.attached {
		return
	}
	hooks.attached = false
	hooks.unsubscribe()
	hooks.unsubscribe = nil
	hooks.store = nil
}

// Resync forgets the previous fingerprints and syncs everything.
func (hooks *Hooks) Resync() {
	if !hooks.attached {
		return
	}
	hooks.agentTracker.Reset()
	hooks.areaTracker.Reset()
	hooks.structureTracker.Reset()
	hooks.onChange(hooks.store.State())
}

func (hooks *Hooks) onChange(state field.State) {
	if !hooks.attached {
		return
	}
	if hooks.options.Agents != nil {
		current := AgentFingerprint(state)
		hooks.check(CollectionAgents, &hooks.agentTracker, current, func() {
			hooks.options.Agents.SyncAgents(state.Agents, state.SelectedAgentIDs)
		})
	}
	if hooks.options.Areas != nil {
		current := AreaFingerprint(state)
		hooks.check(CollectionAreas, &hooks.areaTracker, current, hooks.options.Areas.SyncFromStore)
	}
	if hooks.options.Structures != nil {
		current := StructureFingerprint(state)
		hooks.check(CollectionStructures, &hooks.structureTracker, current, func() {
			hooks.options.Structures.SyncStructures(state.Structures, state.SelectedStructureID)
		})
	}
}

// check runs resync if current differs from the tracker's last value.
// A panicking resync is logged and its fingerprint forgotten so the
// next notification retries.
func (hooks *Hooks) check(collection string, tracker *fingerprint.Tracker, current fingerprint.Fingerprint, resync func()) {
	hooks.options.Metrics.observeCheck(collection)
	if !tracker.Observe(current) {
		return
	}
	start := hooks.clock.Now()
	defer func() {
		if recovered := recover(); recovered != nil {
			tracker.Reset()
			hooks.logger.Error("scene resync panicked",
				"collection", collection,
				"panic", recovered,
			)
			return
		}
		hooks.options.Metrics.observeResync(collection, hooks.clock.Now().Sub(start))
	}()
	resync()
}
