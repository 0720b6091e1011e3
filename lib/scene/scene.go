// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scene

import (
	"errors"
	"log/slog"
	"time"

	"github.com/bureau-foundation/fieldmap/lib/areaengine"
	"github.com/bureau-foundation/fieldmap/lib/callback"
	"github.com/bureau-foundation/fieldmap/lib/clock"
	"github.com/bureau-foundation/fieldmap/lib/field"
	"github.com/bureau-foundation/fieldmap/lib/scenesync"
)

// DefaultFlashDuration is how long a newly created area pulses.
const DefaultFlashDuration = 1500 * time.Millisecond

// DefaultHandleTolerance is the pick distance for resize handles, in
// world units.
const DefaultHandleTolerance = 0.5

var (
	// ErrAttached is returned when Attach is called twice.
	ErrAttached = errors.New("scene: already attached")

	// ErrDisposed is returned when Attach is called after Dispose.
	ErrDisposed = errors.New("scene: disposed")
)

// Store is everything a scene needs from the field store.
type Store interface {
	areaengine.Store
	Subscribe(listener func(state field.State)) func()
}

// Scheduler runs fn on the UI loop after delay. The UI wires this to
// a clock timer that posts fn back into its event loop.
type Scheduler func(delay time.Duration, fn func())

// Picker resolves world positions to agents and structures. The
// renderer implements it because it knows how large each glyph is.
type Picker interface {
	AgentAt(position Point) (string, bool)
	StructureAt(position Point) (string, bool)
}

// PulseSink shows and hides the transient indicator on new areas.
type PulseSink interface {
	SetPulse(areaID string, on bool)
}

// Sinks are the render-side collaborators passed to Attach. Any of
// them may be nil.
type Sinks struct {
	Agents     scenesync.AgentSink
	Structures scenesync.StructureSink
	Picker     Picker
	Pulses     PulseSink
}

// Options configures a scene.
type Options struct {
	Logger  *slog.Logger
	Clock   clock.Clock
	Metrics *scenesync.Metrics

	// Scheduler defers pulse expiry. Defaults to Clock.AfterFunc,
	// which runs on the clock's goroutine; UIs should supply one that
	// hops back onto their event loop.
	Scheduler Scheduler

	// Engine settings. Store and Renderer are filled in by Attach.
	Engine areaengine.Options

	// FlashDuration is how long a new area pulses. Zero uses
	// DefaultFlashDuration.
	FlashDuration time.Duration

	// HandleTolerance is the handle pick distance in world units. Zero
	// uses DefaultHandleTolerance.
	HandleTolerance float64

	// OnAreaCreated is called after a draw gesture creates an area.
	OnAreaCreated func(field.Area)
}

// Scene routes input to the area engine and the callback router and
// keeps the renderer synced with the store.
type Scene struct {
	options Options
	logger  *slog.Logger
	clock   clock.Clock
	router  *callback.Router

	store  Store
	sinks  Sinks
	engine *areaengine.Engine
	hooks  *scenesync.Hooks

	attached bool
	disposed bool

	gesture gesture

	hoverAgent     string
	hoverStructure string

	pulses         map[string]uint64
	pulseSequence  uint64
	lastEvent      callback.Event
	lastEventValid bool
}

type gesture int

const (
	gestureNone gesture = iota
	gestureDraw
	gestureResize
)

// New creates a detached scene with an empty router.
func New(options Options) *Scene {
	scene := &Scene{
		options: options,
		logger:  options.Logger,
		clock:   options.Clock,
		pulses:  make(map[string]uint64),
	}
	if scene.logger == nil {
		scene.logger = slog.New(slog.DiscardHandler)
	}
	if scene.clock == nil {
		scene.clock = clock.Real()
	}
	if scene.options.Scheduler == nil {
		sceneClock := scene.clock
		scene.options.Scheduler = func(delay time.Duration, fn func()) {
			sceneClock.AfterFunc(delay, fn)
		}
	}
	if scene.options.FlashDuration <= 0 {
		scene.options.FlashDuration = DefaultFlashDuration
	}
	if scene.options.HandleTolerance <= 0 {
		scene.options.HandleTolerance = DefaultHandleTolerance
	}
	scene.router = callback.NewRouter(scene.logger)
	return scene
}

// Router returns the scene's callback router.
func (scene *Scene) Router() *callback.Router {
	return scene.router
}

// Engine returns the area engine, or nil before Attach.
func (scene *Scene) Engine() *areaengine.Engine {
	return scene.engine
}

// Attach connects the scene to store and renderer and runs the first
// sync.
func (scene *Scene) Attach(store Store, renderer areaengine.Renderer, sinks Sinks) error {
	if scene.disposed {
		return ErrDisposed
	}
	if scene.attached {
		return ErrAttached
	}

	engineOptions := scene.options.Engine
	engineOptions.Store = store
	engineOptions.Renderer = renderer
	if engineOptions.Logger == nil {
		engineOptions.Logger = scene.logger
	}
	scene.engine = areaengine.New(engineOptions)
	scene.engine.SetOnAreaCreated(scene.areaCreated)

	scene.hooks = scenesync.New(scenesync.Options{
		Areas:      scene.engine,
		Agents:     sinks.Agents,
		Structures: sinks.Structures,
		Clock:      scene.clock,
		Metrics:    scene.options.Metrics,
		Logger:     scene.logger,
	})
	scene.store = store
	scene.sinks = sinks
	scene.attached = true
	if err := scene.hooks.Attach(store); err != nil {
		return err
	}
	return nil
}

// Attached reports whether Attach has succeeded and Dispose has not
// run.
func (scene *Scene) Attached() bool {
	return scene.attached && !scene.disposed
}

// Dispose unsubscribes from the store and disposes every visual.
// Calling it again does nothing.
func (scene *Scene) Dispose() {
	if scene.disposed {
		return
	}
	scene.disposed = true
	if scene.hooks != nil {
		scene.hooks.Detach()
	}
	if scene.engine != nil {
		scene.engine.Dispose()
	}
	clear(scene.pulses)
	scene.gesture = gestureNone
}

// Resync forces a full sync of every collection.
func (scene *Scene) Resync() {
	if !scene.Attached() {
		return
	}
	scene.hooks.Resync()
}

// LastEvent returns the most recent event the scene triggered.
func (scene *Scene) LastEvent() (callback.Event, bool) {
	return scene.lastEvent, scene.lastEventValid
}

func (scene *Scene) trigger(event callback.Event) {
	scene.lastEvent = event
	scene.lastEventValid = true
	scene.router.Trigger(event)
}

func (scene *Scene) areaCreated(area field.Area) {
	scene.engine.HighlightArea(area.ID)
	scene.Pulse(area.ID)
	if scene.options.OnAreaCreated != nil {
		scene.options.OnAreaCreated(area)
	}
}

// Pulse turns on the transient indicator for an area and schedules
// it off after the flash duration. Pulsing an area that is already
// pulsing restarts the timer. An expiry that arrives after the scene
// was disposed, or after a newer pulse, does nothing.
func (scene *Scene) Pulse(areaID string) {
	if !scene.Attached() {
		return
	}
	scene.pulseSequence++
	sequence := scene.pulseSequence
	scene.pulses[areaID] = sequence
	if scene.sinks.Pulses != nil {
		scene.sinks.Pulses.SetPulse(areaID, true)
	}
	scene.options.Scheduler(scene.options.FlashDuration, func() {
		if scene.disposed {
			return
		}
		if current, exists := scene.pulses[areaID]; !exists || current != sequence {
			return
		}
		delete(scene.pulses, areaID)
		if scene.sinks.Pulses != nil {
			scene.sinks.Pulses.SetPulse(areaID, false)
		}
	})
}

// Pulsing reports whether an area's indicator is on.
func (scene *Scene) Pulsing(areaID string) bool {
	_, exists := scene.pulses[areaID]
	return exists
}

// SetHandleTolerance changes the handle pick distance, typically after
// a zoom changes how much world a screen cell covers. Non-positive
// values restore DefaultHandleTolerance.
func (scene *Scene) SetHandleTolerance(tolerance float64) {
	if tolerance <= 0 {
		tolerance = DefaultHandleTolerance
	}
	scene.options.HandleTolerance = tolerance
}

// HandleTolerance returns the current handle pick distance.
func (scene *Scene) HandleTolerance() float64 {
	return scene.options.HandleTolerance
}
