// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package areaengine

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/bureau-foundation/fieldmap/lib/field"
	"github.com/bureau-foundation/fieldmap/lib/geometry"
)

const (
	// DefaultIdleOpacity is the fill opacity of unselected areas at
	// brightness 1.
	DefaultIdleOpacity = 0.3

	// DefaultSelectedOpacity is the fill opacity of the selected area
	// at brightness 1.
	DefaultSelectedOpacity = 0.6

	// MinBrightness and MaxBrightness bound the brightness multiplier.
	MinBrightness = 0.2
	MaxBrightness = 2.0

	// DefaultNamePrefix prefixes the names of newly drawn areas.
	DefaultNamePrefix = "Area"
)

// DefaultPalette is cycled through for the colors of new areas.
var DefaultPalette = []string{"#4e9a06", "#3465a4", "#c4a000", "#75507b", "#06989a", "#cc0000"}

// Options configures an [Engine]. Store and Renderer are required.
type Options struct {
	Store    Store
	Renderer Renderer

	// Logger receives disposal failures and renderer errors. Nil
	// discards.
	Logger *slog.Logger

	// NewID generates area IDs. Defaults to random UUIDs.
	NewID func() string

	// Palette and NamePrefix style new areas. Empty values use
	// DefaultPalette and DefaultNamePrefix.
	Palette    []string
	NamePrefix string

	// IdleOpacity and SelectedOpacity are the base fill opacities.
	// Zero uses the defaults.
	IdleOpacity     float64
	SelectedOpacity float64

	// Brightness is the initial multiplier. Zero means 1.
	Brightness float64
}

// Engine manages area visuals and the draw and resize gestures.
type Engine struct {
	store    Store
	renderer Renderer
	logger   *slog.Logger
	newID    func() string

	palette    []string
	namePrefix string

	// drawn is the ordinal of the last drawn area's default name.
	drawn int

	idleOpacity     float64
	selectedOpacity float64
	brightness      float64

	visuals map[string]*areaEntry
	handles []handleEntry

	selectedID string

	tool    geometry.Kind
	drawing bool
	anchor  geometry.Vec2
	preview Visual

	resizing           bool
	resizeHandle       geometry.HandleType
	resizeOriginalArea field.Area
	resizeStart        geometry.Vec2

	onAreaCreated func(field.Area)

	disposed bool
}

type areaEntry struct {
	area   field.Area
	style  AreaStyle
	visual AreaVisual
}

type handleEntry struct {
	handle ResizeHandle
	visual Visual
}

// New creates an engine. It draws nothing until [Engine.SyncFromStore]
// or [Engine.RenderAllAreas] is called.
func New(options Options) *Engine {
	engine := &Engine{
		store:           options.Store,
		renderer:        options.Renderer,
		logger:          options.Logger,
		newID:           options.NewID,
		palette:         options.Palette,
		namePrefix:      options.NamePrefix,
		idleOpacity:     options.IdleOpacity,
		selectedOpacity: options.SelectedOpacity,
		brightness:      options.Brightness,
		visuals:         make(map[string]*areaEntry),
	}
	if engine.logger == nil {
		engine.logger = slog.New(slog.DiscardHandler)
	}
	if engine.newID == nil {
		engine.newID = uuid.NewString
	}
	if len(engine.palette) == 0 {
		engine.palette = DefaultPalette
	}
	if engine.namePrefix == "" {
		engine.namePrefix = DefaultNamePrefix
	}
	if engine.idleOpacity == 0 {
		engine.idleOpacity = DefaultIdleOpacity
	}
	if engine.selectedOpacity == 0 {
		engine.selectedOpacity = DefaultSelectedOpacity
	}
	if engine.brightness == 0 {
		engine.brightness = 1
	}
	engine.brightness = clampBrightness(engine.brightness)
	return engine
}

// SetOnAreaCreated registers the function called after a draw gesture
// commits a new area. Only one function is kept; nil clears it.
func (engine *Engine) SetOnAreaCreated(callback func(field.Area)) {
	engine.onAreaCreated = callback
}

// Dispose cancels any gesture in progress and disposes every visual.
// After Dispose every method is a no-op. Calling Dispose again does
// nothing.
func (engine *Engine) Dispose() {
	if engine.disposed {
		return
	}
	engine.CancelDrawing()
	engine.resizing = false
	engine.clearHandles()
	for areaID, entry := range engine.visuals {
		engine.disposeQuietly(entry.visual, "area", areaID)
	}
	clear(engine.visuals)
	engine.selectedID = ""
	engine.tool = ""
	engine.onAreaCreated = nil
	engine.disposed = true
}

// Disposed reports whether Dispose has run.
func (engine *Engine) Disposed() bool {
	return engine.disposed
}

// disposeQuietly disposes visual and logs instead of propagating any
// failure, including a panic from the renderer.
func (engine *Engine) disposeQuietly(visual Visual, kind, id string) {
	if visual == nil {
		return
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			engine.logger.Warn("visual dispose panicked",
				"kind", kind,
				"id", id,
				"panic", recovered,
			)
		}
	}()
	if err := visual.Dispose(); err != nil {
		engine.logger.Debug("visual dispose failed",
			"kind", kind,
			"id", id,
			"error", err,
		)
	}
}

func clampBrightness(value float64) float64 {
	return min(max(value, MinBrightness), MaxBrightness)
}
