// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package callback

import (
	"log/slog"

	"github.com/bureau-foundation/fieldmap/lib/geometry"
)

// Kind identifies an interaction event.
type Kind string

const (
	// BuildingClick fires on a single click on a structure.
	BuildingClick Kind = "building_click"
	// BuildingDoubleClick fires on a double click on a structure.
	BuildingDoubleClick Kind = "building_double_click"
	// ContextMenu fires on a secondary click anywhere on the field.
	// TargetID names the area, structure or agent under the pointer,
	// if any.
	ContextMenu Kind = "context_menu"
	// AgentHoverEnter and AgentHoverLeave fire when the pointer moves
	// onto or off an agent.
	AgentHoverEnter Kind = "agent_hover_enter"
	AgentHoverLeave Kind = "agent_hover_leave"
	// StructureHoverEnter and StructureHoverLeave fire when the pointer
	// moves onto or off a structure.
	StructureHoverEnter Kind = "structure_hover_enter"
	StructureHoverLeave Kind = "structure_hover_leave"
	// GroundClick fires on a click that hits no entity.
	GroundClick Kind = "ground_click"
	// AreaClick fires on a click that selects an area.
	AreaClick Kind = "area_click"
	// AreaDoubleClick fires on a double click on an area.
	AreaDoubleClick Kind = "area_double_click"
)

// Event describes one interaction.
type Event struct {
	Kind Kind

	// TargetID is the entity the event refers to. Empty for ground
	// clicks and for context menus over empty ground.
	TargetID string

	// Position is the world position of the pointer.
	Position geometry.Vec2

	// ScreenX and ScreenY are the pointer's cell coordinates, for
	// consumers that anchor popups to the pointer.
	ScreenX int
	ScreenY int
}

// Handler receives events of one kind.
type Handler func(Event)

// Router holds one handler per event kind.
//
// Router is not safe for concurrent use; it lives on the UI loop.
type Router struct {
	handlers map[Kind]Handler
	logger   *slog.Logger
}

// NewRouter creates an empty router. A nil logger discards.
func NewRouter(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Router{
		handlers: make(map[Kind]Handler),
		logger:   logger,
	}
}

// Set registers handler for kind, replacing any existing handler.
// Returns true if a previous handler was replaced. A nil handler
// clears the slot.
func (router *Router) Set(kind Kind, handler Handler) bool {
	_, existed := router.handlers[kind]
	if handler == nil {
		delete(router.handlers, kind)
		return existed
	}
	if existed {
		router.logger.Debug("replacing callback handler", "kind", string(kind))
	}
	router.handlers[kind] = handler
	return existed
}

// Clear removes the handler for kind, if any.
func (router *Router) Clear(kind Kind) {
	delete(router.handlers, kind)
}

// Has reports whether kind has a handler.
func (router *Router) Has(kind Kind) bool {
	_, exists := router.handlers[kind]
	return exists
}

// Trigger delivers event to the handler for event.Kind. Returns true
// if a handler ran (even if it panicked), false if the kind had no
// handler.
func (router *Router) Trigger(event Event) (ran bool) {
	handler, exists := router.handlers[event.Kind]
	if !exists {
		return false
	}
	ran = true
	defer func() {
		if recovered := recover(); recovered != nil {
			router.logger.Error("callback handler panicked",
				"kind", string(event.Kind),
				"target", event.TargetID,
				"panic", recovered,
			)
		}
	}()
	handler(event)
	return ran
}
