// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fieldcanvas draws the field into a grid of terminal cells.
//
// [Canvas] implements the area engine's Renderer (areas, gesture
// previews and resize handles), the agent and structure sinks of the
// sync hooks, and the scene's picker. It holds what it was last told
// and composes a frame on demand with [Canvas.Render]; nothing is
// drawn eagerly.
//
// A [Viewport] maps the ground plane onto cells. Terminal cells are
// roughly twice as tall as they are wide, so one world unit spans
// Scale columns but only Scale/2 rows, which keeps circles round.
//
// Areas are filled in z-order. Each fill is the area's color blended
// toward the background by the area's opacity, so overlapping areas
// and brightness changes read correctly in 24-bit terminals and
// degrade to the nearest palette entry elsewhere.
package fieldcanvas
