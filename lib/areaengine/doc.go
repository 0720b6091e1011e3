// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package areaengine creates, hit-tests and reshapes the user-drawn
// areas on the field.
//
// The engine runs two gesture state machines that never overlap:
//
//	drawing: idle -> drawing -> committed | cancelled -> idle
//	resize:  idle -> active(handle) -> idle
//
// A drawing gesture needs an active tool ([Engine.SetDrawingTool]).
// While it runs the engine shows a preview, hidden while smaller than
// [geometry.PreviewThreshold]. On release the gesture is committed as
// a new area only if every dimension reaches [geometry.MinSize];
// anything smaller is dropped without error.
//
// A resize gesture snapshots the area and the pointer at start and
// computes every update from that snapshot, so accumulated pointer
// jitter cannot drift the result. Corner handles grow a rectangle
// symmetrically about its unchanged center (each axis changes by twice
// the pointer delta). The radius handle sets a circle's radius to the
// pointer's absolute distance from the center. Every dimension is
// floored at [geometry.MinSize].
//
// The engine owns one visual per active area, created through the
// [Renderer]. [Engine.SyncFromStore] reconciles that cache against the
// store by ID: visuals for missing or archived areas are disposed,
// present ones are created or updated. Every visual is disposed before
// it is replaced or dropped. Disposal failures are logged, never
// returned: by the time a visual is being torn down there is nothing
// useful a caller can do.
//
// The engine is not safe for concurrent use. It belongs to the UI
// loop, along with the store it writes to.
package areaengine
