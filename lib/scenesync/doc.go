// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package scenesync keeps the rendered field in step with the store
// without redrawing on every notification.
//
// The store notifies on every mutation, including mutations that do
// not change anything visible (a heartbeat that rewrites an agent with
// identical fields, a task count bump on an agent that is not drawn
// differently). A full resync of a collection costs a renderer pass
// over every entity, so [Hooks] first computes a [fingerprint] of each
// collection's visible fields and resyncs only the collections whose
// fingerprint moved. The three collections are tracked independently:
// agents together with the agent selection, areas, and structures
// together with the structure selection.
//
// The fingerprint is lossy. A hash collision between two different
// states suppresses one resync; the next visible change corrects it.
// See package fingerprint for the trade-off.
//
// Hooks are single-threaded like the store. Detach unsubscribes and
// turns any notification already in flight into a no-op.
package scenesync
