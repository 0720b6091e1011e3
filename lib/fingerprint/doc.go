// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fingerprint computes cheap structural summaries of entity
// collections so that callers can skip expensive visual resyncs when
// nothing visible changed.
//
// A [Fingerprint] is the collection size plus a 64-bit accumulator.
// Each entity contributes a BLAKE3-derived 64-bit hash of its ID and a
// caller-chosen subset of "visually relevant" fields; the per-entity
// hashes are folded with XOR and wrapping addition, which makes the
// result independent of map iteration order.
//
// # Lossy by design
//
// Two collections with the same size and the same accumulated hash are
// reported as unchanged. Distinct collections can collide, in which
// case a resync is skipped that should have run. The next change to
// any fingerprinted field almost certainly breaks the collision, so a
// collision shows up as one stale frame, not as permanent drift. This
// trade is deliberate: computing a fingerprint costs one pass over the
// collection with no allocation per entity, while an exact structural
// diff would need to retain and compare a full copy of the previous
// collection on every store notification.
//
// Size changes are always reported as changes regardless of the hash,
// so adding or removing an entity can never be masked by a collision.
//
// Floating point fields should be written with [Hasher.Float], which
// rounds to [Precision] decimal places. Raw coordinates change on every
// frame of continuous movement; rounding keeps changes below display
// resolution from forcing a resync every tick.
//
// Fingerprint state is owned by whoever creates a [Tracker]. There is
// no package-level state.
package fingerprint
