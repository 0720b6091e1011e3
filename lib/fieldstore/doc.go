// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fieldstore is the in-memory state store behind the field
// view: areas, agents, structures and the operator's selection.
//
// The store is single-writer. Every mutation and every listener call
// happens on the UI goroutine; goroutines that receive external
// updates (feeds, file watchers) hand them to the UI loop instead of
// writing here. There are no locks.
//
// Listeners run synchronously after each mutation, in subscription
// order. [Store.Batch] groups several mutations into one notification,
// which is how feed frames that touch many entities avoid a resync per
// entity.
//
// Z-indices come from a monotonic counter. [Store.NextZIndex] never
// returns the same value twice, and inserting an area with an explicit
// z-index moves the counter past it, so a freshly drawn or raised area
// always stacks above everything already present.
package fieldstore
