// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package callback connects low-level pointer and pick detection to
// the application code that decides what a click means.
//
// [Router] is a single-subscriber dispatcher: each [Kind] has at most
// one [Handler]. Registering a handler for a kind that already has one
// replaces it. This is the contract, not an accident: the application
// layer owns each interaction outright, and a second owner indicates a
// wiring bug. To keep that bug visible, [Router.Set] returns whether
// it replaced an existing handler and logs the replacement at debug
// level.
//
// Triggering a kind with no handler is a no-op. A handler that panics
// is recovered and logged so a bug in one interaction cannot take down
// the UI loop.
package callback
