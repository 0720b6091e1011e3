// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fieldui is the interactive terminal view of the field: a
// bubbletea model that draws the field with fieldcanvas and routes
// keyboard and mouse input through a scene.
//
// Everything that touches the store runs on the bubbletea loop. Feed
// frames arrive as messages and are applied with [feed.Apply]; the
// scene's deferred calls (area pulse expiry) come back as messages
// too, so no timer goroutine ever mutates the store.
//
// [LogHandler] routes slog records into the status bar, where each
// stays for five seconds or until a newer record replaces it.
package fieldui
