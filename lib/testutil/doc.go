// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds test helpers shared across fieldmap packages.
//
// [RequireReceive], [RequireClosed] and [RequireDrained] wrap the
// select-with-timeout pattern for channels fed by background
// goroutines (feed sources, file watchers). The timeout only prevents
// a broken test from hanging; deterministic timing comes from
// clock.Fake. These helpers are the only place tests wait on the wall
// clock.
//
// [SocketDir] returns a short temporary directory for Unix sockets,
// whose paths are limited to 108 bytes.
package testutil
