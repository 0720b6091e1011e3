// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package feed delivers field updates from outside the process.
//
// A feed is a sequence of [Frame] values: puts and removes for agents,
// structures and areas, selection changes, and control frames
// (reset, caught_up, heartbeat, error). Sources produce frames on a
// channel from a background goroutine; the UI loop receives them and
// calls [Apply] against its store, so the store is only ever touched
// from one goroutine.
//
// Sources:
//
//   - [SocketSource]: CBOR frames over a Unix socket after a
//     subscribe handshake.
//   - [WebSocketSource]: one CBOR frame per binary WebSocket message.
//   - [ReplaySource]: a recording replayed at a fixed interval.
//
// The two live sources reconnect with exponential backoff. Every
// successful connection starts with a synthetic reset frame, because
// the server sends a complete snapshot after each subscribe.
//
// [Recorder] writes frames to a file compressed according to its
// extension (.zst, .lz4, or plain CBOR); [OpenRecording] reads one
// back.
package feed
