// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds fieldmap's CBOR configuration for feed frames
// and recordings.
//
// Field types carry `json` tags only. fxamacker/cbor falls back to
// `json` tags when no `cbor` tag is present, so one tag names a field
// in snapshot files (JSON) and on the feed (CBOR) alike.
//
// Buffers:
//
//	data, err := codec.Marshal(frame)
//	err = codec.Unmarshal(data, &frame)
//
// Streams (sockets, recordings):
//
//	encoder := codec.NewEncoder(conn)
//	decoder := codec.NewDecoder(conn)
//
// Encoding is Core Deterministic (RFC 8949 §4.2), so equal frames
// encode to equal bytes and recordings of the same session diff
// cleanly.
package codec
