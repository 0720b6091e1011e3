// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package field defines the entities shown on the field: user-drawn
// [Area] regions, externally owned [Agent] and [Structure] records,
// and the [State] snapshot that the store hands to readers.
//
// Areas carry their geometry as a [geometry.Shape] sum type. The flat
// [AreaRecord] is the form used on the wire and in snapshot files,
// where the variant is spelled out by a "type" field and only the
// fields for that variant are meaningful. [AreaFromRecord] is the only
// way to turn a record back into an Area, and it rejects unknown types
// and clamps dimensions to [geometry.MinSize].
//
// Agents and structures are read-only here: the field never mutates
// them, it only reads their identity and visually relevant fields.
package field
