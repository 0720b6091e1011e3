// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot loads a whole field from a file and turns file
// edits into feed frames.
//
// A snapshot file lists areas, agents and structures, plus an optional
// selection. JSON files may carry comments and trailing commas
// (.json, .jsonc); YAML is accepted for .yaml and .yml.
//
// [Diff] compares two snapshots entity by entity on their canonical
// JSON encoding and returns only the frames needed to go from one to
// the other, so a file save that touches one agent redraws one agent.
//
// [Watch] follows a file with inotify on its parent directory,
// catching both in-place writes and editors that save by renaming a
// temporary file over the original.
package snapshot
