// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui holds the pieces fieldmap's terminal views share: the
// color theme and ANSI-aware overlay splicing for popups drawn over
// an already-rendered frame.
package tui
