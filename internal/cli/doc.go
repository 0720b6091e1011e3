// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli holds the error types fieldmap's command returns. A
// [ToolError] carries a category that picks the process exit code and
// an optional hint printed after the message.
package cli
