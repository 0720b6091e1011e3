// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports fieldmap's build version.
//
// [GitCommit], [GitDirty], [BuildTime] and [Version] are injected with
// -ldflags -X and default to "unknown" / "0.1.0-dev" in development
// builds and tests.
//
//   - [Info] for --version
//   - [Full] adds the Go version and platform
//   - [Client] identifies fieldmap to feed servers
package version
