// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads fieldmap's configuration file.
//
// The file is YAML, named by the --config flag or the FIELDMAP_CONFIG
// environment variable, and layered over [Default]: keys the file
// omits keep their defaults. Without either, fieldmap runs on the
// defaults alone. Environment variables never override individual
// values; the only expansion is ${VAR} and ${VAR:-default} inside
// path values, for portability across machines.
//
// Sections:
//
//	view:     initial scale and brightness, theme color overrides
//	areas:    default palette, name prefix, creation flash duration
//	feed:     socket, websocket, snapshot file, replay and recording,
//	          reconnect backoff
//	log:      status bar level, optional JSON log file
//	metrics:  Prometheus listen address
//
// [Config.Validate] reports every problem at once rather than the
// first.
package config
