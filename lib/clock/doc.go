// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock is the time source for everything in fieldmap that
// waits or measures: double-click detection, transient indicators,
// feed reconnect backoff and recording replay.
//
// Production code receives [Real]; tests receive [Fake] and move time
// with [FakeClock.Advance]. A test that starts a goroutine which will
// wait on the clock calls [FakeClock.WaitForTimers] before advancing,
// so the advance cannot race the goroutine's registration:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	go source.run(ctx)            // waits on fake.After(backoff)
//	fake.WaitForTimers(1)
//	fake.Advance(time.Second)
package clock
