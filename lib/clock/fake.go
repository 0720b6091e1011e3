// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"slices"
	"sync"
	"time"
)

// FakeClock is a manually advanced [Clock]. It is safe for concurrent
// use: goroutines under test may register waits while the test
// goroutine advances.
type FakeClock struct {
	mu      sync.Mutex
	changed *sync.Cond
	now     time.Time
	pending []*pendingWait
}

type pendingWait struct {
	deadline time.Time
	interval time.Duration
	channel  chan time.Time
	callback func()
	stopped  bool
}

// Fake returns a FakeClock stopped at start.
func Fake(start time.Time) *FakeClock {
	fake := &FakeClock{now: start}
	fake.changed = sync.NewCond(&fake.mu)
	return fake
}

// Now returns the fake time.
func (fake *FakeClock) Now() time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.now
}

// After returns a channel that receives once the clock has been
// advanced by d.
func (fake *FakeClock) After(d time.Duration) <-chan time.Time {
	channel := make(chan time.Time, 1)
	fake.mu.Lock()
	defer fake.mu.Unlock()
	if d <= 0 {
		channel <- fake.now
		return channel
	}
	fake.addLocked(&pendingWait{deadline: fake.now.Add(d), channel: channel})
	return channel
}

// AfterFunc schedules f for when the clock has been advanced by d. f
// runs on the goroutine that calls Advance. If d <= 0, f runs before
// AfterFunc returns.
func (fake *FakeClock) AfterFunc(d time.Duration, f func()) *Timer {
	if d <= 0 {
		f()
		return &Timer{stop: func() bool { return false }}
	}
	wait := &pendingWait{callback: f}
	fake.mu.Lock()
	wait.deadline = fake.now.Add(d)
	fake.addLocked(wait)
	fake.mu.Unlock()
	return &Timer{stop: func() bool { return fake.cancel(wait) }}
}

// NewTicker returns a ticker driven by Advance.
func (fake *FakeClock) NewTicker(d time.Duration) *Ticker {
	if d <= 0 {
		panic("clock: non-positive ticker interval")
	}
	channel := make(chan time.Time, 1)
	wait := &pendingWait{interval: d, channel: channel}
	fake.mu.Lock()
	wait.deadline = fake.now.Add(d)
	fake.addLocked(wait)
	fake.mu.Unlock()
	return &Ticker{C: channel, stop: func() { fake.cancel(wait) }}
}

func (fake *FakeClock) addLocked(wait *pendingWait) {
	fake.pending = append(fake.pending, wait)
	fake.changed.Broadcast()
}

func (fake *FakeClock) cancel(wait *pendingWait) bool {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	index := slices.Index(fake.pending, wait)
	if index < 0 || wait.stopped {
		return false
	}
	wait.stopped = true
	fake.pending = slices.Delete(fake.pending, index, index+1)
	return true
}

// Advance moves the clock forward by d and fires every wait whose
// deadline has been reached, earliest first. The clock steps to each
// deadline as it fires. Callbacks run on the calling goroutine without
// the clock's lock held, so they may schedule further waits; those
// fire too if they fall within d.
func (fake *FakeClock) Advance(d time.Duration) {
	fake.mu.Lock()
	target := fake.now.Add(d)
	fake.mu.Unlock()

	for {
		wait, firedAt, ok := fake.popDue(target)
		if !ok {
			fake.mu.Lock()
			if fake.now.Before(target) {
				fake.now = target
			}
			fake.mu.Unlock()
			return
		}
		if wait.callback != nil {
			wait.callback()
			continue
		}
		select {
		case wait.channel <- firedAt:
		default:
		}
	}
}

// popDue removes and returns the earliest wait due by target and moves
// the clock to its deadline. Tickers are rescheduled instead of
// removed.
func (fake *FakeClock) popDue(target time.Time) (*pendingWait, time.Time, bool) {
	fake.mu.Lock()
	defer fake.mu.Unlock()

	earliest := -1
	for index, wait := range fake.pending {
		if wait.deadline.After(target) {
			continue
		}
		if earliest < 0 || wait.deadline.Before(fake.pending[earliest].deadline) {
			earliest = index
		}
	}
	if earliest < 0 {
		return nil, time.Time{}, false
	}

	wait := fake.pending[earliest]
	firedAt := wait.deadline
	if firedAt.After(fake.now) {
		fake.now = firedAt
	}
	if wait.interval > 0 {
		wait.deadline = wait.deadline.Add(wait.interval)
	} else {
		fake.pending = slices.Delete(fake.pending, earliest, earliest+1)
	}
	return wait, firedAt, true
}

// WaitForTimers blocks until at least n waits are pending.
func (fake *FakeClock) WaitForTimers(n int) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	for len(fake.pending) < n {
		fake.changed.Wait()
	}
}

// PendingCount returns the number of waits that have not fired or
// been stopped.
func (fake *FakeClock) PendingCount() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return len(fake.pending)
}
