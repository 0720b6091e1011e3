// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package feed

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/bureau-foundation/fieldmap/lib/clock"
)

// DefaultReplayInterval is the delay between replayed frames.
const DefaultReplayInterval = 50 * time.Millisecond

// ReplaySource delivers a recording one frame per tick, then closes
// its channel.
type ReplaySource struct {
	frames    chan Frame
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// NewReplaySource starts replaying frames. A non-positive interval
// uses DefaultReplayInterval; a nil clock uses the real one.
func NewReplaySource(frames []Frame, interval time.Duration, replayClock clock.Clock) *ReplaySource {
	if interval <= 0 {
		interval = DefaultReplayInterval
	}
	if replayClock == nil {
		replayClock = clock.Real()
	}
	ctx, cancel := context.WithCancel(context.Background())
	source := &ReplaySource{
		frames: make(chan Frame, DefaultBuffer),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go source.run(ctx, slices.Clone(frames), replayClock.NewTicker(interval))
	return source
}

func (source *ReplaySource) run(ctx context.Context, frames []Frame, ticker *clock.Ticker) {
	defer close(source.done)
	defer close(source.frames)
	defer ticker.Stop()

	for _, frame := range frames {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		select {
		case source.frames <- frame:
		case <-ctx.Done():
			return
		}
	}
}

// Frames returns the channel frames are delivered on.
func (source *ReplaySource) Frames() <-chan Frame {
	return source.frames
}

// Close stops the replay. Safe to call more than once, and after the
// replay has finished.
func (source *ReplaySource) Close() error {
	source.closeOnce.Do(func() {
		source.cancel()
		<-source.done
	})
	return nil
}
