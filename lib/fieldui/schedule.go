// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fieldui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/fieldmap/lib/clock"
)

// scheduledMsg runs a deferred scene callback on the UI loop.
type scheduledMsg struct {
	fn func()
}

type scheduledCall struct {
	delay time.Duration
	fn    func()
}

// scheduleQueue collects deferred calls made while Update runs. Update
// turns them into commands before returning, so the calls come back
// through the message loop instead of running on a timer goroutine.
type scheduleQueue struct {
	clock   clock.Clock
	pending []scheduledCall
}

func (queue *scheduleQueue) schedule(delay time.Duration, fn func()) {
	queue.pending = append(queue.pending, scheduledCall{delay: delay, fn: fn})
}

// commands drains the queue into one command per call.
func (queue *scheduleQueue) commands() []tea.Cmd {
	if len(queue.pending) == 0 {
		return nil
	}
	commands := make([]tea.Cmd, 0, len(queue.pending))
	for _, call := range queue.pending {
		timer := queue.clock.After(call.delay)
		fn := call.fn
		commands = append(commands, func() tea.Msg {
			<-timer
			return scheduledMsg{fn: fn}
		})
	}
	queue.pending = nil
	return commands
}
