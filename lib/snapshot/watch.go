// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/fieldmap/lib/feed"
)

// DefaultDebounce is how long the watcher waits after a change for
// further writes before re-reading the file.
const DefaultDebounce = 50 * time.Millisecond

// pollTimeout bounds how long the watcher blocks before checking for
// Close, in milliseconds.
const pollTimeout = 100

// WatchOptions configures Watch.
type WatchOptions struct {
	Logger   *slog.Logger
	Debounce time.Duration
}

// Watcher follows a snapshot file and delivers the frames each change
// produces. It implements feed.Source.
type Watcher struct {
	path     string
	filename string
	fd       int
	logger   *slog.Logger
	debounce time.Duration

	frames    chan feed.Frame
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// Watch loads the snapshot at path and starts watching it. The first
// frames delivered load the whole snapshot (see [Frames]); after that
// each completed write delivers the [Diff] against the previous
// version. A write that leaves the file unreadable is logged and
// skipped; the next good write is diffed against the last good
// version.
func Watch(path string, options WatchOptions) (*Watcher, error) {
	absolutePath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	initial, err := Load(absolutePath)
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: a rename over the file
	// replaces its inode and a file watch would go quiet.
	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("inotify init: %w", err)
	}
	if _, err := unix.InotifyAddWatch(fd, filepath.Dir(absolutePath), unix.IN_CLOSE_WRITE|unix.IN_MOVED_TO); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(absolutePath), err)
	}

	watcher := &Watcher{
		path:     absolutePath,
		filename: filepath.Base(absolutePath),
		fd:       fd,
		logger:   options.Logger,
		debounce: options.Debounce,
		frames:   make(chan feed.Frame, feed.DefaultBuffer),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	if watcher.logger == nil {
		watcher.logger = slog.New(slog.DiscardHandler)
	}
	if watcher.debounce <= 0 {
		watcher.debounce = DefaultDebounce
	}
	go watcher.loop(initial)
	return watcher, nil
}

// Frames returns the channel frames are delivered on. It is closed
// after Close.
func (watcher *Watcher) Frames() <-chan feed.Frame {
	return watcher.frames
}

// Close stops watching and releases the inotify descriptor. Calling it
// again does nothing.
func (watcher *Watcher) Close() error {
	watcher.closeOnce.Do(func() {
		close(watcher.stop)
		<-watcher.done
	})
	return nil
}

func (watcher *Watcher) deliver(frames []feed.Frame) bool {
	for _, frame := range frames {
		select {
		case watcher.frames <- frame:
		case <-watcher.stop:
			return false
		}
	}
	return true
}

func (watcher *Watcher) loop(previous Snapshot) {
	defer close(watcher.done)
	defer close(watcher.frames)
	defer unix.Close(watcher.fd)

	if !watcher.deliver(Frames(previous)) {
		return
	}

	buffer := make([]byte, 4096)
	for {
		select {
		case <-watcher.stop:
			return
		default:
		}

		descriptors := []unix.PollFd{{Fd: int32(watcher.fd), Events: unix.POLLIN}}
		count, err := unix.Poll(descriptors, pollTimeout)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			watcher.logger.Error("snapshot watch stopped", "path", watcher.path, "error", err)
			return
		}
		if count == 0 {
			continue
		}

		bytesRead, err := unix.Read(watcher.fd, buffer)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			watcher.logger.Error("snapshot watch stopped", "path", watcher.path, "error", err)
			return
		}
		if !eventsMatch(buffer[:bytesRead], watcher.filename) {
			continue
		}

		// Coalesce a burst of writes into one re-read.
		select {
		case <-watcher.stop:
			return
		case <-time.After(watcher.debounce):
		}
		drainEvents(watcher.fd, buffer)

		current, err := Load(watcher.path)
		if err != nil {
			watcher.logger.Warn("skipping unreadable snapshot", "path", watcher.path, "error", err)
			continue
		}
		frames := Diff(previous, current)
		previous = current
		if len(frames) == 0 {
			continue
		}
		watcher.logger.Debug("snapshot changed", "path", watcher.path, "frames", len(frames))
		if !watcher.deliver(frames) {
			return
		}
	}
}

// eventsMatch reports whether any inotify event in buffer names
// filename. Layout from inotify(7):
//
//	struct inotify_event {
//	    int32_t  wd;     // offset 0
//	    uint32_t mask;   // offset 4
//	    uint32_t cookie; // offset 8
//	    uint32_t len;    // offset 12
//	    char     name[]; // offset 16, null-padded
//	};
func eventsMatch(buffer []byte, filename string) bool {
	offset := 0
	for offset+unix.SizeofInotifyEvent <= len(buffer) {
		nameLength := int(binary.NativeEndian.Uint32(buffer[offset+12 : offset+16]))
		eventSize := unix.SizeofInotifyEvent + nameLength
		if offset+eventSize > len(buffer) {
			break
		}
		if nameLength > 0 && nullTerminated(buffer[offset+unix.SizeofInotifyEvent:offset+eventSize]) == filename {
			return true
		}
		offset += eventSize
	}
	return false
}

func nullTerminated(data []byte) string {
	for index, b := range data {
		if b == 0 {
			return string(data[:index])
		}
	}
	return string(data)
}

// drainEvents discards queued events.
func drainEvents(fd int, buffer []byte) {
	for {
		if _, err := unix.Read(fd, buffer); err != nil {
			return
		}
	}
}
