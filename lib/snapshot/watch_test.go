// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bureau-foundation/fieldmap/lib/feed"
	"github.com/bureau-foundation/fieldmap/lib/testutil"
)

const watchTimeout = 5 * time.Second

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func receiveTypes(t *testing.T, watcher *Watcher, count int) []feed.FrameType {
	t.Helper()
	types := make([]feed.FrameType, count)
	for index := range types {
		types[index] = testutil.RequireReceive(t, watcher.Frames(), watchTimeout, "frame %d", index).Type
	}
	return types
}

func TestWatchDeliversInitialLoadAndChanges(t *testing.T) {
	directory := t.TempDir()
	path := filepath.Join(directory, "field.json")
	writeFile(t, path, `{"agents": [{"id": "a"}]}`)

	watcher, err := Watch(path, WatchOptions{Debounce: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer watcher.Close()

	if got := receiveTypes(t, watcher, 2); got[0] != feed.TypeReset || got[1] != feed.TypePutAgent {
		t.Fatalf("initial frames = %v, want reset, put_agent", got)
	}

	// In-place write.
	writeFile(t, path, `{"agents": [{"id": "a"}, {"id": "b"}]}`)
	frame := testutil.RequireReceive(t, watcher.Frames(), watchTimeout, "put after write")
	if frame.Type != feed.TypePutAgent || frame.ID != "b" {
		t.Fatalf("frame = %s, want put_agent b", frame)
	}

	// Atomic replace by rename.
	replacement := filepath.Join(directory, ".field.json.tmp")
	writeFile(t, replacement, `{"agents": [{"id": "b"}]}`)
	if err := os.Rename(replacement, path); err != nil {
		t.Fatal(err)
	}
	frame = testutil.RequireReceive(t, watcher.Frames(), watchTimeout, "remove after rename")
	if frame.Type != feed.TypeRemoveAgent || frame.ID != "a" {
		t.Fatalf("frame = %s, want remove_agent a", frame)
	}
}

func TestWatchSkipsUnreadableVersions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.yaml")
	writeFile(t, path, "agents: [{id: a}]\n")

	watcher, err := Watch(path, WatchOptions{Debounce: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer watcher.Close()
	receiveTypes(t, watcher, 2)

	writeFile(t, path, "agents: [{id: a}\n")
	// Give the watcher time to read and reject the broken version
	// before it is fixed.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, path, "agents: [{id: a}, {id: c}]\n")

	frame := testutil.RequireReceive(t, watcher.Frames(), watchTimeout, "put after fix")
	if frame.Type != feed.TypePutAgent || frame.ID != "c" {
		t.Fatalf("frame = %s, want put_agent c diffed against the last good version", frame)
	}
}

func TestWatchClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.json")
	writeFile(t, path, `{}`)

	watcher, err := Watch(path, WatchOptions{})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	watcher.Close()
	watcher.Close()
	testutil.RequireClosed(t, watcher.Frames(), watchTimeout, "frames after Close")
}

func TestWatchMissingFile(t *testing.T) {
	if _, err := Watch(filepath.Join(t.TempDir(), "absent.json"), WatchOptions{}); err == nil {
		t.Error("Watch of a missing file succeeded")
	}
}
