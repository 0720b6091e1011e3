// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fieldstore

import (
	"testing"

	"github.com/bureau-foundation/fieldmap/lib/field"
	"github.com/bureau-foundation/fieldmap/lib/geometry"
)

func rectArea(id string, zIndex int) field.Area {
	return field.Area{
		ID:     id,
		Shape:  geometry.Rect{Width: 4, Height: 2},
		Center: geometry.Vec2{X: 1, Z: 1},
		ZIndex: zIndex,
	}
}

// countNotifications subscribes a listener that counts calls.
func countNotifications(store *Store) *int {
	count := new(int)
	store.Subscribe(func(field.State) { *count++ })
	return count
}

func TestAddAreaNotifies(t *testing.T) {
	store := New(nil)
	var seen field.State
	calls := 0
	store.Subscribe(func(state field.State) {
		calls++
		seen = state
	})

	store.AddArea(rectArea("a", 1))

	if calls != 1 {
		t.Fatalf("listener called %d times, want 1", calls)
	}
	if _, exists := seen.Areas["a"]; !exists {
		t.Error("listener state does not contain the new area")
	}
}

func TestAddAreaClampsAndRejects(t *testing.T) {
	store := New(nil)
	notifications := countNotifications(store)

	store.AddArea(field.Area{Shape: geometry.Circle{Radius: 2}})
	store.AddArea(field.Area{ID: "no-shape"})
	if *notifications != 0 {
		t.Errorf("invalid areas notified %d times", *notifications)
	}

	store.AddArea(field.Area{ID: "tiny", Shape: geometry.Circle{Radius: 0.1}})
	area, _ := store.Area("tiny")
	if area.Shape != (geometry.Circle{Radius: geometry.MinSize}) {
		t.Errorf("shape = %+v, want radius clamped to %v", area.Shape, geometry.MinSize)
	}
}

func TestUpdateAreaUnknownIsNoop(t *testing.T) {
	store := New(nil)
	notifications := countNotifications(store)

	name := "renamed"
	if store.UpdateArea("missing", field.AreaPatch{Name: &name}) {
		t.Error("UpdateArea returned true for an unknown id")
	}
	if *notifications != 0 {
		t.Errorf("unknown-id update notified %d times", *notifications)
	}
}

func TestUpdateAreaKeepsShapeKind(t *testing.T) {
	store := New(nil)
	store.AddArea(rectArea("a", 1))

	store.UpdateArea("a", field.AreaPatch{Shape: geometry.Circle{Radius: 3}})
	area, _ := store.Area("a")
	if area.Kind() != geometry.KindRectangle {
		t.Errorf("kind = %q after circle patch, want rectangle", area.Kind())
	}

	store.UpdateArea("a", field.AreaPatch{Shape: geometry.Rect{Width: 0.2, Height: 7}})
	area, _ = store.Area("a")
	if area.Shape != (geometry.Rect{Width: 0.5, Height: 7}) {
		t.Errorf("shape = %+v, want {0.5 7}", area.Shape)
	}
}

func TestNextZIndexMonotonic(t *testing.T) {
	store := New(nil)
	first := store.NextZIndex()
	second := store.NextZIndex()
	if second <= first {
		t.Fatalf("NextZIndex went %d then %d", first, second)
	}

	store.AddArea(rectArea("high", 50))
	if next := store.NextZIndex(); next <= 50 {
		t.Errorf("NextZIndex = %d after inserting z=50, want > 50", next)
	}

	zIndex := 90
	store.UpdateArea("high", field.AreaPatch{ZIndex: &zIndex})
	if next := store.NextZIndex(); next <= 90 {
		t.Errorf("NextZIndex = %d after patching z=90, want > 90", next)
	}

	store.Reset()
	if next := store.NextZIndex(); next <= 90 {
		t.Errorf("NextZIndex = %d after Reset, values must not be reused", next)
	}
}

func TestRaiseArea(t *testing.T) {
	store := New(nil)
	store.AddArea(rectArea("low", 1))
	store.AddArea(rectArea("high", 2))

	if !store.RaiseArea("low") {
		t.Fatal("RaiseArea returned false for an existing area")
	}
	low, _ := store.Area("low")
	high, _ := store.Area("high")
	if low.ZIndex <= high.ZIndex {
		t.Errorf("raised z=%d, other z=%d, want raised on top", low.ZIndex, high.ZIndex)
	}
	if store.RaiseArea("missing") {
		t.Error("RaiseArea returned true for an unknown id")
	}
}

func TestArchiveAndRestore(t *testing.T) {
	store := New(nil)
	store.AddArea(rectArea("a", 1))
	notifications := countNotifications(store)

	if !store.ArchiveArea("a") {
		t.Fatal("ArchiveArea returned false")
	}
	if store.ArchiveArea("a") {
		t.Error("archiving twice reported a change")
	}
	if got := store.State().ActiveAreas(); len(got) != 0 {
		t.Errorf("ActiveAreas = %d entries after archive, want 0", len(got))
	}
	if !store.RestoreArea("a") {
		t.Fatal("RestoreArea returned false")
	}
	if *notifications != 2 {
		t.Errorf("notifications = %d, want 2", *notifications)
	}
}

func TestRemoveEntitiesClearsSelection(t *testing.T) {
	store := New(nil)
	store.PutAgent(field.Agent{ID: "agent-1"})
	store.PutAgent(field.Agent{ID: "agent-2"})
	store.PutStructure(field.Structure{ID: "hq"})
	store.SelectAgents([]string{"agent-1", "agent-2", "ghost"})
	store.SelectStructure("hq")

	state := store.State()
	if len(state.SelectedAgentIDs) != 2 {
		t.Fatalf("selection = %v, unknown agents should be dropped", state.SelectedAgentIDs)
	}

	store.RemoveAgent("agent-1")
	store.RemoveStructure("hq")

	state = store.State()
	if state.AgentSelected("agent-1") {
		t.Error("removed agent still selected")
	}
	if !state.AgentSelected("agent-2") {
		t.Error("remaining agent lost its selection")
	}
	if state.SelectedStructureID != "" {
		t.Errorf("SelectedStructureID = %q after removal, want empty", state.SelectedStructureID)
	}
}

func TestSelectionNoChangeDoesNotNotify(t *testing.T) {
	store := New(nil)
	store.PutAgent(field.Agent{ID: "agent-1"})
	store.SelectAgents([]string{"agent-1"})
	notifications := countNotifications(store)

	store.SelectAgents([]string{"agent-1"})
	store.SelectStructure("")
	store.SelectStructure("unknown")
	if *notifications != 0 {
		t.Errorf("unchanged selection notified %d times", *notifications)
	}
}

func TestBatchNotifiesOnce(t *testing.T) {
	store := New(nil)
	notifications := countNotifications(store)

	store.Batch(func() {
		store.PutAgent(field.Agent{ID: "a"})
		store.Batch(func() {
			store.PutAgent(field.Agent{ID: "b"})
			store.AddArea(rectArea("area", 1))
		})
		if *notifications != 0 {
			t.Errorf("inner batch notified before the outer batch returned")
		}
	})
	if *notifications != 1 {
		t.Errorf("notifications = %d, want 1", *notifications)
	}

	store.Batch(func() {})
	if *notifications != 1 {
		t.Errorf("empty batch notified")
	}
}

func TestUnsubscribe(t *testing.T) {
	store := New(nil)
	calls := 0
	unsubscribe := store.Subscribe(func(field.State) { calls++ })

	store.PutAgent(field.Agent{ID: "a"})
	unsubscribe()
	unsubscribe()
	store.PutAgent(field.Agent{ID: "b"})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestUnsubscribeDuringNotification(t *testing.T) {
	store := New(nil)
	var order []string
	var unsubscribeSecond func()
	store.Subscribe(func(field.State) {
		order = append(order, "first")
		unsubscribeSecond()
	})
	unsubscribeSecond = store.Subscribe(func(field.State) {
		order = append(order, "second")
	})

	store.PutAgent(field.Agent{ID: "a"})
	if len(order) != 1 || order[0] != "first" {
		t.Errorf("order = %v, want [first]", order)
	}
}

func TestListenersRunInSubscriptionOrder(t *testing.T) {
	store := New(nil)
	var order []int
	for index := range 3 {
		store.Subscribe(func(field.State) { order = append(order, index) })
	}
	store.PutAgent(field.Agent{ID: "a"})
	for index, value := range order {
		if value != index {
			t.Fatalf("order = %v, want [0 1 2]", order)
		}
	}
}
