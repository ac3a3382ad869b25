package player

import (
	"reflect"
	"testing"
)

func TestStoreSequentialMutations(t *testing.T) {
	s := NewStore()

	s.SetActive("t1")
	if got := s.Snapshot(); got.ActiveID != "t1" || len(got.Queue) != 0 {
		t.Fatalf("after SetActive: %+v", got)
	}

	s.SetQueue([]string{"t1", "t2"})
	if got := s.Snapshot(); got.ActiveID != "t1" || !reflect.DeepEqual(got.Queue, []string{"t1", "t2"}) {
		t.Fatalf("after SetQueue: %+v", got)
	}

	s.SetActive("t2")
	if got := s.Snapshot(); got.ActiveID != "t2" || !reflect.DeepEqual(got.Queue, []string{"t1", "t2"}) {
		t.Fatalf("after second SetActive: %+v", got)
	}

	s.Reset()
	if got := s.Snapshot(); got.ActiveID != "" || len(got.Queue) != 0 {
		t.Fatalf("after Reset: %+v", got)
	}
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.SetQueue([]string{"t1", "t2"})

	snap := s.Snapshot()
	snap.Queue[0] = "mutated"

	if got := s.Snapshot(); got.Queue[0] != "t1" {
		t.Fatalf("snapshot mutation leaked into store: %+v", got)
	}
}

func TestStoreReplaceIsAtomicToObservers(t *testing.T) {
	s := NewStore()
	s.SetActive("stale")

	var observed []State
	unsub := s.Subscribe(func(st State) {
		observed = append(observed, st)
	})
	defer unsub()

	s.Replace(State{ActiveID: "t3", Queue: []string{"t1", "t2", "t3"}})

	if len(observed) != 1 {
		t.Fatalf("Replace produced %d notifications, want 1", len(observed))
	}
	got := observed[0]
	if got.ActiveID != "t3" || !reflect.DeepEqual(got.Queue, []string{"t1", "t2", "t3"}) {
		t.Fatalf("observer saw partial state: %+v", got)
	}
}

func TestNextPreviousWrapAround(t *testing.T) {
	s := NewStore()
	s.Replace(State{ActiveID: "t2", Queue: []string{"t1", "t2", "t3"}})

	if got := s.Next(); got != "t3" {
		t.Fatalf("Next() = %q, want t3", got)
	}
	if got := s.Next(); got != "t1" {
		t.Fatalf("Next() at end = %q, want t1 (wrap)", got)
	}
	if got := s.Previous(); got != "t3" {
		t.Fatalf("Previous() at front = %q, want t3 (wrap)", got)
	}
}

func TestNextPreviousWithoutQueueMembership(t *testing.T) {
	s := NewStore()

	// Empty queue.
	if got := s.Next(); got != "" {
		t.Fatalf("Next() on empty store = %q, want \"\"", got)
	}

	// Active set directly, not a member of the queue (permitted).
	s.SetQueue([]string{"t1", "t2"})
	s.SetActive("elsewhere")
	if got := s.Next(); got != "" {
		t.Fatalf("Next() with non-member active = %q, want \"\"", got)
	}
	if got := s.Previous(); got != "" {
		t.Fatalf("Previous() with non-member active = %q, want \"\"", got)
	}
	if got := s.Snapshot(); got.ActiveID != "elsewhere" {
		t.Fatalf("no-move Next/Previous changed active to %q", got.ActiveID)
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	s := NewStore()

	calls := 0
	unsub := s.Subscribe(func(State) { calls++ })

	s.SetActive("t1")
	unsub()
	s.SetActive("t2")

	if calls != 1 {
		t.Fatalf("observer called %d times, want 1", calls)
	}
}
