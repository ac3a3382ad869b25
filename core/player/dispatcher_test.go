package player

import (
	"reflect"
	"testing"

	"EchoFM/core/auth"
	"EchoFM/model"
)

func TestOnPlayUnauthenticated(t *testing.T) {
	store := NewStore()
	store.Replace(State{ActiveID: "t0", Queue: []string{"t0"}})
	before := store.Snapshot()

	prompts := 0
	d := NewDispatcher(store, func() { prompts++ })

	d.OnPlay(nil, "t1", []*model.Track{{ID: "t1"}})

	if prompts != 1 {
		t.Fatalf("auth prompt fired %d times, want 1", prompts)
	}
	if got := store.Snapshot(); !reflect.DeepEqual(got, before) {
		t.Fatalf("store changed for unauthenticated play: %+v, want %+v", got, before)
	}
}

func TestOnPlayAuthenticated(t *testing.T) {
	store := NewStore()
	d := NewDispatcher(store, func() { t.Fatal("auth prompt fired for authenticated user") })

	visible := []*model.Track{
		{ID: "trackA_id"},
		{ID: "trackB_id"},
		{ID: "trackC_id"},
	}
	d.OnPlay(&auth.Session{UserID: "u1"}, "trackC_id", visible)

	got := store.Snapshot()
	if got.ActiveID != "trackC_id" {
		t.Fatalf("active = %q, want trackC_id", got.ActiveID)
	}
	if want := []string{"trackA_id", "trackB_id", "trackC_id"}; !reflect.DeepEqual(got.Queue, want) {
		t.Fatalf("queue = %v, want %v", got.Queue, want)
	}
}

func TestOnPlayKeepsClickedPosition(t *testing.T) {
	store := NewStore()
	d := NewDispatcher(store, func() {})

	visible := []*model.Track{{ID: "t1"}, {ID: "t2"}, {ID: "t3"}}
	d.OnPlay(&auth.Session{UserID: "u1"}, "t2", visible)

	got := store.Snapshot()
	if got.Queue[1] != "t2" || got.ActiveID != "t2" {
		t.Fatalf("clicked track moved: %+v", got)
	}
}

func TestOnPlayObserversSeeSingleUpdate(t *testing.T) {
	store := NewStore()
	d := NewDispatcher(store, func() {})

	updates := 0
	unsub := store.Subscribe(func(st State) {
		updates++
		// The combined update carries both fields at once.
		if st.ActiveID == "t1" && len(st.Queue) == 0 {
			t.Fatal("observer saw active set before queue")
		}
	})
	defer unsub()

	d.OnPlay(&auth.Session{UserID: "u1"}, "t1", []*model.Track{{ID: "t1"}, {ID: "t2"}})

	if updates != 1 {
		t.Fatalf("OnPlay produced %d store updates, want 1", updates)
	}
}
