package player

import "sync"

// State is the complete playback queue state: the ordered queue of track IDs
// and the currently active ID ("" when nothing is selected). Every mutation
// swaps the state as a whole, so readers never observe a half-applied update.
type State struct {
	Queue    []string `json:"queue"`
	ActiveID string   `json:"activeId"`
}

// Store holds the process-wide playback queue. It is injectable so tests and
// embedded tools can run isolated instances; the server creates exactly one.
// The active ID is not required to be a member of the queue: selecting a
// single track (for example from a liked-song page) sets the active ID
// without touching the queue, and Next/Previous simply refuse to move.
type Store struct {
	mu    sync.RWMutex
	state State
	subs  map[int]func(State)
	nextSubID int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{subs: make(map[int]func(State))}
}

// SetActive sets the active track ID without altering the queue.
func (s *Store) SetActive(id string) {
	s.mu.Lock()
	s.state.ActiveID = id
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(st)
}

// SetQueue replaces the queue wholesale.
func (s *Store) SetQueue(ids []string) {
	s.mu.Lock()
	s.state.Queue = append([]string(nil), ids...)
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(st)
}

// Replace swaps the entire state in one step. The play-intent dispatcher uses
// this so that active and queue always change together.
func (s *Store) Replace(st State) {
	s.mu.Lock()
	s.state = State{
		Queue:    append([]string(nil), st.Queue...),
		ActiveID: st.ActiveID,
	}
	out := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(out)
}

// Reset clears the queue and the active ID.
func (s *Store) Reset() {
	s.Replace(State{})
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Next advances the active ID to the following queue entry, wrapping to the
// first entry at the end. It returns the new active ID, or "" (and changes
// nothing) when the queue is empty or the active ID is not a queue member.
func (s *Store) Next() string {
	return s.step(1)
}

// Previous moves the active ID to the preceding queue entry, wrapping to the
// last entry at the front. Same no-move conditions as Next.
func (s *Store) Previous() string {
	return s.step(-1)
}

func (s *Store) step(delta int) string {
	s.mu.Lock()
	idx := -1
	for i, id := range s.state.Queue {
		if id == s.state.ActiveID && s.state.ActiveID != "" {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ""
	}

	n := len(s.state.Queue)
	next := (idx + delta + n) % n
	s.state.ActiveID = s.state.Queue[next]
	id := s.state.ActiveID
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(st)
	return id
}

// Subscribe registers an observer invoked after every committed state change
// with a snapshot of the new state. The returned function removes the
// observer. Callbacks run on the mutating goroutine, outside the store lock.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) snapshotLocked() State {
	return State{
		Queue:    append([]string(nil), s.state.Queue...),
		ActiveID: s.state.ActiveID,
	}
}

func (s *Store) publish(st State) {
	s.mu.RLock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(st)
	}
}
