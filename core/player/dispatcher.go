package player

import (
	"EchoFM/core/auth"
	"EchoFM/model"
)

// Dispatcher turns a user's play click into queue state. Playback is gated
// on authentication: without a session the auth prompt fires and no state
// changes.
type Dispatcher struct {
	store      *Store
	authPrompt func()
}

// NewDispatcher creates a Dispatcher. authPrompt is invoked when an
// unauthenticated user tries to play; it must not be nil.
func NewDispatcher(store *Store, authPrompt func()) *Dispatcher {
	return &Dispatcher{store: store, authPrompt: authPrompt}
}

// OnPlay handles a click on clickedID inside the currently visible
// collection. The queue becomes the collection's IDs in display order, so
// next/previous stay scoped to whatever list the user was looking at. The
// clicked track keeps its original position in that order. Active ID and
// queue are swapped in a single store update; observers never see one
// without the other.
func (d *Dispatcher) OnPlay(sess *auth.Session, clickedID string, visible []*model.Track) {
	if sess == nil {
		d.authPrompt()
		return
	}

	ids := make([]string, len(visible))
	for i, track := range visible {
		ids[i] = track.ID
	}

	d.store.Replace(State{ActiveID: clickedID, Queue: ids})
}
