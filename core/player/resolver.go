package player

import (
	"context"
	"sync"

	"EchoFM/core/notify"
	"EchoFM/logger"
	"EchoFM/model"
)

// TrackFetcher fetches a single track record by ID. Returns (nil, nil) when
// the track does not exist.
type TrackFetcher interface {
	FetchTrack(ctx context.Context, id string) (*model.Track, error)
}

// Resolved is the derived view of the currently active track: the record
// matching the active ID, plus a loading flag while the fetch is in flight.
type Resolved struct {
	Loading bool
	Track   *model.Track
}

// Resolver recomputes the resolved track view whenever the target ID changes.
// Requests are not cancelled when superseded; instead each fetch carries the
// generation it was started under, and a completion only commits if that
// generation is still current. The final state therefore always matches the
// most recent Resolve call, regardless of completion order.
type Resolver struct {
	fetcher  TrackFetcher
	notifier notify.Notifier

	mu    sync.Mutex
	gen   uint64
	state Resolved
	subs  map[int]func(Resolved)
	nextSubID int

	inflight sync.WaitGroup
}

// NewResolver creates a Resolver over the given fetcher.
func NewResolver(fetcher TrackFetcher, notifier notify.Notifier) *Resolver {
	return &Resolver{
		fetcher:  fetcher,
		notifier: notifier,
		subs:     make(map[int]func(Resolved)),
	}
}

// Resolve switches the target ID. An empty ID clears the view without
// fetching. A non-empty ID marks the view loading and starts exactly one
// fetch; any fetch still in flight for a previous target is left to finish
// and its result discarded.
func (r *Resolver) Resolve(ctx context.Context, id string) {
	r.mu.Lock()
	r.gen++
	gen := r.gen

	if id == "" {
		r.state = Resolved{}
		st := r.state
		fns := r.subscribersLocked()
		r.mu.Unlock()
		for _, fn := range fns {
			fn(st)
		}
		return
	}

	r.state = Resolved{Loading: true, Track: r.state.Track}
	st := r.state
	fns := r.subscribersLocked()
	r.mu.Unlock()
	for _, fn := range fns {
		fn(st)
	}

	r.inflight.Add(1)
	go func() {
		defer r.inflight.Done()
		track, err := r.fetcher.FetchTrack(ctx, id)
		r.commit(gen, id, track, err)
	}()
}

// State returns the current resolved view.
func (r *Resolver) State() Resolved {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Subscribe registers an observer invoked after every committed change.
// The returned function removes the observer.
func (r *Resolver) Subscribe(fn func(Resolved)) func() {
	r.mu.Lock()
	id := r.nextSubID
	r.nextSubID++
	r.subs[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}
}

// Wait blocks until every in-flight fetch has settled. Used during shutdown.
func (r *Resolver) Wait() {
	r.inflight.Wait()
}

// commit applies a fetch result if its generation is still current. A stale
// result means the target changed again before this fetch completed; it is
// dropped without touching the state.
func (r *Resolver) commit(gen uint64, id string, track *model.Track, err error) {
	r.mu.Lock()
	if gen != r.gen {
		r.mu.Unlock()
		logger.Debug("resolver: discarding stale fetch result", logger.String("trackId", id))
		return
	}

	if err != nil {
		r.state = Resolved{}
		fns := r.subscribersLocked()
		st := r.state
		r.mu.Unlock()
		logger.Warn("resolver: track fetch failed", logger.String("trackId", id), logger.ErrorField(err))
		r.notifier.Error("Could not load track")
		for _, fn := range fns {
			fn(st)
		}
		return
	}

	if track == nil {
		r.state = Resolved{}
		fns := r.subscribersLocked()
		st := r.state
		r.mu.Unlock()
		r.notifier.Error("Track not found")
		for _, fn := range fns {
			fn(st)
		}
		return
	}

	r.state = Resolved{Track: track}
	fns := r.subscribersLocked()
	st := r.state
	r.mu.Unlock()
	for _, fn := range fns {
		fn(st)
	}
}

func (r *Resolver) subscribersLocked() []func(Resolved) {
	fns := make([]func(Resolved), 0, len(r.subs))
	for _, fn := range r.subs {
		fns = append(fns, fn)
	}
	return fns
}
