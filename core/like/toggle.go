package like

import (
	"context"
	"errors"
	"sync"

	"EchoFM/core/auth"
	"EchoFM/core/notify"
	"EchoFM/logger"
	"EchoFM/repository"
)

// Toggle is the two-state like machine for one (session, track) pair:
// Liked or NotLiked. A failed transition leaves the state where it was and
// surfaces exactly one error notification. Unauthenticated presses fire the
// auth prompt instead of transitioning.
type Toggle struct {
	likes      repository.LikeRepository
	notifier   notify.Notifier
	authPrompt func()
	refresh    func() // re-fetch of dependent views after a successful transition

	sess    *auth.Session
	trackID string

	mu    sync.Mutex
	liked bool
}

// NewToggle creates a Toggle for one track and session. refresh and
// authPrompt may be nil.
func NewToggle(likes repository.LikeRepository, notifier notify.Notifier, sess *auth.Session, trackID string, authPrompt, refresh func()) *Toggle {
	return &Toggle{
		likes:      likes,
		notifier:   notifier,
		authPrompt: authPrompt,
		refresh:    refresh,
		sess:       sess,
		trackID:    trackID,
	}
}

// Load determines the initial state with a one-time existence check.
// Without a session the state is NotLiked and no query is issued. A failed
// check degrades to NotLiked quietly (reads fail quietly).
func (t *Toggle) Load(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sess == nil {
		t.liked = false
		return
	}

	liked, err := t.likes.Exists(ctx, t.sess.UserID, t.trackID)
	if err != nil {
		logger.Warn("like: existence check failed",
			logger.String("trackId", t.trackID),
			logger.ErrorField(err))
		t.liked = false
		return
	}
	t.liked = liked
}

// Liked reports the current state.
func (t *Toggle) Liked() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.liked
}

// Press performs the transition for the current state: like when NotLiked,
// unlike when Liked.
func (t *Toggle) Press(ctx context.Context) {
	if t.sess == nil {
		if t.authPrompt != nil {
			t.authPrompt()
		}
		return
	}

	t.mu.Lock()
	liked := t.liked
	t.mu.Unlock()

	if liked {
		t.unlike(ctx)
	} else {
		t.like(ctx)
	}
}

func (t *Toggle) like(ctx context.Context) {
	err := t.likes.Create(ctx, t.sess.UserID, t.trackID)
	if err != nil && !errors.Is(err, repository.ErrDuplicateLike) {
		logger.Error("like: insert failed",
			logger.String("trackId", t.trackID),
			logger.ErrorField(err))
		t.notifier.Error("Could not like track")
		return
	}

	t.mu.Lock()
	t.liked = true
	t.mu.Unlock()

	t.notifier.Success("Liked!")
	if t.refresh != nil {
		t.refresh()
	}
}

func (t *Toggle) unlike(ctx context.Context) {
	if err := t.likes.Delete(ctx, t.sess.UserID, t.trackID); err != nil {
		logger.Error("like: delete failed",
			logger.String("trackId", t.trackID),
			logger.ErrorField(err))
		t.notifier.Error("Could not remove like")
		return
	}

	t.mu.Lock()
	t.liked = false
	t.mu.Unlock()

	t.notifier.Success("Like removed")
	if t.refresh != nil {
		t.refresh()
	}
}
