package like

import (
	"context"
	"errors"
	"testing"

	"EchoFM/core/auth"
	"EchoFM/core/notify"
	"EchoFM/repository"
)

// memLikeRepo implements repository.LikeRepository in memory.
type memLikeRepo struct {
	rows      map[[2]string]bool
	createErr error
	deleteErr error
	inserts   int
}

func newMemLikeRepo() *memLikeRepo {
	return &memLikeRepo{rows: make(map[[2]string]bool)}
}

func (m *memLikeRepo) Exists(ctx context.Context, userID, trackID string) (bool, error) {
	return m.rows[[2]string{userID, trackID}], nil
}

func (m *memLikeRepo) Create(ctx context.Context, userID, trackID string) error {
	if m.createErr != nil {
		return m.createErr
	}
	key := [2]string{userID, trackID}
	if m.rows[key] {
		return repository.ErrDuplicateLike
	}
	m.rows[key] = true
	m.inserts++
	return nil
}

func (m *memLikeRepo) Delete(ctx context.Context, userID, trackID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.rows, [2]string{userID, trackID})
	return nil
}

func TestPressTransitions(t *testing.T) {
	repo := newMemLikeRepo()
	rec := &notify.Recorder{}
	sess := &auth.Session{UserID: "u1"}

	refreshes := 0
	tog := NewToggle(repo, rec, sess, "t1", nil, func() { refreshes++ })
	tog.Load(context.Background())

	if tog.Liked() {
		t.Fatal("initial state is Liked, want NotLiked")
	}

	tog.Press(context.Background())
	if !tog.Liked() {
		t.Fatal("state after like press is NotLiked, want Liked")
	}
	if !repo.rows[[2]string{"u1", "t1"}] {
		t.Fatal("like row missing after like press")
	}

	tog.Press(context.Background())
	if tog.Liked() {
		t.Fatal("state after unlike press is Liked, want NotLiked")
	}
	if repo.rows[[2]string{"u1", "t1"}] {
		t.Fatal("like row still present after unlike press")
	}

	if refreshes != 2 {
		t.Fatalf("refresh fired %d times, want 2", refreshes)
	}
}

func TestLikeIdempotent(t *testing.T) {
	repo := newMemLikeRepo()
	sess := &auth.Session{UserID: "u1"}
	rec := &notify.Recorder{}

	// Two toggles over the same pair, both believing the track is unliked,
	// pressing like in a row: exactly one relation row results.
	first := NewToggle(repo, rec, sess, "t1", nil, nil)
	second := NewToggle(repo, rec, sess, "t1", nil, nil)
	first.Press(context.Background())
	second.Press(context.Background())

	if repo.inserts != 1 {
		t.Fatalf("%d effective inserts, want 1", repo.inserts)
	}
	if !first.Liked() || !second.Liked() {
		t.Fatal("duplicate like press did not settle on Liked")
	}
	if len(rec.Errors) != 0 {
		t.Fatalf("duplicate like press surfaced errors: %v", rec.Errors)
	}
}

func TestUnlikeWhileNotLikedIsNoOp(t *testing.T) {
	repo := newMemLikeRepo()
	sess := &auth.Session{UserID: "u1"}
	rec := &notify.Recorder{}

	tog := NewToggle(repo, rec, sess, "t1", nil, nil)
	tog.Load(context.Background())
	// Force the machine through like then two unlikes via interleaved state.
	tog.Press(context.Background()) // like
	tog.Press(context.Background()) // unlike
	tog.Press(context.Background()) // like again
	tog.Press(context.Background()) // unlike
	tog.Press(context.Background()) // like: still must work after no-op deletes

	if !tog.Liked() {
		t.Fatal("toggle lost track of state across transitions")
	}
	if len(rec.Errors) != 0 {
		t.Fatalf("clean transitions surfaced errors: %v", rec.Errors)
	}
}

func TestFailedTransitionKeepsState(t *testing.T) {
	repo := newMemLikeRepo()
	sess := &auth.Session{UserID: "u1"}

	rec := &notify.Recorder{}
	tog := NewToggle(repo, rec, sess, "t1", nil, nil)

	repo.createErr = errors.New("deadlock")
	tog.Press(context.Background())
	if tog.Liked() {
		t.Fatal("failed insert still transitioned to Liked")
	}
	if len(rec.Errors) != 1 {
		t.Fatalf("failed insert surfaced %d errors, want 1", len(rec.Errors))
	}

	repo.createErr = nil
	tog.Press(context.Background())
	if !tog.Liked() {
		t.Fatal("recovery like failed")
	}

	repo.deleteErr = errors.New("deadlock")
	tog.Press(context.Background())
	if !tog.Liked() {
		t.Fatal("failed delete still transitioned to NotLiked")
	}
	if len(rec.Errors) != 2 {
		t.Fatalf("failed delete surfaced %d total errors, want 2", len(rec.Errors))
	}
}

func TestUnauthenticatedPressFiresPrompt(t *testing.T) {
	repo := newMemLikeRepo()
	rec := &notify.Recorder{}

	prompts := 0
	tog := NewToggle(repo, rec, nil, "t1", func() { prompts++ }, nil)
	tog.Load(context.Background())
	tog.Press(context.Background())

	if prompts != 1 {
		t.Fatalf("auth prompt fired %d times, want 1", prompts)
	}
	if tog.Liked() {
		t.Fatal("unauthenticated press transitioned state")
	}
	if len(repo.rows) != 0 {
		t.Fatal("unauthenticated press touched the store")
	}
}
