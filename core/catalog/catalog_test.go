package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"EchoFM/core/auth"
	"EchoFM/model"
)

// fakeTrackRepo implements repository.TrackRepository for gateway tests.
type fakeTrackRepo struct {
	byUser map[string][]*model.Track
	newest []*model.Track
	err    error
}

func (f *fakeTrackRepo) CreateTrack(ctx context.Context, track *model.Track) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeTrackRepo) GetTrackByID(ctx context.Context, id string) (*model.Track, error) {
	return nil, nil
}

func (f *fakeTrackRepo) ListNewest(ctx context.Context, limit int) ([]*model.Track, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.newest, nil
}

func (f *fakeTrackRepo) ListByUserID(ctx context.Context, userID string) ([]*model.Track, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byUser[userID], nil
}

func (f *fakeTrackRepo) ListLikedByUserID(ctx context.Context, userID string) ([]*model.Track, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byUser[userID], nil
}

func (f *fakeTrackRepo) SearchByTitle(ctx context.Context, title string) ([]*model.Track, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.newest, nil
}

func TestListByUserNewestFirst(t *testing.T) {
	newer := &model.Track{ID: "t2", CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}
	older := &model.Track{ID: "t1", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	repo := &fakeTrackRepo{byUser: map[string][]*model.Track{
		"u1": {newer, older},
	}}
	g := NewGateway(repo)

	got := g.ListByUser(context.Background(), &auth.Session{UserID: "u1"})
	if len(got) != 2 {
		t.Fatalf("ListByUser() returned %d tracks, want 2", len(got))
	}
	if got[0].ID != "t2" || got[1].ID != "t1" {
		t.Fatalf("ListByUser() order = [%s %s], want [t2 t1]", got[0].ID, got[1].ID)
	}
}

func TestSessionScopedQueriesWithoutSession(t *testing.T) {
	repo := &fakeTrackRepo{byUser: map[string][]*model.Track{
		"u1": {{ID: "t1"}},
	}}
	g := NewGateway(repo)

	if got := g.ListByUser(context.Background(), nil); len(got) != 0 {
		t.Fatalf("ListByUser(nil session) returned %d tracks, want 0", len(got))
	}
	if got := g.ListLiked(context.Background(), nil); len(got) != 0 {
		t.Fatalf("ListLiked(nil session) returned %d tracks, want 0", len(got))
	}
}

func TestReadFailuresDegradeToEmpty(t *testing.T) {
	repo := &fakeTrackRepo{err: errors.New("connection refused")}
	g := NewGateway(repo)
	sess := &auth.Session{UserID: "u1"}

	if got := g.ListNewest(context.Background()); got == nil || len(got) != 0 {
		t.Fatalf("ListNewest() on error = %v, want empty slice", got)
	}
	if got := g.ListByUser(context.Background(), sess); got == nil || len(got) != 0 {
		t.Fatalf("ListByUser() on error = %v, want empty slice", got)
	}
	if got := g.ListLiked(context.Background(), sess); got == nil || len(got) != 0 {
		t.Fatalf("ListLiked() on error = %v, want empty slice", got)
	}
	if got := g.Search(context.Background(), "x"); got == nil || len(got) != 0 {
		t.Fatalf("Search() on error = %v, want empty slice", got)
	}
}

func TestSearchEmptyFragmentFallsBackToNewest(t *testing.T) {
	repo := &fakeTrackRepo{newest: []*model.Track{{ID: "t1"}}}
	g := NewGateway(repo)

	got := g.Search(context.Background(), "")
	if len(got) != 1 || got[0].ID != "t1" {
		t.Fatalf("Search(\"\") = %v, want newest list", got)
	}
}
