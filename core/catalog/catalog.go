package catalog

import (
	"context"

	"EchoFM/core/auth"
	"EchoFM/logger"
	"EchoFM/model"
	"EchoFM/repository"
)

// Gateway exposes read-only catalog queries. Reads fail quietly: every
// failure is logged and degraded to an empty slice, never an error. Callers
// therefore cannot distinguish "store unreachable" from "no rows"; the
// repository underneath still returns real errors for callers that need them.
type Gateway struct {
	tracks repository.TrackRepository
}

// NewGateway creates a Gateway over the given track repository.
func NewGateway(tracks repository.TrackRepository) *Gateway {
	return &Gateway{tracks: tracks}
}

// ListNewest returns the newest tracks, newest first.
func (g *Gateway) ListNewest(ctx context.Context) []*model.Track {
	tracks, err := g.tracks.ListNewest(ctx, 0)
	if err != nil {
		logger.Warn("catalog: list newest failed", logger.ErrorField(err))
		return []*model.Track{}
	}
	return tracks
}

// ListByUser returns the session user's own tracks, newest first.
// A nil session yields no matches, not an error.
func (g *Gateway) ListByUser(ctx context.Context, sess *auth.Session) []*model.Track {
	if sess == nil {
		return []*model.Track{}
	}
	tracks, err := g.tracks.ListByUserID(ctx, sess.UserID)
	if err != nil {
		logger.Warn("catalog: list by user failed",
			logger.String("userId", sess.UserID),
			logger.ErrorField(err))
		return []*model.Track{}
	}
	return tracks
}

// ListLiked returns the tracks the session user has liked, most recently
// liked first. A nil session yields no matches, not an error.
func (g *Gateway) ListLiked(ctx context.Context, sess *auth.Session) []*model.Track {
	if sess == nil {
		return []*model.Track{}
	}
	tracks, err := g.tracks.ListLikedByUserID(ctx, sess.UserID)
	if err != nil {
		logger.Warn("catalog: list liked failed",
			logger.String("userId", sess.UserID),
			logger.ErrorField(err))
		return []*model.Track{}
	}
	return tracks
}

// Search returns tracks whose title contains the fragment, newest first.
// An empty fragment returns the newest tracks instead.
func (g *Gateway) Search(ctx context.Context, title string) []*model.Track {
	if title == "" {
		return g.ListNewest(ctx)
	}
	tracks, err := g.tracks.SearchByTitle(ctx, title)
	if err != nil {
		logger.Warn("catalog: search failed",
			logger.String("title", title),
			logger.ErrorField(err))
		return []*model.Track{}
	}
	return tracks
}
