package cache

import (
	"context"

	"EchoFM/logger"
	"EchoFM/model"
	"EchoFM/repository"
)

// CachedTrackFetcher reads track records through the Redis cache, falling
// back to the repository on a miss. Cache failures degrade to a plain
// repository read. Satisfies player.TrackFetcher.
type CachedTrackFetcher struct {
	tracks repository.TrackRepository
}

// NewCachedTrackFetcher creates a fetcher over the given repository.
func NewCachedTrackFetcher(tracks repository.TrackRepository) *CachedTrackFetcher {
	return &CachedTrackFetcher{tracks: tracks}
}

// FetchTrack returns the track record for id, or (nil, nil) when not found.
func (f *CachedTrackFetcher) FetchTrack(ctx context.Context, id string) (*model.Track, error) {
	cached, err := GetTrack(ctx, id)
	if err != nil {
		logger.Debug("track cache read failed, falling back to database",
			logger.String("trackId", id),
			logger.ErrorField(err))
	} else if cached != nil {
		return cached, nil
	}

	track, err := f.tracks.GetTrackByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if track == nil {
		return nil, nil
	}

	if err := SetTrack(ctx, track); err != nil {
		logger.Debug("track cache write failed",
			logger.String("trackId", id),
			logger.ErrorField(err))
	}
	return track, nil
}
