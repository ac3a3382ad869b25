package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"EchoFM/db"
	"EchoFM/model"

	"github.com/go-redis/redis/v8"
)

// trackTTL 缓存track记录的过期时间
const trackTTL = 30 * time.Minute

// GetTrackKey 根据track ID生成Redis键
func GetTrackKey(trackID string) string {
	return fmt.Sprintf("track:%s", trackID)
}

// GetTrack returns the cached track record, or (nil, nil) on a cache miss.
func GetTrack(ctx context.Context, trackID string) (*model.Track, error) {
	if db.RedisClient == nil {
		return nil, fmt.Errorf("Redis client not initialized")
	}

	raw, err := db.RedisClient.Get(ctx, GetTrackKey(trackID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached track %s: %w", trackID, err)
	}

	var track model.Track
	if err := json.Unmarshal([]byte(raw), &track); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached track %s: %w", trackID, err)
	}
	return &track, nil
}

// SetTrack stores a track record in the cache.
func SetTrack(ctx context.Context, track *model.Track) error {
	if db.RedisClient == nil {
		return fmt.Errorf("Redis client not initialized")
	}

	raw, err := json.Marshal(track)
	if err != nil {
		return fmt.Errorf("failed to marshal track %s: %w", track.ID, err)
	}

	if err := db.RedisClient.Set(ctx, GetTrackKey(track.ID), raw, trackTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache track %s: %w", track.ID, err)
	}
	return nil
}

// InvalidateTrack removes a track record from the cache.
func InvalidateTrack(ctx context.Context, trackID string) error {
	if db.RedisClient == nil {
		return fmt.Errorf("Redis client not initialized")
	}

	if err := db.RedisClient.Del(ctx, GetTrackKey(trackID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate track %s: %w", trackID, err)
	}
	return nil
}
