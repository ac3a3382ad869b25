package repository

import (
	"context"
	"errors"
	"fmt"

	"EchoFM/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicateLike is returned when a (user, track) like already exists.
var ErrDuplicateLike = errors.New("like already exists")

// LikeRepository defines the interface for like relation operations.
type LikeRepository interface {
	Exists(ctx context.Context, userID, trackID string) (bool, error)
	Create(ctx context.Context, userID, trackID string) error
	Delete(ctx context.Context, userID, trackID string) error
}

// gormLikeRepository implements LikeRepository on GORM.
type gormLikeRepository struct {
	db *gorm.DB
}

// NewGormLikeRepository creates a new gormLikeRepository.
func NewGormLikeRepository(db *gorm.DB) LikeRepository {
	return &gormLikeRepository{db: db}
}

// Exists reports whether the (user, track) like relation is present.
func (r *gormLikeRepository) Exists(ctx context.Context, userID, trackID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("user_id = ? AND track_id = ?", userID, trackID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check like existence for (%s, %s): %w", userID, trackID, err)
	}
	return count > 0, nil
}

// Create inserts the like relation. A second insert for the same pair hits
// the composite primary key and surfaces as ErrDuplicateLike so callers can
// treat it as a no-op.
func (r *gormLikeRepository) Create(ctx context.Context, userID, trackID string) error {
	like := &model.Like{UserID: userID, TrackID: trackID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(like)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateLike
		}
		return fmt.Errorf("failed to create like for (%s, %s): %w", userID, trackID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrDuplicateLike
	}
	return nil
}

// Delete removes the like relation. Deleting an absent pair is a no-op.
func (r *gormLikeRepository) Delete(ctx context.Context, userID, trackID string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND track_id = ?", userID, trackID).
		Delete(&model.Like{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete like for (%s, %s): %w", userID, trackID, err)
	}
	return nil
}
