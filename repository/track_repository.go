package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"EchoFM/db"
	"EchoFM/model"

	"github.com/google/uuid"
)

// TrackRepository defines the interface for track data operations.
type TrackRepository interface {
	CreateTrack(ctx context.Context, track *model.Track) (string, error)
	GetTrackByID(ctx context.Context, id string) (*model.Track, error)
	ListNewest(ctx context.Context, limit int) ([]*model.Track, error)
	ListByUserID(ctx context.Context, userID string) ([]*model.Track, error)
	ListLikedByUserID(ctx context.Context, userID string) ([]*model.Track, error)
	SearchByTitle(ctx context.Context, title string) ([]*model.Track, error)
}

// mysqlTrackRepository implements TrackRepository for MySQL.
type mysqlTrackRepository struct {
	DB *sql.DB
}

// NewMySQLTrackRepository creates a new instance of mysqlTrackRepository.
func NewMySQLTrackRepository() TrackRepository {
	return &mysqlTrackRepository{DB: db.DB}
}

const trackColumns = `id, user_id, title, author, song_path, image_path, created_at`

// CreateTrack adds a new track to the database and returns its assigned ID.
func (r *mysqlTrackRepository) CreateTrack(ctx context.Context, track *model.Track) (string, error) {
	query := `INSERT INTO tracks (id, user_id, title, author, song_path, image_path, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	stmt, err := r.DB.PrepareContext(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to prepare statement for CreateTrack: %w", err)
	}
	defer stmt.Close()

	id := track.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := track.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = stmt.ExecContext(ctx, id, track.UserID, track.Title, track.Author, track.SongPath, track.ImagePath, createdAt)
	if err != nil {
		return "", fmt.Errorf("failed to execute CreateTrack: %w", err)
	}

	track.ID = id
	track.CreatedAt = createdAt
	return id, nil
}

// GetTrackByID retrieves a track by its ID. Returns (nil, nil) when not found.
func (r *mysqlTrackRepository) GetTrackByID(ctx context.Context, id string) (*model.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks WHERE id = ?`
	row := r.DB.QueryRowContext(ctx, query, id)

	track := &model.Track{}
	err := row.Scan(&track.ID, &track.UserID, &track.Title, &track.Author, &track.SongPath, &track.ImagePath, &track.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Track not found
		}
		return nil, fmt.Errorf("failed to scan track by ID %s: %w", id, err)
	}
	return track, nil
}

// ListNewest retrieves the most recently created tracks, newest first.
func (r *mysqlTrackRepository) ListNewest(ctx context.Context, limit int) ([]*model.Track, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + trackColumns + ` FROM tracks ORDER BY created_at DESC LIMIT ?`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query newest tracks: %w", err)
	}
	defer rows.Close()

	return scanTracks(rows, "ListNewest")
}

// ListByUserID retrieves all tracks owned by a user, newest first.
func (r *mysqlTrackRepository) ListByUserID(ctx context.Context, userID string) ([]*model.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks for user ID %s: %w", userID, err)
	}
	defer rows.Close()

	return scanTracks(rows, "ListByUserID")
}

// ListLikedByUserID retrieves the tracks a user has liked, most recently
// liked first.
func (r *mysqlTrackRepository) ListLikedByUserID(ctx context.Context, userID string) ([]*model.Track, error) {
	query := `SELECT t.id, t.user_id, t.title, t.author, t.song_path, t.image_path, t.created_at
	           FROM tracks t
	           INNER JOIN likes l ON l.track_id = t.id
	           WHERE l.user_id = ?
	           ORDER BY l.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query liked tracks for user ID %s: %w", userID, err)
	}
	defer rows.Close()

	return scanTracks(rows, "ListLikedByUserID")
}

// SearchByTitle retrieves tracks whose title contains the given fragment,
// newest first.
func (r *mysqlTrackRepository) SearchByTitle(ctx context.Context, title string) ([]*model.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks WHERE title LIKE ? ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, "%"+title+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search tracks by title %q: %w", title, err)
	}
	defer rows.Close()

	return scanTracks(rows, "SearchByTitle")
}

func scanTracks(rows *sql.Rows, op string) ([]*model.Track, error) {
	tracks := make([]*model.Track, 0)
	for rows.Next() {
		track := &model.Track{}
		err := rows.Scan(&track.ID, &track.UserID, &track.Title, &track.Author, &track.SongPath, &track.ImagePath, &track.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track in %s: %w", op, err)
		}
		tracks = append(tracks, track)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in %s: %w", op, err)
	}

	return tracks, nil
}
