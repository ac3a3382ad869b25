package model

import "time"

// Like records that a user has liked a track. The composite primary key
// guarantees at most one row per (user, track) pair.
type Like struct {
	UserID    string    `json:"userId" gorm:"primaryKey;size:36"`
	TrackID   string    `json:"trackId" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName keeps the GORM table name aligned with the raw SQL layer.
func (Like) TableName() string {
	return "likes"
}
