package model

import "time"

// Track represents an audio track in the music library.
// IDs are server-assigned UUIDs. SongPath and ImagePath are object keys
// inside the MinIO bucket, never filesystem paths.
type Track struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	SongPath  string    `json:"-"` // Raw object key, clients get the derived URL instead
	ImagePath string    `json:"imagePath"`
	CreatedAt time.Time `json:"createdAt"`
}
