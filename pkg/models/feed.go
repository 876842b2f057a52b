package models

import "time"

// FeedItem is a post as seen by one viewer
type FeedItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Caption   string    `json:"caption"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	FileType  string    `json:"file_type"`
	FileName  string    `json:"file_name"`
	IsOwner   bool      `json:"is_owner"`
	Email     string    `json:"email"`
}

// UnknownEmail is shown for posts whose owner account no longer exists.
const UnknownEmail = "Unknown"
