package models

import (
	"time"

	"github.com/google/uuid"
)

// Media kinds stored in Post.FileType.
const (
	KindImage = "image"
	KindVideo = "video"
	KindOther = "other"
)

// Post is one uploaded media item with its caption.
// Rows are never updated; deletion removes the row for good.
type Post struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Caption   string    `gorm:"type:text" json:"caption"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	FileType  string    `gorm:"type:varchar(20);not null" json:"file_type"`
	FileName  string    `gorm:"type:varchar(255)" json:"file_name"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (Post) TableName() string {
	return "posts"
}

// NewPostID returns a UUIDv7. The ids sort in generation order, which the
// store uses to order posts sharing a timestamp.
func NewPostID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// User is an account known to the identity layer
type User struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(320);not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	IsActive     bool      `gorm:"not null" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
