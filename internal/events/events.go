// Package events fans post lifecycle changes out to subscribers.
// Delivery is best effort: a failed publish never fails the operation that
// triggered it.
package events

import (
	"context"
	"time"

	"media-feed/internal/models"
)

const (
	SubjectPostCreated = "post.created"
	SubjectPostDeleted = "post.deleted"
)

// PostCreated is the payload of SubjectPostCreated.
type PostCreated struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Caption   string    `json:"caption"`
	URL       string    `json:"url"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// PostDeleted is the payload of SubjectPostDeleted.
type PostDeleted struct {
	ID       string `json:"id"`
	AuthorID string `json:"author_id"`
}

// Publisher receives lifecycle events.
type Publisher interface {
	PublishPostCreated(ctx context.Context, post *models.Post) error
	PublishPostDeleted(ctx context.Context, post *models.Post) error
}

func NewPostCreated(post *models.Post) PostCreated {
	return PostCreated{
		ID:        post.ID,
		AuthorID:  post.UserID,
		Caption:   post.Caption,
		URL:       post.URL,
		Type:      post.FileType,
		CreatedAt: post.CreatedAt,
	}
}

// Multi publishes to every publisher and returns the first error.
type Multi []Publisher

func (m Multi) PublishPostCreated(ctx context.Context, post *models.Post) error {
	var first error
	for _, p := range m {
		if err := p.PublishPostCreated(ctx, post); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m Multi) PublishPostDeleted(ctx context.Context, post *models.Post) error {
	var first error
	for _, p := range m {
		if err := p.PublishPostDeleted(ctx, post); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Nop drops every event.
type Nop struct{}

func (Nop) PublishPostCreated(context.Context, *models.Post) error { return nil }
func (Nop) PublishPostDeleted(context.Context, *models.Post) error { return nil }
