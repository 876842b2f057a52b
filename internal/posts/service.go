// Package posts creates and deletes posts.
//
// Create uploads first and inserts second, so every row points at media that
// exists. If the insert fails after a successful upload the media stays at
// the provider as an orphan; the failure is reported and logged, never
// rolled back. Delete removes the row only and leaves the media in place.
package posts

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"media-feed/internal/events"
	"media-feed/internal/identity"
	"media-feed/internal/media"
	"media-feed/internal/models"
	"media-feed/internal/store"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = store.ErrNotFound
	ErrForbidden = errors.New("you are not allowed to delete this post")
)

// Uploader stores media and reports where it ended up.
type Uploader interface {
	Store(ctx context.Context, r io.Reader, filenameHint, declaredType string) (*media.Upload, error)
}

// Repository is the subset of the post store used here.
type Repository interface {
	Insert(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	DeleteByID(ctx context.Context, id string) error
}

type CreateInput struct {
	Caption     string
	File        io.Reader
	FileName    string
	ContentType string
}

type Service struct {
	uploader  Uploader
	repo      Repository
	publisher events.Publisher
	now       func() time.Time
}

func NewService(uploader Uploader, repo Repository, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{
		uploader:  uploader,
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

// Create uploads the media and records a post owned by caller.
func (s *Service) Create(ctx context.Context, caller identity.Identity, in CreateInput) (*models.Post, error) {
	up, err := s.uploader.Store(ctx, in.File, in.FileName, in.ContentType)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:        models.NewPostID(),
		UserID:    caller.ID,
		Caption:   in.Caption,
		URL:       up.URL,
		FileType:  up.Kind,
		FileName:  up.Name,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, post); err != nil {
		slog.Error("Orphan upload: media stored but post insert failed",
			"url", up.URL, "owner", caller.ID, "error", err)
		return nil, err
	}

	// The row is committed; announce it even if the caller has gone away.
	if err := s.publisher.PublishPostCreated(context.WithoutCancel(ctx), post); err != nil {
		slog.Warn("Failed to publish post.created", "post_id", post.ID, "error", err)
	}
	return post, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Delete removes a post owned by caller. Media at the provider is kept.
func (s *Service) Delete(ctx context.Context, caller identity.Identity, id string) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if post.UserID != caller.ID {
		return ErrForbidden
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	if err := s.publisher.PublishPostDeleted(context.WithoutCancel(ctx), post); err != nil {
		slog.Warn("Failed to publish post.deleted", "post_id", id, "error", err)
	}
	return nil
}
