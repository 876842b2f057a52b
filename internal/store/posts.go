// Package store persists post records.
package store

import (
	"context"
	"errors"
	"fmt"

	"media-feed/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrNotFound means no post has the requested id.
	ErrNotFound = errors.New("post not found")
	// ErrStoreFailed matches every *StoreError.
	ErrStoreFailed = errors.New("store failure")
)

// StoreError wraps a persistence failure (connectivity, constraint).
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s post: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStoreFailed }

type PostStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

func (s *PostStore) Insert(ctx context.Context, post *models.Post) error {
	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return &StoreError{Op: "insert", Err: err}
	}
	return nil
}

// ListByRecency returns every post, newest first. Posts with equal
// timestamps come back latest insert first; ids from models.NewPostID are
// time-ordered.
func (s *PostStore) ListByRecency(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&posts).Error; err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}
	return posts, nil
}

func (s *PostStore) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &StoreError{Op: "get", Err: err}
	}
	return &post, nil
}

// DeleteByID removes the row in a single statement, so of two racing
// deletes only one sees a deleted row.
func (s *PostStore) DeleteByID(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{})
	if result.Error != nil {
		return &StoreError{Op: "delete", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Count(&n).Error; err != nil {
		return 0, &StoreError{Op: "count", Err: err}
	}
	return n, nil
}
