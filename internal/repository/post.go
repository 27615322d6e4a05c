// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	// FindAll returns every post ordered by identifier descending.
	// Identifiers are time-ordered, so this is newest-first.
	FindAll(ctx context.Context) ([]models.Post, error)
	// Create inserts one post and returns the inserted row.
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository bound to db, which may be
// either the ambient connection or a transaction handle.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) FindAll(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}
