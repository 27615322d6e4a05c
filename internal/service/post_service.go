// Package service implements the application's business operations.
package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"ripple/internal/models"
	"ripple/internal/uow"

	"gorm.io/gorm"
)

// MaxContentLength is the upper bound on post content after trimming.
const MaxContentLength = 256

// CreatePostInput is the caller-supplied payload for CreatePost.
type CreatePostInput struct {
	Content string `json:"content"`
}

// PostService exposes the two post operations. A fresh unit of work is built
// per call so no transaction state leaks between requests.
type PostService struct {
	db *gorm.DB
}

// NewPostService creates a post service on top of the ambient connection.
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// ValidateContent trims the content and enforces the 1-256 character rule.
// The router applies the same rule before the service runs, mirroring
// schema-level input validation.
func ValidateContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", models.NewValidationError("Content is required")
	}
	// The bound is characters, not bytes; multibyte content counts per rune.
	if utf8.RuneCountInString(trimmed) > MaxContentLength {
		return "", models.NewValidationError("Content too long (max 256 characters)")
	}
	return trimmed, nil
}

// ListPosts returns all posts newest-first. Public: no authorization check.
func (s *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	u := uow.New(s.db)
	return u.Posts.FindAll(ctx)
}

// CreatePost inserts one post inside a transaction, snapshotting the author's
// display name and profile picture from the authenticated user. The caller
// guarantees user is present; this is a contract, not a runtime check.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput, user *models.User) (*models.Post, error) {
	content, err := ValidateContent(in.Content)
	if err != nil {
		return nil, err
	}

	u := uow.New(s.db)

	var created *models.Post
	err = u.Transact(ctx, func(tx *gorm.DB) error {
		u.UseTransaction(tx)

		post := &models.Post{
			Content:        content,
			AuthorName:     user.FullName,
			ProfilePicture: user.ImageURL,
		}

		created, err = u.Posts.Create(ctx, post)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}
