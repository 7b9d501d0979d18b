package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nexapost/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrDuplicateSlug = errors.New("slug already in use")
)

// ValidationError 描述单个字段校验失败。
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PostService wraps post related database operations.
type PostService struct {
	db *gorm.DB
}

// PostInput represents fields accepted when creating or updating a post.
type PostInput struct {
	Title    string
	Tagline  string
	Slug     string
	Content  string
	ImageURL string
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// Create persists a new post in a single transaction. The store assigns
// the identity and the creation timestamp; a colliding slug fails with
// ErrDuplicateSlug and leaves the store untouched.
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	normalized, err := validatePostInput(input)
	if err != nil {
		return nil, err
	}

	post := db.Post{
		Title:     normalized.Title,
		Tagline:   normalized.Tagline,
		Slug:      normalized.Slug,
		Content:   normalized.Content,
		ImageURL:  normalized.ImageURL,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		taken, err := slugTaken(tx, normalized.Slug, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateSlug
		}
		return tx.Create(&post).Error
	}); err != nil {
		return nil, err
	}

	return &post, nil
}

// Update overwrites all mutable fields of an existing post, preserving
// the original creation timestamp. A slug colliding with a different
// post fails with ErrDuplicateSlug.
func (s *PostService) Update(sno uint, input PostInput) (*db.Post, error) {
	normalized, err := validatePostInput(input)
	if err != nil {
		return nil, err
	}

	var existing db.Post
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&existing, sno).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		taken, err := slugTaken(tx, normalized.Slug, existing.Sno)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateSlug
		}

		existing.Title = normalized.Title
		existing.Tagline = normalized.Tagline
		existing.Slug = normalized.Slug
		existing.Content = normalized.Content
		existing.ImageURL = normalized.ImageURL

		return tx.Save(&existing).Error
	}); err != nil {
		return nil, err
	}

	return &existing, nil
}

// Delete removes a post permanently. Deleting a missing identity is an
// error, not a no-op.
func (s *PostService) Delete(sno uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&db.Post{}, sno)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPostNotFound
		}
		return nil
	})
}

// Get fetches a post by its internal identity.
func (s *PostService) Get(sno uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.First(&post, sno).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetBySlug fetches a post by its external slug identity.
func (s *PostService) GetBySlug(slug string) (*db.Post, error) {
	var post db.Post
	if err := s.db.Where("slug = ?", strings.TrimSpace(slug)).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ListAllByRecency returns all posts newest first. The timestamp only
// has second resolution, so same-second creations fall back to the
// descending identity for a deterministic order.
func (s *PostService) ListAllByRecency() ([]db.Post, error) {
	var posts []db.Post
	if err := s.db.Order("created_at desc, sno desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func slugTaken(tx *gorm.DB, slug string, excludeSno uint) (bool, error) {
	query := tx.Model(&db.Post{}).Where("slug = ?", slug)
	if excludeSno != 0 {
		query = query.Where("sno <> ?", excludeSno)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func validatePostInput(input PostInput) (PostInput, error) {
	normalized := PostInput{
		Title:    strings.TrimSpace(input.Title),
		Tagline:  strings.TrimSpace(input.Tagline),
		Slug:     strings.TrimSpace(input.Slug),
		Content:  strings.TrimSpace(input.Content),
		ImageURL: strings.TrimSpace(input.ImageURL),
	}

	if err := requireField("title", normalized.Title, 50); err != nil {
		return normalized, err
	}
	if err := requireField("tagline", normalized.Tagline, 50); err != nil {
		return normalized, err
	}
	if err := requireField("slug", normalized.Slug, 21); err != nil {
		return normalized, err
	}
	if err := requireField("content", normalized.Content, 500); err != nil {
		return normalized, err
	}
	if len([]rune(normalized.ImageURL)) > 200 {
		return normalized, &ValidationError{Field: "image_url", Reason: "must be at most 200 characters"}
	}

	return normalized, nil
}

func requireField(name, value string, maxLen int) error {
	if value == "" {
		return &ValidationError{Field: name, Reason: "is required"}
	}
	if len([]rune(value)) > maxLen {
		return &ValidationError{Field: name, Reason: fmt.Sprintf("must be at most %d characters", maxLen)}
	}
	return nil
}
