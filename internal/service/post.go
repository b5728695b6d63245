package service

import (
	"context"
	"errors"
	"strings"

	"github.com/pulsehub/pulsehub/internal/model"
	"github.com/pulsehub/pulsehub/internal/repository"
)

// Post service errors.
var (
	ErrEmptyContent  = errors.New("content must not be empty")
	ErrNoPostFields  = errors.New("no fields provided to update")
	ErrPostNotFound  = errors.New("post not found")
	ErrNegativeCount = errors.New("reaction counts must not be negative")
)

// PostService handles the mini social feed.
type PostService struct {
	repo *repository.Repository
}

// NewPostService creates a new PostService.
func NewPostService(repo *repository.Repository) *PostService {
	return &PostService{repo: repo}
}

// CreatePost validates and persists a new post. Reaction counters start at
// the provided values so clients can seed optimistic state, defaulting to 0.
func (s *PostService) CreatePost(ctx context.Context, content string, likes, dislikes int) (*model.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if likes < 0 || dislikes < 0 {
		return nil, ErrNegativeCount
	}

	post := &model.Post{
		Content:  content,
		Likes:    likes,
		Dislikes: dislikes,
	}

	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// ListPosts retrieves all posts in insertion order.
func (s *PostService) ListPosts(ctx context.Context) ([]*model.Post, error) {
	return s.repo.ListPosts(ctx)
}

// UpdatePost applies a partial update to a post.
func (s *PostService) UpdatePost(ctx context.Context, id int64, update repository.PostUpdate) (*model.Post, error) {
	if update.IsEmpty() {
		return nil, ErrNoPostFields
	}
	if update.Content != nil && strings.TrimSpace(*update.Content) == "" {
		return nil, ErrEmptyContent
	}
	if (update.Likes != nil && *update.Likes < 0) || (update.Dislikes != nil && *update.Dislikes < 0) {
		return nil, ErrNegativeCount
	}

	post, err := s.repo.UpdatePost(ctx, id, update)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return post, nil
}

// DeletePost removes a post.
func (s *PostService) DeletePost(ctx context.Context, id int64) error {
	if err := s.repo.DeletePost(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}
