package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pulsehub/pulsehub/internal/repository"
)

func TestPostService_CreatePost_Validation(t *testing.T) {
	svc := NewPostService(nil)

	_, err := svc.CreatePost(context.Background(), "  ", 0, 0)
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("expected ErrEmptyContent, got %v", err)
	}

	_, err = svc.CreatePost(context.Background(), "fine", -1, 0)
	if !errors.Is(err, ErrNegativeCount) {
		t.Errorf("expected ErrNegativeCount, got %v", err)
	}
}

func TestPostService_UpdatePost_Validation(t *testing.T) {
	svc := NewPostService(nil)

	_, err := svc.UpdatePost(context.Background(), 1, repository.PostUpdate{})
	if !errors.Is(err, ErrNoPostFields) {
		t.Errorf("expected ErrNoPostFields, got %v", err)
	}

	empty := "   "
	_, err = svc.UpdatePost(context.Background(), 1, repository.PostUpdate{Content: &empty})
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("expected ErrEmptyContent, got %v", err)
	}

	negative := -5
	_, err = svc.UpdatePost(context.Background(), 1, repository.PostUpdate{Dislikes: &negative})
	if !errors.Is(err, ErrNegativeCount) {
		t.Errorf("expected ErrNegativeCount, got %v", err)
	}
}
