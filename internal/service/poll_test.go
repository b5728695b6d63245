package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

func newPollValidationService() *PollService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPollService(nil, nil, logger)
}

func TestPollService_CreatePoll_EmptyQuestion(t *testing.T) {
	svc := newPollValidationService()

	_, err := svc.CreatePoll(context.Background(), CreatePollInput{
		Question: "   ",
		Options:  []string{"Tea", "Coffee"},
		OwnerID:  "owner",
	})
	if !errors.Is(err, ErrEmptyQuestion) {
		t.Errorf("expected ErrEmptyQuestion, got %v", err)
	}
}

func TestPollService_CreatePoll_TooFewOptions(t *testing.T) {
	svc := newPollValidationService()

	cases := []struct {
		name    string
		options []string
	}{
		{"none", nil},
		{"single", []string{"Only"}},
		{"blanks filtered", []string{"Tea", "  ", ""}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreatePoll(context.Background(), CreatePollInput{
				Question: "Which one?",
				Options:  tc.options,
				OwnerID:  "owner",
			})
			if !errors.Is(err, ErrTooFewOptions) {
				t.Errorf("expected ErrTooFewOptions, got %v", err)
			}
		})
	}
}
