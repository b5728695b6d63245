// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/pulsehub/pulsehub/internal/cache"
	"github.com/pulsehub/pulsehub/internal/model"
	"github.com/pulsehub/pulsehub/internal/repository"
)

// Poll service errors.
var (
	ErrEmptyQuestion = errors.New("question must not be empty")
	ErrTooFewOptions = errors.New("poll needs at least two options")
	ErrPollNotFound  = errors.New("poll not found")
	ErrInvalidOption = errors.New("option does not exist in poll")
	ErrDuplicateVote = errors.New("already voted on this poll")
	ErrVoterNotFound = errors.New("voter not found")
)

// minUsableOptions is enforced server-side: a single-option poll is vacuous.
const minUsableOptions = 2

// PollService handles poll creation, listing, and vote recording.
type PollService struct {
	repo   *repository.Repository
	cache  *cache.Cache
	logger *slog.Logger
}

// NewPollService creates a new PollService.
func NewPollService(repo *repository.Repository, cache *cache.Cache, logger *slog.Logger) *PollService {
	return &PollService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// CreatePollInput defines input for creating a poll.
type CreatePollInput struct {
	Question string
	Options  []string
	OwnerID  string
}

// CreatePoll materializes a new poll from a question and proposed option
// texts. Empty texts are filtered; sequence numbers are assigned by submitted
// position, 1-based, and never reused afterwards.
func (s *PollService) CreatePoll(ctx context.Context, input CreatePollInput) (*model.Poll, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	options := make([]model.Option, 0, len(input.Options))
	for _, text := range input.Options {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}
		options = append(options, model.Option{
			ID:    len(options) + 1,
			Text:  trimmed,
			Votes: 0,
		})
	}
	if len(options) < minUsableOptions {
		return nil, ErrTooFewOptions
	}

	poll := &model.Poll{
		ID:        ulid.Make().String(),
		UserID:    input.OwnerID,
		Question:  question,
		Options:   options,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreatePoll(ctx, poll); err != nil {
		return nil, fmt.Errorf("failed to create poll: %w", err)
	}

	s.invalidateList(ctx)

	return poll, nil
}

// ListPolls retrieves all polls with current tallies, in insertion order.
// Serves from the cache when possible; an empty store yields an empty slice,
// never an error.
func (s *PollService) ListPolls(ctx context.Context) ([]*model.Poll, error) {
	if polls, err := s.cache.GetPollList(ctx); err == nil {
		return polls, nil
	}

	polls, err := s.repo.ListPolls(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetPollList(ctx, polls); err != nil {
		// Cache write failures never fail the read path.
		s.logger.Warn("poll list cache write failed", "error", err)
	}

	return polls, nil
}

// ListUserPolls retrieves the polls created by one user, in insertion order.
// Always reads the store; per-user listings are not cached.
func (s *PollService) ListUserPolls(ctx context.Context, userID string) ([]*model.Poll, error) {
	return s.repo.ListPollsByUser(ctx, userID)
}

// CastVote applies exactly one vote from one voter to one option of one poll
// and returns the full updated option list. The repository serializes
// concurrent casts per poll and enforces the one-vote-per-voter invariant
// with a storage-level unique constraint.
func (s *PollService) CastVote(ctx context.Context, pollID string, optionID int, voterID string) ([]model.Option, error) {
	options, err := s.repo.CastVote(ctx, pollID, optionID, voterID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateVote):
			return nil, ErrDuplicateVote
		case errors.Is(err, repository.ErrPollNotFound):
			return nil, ErrPollNotFound
		case errors.Is(err, repository.ErrOptionNotFound):
			return nil, ErrInvalidOption
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrVoterNotFound
		}
		return nil, err
	}

	s.invalidateList(ctx)

	return options, nil
}

// invalidateList drops the cached poll list after a mutation. Failures are
// logged only; the short cache TTL bounds staleness.
func (s *PollService) invalidateList(ctx context.Context) {
	if err := s.cache.InvalidatePollList(ctx); err != nil {
		s.logger.Warn("poll list cache invalidation failed", "error", err)
	}
}
