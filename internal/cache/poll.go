package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pulsehub/pulsehub/internal/model"
)

const (
	// pollListKey is the Redis key for the cached poll list.
	pollListKey = "polls:list"

	// PollListTTL bounds staleness when an invalidation is missed.
	PollListTTL = 5 * time.Minute
)

// ErrCacheMiss indicates the requested entry is not cached.
var ErrCacheMiss = errors.New("cache miss")

// GetPollList retrieves the cached poll list.
// Returns ErrCacheMiss if not present.
func (c *Cache) GetPollList(ctx context.Context) ([]*model.Poll, error) {
	data, err := c.client.Get(ctx, pollListKey).Bytes()
	if err != nil {
		// Treat every failure as a miss; the caller falls through to the DB.
		return nil, ErrCacheMiss
	}

	var polls []*model.Poll
	if err := json.Unmarshal(data, &polls); err != nil {
		// Corrupted entry - drop it and report a miss.
		c.client.Del(ctx, pollListKey)
		return nil, ErrCacheMiss
	}

	return polls, nil
}

// SetPollList stores the poll list.
func (c *Cache) SetPollList(ctx context.Context, polls []*model.Poll) error {
	data, err := json.Marshal(polls)
	if err != nil {
		return fmt.Errorf("marshal poll list: %w", err)
	}

	if err := c.client.Set(ctx, pollListKey, data, PollListTTL).Err(); err != nil {
		return fmt.Errorf("set poll list: %w", err)
	}

	return nil
}

// InvalidatePollList drops the cached poll list. Called after every poll
// creation and vote cast so readers observe fresh tallies.
func (c *Cache) InvalidatePollList(ctx context.Context) error {
	if err := c.client.Del(ctx, pollListKey).Err(); err != nil {
		return fmt.Errorf("invalidate poll list: %w", err)
	}
	return nil
}
