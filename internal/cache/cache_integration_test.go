//go:build integration

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pulsehub/pulsehub/internal/model"
	"github.com/pulsehub/pulsehub/internal/testutil"
)

func newCacheTestEnv(t *testing.T) (context.Context, *Cache) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	redisURL := testutil.RequireEnv(t, "REDIS_URL")

	c, err := New(ctx, redisURL, Options{})
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Close()
	})

	if err := testutil.FlushRedis(ctx, c.Client()); err != nil {
		t.Fatalf("flush redis: %v", err)
	}

	return ctx, c
}

func TestIntegrationCache_PollList(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	if _, err := c.GetPollList(ctx); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected cache miss on empty cache, got %v", err)
	}

	polls := []*model.Poll{
		{
			ID:       "01TESTPOLL",
			UserID:   "user-1",
			Question: "Tea or coffee?",
			Options: []model.Option{
				{ID: 1, Text: "Tea", Votes: 2},
				{ID: 2, Text: "Coffee", Votes: 1},
			},
			CreatedAt: time.Now().UTC().Truncate(time.Second),
		},
	}

	if err := c.SetPollList(ctx, polls); err != nil {
		t.Fatalf("SetPollList failed: %v", err)
	}

	cached, err := c.GetPollList(ctx)
	if err != nil {
		t.Fatalf("GetPollList failed: %v", err)
	}
	if len(cached) != 1 || cached[0].ID != "01TESTPOLL" {
		t.Errorf("unexpected cached polls: %+v", cached)
	}
	if cached[0].Options[0].Votes != 2 {
		t.Errorf("tallies should survive the cache round trip, got %d", cached[0].Options[0].Votes)
	}

	if err := c.InvalidatePollList(ctx); err != nil {
		t.Fatalf("InvalidatePollList failed: %v", err)
	}
	if _, err := c.GetPollList(ctx); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected cache miss after invalidation, got %v", err)
	}
}

func TestIntegrationCache_RateLimit(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	const burst = 3

	for i := 0; i < burst; i++ {
		result, err := c.CheckIPRateLimit(ctx, "203.0.113.5", 1, burst)
		if err != nil {
			t.Fatalf("CheckIPRateLimit failed: %v", err)
		}
		if !result.Allowed {
			t.Fatalf("request %d within burst should be allowed", i+1)
		}
	}

	result, err := c.CheckIPRateLimit(ctx, "203.0.113.5", 1, burst)
	if err != nil {
		t.Fatalf("CheckIPRateLimit failed: %v", err)
	}
	if result.Allowed {
		t.Error("request past burst should be blocked")
	}
	if result.RetryAfter <= 0 {
		t.Error("blocked result should carry a retry hint")
	}

	// A different IP has its own bucket.
	other, err := c.CheckIPRateLimit(ctx, "203.0.113.6", 1, burst)
	if err != nil {
		t.Fatalf("CheckIPRateLimit failed: %v", err)
	}
	if !other.Allowed {
		t.Error("separate IP should not share the exhausted bucket")
	}
}
