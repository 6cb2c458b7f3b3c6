package ratelimit_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/JaimeStill/promptvault/pkg/ratelimit"
)

func setupLimiter(t *testing.T, now *time.Time) (ratelimit.Limiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := ratelimit.NewWithClient(
		client, "test", logger,
		ratelimit.WithClock(func() time.Time { return *now }),
	)
	return limiter, mr
}

func TestAllowWithinLimit(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	limiter, _ := setupLimiter(t, &now)
	rule := ratelimit.Rule{Limit: 3, Window: time.Hour}

	for i := range 3 {
		d, err := limiter.Allow(context.Background(), "1.2.3.4", rule)
		if err != nil {
			t.Fatalf("Allow() error = %v", err)
		}
		if !d.Allowed {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
	}

	d, err := limiter.Allow(context.Background(), "1.2.3.4", rule)
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if d.Allowed {
		t.Fatal("fourth request allowed, want denied")
	}
	if d.Rule != rule {
		t.Errorf("Rule = %v, want %v", d.Rule, rule)
	}
	if d.RetryAfter != time.Hour {
		t.Errorf("RetryAfter = %v, want 1h", d.RetryAfter)
	}
}

func TestAllowKeysIndependent(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	limiter, _ := setupLimiter(t, &now)
	rule := ratelimit.Rule{Limit: 1, Window: time.Minute}

	if d, _ := limiter.Allow(context.Background(), "a", rule); !d.Allowed {
		t.Fatal("first request for a denied")
	}
	if d, _ := limiter.Allow(context.Background(), "b", rule); !d.Allowed {
		t.Fatal("first request for b denied")
	}
	if d, _ := limiter.Allow(context.Background(), "a", rule); d.Allowed {
		t.Fatal("second request for a allowed")
	}
}

func TestAllowNewWindowResets(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 59, 30, 0, time.UTC)
	limiter, _ := setupLimiter(t, &now)
	rule := ratelimit.Rule{Limit: 1, Window: time.Hour}

	if d, _ := limiter.Allow(context.Background(), "k", rule); !d.Allowed {
		t.Fatal("first request denied")
	}

	d, _ := limiter.Allow(context.Background(), "k", rule)
	if d.Allowed {
		t.Fatal("second request in window allowed")
	}
	if d.RetryAfter != 30*time.Second {
		t.Errorf("RetryAfter = %v, want 30s", d.RetryAfter)
	}

	now = now.Add(time.Minute)
	if d, _ := limiter.Allow(context.Background(), "k", rule); !d.Allowed {
		t.Fatal("request in next window denied")
	}
}

func TestAllowMultipleRules(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	limiter, _ := setupLimiter(t, &now)
	hourly := ratelimit.Rule{Limit: 5, Window: time.Hour}
	daily := ratelimit.Rule{Limit: 2, Window: 24 * time.Hour}

	for range 2 {
		if d, _ := limiter.Allow(context.Background(), "k", hourly, daily); !d.Allowed {
			t.Fatal("request within both limits denied")
		}
	}

	d, _ := limiter.Allow(context.Background(), "k", hourly, daily)
	if d.Allowed {
		t.Fatal("request over daily limit allowed")
	}
	if d.Rule != daily {
		t.Errorf("Rule = %v, want daily rule", d.Rule)
	}
}

func TestAllowSetsExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	limiter, mr := setupLimiter(t, &now)
	rule := ratelimit.Rule{Limit: 10, Window: time.Minute}

	if _, err := limiter.Allow(context.Background(), "k", rule); err != nil {
		t.Fatalf("Allow() error = %v", err)
	}

	keys := mr.Keys()
	if len(keys) != 1 {
		t.Fatalf("keys = %v, want one counter", keys)
	}
	if ttl := mr.TTL(keys[0]); ttl != time.Minute {
		t.Errorf("TTL = %v, want 1m", ttl)
	}
}

func TestAllowRedisDown(t *testing.T) {
	now := time.Now()
	limiter, mr := setupLimiter(t, &now)
	mr.Close()

	_, err := limiter.Allow(context.Background(), "k", ratelimit.Rule{Limit: 1, Window: time.Minute})
	if err == nil {
		t.Fatal("expected error when redis is unavailable")
	}
}
