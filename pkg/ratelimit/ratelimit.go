// Package ratelimit provides fixed-window request limiting backed by Redis.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JaimeStill/promptvault/pkg/lifecycle"
)

// Decision is the outcome of a limit check.
// When Allowed is false, Rule is the first exhausted rule and RetryAfter
// is the time left in its current window.
type Decision struct {
	Allowed    bool
	Rule       Rule
	RetryAfter time.Duration
}

// Limiter counts a request against every rule for key.
type Limiter interface {
	Allow(ctx context.Context, key string, rules ...Rule) (Decision, error)
}

// System is a Limiter with lifecycle coordination.
type System interface {
	Limiter
	Start(lc *lifecycle.Coordinator) error
}

type redisLimiter struct {
	client redis.UniversalClient
	prefix string
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Redis-backed limiter from cfg. The client connects lazily;
// Start verifies connectivity and closes the client on shutdown.
func New(cfg *Config, logger *slog.Logger) System {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewWithClient(client, cfg.KeyPrefix, logger)
}

// Option configures a limiter created by NewWithClient.
type Option func(*redisLimiter)

// WithClock overrides the time source used to pick windows.
func WithClock(now func() time.Time) Option {
	return func(l *redisLimiter) {
		l.now = now
	}
}

// NewWithClient creates a limiter over an existing Redis client.
func NewWithClient(client redis.UniversalClient, prefix string, logger *slog.Logger, opts ...Option) System {
	l := &redisLimiter{
		client: client,
		prefix: prefix,
		logger: logger.With("system", "ratelimit"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *redisLimiter) Allow(ctx context.Context, key string, rules ...Rule) (Decision, error) {
	now := l.now()

	type window struct {
		rule  Rule
		count *redis.IntCmd
		reset time.Duration
	}

	windows := make([]window, 0, len(rules))

	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, rule := range rules {
			start := now.Truncate(rule.Window)
			k := fmt.Sprintf("%s:%s:%s:%d", l.prefix, rule, key, start.Unix())

			windows = append(windows, window{
				rule:  rule,
				count: pipe.Incr(ctx, k),
				reset: start.Add(rule.Window).Sub(now),
			})
			pipe.Expire(ctx, k, rule.Window)
		}
		return nil
	})
	if err != nil {
		return Decision{}, fmt.Errorf("count request: %w", err)
	}

	for _, w := range windows {
		if w.count.Val() > int64(w.rule.Limit) {
			return Decision{
				Allowed:    false,
				Rule:       w.rule,
				RetryAfter: w.reset,
			}, nil
		}
	}

	return Decision{Allowed: true}, nil
}

func (l *redisLimiter) Start(lc *lifecycle.Coordinator) error {
	l.logger.Info("starting rate limiter")

	lc.OnStartup(func() {
		if err := l.client.Ping(lc.Context()).Err(); err != nil {
			l.logger.Error("redis ping failed", "error", err)
			return
		}
		l.logger.Info("redis connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := l.client.Close(); err != nil {
			l.logger.Error("redis close failed", "error", err)
			return
		}
		l.logger.Info("redis connection closed")
	})

	return nil
}
