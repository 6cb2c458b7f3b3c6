// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, rate limiting, storage) that
// domain systems and commands require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/promptvault/internal/config"
	"github.com/JaimeStill/promptvault/pkg/database"
	"github.com/JaimeStill/promptvault/pkg/lifecycle"
	"github.com/JaimeStill/promptvault/pkg/ratelimit"
	"github.com/JaimeStill/promptvault/pkg/storage"
)

// Infrastructure holds the core systems required by domain modules.
// RateLimiter is nil when rate limiting is disabled and Storage is nil
// when no storage connection string is configured.
type Infrastructure struct {
	Lifecycle   *lifecycle.Coordinator
	Logger      *slog.Logger
	Database    database.System
	RateLimiter ratelimit.System
	Storage     storage.Store
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	infra := &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
	}

	if cfg.API.RateLimit.IsEnabled() {
		infra.RateLimiter = ratelimit.New(&cfg.Redis, logger)
	}

	if cfg.Storage.Configured() {
		store, err := storage.New(&cfg.Storage, logger)
		if err != nil {
			return nil, fmt.Errorf("storage init failed: %w", err)
		}
		infra.Storage = store
	}

	return infra, nil
}

// Start registers the database and rate limiter with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if i.RateLimiter != nil {
		if err := i.RateLimiter.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("rate limiter start failed: %w", err)
		}
	}
	return nil
}
