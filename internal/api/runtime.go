package api

import (
	"github.com/JaimeStill/promptvault/internal/config"
	"github.com/JaimeStill/promptvault/internal/infrastructure"
	"github.com/JaimeStill/promptvault/pkg/ratelimit"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	MaxBatchSize int
	CodeAttempts int
	CreateRules  []ratelimit.Rule
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle:   infra.Lifecycle,
			Logger:      infra.Logger.With("module", "api"),
			Database:    infra.Database,
			RateLimiter: infra.RateLimiter,
			Storage:     infra.Storage,
		},
		MaxBatchSize: cfg.API.MaxBatchSize,
		CodeAttempts: cfg.Codes.MaxAttempts,
		CreateRules:  cfg.API.RateLimit.CreateRules(),
	}
}
