package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/JaimeStill/promptvault/pkg/formatting"
	"github.com/JaimeStill/promptvault/pkg/middleware"
	"github.com/JaimeStill/promptvault/pkg/openapi"
	"github.com/JaimeStill/promptvault/pkg/ratelimit"
)

const (
	EnvAPIBasePath     = "PROMPTVAULT_API_BASE_PATH"
	EnvAPIMaxBodySize  = "PROMPTVAULT_API_MAX_BODY_SIZE"
	EnvAPIMaxBatchSize = "PROMPTVAULT_API_MAX_BATCH_SIZE"

	EnvRateLimitEnabled      = "PROMPTVAULT_RATE_LIMIT_ENABLED"
	EnvRateLimitLimits       = "PROMPTVAULT_RATE_LIMIT_LIMITS"
	EnvRateLimitCreateLimits = "PROMPTVAULT_RATE_LIMIT_CREATE_LIMITS"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "PROMPTVAULT_CORS_ENABLED",
	Origins:          "PROMPTVAULT_CORS_ORIGINS",
	AllowedMethods:   "PROMPTVAULT_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "PROMPTVAULT_CORS_ALLOWED_HEADERS",
	AllowCredentials: "PROMPTVAULT_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "PROMPTVAULT_CORS_MAX_AGE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "PROMPTVAULT_OPENAPI_TITLE",
	Description: "PROMPTVAULT_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, request limits, CORS, rate limiting, and
// OpenAPI metadata.
type APIConfig struct {
	BasePath     string                `toml:"base_path"`
	MaxBodySize  formatting.Bytes      `toml:"max_body_size"`
	MaxBatchSize int                   `toml:"max_batch_size"`
	CORS         middleware.CORSConfig `toml:"cors"`
	RateLimit    RateLimitConfig       `toml:"rate_limit"`
	OpenAPI      openapi.Config        `toml:"openapi"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.RateLimit.Finalize(); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	override(&c.BasePath, overlay.BasePath)
	override(&c.MaxBodySize, overlay.MaxBodySize)
	override(&c.MaxBatchSize, overlay.MaxBatchSize)

	c.CORS.Merge(&overlay.CORS)
	c.RateLimit.Merge(&overlay.RateLimit)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	fallback(&c.BasePath, "/api")
	fallback(&c.MaxBodySize, formatting.Bytes(1024*1024))
	fallback(&c.MaxBatchSize, 100)
	if len(c.CORS.Origins) == 0 {
		c.CORS.Origins = []string{"http://localhost:5173", "https://*.vercel.app"}
	}
}

func (c *APIConfig) loadEnv() {
	envString(&c.BasePath, EnvAPIBasePath)
	envInt(&c.MaxBatchSize, EnvAPIMaxBatchSize)
	if v := os.Getenv(EnvAPIMaxBodySize); v != "" {
		if n, err := formatting.ParseBytes(v); err == nil {
			c.MaxBodySize = formatting.Bytes(n)
		}
	}
}

func (c *APIConfig) validate() error {
	if !strings.HasPrefix(c.BasePath, "/") || strings.Count(c.BasePath, "/") != 1 {
		return fmt.Errorf("invalid base_path %q: must be a single-level path like /api", c.BasePath)
	}
	if c.MaxBodySize <= 0 {
		return fmt.Errorf("invalid max_body_size: %d", c.MaxBodySize)
	}
	if c.MaxBatchSize < 1 {
		return fmt.Errorf("invalid max_batch_size: %d", c.MaxBatchSize)
	}
	return nil
}

// RateLimitConfig holds per-client request limits such as "50/hour".
// Limits apply to every API route; CreateLimits apply additionally to
// prompt creation.
type RateLimitConfig struct {
	Enabled      *bool    `toml:"enabled"`
	Limits       []string `toml:"limits"`
	CreateLimits []string `toml:"create_limits"`
}

// IsEnabled reports whether rate limiting is switched on. Unset means off.
func (c *RateLimitConfig) IsEnabled() bool {
	return c.Enabled != nil && *c.Enabled
}

// Rules parses Limits.
func (c *RateLimitConfig) Rules() []ratelimit.Rule {
	rules, _ := ratelimit.ParseRules(c.Limits)
	return rules
}

// CreateRules parses CreateLimits.
func (c *RateLimitConfig) CreateRules() []ratelimit.Rule {
	rules, _ := ratelimit.ParseRules(c.CreateLimits)
	return rules
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *RateLimitConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites fields the overlay sets.
func (c *RateLimitConfig) Merge(overlay *RateLimitConfig) {
	if overlay.Enabled != nil {
		c.Enabled = overlay.Enabled
	}
	if overlay.Limits != nil {
		c.Limits = overlay.Limits
	}
	if overlay.CreateLimits != nil {
		c.CreateLimits = overlay.CreateLimits
	}
}

func (c *RateLimitConfig) loadDefaults() {
	if c.Limits == nil {
		c.Limits = []string{"50/hour", "200/day"}
	}
	if c.CreateLimits == nil {
		c.CreateLimits = []string{"20/day"}
	}
}

func (c *RateLimitConfig) loadEnv() {
	envBool(&c.Enabled, EnvRateLimitEnabled)
	envList(&c.Limits, EnvRateLimitLimits)
	envList(&c.CreateLimits, EnvRateLimitCreateLimits)
}

func (c *RateLimitConfig) validate() error {
	if _, err := ratelimit.ParseRules(c.Limits); err != nil {
		return fmt.Errorf("limits: %w", err)
	}
	if _, err := ratelimit.ParseRules(c.CreateLimits); err != nil {
		return fmt.Errorf("create_limits: %w", err)
	}
	return nil
}
