package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/promptvault/pkg/database"
	"github.com/JaimeStill/promptvault/pkg/ratelimit"
	"github.com/JaimeStill/promptvault/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvPromptVaultEnv             = "PROMPTVAULT_ENV"
	EnvPromptVaultShutdownTimeout = "PROMPTVAULT_SHUTDOWN_TIMEOUT"
	EnvPromptVaultVersion         = "PROMPTVAULT_VERSION"
)

var databaseEnv = &database.Env{
	URL:             []string{"PROMPTVAULT_DB_URL", "DATABASE_URL", "NEON_DATABASE_URL"},
	Host:            "PROMPTVAULT_DB_HOST",
	Port:            "PROMPTVAULT_DB_PORT",
	Name:            "PROMPTVAULT_DB_NAME",
	User:            "PROMPTVAULT_DB_USER",
	Password:        "PROMPTVAULT_DB_PASSWORD",
	SSLMode:         "PROMPTVAULT_DB_SSL_MODE",
	MaxOpenConns:    "PROMPTVAULT_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "PROMPTVAULT_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "PROMPTVAULT_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "PROMPTVAULT_DB_CONN_TIMEOUT",
}

var redisEnv = &ratelimit.Env{
	Addr:      "PROMPTVAULT_REDIS_ADDR",
	Password:  "PROMPTVAULT_REDIS_PASSWORD",
	DB:        "PROMPTVAULT_REDIS_DB",
	KeyPrefix: "PROMPTVAULT_REDIS_KEY_PREFIX",
}

var storageEnv = &storage.Env{
	ContainerName:    "PROMPTVAULT_STORAGE_CONTAINER_NAME",
	ConnectionString: "PROMPTVAULT_STORAGE_CONNECTION_STRING",
	MaxListSize:      "PROMPTVAULT_STORAGE_MAX_LIST_SIZE",
}

// Config is the root configuration for the Prompt Vault service.
type Config struct {
	Server          ServerConfig     `toml:"server"`
	Database        database.Config  `toml:"database"`
	Redis           ratelimit.Config `toml:"redis"`
	Storage         storage.Config   `toml:"storage"`
	API             APIConfig        `toml:"api"`
	Codes           CodesConfig      `toml:"codes"`
	ShutdownTimeout string           `toml:"shutdown_timeout"`
	Version         string           `toml:"version"`
}

// Env returns the PROMPTVAULT_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvPromptVaultEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	override(&c.ShutdownTimeout, overlay.ShutdownTimeout)
	override(&c.Version, overlay.Version)
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Redis.Merge(&overlay.Redis)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Codes.Merge(&overlay.Codes)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Redis.Finalize(redisEnv); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Codes.Finalize(); err != nil {
		return fmt.Errorf("codes: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	fallback(&c.ShutdownTimeout, "30s")
	fallback(&c.Version, "0.1.0")
}

func (c *Config) loadEnv() {
	envString(&c.ShutdownTimeout, EnvPromptVaultShutdownTimeout)
	envString(&c.Version, EnvPromptVaultVersion)
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvPromptVaultEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
