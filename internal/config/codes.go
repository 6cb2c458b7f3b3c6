package config

import "fmt"

const EnvCodesMaxAttempts = "PROMPTVAULT_CODES_MAX_ATTEMPTS"

// CodesConfig bounds modification code generation.
type CodesConfig struct {
	MaxAttempts int `toml:"max_attempts"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *CodesConfig) Finalize() error {
	fallback(&c.MaxAttempts, 5)
	envInt(&c.MaxAttempts, EnvCodesMaxAttempts)
	if c.MaxAttempts < 1 {
		return fmt.Errorf("invalid max_attempts: %d", c.MaxAttempts)
	}
	return nil
}

func (c *CodesConfig) Merge(overlay *CodesConfig) {
	override(&c.MaxAttempts, overlay.MaxAttempts)
}
