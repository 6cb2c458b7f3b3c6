package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

const (
	EnvServerHost            = "PROMPTVAULT_SERVER_HOST"
	EnvServerPort            = "PROMPTVAULT_SERVER_PORT"
	EnvServerReadTimeout     = "PROMPTVAULT_SERVER_READ_TIMEOUT"
	EnvServerWriteTimeout    = "PROMPTVAULT_SERVER_WRITE_TIMEOUT"
	EnvServerShutdownTimeout = "PROMPTVAULT_SERVER_SHUTDOWN_TIMEOUT"
)

// ServerConfig holds the HTTP listener settings. Timeouts are Go duration
// strings such as "15s".
type ServerConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	ReadTimeout     string `toml:"read_timeout"`
	WriteTimeout    string `toml:"write_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

// Addr returns the listen address, bracketing IPv6 hosts.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	return mustDuration(c.ReadTimeout)
}

func (c *ServerConfig) WriteTimeoutDuration() time.Duration {
	return mustDuration(c.WriteTimeout)
}

// ShutdownTimeoutDuration bounds how long in-flight requests may drain.
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return mustDuration(c.ShutdownTimeout)
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ServerConfig) Finalize() error {
	fallback(&c.Host, "0.0.0.0")
	fallback(&c.Port, 8080)
	fallback(&c.ReadTimeout, "15s")
	fallback(&c.WriteTimeout, "30s")
	fallback(&c.ShutdownTimeout, "30s")

	envString(&c.Host, EnvServerHost)
	envInt(&c.Port, EnvServerPort)
	envString(&c.ReadTimeout, EnvServerReadTimeout)
	envString(&c.WriteTimeout, EnvServerWriteTimeout)
	envString(&c.ShutdownTimeout, EnvServerShutdownTimeout)

	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	override(&c.Host, overlay.Host)
	override(&c.Port, overlay.Port)
	override(&c.ReadTimeout, overlay.ReadTimeout)
	override(&c.WriteTimeout, overlay.WriteTimeout)
	override(&c.ShutdownTimeout, overlay.ShutdownTimeout)
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	timeouts := []struct {
		name  string
		value string
	}{
		{"read_timeout", c.ReadTimeout},
		{"write_timeout", c.WriteTimeout},
		{"shutdown_timeout", c.ShutdownTimeout},
	}
	for _, t := range timeouts {
		if d, err := time.ParseDuration(t.value); err != nil || d <= 0 {
			return fmt.Errorf("invalid %s: %q", t.name, t.value)
		}
	}
	return nil
}

// mustDuration parses a value already checked by validate.
func mustDuration(v string) time.Duration {
	d, _ := time.ParseDuration(v)
	return d
}
