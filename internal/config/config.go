// Package config loads the attach defaults applied when a host's options
// map omits them: the bind host/port and the default per-table ring
// buffer row capacity (buffer_size).
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Defaults holds the values an attach spec falls back to when its
// options map doesn't set them.
type Defaults struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	BufferSize int    `mapstructure:"buffer_size"`
}

// Validate checks that the defaults are usable on their own, independent
// of whatever an attach options map later overrides.
func (d *Defaults) Validate() error {
	if d.Host == "" {
		return fmt.Errorf("host cannot be empty")
	}
	if d.Port <= 0 || d.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be 1-65535)", d.Port)
	}
	if d.BufferSize <= 0 {
		return fmt.Errorf("buffer_size must be positive, got %d", d.BufferSize)
	}
	return nil
}

// Load reads OTLPSINK_HOST, OTLPSINK_PORT and OTLPSINK_BUFFER_SIZE from
// the environment (optionally populated from a local .env file),
// falling back to localhost:4317 with a 10000-row buffer.
func Load() (*Defaults, error) {
	// Optional, for local development; ignored if absent.
	_ = godotenv.Load(".env")

	v := viper.New()
	v.SetEnvPrefix("OTLPSINK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	//nolint:errcheck // BindEnv only errors with invalid args, safe with string literals
	v.BindEnv("host")
	//nolint:errcheck
	v.BindEnv("port")
	//nolint:errcheck
	v.BindEnv("buffer_size")

	v.SetDefault("host", "localhost")
	v.SetDefault("port", 4317)
	v.SetDefault("buffer_size", 10000)

	var d Defaults
	if err := v.Unmarshal(&d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &d, nil
}

// Addr returns the "host:port" form attach's spec parsing expects.
func (d *Defaults) Addr() string {
	return fmt.Sprintf("%s:%d", d.Host, d.Port)
}
