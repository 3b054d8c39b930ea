// Package config loads tubesort's YAML or JSON configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the root of the configuration file.
type Config struct {
	Log     LogConfig     `yaml:"log" json:"log"`
	Solver  SolverConfig  `yaml:"solver" json:"solver"`
	Cache   CacheConfig   `yaml:"cache" json:"cache"`
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
	Scan    ScanConfig    `yaml:"scan" json:"scan"`
}

// LogConfig selects log verbosity and encoding.
type LogConfig struct {
	Level  string `yaml:"level" json:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" json:"format" validate:"oneof=text json"`
}

// SolverConfig bounds every search.
type SolverConfig struct {
	MaxStates int      `yaml:"max_states" json:"max_states" validate:"gte=0"`
	MaxDepth  int      `yaml:"max_depth" json:"max_depth" validate:"gte=0"`
	Timeout   Duration `yaml:"timeout" json:"timeout" validate:"gte=0"`
	Jobs      int      `yaml:"jobs" json:"jobs" validate:"gte=1,lte=256"`
}

// CacheConfig selects the solution cache backend.
type CacheConfig struct {
	Backend       string   `yaml:"backend" json:"backend" validate:"oneof=none memory badger redis"`
	Path          string   `yaml:"path" json:"path" validate:"required_if=Backend badger"`
	RedisAddr     string   `yaml:"redis_addr" json:"redis_addr" validate:"required_if=Backend redis,omitempty,hostname_port"`
	RedisPassword string   `yaml:"redis_password" json:"redis_password"`
	RedisDB       int      `yaml:"redis_db" json:"redis_db" validate:"gte=0"`
	Prefix        string   `yaml:"prefix" json:"prefix"`
	TTL           Duration `yaml:"ttl" json:"ttl" validate:"gte=0"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `yaml:"addr" json:"addr" validate:"omitempty,hostname_port"`
}

// ScanConfig tunes screenshot scanning.
type ScanConfig struct {
	Scale            int     `yaml:"scale" json:"scale" validate:"gte=1"`
	Threshold        int     `yaml:"threshold" json:"threshold" validate:"gte=0,lte=255"`
	Radius           float64 `yaml:"radius" json:"radius" validate:"gte=0"`
	GrayTolerance    int     `yaml:"gray_tolerance" json:"gray_tolerance" validate:"gte=0,lte=255"`
	Palette          bool    `yaml:"palette" json:"palette"`
	PaletteTolerance float64 `yaml:"palette_tolerance" json:"palette_tolerance" validate:"gte=0"`
}

// Duration is a time.Duration written as "30s" in both YAML and JSON.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info", Format: "text"},
		Solver: SolverConfig{MaxStates: 5_000_000, Jobs: 4},
		Cache:  CacheConfig{Backend: "none", Prefix: "tubesort:solution:"},
		Scan: ScanConfig{
			Scale:            10,
			Threshold:        100,
			Radius:           20,
			GrayTolerance:    24,
			PaletteTolerance: 60,
		},
	}
}

var validate = validator.New()

// Validate checks every field constraint.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Load reads path over the defaults. An empty path or a missing file
// yields the defaults. The format follows the extension: ".json" is JSON,
// anything else YAML.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
