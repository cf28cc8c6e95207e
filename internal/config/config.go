// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers a file and the environment on top of those defaults.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"

	"github.com/okian/lineup/internal/domain/analysis"
	"github.com/okian/lineup/internal/domain/assign"
	"github.com/okian/lineup/internal/domain/scoring"
	"github.com/okian/lineup/internal/domain/spatial"
	"github.com/okian/lineup/internal/domain/swap"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile, when set, sends server logs to a rotating file.
	LogFile       string `koanf:"log_file"`
	LogMaxSizeMB  int    `koanf:"log_max_size_mb"`
	LogMaxBackups int    `koanf:"log_max_backups"`
	LogMaxAgeDays int    `koanf:"log_max_age_days"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// MetricsEnabled turns metric recording on or off.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// RateLimit is the per-client request rate in requests per second. Zero disables it.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`

	// Lookahead bounds how many candidates the greedy fallback compares per slot.
	Lookahead int `koanf:"lookahead"`

	// SwapFloor and ReassignFloor gate the swap advisor's suggestions.
	SwapFloor     float64 `koanf:"swap_floor"`
	ReassignFloor float64 `koanf:"reassign_floor"`

	// NearbyRadius is the pitch radius searched for nearby substitutes. Zero disables it.
	NearbyRadius float64 `koanf:"nearby_radius"`

	// SpatialCellSize is the grid cell edge in normalized pitch units.
	SpatialCellSize float64 `koanf:"spatial_cell_size"`

	// ReviewThreshold flags analyzed slots scoring below it.
	ReviewThreshold float64 `koanf:"review_threshold"`

	// Fitness overrides the scorer's coefficient tables.
	Fitness scoring.Tables `koanf:"fitness"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogMaxSizeMB:    100,
		LogMaxBackups:   3,
		LogMaxAgeDays:   28,
		Addr:            ":9080",
		MetricsEnabled:  true,
		RateLimit:       0,
		RateBurst:       20,
		Lookahead:       assign.DefaultLookahead,
		SwapFloor:       swap.DefaultSwapFloor,
		ReassignFloor:   swap.DefaultReassignFloor,
		NearbyRadius:    swap.DefaultNearbyRadius,
		SpatialCellSize: spatial.DefaultCellSize,
		ReviewThreshold: analysis.DefaultReviewThreshold,
		Fitness:         scoring.DefaultTables(),
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.Lookahead < 1:
		return fmt.Errorf("%w: lookahead must be at least 1, got %d", ErrInvalidConfig, c.Lookahead)
	case c.SpatialCellSize <= 0:
		return fmt.Errorf("%w: spatial_cell_size must be positive, got %g", ErrInvalidConfig, c.SpatialCellSize)
	case c.NearbyRadius < 0:
		return fmt.Errorf("%w: nearby_radius must not be negative, got %g", ErrInvalidConfig, c.NearbyRadius)
	case c.RateLimit < 0:
		return fmt.Errorf("%w: rate_limit must not be negative, got %g", ErrInvalidConfig, c.RateLimit)
	case c.RateLimit > 0 && c.RateBurst < 1:
		return fmt.Errorf("%w: rate_burst must be at least 1 when rate_limit is set", ErrInvalidConfig)
	case c.SwapFloor < 0 || c.ReassignFloor < 0:
		return fmt.Errorf("%w: floors must not be negative", ErrInvalidConfig)
	}
	return nil
}
