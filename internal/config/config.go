// Package config provides YAML-based configuration loading and complexity
// presets for the ladder game.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-ladder/internal/ladder"
)

// Config contains all configuration for the ladder game.
type Config struct {
	Geometry GeometryConfig `yaml:"geometry"`
	Game     GameConfig     `yaml:"game"`
	Fairness FairnessConfig `yaml:"fairness"`
	Server   ServerConfig   `yaml:"server"`
}

// GeometryConfig defines the ladder's drawing coordinates.
type GeometryConfig struct {
	Spacing   int     `yaml:"spacing"`
	Padding   int     `yaml:"padding"`
	Width     float64 `yaml:"width"`
	MinHeight int     `yaml:"min_height"`
}

// GameConfig defines the defaults offered when setting up a draw.
type GameConfig struct {
	DefaultRungs int      `yaml:"default_rungs"`
	MinRungs     int      `yaml:"min_rungs"`
	MaxRungs     int      `yaml:"max_rungs"`
	MaxLanes     int      `yaml:"max_lanes"`
	Participants []string `yaml:"participants"`
	Results      []string `yaml:"results"`
}

// FairnessConfig defines defaults for the fairness simulator.
type FairnessConfig struct {
	Trials  int `yaml:"trials"`
	Workers int `yaml:"workers"`
}

// ServerConfig defines defaults for the SSH endpoint.
type ServerConfig struct {
	Address            string `yaml:"address"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// Ladder returns the geometry in the form the game logic uses.
func (g GeometryConfig) Ladder() ladder.Geometry {
	return ladder.Geometry{
		Spacing: g.Spacing,
		Padding: g.Padding,
	}
}

// Validate reports settings the game cannot work with.
func (c Config) Validate() error {
	var errs []error

	if c.Geometry.Spacing <= 0 {
		errs = append(errs, fmt.Errorf("geometry.spacing must be positive, got %d", c.Geometry.Spacing))
	}
	if c.Geometry.Padding < 0 {
		errs = append(errs, fmt.Errorf("geometry.padding must not be negative, got %d", c.Geometry.Padding))
	}
	if c.Geometry.Width <= 0 {
		errs = append(errs, fmt.Errorf("geometry.width must be positive, got %v", c.Geometry.Width))
	}
	if c.Game.MinRungs < 0 || c.Game.MaxRungs < c.Game.MinRungs {
		errs = append(errs, fmt.Errorf("game rung range [%d, %d] is invalid", c.Game.MinRungs, c.Game.MaxRungs))
	}
	if c.Game.MaxLanes != 0 && c.Game.MaxLanes < 2 {
		errs = append(errs, fmt.Errorf("game.max_lanes must be 0 or at least 2, got %d", c.Game.MaxLanes))
	}
	if len(c.Game.Participants) != len(c.Game.Results) {
		errs = append(errs, fmt.Errorf("game has %d participants but %d results", len(c.Game.Participants), len(c.Game.Results)))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// ClampRungs restricts a requested rung count to the configured range.
func (c Config) ClampRungs(n int) int {
	return max(c.Game.MinRungs, min(c.Game.MaxRungs, n))
}

// ComplexityPreset names a rung density.
type ComplexityPreset string

const (
	ComplexityLow    ComplexityPreset = "low"
	ComplexityNormal ComplexityPreset = "normal"
	ComplexityHigh   ComplexityPreset = "high"
	ComplexityMax    ComplexityPreset = "max"
)

// ParseComplexity validates a preset name. Empty means no preset.
func ParseComplexity(s string) (ComplexityPreset, error) {
	switch p := ComplexityPreset(s); p {
	case "", ComplexityLow, ComplexityNormal, ComplexityHigh, ComplexityMax:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown complexity %q (want low, normal, high or max)", s)
	}
}

// fraction returns how far between min and max rungs the preset sits.
func (p ComplexityPreset) fraction() float64 {
	switch p {
	case ComplexityLow:
		return 0.0
	case ComplexityHigh:
		return 0.25
	case ComplexityMax:
		return 1.0
	default:
		return -1
	}
}

// RungsForPreset returns the rung count a preset asks for. Normal, and no
// preset at all, use the configured default.
func (c Config) RungsForPreset(p ComplexityPreset) int {
	f := p.fraction()
	if f < 0 {
		return c.ClampRungs(c.Game.DefaultRungs)
	}
	span := float64(c.Game.MaxRungs - c.Game.MinRungs)
	return c.Game.MinRungs + int(math.Round(f*span))
}
