// Package config provides YAML-based configuration loading for the dice
// device. Environment variables prefixed with CATANDICE_ override the file,
// e.g. CATANDICE_ANIMATION_FRAMES or CATANDICE_DEFAULTS_DICE_MODE.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/catan-dice/internal/dice"
)

// ErrInvalidConfig indicates a config value outside its allowed range.
var ErrInvalidConfig = errors.New("config: invalid value")

// DeviceConfig contains all configuration for the dice device.
type DeviceConfig struct {
	Animation AnimationConfig `yaml:"animation" envPrefix:"ANIMATION_"`
	Geometry  GeometryConfig  `yaml:"geometry" envPrefix:"GEOMETRY_"`
	Power     PowerConfig     `yaml:"power" envPrefix:"POWER_"`
	Defaults  DefaultsConfig  `yaml:"defaults" envPrefix:"DEFAULTS_"`
}

// AnimationConfig defines how a roll is animated.
type AnimationConfig struct {
	Frames       int `yaml:"frames" env:"FRAMES"`
	FrameDelayMS int `yaml:"frame_delay_ms" env:"FRAME_DELAY_MS"`
	Jitter       int `yaml:"jitter" env:"JITTER"` // Max shake offset in cells
}

// GeometryConfig defines die sizes in display pixels.
type GeometryConfig struct {
	TwoDiceSize   int `yaml:"two_dice_size" env:"TWO_DICE_SIZE"`
	ThreeDiceSize int `yaml:"three_dice_size" env:"THREE_DICE_SIZE"`
}

// PowerConfig defines battery sampling.
type PowerConfig struct {
	BatteryCheckIntervalMS int     `yaml:"battery_check_interval_ms" env:"BATTERY_CHECK_INTERVAL_MS"`
	BatteryVoltage         float64 `yaml:"battery_voltage" env:"BATTERY_VOLTAGE"`
}

// DefaultsConfig holds the factory settings used when nothing is persisted.
type DefaultsConfig struct {
	DiceMode    string `yaml:"dice_mode" env:"DICE_MODE"`
	GameVariant string `yaml:"game_variant" env:"GAME_VARIANT"`
	PowerSave   string `yaml:"power_save" env:"POWER_SAVE"`
}

// FrameDelay returns the pause between animation frames.
func (c DeviceConfig) FrameDelay() time.Duration {
	return time.Duration(c.Animation.FrameDelayMS) * time.Millisecond
}

// BatteryCheckInterval returns how often the battery gauge is sampled.
func (c DeviceConfig) BatteryCheckInterval() time.Duration {
	return time.Duration(c.Power.BatteryCheckIntervalMS) * time.Millisecond
}

// DiceGeometry converts the geometry section for the dice engine.
func (c DeviceConfig) DiceGeometry() dice.Geometry {
	return dice.Geometry{
		TwoDiceSize:   c.Geometry.TwoDiceSize,
		ThreeDiceSize: c.Geometry.ThreeDiceSize,
	}
}

// DefaultSettings parses the defaults section.
func (c DeviceConfig) DefaultSettings() (dice.Settings, error) {
	mode, err := dice.ParseProbabilityMode(c.Defaults.DiceMode)
	if err != nil {
		return dice.Settings{}, err
	}
	variant, err := dice.ParseGameVariant(c.Defaults.GameVariant)
	if err != nil {
		return dice.Settings{}, err
	}
	powerSave, err := dice.ParsePowerSaveMode(c.Defaults.PowerSave)
	if err != nil {
		return dice.Settings{}, err
	}
	return dice.Settings{Mode: mode, Variant: variant, PowerSave: powerSave}, nil
}

// Validate checks every section and returns the first problem found.
func (c DeviceConfig) Validate() error {
	if c.Animation.Frames < 0 || c.Animation.Frames > 100 {
		return fmt.Errorf("%w: animation.frames must be 0..100, got %d", ErrInvalidConfig, c.Animation.Frames)
	}
	if c.Animation.FrameDelayMS < 0 {
		return fmt.Errorf("%w: animation.frame_delay_ms must be >= 0, got %d", ErrInvalidConfig, c.Animation.FrameDelayMS)
	}
	if c.Animation.Jitter < 0 {
		return fmt.Errorf("%w: animation.jitter must be >= 0, got %d", ErrInvalidConfig, c.Animation.Jitter)
	}
	if c.Geometry.TwoDiceSize <= 0 || c.Geometry.ThreeDiceSize <= 0 {
		return fmt.Errorf("%w: geometry sizes must be positive", ErrInvalidConfig)
	}
	if c.Power.BatteryCheckIntervalMS <= 0 {
		return fmt.Errorf("%w: power.battery_check_interval_ms must be positive", ErrInvalidConfig)
	}
	if _, err := c.DefaultSettings(); err != nil {
		return fmt.Errorf("%w: defaults: %w", ErrInvalidConfig, err)
	}
	return nil
}
