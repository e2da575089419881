package config

import (
	_ "embed"
)

//go:embed defaults/device.yaml
var defaultDeviceYAML []byte

// DefaultDeviceConfig returns the built-in device configuration.
func DefaultDeviceConfig() DeviceConfig {
	return DeviceConfig{
		Animation: AnimationConfig{
			Frames:       10,
			FrameDelayMS: 100,
			Jitter:       2,
		},
		Geometry: GeometryConfig{
			TwoDiceSize:   70,
			ThreeDiceSize: 50,
		},
		Power: PowerConfig{
			BatteryCheckIntervalMS: 10000,
			BatteryVoltage:         4.1,
		},
		Defaults: DefaultsConfig{
			DiceMode:    "realistic",
			GameVariant: "base",
			PowerSave:   "10min",
		},
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultDeviceYAML
}
