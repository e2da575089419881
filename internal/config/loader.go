package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CATANDICE_"

// LoadDevice loads the device configuration and validates it.
// Search order: customPath -> ~/.catandice/configs/device.yaml -> ./configs/device.yaml -> embedded default.
// Values missing from a file keep their built-in defaults. Environment
// overrides are applied last.
func LoadDevice(customPath string) (DeviceConfig, error) {
	cfg, err := loadDeviceFile(customPath)
	if err != nil {
		return cfg, err
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("failed to parse config environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config environment: %w", err)
	}
	return cfg, nil
}

// loadDeviceFile resolves the config file, falling back to the embedded default.
func loadDeviceFile(customPath string) (DeviceConfig, error) {
	cfg := DefaultDeviceConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath("device.yaml"), filepath.Join("configs", "device.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fileCfg := DefaultDeviceConfig()
		if err := yaml.Unmarshal(data, &fileCfg); err == nil && fileCfg.Validate() == nil {
			return fileCfg, nil
		}
	}

	// Use embedded default YAML
	embedded := DefaultDeviceConfig()
	if err := yaml.Unmarshal(defaultDeviceYAML, &embedded); err != nil || embedded.Validate() != nil {
		return DefaultDeviceConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".catandice", "configs", filename)
}
