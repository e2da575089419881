package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/catan-dice/internal/dice"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultDeviceConfig()
	cfg.Animation = AnimationConfig{}
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if cfg != DefaultDeviceConfig() {
		t.Errorf("embedded YAML = %+v, expected %+v", cfg, DefaultDeviceConfig())
	}
}

func TestLoadDeviceCustomPath(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "device.yaml", `
animation:
  frames: 4
  frame_delay_ms: 50
defaults:
  dice_mode: equal
  game_variant: traders
`)

	cfg, err := LoadDevice(path)
	if err != nil {
		t.Fatalf("LoadDevice() failed: %v", err)
	}
	if cfg.Animation.Frames != 4 || cfg.FrameDelay() != 50*time.Millisecond {
		t.Errorf("animation = %+v", cfg.Animation)
	}
	// Values missing from the file keep their defaults.
	if cfg.Geometry.TwoDiceSize != 70 || cfg.Animation.Jitter != 2 {
		t.Errorf("missing values not defaulted: %+v", cfg)
	}

	settings, err := cfg.DefaultSettings()
	if err != nil {
		t.Fatalf("DefaultSettings() failed: %v", err)
	}
	expected := dice.Settings{Mode: dice.ModeEqual, Variant: dice.VariantTradersAndBarbarians, PowerSave: dice.PowerSaveAfter10Min}
	if settings != expected {
		t.Errorf("DefaultSettings() = %+v, expected %+v", settings, expected)
	}
}

func TestLoadDeviceCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		invalid bool
	}{
		{"missing file", filepath.Join(dir, "nope.yaml"), false},
		{"malformed yaml", writeConfig(t, dir, "bad.yaml", "animation: [1, 2"), false},
		{"negative frames", writeConfig(t, dir, "neg.yaml", "animation:\n  frames: -1\n"), true},
		{"unknown variant", writeConfig(t, dir, "variant.yaml", "defaults:\n  game_variant: seafarers\n"), true},
		{"zero geometry", writeConfig(t, dir, "geo.yaml", "geometry:\n  two_dice_size: 0\n"), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadDevice(tc.path)
			if err == nil {
				t.Fatal("expected error")
			}
			if tc.invalid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadDeviceUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, filepath.Join(".catandice", "configs", "device.yaml"), "animation:\n  frames: 3\n")

	cfg, err := LoadDevice("")
	if err != nil {
		t.Fatalf("LoadDevice() failed: %v", err)
	}
	if cfg.Animation.Frames != 3 {
		t.Errorf("user config not used, frames = %d", cfg.Animation.Frames)
	}
}

func TestLoadDeviceFallsBackToEmbedded(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	// An invalid user file is skipped rather than fatal.
	writeConfig(t, home, filepath.Join(".catandice", "configs", "device.yaml"), "animation:\n  frames: 1000\n")

	cfg, err := LoadDevice("")
	if err != nil {
		t.Fatalf("LoadDevice() failed: %v", err)
	}
	if cfg != DefaultDeviceConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestDiceGeometryAndIntervals(t *testing.T) {
	cfg := DefaultDeviceConfig()
	if cfg.DiceGeometry() != dice.DefaultGeometry() {
		t.Errorf("DiceGeometry() = %+v", cfg.DiceGeometry())
	}
	if cfg.BatteryCheckInterval() != 10*time.Second {
		t.Errorf("BatteryCheckInterval() = %v", cfg.BatteryCheckInterval())
	}
}

func TestLoadDeviceEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())
	t.Setenv("CATANDICE_ANIMATION_FRAMES", "4")
	t.Setenv("CATANDICE_POWER_BATTERY_VOLTAGE", "3.65")
	t.Setenv("CATANDICE_DEFAULTS_GAME_VARIANT", "traders")

	cfg, err := LoadDevice("")
	if err != nil {
		t.Fatalf("LoadDevice: %v", err)
	}
	if cfg.Animation.Frames != 4 {
		t.Errorf("frames = %d, want 4", cfg.Animation.Frames)
	}
	if cfg.Power.BatteryVoltage != 3.65 {
		t.Errorf("battery voltage = %v, want 3.65", cfg.Power.BatteryVoltage)
	}
	if cfg.Defaults.GameVariant != "traders" {
		t.Errorf("game variant = %q, want traders", cfg.Defaults.GameVariant)
	}
	// Untouched values keep the file or embedded defaults.
	if cfg.Geometry != DefaultDeviceConfig().Geometry {
		t.Errorf("geometry = %+v, want defaults", cfg.Geometry)
	}
}

func TestLoadDeviceEnvOverrideInvalid(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	tests := []struct {
		name, key, value string
	}{
		{"not a number", "CATANDICE_ANIMATION_FRAMES", "many"},
		{"out of range", "CATANDICE_ANIMATION_FRAMES", "500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := LoadDevice(""); err == nil {
				t.Errorf("%s=%s: expected error", tt.key, tt.value)
			}
		})
	}
}

// chdir changes the working directory for the duration of the test,
// like testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
