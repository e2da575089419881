// catandice is a terminal simulator of a Catan electronic dice device.
//
// Usage:
//
//	catandice play             - Run the device in the terminal
//	catandice serve            - Start SSH server, one device per user
//	catandice roll -n 100      - Roll headless and print a histogram
//	catandice stats            - Show the persisted statistics
//	catandice settings         - Show or change the device settings
//	catandice history          - Browse the roll history
//
// Global flags:
//
//	--seed <value>   - Set RNG seed for reproducible rolls
//	--db <path>      - Set database path (default: ~/.catandice/dice.db)
//	--config <path>  - Use a custom device config YAML
//	--device <id>    - Device whose settings and statistics are used
//	--verbose        - Enable debug logging
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/catan-dice/internal/config"
	"github.com/vovakirdan/catan-dice/internal/dice"
)

var (
	// Global flags
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagDevice  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "catandice",
	Short: "Catan dice - an electronic dice device in your terminal",
	Long: `Catan dice simulates a handheld electronic dice device for Catan.

It rolls two number dice, plus the castle die for Cities & Knights or the
color die for Traders & Barbarians, and keeps statistics of every sum.
Rolls can follow real dice odds or give every sum from 2 to 12 the same chance.

Available commands:
  play      - Run the device in the terminal
  serve     - Start SSH server, one device per user
  roll      - Roll headless and print a histogram
  stats     - Show the persisted statistics
  settings  - Show or change the device settings
  history   - Browse the roll history

Examples:
  catandice play
  catandice roll -n 1000 --mode equal
  catandice serve --ssh :2222
  catandice settings --variant cities`,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.catandice/dice.db", "Path to dice database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom device config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDevice, "device", "local", "Device ID for settings and statistics")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(historyCmd)
}

// newLogger creates a logger writing to w at the level chosen by --verbose.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// openLogFile opens the log file used while the alt-screen is active.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".catandice")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	return os.OpenFile(filepath.Join(dir, "catandice.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

// loadConfig loads the device config or exits.
func loadConfig() config.DeviceConfig {
	cfg, err := config.LoadDevice(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// applySettingFlags overrides the settings named by non-empty flag values.
func applySettingFlags(s dice.Settings, mode, variant, powerSave string) (dice.Settings, error) {
	if mode != "" {
		m, err := dice.ParseProbabilityMode(mode)
		if err != nil {
			return s, err
		}
		s.Mode = m
	}
	if variant != "" {
		v, err := dice.ParseGameVariant(variant)
		if err != nil {
			return s, err
		}
		s.Variant = v
	}
	if powerSave != "" {
		p, err := dice.ParsePowerSaveMode(powerSave)
		if err != nil {
			return s, err
		}
		s.PowerSave = p
	}
	return s, nil
}
