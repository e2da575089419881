package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/catan-dice/internal/core"
	"github.com/vovakirdan/catan-dice/internal/device"
	"github.com/vovakirdan/catan-dice/internal/platform/tui"
	"github.com/vovakirdan/catan-dice/internal/storage"
)

var (
	flagPlayMode      string
	flagPlayVariant   string
	flagPlayPowerSave string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the dice device in the terminal",
	Long: `Run the dice device in the terminal.

The keyboard stands in for the device's two buttons:
  Space/Enter - Main button: roll, or change the option in the menu
  S           - Hold main button: show statistics
  M/Tab       - Menu button: open the menu, next page
  X           - Hold menu button: reset statistics
  ?           - Show all keys
  Q/Ctrl+C    - Quit

Leaving the last menu page saves the settings and starts fresh statistics.
Settings and statistics persist across runs per --device.

Examples:
  catandice play
  catandice play --variant traders
  catandice play --mode equal --device kitchen-table`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayMode, "mode", "", "Dice mode: realistic, equal")
	playCmd.Flags().StringVar(&flagPlayVariant, "variant", "", "Game variant: base, cities, traders")
	playCmd.Flags().StringVar(&flagPlayPowerSave, "power-save", "", "Power saving: 5min, 10min, never")
}

func runPlay(_ *cobra.Command, _ []string) {
	devCfg := loadConfig()

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.DefaultConfig()
	cfg.ScreenW = width
	cfg.ScreenH = height
	cfg.Seed = flagSeed
	cfg.DeviceID = flagDevice

	// Log to a file so the alt-screen stays clean
	logger := newLogger(os.Stderr, "catandice")
	if f, err := openLogFile(); err == nil {
		defer f.Close()
		logger = newLogger(f, "catandice")
	}

	// Open storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open dice database: %v\n", err)
		// Continue without storage - the device still works
		store = nil
	}

	dev := tui.NewDevice(store, device.Options{
		DeviceID: cfg.DeviceID,
		Seed:     cfg.Seed,
		Config:   devCfg,
		Logger:   logger,
	})

	settings, err := applySettingFlags(dev.Settings(), flagPlayMode, flagPlayVariant, flagPlayPowerSave)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if settings != dev.Settings() {
		dev.ApplySettings(settings)
	}

	runErr := tui.Run(dev, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running device: %v\n", runErr)
		os.Exit(1)
	}
}
