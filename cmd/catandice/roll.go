package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/catan-dice/internal/device"
	"github.com/vovakirdan/catan-dice/internal/dice"
	"github.com/vovakirdan/catan-dice/internal/storage"
)

// Rolls listed one by one before only the histogram is printed.
const maxListedRolls = 20

var (
	flagRollCount   int
	flagRollMode    string
	flagRollVariant string
	flagRollFrames  int
	flagRollRecord  bool
)

var rollCmd = &cobra.Command{
	Use:   "roll",
	Short: "Roll headless and print the results",
	Long: `Roll the dice without a screen and print the results with a histogram.

Settings start from the device's persisted settings and can be overridden
with flags. The transient animation frames still draw random numbers, so
--frames changes the outcome of a seeded run just like on the device.

Examples:
  catandice roll
  catandice roll -n 1000 --mode equal
  catandice roll -n 5 --variant cities --seed 42
  catandice roll -n 10 --record`,
	Run: runRoll,
}

func init() {
	rollCmd.Flags().IntVarP(&flagRollCount, "count", "n", 1, "Number of rolls")
	rollCmd.Flags().StringVar(&flagRollMode, "mode", "", "Dice mode: realistic, equal")
	rollCmd.Flags().StringVar(&flagRollVariant, "variant", "", "Game variant: base, cities, traders")
	rollCmd.Flags().IntVar(&flagRollFrames, "frames", -1, "Animation frames per roll (-1 = from config)")
	rollCmd.Flags().BoolVar(&flagRollRecord, "record", false, "Record the rolls in the device statistics and history")
}

func runRoll(_ *cobra.Command, _ []string) {
	if flagRollCount < 1 {
		fmt.Fprintln(os.Stderr, "Error: --count must be at least 1")
		os.Exit(1)
	}

	devCfg := loadConfig()
	if flagRollFrames >= 0 {
		devCfg.Animation.Frames = flagRollFrames
	}

	logger := newLogger(os.Stderr, "catandice")

	opts := device.Options{
		DeviceID: flagDevice,
		Seed:     flagSeed,
		Config:   devCfg,
		Logger:   logger,
	}
	if flagSeed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	// Settings are always read from the store; rolls are only written with --record.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open dice database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
		opts.Settings = readOnlySettings{store}
		if flagRollRecord {
			opts.Settings = store
			opts.Stats = store
			opts.Rolls = store
		}
	}

	dev := device.New(opts)
	settings, err := applySettingFlags(dev.Settings(), flagRollMode, flagRollVariant, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	dev.Engine().SetSettings(settings)

	// Local histogram of this run only.
	run := dice.NewStatisticsTable()
	for i := 0; i < flagRollCount; i++ {
		res := dev.Roll()
		dev.FinishRoll()
		//nolint:errcheck // Committed sums are always 2..12
		run.Increment(res.Sum())

		if flagRollCount <= maxListedRolls {
			printRoll(i+1, res)
		}
	}

	if flagRollCount > 1 {
		if flagRollCount <= maxListedRolls {
			fmt.Println()
		}
		printDistribution(os.Stdout, run, settings.Mode)
	}
	logger.Debug("rolled", "count", flagRollCount, "seed", opts.Seed, "recorded", flagRollRecord && store != nil)
}

// printRoll prints one committed roll.
func printRoll(n int, res dice.Result) {
	line := fmt.Sprintf("  #%-3d %2d  (white %d, red %d)", n, res.Sum(), res.Pair.White, res.Pair.Red)
	if label := device.EventLabel(res.Variant, res.Event); res.HasEvent && label != "" {
		line += "  " + label
	}
	fmt.Println(line)
}

// readOnlySettings loads persisted settings but drops writes, so a plain
// roll never changes the device.
type readOnlySettings struct {
	store *storage.Store
}

func (r readOnlySettings) LoadSettings(deviceID string) (dice.Settings, bool, error) {
	return r.store.LoadSettings(deviceID)
}

func (readOnlySettings) SaveSettings(string, dice.Settings) error {
	return nil
}
