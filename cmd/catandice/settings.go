package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/catan-dice/internal/storage"
)

var (
	flagSetMode      string
	flagSetVariant   string
	flagSetPowerSave string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the device settings",
	Long: `Show the persisted settings of a device, or change them with flags.

Changing settings here does not reset the statistics, unlike leaving the
menu on the device.

Examples:
  catandice settings
  catandice settings --mode equal
  catandice settings --variant traders --power-save never`,
	Run: runSettings,
}

func init() {
	settingsCmd.Flags().StringVar(&flagSetMode, "mode", "", "Dice mode: realistic, equal")
	settingsCmd.Flags().StringVar(&flagSetVariant, "variant", "", "Game variant: base, cities, traders")
	settingsCmd.Flags().StringVar(&flagSetPowerSave, "power-save", "", "Power saving: 5min, 10min, never")
}

func runSettings(_ *cobra.Command, _ []string) {
	devCfg := loadConfig()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening dice database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	settings, found, err := store.LoadSettings(flagDevice)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving settings: %v\n", err)
		os.Exit(1)
	}
	if !found {
		if settings, err = devCfg.DefaultSettings(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	updated, err := applySettingFlags(settings, flagSetMode, flagSetVariant, flagSetPowerSave)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if updated != settings {
		if err := store.SaveSettings(flagDevice, updated); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Settings of %s updated.\n", flagDevice)
		fmt.Println()
	}

	source := "saved"
	if !found && updated == settings {
		source = "defaults"
	}

	fmt.Printf("Settings - %s (%s)\n", flagDevice, source)
	fmt.Println()
	fmt.Printf("  %-12s  %s\n", "Dice mode", updated.Mode)
	fmt.Printf("  %-12s  %s\n", "Game variant", updated.Variant)
	fmt.Printf("  %-12s  %s\n", "Power saving", updated.PowerSave)
}
