package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/catan-dice/internal/platform/tui"
	"github.com/vovakirdan/catan-dice/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse the roll history",
	Long: `Browse every recorded roll, one tab per device.

Controls:
  Up/Down, K/J  - Scroll
  Tab, Right    - Next device
  Shift+Tab     - Previous device
  Q/Esc         - Quit

Examples:
  catandice history
  catandice history --device ssh-alice`,
	Run: runHistory,
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening dice database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if err := tui.RunHistory(store, flagDevice, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error running history: %v\n", err)
		os.Exit(1)
	}
}
