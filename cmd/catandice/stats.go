package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/catan-dice/internal/dice"
	"github.com/vovakirdan/catan-dice/internal/storage"
)

// Width of the longest histogram bar, in cells.
const histogramWidth = 40

var (
	barStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	expectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var flagStatsReset bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the persisted dice statistics",
	Long: `Display how often each sum from 2 to 12 was rolled on a device,
next to the share expected for the device's dice mode.

Examples:
  catandice stats
  catandice stats --device ssh-alice
  catandice stats --reset`,
	Run: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsReset, "reset", false, "Reset the statistics instead of showing them")
}

func runStats(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening dice database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagStatsReset {
		if err := store.SaveStatistics(flagDevice, nil); err != nil {
			fmt.Fprintf(os.Stderr, "Error resetting statistics: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Statistics of %s reset.\n", flagDevice)
		return
	}

	buckets, err := store.LoadStatistics(flagDevice)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving statistics: %v\n", err)
		os.Exit(1)
	}
	stats := dice.NewStatisticsTable()
	if err := stats.Restore(buckets); err != nil {
		fmt.Fprintf(os.Stderr, "Error: stored statistics are corrupt: %v\n", err)
		os.Exit(1)
	}

	settings, _, err := store.LoadSettings(flagDevice)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving settings: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Dice Statistics - %s (%s)\n", flagDevice, settings.Mode)
	fmt.Println()

	if stats.Total() == 0 {
		fmt.Println("No rolls recorded yet.")
		fmt.Println()
		fmt.Println("Run 'catandice play' and press space to roll!")
		return
	}

	printDistribution(os.Stdout, stats, settings.Mode)
}

// printDistribution prints one row per sum with its count, observed and
// expected share and a bar scaled to the most frequent sum.
func printDistribution(w io.Writer, stats *dice.StatisticsTable, mode dice.ProbabilityMode) {
	maxCount := 0
	for sum := dice.MinSum; sum <= dice.MaxSum; sum++ {
		maxCount = max(maxCount, stats.Count(sum))
	}

	fmt.Fprintf(w, "  %-3s  %-7s  %-8s  %-8s\n", "Sum", "Count", "Observed", "Expected")
	fmt.Fprintf(w, "  %-3s  %-7s  %-8s  %-8s\n", "---", "-----", "--------", "--------")

	for _, share := range stats.Distribution(mode) {
		count := stats.Count(share.Sum)
		bar := ""
		if maxCount > 0 && count > 0 {
			bar = barStyle.Render(strings.Repeat("█", max(count*histogramWidth/maxCount, 1)))
		}
		fmt.Fprintf(w, "  %3d  %7d  %7.2f%%  %s  %s\n",
			share.Sum, count, share.Observed*100,
			expectedStyle.Render(fmt.Sprintf("%7.2f%%", share.Expected*100)), bar)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("Total: %d", stats.Total())))
}
