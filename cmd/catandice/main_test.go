package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/catan-dice/internal/dice"
)

func TestApplySettingFlags(t *testing.T) {
	base := dice.DefaultSettings()

	tests := []struct {
		name      string
		mode      string
		variant   string
		powerSave string
		want      dice.Settings
		wantErr   bool
	}{
		{name: "no flags", want: base},
		{
			name: "mode only", mode: "equal",
			want: dice.Settings{Mode: dice.ModeEqual, Variant: base.Variant, PowerSave: base.PowerSave},
		},
		{
			name: "all", mode: "realistic", variant: "traders", powerSave: "never",
			want: dice.Settings{Mode: dice.ModeRealistic, Variant: dice.VariantTradersAndBarbarians, PowerSave: dice.PowerSaveNever},
		},
		{name: "bad mode", mode: "loaded", wantErr: true},
		{name: "bad variant", variant: "seafarers", wantErr: true},
		{name: "bad power save", powerSave: "1h", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applySettingFlags(base, tt.mode, tt.variant, tt.powerSave)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPrintDistribution(t *testing.T) {
	stats := dice.NewStatisticsTable()
	for _, sum := range []int{7, 7, 7, 2, 12} {
		if err := stats.Increment(sum); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	printDistribution(&buf, stats, dice.ModeRealistic)
	out := buf.String()

	for _, want := range []string{"Sum", "Expected", "Total: 5", "60.00%", "16.67%", "2.78%"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// Header, separator, one row per sum, blank line, total.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2+dice.NumSums+2 {
		t.Errorf("got %d lines, want %d", len(lines), 2+dice.NumSums+2)
	}
}
