package dice

import (
	"testing"
	"time"
)

func TestCycleGameVariantOrderThree(t *testing.T) {
	for _, start := range []GameVariant{VariantBase, VariantCitiesAndKnights, VariantTradersAndBarbarians} {
		s := Settings{Variant: start}
		seen := map[GameVariant]bool{}
		for i := 0; i < 3; i++ {
			seen[s.Variant] = true
			s.CycleGameVariant()
		}
		if s.Variant != start {
			t.Errorf("from %v: after 3 cycles got %v", start, s.Variant)
		}
		if len(seen) != 3 {
			t.Errorf("from %v: visited %d variants, expected 3", start, len(seen))
		}
	}
}

func TestCyclePowerSaveOrderThree(t *testing.T) {
	s := Settings{PowerSave: PowerSaveNever}
	order := []PowerSaveMode{PowerSaveAfter5Min, PowerSaveAfter10Min, PowerSaveNever}
	for i, want := range order {
		s.CyclePowerSaveMode()
		if s.PowerSave != want {
			t.Errorf("step %d: got %v, expected %v", i, s.PowerSave, want)
		}
	}
}

func TestCycleProbabilityModeOrderTwo(t *testing.T) {
	s := DefaultSettings()
	s.CycleProbabilityMode()
	if s.Mode != ModeEqual {
		t.Errorf("after one cycle got %v, expected Equal", s.Mode)
	}
	s.CycleProbabilityMode()
	if s.Mode != ModeRealistic {
		t.Errorf("after two cycles got %v, expected Realistic", s.Mode)
	}
}

func TestCycleFromInvalidStaysInRange(t *testing.T) {
	s := Settings{Mode: 7, Variant: -3, PowerSave: 42}
	s.CycleProbabilityMode()
	s.CycleGameVariant()
	s.CyclePowerSaveMode()
	if !s.Mode.Valid() || !s.Variant.Valid() || !s.PowerSave.Valid() {
		t.Errorf("cycling from invalid values produced %+v", s)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       Settings
		expected Settings
	}{
		{
			name:     "valid settings unchanged",
			in:       Settings{ModeEqual, VariantTradersAndBarbarians, PowerSaveNever},
			expected: Settings{ModeEqual, VariantTradersAndBarbarians, PowerSaveNever},
		},
		{
			name:     "corrupted mode",
			in:       Settings{ProbabilityMode(200), VariantCitiesAndKnights, PowerSaveAfter5Min},
			expected: Settings{ModeRealistic, VariantCitiesAndKnights, PowerSaveAfter5Min},
		},
		{
			name:     "everything corrupted",
			in:       Settings{-1, 3, 3},
			expected: DefaultSettings(),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Normalize(); got != tc.expected {
				t.Errorf("Normalize() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestEnumKeysRoundTrip(t *testing.T) {
	for m := ModeRealistic; m < numModes; m++ {
		got, err := ParseProbabilityMode(m.Key())
		if err != nil || got != m {
			t.Errorf("mode %v: parse(%q) = %v, %v", m, m.Key(), got, err)
		}
	}
	for v := VariantBase; v < numVariants; v++ {
		got, err := ParseGameVariant(v.Key())
		if err != nil || got != v {
			t.Errorf("variant %v: parse(%q) = %v, %v", v, v.Key(), got, err)
		}
	}
	for p := PowerSaveNever; p < numPowerSaveModes; p++ {
		got, err := ParsePowerSaveMode(p.Key())
		if err != nil || got != p {
			t.Errorf("power save %v: parse(%q) = %v, %v", p, p.Key(), got, err)
		}
	}
}

func TestComposerActiveDice(t *testing.T) {
	c := NewDiceSetComposer(NewRandomSource(1), DefaultGeometry(), VariantBase)

	tests := []struct {
		variant  GameVariant
		expected []Role
	}{
		{VariantBase, []Role{RolePrimaryWhite, RolePrimaryRed}},
		{VariantCitiesAndKnights, []Role{RolePrimaryWhite, RolePrimaryRed, RoleEventCastle}},
		{VariantTradersAndBarbarians, []Role{RolePrimaryWhite, RolePrimaryRed, RoleEventColor}},
	}

	for _, tc := range tests {
		got := c.ActiveDice(tc.variant)
		if len(got) != len(tc.expected) {
			t.Errorf("%v: got %v, expected %v", tc.variant, got, tc.expected)
			continue
		}
		for i := range got {
			if got[i] != tc.expected[i] {
				t.Errorf("%v: got %v, expected %v", tc.variant, got, tc.expected)
			}
		}
	}

	// Returned slices must not alias the table.
	roles := c.ActiveDice(VariantBase)
	roles[0] = RoleEventColor
	if c.ActiveDice(VariantBase)[0] != RolePrimaryWhite {
		t.Error("ActiveDice leaked its internal table")
	}
}

func TestComposerGeometry(t *testing.T) {
	c := NewDiceSetComposer(NewRandomSource(1), DefaultGeometry(), VariantTradersAndBarbarians)

	for _, d := range c.Dice(VariantTradersAndBarbarians) {
		want := 0
		switch d.Role {
		case RolePrimaryWhite, RolePrimaryRed:
			want = 5
		case RoleEventColor:
			want = 16
		}
		if d.Size != 50 || d.DotSize != want {
			t.Errorf("%v: size %d dot %d, expected 50/%d", d.Role, d.Size, d.DotSize, want)
		}
	}

	c.SetVariant(VariantBase)
	for _, d := range c.Dice(VariantBase) {
		if d.Size != 70 || d.DotSize != 7 {
			t.Errorf("%v: size %d dot %d, expected 70/7", d.Role, d.Size, d.DotSize)
		}
	}
}

func TestComposerDrawEventDieRange(t *testing.T) {
	c := NewDiceSetComposer(NewRandomSource(3), DefaultGeometry(), VariantCitiesAndKnights)
	var seen [MaxFace + 1]bool
	for i := 0; i < 600; i++ {
		f := c.DrawEventDie()
		if f < MinFace || f > MaxFace {
			t.Fatalf("event face out of range: %d", f)
		}
		seen[f] = true
	}
	for f := MinFace; f <= MaxFace; f++ {
		if !seen[f] {
			t.Errorf("face %d never drawn in 600 tries", f)
		}
	}
}

func TestPowerSaveTimeout(t *testing.T) {
	tests := []struct {
		mode PowerSaveMode
		want time.Duration
	}{
		{PowerSaveNever, 0},
		{PowerSaveAfter5Min, 5 * time.Minute},
		{PowerSaveAfter10Min, 10 * time.Minute},
		{PowerSaveMode(42), 10 * time.Minute},
	}
	for _, tc := range tests {
		if got := tc.mode.Timeout(); got != tc.want {
			t.Errorf("%v.Timeout() = %v, expected %v", tc.mode, got, tc.want)
		}
	}
}
