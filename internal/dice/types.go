// Package dice implements the roll simulation and statistics engine for the
// Catan dice device. It has no dependencies outside the standard library so
// the logic stays pure and testable, independent of rendering and storage.
package dice

import (
	"errors"
	"fmt"
	"time"
)

// Face bounds for a standard six-sided die.
const (
	MinFace = 1
	MaxFace = 6
	Sides   = MaxFace - MinFace + 1
)

// Sum bounds for a pair of primary dice.
const (
	MinSum  = 2 * MinFace
	MaxSum  = 2 * MaxFace
	NumSums = MaxSum - MinSum + 1
)

// ErrInvalidEnum indicates a mode, variant or power-save key is unknown.
var ErrInvalidEnum = errors.New("dice: invalid enum value")

// Role identifies what a die represents on screen.
type Role int

const (
	RolePrimaryWhite Role = iota
	RolePrimaryRed
	RoleEventColor
	RoleEventCastle
)

// String returns a human-readable name for the role.
func (r Role) String() string {
	switch r {
	case RolePrimaryWhite:
		return "White"
	case RolePrimaryRed:
		return "Red"
	case RoleEventColor:
		return "Color"
	case RoleEventCastle:
		return "Castle"
	default:
		return "Unknown"
	}
}

// IsPrimary reports whether the role is one of the two number dice.
func (r Role) IsPrimary() bool {
	return r == RolePrimaryWhite || r == RolePrimaryRed
}

// ProbabilityMode selects how the primary pair is generated.
type ProbabilityMode int

const (
	// ModeRealistic rolls two independent fair dice (triangular sum distribution).
	ModeRealistic ProbabilityMode = iota
	// ModeEqual draws the sum uniformly from 2..12 and decomposes it into faces.
	ModeEqual

	numModes = 2
)

// String returns the display name for the mode.
func (m ProbabilityMode) String() string {
	switch m {
	case ModeRealistic:
		return "Realistic"
	case ModeEqual:
		return "Equal"
	default:
		return "Unknown"
	}
}

// Key returns the stable identifier used in config files and flags.
func (m ProbabilityMode) Key() string {
	switch m {
	case ModeRealistic:
		return "realistic"
	case ModeEqual:
		return "equal"
	default:
		return ""
	}
}

// Valid reports whether m is a known mode.
func (m ProbabilityMode) Valid() bool {
	return m >= 0 && m < numModes
}

// Next returns the following mode in cyclic order.
func (m ProbabilityMode) Next() ProbabilityMode {
	return ProbabilityMode((int(m.normalized()) + 1) % numModes)
}

func (m ProbabilityMode) normalized() ProbabilityMode {
	if !m.Valid() {
		return ModeRealistic
	}
	return m
}

// ParseProbabilityMode parses a mode key ("realistic", "equal").
func ParseProbabilityMode(s string) (ProbabilityMode, error) {
	switch s {
	case "realistic":
		return ModeRealistic, nil
	case "equal", "equal-distribution":
		return ModeEqual, nil
	}
	return ModeRealistic, fmt.Errorf("%w: probability mode %q", ErrInvalidEnum, s)
}

// GameVariant selects which dice set is active.
type GameVariant int

const (
	VariantBase GameVariant = iota
	VariantCitiesAndKnights
	VariantTradersAndBarbarians

	numVariants = 3
)

// String returns the display name for the variant.
func (v GameVariant) String() string {
	switch v {
	case VariantBase:
		return "Base"
	case VariantCitiesAndKnights:
		return "Cities & Knights"
	case VariantTradersAndBarbarians:
		return "Traders & Barbarians"
	default:
		return "Unknown"
	}
}

// Short returns the abbreviated name shown in the status line.
func (v GameVariant) Short() string {
	switch v {
	case VariantCitiesAndKnights:
		return "Cities"
	case VariantTradersAndBarbarians:
		return "Traders"
	default:
		return "Base"
	}
}

// Key returns the stable identifier used in config files and flags.
func (v GameVariant) Key() string {
	switch v {
	case VariantBase:
		return "base"
	case VariantCitiesAndKnights:
		return "cities"
	case VariantTradersAndBarbarians:
		return "traders"
	default:
		return ""
	}
}

// Valid reports whether v is a known variant.
func (v GameVariant) Valid() bool {
	return v >= 0 && v < numVariants
}

// HasEventDie reports whether the variant rolls a third die.
func (v GameVariant) HasEventDie() bool {
	return v == VariantCitiesAndKnights || v == VariantTradersAndBarbarians
}

// Next returns the following variant in cyclic order.
func (v GameVariant) Next() GameVariant {
	return GameVariant((int(v.normalized()) + 1) % numVariants)
}

func (v GameVariant) normalized() GameVariant {
	if !v.Valid() {
		return VariantBase
	}
	return v
}

// ParseGameVariant parses a variant key ("base", "cities", "traders").
func ParseGameVariant(s string) (GameVariant, error) {
	switch s {
	case "base":
		return VariantBase, nil
	case "cities", "cities-and-knights":
		return VariantCitiesAndKnights, nil
	case "traders", "traders-and-barbarians":
		return VariantTradersAndBarbarians, nil
	}
	return VariantBase, fmt.Errorf("%w: game variant %q", ErrInvalidEnum, s)
}

// PowerSaveMode is the idle policy after which the device goes to sleep.
type PowerSaveMode int

const (
	PowerSaveNever PowerSaveMode = iota
	PowerSaveAfter5Min
	PowerSaveAfter10Min

	numPowerSaveModes = 3
)

// String returns the display name for the policy.
func (p PowerSaveMode) String() string {
	switch p {
	case PowerSaveNever:
		return "Never"
	case PowerSaveAfter5Min:
		return "5min"
	case PowerSaveAfter10Min:
		return "10min"
	default:
		return "Unknown"
	}
}

// Key returns the stable identifier used in config files and flags.
func (p PowerSaveMode) Key() string {
	switch p {
	case PowerSaveNever:
		return "never"
	case PowerSaveAfter5Min:
		return "5min"
	case PowerSaveAfter10Min:
		return "10min"
	default:
		return ""
	}
}

// Valid reports whether p is a known policy.
func (p PowerSaveMode) Valid() bool {
	return p >= 0 && p < numPowerSaveModes
}

// Next returns the following policy in cyclic order.
func (p PowerSaveMode) Next() PowerSaveMode {
	return PowerSaveMode((int(p.normalized()) + 1) % numPowerSaveModes)
}

// Timeout returns the idle time before sleep. Zero means never.
func (p PowerSaveMode) Timeout() time.Duration {
	switch p.normalized() {
	case PowerSaveAfter5Min:
		return 5 * time.Minute
	case PowerSaveAfter10Min:
		return 10 * time.Minute
	default:
		return 0
	}
}

func (p PowerSaveMode) normalized() PowerSaveMode {
	if !p.Valid() {
		return PowerSaveAfter10Min
	}
	return p
}

// ParsePowerSaveMode parses a policy key ("never", "5min", "10min").
func ParsePowerSaveMode(s string) (PowerSaveMode, error) {
	switch s {
	case "never":
		return PowerSaveNever, nil
	case "5min", "after-5-min":
		return PowerSaveAfter5Min, nil
	case "10min", "after-10-min":
		return PowerSaveAfter10Min, nil
	}
	return PowerSaveAfter10Min, fmt.Errorf("%w: power save mode %q", ErrInvalidEnum, s)
}
