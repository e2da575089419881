package dice

// Settings is the persisted device configuration: probability mode, game
// variant and power-save policy.
type Settings struct {
	Mode      ProbabilityMode
	Variant   GameVariant
	PowerSave PowerSaveMode
}

// DefaultSettings returns the factory settings.
func DefaultSettings() Settings {
	return Settings{
		Mode:      ModeRealistic,
		Variant:   VariantBase,
		PowerSave: PowerSaveAfter10Min,
	}
}

// Normalize replaces any out-of-range field with its default.
// Corrupted persisted values are recovered silently this way.
func (s Settings) Normalize() Settings {
	def := DefaultSettings()
	if !s.Mode.Valid() {
		s.Mode = def.Mode
	}
	if !s.Variant.Valid() {
		s.Variant = def.Variant
	}
	if !s.PowerSave.Valid() {
		s.PowerSave = def.PowerSave
	}
	return s
}

// CycleProbabilityMode advances to the next mode (2-cycle).
func (s *Settings) CycleProbabilityMode() {
	s.Mode = s.Mode.Next()
}

// CycleGameVariant advances to the next variant (3-cycle).
func (s *Settings) CycleGameVariant() {
	s.Variant = s.Variant.Next()
}

// CyclePowerSaveMode advances to the next power-save policy (3-cycle).
func (s *Settings) CyclePowerSaveMode() {
	s.PowerSave = s.PowerSave.Next()
}
