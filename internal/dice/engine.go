package dice

// Engine owns the full dice state of one device: settings, dice and
// statistics. All mutation goes through its methods. It is not safe for
// concurrent use; each control loop owns its own Engine.
type Engine struct {
	settings  Settings
	stats     *StatisticsTable
	model     *RollModel
	composer  *DiceSetComposer
	sequencer *RollAnimationSequencer
	last      *Result
}

// NewEngine creates an engine drawing from rng. Settings are normalized.
func NewEngine(rng *RandomSource, settings Settings, geometry Geometry) *Engine {
	settings = settings.Normalize()
	stats := NewStatisticsTable()
	model := NewRollModel(rng, stats)
	composer := NewDiceSetComposer(rng, geometry, settings.Variant)

	return &Engine{
		settings:  settings,
		stats:     stats,
		model:     model,
		composer:  composer,
		sequencer: NewRollAnimationSequencer(model, composer),
	}
}

// Settings returns the current settings.
func (e *Engine) Settings() Settings {
	return e.settings
}

// SetSettings replaces the settings and resyncs dice geometry.
func (e *Engine) SetSettings(s Settings) {
	e.settings = s.Normalize()
	e.composer.SetVariant(e.settings.Variant)
}

// Stats returns the statistics table. Callers outside the control loop
// should only read it.
func (e *Engine) Stats() *StatisticsTable {
	return e.stats
}

// Composer exposes the dice set composer.
func (e *Engine) Composer() *DiceSetComposer {
	return e.composer
}

// CycleProbabilityMode advances the probability mode.
func (e *Engine) CycleProbabilityMode() {
	e.settings.CycleProbabilityMode()
}

// CycleGameVariant advances the variant and resyncs dice geometry.
func (e *Engine) CycleGameVariant() {
	e.settings.CycleGameVariant()
	e.composer.SetVariant(e.settings.Variant)
}

// CyclePowerSaveMode advances the power-save policy.
func (e *Engine) CyclePowerSaveMode() {
	e.settings.CyclePowerSaveMode()
}

// Roll animates and commits one roll with the current settings. Transient
// frames are passed to fn. The committed faces are applied to the dice.
func (e *Engine) Roll(frameCount int, fn FrameFunc) Result {
	variant := e.settings.Variant
	res := e.sequencer.Animate(variant, e.settings.Mode, frameCount, fn)

	e.composer.SetFace(RolePrimaryWhite, res.Pair.White)
	e.composer.SetFace(RolePrimaryRed, res.Pair.Red)
	if role, ok := e.composer.EventRole(variant); ok {
		e.composer.SetFace(role, res.Event)
	}

	e.last = &res
	return res
}

// LastResult returns the most recent committed roll, if any.
func (e *Engine) LastResult() (Result, bool) {
	if e.last == nil {
		return Result{}, false
	}
	return *e.last, true
}

// Dice returns the dice for the active variant with their current faces.
func (e *Engine) Dice() []Die {
	return e.composer.Dice(e.settings.Variant)
}

// ResetStats zeroes the statistics table.
func (e *Engine) ResetStats() {
	e.stats.Reset()
}
