package dice

// DefaultFrameCount is the number of transient frames shown before a roll
// settles (~1s at 100ms per frame).
const DefaultFrameCount = 10

// Frame is one transient animation state. It is never recorded.
type Frame struct {
	Index    int
	Pair     Pair
	Event    int  // Event die face, 0 when HasEvent is false
	HasEvent bool // Whether the variant rolls an event die
}

// Result is the authoritative outcome of a roll.
type Result struct {
	Variant  GameVariant
	Mode     ProbabilityMode
	Pair     Pair
	Event    int
	HasEvent bool
}

// Sum returns the primary pair total.
func (r Result) Sum() int {
	return r.Pair.Sum()
}

// FrameFunc receives each transient frame for rendering.
type FrameFunc func(Frame)

// RollAnimationSequencer drives transient frames followed by one committed roll.
type RollAnimationSequencer struct {
	model    *RollModel
	composer *DiceSetComposer
}

// NewRollAnimationSequencer creates a sequencer over model and composer.
func NewRollAnimationSequencer(model *RollModel, composer *DiceSetComposer) *RollAnimationSequencer {
	return &RollAnimationSequencer{model: model, composer: composer}
}

// Animate emits frameCount transient frames to fn, then commits exactly one
// roll. A nil fn skips rendering but still consumes the same random draws.
// Negative frame counts are treated as zero.
func (s *RollAnimationSequencer) Animate(variant GameVariant, mode ProbabilityMode, frameCount int, fn FrameFunc) Result {
	hasEvent := variant.HasEventDie()

	for i := 0; i < frameCount; i++ {
		f := Frame{
			Index:    i,
			Pair:     s.model.RollPrimaryPair(mode),
			HasEvent: hasEvent,
		}
		if hasEvent {
			f.Event = s.composer.DrawEventDie()
		}
		if fn != nil {
			fn(f)
		}
	}

	res := Result{
		Variant:  variant,
		Mode:     mode,
		Pair:     s.model.CommitRoll(mode),
		HasEvent: hasEvent,
	}
	if hasEvent {
		res.Event = s.composer.DrawEventDie()
	}
	return res
}
