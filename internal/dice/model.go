package dice

// maxDecomposeAttempts caps the rejection loop for equal-distribution sums.
// With a uniform source the chance of reaching it is below 1e-12.
const maxDecomposeAttempts = 64

// Pair holds the faces of the two primary dice.
type Pair struct {
	White int
	Red   int
}

// Sum returns the total of both faces.
func (p Pair) Sum() int {
	return p.White + p.Red
}

// RollModel generates primary pairs and records committed ones.
type RollModel struct {
	rng   *RandomSource
	stats *StatisticsTable
}

// NewRollModel creates a model drawing from rng and recording into stats.
func NewRollModel(rng *RandomSource, stats *StatisticsTable) *RollModel {
	return &RollModel{rng: rng, stats: stats}
}

// RollPrimaryPair produces a pair for mode without touching statistics.
func (m *RollModel) RollPrimaryPair(mode ProbabilityMode) Pair {
	if mode == ModeEqual {
		return m.decompose(m.rng.NextSum())
	}
	return Pair{White: m.rng.NextFace(), Red: m.rng.NextFace()}
}

// decompose splits sum into two valid faces by rejection sampling on the
// first face.
func (m *RollModel) decompose(sum int) Pair {
	switch sum {
	case MinSum:
		return Pair{White: MinFace, Red: MinFace}
	case MaxSum:
		return Pair{White: MaxFace, Red: MaxFace}
	}

	for attempt := 0; attempt < maxDecomposeAttempts; attempt++ {
		first := m.rng.NextFace()
		second := sum - first
		if second >= MinFace && second <= MaxFace {
			return Pair{White: first, Red: second}
		}
	}

	// Degenerate source: fall back to the smallest valid first face.
	first := max(MinFace, sum-MaxFace)
	return Pair{White: first, Red: sum - first}
}

// CommitRoll rolls a pair and records its sum. It is the only path that
// mutates statistics.
func (m *RollModel) CommitRoll(mode ProbabilityMode) Pair {
	p := m.RollPrimaryPair(mode)
	if err := m.stats.Increment(p.Sum()); err != nil {
		panic(err)
	}
	return p
}
