package dice

import (
	"errors"
	"testing"
)

// scriptedSource returns queued Intn results in order and records each n.
type scriptedSource struct {
	vals  []int
	calls []int
}

func (s *scriptedSource) Intn(n int) int {
	s.calls = append(s.calls, n)
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[0]
	s.vals = s.vals[1:]
	return v
}

// constSource always returns the same Intn result.
type constSource struct{ v int }

func (c constSource) Intn(n int) int { return c.v % n }

func newScriptedModel(vals ...int) (*RollModel, *StatisticsTable, *scriptedSource) {
	src := &scriptedSource{vals: vals}
	stats := NewStatisticsTable()
	return NewRollModel(NewRandomSourceFrom(src), stats), stats, src
}

func TestRollPrimaryPairRealisticRange(t *testing.T) {
	model := NewRollModel(NewRandomSource(42), NewStatisticsTable())

	for i := 0; i < 10000; i++ {
		p := model.RollPrimaryPair(ModeRealistic)
		if p.White < MinFace || p.White > MaxFace || p.Red < MinFace || p.Red > MaxFace {
			t.Fatalf("trial %d: pair out of range: %+v", i, p)
		}
	}
}

func TestRollPrimaryPairRealisticDistribution(t *testing.T) {
	model := NewRollModel(NewRandomSource(7), NewStatisticsTable())

	const trials = 36000
	var counts [MaxSum + 1]int
	for i := 0; i < trials; i++ {
		counts[model.RollPrimaryPair(ModeRealistic).Sum()]++
	}

	// Expect 6000 sevens and 1000 each of 2 and 12.
	if counts[7] < 5500 || counts[7] > 6500 {
		t.Errorf("expected ~6000 sevens, got %d", counts[7])
	}
	for _, sum := range []int{2, 12} {
		if counts[sum] < 800 || counts[sum] > 1200 {
			t.Errorf("expected ~1000 of sum %d, got %d", sum, counts[sum])
		}
	}
}

func TestRollPrimaryPairEqualDistribution(t *testing.T) {
	model := NewRollModel(NewRandomSource(12345), NewStatisticsTable())

	const trials = 110000
	var counts [MaxSum + 1]int
	for i := 0; i < trials; i++ {
		p := model.RollPrimaryPair(ModeEqual)
		if p.White < MinFace || p.White > MaxFace || p.Red < MinFace || p.Red > MaxFace {
			t.Fatalf("trial %d: pair out of range: %+v", i, p)
		}
		counts[p.Sum()]++
	}

	// 10000 expected per sum; standard deviation is ~95.
	for sum := MinSum; sum <= MaxSum; sum++ {
		if counts[sum] < 9500 || counts[sum] > 10500 {
			t.Errorf("sum %d: expected ~10000, got %d", sum, counts[sum])
		}
	}
}

func TestEqualModeForcedSums(t *testing.T) {
	tests := []struct {
		name     string
		vals     []int
		expected Pair
	}{
		{"sum 2 is snake eyes", []int{0}, Pair{1, 1}},
		{"sum 12 is double six", []int{10}, Pair{6, 6}},
		{"sum 7 with first face 1", []int{5, 0}, Pair{1, 6}},
		{"sum 7 with first face 6", []int{5, 5}, Pair{6, 1}},
		{"sum 3 rejects 6 then takes 2", []int{1, 5, 1}, Pair{2, 1}},
		{"sum 11 rejects 1 then takes 5", []int{9, 0, 4}, Pair{5, 6}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			model, stats, _ := newScriptedModel(tc.vals...)
			got := model.RollPrimaryPair(ModeEqual)
			if got != tc.expected {
				t.Errorf("RollPrimaryPair() = %+v, expected %+v", got, tc.expected)
			}
			if stats.Total() != 0 {
				t.Errorf("RollPrimaryPair must not record, total = %d", stats.Total())
			}
		})
	}
}

func TestEqualModeEdgeSumsSkipFaceDraws(t *testing.T) {
	for _, raw := range []int{0, 10} {
		model, _, src := newScriptedModel(raw)
		model.RollPrimaryPair(ModeEqual)
		if len(src.calls) != 1 {
			t.Errorf("sum draw %d: expected 1 source call, got %d", raw+MinSum, len(src.calls))
		}
	}
}

func TestEqualModeRejectionTerminatesWithinSixAttempts(t *testing.T) {
	for sum := MinSum + 1; sum <= MaxSum-1; sum++ {
		// Sum draw, then faces 1..6 in order.
		model, _, src := newScriptedModel(sum-MinSum, 0, 1, 2, 3, 4, 5)
		p := model.RollPrimaryPair(ModeEqual)

		if p.Sum() != sum {
			t.Errorf("sum %d: got pair %+v", sum, p)
		}
		faceDraws := len(src.calls) - 1
		if faceDraws < 1 || faceDraws > Sides {
			t.Errorf("sum %d: expected 1..6 face draws, got %d", sum, faceDraws)
		}
	}
}

func TestEqualModeDegenerateSourceFallsBack(t *testing.T) {
	// Sum 3, then face 6 on every draw: no attempt is ever valid.
	src := &scriptedSource{vals: []int{1}}
	for i := 0; i < maxDecomposeAttempts; i++ {
		src.vals = append(src.vals, 5)
	}
	model := NewRollModel(NewRandomSourceFrom(src), NewStatisticsTable())

	got := model.RollPrimaryPair(ModeEqual)
	if got != (Pair{1, 2}) {
		t.Errorf("expected fallback pair {1 2}, got %+v", got)
	}
}

func TestEqualModeConstantSourceAlwaysTerminates(t *testing.T) {
	for v := 0; v < Sides; v++ {
		model := NewRollModel(NewRandomSourceFrom(constSource{v: v}), NewStatisticsTable())
		p := model.RollPrimaryPair(ModeEqual)
		if p.White < MinFace || p.White > MaxFace || p.Red < MinFace || p.Red > MaxFace {
			t.Errorf("const %d: pair out of range: %+v", v, p)
		}
	}
}

func TestCommitRollIncrementsExactlyOneBucket(t *testing.T) {
	model := NewRollModel(NewRandomSource(99), NewStatisticsTable())
	stats := model.stats

	const n = 500
	for i := 1; i <= n; i++ {
		before := stats.Snapshot()
		p := model.CommitRoll(ModeEqual)
		after := stats.Snapshot()

		changed := 0
		for j := range before {
			if after[j].Count != before[j].Count {
				changed++
				if after[j].Sum != p.Sum() || after[j].Count != before[j].Count+1 {
					t.Fatalf("commit %d: wrong bucket changed: %+v -> %+v for pair %+v", i, before[j], after[j], p)
				}
			}
		}
		if changed != 1 {
			t.Fatalf("commit %d: expected 1 bucket change, got %d", i, changed)
		}
	}

	if stats.Total() != n {
		t.Errorf("Total() = %d, expected %d", stats.Total(), n)
	}
}

func TestCommitRollPanicsOnCorruptedTable(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrSumOutOfRange) {
			t.Errorf("expected ErrSumOutOfRange panic, got %v", r)
		}
	}()

	// A source yielding out-of-range faces models a logic defect upstream.
	model := NewRollModel(NewRandomSourceFrom(badSource{}), NewStatisticsTable())
	model.CommitRoll(ModeRealistic)
}

// badSource ignores n and returns a value that maps to face 7.
type badSource struct{}

func (badSource) Intn(int) int { return 6 }
