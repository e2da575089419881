package dice

import (
	"errors"
	"fmt"
)

// ErrSumOutOfRange indicates a histogram update for a sum outside 2..12.
var ErrSumOutOfRange = errors.New("dice: sum out of range")

// ErrInvalidCount indicates a negative bucket count on restore.
var ErrInvalidCount = errors.New("dice: invalid bucket count")

// Bucket is one histogram entry.
type Bucket struct {
	Sum   int
	Count int
}

// StatisticsTable is a histogram of committed pair sums.
// The zero value is an empty table ready for use.
type StatisticsTable struct {
	counts [NumSums]int
}

// NewStatisticsTable creates an empty table.
func NewStatisticsTable() *StatisticsTable {
	return &StatisticsTable{}
}

// Increment records one roll with the given sum.
func (t *StatisticsTable) Increment(sum int) error {
	if sum < MinSum || sum > MaxSum {
		return fmt.Errorf("%w: %d", ErrSumOutOfRange, sum)
	}
	t.counts[sum-MinSum]++
	return nil
}

// Reset zeroes every bucket.
func (t *StatisticsTable) Reset() {
	t.counts = [NumSums]int{}
}

// Count returns the count for a sum, or 0 when the sum is out of range.
func (t *StatisticsTable) Count(sum int) int {
	if sum < MinSum || sum > MaxSum {
		return 0
	}
	return t.counts[sum-MinSum]
}

// Total returns the number of recorded rolls.
func (t *StatisticsTable) Total() int {
	total := 0
	for _, c := range t.counts {
		total += c
	}
	return total
}

// Snapshot returns the buckets ordered by sum from 2 to 12.
// The returned slice is a copy.
func (t *StatisticsTable) Snapshot() []Bucket {
	out := make([]Bucket, NumSums)
	for i, c := range t.counts {
		out[i] = Bucket{Sum: i + MinSum, Count: c}
	}
	return out
}

// Restore replaces the table contents with persisted buckets.
// Sums missing from buckets are zeroed. The table is unchanged on error.
func (t *StatisticsTable) Restore(buckets []Bucket) error {
	var counts [NumSums]int
	for _, b := range buckets {
		if b.Sum < MinSum || b.Sum > MaxSum {
			return fmt.Errorf("%w: %d", ErrSumOutOfRange, b.Sum)
		}
		if b.Count < 0 {
			return fmt.Errorf("%w: sum %d has count %d", ErrInvalidCount, b.Sum, b.Count)
		}
		counts[b.Sum-MinSum] = b.Count
	}
	t.counts = counts
	return nil
}

// Share is the observed and expected frequency of one sum.
type Share struct {
	Sum      int
	Observed float64
	Expected float64
}

// Distribution compares observed frequencies with the expected ones for mode.
// Observed is 0 for every sum when the table is empty.
func (t *StatisticsTable) Distribution(mode ProbabilityMode) []Share {
	total := t.Total()
	out := make([]Share, NumSums)
	for i, c := range t.counts {
		sum := i + MinSum
		var observed float64
		if total > 0 {
			observed = float64(c) / float64(total)
		}
		out[i] = Share{Sum: sum, Observed: observed, Expected: ExpectedShare(mode, sum)}
	}
	return out
}

// ExpectedShare returns the theoretical probability of sum under mode.
func ExpectedShare(mode ProbabilityMode, sum int) float64 {
	if sum < MinSum || sum > MaxSum {
		return 0
	}
	if mode == ModeEqual {
		return 1.0 / NumSums
	}
	// Number of (a, b) pairs with a+b == sum: 6 - |sum - 7|.
	ways := Sides - abs(sum-(MinSum+MaxSum)/2)
	return float64(ways) / float64(Sides*Sides)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
