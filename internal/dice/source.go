package dice

import "math/rand"

// Source yields uniformly distributed integers in [0, n).
// *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// RandomSource draws die faces and pair sums from a Source.
type RandomSource struct {
	src Source
}

// NewRandomSource returns a RandomSource backed by math/rand with the given seed.
func NewRandomSource(seed int64) *RandomSource {
	return &RandomSource{src: rand.New(rand.NewSource(seed))}
}

// NewRandomSourceFrom wraps an existing Source.
func NewRandomSourceFrom(src Source) *RandomSource {
	return &RandomSource{src: src}
}

// NextFace returns a face in [MinFace, MaxFace].
func (r *RandomSource) NextFace() int {
	return r.src.Intn(Sides) + MinFace
}

// NextSum returns a pair sum in [MinSum, MaxSum], each value equally likely.
func (r *RandomSource) NextSum() int {
	return r.src.Intn(NumSums) + MinSum
}
