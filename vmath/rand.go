package vmath

// FastRand is a seedable xorshift64 generator.
// Deterministic: the same seed yields the same roll sequence, which is
// what makes recorded matches replayable in tests.
// Not safe for concurrent use; each consumer owns its own instance.
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0, 1)
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// Chance rolls a probability in [0, 1]; p <= 0 never hits, p >= 1 always hits
func (r *FastRand) Chance(p float64) bool {
	return r.Float64() < p
}
