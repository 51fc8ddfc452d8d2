package rng

// splitMix64Increment is XORed with the raw seed before the second lane
// mix so that lane0 and lane1 never start from the same SplitMix64 input.
const splitMix64Increment = 0x9E3779B97F4A7C15

// RNG is a xorshift128+ generator. The zero value is not usable; construct
// with New. RNG is not safe for concurrent use — each pipeline pass owns
// its own stream exclusively.
type RNG struct {
	lane0 uint64
	lane1 uint64
}

// splitMix64 runs one SplitMix64 mixing step over state. It is used only
// to derive the two xorshift128+ lanes from a constructor seed, never as
// the generator's own step function.
func splitMix64(state uint64) uint64 {
	z := state + splitMix64Increment
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Mix combines seed and salt through SplitMix64, giving a single well
// distributed uint64. pkg/seed uses it to derive the five generation
// streams from one primary seed without constructing an *RNG for each.
func Mix(seed, salt uint64) uint64 {
	return splitMix64(seed ^ salt)
}

// New creates a xorshift128+ generator from a single seed. Lane0 is seeded
// by SplitMix64(seed); lane1 by SplitMix64(seed ^ 0x9E3779B97F4A7C15). If
// both lanes mix to zero the all-zero state is replaced by setting lane1
// to 1, since xorshift128+ can never leave the all-zero state. The first
// eight outputs are discarded as warm-up before the generator is returned.
func New(seed uint64) *RNG {
	r := &RNG{
		lane0: splitMix64(seed),
		lane1: splitMix64(seed ^ splitMix64Increment),
	}
	if r.lane0 == 0 && r.lane1 == 0 {
		r.lane1 = 1
	}
	for i := 0; i < 8; i++ {
		r.NextU64()
	}
	return r
}

// NextU64 returns the next 64-bit value in the xorshift128+ sequence.
func (r *RNG) NextU64() uint64 {
	s1 := r.lane0
	s0 := r.lane1
	r.lane0 = s0
	s1 ^= s1 << 23
	s1 ^= s1 >> 17
	s1 ^= s0
	s1 ^= s0 >> 26
	r.lane1 = s1
	return r.lane0 + r.lane1
}

// NextF64 returns a pseudo-random float64 in [0, 1), built from the top 53
// bits of NextU64.
func (r *RNG) NextF64() float64 {
	top53 := r.NextU64() >> 11
	return float64(top53) / float64((uint64(1)<<53)-1)
}

// SaveState returns the two xorshift128+ lanes for later replay via
// LoadState.
func (r *RNG) SaveState() (lane0, lane1 uint64) {
	return r.lane0, r.lane1
}

// LoadState restores a previously saved pair of lanes.
func (r *RNG) LoadState(lane0, lane1 uint64) {
	r.lane0 = lane0
	r.lane1 = lane1
}

// Intn returns a pseudo-random integer in [0, n). It panics if n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn argument must be positive")
	}
	return int(r.NextU64() % uint64(n))
}

// IntRange returns a pseudo-random integer in [min, max]. It panics if
// min > max.
func (r *RNG) IntRange(min, max int) int {
	if min > max {
		panic("rng: IntRange min must be <= max")
	}
	if min == max {
		return min
	}
	return min + r.Intn(max-min+1)
}

// Float64Range returns a pseudo-random float64 in [min, max). It panics if
// min >= max.
func (r *RNG) Float64Range(min, max float64) float64 {
	if min >= max {
		panic("rng: Float64Range min must be < max")
	}
	return min + r.NextF64()*(max-min)
}

// Bool returns a pseudo-random boolean value.
func (r *RNG) Bool() bool {
	return r.NextU64()&1 == 1
}

// Shuffle pseudo-randomizes the order of n elements using the Fisher-Yates
// algorithm. swap(i, j) must exchange the elements at those indices.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}

// WeightedChoice selects an index from weights using weighted random
// selection. Weights must be non-negative; it panics otherwise. Returns -1
// if weights is empty or every weight is zero.
func (r *RNG) WeightedChoice(weights []float64) int {
	if len(weights) == 0 {
		return -1
	}

	total := 0.0
	for _, w := range weights {
		if w < 0 {
			panic("rng: WeightedChoice weights must be non-negative")
		}
		total += w
	}
	if total == 0 {
		return -1
	}

	target := r.NextF64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if target < cumulative {
			return i
		}
	}
	return len(weights) - 1
}
