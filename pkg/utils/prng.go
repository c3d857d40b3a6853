package utils

// SplitMix is a seeded splitmix64 generator. It is not safe for concurrent
// use and is only meant for reproducible selections (daily plans, template
// picks), never for anything security related.
type SplitMix struct {
	state uint64
}

func NewSplitMix(seed uint64) *SplitMix {
	return &SplitMix{state: seed}
}

// DateSeed derives the per-day seed from year, month and day.
func DateSeed(year, month, day int) uint64 {
	return uint64(year*10000 + month*100 + day)
}

func (r *SplitMix) Uint64() uint64 {
	r.state += 0x9e3779b97f4a7c15
	z := r.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Intn returns a value in [0, n). It panics if n <= 0.
func (r *SplitMix) Intn(n int) int {
	if n <= 0 {
		panic("utils: Intn called with n <= 0")
	}
	return int(r.Uint64() % uint64(n))
}

// IntRange returns a value in [min, max].
func (r *SplitMix) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min+1)
}

// Float64 returns a value in [0, 1).
func (r *SplitMix) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// Perm returns a permutation of [0, n) using Fisher-Yates.
func (r *SplitMix) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return p
}
