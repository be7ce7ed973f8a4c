package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG words are derived from the one seed so every call site that shares a
// seed sees the same sequence.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive folds labels into seed to give an independent sub-stream seed, e.g. one
// per worker or per (street, seat) pair. The result depends only on its inputs.
func Derive(seed int64, labels ...uint64) int64 {
	x := mix(uint64(seed))
	for _, l := range labels {
		x = mix(x ^ mix(l+goldenRatio64))
	}
	return int64(x)
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
