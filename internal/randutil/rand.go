// Package randutil centralises deterministic RNG construction and seed
// splitting so that every shuffle runs on an independent, reproducible
// stream.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided
// int64. The mixer derives the two 64-bit words required by rand/v2 so
// all call sites get reproducible sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Split derives two independent seeds from one. Consumers use the left
// branch immediately (e.g. for a shuffle) and carry the right branch as
// the next state, so no two decisions ever reuse a generator state.
func Split(seed int64) (int64, int64) {
	u := uint64(seed)
	left := mix(u + goldenRatio64)
	right := mix(u + goldenRatio64 + goldenRatio64)
	return int64(left), int64(right)
}

// mix is the splitmix64 finalizer.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
