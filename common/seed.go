package common

import "time"

// SeededRNG implements a Mulberry32 seeded pseudo-random number generator.
// Each synthesis call owns its own generator so renders never share state.
type SeededRNG struct {
	state       uint32
	initialSeed uint32
}

// NewSeededRNG creates a new seeded random number generator.
func NewSeededRNG(seed uint32) *SeededRNG {
	return &SeededRNG{
		state:       seed,
		initialSeed: seed,
	}
}

// Seed returns the seed the generator was created or last reset with.
func (r *SeededRNG) Seed() uint32 {
	return r.initialSeed
}

// SetSeed sets a new seed and resets the generator state.
func (r *SeededRNG) SetSeed(seed uint32) {
	r.state = seed
	r.initialSeed = seed
}

// Reset rewinds the generator to its initial seed.
func (r *SeededRNG) Reset() {
	r.state = r.initialSeed
}

// Random generates the next random number using Mulberry32 algorithm.
// Returns a float64 between 0 (inclusive) and 1 (exclusive).
func (r *SeededRNG) Random() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Signed returns a uniformly distributed value in [-1, 1).
func (r *SeededRNG) Signed() float64 {
	return r.Random()*2 - 1
}

// TimeSeed derives a seed from the wall clock for callers that want a
// different noise texture on every render.
func TimeSeed() uint32 {
	n := uint64(time.Now().UnixNano())
	seed := uint32(n) ^ uint32(n>>32)
	seed = (seed ^ (seed >> 16)) * 0x85ebca6b
	seed = (seed ^ (seed >> 13)) * 0xc2b2ae35
	return seed ^ (seed >> 16)
}
