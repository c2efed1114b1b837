package audio

import "github.com/simukka/fxz/common"

// NoiseSource supplies uniformly distributed values in [0,1) for the noise
// waveform. *common.SeededRNG satisfies it.
type NoiseSource interface {
	Random() float64
}

// Config holds per-render knobs that are not part of the sound itself.
type Config struct {
	// MaxSamples caps the output length. Renders that have not ended by then
	// fail with ErrSampleLimit. Zero or negative uses DefaultMaxSamples.
	MaxSamples int

	// Seed seeds a fresh noise generator for each render when Noise is nil.
	Seed uint32

	// Noise overrides the per-render generator. It must not be shared between
	// concurrent renders.
	Noise NoiseSource
}

// DefaultMaxSamples is roughly 24 seconds of audio, well past the longest
// envelope reachable with in-range parameters.
const DefaultMaxSamples = 1 << 20

// DefaultConfig is used by the package-level helpers.
var DefaultConfig = Config{
	MaxSamples: DefaultMaxSamples,
	Seed:       0x5EED,
}

func (c Config) maxSamples() int {
	if c.MaxSamples <= 0 {
		return DefaultMaxSamples
	}
	return c.MaxSamples
}

func (c Config) noise() NoiseSource {
	if c.Noise != nil {
		return c.Noise
	}
	return common.NewSeededRNG(c.Seed)
}
