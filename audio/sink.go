package audio

import "context"

// Sink accepts a finished render for playback.
type Sink interface {
	Play(ctx context.Context, samples []float64) error
}

// PlaySound hands snd to sink.
func PlaySound(ctx context.Context, sink Sink, snd *Sound) error {
	if len(snd.Samples) == 0 {
		return sink.Play(ctx, []float64{0})
	}
	return sink.Play(ctx, snd.Samples)
}
