//go:build headless && !js

package audio

import "context"

// Player discards audio in headless builds.
type Player struct{}

var _ Sink = (*Player)(nil)

func NewPlayer() (*Player, error) {
	return &Player{}, nil
}

func (op *Player) Play(ctx context.Context, samples []float64) error {
	return ctx.Err()
}
