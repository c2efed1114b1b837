//go:build !js && !headless

// player_oto.go - native playback through oto v3

package audio

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// oto supports a single context per process.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
)

func otoContext() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: 1,
			Format:       oto.FormatFloat32LE,
		}
		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			otoErr = err
			return
		}
		<-ready
		otoCtx = ctx
	})
	return otoCtx, otoErr
}

// Player plays renders on the default output device.
type Player struct {
	ctx   *oto.Context
	mutex sync.Mutex // one sound at a time
}

var _ Sink = (*Player)(nil)

// NewPlayer opens the output device.
func NewPlayer() (*Player, error) {
	ctx, err := otoContext()
	if err != nil {
		return nil, err
	}
	return &Player{ctx: ctx}, nil
}

// Play blocks until samples have finished playing or ctx is done.
func (op *Player) Play(ctx context.Context, samples []float64) error {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	player := op.ctx.NewPlayer(bytes.NewReader(PCMFloat32LE(samples)))
	defer player.Close()
	player.Play()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return player.Err()
}
