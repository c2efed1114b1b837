//go:build js

package audio

import (
	"context"
	"errors"

	"github.com/gopherjs/gopherjs/js"
)

// ErrNoWebAudio is returned when the page has no AudioContext.
var ErrNoWebAudio = errors.New("web audio unavailable")

// WebAudioSink plays renders through the browser's Web Audio API.
type WebAudioSink struct {
	ctx        *js.Object
	masterGain *js.Object
	buffers    map[string]*js.Object // AudioBuffers keyed by settings string
}

var _ Sink = (*WebAudioSink)(nil)

// NewWebAudioSink creates an AudioContext routed through a master gain node.
func NewWebAudioSink(volume float64) (*WebAudioSink, error) {
	audioCtx := js.Global.Get("AudioContext")
	if audioCtx == nil || audioCtx == js.Undefined {
		audioCtx = js.Global.Get("webkitAudioContext")
	}
	if audioCtx == nil || audioCtx == js.Undefined {
		return nil, ErrNoWebAudio
	}

	am := &WebAudioSink{
		ctx:     audioCtx.New(),
		buffers: make(map[string]*js.Object),
	}
	am.masterGain = am.ctx.Call("createGain")
	am.masterGain.Call("connect", am.ctx.Get("destination"))
	am.SetVolume(volume)
	return am, nil
}

// SetVolume sets the master gain.
func (am *WebAudioSink) SetVolume(volume float64) {
	am.masterGain.Get("gain").Set("value", volume)
}

// Buffer wraps samples in a mono AudioBuffer at SampleRate. AudioBuffers
// cannot be empty, so an empty render becomes one silent frame.
func (am *WebAudioSink) Buffer(samples []float64) *js.Object {
	if len(samples) == 0 {
		return am.ctx.Call("createBuffer", 1, 1, SampleRate)
	}
	buffer := am.ctx.Call("createBuffer", 1, len(samples), SampleRate)
	buffer.Call("getChannelData", 0).Call("set", Float32(samples))
	return buffer
}

// Play implements Sink. Playback is scheduled and Play returns at once.
func (am *WebAudioSink) Play(ctx context.Context, samples []float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	am.PlayBuffer(am.Buffer(samples))
	return nil
}

// PlaySettings renders a jsfxr settings string, caching the AudioBuffer.
func (am *WebAudioSink) PlaySettings(settings string) error {
	buffer, ok := am.buffers[settings]
	if !ok {
		p, err := ParseSettings(settings, DefaultParams())
		if err != nil {
			return err
		}
		snd, err := Generate(p)
		if err != nil {
			return err
		}
		buffer = am.Buffer(snd.Samples)
		am.buffers[settings] = buffer
	}
	am.PlayBuffer(buffer)
	return nil
}

// PlayBuffer starts an AudioBuffer through the master gain.
func (am *WebAudioSink) PlayBuffer(buffer *js.Object) {
	// Resume context if suspended
	if am.ctx.Get("state").String() == "suspended" {
		am.ctx.Call("resume")
	}

	source := am.ctx.Call("createBufferSource")
	source.Set("buffer", buffer)
	source.Call("connect", am.masterGain)
	source.Call("start", 0)
}
