//go:build js
// +build js

package main

import (
	"github.com/gopherjs/gopherjs/js"
	"github.com/simukka/fxz/audio"
)

func main() {
	var sink *audio.WebAudioSink

	// The AudioContext is created on first use so that browsers which
	// require a user gesture can start it from a click handler.
	getSink := func() *audio.WebAudioSink {
		if sink == nil {
			s, err := audio.NewWebAudioSink(0.5)
			if err != nil {
				panic(err)
			}
			sink = s
		}
		return sink
	}

	// Expose the synthesizer to JavaScript
	js.Global.Set("FXZ", map[string]interface{}{
		"play": func(settings string) {
			if err := getSink().PlaySettings(resolve(settings)); err != nil {
				js.Global.Get("console").Call("error", err.Error())
			}
		},
		"render": func(settings string) interface{} {
			samples, err := audio.GenerateFloat32(resolve(settings))
			if err != nil {
				js.Global.Get("console").Call("error", err.Error())
				return nil
			}
			return samples
		},
		"dataURL": func(settings string) string {
			url, err := audio.GenerateWavDataURL(resolve(settings))
			if err != nil {
				js.Global.Get("console").Call("error", err.Error())
				return ""
			}
			return url
		},
		"presets": func() []string {
			return audio.SoundEffectNames()
		},
		"setVolume": func(volume float64) {
			getSink().SetVolume(volume)
		},
	})

	select {}
}

// resolve lets callers pass a library name in place of a settings string.
func resolve(settings string) string {
	if sfx, ok := audio.LookupSoundEffect(settings); ok {
		return sfx.Settings
	}
	return settings
}
