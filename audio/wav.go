package audio

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	ywav "github.com/youpy/go-wav"
)

const (
	bitsPerSample = 16
	pcmFormat     = 1 // WAVE_FORMAT_PCM
)

// toPCM16 converts a sample to 16-bit PCM with clipping.
func toPCM16(v float64) int {
	if v >= 1 {
		return 32767
	}
	if v <= -1 {
		return -32768
	}
	return int(v * 32767)
}

// WriteWAV streams samples to w as a mono 16-bit WAV file.
func WriteWAV(w io.Writer, samples []float64) error {
	ww := ywav.NewWriter(w, uint32(len(samples)), 1, SampleRate, bitsPerSample)
	frames := make([]ywav.Sample, len(samples))
	for i, v := range samples {
		frames[i].Values[0] = toPCM16(v)
	}
	if err := ww.WriteSamples(frames); err != nil {
		return fmt.Errorf("write wav samples: %w", err)
	}
	return nil
}

// WriteWAVFile writes samples to a mono 16-bit WAV file at path.
func WriteWAVFile(path string, samples []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, SampleRate, bitsPerSample, 1, pcmFormat)
	buf := &goaudio.IntBuffer{
		Format:         monoFormat(),
		Data:           make([]int, len(samples)),
		SourceBitDepth: bitsPerSample,
	}
	for i, v := range samples {
		buf.Data[i] = toPCM16(v)
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finish %s: %w", path, err)
	}
	return f.Close()
}

// FloatBuffer wraps samples in a go-audio buffer tagged mono at SampleRate.
// The slice is shared, not copied.
func FloatBuffer(samples []float64) *goaudio.FloatBuffer {
	return &goaudio.FloatBuffer{
		Format: monoFormat(),
		Data:   samples,
	}
}

func monoFormat() *goaudio.Format {
	return &goaudio.Format{
		NumChannels: 1,
		SampleRate:  SampleRate,
	}
}

// WavDataURL encodes samples as a base64 data URL that browsers can play.
func WavDataURL(samples []float64) (string, error) {
	var buf bytes.Buffer
	if err := WriteWAV(&buf, samples); err != nil {
		return "", err
	}
	return "data:audio/wav;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// GenerateWavDataURL renders a jsfxr settings string and returns it as a data URL.
func GenerateWavDataURL(settings string) (string, error) {
	p, err := ParseSettings(settings, DefaultParams())
	if err != nil {
		return "", err
	}
	snd, err := Generate(p)
	if err != nil {
		return "", err
	}
	return WavDataURL(snd.Samples)
}

// Float32 narrows samples for float32 sinks.
func Float32(samples []float64) []float32 {
	out := make([]float32, len(samples))
	for i, v := range samples {
		out[i] = float32(v)
	}
	return out
}

// PCMFloat32LE encodes samples as interleaved little-endian float32 bytes,
// the layout native audio devices take for mono float output.
func PCMFloat32LE(samples []float64) []byte {
	b := make([]byte, len(samples)*4)
	for i, v := range samples {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(float32(v)))
	}
	return b
}
