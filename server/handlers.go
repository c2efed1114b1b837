//go:build !js
// +build !js

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/simukka/fxz/audio"
)

// samplesHeader carries the render length back to clients and the log.
const samplesHeader = "X-Fxz-Samples"

// renderService turns parameter sets into audio over HTTP.
type renderService struct {
	maxSamples int
}

// newHandler builds the routing table for the render service.
func newHandler(maxSamples int) http.Handler {
	s := &renderService{maxSamples: maxSamples}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /render", s.handleRenderSettings)
	mux.HandleFunc("POST /render", s.handleRenderBlob)
	mux.HandleFunc("GET /presets", handlePresets)
	mux.HandleFunc("GET /presets/{name}", s.handlePresetWAV)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})
	return withLogging(mux)
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging logs every request and allows cross-origin use from pages
// that play the rendered sounds.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		samples := rec.Header().Get(samplesHeader)
		if samples == "" {
			samples = "-"
		}
		log.Printf("%s %s %d samples=%s %s", r.Method, r.URL.RequestURI(), rec.status, samples, time.Since(start).Round(time.Microsecond))
	})
}

// handleRenderSettings renders a jsfxr settings string from the query.
func (s *renderService) handleRenderSettings(w http.ResponseWriter, r *http.Request) {
	settings := r.URL.Query().Get("settings")
	if settings == "" {
		http.Error(w, "settings query parameter required", http.StatusBadRequest)
		return
	}
	p, err := audio.ParseSettings(settings, audio.DefaultParams())
	if err != nil {
		writeError(w, err)
		return
	}
	s.render(w, r, p)
}

// handleRenderBlob renders a binary parameter blob sent as the request body.
func (s *renderService) handleRenderBlob(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, audio.BlobSize))
	if err != nil {
		http.Error(w, "blob too large", http.StatusRequestEntityTooLarge)
		return
	}
	p, err := audio.BinaryCodec{}.Decode(body, audio.DefaultParams())
	if err != nil {
		writeError(w, err)
		return
	}
	s.render(w, r, p)
}

// handlePresetWAV renders a library effect, e.g. /presets/coin.wav.
func (s *renderService) handlePresetWAV(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(r.PathValue("name"), ".wav")
	sfx, ok := audio.LookupSoundEffect(name)
	if !ok {
		http.Error(w, "unknown preset "+strconv.Quote(name), http.StatusNotFound)
		return
	}
	s.render(w, r, sfx.Params)
}

// handlePresets lists the built-in library.
func handlePresets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"presets": audio.SoundEffectLibrary,
	})
}

// render synthesizes p and writes it in the format named by the query.
func (s *renderService) render(w http.ResponseWriter, r *http.Request, p audio.Params) {
	q := r.URL.Query()

	cfg := audio.Config{MaxSamples: s.maxSamples, Seed: audio.DefaultConfig.Seed}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			http.Error(w, "seed must be an unsigned 32-bit integer", http.StatusBadRequest)
			return
		}
		cfg.Seed = uint32(seed)
	}

	format := q.Get("format")
	if format != "" && format != "wav" && format != "json" {
		http.Error(w, "format must be wav or json", http.StatusBadRequest)
		return
	}

	snd, err := (&audio.Synth{Params: p, Config: cfg}).Generate()
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set(samplesHeader, strconv.Itoa(len(snd.Samples)))

	if format == "json" {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"sampleRate": audio.SampleRate,
			"end":        snd.End.String(),
			"samples":    snd.Samples,
		})
		return
	}

	var buf bytes.Buffer
	if err := audio.WriteWAV(&buf, snd.Samples); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

// writeError maps synthesis errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, audio.ErrBadSettings),
		errors.Is(err, audio.ErrBadBlob),
		errors.Is(err, audio.ErrInvalidWaveType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, audio.ErrSampleLimit):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		log.Printf("Render failed: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
