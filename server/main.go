//go:build !js
// +build !js

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/simukka/fxz/audio"
)

func main() {
	defaultAddr := os.Getenv("FXZ_ADDR")
	if defaultAddr == "" {
		defaultAddr = ":8080"
	}

	addr := flag.String("addr", defaultAddr, "HTTP listen address (env FXZ_ADDR)")
	maxSamples := flag.Int("max-samples", audio.DefaultMaxSamples, "Longest render allowed, in samples")
	flag.Parse()

	srv := &http.Server{
		Addr:              *addr,
		Handler:           newHandler(*maxSamples),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Printf("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown: %v", err)
		}
	}()

	log.Printf("fxz render server starting on %s", *addr)
	log.Printf("Render endpoint: /render?settings=...&seed=N&format=wav|json")
	log.Printf("Presets endpoint: /presets")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
