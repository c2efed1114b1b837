//go:build !js

// Command fxz renders sound effects to WAV files or the speakers.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/mitchellh/go-homedir"
	"golang.org/x/term"

	"github.com/simukka/fxz/audio"
	"github.com/simukka/fxz/common"
)

type options struct {
	preset     string
	settings   string
	blob       string
	out        string
	seed       int64
	maxSamples int
	play       bool
	list       bool
	repl       bool
}

// stdoutIsTerminal is swapped out in tests.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("fxz: ")

	var o options
	flag.StringVar(&o.preset, "preset", "", "Render a library sound by name")
	flag.StringVar(&o.settings, "settings", "", "Render a jsfxr settings string")
	flag.StringVar(&o.blob, "blob", "", "Render a binary parameter blob file")
	flag.StringVar(&o.out, "o", "", "Write a WAV file (- for stdout)")
	flag.Int64Var(&o.seed, "seed", int64(audio.DefaultConfig.Seed), "Noise seed, -1 for a random seed")
	flag.IntVar(&o.maxSamples, "max-samples", audio.DefaultMaxSamples, "Longest render allowed, in samples")
	flag.BoolVar(&o.play, "play", false, "Play the sound on the default output device")
	flag.BoolVar(&o.list, "list", false, "List the library sounds")
	flag.BoolVar(&o.repl, "repl", false, "Start an interactive session")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, o options, stdout io.Writer) error {
	seed := uint32(o.seed)
	if o.seed < 0 {
		seed = common.TimeSeed()
	}

	switch {
	case o.list:
		return listPresets(stdout)
	case o.repl:
		e := newEnv(stdout, seed, o.maxSamples)
		return repl(ctx, e)
	}

	p, name, err := loadParams(o)
	if err != nil {
		return err
	}
	if o.out == "" && !o.play {
		return errors.New("nothing to do: pass -o or -play")
	}

	snd, err := (&audio.Synth{Params: p, Config: audio.Config{MaxSamples: o.maxSamples, Seed: seed}}).Generate()
	if err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	log.Printf("%s: %d samples (%s), ended by %s", name, len(snd.Samples), snd.Duration(), snd.End)

	if o.out != "" {
		if err := writeOutput(o.out, snd.Samples, stdout); err != nil {
			return err
		}
	}
	if o.play {
		player, err := audio.NewPlayer()
		if err != nil {
			return fmt.Errorf("open output device: %w", err)
		}
		if err := audio.PlaySound(ctx, player, snd); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	return nil
}

// loadParams picks the single parameter source named on the command line.
func loadParams(o options) (audio.Params, string, error) {
	sources := 0
	for _, s := range []string{o.preset, o.settings, o.blob} {
		if s != "" {
			sources++
		}
	}
	if sources != 1 {
		return audio.Params{}, "", errors.New("pass exactly one of -preset, -settings or -blob")
	}

	switch {
	case o.preset != "":
		sfx, ok := audio.LookupSoundEffect(o.preset)
		if !ok {
			return audio.Params{}, "", fmt.Errorf("unknown preset %q (see -list)", o.preset)
		}
		return sfx.Params, sfx.Name, nil
	case o.settings != "":
		p, err := audio.ParseSettings(o.settings, audio.DefaultParams())
		return p, "settings", err
	default:
		path, err := homedir.Expand(o.blob)
		if err != nil {
			return audio.Params{}, "", err
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return audio.Params{}, "", err
		}
		p, err := audio.BinaryCodec{}.Decode(b, audio.DefaultParams())
		if err != nil {
			return audio.Params{}, "", fmt.Errorf("%s: %w", path, err)
		}
		return p, path, nil
	}
}

// writeOutput writes a WAV file, or streams it when out is "-".
func writeOutput(out string, samples []float64, stdout io.Writer) error {
	if out == "-" {
		if stdoutIsTerminal() {
			return errors.New("refusing to write WAV data to a terminal")
		}
		return audio.WriteWAV(stdout, samples)
	}
	path, err := homedir.Expand(out)
	if err != nil {
		return err
	}
	if err := audio.WriteWAVFile(path, samples); err != nil {
		return err
	}
	log.Printf("Wrote %s", path)
	return nil
}

func listPresets(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, sfx := range audio.SoundEffectLibrary {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", sfx.Name, sfx.Category, sfx.Description)
	}
	return tw.Flush()
}
