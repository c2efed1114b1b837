//go:build !js

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mitchellh/go-homedir"

	"github.com/simukka/fxz/audio"
)

var errQuit = errors.New("quit")

// env is the state of an interactive session.
type env struct {
	params     audio.Params
	seed       uint32
	maxSamples int

	out     io.Writer
	sink    audio.Sink
	newSink func() (audio.Sink, error)
}

func newEnv(out io.Writer, seed uint32, maxSamples int) *env {
	return &env{
		params:     audio.DefaultParams(),
		seed:       seed,
		maxSamples: maxSamples,
		out:        out,
		newSink: func() (audio.Sink, error) {
			return audio.NewPlayer()
		},
	}
}

func (e *env) render() (*audio.Sound, error) {
	synth := &audio.Synth{
		Params: e.params,
		Config: audio.Config{MaxSamples: e.maxSamples, Seed: e.seed},
	}
	return synth.Generate()
}

func (e *env) eval(ctx context.Context, input string) (string, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return "", nil
	}
	name, args := fields[0], fields[1:]
	for _, cmd := range commands {
		if name != cmd.name {
			continue
		}
		if len(args) != cmd.arity {
			return "", fmt.Errorf("%s: wrong number of arguments: want %v, got %v",
				cmd.name, cmd.arity, len(args))
		}
		result, err := cmd.run(ctx, e, args)
		if err != nil {
			return result, fmt.Errorf("%s error: %w", cmd.name, err)
		}
		return result, nil
	}
	return "", fmt.Errorf("unknown command: %s", name)
}

func historyFile() string {
	path, err := homedir.Expand("~/.fxz_history")
	if err != nil {
		return ""
	}
	return path
}

func completer() *readline.PrefixCompleter {
	presets := make([]readline.PrefixCompleterInterface, 0, len(audio.SoundEffectLibrary))
	for _, name := range audio.SoundEffectNames() {
		presets = append(presets, readline.PcItem(name))
	}
	fields := make([]readline.PrefixCompleterInterface, 0)
	for _, name := range audio.FieldNames() {
		fields = append(fields, readline.PcItem(name))
	}

	items := make([]readline.PrefixCompleterInterface, 0, len(commands))
	for _, cmd := range commands {
		switch cmd.name {
		case "preset":
			items = append(items, readline.PcItem(cmd.name, presets...))
		case "set":
			items = append(items, readline.PcItem(cmd.name, fields...))
		default:
			items = append(items, readline.PcItem(cmd.name))
		}
	}
	return readline.NewPrefixCompleter(items...)
}

func repl(ctx context.Context, e *env) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "fxz> ",
		HistoryFile:     historyFile(),
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		result, err := e.eval(ctx, line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(e.out, err)
			continue
		}
		if result != "" {
			fmt.Fprintln(e.out, result)
		}
	}
}

type command struct {
	name  string
	usage string
	run   func(context.Context, *env, []string) (string, error)
	arity int
}

var commands []command

func init() {
	commands = []command{
		{"preset", "preset <name>     load a library sound", presetCommand, 1},
		{"set", "set <field> <v>   change one parameter", setCommand, 2},
		{"show", "show              print the settings string", showCommand, 0},
		{"play", "play              render and play", playCommand, 0},
		{"save", "save <path>       render to a WAV file", saveCommand, 1},
		{"reset", "reset             restore the default parameters", resetCommand, 0},
		{"list", "list              list library sounds", listCommand, 0},
		{"seed", "seed <n>          set the noise seed", seedCommand, 1},
		{"help", "help              show this text", helpCommand, 0},
		{"quit", "quit              leave", quitCommand, 0},
	}
}

func presetCommand(ctx context.Context, e *env, args []string) (string, error) {
	sfx, ok := audio.LookupSoundEffect(args[0])
	if !ok {
		return "", fmt.Errorf("unknown preset %q", args[0])
	}
	e.params = sfx.Params
	return sfx.Description, nil
}

func setCommand(ctx context.Context, e *env, args []string) (string, error) {
	v, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return "", fmt.Errorf("bad value %q", args[1])
	}
	return "", e.params.Set(args[0], v)
}

func showCommand(ctx context.Context, e *env, args []string) (string, error) {
	return e.params.SettingsString(), nil
}

func playCommand(ctx context.Context, e *env, args []string) (string, error) {
	snd, err := e.render()
	if err != nil {
		return "", err
	}
	if e.sink == nil {
		sink, err := e.newSink()
		if err != nil {
			return "", err
		}
		e.sink = sink
	}
	if err := audio.PlaySound(ctx, e.sink, snd); err != nil {
		return "", err
	}
	return fmt.Sprintf("%d samples, ended by %s", len(snd.Samples), snd.End), nil
}

func saveCommand(ctx context.Context, e *env, args []string) (string, error) {
	snd, err := e.render()
	if err != nil {
		return "", err
	}
	path, err := homedir.Expand(args[0])
	if err != nil {
		return "", err
	}
	if err := audio.WriteWAVFile(path, snd.Samples); err != nil {
		return "", err
	}
	return "wrote " + path, nil
}

func resetCommand(ctx context.Context, e *env, args []string) (string, error) {
	e.params = audio.DefaultParams()
	return "", nil
}

func listCommand(ctx context.Context, e *env, args []string) (string, error) {
	return strings.Join(audio.SoundEffectNames(), " "), nil
}

func seedCommand(ctx context.Context, e *env, args []string) (string, error) {
	n, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return "", fmt.Errorf("bad seed %q", args[0])
	}
	e.seed = uint32(n)
	return "", nil
}

func helpCommand(ctx context.Context, e *env, args []string) (string, error) {
	lines := make([]string, len(commands))
	for i, cmd := range commands {
		lines[i] = cmd.usage
	}
	lines = append(lines, "fields: "+strings.Join(audio.FieldNames(), " "))
	return strings.Join(lines, "\n"), nil
}

func quitCommand(ctx context.Context, e *env, args []string) (string, error) {
	return "", errQuit
}
