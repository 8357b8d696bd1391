// Command pitchspace is a side-scrolling avoidance game steered by the
// pitch you sing or play.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"pitchspace/internal/audio"
	"pitchspace/internal/desktop"
	"pitchspace/internal/game"
	"pitchspace/internal/midi"
	"pitchspace/internal/store"
)

var logger *slog.Logger

func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	logger = slog.New(h)
	slog.SetDefault(logger)
}

type config struct {
	input      string
	midiPort   string
	listMIDI   bool
	bendRange  float64
	sampleRate uint
	bufferSize int
	highscore  string
	seed       string
	mute       bool
	volume     float64
	debug      bool
}

func parseFlags(args []string) (config, error) {
	var c config
	fs := flag.NewFlagSet("pitchspace", flag.ContinueOnError)
	fs.StringVar(&c.input, "input", "mic", "pitch source: mic or midi")
	fs.StringVar(&c.midiPort, "midi-port", "", "MIDI input port name (substring); first hardware port if empty")
	fs.BoolVar(&c.listMIDI, "list-midi", false, "list MIDI input ports and exit")
	fs.Float64Var(&c.bendRange, "bend-range", midi.DefaultBendRange, "pitch-bend range in semitones")
	fs.UintVar(&c.sampleRate, "sample-rate", audio.DefaultCaptureRate, "microphone sample rate in Hz")
	fs.IntVar(&c.bufferSize, "buffer", audio.DefaultWindowSize, "analysis window in samples (power of two)")
	fs.StringVar(&c.highscore, "highscore", "", "high score file (default: user config dir)")
	fs.StringVar(&c.seed, "seed", "", "random seed (default: $PITCHSPACE_SEED or the clock)")
	fs.BoolVar(&c.mute, "mute", false, "disable sound effects")
	fs.Float64Var(&c.volume, "volume", 0.8, "sound effect volume, 0 to 1")
	fs.BoolVar(&c.debug, "debug", false, "debug logging with source locations")
	if err := fs.Parse(args); err != nil {
		return c, err
	}
	if c.input != "mic" && c.input != "midi" {
		return c, fmt.Errorf("-input must be mic or midi, got %q", c.input)
	}
	if n := c.bufferSize; n <= 0 || n&(n-1) != 0 {
		return c, fmt.Errorf("-buffer must be a power of two, got %d", n)
	}
	return c, nil
}

// resolveSeed prefers the flag, then the environment, then the clock.
func resolveSeed(flagValue string, getenv func(string) string, now func() time.Time) (uint64, error) {
	s := flagValue
	if s == "" {
		s = getenv("PITCHSPACE_SEED")
	}
	if s == "" {
		return uint64(now().UnixNano()), nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("seed %q: %w", s, err)
	}
	return v, nil
}

func newSensor(c config) game.Sensor {
	if c.input == "midi" {
		return midi.NewSource(c.midiPort, c.bendRange, logger)
	}
	return game.NewMicSensor(audio.NewCapture(uint32(c.sampleRate), c.bufferSize, logger))
}

func newStore(path string) game.HighScoreStore {
	if path == "" {
		p, err := store.DefaultPath()
		if err != nil {
			logger.Warn("no config dir, high score kept in memory", "err", err)
			return &game.MemoryStore{}
		}
		path = p
	}
	return store.NewFileStore(path)
}

func run(args []string) error {
	c, err := parseFlags(args)
	if err != nil {
		return err
	}
	initLogger(c.debug)

	if c.listMIDI {
		ports, err := midi.Ports()
		if err != nil {
			return err
		}
		for i, p := range ports {
			fmt.Printf("%d: %s\n", i, p)
		}
		return nil
	}

	seed, err := resolveSeed(c.seed, os.Getenv, time.Now)
	if err != nil {
		return err
	}

	opts := desktop.Options{
		Sensor: newSensor(c),
		Store:  newStore(c.highscore),
		Seed:   seed,
		Logger: logger,
	}
	if !c.mute {
		sfx, err := audio.NewSFX(c.volume, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
		} else {
			opts.Sounds = sfx
		}
	}

	logger.Info("starting", "input", c.input, "seed", seed)
	return desktop.Run(opts)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "pitchspace:", err)
		os.Exit(1)
	}
}
