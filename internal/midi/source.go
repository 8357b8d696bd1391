package midi

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"pitchspace/internal/game"
	"pitchspace/internal/pitch"
)

// Virtual and system ports that are never picked automatically.
var excludedPorts = []string{"Midi Through", "Through Port", "Dummy"}

var ErrNoInput = errors.New("no MIDI input found")

// Source steers the ship from a MIDI instrument: the held key picks the
// note and the bend wheel moves it off pitch. It implements game.Sensor.
//
// Messages arrive on the driver's listener goroutine; Sense copies the
// current state under a mutex, so the session still has a single writer.
type Source struct {
	port string // substring match; empty picks the first usable port
	log  *slog.Logger

	drv  *rtmididrv.Driver
	in   drivers.In
	stop func()

	mu    sync.Mutex
	voice voice
	err   error
}

func NewSource(port string, bendRange float64, logger *slog.Logger) *Source {
	if bendRange <= 0 {
		bendRange = DefaultBendRange
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		port:  port,
		log:   logger,
		voice: voice{bendRange: bendRange},
	}
}

// Ports lists the input port names the driver can see.
func Ports() ([]string, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}
	defer drv.Close()
	ins, err := drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("list inputs: %w", err)
	}
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names, nil
}

// StartCapture opens the port and starts listening. Everything acquired is
// released again if any step fails.
func (s *Source) StartCapture() (err error) {
	if s.in != nil {
		return nil
	}
	drv, err := rtmididrv.New()
	if err != nil {
		return fmt.Errorf("rtmididrv: %w", err)
	}
	defer func() {
		if err != nil {
			drv.Close()
		}
	}()

	ins, err := drv.Ins()
	if err != nil {
		return fmt.Errorf("list inputs: %w", err)
	}
	names := make([]string, len(ins))
	for i, in := range ins {
		names[i] = in.String()
	}
	idx := pickPort(names, s.port)
	if idx < 0 {
		if s.port != "" {
			return fmt.Errorf("%w matching %q", ErrNoInput, s.port)
		}
		return ErrNoInput
	}
	in := ins[idx]
	if err = in.Open(); err != nil {
		return fmt.Errorf("open %q: %w", names[idx], err)
	}

	s.mu.Lock()
	s.voice.reset()
	s.err = nil
	s.mu.Unlock()

	stop, err := midi.ListenTo(in, func(msg midi.Message, _ int32) {
		s.mu.Lock()
		handled := s.voice.handle(msg)
		s.mu.Unlock()
		if !handled {
			s.log.Debug("midi: unhandled message", "msg", msg.String())
		}
	}, midi.HandleError(func(listenErr error) {
		s.log.Warn("midi: listener error", "device", names[idx], "err", listenErr)
		s.mu.Lock()
		s.err = listenErr
		s.mu.Unlock()
	}))
	if err != nil {
		_ = in.Close()
		return fmt.Errorf("listen %q: %w", names[idx], err)
	}

	s.drv, s.in, s.stop = drv, in, stop
	s.log.Info("midi: connected", "device", names[idx])
	return nil
}

func (s *Source) StopCapture() error {
	if s.in == nil {
		return nil
	}
	s.stop()
	err := s.in.Close()
	s.drv.Close()
	s.drv, s.in, s.stop = nil, nil, nil
	if err != nil {
		return fmt.Errorf("close midi input: %w", err)
	}
	return nil
}

func (s *Source) IsCapturing() bool { return s.in != nil }

func (s *Source) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Source) Sense() (pitch.Estimate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return pitch.NoPitch, fmt.Errorf("%w: midi: %w", game.ErrAudioUnavailable, s.err)
	}
	return s.voice.estimate(), nil
}

// pickPort returns the index of the port to open, or -1. A non-empty want
// is matched case-insensitively as a substring; otherwise the first port
// that is not a virtual pass-through wins.
func pickPort(names []string, want string) int {
	for i, name := range names {
		if want != "" {
			if containsCI(name, want) {
				return i
			}
			continue
		}
		excluded := false
		for _, pat := range excludedPorts {
			if containsCI(name, pat) {
				excluded = true
				break
			}
		}
		if !excluded {
			return i
		}
	}
	return -1
}

func containsCI(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
