package game

import (
	"io"
	"log/slog"

	"pitchspace/internal/pitch"
)

// seqRand replays a fixed sequence of draws, cycling when exhausted.
type seqRand struct {
	v []float64
	i int
}

func (r *seqRand) Float64() float64 {
	x := r.v[r.i%len(r.v)]
	r.i++
	return x
}

type panicRand struct{}

func (panicRand) Float64() float64 { panic("rng exploded") }

// fakeSensor plays back frequencies, one per Sense call. 0 is silence.
type fakeSensor struct {
	hz        []float64
	startErr  error
	senseErr  error
	capturing bool
	senses    int
	starts    int
	stops     int
}

func (f *fakeSensor) StartCapture() error {
	f.starts++
	if f.startErr != nil {
		return f.startErr
	}
	f.capturing = true
	return nil
}

func (f *fakeSensor) StopCapture() error {
	f.stops++
	f.capturing = false
	return nil
}

func (f *fakeSensor) IsCapturing() bool { return f.capturing }
func (f *fakeSensor) Err() error        { return f.senseErr }

func (f *fakeSensor) Sense() (pitch.Estimate, error) {
	f.senses++
	if f.senseErr != nil {
		return pitch.NoPitch, f.senseErr
	}
	if len(f.hz) == 0 {
		return pitch.NoPitch, nil
	}
	hz := f.hz[0]
	f.hz = f.hz[1:]
	return pitch.Frequency(hz), nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
