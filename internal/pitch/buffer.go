package pitch

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformedBuffer marks a buffer the estimator refuses to analyse.
// Callers treat it as "no pitch" rather than a failure.
var ErrMalformedBuffer = errors.New("malformed audio buffer")

// Buffer is one immutable snapshot of mono samples in [-1, 1].
type Buffer struct {
	Samples    []float64
	SampleRate float64 // Hz
}

// Validate reports why b cannot be analysed, or nil.
// An empty buffer is valid; it simply carries no pitch.
func (b Buffer) Validate() error {
	n := len(b.Samples)
	if n == 0 {
		return nil
	}
	if n&(n-1) != 0 {
		return fmt.Errorf("%w: length %d is not a power of two", ErrMalformedBuffer, n)
	}
	if !(b.SampleRate > 0) || math.IsInf(b.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate %v", ErrMalformedBuffer, b.SampleRate)
	}
	for i, v := range b.Samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: sample %d is %v", ErrMalformedBuffer, i, v)
		}
	}
	return nil
}

// Estimate is either NoPitch (Hz == 0) or a detected fundamental frequency.
type Estimate struct {
	Hz float64
}

// NoPitch is the zero Estimate.
var NoPitch = Estimate{}

// Frequency wraps a detected fundamental.
func Frequency(hz float64) Estimate {
	if !(hz > 0) || math.IsInf(hz, 0) {
		return NoPitch
	}
	return Estimate{Hz: hz}
}

// Valid reports whether a pitch was detected.
func (e Estimate) Valid() bool { return e.Hz > 0 }

func (e Estimate) String() string {
	if !e.Valid() {
		return "no pitch"
	}
	return fmt.Sprintf("%.2f Hz", e.Hz)
}
