package pitch

import (
	"math"

	"github.com/cwbudde/algo-dsp/dsp/core"
	dsptime "github.com/cwbudde/algo-dsp/stats/time"
)

const (
	// SilenceRMS is the noise floor; quieter buffers carry no pitch.
	SilenceRMS = 0.01
	// MinCorrelation is the similarity the best lag must exceed.
	MinCorrelation = 0.5

	// peakTolerance is how far below the best score (as a fraction of the
	// score range) an earlier peak may sit and still be taken as the fundamental.
	peakTolerance = 0.1
)

// Estimator finds the fundamental of a buffer with a time-domain
// autocorrelation (mean absolute difference) over lags 1..N/2.
//
// It is a period detector, not a spectral one: buzzy or inharmonic timbres
// whose waveform repeats at a sub-period can report an octave too high.
//
// An Estimator reuses a scratch slice and must not be shared between goroutines.
type Estimator struct {
	scores []float64
}

func NewEstimator() *Estimator {
	return &Estimator{}
}

// Estimate returns the detected frequency or NoPitch. A malformed buffer
// yields NoPitch together with an error wrapping ErrMalformedBuffer.
func (e *Estimator) Estimate(buf Buffer) (Estimate, error) {
	if err := buf.Validate(); err != nil {
		return NoPitch, err
	}
	s := buf.Samples
	if len(s) == 0 {
		return NoPitch, nil
	}
	if dsptime.RMS(s) < SilenceRMS {
		return NoPitch, nil
	}

	half := len(s) / 2
	e.scores = core.EnsureLen(e.scores, half)
	scores := e.scores

	best, worst := math.Inf(-1), math.Inf(1)
	bestOffset := 0
	for offset := 1; offset < half; offset++ {
		var diff float64
		for i := 0; i < half; i++ {
			diff += math.Abs(s[i] - s[i+offset])
		}
		score := 1 - diff/float64(half)
		scores[offset] = score
		if score > best {
			best = score
			bestOffset = offset
		}
		if score < worst {
			worst = score
		}
	}

	if bestOffset == 0 || best <= MinCorrelation {
		return NoPitch, nil
	}
	offset := fundamentalOffset(scores, best, worst, bestOffset)
	return Frequency(buf.SampleRate / float64(offset)), nil
}

// fundamentalOffset walks past the zero-lag lobe and returns the first peak
// scoring close enough to best. Multiples of the period can land nearer an
// integer lag than the period itself; this keeps them from winning.
func fundamentalOffset(scores []float64, best, worst float64, bestOffset int) int {
	threshold := best - peakTolerance*(best-worst)

	o := 1
	for o+1 < len(scores) && scores[o+1] < scores[o] {
		o++
	}
	for ; o < len(scores); o++ {
		if scores[o] < threshold {
			continue
		}
		for o+1 < len(scores) && scores[o+1] > scores[o] {
			o++
		}
		return o
	}
	return bestOffset
}
