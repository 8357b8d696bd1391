package pitch

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/signal"
)

const testBufferLen = 2048

func sine(t *testing.T, freq, sampleRate, amplitude float64) Buffer {
	t.Helper()
	g := signal.NewGenerator(core.WithSampleRate(sampleRate))
	s, err := g.Sine(freq, amplitude, testBufferLen)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	return Buffer{Samples: s, SampleRate: sampleRate}
}

func TestEstimateSineWithinTolerance(t *testing.T) {
	freqs := []float64{80, 82.41, 110, 146.83, 196, 261.63, 329.63, 440, 523.25, 659.26, 880, 987.77, 1000}
	rates := []float64{44100, 48000}

	est := NewEstimator()
	for _, sr := range rates {
		for _, f := range freqs {
			got, err := est.Estimate(sine(t, f, sr, 0.5))
			if err != nil {
				t.Fatalf("Estimate(%v Hz @ %v) error = %v", f, sr, err)
			}
			if !got.Valid() {
				t.Fatalf("Estimate(%v Hz @ %v) = no pitch", f, sr)
			}
			if rel := math.Abs(got.Hz-f) / f; rel > 0.02 {
				t.Fatalf("Estimate(%v Hz @ %v) = %.2f Hz, off by %.2f%%", f, sr, got.Hz, rel*100)
			}
		}
	}
}

func TestEstimateQuietSine(t *testing.T) {
	// RMS of a 0.02 amplitude sine is ~0.014, just above the floor.
	got, err := NewEstimator().Estimate(sine(t, 220, 44100, 0.02))
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	if math.Abs(got.Hz-220)/220 > 0.02 {
		t.Fatalf("Estimate() = %v, want ~220 Hz", got)
	}
}

func TestEstimateSilence(t *testing.T) {
	got, err := NewEstimator().Estimate(Buffer{Samples: make([]float64, testBufferLen), SampleRate: 44100})
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	if got.Valid() {
		t.Fatalf("Estimate(silence) = %v, want no pitch", got)
	}
}

func TestEstimateBelowNoiseFloor(t *testing.T) {
	got, _ := NewEstimator().Estimate(sine(t, 440, 44100, 0.01))
	if got.Valid() {
		t.Fatalf("Estimate(rms < %v) = %v, want no pitch", SilenceRMS, got)
	}
}

func TestEstimateEmpty(t *testing.T) {
	got, err := NewEstimator().Estimate(Buffer{})
	if err != nil || got.Valid() {
		t.Fatalf("Estimate(empty) = %v, %v; want no pitch, nil", got, err)
	}
}

func TestEstimateMalformed(t *testing.T) {
	nan := sine(t, 440, 44100, 0.5)
	nan.Samples[10] = math.NaN()

	cases := []struct {
		name string
		buf  Buffer
	}{
		{"nan sample", nan},
		{"odd length", Buffer{Samples: make([]float64, 1000), SampleRate: 44100}},
		{"zero rate", Buffer{Samples: make([]float64, 1024)}},
		{"inf sample", Buffer{Samples: []float64{0, math.Inf(1), 0, 0}, SampleRate: 8000}},
	}
	est := NewEstimator()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := est.Estimate(tc.buf)
			if !errors.Is(err, ErrMalformedBuffer) {
				t.Fatalf("Estimate() error = %v, want ErrMalformedBuffer", err)
			}
			if got.Valid() {
				t.Fatalf("Estimate() = %v, want no pitch", got)
			}
		})
	}
}

func TestEstimatorReusesScratch(t *testing.T) {
	est := NewEstimator()
	a, _ := est.Estimate(sine(t, 330, 48000, 0.5))
	b, _ := est.Estimate(sine(t, 330, 48000, 0.5))
	if a != b {
		t.Fatalf("repeated Estimate() = %v then %v", a, b)
	}
}

func TestFundamentalOffsetPrefersFirstPeak(t *testing.T) {
	// Zero-lag lobe falls to 3, a peak at 5 close to the best, the best at 10.
	scores := []float64{0, 0.9, 0.5, 0.1, 0.6, 0.97, 0.6, 0.1, 0.5, 0.9, 0.99, 0.8}
	if got := fundamentalOffset(scores, 0.99, 0.1, 10); got != 5 {
		t.Fatalf("fundamentalOffset() = %d, want 5", got)
	}
	// A lower first peak is skipped.
	scores[5] = 0.7
	if got := fundamentalOffset(scores, 0.99, 0.1, 10); got != 10 {
		t.Fatalf("fundamentalOffset() = %d, want 10", got)
	}
}

func TestFrequencyRejectsNonPositive(t *testing.T) {
	for _, hz := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if Frequency(hz).Valid() {
			t.Fatalf("Frequency(%v) is valid", hz)
		}
	}
}
