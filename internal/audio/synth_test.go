package audio

import (
	"encoding/binary"
	"math"
	"testing"

	"pitchspace/internal/pitch"
)

func TestSynthesizeAll(t *testing.T) {
	for _, kind := range []Sound{SoundSelect, SoundLock, SoundExplosion, SoundGameOver, SoundHighScore} {
		t.Run(kind.String(), func(t *testing.T) {
			s, err := Synthesize(kind)
			if err != nil {
				t.Fatalf("Synthesize(%v) error = %v", kind, err)
			}
			if len(s) == 0 {
				t.Fatalf("Synthesize(%v) is empty", kind)
			}
			for i, v := range s {
				if math.IsNaN(v) || v < -1 || v > 1 {
					t.Fatalf("sample %d = %v out of range", i, v)
				}
			}
		})
	}
	if _, err := Synthesize(Sound(99)); err == nil {
		t.Fatalf("Synthesize(99) error = nil")
	}
}

func TestExplosionIsSeeded(t *testing.T) {
	a, err := genExplosion(7)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := genExplosion(7)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs between runs with the same seed", i)
		}
	}
}

func TestToneMatchesPitch(t *testing.T) {
	for _, hz := range []float64{220, 440, 523.25} {
		s, err := Tone(hz, 0.5)
		if err != nil {
			t.Fatalf("Tone(%v) error = %v", hz, err)
		}
		peak := 0.0
		for _, v := range s {
			peak = math.Max(peak, math.Abs(v))
		}
		if math.Abs(peak-0.5) > 1e-9 {
			t.Fatalf("Tone(%v) peak = %v, want 0.5", hz, peak)
		}

		mid := len(s)/2 - 1024
		est, err := pitch.NewEstimator().Estimate(pitch.Buffer{Samples: s[mid : mid+2048], SampleRate: PlaybackRate})
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(est.Hz-hz)/hz > 0.02 {
			t.Fatalf("Tone(%v) estimated at %v", hz, est)
		}
	}
	if _, err := Tone(0, 1); err == nil {
		t.Fatalf("Tone(0, 1) error = nil")
	}
	if _, err := Tone(440, 0); err == nil {
		t.Fatalf("Tone(440, 0) error = nil")
	}
}

func TestSampleCodecs(t *testing.T) {
	b := encodeStereo([]float64{0.5, -0.25})
	if len(b) != 16 {
		t.Fatalf("len = %d, want 16", len(b))
	}
	want := []float32{0.5, 0.5, -0.25, -0.25}
	for i, w := range want {
		if got := math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:])); got != w {
			t.Fatalf("channel sample %d = %v, want %v", i, got, w)
		}
	}

	in := make([]byte, 12)
	for i, v := range []float32{0.125, -1, 0.75} {
		binary.LittleEndian.PutUint32(in[i*4:], math.Float32bits(v))
	}
	got := decodeF32(nil, in)
	if len(got) != 3 || got[0] != 0.125 || got[1] != -1 || got[2] != 0.75 {
		t.Fatalf("decodeF32 = %v", got)
	}
	// Reuses capacity.
	again := decodeF32(got, in[:8])
	if len(again) != 2 || &again[0] != &got[0] {
		t.Fatalf("decodeF32 did not reuse the destination")
	}
}

func TestNilSFXIsSilent(t *testing.T) {
	var s *SFX
	s.Play(SoundLock)
	s.PlayTone(440, 1)
}
