package audio

import "testing"

func ramp(from, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = float64(from + i)
	}
	return s
}

func TestWindowNilUntilFull(t *testing.T) {
	w := newWindow(8)
	w.reset(48000)
	w.write(ramp(0, 5))
	if b := w.snapshot(); b != nil {
		t.Fatalf("snapshot() = %v before the window filled", b.Samples)
	}
	w.write(ramp(5, 3))
	b := w.snapshot()
	if b == nil {
		t.Fatalf("snapshot() = nil after 8 samples")
	}
	if b.SampleRate != 48000 {
		t.Fatalf("SampleRate = %v, want 48000", b.SampleRate)
	}
	for i, v := range b.Samples {
		if v != float64(i) {
			t.Fatalf("Samples[%d] = %v, want %d", i, v, i)
		}
	}
}

func TestWindowKeepsNewest(t *testing.T) {
	w := newWindow(4)
	w.reset(44100)
	w.write(ramp(0, 3))
	w.write(ramp(3, 3))
	b := w.snapshot()
	want := []float64{2, 3, 4, 5}
	for i, v := range b.Samples {
		if v != want[i] {
			t.Fatalf("Samples = %v, want %v", b.Samples, want)
		}
	}

	// A single oversized write keeps only its tail.
	w.write(ramp(100, 10))
	b = w.snapshot()
	want = []float64{106, 107, 108, 109}
	for i, v := range b.Samples {
		if v != want[i] {
			t.Fatalf("Samples = %v, want %v", b.Samples, want)
		}
	}
}

func TestWindowRepeatsWithoutFreshSamples(t *testing.T) {
	w := newWindow(4)
	w.reset(44100)
	w.write(ramp(0, 4))
	first := w.snapshot()
	if again := w.snapshot(); again != first {
		t.Fatalf("snapshot() without new samples returned a different buffer")
	}

	// Snapshots are immutable once handed out.
	w.write(ramp(10, 2))
	second := w.snapshot()
	if second == first {
		t.Fatalf("snapshot() after new samples returned the previous buffer")
	}
	if first.Samples[0] != 0 || first.Samples[3] != 3 {
		t.Fatalf("earlier snapshot was modified: %v", first.Samples)
	}

	w.reset(22050)
	if w.snapshot() != nil {
		t.Fatalf("snapshot() after reset should be nil")
	}
}
