package pitch

import (
	"math"
	"testing"
)

func TestToNote(t *testing.T) {
	cases := []struct {
		hz    float64
		note  string
		cents int
	}{
		{440, "A4", 0},
		{440 * math.Pow(2, 1.0/24), "A4", 50},
		{440 * math.Pow(2, -1.0/24), "A4", -50},
		{261.6256, "C4", 0},
		{246.9417, "B3", 0},
		{523.2511, "C5", 0},
		{82.4069, "E2", 0},
		{27.5, "A0", 0},
		{4186.009, "C8", 0},
		{440 * math.Pow(2, 0.1/12), "A4", 10},
		{440 * math.Pow(2, -0.23/12), "A4", -23},
		{466.1638 * math.Pow(2, 0.3/12), "A#4", 30},
	}
	for _, tc := range cases {
		got, ok := ToNote(Frequency(tc.hz))
		if !ok {
			t.Fatalf("ToNote(%v) not ok", tc.hz)
		}
		if got.Note() != tc.note || got.Cents != tc.cents {
			t.Fatalf("ToNote(%v) = %s %+d, want %s %+d", tc.hz, got.Note(), got.Cents, tc.note, tc.cents)
		}
	}
}

func TestToNoteNoPitch(t *testing.T) {
	if r, ok := ToNote(NoPitch); ok {
		t.Fatalf("ToNote(NoPitch) = %v, want none", r)
	}
}

func TestToNoteCentsRange(t *testing.T) {
	for hz := 60.0; hz < 2000; hz *= 1.0037 {
		r, ok := ToNote(Frequency(hz))
		if !ok {
			t.Fatalf("ToNote(%v) not ok", hz)
		}
		if r.Cents < -50 || r.Cents > 50 {
			t.Fatalf("ToNote(%v).Cents = %d out of range", hz, r.Cents)
		}
	}
}

func TestReadingFrequencyRoundTrip(t *testing.T) {
	for _, hz := range []float64{110, 220, 261.6256, 329.6276, 440, 880} {
		r, _ := ToNote(Frequency(hz * math.Pow(2, 0.2/12)))
		if got := r.Frequency(); math.Abs(got-hz) > 0.01 {
			t.Fatalf("%s.Frequency() = %v, want %v", r.Note(), got, hz)
		}
	}
	if (Reading{Name: "H", Octave: 4}).Frequency() != 0 {
		t.Fatalf("unknown pitch class should have no frequency")
	}
}

func TestReadingString(t *testing.T) {
	r := Reading{Name: "G#", Octave: 3, Cents: -7}
	if got := r.String(); got != "G#3 -7c" {
		t.Fatalf("String() = %q", got)
	}
}
