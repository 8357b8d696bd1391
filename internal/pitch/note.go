package pitch

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/core"
)

// ReferenceHz is A4, the anchor of the equal-tempered scale.
const ReferenceHz = 440.0

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Reading is a frequency expressed as the nearest note plus a signed
// deviation from it in cents.
type Reading struct {
	Name   string // pitch class, e.g. "A#"
	Octave int    // scientific pitch notation, A4 = 440 Hz
	Cents  int    // [-50, 50]
	Hz     float64
}

// ToNote maps an estimate to its nearest note. NoPitch maps to ok == false.
//
// Exact quarter-tone ties resolve toward A4, so 440*2^(1/24) reads as
// A4 +50 and 440*2^(-1/24) as A4 -50.
func ToNote(e Estimate) (Reading, bool) {
	if !e.Valid() {
		return Reading{}, false
	}
	semis := 12 * math.Log2(e.Hz/ReferenceHz)
	// Snap away float noise so exact ties stay ties.
	semis = math.Round(semis*1e9) / 1e9
	nearest := roundHalfTowardZero(semis)
	cents := core.Clamp(math.Round((semis-nearest)*100), -50, 50)

	n := int(nearest) + 9 // A is 9 semitones above C
	return Reading{
		Name:   noteNames[mod(n, 12)],
		Octave: 4 + floorDiv(n, 12),
		Cents:  int(cents),
		Hz:     e.Hz,
	}, true
}

// Note returns the note name with octave, e.g. "A4".
func (r Reading) Note() string {
	return fmt.Sprintf("%s%d", r.Name, r.Octave)
}

// Frequency returns the exact equal-tempered frequency of the note,
// ignoring the cents deviation.
func (r Reading) Frequency() float64 {
	idx := -1
	for i, n := range noteNames {
		if n == r.Name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0
	}
	semis := (r.Octave-4)*12 + idx - 9
	return ReferenceHz * math.Pow(2, float64(semis)/12)
}

func (r Reading) String() string {
	return fmt.Sprintf("%s %+dc", r.Note(), r.Cents)
}

func roundHalfTowardZero(x float64) float64 {
	t := math.Trunc(x)
	if math.Abs(x-t) == 0.5 {
		return t
	}
	return math.Round(x)
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func floorDiv(a, b int) int {
	q := a / b
	if r := a % b; r != 0 && (r < 0) != (b < 0) {
		q--
	}
	return q
}
