package midi

import (
	"math"

	"gitlab.com/gomidi/midi/v2"

	"pitchspace/internal/pitch"
)

// DefaultBendRange is the usual synth setting of two semitones each way.
const DefaultBendRange = 2.0

// BendFrequency is the equal-tempered frequency of key shifted by a
// pitch-bend value in [-8192, 8191] scaled to semitoneRange.
func BendFrequency(key int, bend int16, semitoneRange float64) float64 {
	semis := float64(key-69) + float64(bend)/8192*semitoneRange
	return pitch.ReferenceHz * math.Pow(2, semis/12)
}

// voice tracks held keys and the bend wheel of a monophonic player. The
// most recently pressed key that is still held sounds.
type voice struct {
	held      []uint8
	bend      int16
	bendRange float64
}

func (v *voice) handle(msg midi.Message) bool {
	var ch, key, vel uint8
	var rel int16
	var abs uint16
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		v.release(key)
		v.held = append(v.held, key)
	case msg.GetNoteEnd(&ch, &key):
		v.release(key)
	case msg.GetPitchBend(&ch, &rel, &abs):
		v.bend = rel
	default:
		return false
	}
	return true
}

func (v *voice) release(key uint8) {
	for i, k := range v.held {
		if k == key {
			v.held = append(v.held[:i], v.held[i+1:]...)
			return
		}
	}
}

func (v *voice) reset() {
	v.held = v.held[:0]
	v.bend = 0
}

func (v *voice) estimate() pitch.Estimate {
	if len(v.held) == 0 {
		return pitch.NoPitch
	}
	key := v.held[len(v.held)-1]
	return pitch.Frequency(BendFrequency(int(key), v.bend, v.bendRange))
}
