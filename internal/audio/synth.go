package audio

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/signal"
)

// PlaybackRate is the output sample rate of every generated sound.
const PlaybackRate = 44100

// Sound identifies a sound effect.
type Sound int

const (
	SoundSelect Sound = iota
	SoundLock
	SoundExplosion
	SoundGameOver
	SoundHighScore
)

func (s Sound) String() string {
	switch s {
	case SoundSelect:
		return "select"
	case SoundLock:
		return "lock"
	case SoundExplosion:
		return "explosion"
	case SoundGameOver:
		return "game-over"
	case SoundHighScore:
		return "high-score"
	default:
		return fmt.Sprintf("sound(%d)", int(s))
	}
}

// Synthesize renders kind as mono samples in [-1, 1].
func Synthesize(kind Sound) ([]float64, error) {
	switch kind {
	case SoundSelect:
		return genSelect(), nil
	case SoundLock:
		return genLock(), nil
	case SoundExplosion:
		return genExplosion(0x5EED)
	case SoundGameOver:
		return genGameOver(), nil
	case SoundHighScore:
		return genHighScore(), nil
	}
	return nil, fmt.Errorf("unknown sound %v", kind)
}

// Tone renders a plain sine at hz with a soft attack and release, peaking
// at 0.5. It is what the player matches during calibration.
func Tone(hz, seconds float64) ([]float64, error) {
	n := int(seconds * PlaybackRate)
	if !(hz > 0) || n <= 0 {
		return nil, fmt.Errorf("tone %v Hz for %vs", hz, seconds)
	}
	g := signal.NewGenerator(core.WithSampleRate(PlaybackRate))
	s, err := g.Sine(hz, 1, n)
	if err != nil {
		return nil, fmt.Errorf("tone: %w", err)
	}
	for i := range s {
		s[i] *= adsr(float64(i)/float64(n), 0.04, 0.1, 0.85, 0.2)
	}
	return signal.Normalize(s, 0.5)
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// softSat applies gentle saturation with no hard clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// bells layers FM bell notes starting step seconds apart, each ringing
// until the end.
func bells(freqs []float64, step, tail, ratio, depth, gain float64) []float64 {
	stepN := int(step * PlaybackRate)
	total := len(freqs)*stepN + int(tail*PlaybackRate)
	mix := make([]float64, total)
	for fi, freq := range freqs {
		start := fi * stepN
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / PlaybackRate
			env := adsr(float64(j)/float64(dur), 0.004, 0.6, 0.05, 0.3)
			s := fm(t, freq, ratio, depth*env) * env * gain
			s += math.Sin(2*math.Pi*freq*2*t) * env * gain * 0.25
			mix[start+j] += s
		}
	}
	for i, s := range mix {
		mix[i] = softSat(s)
	}
	return mix
}

// genSelect: crisp click and a brief falling tone.
func genSelect() []float64 {
	n := PlaybackRate * 65 / 1000
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / PlaybackRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0.0, 0.1)
		out[i] = softSat(fm(t, 1400-700*p, 1.0, 0.6) * env * 0.38)
	}
	return out
}

// genLock: rising fifth, played when the reference note locks.
func genLock() []float64 {
	return bells([]float64{659.25, 987.77}, 0.08, 0.22, 2.756, 5.0, 0.38) // E5 B5
}

// genHighScore: ascending bell staircase.
func genHighScore() []float64 {
	return bells([]float64{440, 554.37, 659.25, 880, 1108.73}, 0.09, 0.25, 3.5, 5.5, 0.28)
}

// genGameOver: slow descending minor chord, staggered.
func genGameOver() []float64 {
	n := int(0.75 * PlaybackRate)
	notes := []struct{ freq, onset float64 }{
		{329.63, 0.00}, // E4
		{261.63, 0.14}, // C4
		{220.00, 0.28}, // A3
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * PlaybackRate)
		for i := start; i < n; i++ {
			t := float64(i) / PlaybackRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.008, 0.25, 0.3, 0.45)
			freq := note.freq * (1 - np*0.025)
			mix[i] += fm(t, freq, 2.0, 2.0*env)*env*0.32 + math.Sin(2*math.Pi*freq*0.5*t)*env*0.1
		}
	}
	for i, s := range mix {
		mix[i] = softSat(s)
	}
	return mix
}

// genExplosion: falling sub boom, noise crack and a band-passed body.
func genExplosion(seed int64) ([]float64, error) {
	n := int(0.6 * PlaybackRate)
	g := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(PlaybackRate)},
		signal.WithSeed(seed),
	)
	noise, err := g.WhiteNoise(1, n)
	if err != nil {
		return nil, fmt.Errorf("explosion: %w", err)
	}

	out := make([]float64, n)
	lp1, lp2 := 0.0, 0.0
	phase := 0.0
	for i := range out {
		p := float64(i) / float64(n)

		freq := 120 * math.Pow(22.0/120, p*2)
		phase += 2 * math.Pi * freq / PlaybackRate
		sub := math.Sin(phase) * math.Exp(-p*5) * 0.6

		crack := 0.0
		if p < 0.03 {
			crack = noise[i] * (1 - p/0.03) * 0.75
		}

		lp1 = lp1*0.76 + noise[i]*0.24
		lp2 = lp2*0.975 + noise[i]*0.025
		body := (lp1 - lp2) * math.Exp(-p*5) * 0.4

		out[i] = softSat((sub + crack + body) * 0.86)
	}
	return out, nil
}
