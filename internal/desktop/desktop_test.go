package desktop

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"pitchspace/internal/audio"
	"pitchspace/internal/game"
	"pitchspace/internal/pitch"
)

type recorder struct {
	played []audio.Sound
	tones  []float64
}

func (r *recorder) Play(kind audio.Sound)        { r.played = append(r.played, kind) }
func (r *recorder) PlayTone(hz, seconds float64) { r.tones = append(r.tones, hz) }

func (r *recorder) last() audio.Sound {
	if len(r.played) == 0 {
		return -1
	}
	return r.played[len(r.played)-1]
}

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newTestSession(t *testing.T, high int) (*game.Session, *recorder, *game.MemoryStore) {
	t.Helper()
	store := &game.MemoryStore{Score: high}
	s := game.NewSession(nil, store, game.NewRand(1), quiet())
	rec := &recorder{}
	wireSounds(s.Events, rec)
	return s, rec, store
}

// crash parks a stationary obstacle on the ship and steps once.
func crash(t *testing.T, s *game.Session) {
	t.Helper()
	a := s.Avatar.Bounds()
	s.Field.Add(game.Obstacle{X: a.X0 + 10, Y: a.Y0 - 5, W: game.ObstacleWidth, H: game.ObstacleHeight})
	if err := s.Step(0.5, nil); err != nil {
		t.Fatalf("Step() = %v", err)
	}
	if s.State != game.StateGameOver {
		t.Fatalf("state after crash = %v, want game-over", s.State)
	}
}

func TestFitViewLetterbox(t *testing.T) {
	cases := []struct {
		w, h       int
		scale      float64
		offX, offY float64
	}{
		{800, 500, 1, 0, 0},
		{1600, 1000, 2, 0, 0},
		{1000, 500, 1, 100, 0},
		{800, 700, 1, 0, 100},
		{400, 500, 0.5, 0, 125},
	}
	for _, c := range cases {
		v := fitView(c.w, c.h)
		if v.Scale != c.scale || v.OffsetX != c.offX || v.OffsetY != c.offY {
			t.Fatalf("fitView(%d, %d) = %+v, want scale %v offset (%v, %v)", c.w, c.h, v, c.scale, c.offX, c.offY)
		}
	}
}

func TestViewToScreenAndScissor(t *testing.T) {
	v := fitView(1000, 500)
	if x, y := v.ToScreen(0, 0); x != 100 || y != 0 {
		t.Fatalf("ToScreen(0,0) = (%v, %v), want (100, 0)", x, y)
	}
	if x, y := v.ToScreen(game.GameWidth, game.GameHeight); x != 900 || y != 500 {
		t.Fatalf("ToScreen(corner) = (%v, %v), want (900, 500)", x, y)
	}

	v = fitView(800, 700)
	x, y, w, h := v.scissor()
	if x != 0 || y != 100 || w != 800 || h != 500 {
		t.Fatalf("scissor() = %d,%d %dx%d, want 0,100 800x500", x, y, w, h)
	}
}

func TestTitlePerState(t *testing.T) {
	cases := []struct {
		name  string
		frame game.Frame
		want  []string
	}{
		{"start", game.Frame{State: game.StateStart, HighScore: 120}, []string{"High 120", "SPACE: calibrate"}},
		{"listening", game.Frame{State: game.StateCalibration, HasReading: true, Note: "G3", Cents: -7},
			[]string{"reference note", "hearing G3 -7c"}},
		{"locked", game.Frame{State: game.StateCalibration, Reference: "A4"}, []string{"Reference A4 locked", "T: hear it"}},
		{"playing", game.Frame{State: game.StatePlaying, Score: 42, HighScore: 50, HasReading: true, Note: "A4", Cents: 12, Reference: "A4"},
			[]string{"Score 42", "High 50", "A4 +12c", "ref A4"}},
		{"silent", game.Frame{State: game.StatePlaying}, []string{"Score 0", "--"}},
		{"over", game.Frame{State: game.StateGameOver, FinalScore: 30, HighScore: 30, NewHighScore: true},
			[]string{"Game over: 30 (new high score!)", "SPACE: retry"}},
		{"audio", game.Frame{State: game.StatePlaying, AudioErr: "audio unavailable: no device"},
			[]string{"audio: audio unavailable: no device"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Title(c.frame)
			if !strings.HasPrefix(got, windowTitle) {
				t.Fatalf("Title() = %q, want prefix %q", got, windowTitle)
			}
			for _, w := range c.want {
				if !strings.Contains(got, w) {
					t.Fatalf("Title() = %q, missing %q", got, w)
				}
			}
		})
	}
}

func TestTitleWithoutNewHighScore(t *testing.T) {
	got := Title(game.Frame{State: game.StateGameOver, FinalScore: 5, HighScore: 30})
	if strings.Contains(got, "new high score") {
		t.Fatalf("Title() = %q, claims a new high score", got)
	}
}

func TestControlsWalkTheStates(t *testing.T) {
	s, rec, _ := newTestSession(t, 0)
	log := quiet()

	apply(s, Controls{Confirm: true}, rec, log)
	if s.State != game.StateCalibration || rec.last() != audio.SoundSelect {
		t.Fatalf("after confirm: state %v, last sound %v", s.State, rec.last())
	}

	// No reference yet: confirm does nothing.
	n := len(rec.played)
	apply(s, Controls{Confirm: true}, rec, log)
	if s.State != game.StateCalibration || len(rec.played) != n {
		t.Fatalf("confirm without reference: state %v, sounds %v", s.State, rec.played)
	}

	apply(s, Controls{Tone: true}, rec, log)
	if len(rec.tones) != 0 {
		t.Fatalf("tone played without a reference: %v", rec.tones)
	}

	if !s.LatchReference(pitch.Reading{Name: "A", Octave: 4, Hz: 440}) {
		t.Fatalf("LatchReference() = false")
	}
	if rec.last() != audio.SoundLock {
		t.Fatalf("latch sound = %v, want %v", rec.last(), audio.SoundLock)
	}

	apply(s, Controls{Tone: true}, rec, log)
	if len(rec.tones) != 1 || rec.tones[0] != 440 {
		t.Fatalf("tones = %v, want [440]", rec.tones)
	}

	apply(s, Controls{Confirm: true}, rec, log)
	if s.State != game.StatePlaying {
		t.Fatalf("state = %v, want playing", s.State)
	}

	apply(s, Controls{Back: true}, rec, log)
	if s.State != game.StatePlaying {
		t.Fatalf("back while playing moved to %v", s.State)
	}

	crash(t, s)
	if !s.NewHighScore || rec.last() != audio.SoundHighScore {
		t.Fatalf("first crash: new high %v, last sound %v", s.NewHighScore, rec.last())
	}
	if rec.played[len(rec.played)-2] != audio.SoundExplosion {
		t.Fatalf("sounds = %v, want explosion before the jingle", rec.played)
	}

	apply(s, Controls{Confirm: true}, rec, log)
	if s.State != game.StatePlaying {
		t.Fatalf("restart: state = %v, want playing", s.State)
	}
	crash(t, s)
	if rec.last() != audio.SoundHighScore {
		t.Fatalf("equal score: last sound %v, want %v", rec.last(), audio.SoundHighScore)
	}

	apply(s, Controls{Back: true}, rec, log)
	if s.State != game.StateStart {
		t.Fatalf("back from game over: state = %v, want start", s.State)
	}
}

func TestGameOverJingleWithoutRecord(t *testing.T) {
	s, rec, store := newTestSession(t, 1000)

	apply(s, Controls{Confirm: true}, rec, quiet())
	s.LatchReference(pitch.Reading{Name: "C", Octave: 3, Hz: 130.81})
	apply(s, Controls{Confirm: true}, rec, quiet())
	crash(t, s)
	if s.NewHighScore || rec.last() != audio.SoundGameOver {
		t.Fatalf("new high %v, last sound %v, want game-over jingle", s.NewHighScore, rec.last())
	}
	if store.Saves != 0 {
		t.Fatalf("store saved %d times, want 0", store.Saves)
	}
}

func TestSilenceIsASoundPlayer(t *testing.T) {
	var p SoundPlayer = silence{}
	p.Play(audio.SoundExplosion)
	p.PlayTone(440, 1)
}
