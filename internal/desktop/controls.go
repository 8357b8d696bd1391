package desktop

import (
	"errors"
	"log/slog"

	"pitchspace/internal/audio"
	"pitchspace/internal/game"
)

// Controls are the key presses of one frame.
type Controls struct {
	Confirm bool // space
	Back    bool // enter or backspace
	Tone    bool // T
	Quit    bool // escape
}

// SoundPlayer plays effects. *audio.SFX satisfies it, a nil one included.
type SoundPlayer interface {
	Play(kind audio.Sound)
	PlayTone(hz, seconds float64)
}

type silence struct{}

func (silence) Play(audio.Sound)      {}
func (silence) PlayTone(_, _ float64) {}

const referenceToneSeconds = 1.2

// apply runs the transition c asks for in the session's current state.
// Presses that mean nothing in that state are ignored.
func apply(s *game.Session, c Controls, sounds SoundPlayer, log *slog.Logger) {
	if c.Confirm {
		var err error
		switch s.State {
		case game.StateStart:
			err = s.BeginCalibration()
			sounds.Play(audio.SoundSelect)
		case game.StateCalibration:
			if err = s.ConfirmCalibration(); err == nil {
				sounds.Play(audio.SoundSelect)
			}
		case game.StateGameOver:
			err = s.Restart()
		}
		switch {
		case errors.Is(err, game.ErrNoReference):
			log.Debug("start ignored, no reference yet")
		case err != nil:
			log.Warn("transition refused", "state", s.State, "err", err)
		}
	}

	if c.Back && (s.State == game.StateCalibration || s.State == game.StateGameOver) {
		if err := s.ReturnToStart(); err != nil {
			log.Warn("return to start", "err", err)
		}
	}

	if c.Tone && s.HasReference {
		sounds.PlayTone(s.Reference.Frequency(), referenceToneSeconds)
	}
}

// wireSounds hooks sound effects to session events.
func wireSounds(bus *game.EventBus, sounds SoundPlayer) {
	bus.Subscribe(game.EventReferenceLatched, func(game.Event) {
		sounds.Play(audio.SoundLock)
	})
	bus.Subscribe(game.EventCollision, func(game.Event) {
		sounds.Play(audio.SoundExplosion)
	})
	bus.Subscribe(game.EventGameOver, func(e game.Event) {
		if e.Flag {
			sounds.Play(audio.SoundHighScore)
			return
		}
		sounds.Play(audio.SoundGameOver)
	})
}
