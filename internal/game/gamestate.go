package game

import (
	"errors"
	"fmt"
	"log/slog"

	"pitchspace/internal/pitch"
)

type SessionState int

const (
	StateStart       SessionState = iota
	StateCalibration              // listening for the reference note
	StatePlaying                  // clock running, obstacles live
	StateGameOver                 // collided or faulted
)

func (s SessionState) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateCalibration:
		return "calibration"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game-over"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// particleSeed keeps explosion bursts reproducible between runs.
const particleSeed = 0x5EEDB00B

// Session owns all mutable game state. Every method runs on the tick
// thread; nothing here is safe for concurrent use.
type Session struct {
	State SessionState

	Reference    pitch.Reading // latched during calibration
	HasReference bool

	Reading    pitch.Reading // latest valid reading, for display
	HasReading bool

	Score        int
	HighScore    int
	FinalScore   int
	NewHighScore bool
	Difficulty   float64

	Avatar    Avatar
	Field     *ObstacleField
	Particles *ParticleSystem
	Events    *EventBus

	AudioErr error // set when capture fails; pitch control stays frozen until the next start
	Fault    error // last simulation fault

	clock  Clock
	sensor Sensor
	store  HighScoreStore
	log    *slog.Logger

	glowBuf []float32
	normBuf []float32
}

// NewSession builds a session in the Start state and loads the high score.
// sensor and store may be nil.
func NewSession(sensor Sensor, store HighScoreStore, rng RandomSource, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		State:     StateStart,
		Avatar:    NewAvatar(),
		Field:     NewObstacleField(rng),
		Particles: NewParticleSystem(MaxParticles, particleSeed),
		Events:    NewEventBus(),
		sensor:    sensor,
		store:     store,
		log:       logger,
	}
	s.loadHighScore()
	return s
}

func (s *Session) loadHighScore() {
	if s.store == nil {
		return
	}
	hs, err := s.store.LoadHighScore()
	if err != nil {
		s.log.Warn("high score unavailable", "err", err)
		return
	}
	s.HighScore = hs
}

// Elapsed is the session clock in seconds.
func (s *Session) Elapsed() float64 { return s.clock.Elapsed() }

// BeginCalibration moves Start -> Calibration and opens the input.
// A capture failure is recorded in AudioErr; the transition still happens.
func (s *Session) BeginCalibration() error {
	if s.State != StateStart {
		return fmt.Errorf("%w: calibrate from %s", ErrInvalidTransition, s.State)
	}
	s.State = StateCalibration
	s.Reference = pitch.Reading{}
	s.HasReference = false
	s.HasReading = false
	s.startCapture()
	return nil
}

// LatchReference stores r as the reference note unless one is already
// latched. It reports whether r was taken.
func (s *Session) LatchReference(r pitch.Reading) bool {
	if s.State != StateCalibration || s.HasReference {
		return false
	}
	s.Reference = r
	s.HasReference = true
	s.log.Info("reference note latched", "note", r.Note(), "hz", r.Hz)
	s.Events.Emit(Event{Type: EventReferenceLatched})
	return true
}

// ConfirmCalibration starts play once a reference note is latched.
func (s *Session) ConfirmCalibration() error {
	if s.State != StateCalibration {
		return fmt.Errorf("%w: confirm from %s", ErrInvalidTransition, s.State)
	}
	if !s.HasReference {
		return ErrNoReference
	}
	s.startPlaying()
	return nil
}

// Restart begins a fresh round after a game over, keeping the reference.
func (s *Session) Restart() error {
	if s.State != StateGameOver {
		return fmt.Errorf("%w: restart from %s", ErrInvalidTransition, s.State)
	}
	s.startPlaying()
	return nil
}

// ReturnToStart abandons calibration or leaves the game-over screen.
func (s *Session) ReturnToStart() error {
	if s.State != StateGameOver && s.State != StateCalibration {
		return fmt.Errorf("%w: return to start from %s", ErrInvalidTransition, s.State)
	}
	s.stopCapture()
	s.State = StateStart
	s.HasReading = false
	s.Field.Reset()
	s.Particles.Clear()
	s.loadHighScore()
	return nil
}

func (s *Session) startPlaying() {
	s.clock.Reset()
	s.Field.Reset()
	s.Particles.Clear()
	s.Avatar = NewAvatar()
	s.Score = 0
	s.Difficulty = 0
	s.FinalScore = 0
	s.NewHighScore = false
	s.Fault = nil
	s.State = StatePlaying
	s.startCapture()
	s.log.Debug("round started", "reference", s.Reference.Note(), "high_score", s.HighScore)
}

// Tick is the per-frame entry point: it senses pitch and, while playing,
// advances the simulation by dt seconds.
func (s *Session) Tick(dt float64) {
	switch s.State {
	case StateCalibration:
		if r := s.sense(); r != nil {
			s.LatchReference(*r)
		}
	case StatePlaying:
		r := s.sense()
		if err := s.Step(dt, r); err != nil && !errors.Is(err, ErrSimulationFault) {
			s.log.Error("step rejected", "err", err)
		}
	case StateGameOver:
		s.Particles.Update(dt)
	}
}

// Step advances play by one tick. The order is fixed: clock, score,
// difficulty, spawn, advance and prune, avatar, collision. A nil reading
// leaves the avatar where it is.
//
// Any fault (a bad dt or a panic inside the step) is logged and ends the
// round; the returned error wraps ErrSimulationFault.
func (s *Session) Step(dt float64, reading *pitch.Reading) (err error) {
	if s.State != StatePlaying {
		return fmt.Errorf("%w: step while %s", ErrInvalidTransition, s.State)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSimulationFault, r)
		}
		if err != nil {
			s.fault(err)
		}
	}()

	if err := s.clock.Advance(dt); err != nil {
		return err
	}
	t := s.clock.Elapsed()

	s.Score = Score(t)
	s.Difficulty = Difficulty(t)

	if o, ok := s.Field.Spawn(t, s.Difficulty); ok {
		s.Events.Emit(Event{Type: EventObstacleSpawned, X: o.X, Y: o.Y, Data: int(o.ID)})
	}
	s.Field.Advance(dt)
	s.Field.Prune()

	if reading != nil {
		s.Avatar.Steer(reading.Cents)
	}

	if o, ok := s.Field.FirstHit(s.Avatar.Bounds()); ok {
		s.collide(o)
	}
	return nil
}

func (s *Session) collide(o Obstacle) {
	// Explode at the middle of the overlap.
	a := s.Avatar.Bounds()
	b := o.Bounds()
	cx := (max(a.X0, b.X0) + min(a.X1, b.X1)) * 0.5
	cy := (max(a.Y0, b.Y0) + min(a.Y1, b.Y1)) * 0.5

	col := Palette.Meteor
	if o.Kind == KindEnemyShip {
		col = Palette.Enemy
	}
	s.Particles.SpawnExplosion(cx, cy, col, 1.0)
	s.Events.Emit(Event{Type: EventCollision, X: cx, Y: cy, Data: int(o.ID)})
	s.log.Debug("collision", "obstacle", o.ID, "kind", o.Kind, "elapsed", s.clock.Elapsed())
	s.endRound()
}

func (s *Session) fault(err error) {
	s.Fault = err
	s.log.Error("simulation fault, ending round", "err", err)
	s.endRound()
}

// endRound runs exactly once per round.
func (s *Session) endRound() {
	if s.State != StatePlaying {
		return
	}
	s.State = StateGameOver
	s.FinalScore = s.Score
	s.NewHighScore = s.Score >= s.HighScore && s.Score > 0
	if s.Score > s.HighScore {
		s.HighScore = s.Score
		if s.store != nil {
			if err := s.store.SaveHighScore(s.HighScore); err != nil {
				s.log.Warn("high score not saved", "err", err)
			}
		}
	}
	s.stopCapture()
	s.log.Info("game over", "score", s.FinalScore, "high_score", s.HighScore, "new_high", s.NewHighScore)
	s.Events.Emit(Event{Type: EventGameOver, Data: s.FinalScore, Flag: s.NewHighScore})
}

// sense returns the current reading, or nil when there is none.
func (s *Session) sense() *pitch.Reading {
	if s.sensor == nil || s.AudioErr != nil {
		return nil
	}
	est, err := s.sensor.Sense()
	if err != nil {
		if errors.Is(err, ErrAudioUnavailable) {
			s.audioFailed(err)
		} else {
			s.log.Debug("reading dropped", "err", err)
		}
		return nil
	}
	r, ok := pitch.ToNote(est)
	if !ok {
		s.HasReading = false
		return nil
	}
	s.Reading = r
	s.HasReading = true
	return &r
}

// startCapture opens the input for calibration or a new round. An earlier
// failure only disabled pitch control until now: it is cleared, any device
// still held from it is released, and the input is tried again.
func (s *Session) startCapture() {
	if s.sensor == nil {
		return
	}
	if s.AudioErr != nil {
		s.log.Info("retrying audio capture", "previous_err", s.AudioErr)
		s.AudioErr = nil
		s.stopCapture()
	}
	if s.sensor.IsCapturing() {
		return
	}
	if err := s.sensor.StartCapture(); err != nil {
		s.audioFailed(err)
	}
}

func (s *Session) stopCapture() {
	if s.sensor == nil || !s.sensor.IsCapturing() {
		return
	}
	if err := s.sensor.StopCapture(); err != nil {
		s.log.Warn("stop capture", "err", err)
	}
}

func (s *Session) audioFailed(err error) {
	if !errors.Is(err, ErrAudioUnavailable) {
		err = fmt.Errorf("%w: %w", ErrAudioUnavailable, err)
	}
	s.AudioErr = err
	s.HasReading = false
	s.log.Warn("audio capture failed, pitch control disabled", "err", err)
	s.Events.Emit(Event{Type: EventAudioError})
}

// Close releases the input device.
func (s *Session) Close() {
	s.stopCapture()
}
