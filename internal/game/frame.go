package game

// Frame is what the renderer sees of one tick. It is read-only; the
// particle buffers are reused by the next call to Session.Frame.
type Frame struct {
	State SessionState

	Avatar    RectF
	Obstacles []Obstacle

	HasReading bool
	Cents      int
	Note       string // e.g. "A4"; empty without a reading
	Reference  string // latched reference note; empty before calibration locks

	Score        int
	HighScore    int
	FinalScore   int
	NewHighScore bool
	Difficulty   float64
	Elapsed      float64

	AudioErr string

	// Point sprites, [x, y, size, r, g, b, a, rotation] * N.
	Glow   []float32
	Sprite []float32
}

// InTune reports whether the reading is close enough to the note to be
// shown as on pitch.
func (f Frame) InTune() bool {
	return f.HasReading && f.Cents >= -InTuneCents && f.Cents <= InTuneCents
}

func (s *Session) Frame() Frame {
	f := Frame{
		State:        s.State,
		Avatar:       s.Avatar.Bounds(),
		Obstacles:    s.Field.Snapshot(),
		HasReading:   s.HasReading,
		Score:        s.Score,
		HighScore:    s.HighScore,
		FinalScore:   s.FinalScore,
		NewHighScore: s.NewHighScore,
		Difficulty:   s.Difficulty,
		Elapsed:      s.clock.Elapsed(),
	}
	if s.HasReading {
		f.Cents = s.Reading.Cents
		f.Note = s.Reading.Note()
	}
	if s.HasReference {
		f.Reference = s.Reference.Note()
	}
	if s.AudioErr != nil {
		f.AudioErr = s.AudioErr.Error()
	}
	s.glowBuf, s.normBuf = s.Particles.RenderData(s.glowBuf, s.normBuf)
	f.Glow = s.glowBuf
	f.Sprite = s.normBuf
	return f
}
