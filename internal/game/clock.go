package game

import (
	"fmt"
	"math"
	"time"
)

// Clock is the per-session simulation clock. It only moves when the session
// advances it during play, so time spent in menus never counts.
type Clock struct {
	elapsed float64
	delta   float64
}

// Reset rewinds to the start of a fresh session.
func (c *Clock) Reset() {
	c.elapsed = 0
	c.delta = 0
}

// Advance adds one tick of dt seconds. Ticks are irregular; any non-negative
// finite dt is accepted.
func (c *Clock) Advance(dt float64) error {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: tick delta %v", ErrSimulationFault, dt)
	}
	c.delta = dt
	c.elapsed += dt
	return nil
}

// Elapsed is the session time in seconds.
func (c *Clock) Elapsed() float64 { return c.elapsed }

// Delta is the length of the last tick in seconds.
func (c *Clock) Delta() float64 { return c.delta }

// Stopwatch turns a wall-clock source into per-frame deltas.
type Stopwatch struct {
	now     func() float64
	last    float64
	started bool
}

// NewStopwatch reads seconds from now; nil uses the process monotonic clock.
func NewStopwatch(now func() float64) *Stopwatch {
	if now == nil {
		start := time.Now()
		now = func() float64 { return time.Since(start).Seconds() }
	}
	return &Stopwatch{now: now}
}

// Lap returns the seconds since the previous Lap (0 on the first call).
// A clock that steps backwards yields a negative delta; the session treats
// that as a fault rather than hiding it.
func (s *Stopwatch) Lap() float64 {
	t := s.now()
	if !s.started {
		s.started = true
		s.last = t
		return 0
	}
	dt := t - s.last
	s.last = t
	return dt
}

// Restart makes the next Lap return 0.
func (s *Stopwatch) Restart() {
	s.started = false
}
