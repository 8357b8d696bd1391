package game

import (
	"fmt"

	"pitchspace/internal/pitch"
)

// AudioInput is the capture collaborator. LatestBuffer never blocks: it
// returns the most recent full window, the previous one when nothing new
// arrived, or nil before the first window is ready.
type AudioInput interface {
	StartCapture() error
	StopCapture() error
	IsCapturing() bool
	LatestBuffer() *pitch.Buffer
	// Err is the device failure that stopped capture, if any.
	Err() error
}

// Sensor produces one pitch estimate per tick. Microphones go through
// MicSensor; instruments that already know their pitch implement it directly.
type Sensor interface {
	StartCapture() error
	StopCapture() error
	IsCapturing() bool
	Err() error
	// Sense returns NoPitch with a nil error when nothing is heard. Errors
	// wrapping ErrAudioUnavailable stop pitch control for the session; any
	// other error only drops the current reading.
	Sense() (pitch.Estimate, error)
}

// MicSensor runs the autocorrelation estimator over an AudioInput.
type MicSensor struct {
	in  AudioInput
	est *pitch.Estimator
}

func NewMicSensor(in AudioInput) *MicSensor {
	return &MicSensor{in: in, est: pitch.NewEstimator()}
}

func (m *MicSensor) StartCapture() error {
	if err := m.in.StartCapture(); err != nil {
		return fmt.Errorf("%w: %w", ErrAudioUnavailable, err)
	}
	return nil
}

func (m *MicSensor) StopCapture() error { return m.in.StopCapture() }
func (m *MicSensor) IsCapturing() bool  { return m.in.IsCapturing() }
func (m *MicSensor) Err() error         { return m.in.Err() }

func (m *MicSensor) Sense() (pitch.Estimate, error) {
	if err := m.in.Err(); err != nil {
		return pitch.NoPitch, fmt.Errorf("%w: %w", ErrAudioUnavailable, err)
	}
	buf := m.in.LatestBuffer()
	if buf == nil {
		return pitch.NoPitch, nil
	}
	return m.est.Estimate(*buf)
}
