package game

import "errors"

var (
	// ErrAudioUnavailable reports a capture device that could not be opened
	// or failed while running. The session keeps going without pitch control.
	ErrAudioUnavailable = errors.New("audio unavailable")

	// ErrSimulationFault marks a broken internal invariant during play.
	ErrSimulationFault = errors.New("simulation fault")

	ErrInvalidTransition = errors.New("invalid state transition")
	ErrNoReference       = errors.New("no reference note latched")
)
