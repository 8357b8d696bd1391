package desktop

import (
	"fmt"
	"strings"

	"pitchspace/internal/game"
)

// Title renders the HUD into the window title. It changes only when the
// text does, so the caller can compare before calling SetTitle.
func Title(f game.Frame) string {
	parts := []string{windowTitle}

	switch f.State {
	case game.StateStart:
		parts = append(parts, fmt.Sprintf("High %d", f.HighScore), "SPACE: calibrate")

	case game.StateCalibration:
		if f.Reference == "" {
			parts = append(parts, "Sing or play your reference note")
			if f.HasReading {
				parts = append(parts, "hearing "+reading(f))
			}
			parts = append(parts, "ENTER: back")
		} else {
			parts = append(parts,
				"Reference "+f.Reference+" locked",
				"SPACE: start  T: hear it  ENTER: back")
		}

	case game.StatePlaying:
		parts = append(parts,
			fmt.Sprintf("Score %d", f.Score),
			fmt.Sprintf("High %d", f.HighScore))
		if f.HasReading {
			parts = append(parts, reading(f))
		} else {
			parts = append(parts, "--")
		}
		if f.Reference != "" {
			parts = append(parts, "ref "+f.Reference)
		}

	case game.StateGameOver:
		over := fmt.Sprintf("Game over: %d", f.FinalScore)
		if f.NewHighScore {
			over += " (new high score!)"
		}
		parts = append(parts, over,
			fmt.Sprintf("High %d", f.HighScore),
			"SPACE: retry  ENTER: menu")
	}

	if f.AudioErr != "" {
		parts = append(parts, "audio: "+f.AudioErr)
	}
	return strings.Join(parts, " | ")
}

// reading formats the current note with signed cents, e.g. "A4 +12c".
func reading(f game.Frame) string {
	return fmt.Sprintf("%s %+dc", f.Note, f.Cents)
}
