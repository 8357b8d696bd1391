package game

import "math"

// Score, difficulty and the spawn tunables are pure functions of elapsed
// time, recomputed every tick.

// Difficulty ramps linearly from 0 to 1 over the first 20 seconds.
func Difficulty(elapsed float64) float64 {
	if elapsed <= 0 {
		return 0
	}
	return math.Min(1, elapsed*DifficultyRate)
}

// Score awards ScoreRate points per second survived.
func Score(elapsed float64) int {
	if elapsed <= 0 {
		return 0
	}
	return int(math.Floor(elapsed * ScoreRate))
}

// SpawnInterval shrinks from ObstacleIntervalMax to ObstacleIntervalMin.
func SpawnInterval(difficulty float64) float64 {
	d := clampF(difficulty, 0, 1)
	return ObstacleIntervalMax - (ObstacleIntervalMax-ObstacleIntervalMin)*d
}

// BaseSpeed grows from ObstacleSpeedMin to ObstacleSpeedMax.
func BaseSpeed(difficulty float64) float64 {
	d := clampF(difficulty, 0, 1)
	return ObstacleSpeedMin + (ObstacleSpeedMax-ObstacleSpeedMin)*d
}
