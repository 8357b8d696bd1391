package game

// Playfield dimensions (game-space units, drawn 1:1 as pixels at the
// default window size).
const (
	GameWidth  = 800.0
	GameHeight = 500.0
)

// Window defaults.
const (
	WindowWidth  = 960
	WindowHeight = 600
)

// Spaceship (the player avatar). X is fixed; Y follows the sung pitch.
const (
	AvatarX      = 50.0
	AvatarWidth  = 60.0
	AvatarHeight = 30.0
)

// Obstacles.
const (
	ObstacleWidth  = 40.0
	ObstacleHeight = 40.0

	ObstacleSpeedMin = 150.0 // px/s at difficulty 0
	ObstacleSpeedMax = 350.0 // px/s at difficulty 1

	ObstacleIntervalMin = 1.0 // seconds between spawns at difficulty 1
	ObstacleIntervalMax = 2.5 // seconds between spawns at difficulty 0

	// A uniform draw above this threshold spawns an enemy ship (30%).
	EnemyShipThreshold = 0.7

	// Speed is scaled by a uniform factor in [SpeedJitterMin, SpeedJitterMin+SpeedJitterSpan).
	SpeedJitterMin  = 0.8
	SpeedJitterSpan = 0.4
)

// Progression.
const (
	DifficultyRate = 0.05 // per second; saturates after 20s
	ScoreRate      = 10.0 // points per second
)

// Pitch control. Cents in [-CentsRange, CentsRange] span the playfield.
const CentsRange = 50.0

// Particles.
const (
	MaxParticles      = 2000
	MaxParticleRender = 4000
)

// Readings within this many cents of the note count as in tune.
const InTuneCents = 10
