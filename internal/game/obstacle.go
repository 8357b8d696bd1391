package game

type ObstacleKind uint8

const (
	KindMeteor ObstacleKind = iota
	KindEnemyShip
)

func (k ObstacleKind) String() string {
	switch k {
	case KindMeteor:
		return "meteor"
	case KindEnemyShip:
		return "enemy-ship"
	default:
		return "unknown"
	}
}

// Obstacle moves right-to-left at a constant speed.
type Obstacle struct {
	ID    uint64
	X, Y  float64
	W, H  float64
	Kind  ObstacleKind
	Speed float64 // px/s
}

func (o Obstacle) Bounds() RectF {
	return Rect(o.X, o.Y, o.W, o.H)
}

// ObstacleField owns the live obstacles of one session.
type ObstacleField struct {
	Obstacles []Obstacle
	LastSpawn float64 // elapsed time of the most recent spawn

	nextID uint64
	rng    RandomSource
}

func NewObstacleField(rng RandomSource) *ObstacleField {
	if rng == nil {
		rng = NewRand(1)
	}
	return &ObstacleField{
		Obstacles: make([]Obstacle, 0, 16),
		rng:       rng,
	}
}

// Reset clears the field for a new session. Ids keep increasing.
func (f *ObstacleField) Reset() {
	f.Obstacles = f.Obstacles[:0]
	f.LastSpawn = 0
}

// Spawn adds a new obstacle at the right edge when the difficulty-scaled
// interval since the last spawn has passed.
func (f *ObstacleField) Spawn(elapsed, difficulty float64) (Obstacle, bool) {
	if elapsed-f.LastSpawn <= SpawnInterval(difficulty) {
		return Obstacle{}, false
	}
	f.LastSpawn = elapsed

	kind := KindMeteor
	if f.rng.Float64() > EnemyShipThreshold {
		kind = KindEnemyShip
	}
	y := f.rng.Float64() * (GameHeight - ObstacleHeight)
	speed := BaseSpeed(difficulty) * (SpeedJitterMin + SpeedJitterSpan*f.rng.Float64())

	return f.Add(Obstacle{
		X:     GameWidth,
		Y:     y,
		W:     ObstacleWidth,
		H:     ObstacleHeight,
		Kind:  kind,
		Speed: speed,
	}), true
}

// Add inserts o with a fresh id and returns the stored copy.
func (f *ObstacleField) Add(o Obstacle) Obstacle {
	f.nextID++
	o.ID = f.nextID
	f.Obstacles = append(f.Obstacles, o)
	return o
}

// Advance moves every obstacle left by speed*dt.
func (f *ObstacleField) Advance(dt float64) {
	for i := range f.Obstacles {
		f.Obstacles[i].X -= f.Obstacles[i].Speed * dt
	}
}

// Prune drops obstacles that are fully past the left edge.
func (f *ObstacleField) Prune() int {
	kept := f.Obstacles[:0]
	for _, o := range f.Obstacles {
		if o.X > -o.W {
			kept = append(kept, o)
		}
	}
	removed := len(f.Obstacles) - len(kept)
	f.Obstacles = kept
	return removed
}

// FirstHit returns an obstacle overlapping box, if any. Which one is
// reported when several overlap is unspecified.
func (f *ObstacleField) FirstHit(box RectF) (Obstacle, bool) {
	for _, o := range f.Obstacles {
		if Collides(box, o.Bounds()) {
			return o, true
		}
	}
	return Obstacle{}, false
}

// Snapshot returns a copy of the live obstacles.
func (f *ObstacleField) Snapshot() []Obstacle {
	out := make([]Obstacle, len(f.Obstacles))
	copy(out, f.Obstacles)
	return out
}
