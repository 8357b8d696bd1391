package game

import "testing"

func TestSpawnSchedule(t *testing.T) {
	f := NewObstacleField(&seqRand{v: []float64{0.5}})

	if _, ok := f.Spawn(2.5, 0); ok {
		t.Fatalf("spawned at exactly the interval; want strictly greater")
	}
	o, ok := f.Spawn(2.51, 0)
	if !ok {
		t.Fatalf("no spawn after the interval elapsed")
	}
	if f.LastSpawn != 2.51 {
		t.Fatalf("LastSpawn = %v, want 2.51", f.LastSpawn)
	}
	if o.X != GameWidth || o.W != ObstacleWidth || o.H != ObstacleHeight {
		t.Fatalf("spawned %+v, want at right edge with obstacle size", o)
	}
	// At full difficulty the interval is 1s.
	if _, ok := f.Spawn(3.5, 1); ok {
		t.Fatalf("spawned 0.99s after the last one at difficulty 1")
	}
	if _, ok := f.Spawn(3.52, 1); !ok {
		t.Fatalf("no spawn 1.01s after the last one at difficulty 1")
	}
}

func TestSpawnDraws(t *testing.T) {
	cases := []struct {
		name  string
		draws []float64 // kind, y, speed jitter
		kind  ObstacleKind
		y     float64
		speed float64
	}{
		{"meteor at top, slowest", []float64{0.0, 0.0, 0.0}, KindMeteor, 0, ObstacleSpeedMin * 0.8},
		{"threshold is still meteor", []float64{0.7, 0.5, 0.5}, KindMeteor, 230, ObstacleSpeedMin},
		{"enemy ship", []float64{0.71, 0.25, 0.25}, KindEnemyShip, 115, ObstacleSpeedMin * 0.9},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := NewObstacleField(&seqRand{v: c.draws})
			o, ok := f.Spawn(10, 0)
			if !ok {
				t.Fatalf("no spawn")
			}
			if o.Kind != c.kind {
				t.Fatalf("Kind = %v, want %v", o.Kind, c.kind)
			}
			if o.Y != c.y {
				t.Fatalf("Y = %v, want %v", o.Y, c.y)
			}
			if d := o.Speed - c.speed; d > 1e-9 || d < -1e-9 {
				t.Fatalf("Speed = %v, want %v", o.Speed, c.speed)
			}
		})
	}
}

func TestSpawnStaysInBounds(t *testing.T) {
	f := NewObstacleField(NewRand(42))
	elapsed := 0.0
	for range 500 {
		elapsed += 3
		o, ok := f.Spawn(elapsed, Difficulty(elapsed))
		if !ok {
			t.Fatalf("no spawn at %v", elapsed)
		}
		if o.Y < 0 || o.Y > GameHeight-ObstacleHeight {
			t.Fatalf("Y = %v outside playfield", o.Y)
		}
		base := BaseSpeed(Difficulty(elapsed))
		if o.Speed < base*0.8 || o.Speed > base*1.2+1e-9 {
			t.Fatalf("Speed = %v outside [%v, %v]", o.Speed, base*0.8, base*1.2)
		}
	}
}

func TestObstacleIDsUnique(t *testing.T) {
	f := NewObstacleField(NewRand(7))
	seen := map[uint64]bool{}
	for i := range 50 {
		o := f.Add(Obstacle{X: float64(i)})
		if seen[o.ID] {
			t.Fatalf("duplicate id %d", o.ID)
		}
		seen[o.ID] = true
	}
	f.Reset()
	if o := f.Add(Obstacle{}); seen[o.ID] {
		t.Fatalf("id %d reused after Reset", o.ID)
	}
}

func TestAdvanceAndPrune(t *testing.T) {
	f := NewObstacleField(nil)
	f.Add(Obstacle{X: 100, W: 40, Speed: 200})
	f.Add(Obstacle{X: -30, W: 40, Speed: 100})
	f.Add(Obstacle{X: 500, W: 40, Speed: 0})

	f.Advance(0.1)
	want := []float64{80, -40, 500}
	for i, o := range f.Obstacles {
		if o.X != want[i] {
			t.Fatalf("obstacle %d X = %v, want %v", i, o.X, want[i])
		}
	}

	// x == -width is fully off screen.
	if n := f.Prune(); n != 1 {
		t.Fatalf("Prune() removed %d, want 1", n)
	}
	if len(f.Obstacles) != 2 {
		t.Fatalf("%d obstacles left, want 2", len(f.Obstacles))
	}
	for _, o := range f.Obstacles {
		if o.X <= -o.W {
			t.Fatalf("off-screen obstacle survived: %+v", o)
		}
	}
}

func TestFirstHit(t *testing.T) {
	f := NewObstacleField(nil)
	f.Add(Obstacle{X: 300, Y: 0, W: 40, H: 40})
	hit := f.Add(Obstacle{X: 100, Y: 100, W: 40, H: 40})

	if _, ok := f.FirstHit(Rect(0, 0, 50, 50)); ok {
		t.Fatalf("hit reported with nothing overlapping")
	}
	o, ok := f.FirstHit(Rect(90, 90, 20, 20))
	if !ok || o.ID != hit.ID {
		t.Fatalf("FirstHit = %+v, %v; want obstacle %d", o, ok, hit.ID)
	}
}
