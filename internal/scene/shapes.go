package scene

import (
	"math"

	"pitchspace/internal/game"
)

const (
	starCount  = 140
	starSeed   = 0x57A125
	starScroll = 40.0 // px/s for the nearest layer

	meterInset  = 20.0 // meter centre, from the right edge
	meterRadius = 10.0
	guideWidth  = 2.0
)

type star struct {
	x, y, depth float64
}

var stars = func() []star {
	rng := game.NewRand(starSeed)
	out := make([]star, starCount)
	for i := range out {
		out[i] = star{
			x:     rng.RangeF(0, game.GameWidth),
			y:     rng.RangeF(0, game.GameHeight),
			depth: rng.RangeF(0.2, 1),
		}
	}
	return out
}()

// starX scrolls a star left with parallax and wraps it inside the playfield.
func starX(s star, elapsed float64) float64 {
	x := math.Mod(s.x-elapsed*starScroll*s.depth, game.GameWidth)
	if x < 0 {
		x += game.GameWidth
	}
	return x
}

func drawStars(g *Geometry, elapsed float64) {
	for _, s := range stars {
		g.sprite(&g.Stars, starX(s, elapsed), s.y, 1+2*s.depth,
			game.Palette.Star, float32(0.35+0.65*s.depth), 0)
	}
}

// drawGuides marks the in-tune centre line and the quarter-tone edges.
func drawGuides(g *Geometry) {
	g.rect(0, game.GameHeight/2-guideWidth/2, game.GameWidth, guideWidth, game.Palette.InTune, 0.3)
	g.rect(0, 0, game.GameWidth, guideWidth, game.Palette.OffTune, 0.3)
	g.rect(0, game.GameHeight-guideWidth, game.GameWidth, guideWidth, game.Palette.OffTune, 0.3)
}

func drawShip(g *Geometry, b game.RectF, elapsed float64, thrusting bool) {
	x, y, w, h := b.X0, b.Y0, b.W(), b.H()

	if thrusting {
		flicker := 0.5 + 0.5*math.Sin(elapsed*40)
		tail := 6 + 6*flicker
		g.tri(x, y+h*0.25, x, y+h*0.75, x-tail, y+h*0.5, game.Palette.ShipFlame, 0.85)
		g.sprite(&g.Glow, x-tail*0.5, y+h*0.5, 18+6*flicker, game.Palette.ShipFlame.Mul(110), 1, 0)
	}

	// Hull: nose to the right.
	g.tri(x+w, y+h/2, x, y, x, y+h, game.Palette.Ship, 1)

	// Engines.
	g.rect(x, y+h*0.2, w*0.1, h*0.2, game.Palette.ShipFlame, 1)
	g.rect(x, y+h*0.6, w*0.1, h*0.2, game.Palette.ShipFlame, 1)

	// Cockpit.
	g.circle(x+w*0.7, y+h*0.5, w*0.1, game.Palette.Ship.Add(120, 80, 0), 1)
}

var craters = [...]struct{ x, y, r float64 }{
	{0.3, 0.3, 0.15},
	{0.7, 0.5, 0.1},
	{0.4, 0.7, 0.12},
}

// drawMeteor draws a lumpy rock inscribed in the obstacle box. The outline
// is derived from the obstacle ID so a meteor keeps its shape while it flies.
func drawMeteor(g *Geometry, o game.Obstacle) {
	size := math.Min(o.W, o.H)
	cx, cy := o.X+o.W/2, o.Y+o.H/2
	phase := float64(o.ID) * 1.7
	g.disc(cx, cy, 12, func(i int) float64 {
		return size / 2 * (0.88 + 0.12*math.Sin(phase+float64(i)*2.3))
	}, game.Palette.Meteor, 1)
	for _, c := range craters {
		g.circle(o.X+size*c.x, o.Y+size*c.y, size*c.r, game.Palette.MeteorDark, 1)
	}
}

// drawEnemy draws a ship pointing left, toward the player.
func drawEnemy(g *Geometry, o game.Obstacle) {
	x, y, w, h := o.X, o.Y, o.W, o.H
	g.tri(x, y+h/2, x+w, y, x+w, y+h, game.Palette.Enemy, 1)
	g.rect(x+w*0.6, y+h*0.2, w*0.2, h*0.6, game.Palette.Enemy.Mul(170), 1)
	g.circle(x+w*0.3, y+h*0.5, w*0.12, game.Palette.EnemyLight, 1)
}

// meterY maps cents to the playfield height: +50 at the top, -50 at the bottom.
func meterY(cents int) float64 {
	c := math.Max(-game.CentsRange, math.Min(game.CentsRange, float64(cents)))
	return game.GameHeight * (1 - (c+game.CentsRange)/(2*game.CentsRange))
}

func meterColor(f game.Frame) game.RGB {
	if f.InTune() {
		return game.Palette.InTune
	}
	return game.Palette.OffTune
}

// drawMeter is the cents indicator on the right edge. The marker only
// shows while there is a reading.
func drawMeter(g *Geometry, f game.Frame) {
	x := game.GameWidth - meterInset
	g.rect(x-3, 0, 6, game.GameHeight, game.Palette.Meter, 0.6)
	if !f.HasReading {
		return
	}
	y := meterY(f.Cents)
	col := meterColor(f)
	g.circle(x, y, meterRadius, col, 1)
	g.sprite(&g.Glow, x, y, meterRadius*5, col.Mul(90), 1, 0)
}
