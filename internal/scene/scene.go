// Package scene turns a game.Frame into vertex buffers. It has no GL
// dependency; the desktop renderer uploads what it produces as is.
package scene

import (
	"math"

	"pitchspace/internal/game"
)

const (
	// VertexStride is the number of floats per triangle vertex: x, y, r, g, b, a.
	VertexStride = 6
	// SpriteStride is the number of floats per point sprite: x, y, size, r, g, b, a, rotation.
	SpriteStride = 8
)

// Geometry is one frame worth of draw data in game space.
type Geometry struct {
	Stars   []float32 // point sprites behind everything
	Tris    []float32 // alpha blended
	Sprites []float32 // alpha blended point sprites over the shapes
	Glow    []float32 // additive point sprites, premultiplied
}

// Reset empties the buffers and keeps their storage.
func (g *Geometry) Reset() {
	g.Stars = g.Stars[:0]
	g.Tris = g.Tris[:0]
	g.Sprites = g.Sprites[:0]
	g.Glow = g.Glow[:0]
}

// Build returns freshly allocated geometry for f.
func Build(f game.Frame) Geometry {
	var g Geometry
	BuildInto(&g, f)
	return g
}

// BuildInto overwrites g with the geometry for f, reusing its buffers.
// Draw order: stars, pitch guides, obstacles, ship, meter, particles.
func BuildInto(g *Geometry, f game.Frame) {
	g.Reset()

	drawStars(g, f.Elapsed)
	drawGuides(g)

	for _, o := range f.Obstacles {
		switch o.Kind {
		case game.KindEnemyShip:
			drawEnemy(g, o)
		default:
			drawMeteor(g, o)
		}
	}

	// The ship is gone once it has exploded.
	if f.State != game.StateGameOver {
		drawShip(g, f.Avatar, f.Elapsed, f.State == game.StatePlaying)
	}

	drawMeter(g, f)

	g.Glow = append(g.Glow, f.Glow...)
	g.Sprites = append(g.Sprites, f.Sprite...)
}

func (g *Geometry) vertex(x, y float64, c game.RGB, a float32) {
	r, gg, b := c.Float()
	g.Tris = append(g.Tris, float32(x), float32(y), r, gg, b, a)
}

func (g *Geometry) tri(ax, ay, bx, by, cx, cy float64, c game.RGB, a float32) {
	g.vertex(ax, ay, c, a)
	g.vertex(bx, by, c, a)
	g.vertex(cx, cy, c, a)
}

// rect fills the axis-aligned box with two triangles.
func (g *Geometry) rect(x, y, w, h float64, c game.RGB, a float32) {
	g.tri(x, y, x+w, y, x, y+h, c, a)
	g.tri(x+w, y, x+w, y+h, x, y+h, c, a)
}

// disc is a triangle fan; radius(i) lets callers roughen the outline.
func (g *Geometry) disc(cx, cy float64, segments int, radius func(i int) float64, c game.RGB, a float32) {
	step := 2 * math.Pi / float64(segments)
	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		r0, r1 := radius(i), radius(j)
		a0, a1 := float64(i)*step, float64(i+1)*step
		g.tri(cx, cy,
			cx+math.Cos(a0)*r0, cy+math.Sin(a0)*r0,
			cx+math.Cos(a1)*r1, cy+math.Sin(a1)*r1,
			c, a)
	}
}

func (g *Geometry) circle(cx, cy, r float64, c game.RGB, a float32) {
	g.disc(cx, cy, 16, func(int) float64 { return r }, c, a)
}

func (g *Geometry) sprite(buf *[]float32, x, y, size float64, c game.RGB, a, rot float32) {
	r, gg, b := c.Float()
	*buf = append(*buf, float32(x), float32(y), float32(size), r, gg, b, a, rot)
}
