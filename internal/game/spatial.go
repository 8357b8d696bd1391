package game

// RectF is an axis-aligned rectangle in game space.
type RectF struct {
	X0, Y0 float64
	X1, Y1 float64
}

// Rect builds a RectF from a top-left corner and size.
func Rect(x, y, w, h float64) RectF {
	return RectF{X0: x, Y0: y, X1: x + w, Y1: y + h}
}

func (r RectF) W() float64 { return r.X1 - r.X0 }
func (r RectF) H() float64 { return r.Y1 - r.Y0 }

// Intersects reports strict overlap; rectangles sharing only an edge do not intersect.
func (r RectF) Intersects(o RectF) bool {
	return r.X0 < o.X1 && r.X1 > o.X0 && r.Y0 < o.Y1 && r.Y1 > o.Y0
}

// Center returns the midpoint of r.
func (r RectF) Center() (float64, float64) {
	return (r.X0 + r.X1) * 0.5, (r.Y0 + r.Y1) * 0.5
}

// Collides is the avatar/obstacle hit test.
func Collides(avatar, obstacle RectF) bool {
	return avatar.Intersects(obstacle)
}
