package game

// Avatar is the player's spaceship. Only Y changes, and only from pitch.
type Avatar struct {
	X, Y float64
	W, H float64
}

// NewAvatar places the ship vertically centred. This is 15 units below
// AvatarY(0), so the first in-tune reading nudges it up.
func NewAvatar() Avatar {
	return Avatar{
		X: AvatarX,
		Y: GameHeight/2 - AvatarHeight/2,
		W: AvatarWidth,
		H: AvatarHeight,
	}
}

// AvatarY maps cents to the ship's top edge: 0 cents is mid-screen,
// +50 the top, -50 the bottom. Values beyond the range clamp.
func AvatarY(cents float64) float64 {
	target := GameHeight * (1 - (cents+CentsRange)/(2*CentsRange))
	return clampF(target, 0, GameHeight-AvatarHeight)
}

// Steer moves the ship to the position for cents.
func (a *Avatar) Steer(cents int) {
	a.Y = AvatarY(float64(cents))
}

func (a Avatar) Bounds() RectF {
	return Rect(a.X, a.Y, a.W, a.H)
}
