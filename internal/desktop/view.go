package desktop

import "pitchspace/internal/game"

// View letterboxes the playfield into the framebuffer, keeping its aspect.
type View struct {
	Scale            float64
	OffsetX, OffsetY float64
	FbW, FbH         int
}

func fitView(fbW, fbH int) View {
	s := min(float64(fbW)/game.GameWidth, float64(fbH)/game.GameHeight)
	return View{
		Scale:   s,
		OffsetX: (float64(fbW) - game.GameWidth*s) / 2,
		OffsetY: (float64(fbH) - game.GameHeight*s) / 2,
		FbW:     fbW,
		FbH:     fbH,
	}
}

// ToScreen maps a game-space point to framebuffer pixels (origin top-left).
func (v View) ToScreen(x, y float64) (float64, float64) {
	return x*v.Scale + v.OffsetX, y*v.Scale + v.OffsetY
}

// scissor is the playfield in GL window coordinates (origin bottom-left).
func (v View) scissor() (x, y, w, h int32) {
	w = int32(game.GameWidth*v.Scale + 0.5)
	h = int32(game.GameHeight*v.Scale + 0.5)
	x = int32(v.OffsetX + 0.5)
	y = int32(v.FbH) - int32(v.OffsetY+0.5) - h
	return
}
