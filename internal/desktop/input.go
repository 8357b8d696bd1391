package desktop

import "github.com/go-gl/glfw/v3.3/glfw"

// Input tracks key edges between frames.
type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{prevKeys: make(map[glfw.Key]bool)}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Poll samples the game keys for this frame.
func (in *Input) Poll(window *glfw.Window) Controls {
	enter := in.JustPressed(window, glfw.KeyEnter)
	backspace := in.JustPressed(window, glfw.KeyBackspace)
	return Controls{
		Confirm: in.JustPressed(window, glfw.KeySpace),
		Back:    enter || backspace,
		Tone:    in.JustPressed(window, glfw.KeyT),
		Quit:    window.GetKey(glfw.KeyEscape) == glfw.Press,
	}
}
