// Package desktop hosts the game in a glfw window: it owns the frame
// loop, keyboard input and the OpenGL renderer.
package desktop

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"pitchspace/internal/game"
	"pitchspace/internal/scene"
)

type Options struct {
	Sensor game.Sensor         // nil runs without pitch control
	Store  game.HighScoreStore // nil keeps no high score across runs
	Sounds SoundPlayer         // nil is silent
	Seed   uint64
	Logger *slog.Logger
}

// Run opens the window and runs the game until the window closes or
// escape is pressed. It must be called from the main goroutine.
func Run(opts Options) error {
	runtime.LockOSThread()

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	sounds := opts.Sounds
	if sounds == nil {
		sounds = silence{}
	}

	window, err := initWindow()
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Debug("gl ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	session := game.NewSession(opts.Sensor, opts.Store, game.NewRand(opts.Seed), log)
	defer session.Close()
	wireSounds(session.Events, sounds)

	input := NewInput()
	clock := game.NewStopwatch(glfw.GetTime)
	var geom scene.Geometry
	title := windowTitle

	for !window.ShouldClose() {
		dt := clock.Lap()

		glfw.PollEvents()
		c := input.Poll(window)
		if c.Quit {
			window.SetShouldClose(true)
			continue
		}

		apply(session, c, sounds, log)
		session.Tick(dt)

		f := session.Frame()
		if t := Title(f); t != title {
			window.SetTitle(t)
			title = t
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}
		scene.BuildInto(&geom, f)
		rend.Draw(&geom, fitView(fbW, fbH))
		window.SwapBuffers()
	}
	return nil
}
