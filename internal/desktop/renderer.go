package desktop

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"pitchspace/internal/game"
	"pitchspace/internal/scene"
)

// maxSprites caps one draw call: every live particle plus the star field.
const maxSprites = game.MaxParticleRender + 512

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type viewUniforms struct {
	scale      int32
	offset     int32
	resolution int32
}

func lookupView(prog uint32) viewUniforms {
	return viewUniforms{
		scale:      gl.GetUniformLocation(prog, gl.Str("uScale\x00")),
		offset:     gl.GetUniformLocation(prog, gl.Str("uOffset\x00")),
		resolution: gl.GetUniformLocation(prog, gl.Str("uResolution\x00")),
	}
}

func (u viewUniforms) set(v View) {
	gl.Uniform1f(u.scale, float32(v.Scale))
	gl.Uniform2f(u.offset, float32(v.OffsetX), float32(v.OffsetY))
	gl.Uniform2f(u.resolution, float32(v.FbW), float32(v.FbH))
}

type Renderer struct {
	// Triangle program.
	shapeProg uint32
	shapeVAO  uint32
	shapeVBO  uint32
	shapeU    viewUniforms

	// Point sprite programs share one VAO.
	spriteProg uint32
	glowProg   uint32
	spriteVAO  uint32
	spriteVBO  uint32
	spriteU    viewUniforms
	glowU      viewUniforms
}

func NewRenderer() (*Renderer, error) {
	shapeProg, err := linkProgram(shapeVertSrc, shapeFragSrc)
	if err != nil {
		return nil, fmt.Errorf("shape program: %w", err)
	}
	spriteProg, err := linkProgram(spriteVertSrc, spriteFragSrc)
	if err != nil {
		gl.DeleteProgram(shapeProg)
		return nil, fmt.Errorf("sprite program: %w", err)
	}
	glowProg, err := linkProgram(spriteVertSrc, glowFragSrc)
	if err != nil {
		gl.DeleteProgram(shapeProg)
		gl.DeleteProgram(spriteProg)
		return nil, fmt.Errorf("glow program: %w", err)
	}

	r := &Renderer{
		shapeProg:  shapeProg,
		spriteProg: spriteProg,
		glowProg:   glowProg,
		shapeU:     lookupView(shapeProg),
		spriteU:    lookupView(spriteProg),
		glowU:      lookupView(glowProg),
	}

	// Shape VAO/VBO: x, y, r, g, b, a per vertex.
	gl.GenVertexArrays(1, &r.shapeVAO)
	gl.GenBuffers(1, &r.shapeVBO)
	gl.BindVertexArray(r.shapeVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.shapeVBO)
	stride := int32(scene.VertexStride * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, glOffset(2*4))

	// Sprite VAO/VBO: x, y, size, r, g, b, a, rotation per sprite.
	gl.GenVertexArrays(1, &r.spriteVAO)
	gl.GenBuffers(1, &r.spriteVBO)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)
	stride = int32(scene.SpriteStride * 4)
	gl.BufferData(gl.ARRAY_BUFFER, maxSprites*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, stride, glOffset(7*4))

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.shapeVBO, r.spriteVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.shapeVAO, r.spriteVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.shapeProg, r.spriteProg, r.glowProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
}

// BeginFrame clears the letterbox bars to black and the playfield to space.
func (r *Renderer) BeginFrame(v View) {
	gl.Viewport(0, 0, int32(v.FbW), int32(v.FbH))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	sr, sg, sb := game.Palette.Space.Float()
	x, y, w, h := v.scissor()
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(x, y, w, h)
	gl.ClearColor(sr, sg, sb, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// EndFrame drops the playfield clip.
func (r *Renderer) EndFrame() {
	gl.Disable(gl.SCISSOR_TEST)
}

// Draw renders one frame of scene geometry back to front.
func (r *Renderer) Draw(g *scene.Geometry, v View) {
	r.BeginFrame(v)
	r.DrawSprites(g.Stars, v)
	r.DrawTriangles(g.Tris, v)
	r.DrawSprites(g.Sprites, v)
	r.DrawGlowSprites(g.Glow, v)
	r.EndFrame()
}

// DrawTriangles renders flat-coloured triangles.
// buf format: [x, y, r, g, b, a] per vertex, three vertices per triangle.
func (r *Renderer) DrawTriangles(buf []float32, v View) {
	count := len(buf) / scene.VertexStride
	if count == 0 {
		return
	}
	gl.UseProgram(r.shapeProg)
	gl.BindVertexArray(r.shapeVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.shapeVBO)
	r.shapeU.set(v)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.BufferData(gl.ARRAY_BUFFER, count*scene.VertexStride*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))
	gl.Disable(gl.BLEND)
}

// DrawSprites renders alpha-blended point sprites.
// buf format: [x, y, size, r, g, b, a, rotation] * N.
func (r *Renderer) DrawSprites(buf []float32, v View) {
	r.drawPoints(r.spriteProg, r.spriteU, buf, v, false)
}

// DrawGlowSprites renders light sprites with additive blending and radial falloff.
// RGB values should be pre-multiplied by desired brightness.
func (r *Renderer) DrawGlowSprites(buf []float32, v View) {
	r.drawPoints(r.glowProg, r.glowU, buf, v, true)
}

func (r *Renderer) drawPoints(prog uint32, u viewUniforms, buf []float32, v View, additive bool) {
	count := len(buf) / scene.SpriteStride
	if count == 0 {
		return
	}
	if count > maxSprites {
		count = maxSprites
	}

	gl.UseProgram(prog)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)
	u.set(v)

	gl.Enable(gl.BLEND)
	if additive {
		gl.BlendFunc(gl.ONE, gl.ONE)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
	gl.BufferData(gl.ARRAY_BUFFER, count*scene.SpriteStride*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))
	gl.Disable(gl.BLEND)
}
