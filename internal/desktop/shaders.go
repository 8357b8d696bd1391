package desktop

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// glslHeader is shared by every program. toClip applies the letterbox
// transform (screen = pos * uScale + uOffset) and flips y, since the game
// space grows downwards.
const glslHeader = `#version 410 core

uniform float uScale;
uniform vec2 uOffset;
uniform vec2 uResolution;

vec4 toClip(vec2 pos) {
    vec2 clip = (pos * uScale + uOffset) / uResolution * 2.0 - 1.0;
    return vec4(clip.x, -clip.y, 0.0, 1.0);
}
`

const shapeVertSrc = glslHeader + `
layout(location = 0) in vec2 aPos;
layout(location = 1) in vec4 aColor;
out vec4 vColor;

void main() {
    gl_Position = toClip(aPos);
    vColor = aColor;
}
` + "\x00"

const shapeFragSrc = `#version 410 core
in vec4 vColor;
out vec4 FragColor;
void main() { FragColor = vColor; }
` + "\x00"

// Point sprites, one vertex per particle: position, size in game units,
// colour and spin.
const spriteVertSrc = glslHeader + `
layout(location = 0) in vec2 aPos;
layout(location = 1) in float aSize;
layout(location = 2) in vec4 aColor;
layout(location = 3) in float aRotation;
out vec4 vColor;
out float vRotation;

void main() {
    gl_Position = toClip(aPos);
    gl_PointSize = max(1.0, round(aSize * uScale));
    vColor = aColor;
    vRotation = aRotation;
}
` + "\x00"

// Debris chips: a square spun inside the point.
const spriteFragSrc = `#version 410 core
in vec4 vColor;
in float vRotation;
out vec4 FragColor;

void main() {
    vec2 p = gl_PointCoord - 0.5;
    vec2 r = mat2(cos(vRotation), sin(vRotation), -sin(vRotation), cos(vRotation)) * p;
    if (max(abs(r.x), abs(r.y)) > 0.36) discard;
    FragColor = vColor;
}
` + "\x00"

// Glow: a bright core fading into a soft halo, drawn with additive
// blending. Colours arrive already scaled by brightness.
const glowFragSrc = `#version 410 core
in vec4 vColor;
out vec4 FragColor;

void main() {
    float d = length(gl_PointCoord - 0.5) * 2.0;
    float halo = 1.0 - smoothstep(0.0, 1.0, d);
    float core = 1.0 - smoothstep(0.0, 0.3, d);
    FragColor = vec4(vColor.rgb * (halo * halo + 0.5 * core), 1.0);
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}
