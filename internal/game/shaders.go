package game

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Quad vertex shader: a unit quad scaled, rotated about its centre and
// placed in world space. Used for the track surface and the car sprite.
const quadVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos; // 0..1 quad vertex

uniform vec2 uCenter;
uniform vec2 uSize;
uniform float uRotation;
uniform vec2 uOffset;
uniform vec2 uResolution;

out vec2 vUV;

void main() {
    vUV = aPos;
    vec2 local = (aPos - 0.5) * uSize;
    float c = cos(uRotation);
    float s = sin(uRotation);
    vec2 rot = vec2(c * local.x - s * local.y, s * local.x + c * local.y);
    vec2 screenPos = uCenter + rot - uOffset;
    vec2 ndc = (screenPos / uResolution) * 2.0 - 1.0;
    ndc.y = -ndc.y;
    gl_Position = vec4(ndc, 0.0, 1.0);
}
` + "\x00"

const quadFragSrc = `#version 410 core

uniform sampler2D uTex;

in vec2 vUV;
out vec4 FragColor;

void main() {
    vec4 t = texture(uTex, vUV);
    if (t.a < 0.01) discard;
    FragColor = t;
}
` + "\x00"

// Line vertex shader: world-space vertices with per-vertex colour.
const lineVertSrc = `#version 410 core

layout(location = 0) in vec2 aWorldPos;
layout(location = 1) in vec4 aColor;

uniform vec2 uOffset;
uniform vec2 uResolution;

out vec4 vColor;

void main() {
    vec2 screenPos = aWorldPos - uOffset;
    vec2 ndc = (screenPos / uResolution) * 2.0 - 1.0;
    ndc.y = -ndc.y;
    gl_Position = vec4(ndc, 0.0, 1.0);
    vColor = aColor;
}
` + "\x00"

const lineFragSrc = `#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
    FragColor = vColor;
}
` + "\x00"

// Particle vertex shader: square point sprites with per-vertex pos/size/colour.
// uScale converts window pixels to framebuffer pixels for the point size.
const particleVertSrc = `#version 410 core

layout(location = 0) in vec2 aWorldPos;
layout(location = 1) in float aSize;
layout(location = 2) in vec4 aColor;

uniform vec2 uOffset;
uniform vec2 uResolution;
uniform float uScale;

out vec4 vColor;

void main() {
    vec2 screenPos = aWorldPos - uOffset;
    vec2 ndc = (screenPos / uResolution) * 2.0 - 1.0;
    ndc.y = -ndc.y;
    gl_Position = vec4(ndc, 0.0, 1.0);
    gl_PointSize = max(1.0, floor(aSize * uScale + 0.5));
    vColor = aColor;
}
` + "\x00"

const particleFragSrc = `#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
    FragColor = vColor;
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
