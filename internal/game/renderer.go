package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"racer/internal/physics"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type quadUniforms struct {
	center, size, rotation, offset, resolution, tex int32
}

type Renderer struct {
	// Textured quad program: surface chunks and the car sprite.
	quadProg uint32
	quadVAO  uint32
	quadVBO  uint32
	quadU    quadUniforms

	// Line program: outlines, bounding boxes, pivots and the debug overlay.
	lineProg        uint32
	lineVAO         uint32
	lineVBO         uint32
	lineUOffset     int32
	lineUResolution int32

	// Particle program: skid marks as point sprites.
	partProg        uint32
	partVAO         uint32
	partVBO         uint32
	partUOffset     int32
	partUResolution int32
	partUScale      int32

	chunks []SurfaceChunk
	carTex uint32

	// Per-frame view state.
	offset physics.Vec2
	resW   float32
	resH   float32

	partBuf []float32
}

func NewRenderer() (*Renderer, error) {
	quadProg, err := linkProgram(quadVertSrc, quadFragSrc)
	if err != nil {
		return nil, fmt.Errorf("quad program: %w", err)
	}
	lineProg, err := linkProgram(lineVertSrc, lineFragSrc)
	if err != nil {
		gl.DeleteProgram(quadProg)
		return nil, fmt.Errorf("line program: %w", err)
	}
	partProg, err := linkProgram(particleVertSrc, particleFragSrc)
	if err != nil {
		gl.DeleteProgram(quadProg)
		gl.DeleteProgram(lineProg)
		return nil, fmt.Errorf("particle program: %w", err)
	}

	r := &Renderer{
		quadProg: quadProg,
		lineProg: lineProg,
		partProg: partProg,
	}

	// Quad VAO/VBO: a unit quad (6 vertices, 2 triangles).
	gl.GenVertexArrays(1, &r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	quadVerts := [12]float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVerts)*4, gl.Ptr(&quadVerts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))

	gl.UseProgram(quadProg)
	r.quadU = quadUniforms{
		center:     gl.GetUniformLocation(quadProg, gl.Str("uCenter\x00")),
		size:       gl.GetUniformLocation(quadProg, gl.Str("uSize\x00")),
		rotation:   gl.GetUniformLocation(quadProg, gl.Str("uRotation\x00")),
		offset:     gl.GetUniformLocation(quadProg, gl.Str("uOffset\x00")),
		resolution: gl.GetUniformLocation(quadProg, gl.Str("uResolution\x00")),
		tex:        gl.GetUniformLocation(quadProg, gl.Str("uTex\x00")),
	}
	gl.Uniform1i(r.quadU.tex, 0)

	// Line VAO/VBO: streaming buffer, 6 floats per vertex (x, y, r, g, b, a).
	gl.GenVertexArrays(1, &r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	lineStride := int32(6 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, MaxLineVerts*int(lineStride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, lineStride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, lineStride, glOffset(2*4))

	gl.UseProgram(lineProg)
	r.lineUOffset = gl.GetUniformLocation(lineProg, gl.Str("uOffset\x00"))
	r.lineUResolution = gl.GetUniformLocation(lineProg, gl.Str("uResolution\x00"))

	// Particle VAO/VBO: 7 floats per sprite (x, y, size, r, g, b, a).
	gl.GenVertexArrays(1, &r.partVAO)
	gl.GenBuffers(1, &r.partVBO)
	gl.BindVertexArray(r.partVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.partVBO)
	partStride := int32(7 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, MaxParticleRender*int(partStride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, partStride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, partStride, glOffset(2*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, partStride, glOffset(3*4))

	gl.UseProgram(partProg)
	r.partUOffset = gl.GetUniformLocation(partProg, gl.Str("uOffset\x00"))
	r.partUResolution = gl.GetUniformLocation(partProg, gl.Str("uResolution\x00"))
	r.partUScale = gl.GetUniformLocation(partProg, gl.Str("uScale\x00"))

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.quadVBO, r.lineVBO, r.partVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.quadVAO, r.lineVAO, r.partVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.quadProg, r.lineProg, r.partProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	r.releaseSurface()
	if r.carTex != 0 {
		gl.DeleteTextures(1, &r.carTex)
	}
}

// BeginFrame clears the framebuffer and fixes the view for this frame.
// Drawing happens in window pixels; fbW/fbH only size the viewport.
func (r *Renderer) BeginFrame(cam *Camera, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	c := rgba(Palette.Clear, 1)
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	r.offset = cam.EffectiveOffset()
	r.resW = float32(cam.ViewW)
	r.resH = float32(cam.ViewH)
}

// newTexture uploads RGBA8 pixels with nearest filtering.
func newTexture(w, h int, pix []uint8) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	return tex
}

// drawQuad draws tex centred at c, rotated by angle radians.
func (r *Renderer) drawQuad(tex uint32, c physics.Vec2, w, h, angle float32) {
	gl.UseProgram(r.quadProg)
	gl.BindVertexArray(r.quadVAO)
	gl.Uniform2f(r.quadU.center, float32(c.X), float32(c.Y))
	gl.Uniform2f(r.quadU.size, w, h)
	gl.Uniform1f(r.quadU.rotation, angle)
	gl.Uniform2f(r.quadU.offset, float32(r.offset.X), float32(r.offset.Y))
	gl.Uniform2f(r.quadU.resolution, r.resW, r.resH)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}
