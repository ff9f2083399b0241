package game

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"racer/internal/physics"
)

// ParticleSprites appends the particles in view as point sprites.
// buf format: [x, y, size, r, g, b, a] * N (7 floats per sprite).
// Alpha is the remaining life scaled by opacity.
func ParticleSprites(ps *physics.ParticleSystem, view physics.Rect, opacity float64, buf []float32) []float32 {
	ps.Each(func(p *physics.Particle) {
		if len(buf)/7 >= MaxParticleRender || !p.Bounds().Intersects(view) {
			return
		}
		c := rgba(p.Col, float32(p.Alpha()*opacity))
		buf = append(buf, float32(p.Pos.X), float32(p.Pos.Y), float32(p.Size), c[0], c[1], c[2], c[3])
	})
	return buf
}

// DrawParticles renders skid marks with standard alpha blending.
// scale is framebuffer pixels per window pixel.
func (r *Renderer) DrawParticles(ps *physics.ParticleSystem, view physics.Rect, opacity float64, scale float32) {
	r.partBuf = ParticleSprites(ps, view, opacity, r.partBuf[:0])
	if len(r.partBuf) == 0 {
		return
	}
	count := len(r.partBuf) / 7

	gl.UseProgram(r.partProg)
	gl.BindVertexArray(r.partVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.partVBO)
	gl.Uniform2f(r.partUOffset, float32(r.offset.X), float32(r.offset.Y))
	gl.Uniform2f(r.partUResolution, r.resW, r.resH)
	gl.Uniform1f(r.partUScale, scale)

	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.BufferSubData(gl.ARRAY_BUFFER, 0, count*7*4, gl.Ptr(r.partBuf))
	gl.DrawArrays(gl.POINTS, 0, int32(count))

	gl.Disable(gl.BLEND)
}

// DrawLines renders a line list built by LineBatch.
func (r *Renderer) DrawLines(lb *LineBatch) {
	if lb.Len() == 0 {
		return
	}
	count := lb.Len()

	gl.UseProgram(r.lineProg)
	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.Uniform2f(r.lineUOffset, float32(r.offset.X), float32(r.offset.Y))
	gl.Uniform2f(r.lineUResolution, r.resW, r.resH)

	gl.BufferSubData(gl.ARRAY_BUFFER, 0, count*6*4, gl.Ptr(lb.buf))
	gl.DrawArrays(gl.LINES, 0, int32(count))
}
