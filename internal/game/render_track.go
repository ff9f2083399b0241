package game

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"racer/internal/physics"
)

// SurfaceChunk is one square slice of the track surface texture.
type SurfaceChunk struct {
	Tex    uint32
	Bounds physics.Rect
	Pixels []uint8
}

// SliceSurface cuts img into SurfaceChunkSize squares, row-major. Edge
// chunks are padded with transparent texels.
func SliceSurface(img *image.RGBA) []SurfaceChunk {
	b := img.Bounds()
	var out []SurfaceChunk
	for y0 := b.Min.Y; y0 < b.Max.Y; y0 += SurfaceChunkSize {
		for x0 := b.Min.X; x0 < b.Max.X; x0 += SurfaceChunkSize {
			pix := make([]uint8, SurfaceChunkSize*SurfaceChunkSize*4)
			w := min(SurfaceChunkSize, b.Max.X-x0)
			h := min(SurfaceChunkSize, b.Max.Y-y0)
			for y := 0; y < h; y++ {
				src := img.PixOffset(x0, y0+y)
				copy(pix[y*SurfaceChunkSize*4:], img.Pix[src:src+w*4])
			}
			out = append(out, SurfaceChunk{
				Pixels: pix,
				Bounds: physics.Rect{
					X0: float64(x0), Y0: float64(y0),
					X1: float64(x0 + SurfaceChunkSize), Y1: float64(y0 + SurfaceChunkSize),
				},
			})
		}
	}
	return out
}

// UploadSurface slices the track image and creates one texture per chunk.
// Pixel data is dropped once it lives on the GPU.
func (r *Renderer) UploadSurface(img *image.RGBA) {
	r.releaseSurface()
	r.chunks = SliceSurface(img)
	for i := range r.chunks {
		c := &r.chunks[i]
		c.Tex = newTexture(SurfaceChunkSize, SurfaceChunkSize, c.Pixels)
		c.Pixels = nil
	}
}

func (r *Renderer) releaseSurface() {
	for i := range r.chunks {
		if r.chunks[i].Tex != 0 {
			gl.DeleteTextures(1, &r.chunks[i].Tex)
		}
	}
	r.chunks = nil
}

// DrawSurface renders the surface chunks that intersect view.
func (r *Renderer) DrawSurface(view physics.Rect) {
	for i := range r.chunks {
		c := &r.chunks[i]
		if c.Tex == 0 || !c.Bounds.Intersects(view) {
			continue
		}
		r.drawQuad(c.Tex, c.Bounds.Center(), SurfaceChunkSize, SurfaceChunkSize, 0)
	}
}
