package track

import (
	"image"
	"image/color"
	"runtime"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
)

// Seed is the deterministic noise seed of a track.
func Seed(name string) uint64 { return xxhash.Sum64String(name) }

func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// hash2D returns a deterministic 64-bit hash for (x,y) under the given seed.
func hash2D(seed uint64, x, y int) uint64 {
	h := seed
	h ^= uint64(uint32(x)) * 0x9E3779B185EBCA87
	h ^= uint64(uint32(y)) * 0xC2B2AE3D27D4EB4F
	return splitmix64(h)
}

// jitter maps a hash to [-1, 1).
func jitter(h uint64) float64 {
	return float64(h>>11)*(2.0/(1<<53)) - 1
}

func shade(c [3]uint8, k float64) color.RGBA {
	ch := func(v uint8) uint8 {
		f := float64(v) + k*255
		if f < 0 {
			return 0
		}
		if f > 255 {
			return 255
		}
		return uint8(f)
	}
	return color.RGBA{R: ch(c[0]), G: ch(c[1]), B: ch(c[2]), A: 255}
}

// rasterize paints every tile with its palette colour plus per-pixel
// brightness noise. Row bands are filled concurrently.
func rasterize(f *file, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	seed := Seed(f.Name)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for ty := range f.Rows {
		row := f.Rows[ty]
		g.Go(func() error {
			tiles := make([][3]uint8, len(row))
			for i := range tiles {
				tiles[i] = f.Palette[string(row[i])]
			}
			y0 := ty * f.TileHeight
			for y := y0; y < y0+f.TileHeight; y++ {
				off := img.PixOffset(0, y)
				for x := 0; x < w; x++ {
					c := shade(tiles[x/f.TileWidth], f.Noise*jitter(hash2D(seed, x, y)))
					img.Pix[off+0] = c.R
					img.Pix[off+1] = c.G
					img.Pix[off+2] = c.B
					img.Pix[off+3] = c.A
					off += 4
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	return img
}
