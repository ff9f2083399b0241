package game

import "racer/internal/physics"

func mulRGB(c physics.RGB, k uint8) physics.RGB {
	return physics.RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

func addRGB(c physics.RGB, dr, dg, db int) physics.RGB {
	ch := func(v, d int) uint8 {
		v += d
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	return physics.RGB{R: ch(int(c.R), dr), G: ch(int(c.G), dg), B: ch(int(c.B), db)}
}

// rgba converts a colour to shader floats.
func rgba(c physics.RGB, a float32) [4]float32 {
	return [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, a}
}

var Palette = struct {
	Clear    physics.RGB
	Outline  physics.RGB
	Overlap  physics.RGB
	Pivot    physics.RGB
	Bounds   physics.RGB
	Diagonal physics.RGB
	CarBody  physics.RGB
	CarGlass physics.RGB
	CarLight physics.RGB
	CarTail  physics.RGB
}{
	Clear:    physics.RGB{R: 50, G: 100, B: 20},
	Outline:  physics.RGB{R: 255, G: 255, B: 255},
	Overlap:  physics.RGB{R: 255, G: 0, B: 0},
	Pivot:    physics.RGB{R: 255, G: 0, B: 0},
	Bounds:   physics.RGB{R: 255, G: 255, B: 255},
	Diagonal: physics.RGB{R: 255, G: 220, B: 60},
	CarBody:  physics.RGB{R: 196, G: 32, B: 36},
	CarGlass: physics.RGB{R: 120, G: 150, B: 170},
	CarLight: physics.RGB{R: 255, G: 240, B: 180},
	CarTail:  physics.RGB{R: 120, G: 10, B: 10},
}
