package game

import "racer/internal/physics"

// CarPixels paints the player car, nose towards +x: bumper, bonnet,
// windscreen, roof, rear window, boot. Headlights sit on the front corners
// and tail lights on the rear ones.
func CarPixels() []uint8 {
	pix := make([]uint8, CarTexW*CarTexH*4)
	set := func(x, y int, col physics.RGB) {
		i := (y*CarTexW + x) * 4
		pix[i+0] = col.R
		pix[i+1] = col.G
		pix[i+2] = col.B
		pix[i+3] = 255
	}

	body := Palette.CarBody
	roof := mulRGB(body, 180)
	trim := addRGB(body, -60, -20, -20)

	// Bands along the length, rear (x=0) to nose.
	for x := 0; x < CarTexW; x++ {
		var col physics.RGB
		switch {
		case x < 1:
			col = trim
		case x < 3:
			col = body
		case x < 5:
			col = Palette.CarGlass
		case x < 9:
			col = roof
		case x < 11:
			col = Palette.CarGlass
		case x < 15:
			col = body
		default:
			col = trim
		}
		for y := 0; y < CarTexH; y++ {
			set(x, y, col)
		}
	}

	for _, y := range []int{1, CarTexH - 2} {
		set(CarTexW-1, y, Palette.CarLight)
		set(0, y, Palette.CarTail)
	}
	return pix
}

// InitCarTexture uploads the player car sprite.
func (r *Renderer) InitCarTexture() {
	r.carTex = newTexture(CarTexW, CarTexH, CarPixels())
}

// DrawVehicle renders the car sprite over the body, rotated by the heading.
func (r *Renderer) DrawVehicle(v *physics.Vehicle) {
	if r.carTex == 0 {
		return
	}
	r.drawQuad(r.carTex, v.BodyCenter(), physics.VehicleLength, physics.VehicleWidth, float32(v.Heading))
}
