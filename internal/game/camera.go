package game

import "racer/internal/physics"

// Camera maps world pixels to window pixels 1:1 through a clamped offset.
type Camera struct {
	Offset       physics.Vec2 // world position of the window's top-left corner
	ViewW, ViewH float64      // window size
	MapW, MapH   float64

	// Screen shake.
	ShakeX, ShakeY float64 // current offset in world pixels
	ShakeTimer     float64 // remaining shake time
	ShakeIntensity float64 // max offset magnitude
}

func NewCamera(viewW, viewH int, mapBounds physics.Rect) *Camera {
	return &Camera{
		ViewW: float64(viewW),
		ViewH: float64(viewH),
		MapW:  mapBounds.W(),
		MapH:  mapBounds.H(),
	}
}

// Update centres the view on target and clamps it to the map. A map
// smaller than the view is centred instead.
func (c *Camera) Update(target physics.Rect) {
	ctr := target.Center()
	c.Offset.X = clampAxis(ctr.X-c.ViewW/2, c.ViewW, c.MapW)
	c.Offset.Y = clampAxis(ctr.Y-c.ViewH/2, c.ViewH, c.MapH)
}

func clampAxis(off, view, size float64) float64 {
	if size < view {
		return (size - view) / 2
	}
	return clampF(off, 0, size-view)
}

// Resize follows window size changes.
func (c *Camera) Resize(viewW, viewH int) {
	c.ViewW = float64(viewW)
	c.ViewH = float64(viewH)
}

// AddShake triggers screen shake with given intensity and duration.
func (c *Camera) AddShake(intensity, duration float64) {
	if intensity > c.ShakeIntensity {
		c.ShakeIntensity = intensity
	}
	if duration > c.ShakeTimer {
		c.ShakeTimer = duration
	}
}

// UpdateShake decays shake and computes random offsets.
func (c *Camera) UpdateShake(dt float64, seed uint64) {
	if c.ShakeTimer <= 0 {
		c.ShakeX = 0
		c.ShakeY = 0
		c.ShakeIntensity = 0
		return
	}
	c.ShakeTimer -= dt
	if c.ShakeTimer < 0 {
		c.ShakeTimer = 0
	}
	t := c.ShakeTimer
	jx, jy := jitter(seed ^ uint64(t*10000))
	mag := c.ShakeIntensity * (t / (t + 0.08))
	c.ShakeX = jx * mag
	c.ShakeY = jy * mag
}

// EffectiveOffset is the offset with shake applied. Rendering uses it.
func (c *Camera) EffectiveOffset() physics.Vec2 {
	return physics.Vec2{X: c.Offset.X + c.ShakeX, Y: c.Offset.Y + c.ShakeY}
}

func (c *Camera) WorldToScreen(p physics.Vec2) physics.Vec2 {
	return p.Sub(c.Offset)
}

func (c *Camera) WorldToScreenRect(r physics.Rect) physics.Rect {
	return r.Translate(physics.Vec2{X: -c.Offset.X, Y: -c.Offset.Y})
}

// View is the visible world rectangle.
func (c *Camera) View() physics.Rect {
	return physics.Rect{X0: c.Offset.X, Y0: c.Offset.Y, X1: c.Offset.X + c.ViewW, Y1: c.Offset.Y + c.ViewH}
}
