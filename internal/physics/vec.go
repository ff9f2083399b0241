package physics

import "math"

// Vec2 is a 2D vector in world-pixel space. Y grows downwards.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec2) Scale(k float64) Vec2 { return Vec2{X: v.X * k, Y: v.Y * k} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalize returns the unit vector. The zero vector stays zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Rotate returns v rotated about the origin by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{X: v.X*c - v.Y*s, Y: v.Y*c + v.X*s}
}

// RotateDeg is Rotate with the angle in degrees.
func (v Vec2) RotateDeg(deg float64) Vec2 {
	return v.Rotate(deg * math.Pi / 180)
}

func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// RotatePoint rotates p about center by angle radians, in place.
func RotatePoint(p *Vec2, center Vec2, angle float64) {
	*p = p.Sub(center).Rotate(angle).Add(center)
}

// RegularPolygon returns sides vertices evenly spaced on a circle of radius
// around center. rotationDeg turns the whole shape clockwise in screen space.
func RegularPolygon(center Vec2, sides int, radius, rotationDeg float64) []Vec2 {
	if sides <= 0 {
		return nil
	}
	pts := make([]Vec2, sides)
	for i := range pts {
		deg := 360/float64(sides)*float64(i) - rotationDeg
		rad := deg * math.Pi / 180
		pts[i] = Vec2{X: center.X + radius*math.Cos(rad), Y: center.Y + radius*math.Sin(rad)}
	}
	return pts
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }
