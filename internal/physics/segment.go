package physics

// Segment is a line segment between two points. Segments are always derived
// from polygon state and never stored independently.
type Segment struct {
	Start, End Vec2
}

func (s Segment) Dir() Vec2 { return s.End.Sub(s.Start) }

// Intersect runs the parametric line-line test of s against o.
//
// Both parameters share one denominator, the determinant of the two
// direction vectors. A zero determinant (parallel or degenerate segments)
// reports no intersection. On a hit the returned displacement is the
// unswept remainder of s, negated: translating s by it brings s.End back
// to the crossing point. With uA == 1 the displacement is zero.
func (s Segment) Intersect(o Segment) (Vec2, bool) {
	d := s.Dir()
	e := o.Dir()

	den := e.Y*d.X - e.X*d.Y
	if den == 0 {
		return Vec2{}, false
	}

	numA := e.X*(s.Start.Y-o.Start.Y) - e.Y*(s.Start.X-o.Start.X)
	numB := d.X*(s.Start.Y-o.Start.Y) - d.Y*(s.Start.X-o.Start.X)
	uA := numA / den
	uB := numB / den
	if uA < 0 || uA > 1 || uB < 0 || uB > 1 {
		return Vec2{}, false
	}
	return d.Scale(-(1 - uA)), true
}

// Rect is an axis-aligned rectangle in world-pixel space.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// Intersects reports a strict overlap: rectangles that only touch do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X0 < o.X1 && r.X1 > o.X0 && r.Y0 < o.Y1 && r.Y1 > o.Y0
}

func (r Rect) Contains(o Rect) bool {
	return o.X0 >= r.X0 && o.X1 <= r.X1 && o.Y0 >= r.Y0 && o.Y1 <= r.Y1
}

func (r Rect) W() float64 { return r.X1 - r.X0 }
func (r Rect) H() float64 { return r.Y1 - r.Y0 }

func (r Rect) Center() Vec2 {
	return Vec2{X: (r.X0 + r.X1) * 0.5, Y: (r.Y0 + r.Y1) * 0.5}
}

// Translate returns r shifted by d.
func (r Rect) Translate(d Vec2) Rect {
	return Rect{X0: r.X0 + d.X, Y0: r.Y0 + d.Y, X1: r.X1 + d.X, Y1: r.Y1 + d.Y}
}
