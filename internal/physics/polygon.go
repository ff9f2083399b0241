package physics

import (
	"errors"
	"math"
)

var (
	ErrTooFewPoints = errors.New("polygon needs at least 3 points")
	ErrInvalidPoint = errors.New("polygon point is not finite")
)

// Polygon is a simple polygon with a fixed winding order.
//
// points is the single source of truth. edges, diagonals and bounds are
// derived by Rebuild as fresh values and must be rebuilt after any
// mutation and before any overlap test. center is the mean of the points at
// construction time; after that it is translated by Move and left alone by
// Rotate, so it is state, not a derived value.
type Polygon struct {
	points    []Vec2
	center    Vec2
	edges     []Segment
	diagonals []Segment
	bounds    Rect

	Static      bool // never displaced by overlap resolution
	Overlapping bool // set by the collision scan, cleared after draw
}

func NewPolygon(points []Vec2, static bool) (*Polygon, error) {
	p := &Polygon{}
	if err := p.init(points, static); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Polygon) init(points []Vec2, static bool) error {
	if len(points) < 3 {
		return ErrTooFewPoints
	}
	for _, pt := range points {
		if !pt.IsFinite() {
			return ErrInvalidPoint
		}
	}
	p.points = append(make([]Vec2, 0, len(points)), points...)
	p.center = centroid(p.points)
	p.Static = static
	p.Rebuild()
	return nil
}

func centroid(points []Vec2) Vec2 {
	var sum Vec2
	for _, pt := range points {
		sum = sum.Add(pt)
	}
	return sum.Scale(1 / float64(len(points)))
}

// Rebuild recomputes edges, diagonals and bounds from points and center.
// Edge 0 closes the loop (last point to first), edge i joins point i-1 to i.
func (p *Polygon) Rebuild() {
	n := len(p.points)
	if cap(p.edges) < n {
		p.edges = make([]Segment, n)
		p.diagonals = make([]Segment, n)
	}
	p.edges = p.edges[:n]
	p.diagonals = p.diagonals[:n]

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i, pt := range p.points {
		prev := p.points[(i+n-1)%n]
		p.edges[i] = Segment{Start: prev, End: pt}
		p.diagonals[i] = Segment{Start: p.center, End: pt}

		minX = math.Min(minX, pt.X)
		maxX = math.Max(maxX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxY = math.Max(maxY, pt.Y)
	}
	p.bounds = Rect{X0: minX, Y0: minY, X1: maxX, Y1: maxY}
}

// Points returns a copy of the vertices.
func (p *Polygon) Points() []Vec2 {
	return append([]Vec2(nil), p.points...)
}

func (p *Polygon) Point(i int) Vec2 { return p.points[i] }
func (p *Polygon) Len() int         { return len(p.points) }
func (p *Polygon) Center() Vec2     { return p.center }
func (p *Polygon) Bounds() Rect     { return p.bounds }

// Edges and Diagonals return the segments built by the last Rebuild.
// The slices are reused on the next Rebuild.
func (p *Polygon) Edges() []Segment     { return p.edges }
func (p *Polygon) Diagonals() []Segment { return p.diagonals }

// Move translates the center and every vertex by delta.
func (p *Polygon) Move(delta Vec2) {
	p.center = p.center.Add(delta)
	for i := range p.points {
		p.points[i] = p.points[i].Add(delta)
	}
}

// MoveTo moves the polygon so that its center lands on target.
func (p *Polygon) MoveTo(target Vec2) {
	p.Move(target.Sub(p.center))
}

// Rotate turns every vertex about the center. The center is the pivot and
// does not change.
func (p *Polygon) Rotate(angle float64) {
	for i := range p.points {
		RotatePoint(&p.points[i], p.center, angle)
	}
}

// SetPivot moves the center without touching the vertices.
func (p *Polygon) SetPivot(c Vec2) {
	p.center = c
}

// Overlaps probes every diagonal of p against every edge of other and
// reports the first crossing, diagonals in point order on the outside and
// edges in construction order on the inside. Only one contact is resolved
// per call, so this order is the tie-break between simultaneous contacts.
func (p *Polygon) Overlaps(other *Polygon) (Vec2, bool) {
	for _, diag := range p.diagonals {
		for _, edge := range other.edges {
			if d, ok := diag.Intersect(edge); ok {
				return d, true
			}
		}
	}
	return Vec2{}, false
}

// ResolveOverlap pushes p and other apart along the first contact found by
// Overlaps. Static participants stay where they are; moved ones are rebuilt.
func (p *Polygon) ResolveOverlap(other *Polygon) bool {
	d, ok := p.Overlaps(other)
	if !ok {
		return false
	}
	p.applyDisplacement(other, d)
	return true
}

func (p *Polygon) applyDisplacement(other *Polygon, d Vec2) {
	if !p.Static {
		p.Move(d)
		p.Rebuild()
	}
	if !other.Static {
		other.Move(d.Scale(-1))
		other.Rebuild()
	}
}
