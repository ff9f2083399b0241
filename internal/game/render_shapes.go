package game

import "racer/internal/physics"

// LineBatch collects coloured line segments for one draw call.
// Vertex format: [x, y, r, g, b, a], two vertices per segment.
type LineBatch struct {
	buf []float32
}

func (lb *LineBatch) Reset() { lb.buf = lb.buf[:0] }

// Len is the vertex count.
func (lb *LineBatch) Len() int { return len(lb.buf) / 6 }

// Segment appends one segment. It is dropped once the batch is full.
func (lb *LineBatch) Segment(a, b physics.Vec2, col physics.RGB) {
	if lb.Len()+2 > MaxLineVerts {
		return
	}
	c := rgba(col, 1)
	lb.buf = append(lb.buf,
		float32(a.X), float32(a.Y), c[0], c[1], c[2], c[3],
		float32(b.X), float32(b.Y), c[0], c[1], c[2], c[3],
	)
}

// Loop appends the closed outline through pts.
func (lb *LineBatch) Loop(pts []physics.Vec2, col physics.RGB) {
	for i := range pts {
		j := i - 1
		if j < 0 {
			j = len(pts) - 1
		}
		lb.Segment(pts[j], pts[i], col)
	}
}

func (lb *LineBatch) Rect(r physics.Rect, col physics.RGB) {
	lb.Loop([]physics.Vec2{
		{X: r.X0, Y: r.Y0}, {X: r.X1, Y: r.Y0},
		{X: r.X1, Y: r.Y1}, {X: r.X0, Y: r.Y1},
	}, col)
}

// Shape appends the overlay of one polygon: the outline (red while
// overlapping), the pivot, and optionally the bounding box and the
// debug diagonals.
func (lb *LineBatch) Shape(p *physics.Polygon, bounds, debug bool) {
	col := Palette.Outline
	if p.Overlapping {
		col = Palette.Overlap
	}
	for _, e := range p.Edges() {
		lb.Segment(e.Start, e.End, col)
	}
	lb.Loop(physics.RegularPolygon(p.Center(), 12, PivotRadius, 0), Palette.Pivot)
	if bounds {
		lb.Rect(p.Bounds(), Palette.Bounds)
	}
	if debug {
		for _, d := range p.Diagonals() {
			lb.Segment(d.Start, d.End, Palette.Diagonal)
		}
	}
}

// SceneOverlay rebuilds lb for the visible entities. The vehicle body is
// only outlined in debug mode; the sprite covers it otherwise.
func SceneOverlay(lb *LineBatch, visible []*physics.Entity, bounds, debug bool) {
	lb.Reset()
	for _, e := range visible {
		if e.Kind == physics.KindVehicle && !debug {
			p := e.Poly()
			lb.Loop(physics.RegularPolygon(p.Center(), 12, PivotRadius, 0), Palette.Pivot)
			if bounds {
				lb.Rect(p.Bounds(), Palette.Bounds)
			}
			continue
		}
		lb.Shape(e.Poly(), bounds, debug)
	}
}
