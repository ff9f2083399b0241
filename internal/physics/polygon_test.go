package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x, y, size float64) []Vec2 {
	return []Vec2{V(x, y), V(x+size, y), V(x+size, y+size), V(x, y+size)}
}

func mustPolygon(t *testing.T, pts []Vec2, static bool) *Polygon {
	t.Helper()
	p, err := NewPolygon(pts, static)
	require.NoError(t, err)
	return p
}

func signedArea(pts []Vec2) float64 {
	a := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return a / 2
}

// firstHit returns the indices of the diagonal and edge Overlaps stops at.
func firstHit(a, b *Polygon) (int, int, bool) {
	for i, d := range a.Diagonals() {
		for j, e := range b.Edges() {
			if _, ok := d.Intersect(e); ok {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

func TestNewPolygonRejectsMalformedInput(t *testing.T) {
	_, err := NewPolygon([]Vec2{V(0, 0), V(1, 1)}, false)
	assert.ErrorIs(t, err, ErrTooFewPoints)

	_, err = NewPolygon(nil, true)
	assert.ErrorIs(t, err, ErrTooFewPoints)

	_, err = NewPolygon([]Vec2{V(0, 0), V(math.NaN(), 1), V(2, 0)}, false)
	assert.ErrorIs(t, err, ErrInvalidPoint)

	_, err = NewPolygon([]Vec2{V(0, 0), V(math.Inf(1), 1), V(2, 0)}, false)
	assert.ErrorIs(t, err, ErrInvalidPoint)
}

func TestNewPolygonDerivedState(t *testing.T) {
	in := square(0, 0, 10)
	p := mustPolygon(t, in, false)

	in[0] = V(-100, -100)
	assert.Equal(t, V(0, 0), p.Point(0), "input slice must be copied")

	assert.Equal(t, V(5, 5), p.Center())
	assert.Equal(t, Rect{X0: 0, Y0: 0, X1: 10, Y1: 10}, p.Bounds())

	edges := p.Edges()
	require.Len(t, edges, 4)
	assert.Equal(t, Segment{V(0, 10), V(0, 0)}, edges[0], "edge 0 closes the loop")
	assert.Equal(t, Segment{V(0, 0), V(10, 0)}, edges[1])
	assert.Equal(t, Segment{V(10, 10), V(0, 10)}, edges[3])

	diags := p.Diagonals()
	require.Len(t, diags, 4)
	for i, d := range diags {
		assert.Equal(t, p.Center(), d.Start)
		assert.Equal(t, p.Point(i), d.End)
	}
}

func TestPointsReturnsCopy(t *testing.T) {
	p := mustPolygon(t, square(0, 0, 10), false)
	pts := p.Points()
	pts[2] = V(99, 99)
	assert.Equal(t, V(10, 10), p.Point(2))
}

func TestTransformsPreserveCountAndWinding(t *testing.T) {
	shapes := map[string][]Vec2{
		"square":   square(0, 0, 10),
		"triangle": {V(0, 0), V(30, 5), V(10, 25)},
		"hexagon":  RegularPolygon(V(50, 50), 6, 20, 15),
	}
	for name, pts := range shapes {
		t.Run(name, func(t *testing.T) {
			p := mustPolygon(t, pts, false)
			area := signedArea(p.Points())

			p.Move(V(13, -7))
			p.Rotate(0.7)
			p.MoveTo(V(-40, 12))
			p.Rotate(-2.1)
			p.Move(V(0.5, 0.25))
			p.Rebuild()

			assert.Equal(t, len(pts), p.Len())
			assert.Len(t, p.Edges(), len(pts))
			assert.Len(t, p.Diagonals(), len(pts))
			assert.InDelta(t, area, signedArea(p.Points()), 1e-6, "rigid transforms keep area and winding")
			for i, e := range p.Edges() {
				assert.Equal(t, p.Point(i), e.End)
			}
		})
	}
}

func TestMoveTo(t *testing.T) {
	targets := []Vec2{V(0, 0), V(3105, 2260), V(-12.5, 7.25)}
	for _, target := range targets {
		p := mustPolygon(t, []Vec2{V(1, 1), V(9, 2), V(4, 8)}, false)
		p.MoveTo(target)
		assertVec(t, target, p.Center())
		assertVec(t, target, centroid(p.Points()), "vertices follow the center")
	}
}

func TestRotateIsInvertible(t *testing.T) {
	p := mustPolygon(t, RegularPolygon(V(20, 30), 5, 12, 0), false)
	before := p.Points()
	center := p.Center()

	for _, theta := range []float64{0.1, math.Pi / 3, -2.5, 7} {
		p.Rotate(theta)
		assertVec(t, center, p.Center(), "pivot is unchanged")
		p.Rotate(-theta)
	}
	for i, pt := range p.Points() {
		assert.InDelta(t, before[i].X, pt.X, 1e-9)
		assert.InDelta(t, before[i].Y, pt.Y, 1e-9)
	}
}

func TestDisjointPolygonsNeverOverlap(t *testing.T) {
	a := mustPolygon(t, square(0, 0, 10), false)
	others := [][]Vec2{
		square(20, 0, 10),
		square(0, 11, 5),
		square(-30, -30, 15),
		RegularPolygon(V(40, 40), 6, 8, 0),
	}
	for _, pts := range others {
		b := mustPolygon(t, pts, false)
		require.False(t, a.Bounds().Intersects(b.Bounds()))

		_, ok := a.Overlaps(b)
		assert.False(t, ok)
		_, ok = b.Overlaps(a)
		assert.False(t, ok)
		assert.False(t, a.ResolveOverlap(b))
		assert.Equal(t, V(5, 5), a.Center())
	}
}

func TestOverlappingSquares(t *testing.T) {
	a := mustPolygon(t, square(0, 0, 10), false)
	b := mustPolygon(t, square(5, 5, 10), false)
	aBefore, bBefore := a.Center(), b.Center()

	d, ok := a.Overlaps(b)
	require.True(t, ok)
	assert.NotZero(t, d.Len())
	// Diagonal towards (0,0) meets the closing edge of b first.
	assert.Equal(t, V(5, 5), d)
	assert.Equal(t, aBefore, a.Center(), "Overlaps does not mutate")

	require.True(t, a.ResolveOverlap(b))
	assertVec(t, aBefore.Add(d), a.Center())
	assertVec(t, bBefore.Sub(d), b.Center())

	// Along the displacement, a now sits further from b than before.
	sepBefore := aBefore.Sub(bBefore).Dot(d)
	sepAfter := a.Center().Sub(b.Center()).Dot(d)
	assert.Greater(t, sepAfter, sepBefore)
}

func TestResolveOverlapClearsTheContact(t *testing.T) {
	a := mustPolygon(t, square(0, 0, 10), false)
	b := mustPolygon(t, []Vec2{V(8, -20), V(30, -20), V(30, 30), V(8, 30)}, false)

	di, ei, ok := firstHit(a, b)
	require.True(t, ok)
	assert.Equal(t, 1, di)
	assert.Equal(t, 0, ei)

	d, _ := a.Overlaps(b)
	assertVec(t, V(-2, 2), d)

	require.True(t, a.ResolveOverlap(b))
	_, still := a.Diagonals()[di].Intersect(b.Edges()[ei])
	assert.False(t, still)
}

func TestStaticShapesStayPut(t *testing.T) {
	t.Run("static other", func(t *testing.T) {
		a := mustPolygon(t, square(0, 0, 10), false)
		wall := mustPolygon(t, square(5, 5, 10), true)
		wallCenter := wall.Center()
		wallPts := wall.Points()

		d, ok := a.Overlaps(wall)
		require.True(t, ok)
		require.True(t, a.ResolveOverlap(wall))

		assert.Equal(t, wallCenter, wall.Center())
		assert.Equal(t, wallPts, wall.Points())
		assertVec(t, V(5, 5).Add(d), a.Center())
	})

	t.Run("static self", func(t *testing.T) {
		wall := mustPolygon(t, square(0, 0, 10), true)
		b := mustPolygon(t, square(5, 5, 10), false)

		d, ok := wall.Overlaps(b)
		require.True(t, ok)
		require.True(t, wall.ResolveOverlap(b))

		assert.Equal(t, V(5, 5), wall.Center())
		assertVec(t, V(10, 10).Sub(d), b.Center())
	})

	t.Run("both static", func(t *testing.T) {
		a := mustPolygon(t, square(0, 0, 10), true)
		b := mustPolygon(t, square(5, 5, 10), true)
		require.True(t, a.ResolveOverlap(b))
		assert.Equal(t, V(5, 5), a.Center())
		assert.Equal(t, V(10, 10), b.Center())
	})
}

func TestSetPivotKeepsVertices(t *testing.T) {
	p := mustPolygon(t, square(0, 0, 10), false)
	p.SetPivot(V(10, 5))
	p.Rebuild()
	assert.Equal(t, square(0, 0, 10), p.Points())
	assert.Equal(t, V(10, 5), p.Diagonals()[0].Start)

	p.Rotate(math.Pi)
	assertVec(t, V(20, 10), p.Point(0))
}
