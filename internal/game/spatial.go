package game

import "racer/internal/physics"

type quadItem struct {
	e      *physics.Entity
	bounds physics.Rect
}

// QuadNode is a simple quadtree for view culling of static obstacles.
type QuadNode struct {
	bounds physics.Rect
	depth  int
	items  []quadItem
	child  [4]*QuadNode
}

func NewQuadNode(bounds physics.Rect, depth int) *QuadNode {
	return &QuadNode{
		bounds: bounds,
		depth:  depth,
		items:  make([]quadItem, 0, QuadCapacity),
	}
}

func (n *QuadNode) Insert(e *physics.Entity, bounds physics.Rect) {
	if n.child[0] != nil {
		if c := n.childThatContains(bounds); c != nil {
			c.Insert(e, bounds)
			return
		}
	}

	n.items = append(n.items, quadItem{e: e, bounds: bounds})

	if len(n.items) > QuadCapacity && n.depth < QuadMaxDepth {
		n.subdivide()
		kept := n.items[:0]
		for _, it := range n.items {
			if c := n.childThatContains(it.bounds); c != nil {
				c.Insert(it.e, it.bounds)
			} else {
				kept = append(kept, it)
			}
		}
		n.items = kept
	}
}

// Query appends every entity whose bounds intersect r.
func (n *QuadNode) Query(r physics.Rect, out []*physics.Entity) []*physics.Entity {
	if !n.bounds.Intersects(r) {
		return out
	}
	for _, it := range n.items {
		if it.bounds.Intersects(r) {
			out = append(out, it.e)
		}
	}
	if n.child[0] == nil {
		return out
	}
	for i := 0; i < 4; i++ {
		out = n.child[i].Query(r, out)
	}
	return out
}

func (n *QuadNode) subdivide() {
	if n.child[0] != nil {
		return
	}
	b := n.bounds
	mx := (b.X0 + b.X1) * 0.5
	my := (b.Y0 + b.Y1) * 0.5
	n.child[0] = NewQuadNode(physics.Rect{X0: b.X0, Y0: b.Y0, X1: mx, Y1: my}, n.depth+1)
	n.child[1] = NewQuadNode(physics.Rect{X0: mx, Y0: b.Y0, X1: b.X1, Y1: my}, n.depth+1)
	n.child[2] = NewQuadNode(physics.Rect{X0: b.X0, Y0: my, X1: mx, Y1: b.Y1}, n.depth+1)
	n.child[3] = NewQuadNode(physics.Rect{X0: mx, Y0: my, X1: b.X1, Y1: b.Y1}, n.depth+1)
}

func (n *QuadNode) childThatContains(b physics.Rect) *QuadNode {
	for i := 0; i < 4; i++ {
		c := n.child[i]
		if c != nil && c.bounds.Contains(b) {
			return c
		}
	}
	return nil
}

// StaticIndex holds the static obstacles of a scene. Static shapes never
// move, so it is built once per session.
func StaticIndex(s *physics.Scene, mapBounds physics.Rect) *QuadNode {
	root := NewQuadNode(mapBounds, 0)
	for _, e := range s.Entities() {
		if e.Kind == physics.KindObstacle && e.Poly().Static {
			root.Insert(e, e.Poly().Bounds())
		}
	}
	return root
}

// Visible returns the entities to draw this frame: indexed static
// obstacles in view plus every dynamic entity in view, in scene order
// for the dynamic ones.
func Visible(s *physics.Scene, idx *QuadNode, view physics.Rect, out []*physics.Entity) []*physics.Entity {
	out = out[:0]
	out = idx.Query(view, out)
	for _, e := range s.Entities() {
		p := e.Poly()
		if p.Static && e.Kind == physics.KindObstacle {
			continue
		}
		if p.Bounds().Intersects(view) {
			out = append(out, e)
		}
	}
	return out
}
