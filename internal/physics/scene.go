package physics

import (
	"errors"
	"math"

	"github.com/google/uuid"
)

var (
	ErrInvalidStep  = errors.New("frame step must be finite and non-negative")
	ErrSceneStopped = errors.New("scene is shut down")
)

// Kind tags a scene entity with its update variant.
type Kind uint8

const (
	KindObstacle Kind = iota
	KindVehicle
)

func (k Kind) String() string {
	switch k {
	case KindObstacle:
		return "obstacle"
	case KindVehicle:
		return "vehicle"
	}
	return "unknown"
}

// Entity is one registered shape. Exactly one of the variant pointers is set.
type Entity struct {
	ID   uuid.UUID
	Kind Kind
	Name string

	obstacle *Polygon
	vehicle  *Vehicle
}

// Poly returns the collision body regardless of variant.
func (e *Entity) Poly() *Polygon {
	if e.vehicle != nil {
		return e.vehicle.AsPolygon()
	}
	return e.obstacle
}

// Vehicle returns the vehicle, or nil for obstacles.
func (e *Entity) Vehicle() *Vehicle { return e.vehicle }

// Contact describes one resolved overlap. A is the entity whose diagonals
// probed, B the entity whose edge was crossed.
type Contact struct {
	A, B         *Entity
	Displacement Vec2
}

type SceneOption func(*Scene)

// WithMaxParticles caps the particle pool.
func WithMaxParticles(n int) SceneOption {
	return func(s *Scene) { s.particles = NewParticleSystem(n) }
}

// WithContactHandler registers fn as a contact hook at construction.
func WithContactHandler(fn func(Contact)) SceneOption {
	return func(s *Scene) { s.OnContact(fn) }
}

// Scene owns the shapes and particles of a session. Every entity is created
// and updated through it; insertion order is update and draw order.
type Scene struct {
	entities  []*Entity
	particles *ParticleSystem
	onContact []func(Contact)
	stopped   bool
	frame     uint64
}

func NewScene(opts ...SceneOption) *Scene {
	s := &Scene{}
	for _, o := range opts {
		o(s)
	}
	if s.particles == nil {
		s.particles = NewParticleSystem(MaxParticles)
	}
	return s
}

// Init resets the registry for a new session and rebuilds every shape.
func (s *Scene) Init() {
	s.stopped = false
	s.frame = 0
	s.particles.Clear()
	for _, e := range s.entities {
		p := e.Poly()
		p.Overlapping = false
		p.Rebuild()
	}
}

// Shutdown drops every entity and particle. Frame fails afterwards.
func (s *Scene) Shutdown() {
	s.stopped = true
	s.entities = nil
	s.particles.Clear()
}

func (s *Scene) OnContact(fn func(Contact)) {
	if fn != nil {
		s.onContact = append(s.onContact, fn)
	}
}

// AddObstacle registers a polygon obstacle built from points.
func (s *Scene) AddObstacle(name string, points []Vec2, static bool) (*Entity, error) {
	p, err := NewPolygon(points, static)
	if err != nil {
		return nil, err
	}
	e := &Entity{ID: uuid.New(), Kind: KindObstacle, Name: name, obstacle: p}
	s.entities = append(s.entities, e)
	return e, nil
}

func (s *Scene) AddVehicle(name string, v *Vehicle) *Entity {
	e := &Entity{ID: uuid.New(), Kind: KindVehicle, Name: name, vehicle: v}
	s.entities = append(s.entities, e)
	return e
}

// Remove deregisters e, keeping the order of the rest.
func (s *Scene) Remove(e *Entity) bool {
	for i, x := range s.entities {
		if x == e {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Scene) Entities() []*Entity        { return s.entities }
func (s *Scene) Particles() *ParticleSystem { return s.particles }
func (s *Scene) Emit(p Particle)            { s.particles.Add(p) }
func (s *Scene) FrameCount() uint64         { return s.frame }
func (s *Scene) Lookup(p *Polygon) *Entity  { return s.entityOf(p) }
func (s *Scene) Len() int                   { return len(s.entities) }
func (s *Scene) Stopped() bool              { return s.stopped }

// Vehicle returns the first registered vehicle, or nil.
func (s *Scene) Vehicle() *Vehicle {
	for _, e := range s.entities {
		if e.vehicle != nil {
			return e.vehicle
		}
	}
	return nil
}

// ClearOverlap resets the per-frame overlap flags once the frame is drawn.
func (s *Scene) ClearOverlap() {
	for _, e := range s.entities {
		e.Poly().Overlapping = false
	}
}

// Frame advances the simulation by dt: every entity in insertion order,
// then particle decay.
func (s *Scene) Frame(dt float64, ctl Controls) error {
	if s.stopped {
		return ErrSceneStopped
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return ErrInvalidStep
	}
	s.frame++

	// Entities may not register or deregister during the pass.
	for _, e := range s.entities {
		switch e.Kind {
		case KindVehicle:
			e.vehicle.Update(dt, ctl, s)
		default:
			s.scan(e.obstacle)
		}
	}
	s.particles.Update(dt)
	return nil
}

func (s *Scene) entityOf(p *Polygon) *Entity {
	for _, e := range s.entities {
		if e.Poly() == p {
			return e
		}
	}
	return nil
}

// scan rebuilds self and resolves its overlaps against every other shape
// whose bounding box it touches. The box test is the only broad phase.
func (s *Scene) scan(self *Polygon) {
	self.Rebuild()
	var selfEntity *Entity
	for _, e := range s.entities {
		other := e.Poly()
		if other == self {
			selfEntity = e
			continue
		}
		if !self.bounds.Intersects(other.bounds) {
			continue
		}
		d, ok := self.Overlaps(other)
		if !ok {
			continue
		}
		self.Overlapping = true
		other.Overlapping = true
		self.applyDisplacement(other, d)
		if len(s.onContact) > 0 {
			if selfEntity == nil {
				selfEntity = s.entityOf(self)
			}
			c := Contact{A: selfEntity, B: e, Displacement: d}
			for _, fn := range s.onContact {
				fn(c)
			}
		}
	}
}
