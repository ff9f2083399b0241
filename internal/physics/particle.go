package physics

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

const MaxParticles = 4096

// Particle is a short-lived skid mark. It never interacts with shapes.
type Particle struct {
	Pos       Vec2 // centre of the square
	Size      float64
	Col       RGB
	Life      float64
	MaxLife   float64
	DecayRate float64 // life units lost per second
}

// Alpha is the remaining life as a fraction of the initial life, in [0, 1].
func (p *Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	a := p.Life / p.MaxLife
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}

func (p *Particle) Bounds() Rect {
	h := p.Size * 0.5
	return Rect{X0: p.Pos.X - h, Y0: p.Pos.Y - h, X1: p.Pos.X + h, Y1: p.Pos.Y + h}
}

// deathEps is the fraction of MaxLife treated as zero. Repeated
// subtraction of dt values like 0.1 or 1/60 leaves a tiny positive residue.
const deathEps = 1e-9

// ParticleSystem is a capped pool. P is a ring: when full, head is the
// oldest slot and the next one overwritten. After a compaction P is in
// insertion order again and head is 0.
type ParticleSystem struct {
	Max  int
	P    []Particle
	head int

	spare []Particle
}

func NewParticleSystem(maxParticles int) *ParticleSystem {
	if maxParticles <= 0 {
		maxParticles = MaxParticles
	}
	return &ParticleSystem{
		Max:   maxParticles,
		P:     make([]Particle, 0, maxParticles),
		spare: make([]Particle, 0, maxParticles),
	}
}

func (ps *ParticleSystem) Clear() {
	ps.P = ps.P[:0]
	ps.head = 0
}

func (ps *ParticleSystem) Len() int { return len(ps.P) }

// Add appends p. When the pool is full the oldest particle is overwritten.
func (ps *ParticleSystem) Add(p Particle) {
	if p.MaxLife == 0 {
		p.MaxLife = p.Life
	}
	if len(ps.P) < ps.Max {
		ps.P = append(ps.P, p)
		return
	}
	ps.P[ps.head] = p
	ps.head++
	if ps.head == len(ps.P) {
		ps.head = 0
	}
}

func (p *Particle) dead() bool { return p.Life <= deathEps*p.MaxLife }

// Update decays every particle linearly and drops the dead ones.
// Removal happens in a second compaction pass that keeps insertion order.
func (ps *ParticleSystem) Update(dt float64) {
	dead := 0
	for i := range ps.P {
		p := &ps.P[i]
		p.Life -= dt * p.DecayRate
		if p.dead() {
			dead++
		}
	}
	if dead == 0 {
		return
	}

	kept := ps.spare[:0]
	ps.Each(func(p *Particle) {
		if !p.dead() {
			kept = append(kept, *p)
		}
	})
	ps.spare = ps.P[:0]
	ps.P = kept
	ps.head = 0
}

// Each calls fn for every live particle in insertion order.
func (ps *ParticleSystem) Each(fn func(*Particle)) {
	for i := ps.head; i < len(ps.P); i++ {
		fn(&ps.P[i])
	}
	for i := 0; i < ps.head; i++ {
		fn(&ps.P[i])
	}
}
