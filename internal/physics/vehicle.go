package physics

import (
	"fmt"
	"math"
)

// Body rectangle of the player car, front facing +X at heading 0.
const (
	VehicleLength = 64.0
	VehicleWidth  = 32.0
)

// VehicleParams tunes the car. Zero rates, timings and sizes fall back to
// DefaultVehicleParams; PivotOffset and ParticleMinSpeed may be zero.
type VehicleParams struct {
	Friction            float64 // per-frame velocity multiplier in (0, 1)
	EnginePower         float64
	SteeringSensitivity float64 // higher = less steering per unit speed
	PivotOffset         float64 // pivot shift towards the front axle

	ParticleInterval float64 // seconds between skid mark pairs
	ParticleMinSpeed float64
	ParticleLife     float64
	ParticleDecay    float64
	ParticleSize     float64
	ParticleColor    RGB
}

func DefaultVehicleParams() VehicleParams {
	return VehicleParams{
		Friction:            0.98,
		EnginePower:         15,
		SteeringSensitivity: 8,
		PivotOffset:         20,
		ParticleInterval:    0.01,
		ParticleMinSpeed:    0.5,
		ParticleLife:        20,
		ParticleDecay:       0.5,
		ParticleSize:        10,
		ParticleColor:       RGB{},
	}
}

func (p VehicleParams) withDefaults() VehicleParams {
	d := DefaultVehicleParams()
	if p.Friction == 0 {
		p.Friction = d.Friction
	}
	if p.EnginePower == 0 {
		p.EnginePower = d.EnginePower
	}
	if p.SteeringSensitivity == 0 {
		p.SteeringSensitivity = d.SteeringSensitivity
	}
	if p.ParticleInterval == 0 {
		p.ParticleInterval = d.ParticleInterval
	}
	if p.ParticleLife == 0 {
		p.ParticleLife = d.ParticleLife
	}
	if p.ParticleDecay == 0 {
		p.ParticleDecay = d.ParticleDecay
	}
	if p.ParticleSize == 0 {
		p.ParticleSize = d.ParticleSize
	}
	return p
}

// Controls is the raw directional input for one frame.
// Turn is -1, 0 or 1; Throttle is -0.5 (reverse), 0 or 1.
type Controls struct {
	Turn     float64
	Throttle float64
}

// Vehicle is the player car: a polygon body plus kinematic state.
type Vehicle struct {
	body Polygon

	Velocity     Vec2
	Acceleration Vec2
	Heading      float64 // radians, accumulated from every Rotate

	params        VehicleParams
	particleTimer float64
}

func NewVehicle(params VehicleParams) (*Vehicle, error) {
	params = params.withDefaults()
	if params.Friction <= 0 || params.Friction >= 1 {
		return nil, fmt.Errorf("vehicle friction %v: must be in (0, 1)", params.Friction)
	}
	if params.SteeringSensitivity <= 0 {
		return nil, fmt.Errorf("vehicle steering sensitivity %v: must be positive", params.SteeringSensitivity)
	}

	v := &Vehicle{params: params}
	pts := []Vec2{
		{X: VehicleLength, Y: 0},
		{X: VehicleLength, Y: VehicleWidth},
		{X: 0, Y: VehicleWidth},
		{X: 0, Y: 0},
	}
	if err := v.body.init(pts, false); err != nil {
		return nil, err
	}
	c := v.body.Center()
	v.body.SetPivot(Vec2{X: c.X + params.PivotOffset, Y: c.Y})
	v.body.Rebuild()
	return v, nil
}

// AsPolygon exposes the body for the shared collision path.
func (v *Vehicle) AsPolygon() *Polygon { return &v.body }

func (v *Vehicle) Params() VehicleParams { return v.params }

func (v *Vehicle) Center() Vec2      { return v.body.Center() }
func (v *Vehicle) Bounds() Rect      { return v.body.Bounds() }
func (v *Vehicle) Move(d Vec2)       { v.body.Move(d) }
func (v *Vehicle) MoveTo(t Vec2)     { v.body.MoveTo(t) }
func (v *Vehicle) Speed() float64    { return v.Velocity.Len() }
func (v *Vehicle) Overlapping() bool { return v.body.Overlapping }

// BodyCenter is the mean of the body corners. The sprite is drawn around it.
func (v *Vehicle) BodyCenter() Vec2 { return centroid(v.body.points) }

// Rotate turns the body about the pivot and accumulates the heading.
func (v *Vehicle) Rotate(angle float64) {
	v.body.Rotate(angle)
	v.Heading += angle
}

// Integrate advances the kinematics by one frame and emits skid marks into s.
// It does not rebuild geometry or test collisions; Update does both.
func (v *Vehicle) Integrate(dt float64, ctl Controls, s *Scene) {
	steer := math.Pi * ctl.Turn * dt * (v.Velocity.Len() / v.params.SteeringSensitivity)
	v.Rotate(steer)

	v.Acceleration.X += ctl.Throttle * dt * v.params.EnginePower
	v.Acceleration = v.Acceleration.RotateDeg(Degrees(v.Heading))
	v.Velocity = v.Velocity.Add(v.Acceleration).Scale(v.params.Friction)
	v.body.Move(v.Velocity)
	v.Acceleration = Vec2{}

	v.particleTimer += dt
	if v.particleTimer >= v.params.ParticleInterval && v.Velocity.Len() > v.params.ParticleMinSpeed {
		v.particleTimer = 0
		if s != nil {
			for _, p := range v.SkidPoints() {
				s.Emit(Particle{
					Pos:       p,
					Size:      v.params.ParticleSize,
					Col:       v.params.ParticleColor,
					Life:      v.params.ParticleLife,
					DecayRate: v.params.ParticleDecay,
				})
			}
		}
	}
}

// SkidPoints returns the two rear corners pulled 30% towards the pivot.
func (v *Vehicle) SkidPoints() [2]Vec2 {
	c := v.body.Center()
	var out [2]Vec2
	for i, k := range [2]int{2, 3} {
		p := v.body.points[k]
		out[i] = p.Add(c.Sub(p).Scale(0.3))
	}
	return out
}

// Update integrates one frame, then runs the shared polygon update:
// rebuild the derived geometry and resolve contacts against the scene.
func (v *Vehicle) Update(dt float64, ctl Controls, s *Scene) {
	v.Integrate(dt, ctl, s)
	if s == nil {
		v.body.Rebuild()
		return
	}
	s.scan(&v.body)
}
