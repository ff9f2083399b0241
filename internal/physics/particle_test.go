package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticleRemovedAfterCeilSteps(t *testing.T) {
	tests := []struct {
		life, rate, dt float64
		steps          int
	}{
		{life: 1, rate: 1, dt: 0.25, steps: 4},
		{life: 1, rate: 1, dt: 0.3, steps: 4},
		{life: 20, rate: 0.5, dt: 1, steps: 40},
		{life: 3, rate: 2, dt: 0.125, steps: 12},
		{life: 1, rate: 1, dt: 0.1, steps: 10},
		{life: 20, rate: 0.5, dt: 0.1, steps: 400},
		{life: 20, rate: 0.5, dt: 1.0 / 60, steps: 2400},
		{life: 2, rate: 3, dt: 1.0 / 30, steps: 20},
	}
	for _, tt := range tests {
		ps := NewParticleSystem(16)
		ps.Add(Particle{Life: tt.life, DecayRate: tt.rate})

		for i := 1; i < tt.steps; i++ {
			ps.Update(tt.dt)
			require.Equal(t, 1, ps.Len(), "life %v rate %v dt %v: removed early at step %d", tt.life, tt.rate, tt.dt, i)
		}
		ps.Update(tt.dt)
		assert.Equal(t, 0, ps.Len(), "life %v rate %v dt %v: still alive after %d steps", tt.life, tt.rate, tt.dt, tt.steps)
	}
}

func TestParticleUpdateKeepsOrder(t *testing.T) {
	ps := NewParticleSystem(16)
	for i, life := range []float64{1, 0.1, 1, 0.1, 1} {
		ps.Add(Particle{Pos: V(float64(i), 0), Life: life, DecayRate: 1})
	}

	ps.Update(0.2)

	require.Equal(t, 3, ps.Len())
	var xs []float64
	ps.Each(func(p *Particle) { xs = append(xs, p.Pos.X) })
	assert.Equal(t, []float64{0, 2, 4}, xs)
}

func xsOf(ps *ParticleSystem) []float64 {
	var xs []float64
	ps.Each(func(p *Particle) { xs = append(xs, p.Pos.X) })
	return xs
}

func TestParticlePoolOverwritesWhenFull(t *testing.T) {
	ps := NewParticleSystem(3)
	for i := 0; i < 5; i++ {
		ps.Add(Particle{Pos: V(float64(i), 0), Life: 1})
	}
	require.Equal(t, 3, ps.Len())
	assert.Equal(t, []float64{2, 3, 4}, xsOf(ps))

	ps.Clear()
	assert.Equal(t, 0, ps.Len())
	ps.Add(Particle{Pos: V(9, 0), Life: 1})
	assert.Equal(t, []float64{9}, xsOf(ps))
}

func TestParticlePoolEvictsOldestAfterDecay(t *testing.T) {
	tests := []struct {
		name  string
		lives []float64
		dt    float64
		add   []float64
		want  []float64
	}{
		{
			name:  "overwrite then compact then overwrite",
			lives: []float64{1, 2, 3, 4, 10},
			dt:    2.5,
			add:   []float64{11, 12, 13, 14},
			want:  []float64{11, 12, 13, 14},
		},
		{
			name:  "partial refill after compaction",
			lives: []float64{1, 2, 3, 4, 10},
			dt:    2.5,
			add:   []float64{11, 12},
			want:  []float64{4, 10, 11, 12},
		},
		{
			name:  "nothing dies",
			lives: []float64{5, 6, 7, 8, 9, 10},
			dt:    1,
			add:   []float64{11},
			want:  []float64{8, 9, 10, 11},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := NewParticleSystem(4)
			for _, l := range tt.lives {
				ps.Add(Particle{Pos: V(l, 0), Life: l, DecayRate: 1})
			}
			ps.Update(tt.dt)
			for _, l := range tt.add {
				ps.Add(Particle{Pos: V(l, 0), Life: l, DecayRate: 1})
			}
			assert.Equal(t, tt.want, xsOf(ps))
		})
	}
}

func TestParticleAlpha(t *testing.T) {
	p := Particle{Life: 20, DecayRate: 0.5}
	ps := NewParticleSystem(1)
	ps.Add(p)

	got := &ps.P[0]
	assert.Equal(t, 20.0, got.MaxLife)
	assert.Equal(t, 1.0, got.Alpha())

	ps.Update(20)
	assert.InDelta(t, 0.5, got.Alpha(), eps)

	assert.Zero(t, (&Particle{}).Alpha())
	assert.Equal(t, 1.0, (&Particle{Life: 3, MaxLife: 1}).Alpha())
}

func TestParticleBounds(t *testing.T) {
	p := Particle{Pos: V(10, 20), Size: 10}
	assert.Equal(t, Rect{X0: 5, Y0: 15, X1: 15, Y1: 25}, p.Bounds())
}
