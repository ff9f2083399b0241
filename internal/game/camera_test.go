package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"racer/internal/physics"
)

func around(x, y float64) physics.Rect {
	return physics.Rect{X0: x - 16, Y0: y - 16, X1: x + 16, Y1: y + 16}
}

func TestCameraClampsToMap(t *testing.T) {
	mapBounds := physics.Rect{X1: 3328, Y1: 2560}
	tests := []struct {
		name   string
		target physics.Rect
		want   physics.Vec2
	}{
		{"top left corner", around(100, 100), physics.V(0, 0)},
		{"start pose", around(3105, 2260), physics.V(2304, 1792)},
		{"middle", around(1600, 1200), physics.V(1088, 816)},
		{"past the far edge", around(5000, 5000), physics.V(2304, 1792)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera(1024, 768, mapBounds)
			cam.Update(tt.target)
			assert.Equal(t, tt.want, cam.Offset)
			assert.Equal(t, physics.Rect{X0: tt.want.X, Y0: tt.want.Y, X1: tt.want.X + 1024, Y1: tt.want.Y + 768}, cam.View())
		})
	}
}

func TestCameraCentresSmallMap(t *testing.T) {
	cam := NewCamera(1024, 768, physics.Rect{X1: 800, Y1: 600})
	cam.Update(around(700, 50))
	assert.Equal(t, physics.V(-112, -84), cam.Offset)
}

func TestCameraResize(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		wantOffset physics.Vec2
	}{
		{"unchanged", 1024, 768, physics.V(1088, 816)},
		{"wider", 1280, 720, physics.V(960, 840)},
		{"larger than the map", 4000, 3000, physics.V(-336, -220)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera(1024, 768, physics.Rect{X1: 3328, Y1: 2560})
			cam.Resize(tt.w, tt.h)
			cam.Update(around(1600, 1200))
			assert.Equal(t, tt.wantOffset, cam.Offset)
			view := cam.View()
			assert.Equal(t, float64(tt.w), view.W())
			assert.Equal(t, float64(tt.h), view.H())
		})
	}
}

func TestCameraWorldToScreen(t *testing.T) {
	cam := NewCamera(1024, 768, physics.Rect{X1: 3328, Y1: 2560})
	cam.Update(around(3105, 2260))

	assert.Equal(t, physics.V(801, 468), cam.WorldToScreen(physics.V(3105, 2260)))
	assert.Equal(t,
		physics.Rect{X0: 785, Y0: 452, X1: 817, Y1: 484},
		cam.WorldToScreenRect(around(3105, 2260)))
}

func TestCameraShakeDecays(t *testing.T) {
	cam := NewCamera(1024, 768, physics.Rect{X1: 3328, Y1: 2560})
	cam.AddShake(5, ShakeDuration)
	cam.AddShake(2, 0.05)
	assert.Equal(t, 5.0, cam.ShakeIntensity)
	assert.Equal(t, ShakeDuration, cam.ShakeTimer)

	cam.UpdateShake(0.01, 7)
	assert.LessOrEqual(t, cam.ShakeX, 5.0)
	assert.GreaterOrEqual(t, cam.ShakeX, -5.0)
	off := cam.EffectiveOffset()
	assert.Equal(t, cam.Offset.X+cam.ShakeX, off.X)

	cam.UpdateShake(1, 7)
	assert.Zero(t, cam.ShakeX)
	assert.Zero(t, cam.ShakeY)
	cam.UpdateShake(0.01, 7)
	assert.Zero(t, cam.ShakeIntensity)
	assert.Equal(t, cam.Offset, cam.EffectiveOffset())
}

func TestJitterRange(t *testing.T) {
	seen := map[[2]float64]bool{}
	for seed := uint64(0); seed < 500; seed++ {
		x, y := jitter(seed)
		assert.GreaterOrEqual(t, x, -1.0)
		assert.Less(t, x, 1.0)
		assert.GreaterOrEqual(t, y, -1.0)
		assert.Less(t, y, 1.0)
		seen[[2]float64{x, y}] = true
	}
	assert.Greater(t, len(seen), 490)

	x1, y1 := jitter(99)
	x2, y2 := jitter(99)
	assert.Equal(t, x1, x2)
	assert.Equal(t, y1, y2)
}
