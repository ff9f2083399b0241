package game

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"

	"racer/internal/physics"
)

func TestControlsFrom(t *testing.T) {
	tests := []struct {
		name string
		keys []glfw.Key
		want physics.Controls
	}{
		{"idle", nil, physics.Controls{}},
		{"forward", []glfw.Key{glfw.KeyW}, physics.Controls{Throttle: 1}},
		{"forward arrow", []glfw.Key{glfw.KeyUp}, physics.Controls{Throttle: 1}},
		{"reverse is half", []glfw.Key{glfw.KeyDown}, physics.Controls{Throttle: -0.5}},
		{"both pedals", []glfw.Key{glfw.KeyW, glfw.KeyS}, physics.Controls{Throttle: 0.5}},
		{"right", []glfw.Key{glfw.KeyD}, physics.Controls{Turn: 1}},
		{"left arrow", []glfw.Key{glfw.KeyLeft}, physics.Controls{Turn: -1}},
		{"opposite turns cancel", []glfw.Key{glfw.KeyA, glfw.KeyRight}, physics.Controls{}},
		{"duplicate keys count once", []glfw.Key{glfw.KeyD, glfw.KeyRight, glfw.KeyW, glfw.KeyUp}, physics.Controls{Turn: 1, Throttle: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			down := map[glfw.Key]bool{}
			for _, k := range tt.keys {
				down[k] = true
			}
			got := controlsFrom(func(k glfw.Key) bool { return down[k] })
			assert.Equal(t, tt.want, got)
		})
	}
}
