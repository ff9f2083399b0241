package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"racer/internal/physics"
)

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{
		prevKeys: make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Controls samples the driving keys.
func (in *Input) Controls(window *glfw.Window) physics.Controls {
	return controlsFrom(func(k glfw.Key) bool { return window.GetKey(k) == glfw.Press })
}

// controlsFrom maps WASD and the arrow keys to vehicle controls.
// Reverse is half the forward throttle; opposite keys cancel.
func controlsFrom(down func(glfw.Key) bool) physics.Controls {
	key := func(a, b glfw.Key) float64 {
		if down(a) || down(b) {
			return 1
		}
		return 0
	}
	return physics.Controls{
		Turn:     key(glfw.KeyD, glfw.KeyRight) - key(glfw.KeyA, glfw.KeyLeft),
		Throttle: key(glfw.KeyW, glfw.KeyUp) - 0.5*key(glfw.KeyS, glfw.KeyDown),
	}
}
