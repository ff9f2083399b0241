package game

import (
	"fmt"
	"math"

	"racer/internal/log"
	"racer/internal/physics"
	"racer/internal/track"
)

type GameState int

const (
	StateRunning GameState = iota
	StatePaused
)

func (s GameState) String() string {
	if s == StatePaused {
		return "paused"
	}
	return "running"
}

type GameSession struct {
	State    GameState
	Elapsed  float64 // simulated seconds, pauses excluded
	Impacts  int
	Debug    bool // F1 overlay: diagonals and edges
	Bounds   bool // bounding boxes
	Track    string
	lastHit  uint64
	hitFrame bool
}

func NewGameSession(trackName string, showBounds, debug bool) *GameSession {
	return &GameSession{State: StateRunning, Track: trackName, Bounds: showBounds, Debug: debug}
}

func (s *GameSession) Running() bool { return s.State == StateRunning }

func (s *GameSession) TogglePause() GameState {
	if s.State == StatePaused {
		s.State = StateRunning
	} else {
		s.State = StatePaused
	}
	return s.State
}

// debugLogLevel lowers the logger to debug while the overlay is on, so
// contacts are logged alongside the drawn diagonals.
func debugLogLevel(overlay bool, base log.Level) log.Level {
	if overlay {
		return log.LevelDebug
	}
	return base
}

func (s *GameSession) Update(dt float64) {
	if s.State == StateRunning {
		s.Elapsed += dt
	}
}

// Impact records a vehicle contact in frame and reports whether it starts
// a new impact, i.e. the vehicle was clear during the previous frame.
func (s *GameSession) Impact(frame uint64) bool {
	fresh := !s.hitFrame || frame > s.lastHit+1
	s.lastHit = frame
	s.hitFrame = true
	if fresh {
		s.Impacts++
	}
	return fresh
}

// Title is the window caption: the car position plus the pause state.
func (s *GameSession) Title(base string, pos physics.Vec2) string {
	t := fmt.Sprintf("%s - %s (%d, %d)", base, s.Track, int(math.Round(pos.X)), int(math.Round(pos.Y)))
	if s.State == StatePaused {
		t += " [paused]"
	}
	return t
}

// BuildScene registers the player vehicle at the track start pose, then
// every track object in file order.
func BuildScene(m *track.Map, params physics.VehicleParams, opts ...physics.SceneOption) (*physics.Scene, *physics.Vehicle, error) {
	v, err := physics.NewVehicle(params)
	if err != nil {
		return nil, nil, err
	}
	v.MoveTo(m.Start.Pos())
	v.Rotate(m.Start.HeadingRad())

	s := physics.NewScene(opts...)
	s.AddVehicle("player", v)
	for _, o := range m.Objects {
		pts, err := o.Points()
		if err != nil {
			return nil, nil, err
		}
		if _, err := s.AddObstacle(o.Name, pts, o.Static); err != nil {
			return nil, nil, fmt.Errorf("object %q: %w", o.Name, err)
		}
	}
	s.Init()
	return s, v, nil
}
