package game

import (
	"github.com/google/uuid"

	"racer/internal/physics"
)

type EventType int

const (
	EventContact EventType = iota
	EventImpact            // first contact of the vehicle after a clear frame
	EventPaused
	EventResumed
)

type Event struct {
	Type     EventType
	Pos      physics.Vec2
	Strength float64 // vehicle speed at impact
	A, B     uuid.UUID
	Frame    uint64
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}

// RouteContacts forwards scene contacts to bus. Every contact becomes an
// EventContact; a vehicle contact that starts a new impact and is fast
// enough also becomes an EventImpact.
func RouteContacts(s *physics.Scene, bus *EventBus, session *GameSession) func(physics.Contact) {
	return func(c physics.Contact) {
		frame := s.FrameCount()
		bus.Emit(Event{Type: EventContact, A: c.A.ID, B: c.B.ID, Pos: c.A.Poly().Center(), Frame: frame})

		v := c.A.Vehicle()
		if v == nil {
			v = c.B.Vehicle()
		}
		if v == nil || !session.Impact(frame) {
			return
		}
		if speed := v.Speed(); speed >= ImpactMinSpeed {
			bus.Emit(Event{Type: EventImpact, A: c.A.ID, B: c.B.ID, Pos: v.Center(), Strength: speed, Frame: frame})
		}
	}
}
