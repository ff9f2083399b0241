package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"racer/internal/physics"
)

func TestEventBusDispatchesByType(t *testing.T) {
	bus := NewEventBus()
	var got []string
	bus.Subscribe(EventPaused, func(Event) { got = append(got, "first") })
	bus.Subscribe(EventPaused, func(Event) { got = append(got, "second") })
	bus.Subscribe(EventResumed, func(Event) { got = append(got, "resumed") })

	bus.Emit(Event{Type: EventPaused})
	assert.Equal(t, []string{"first", "second"}, got)

	bus.Emit(Event{Type: EventImpact})
	assert.Len(t, got, 2)
}

type contactFixture struct {
	scene   *physics.Scene
	vehicle *physics.Vehicle
	car     *physics.Entity
	box     *physics.Entity
	other   *physics.Entity
	session *GameSession
	events  []Event
	route   func(physics.Contact)
}

func newContactFixture(t *testing.T) *contactFixture {
	t.Helper()
	f := &contactFixture{scene: physics.NewScene(), session: NewGameSession("test", false, false)}

	v, err := physics.NewVehicle(physics.DefaultVehicleParams())
	require.NoError(t, err)
	f.vehicle = v
	f.car = f.scene.AddVehicle("player", v)
	f.box, err = f.scene.AddObstacle("box", physics.RegularPolygon(physics.V(300, 300), 4, 20, 45), true)
	require.NoError(t, err)
	f.other, err = f.scene.AddObstacle("crate", physics.RegularPolygon(physics.V(600, 300), 4, 20, 45), false)
	require.NoError(t, err)

	bus := NewEventBus()
	record := func(e Event) { f.events = append(f.events, e) }
	bus.Subscribe(EventContact, record)
	bus.Subscribe(EventImpact, record)
	f.route = RouteContacts(f.scene, bus, f.session)
	return f
}

func TestRouteContactsVehicleImpact(t *testing.T) {
	f := newContactFixture(t)
	f.vehicle.Velocity = physics.V(2, 0)

	f.route(physics.Contact{A: f.car, B: f.box})
	require.Len(t, f.events, 2)
	assert.Equal(t, EventContact, f.events[0].Type)
	assert.Equal(t, f.car.ID, f.events[0].A)
	assert.Equal(t, f.box.ID, f.events[0].B)
	assert.Equal(t, EventImpact, f.events[1].Type)
	assert.Equal(t, 2.0, f.events[1].Strength)
	assert.Equal(t, f.vehicle.Center(), f.events[1].Pos)
	assert.Equal(t, 1, f.session.Impacts)

	// Same frame, still touching: contact only.
	f.route(physics.Contact{A: f.box, B: f.car})
	require.Len(t, f.events, 3)
	assert.Equal(t, EventContact, f.events[2].Type)
	assert.Equal(t, 1, f.session.Impacts)
}

func TestRouteContactsSlowImpactIsSilent(t *testing.T) {
	f := newContactFixture(t)
	f.vehicle.Velocity = physics.V(0.1, 0)

	f.route(physics.Contact{A: f.car, B: f.box})
	require.Len(t, f.events, 1)
	assert.Equal(t, EventContact, f.events[0].Type)
	assert.Equal(t, 1, f.session.Impacts)
}

func TestRouteContactsBetweenObstacles(t *testing.T) {
	f := newContactFixture(t)
	f.vehicle.Velocity = physics.V(5, 0)

	f.route(physics.Contact{A: f.other, B: f.box})
	require.Len(t, f.events, 1)
	assert.Equal(t, EventContact, f.events[0].Type)
	assert.Equal(t, f.other.Poly().Center(), f.events[0].Pos)
	assert.Zero(t, f.session.Impacts)
}
