package ecs

import (
	"github.com/phanxgames/canvas"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for canvas interaction
// events. Subscribe to it in your ECS systems to receive selection, click,
// tap, handle and zoom events.
var InteractionEventType = events.NewEventType[canvas.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and delivered
// when the world processes its events.
func NewDonburiStore(world donburi.World) canvas.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event canvas.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}
