package ecs

import (
	"github.com/phanxgames/ludo"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ClickEventType is the Donburi event type for ludo click events.
// Subscribe to this in your ECS systems to receive fired listeners.
var ClickEventType = events.NewEventType[ludo.ClickEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Click events are published to ClickEventType and can be consumed with
// Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) ludo.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitClick(event ludo.ClickEvent) {
	ClickEventType.Publish(s.world, event)
}
