// Package ecs provides ECS adapters for town.
package ecs

import (
	"github.com/phanxgames/town"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// AgentUpdateType is the Donburi event type for controller updates.
// Publish to it from ECS systems to drive characters.
var AgentUpdateType = events.NewEventType[town.AgentUpdate]()

// DonburiSource is a town.UpdateSource backed by a Donburi world. Like the
// world itself it belongs to the tick goroutine.
type DonburiSource struct {
	world   donburi.World
	pending []town.AgentUpdate
}

// NewDonburiSource subscribes to AgentUpdateType on world and returns a
// source that hands the published updates to the town.
func NewDonburiSource(world donburi.World) *DonburiSource {
	s := &DonburiSource{world: world}
	AgentUpdateType.Subscribe(world, s.collect)
	return s
}

func (s *DonburiSource) collect(_ donburi.World, u town.AgentUpdate) {
	s.pending = append(s.pending, u)
}

// Publish queues an update on the world.
func (s *DonburiSource) Publish(u town.AgentUpdate) {
	AgentUpdateType.Publish(s.world, u)
}

// Poll implements town.UpdateSource. It processes queued events and
// applies them in publish order.
func (s *DonburiSource) Poll(apply func(town.AgentUpdate)) {
	AgentUpdateType.ProcessEvents(s.world)
	batch := s.pending
	s.pending = nil
	for _, u := range batch {
		apply(u)
	}
}
