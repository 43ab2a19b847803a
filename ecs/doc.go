// Package ecs provides ECS adapters for town's controller updates.
//
// The primary adapter is [NewDonburiSource], which carries agent updates
// through a [Donburi] world as typed events. Systems publish with
// [DonburiSource.Publish] or directly on [AgentUpdateType]; the town drains
// them once per tick.
//
// Usage:
//
//	src := ecs.NewDonburiSource(world)
//	t.SetUpdateSource(src)
//	src.Publish(town.AgentUpdate{Kind: town.UpdateMove, AgentID: "ada", BuildingID: "bakery"})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
