// Package ecs provides ECS adapters for ludo's click dispatch.
//
// The primary adapter is [NewDonburiSink], which bridges every click a scene
// dispatches into a [Donburi] world as a typed event. Subscribe to
// [ClickEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [BindNode] attaches a scene-graph node to an entity so ECS systems can
// drive node transforms through [EachNode]; [PruneNodes] drops entities
// whose nodes were destroyed.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
