// Package ecs provides ECS adapters for the canvas interaction events.
//
// The primary adapter is [NewDonburiStore], which bridges canvas interaction
// events (select, deselect, click, tap, handle drags, zoom) into a [Donburi]
// world as typed events. Subscribe to [InteractionEventType] in your ECS
// systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	director.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
