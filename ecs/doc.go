// Package ecs provides ECS adapters for gridspace.
//
// Entities that carry [GridPosition], [WorldPosition] and [LayerRef] have
// their world position recomputed from their tile position by
// [SyncWorldPositions]. Entities whose world position changed are announced
// on [TileMovedEventType].
//
// Usage:
//
//	e := ecs.NewGridEntity(world, layer, 3, 4)
//	ecs.SyncWorldPositions(world, cam)
//	ecs.TileMovedEventType.ProcessEvents(world)
//
// See [Donburi] for the ECS itself.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
