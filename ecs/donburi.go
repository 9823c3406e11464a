package ecs

import (
	"github.com/phanxgames/gridspace"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// GridPositionData is an entity's tile coordinate on its layer.
type GridPositionData struct {
	X, Y int
}

// LayerRefData points an entity at the layer its grid position refers to.
type LayerRefData struct {
	Layer *gridspace.Layer
}

// TileMoved is published when SyncWorldPositions changes an entity's world
// position.
type TileMoved struct {
	Entity   donburi.Entity
	TileX    int
	TileY    int
	From, To gridspace.Vec2
}

var (
	GridPosition  = donburi.NewComponentType[GridPositionData]()
	WorldPosition = donburi.NewComponentType[gridspace.Vec2]()
	LayerRef      = donburi.NewComponentType[LayerRefData]()
)

// TileMovedEventType is the Donburi event type for world position changes.
var TileMovedEventType = events.NewEventType[TileMoved]()

var gridQuery = donburi.NewQuery(filter.Contains(GridPosition, WorldPosition, LayerRef))

// NewGridEntity creates an entity on layer at tile (x, y). Its world position
// is filled in immediately using the layer's default camera.
func NewGridEntity(world donburi.World, layer *gridspace.Layer, x, y int) donburi.Entity {
	entity := world.Create(GridPosition, WorldPosition, LayerRef)
	entry := world.Entry(entity)
	GridPosition.SetValue(entry, GridPositionData{X: x, Y: y})
	LayerRef.SetValue(entry, LayerRefData{Layer: layer})
	layer.TileToWorldXY(x, y, WorldPosition.Get(entry), nil)
	return entity
}

// SyncWorldPositions recomputes the world position of every grid entity,
// writing into its WorldPosition component in place. A nil cam uses each
// layer's default camera. Entities without a layer are skipped. Returns the
// number of entities whose position changed.
func SyncWorldPositions(world donburi.World, cam *gridspace.Camera) int {
	changed := 0
	gridQuery.Each(world, func(entry *donburi.Entry) {
		ref := LayerRef.Get(entry)
		if ref.Layer == nil {
			return
		}
		gp := GridPosition.Get(entry)
		wp := WorldPosition.Get(entry)

		prev := *wp
		ref.Layer.TileToWorldXY(gp.X, gp.Y, wp, cam)
		if *wp == prev {
			return
		}
		changed++
		TileMovedEventType.Publish(world, TileMoved{
			Entity: entry.Entity(),
			TileX:  gp.X,
			TileY:  gp.Y,
			From:   prev,
			To:     *wp,
		})
	})
	return changed
}
