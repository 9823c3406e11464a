// Package gridspace converts tile coordinates into world coordinates for 2D
// tile layers, in the style of [Tiled] maps and [Ebitengine] games.
//
// Four grid topologies are supported: [Orthogonal], [Isometric], [Staggered]
// and [Hexagonal] (pointy-top, odd rows shifted). A [Layer] carries the
// topology and base tile size; an optional [Renderable] places it in the
// world with a position, a non-uniform scale and a parallax scroll factor.
//
// # Quick start
//
//	layer := gridspace.NewLayer("ground", gridspace.Isometric, 64, 32)
//	p := layer.TileToWorldXY(3, 1, nil, nil)
//	// p is the world anchor of tile (3, 1)
//
// Pass a *Vec2 to reuse storage; it is updated in place and returned:
//
//	var p gridspace.Vec2
//	for x := range 10 {
//		layer.TileToWorldXY(x, 0, &p, cam)
//	}
//
// # Cameras and parallax
//
// When a layer has a Renderable, the camera scroll shifts the layer by the
// part of the scroll it does not follow:
//
//	origin = position + scroll * (1 - scrollFactor)
//
// A nil camera resolves to the default camera of the renderable's owner,
// usually a [Scene]:
//
//	scene := gridspace.NewScene()
//	cam := scene.NewCamera(gridspace.Rect{Width: 640, Height: 480})
//	bg := gridspace.NewLayer("bg", gridspace.Orthogonal, 32, 32)
//	bg.Renderable = gridspace.NewRenderable(nil)
//	bg.Renderable.SetScrollFactor(0.5, 0.5)
//	scene.AddLayer(bg) // scene becomes the owner
//	bg.TileToWorldXY(4, 4, nil, nil) // uses cam
//
// # Orthogonal layers
//
// Orthogonal layers delegate each axis to an [AxisTransform]. The zero
// [Transformer] uses [TileToWorldX] and [TileToWorldY]; set AxisX/AxisY to
// substitute your own.
//
// # Unknown orientations
//
// The transform never returns an error. A layer whose orientation is not one
// of the four known values leaves the output point unchanged. Call
// [Layer.Validate] up front if you need an explicit error.
//
// [Tiled]: https://www.mapeditor.org
// [Ebitengine]: https://ebitengine.org
package gridspace
