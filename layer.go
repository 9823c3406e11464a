package gridspace

import (
	"errors"
	"fmt"
	"math"
)

// Validation errors returned by Layer.Validate and ParseOrientation.
var (
	ErrUnknownOrientation = errors.New("unknown orientation")
	ErrInvalidTileSize    = errors.New("tile size must be positive and finite")
	ErrInvalidHexSide     = errors.New("hex side length must be in [0, tile height]")
)

// Layer describes the geometry of one tile layer: its grid topology, base
// tile size, and optional on-screen placement.
//
// The transform functions only read a Layer; they never modify it.
type Layer struct {
	Name        string
	Orientation Orientation

	// Tile dimensions in pixels at unit scale.
	TileWidth  float64
	TileHeight float64

	// HexSideLength is the length of the flat hexagon edge. Only used by
	// Hexagonal layers.
	HexSideLength float64

	// Renderable places the layer in the world. nil means origin, unit scale.
	Renderable *Renderable
}

// NewLayer creates a detached layer with the given orientation and tile size.
func NewLayer(name string, orientation Orientation, tileWidth, tileHeight float64) *Layer {
	return &Layer{
		Name:        name,
		Orientation: orientation,
		TileWidth:   tileWidth,
		TileHeight:  tileHeight,
	}
}

// Validate reports the first geometry problem that would make the transform
// produce meaningless results. The transform itself never calls Validate.
func (l *Layer) Validate() error {
	if !l.Orientation.Valid() {
		return fmt.Errorf("gridspace: layer %q: %w", l.Name, ErrUnknownOrientation)
	}
	if !positiveFinite(l.TileWidth) || !positiveFinite(l.TileHeight) {
		return fmt.Errorf("gridspace: layer %q: %vx%v: %w", l.Name, l.TileWidth, l.TileHeight, ErrInvalidTileSize)
	}
	if l.Orientation == Hexagonal {
		if l.HexSideLength < 0 || l.HexSideLength > l.TileHeight || math.IsNaN(l.HexSideLength) {
			return fmt.Errorf("gridspace: layer %q: side %v: %w", l.Name, l.HexSideLength, ErrInvalidHexSide)
		}
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// EffectiveTileSize returns the tile size after the renderable's scale.
func (l *Layer) EffectiveTileSize() (w, h float64) {
	w, h = l.TileWidth, l.TileHeight
	if r := l.Renderable; r != nil {
		w *= r.ScaleX
		h *= r.ScaleY
	}
	return w, h
}

// Origin returns the world position of tile (0, 0) as seen through cam.
// A nil cam falls back to the renderable owner's default camera.
func (l *Layer) Origin(cam *Camera) Vec2 {
	if l.Renderable == nil {
		return Vec2{}
	}
	x, y := l.Renderable.worldOrigin(cam)
	return Vec2{X: x, Y: y}
}

// RowHeight returns the vertical distance between adjacent rows in world
// units. Staggered rows overlap by half a tile and hexagonal rows interlock
// by the flat edge.
func (l *Layer) RowHeight() float64 {
	_, h := l.EffectiveTileSize()
	switch l.Orientation {
	case Staggered:
		return h / 2
	case Hexagonal:
		return (h-l.HexSideLength)/2 + l.HexSideLength
	default:
		return h
	}
}

// TileToWorldXY converts tile coordinates to world coordinates using the
// default axis transforms. See Transformer.TileToWorldXY.
func (l *Layer) TileToWorldXY(tileX, tileY int, point *Vec2, cam *Camera) *Vec2 {
	return TileToWorldXY(tileX, tileY, point, cam, l)
}

// TileOutline returns the polygon covering tile (tileX, tileY) in world
// coordinates, starting from the tile's world anchor. Orthogonal tiles are
// rectangles, isometric and staggered tiles are diamonds, hexagonal tiles are
// pointy-top hexagons. Unknown orientations return nil.
func (l *Layer) TileOutline(tileX, tileY int, cam *Camera) []Vec2 {
	if !l.Orientation.Valid() {
		return nil
	}
	var p Vec2
	l.TileToWorldXY(tileX, tileY, &p, cam)
	w, h := l.EffectiveTileSize()

	switch l.Orientation {
	case Isometric, Staggered:
		return []Vec2{
			{p.X + w/2, p.Y},
			{p.X + w, p.Y + h/2},
			{p.X + w/2, p.Y + h},
			{p.X, p.Y + h/2},
		}
	case Hexagonal:
		side := l.HexSideLength
		top := (h - side) / 2
		return []Vec2{
			{p.X + w/2, p.Y},
			{p.X + w, p.Y + top},
			{p.X + w, p.Y + top + side},
			{p.X + w/2, p.Y + h},
			{p.X, p.Y + top + side},
			{p.X, p.Y + top},
		}
	default:
		return []Vec2{
			{p.X, p.Y},
			{p.X + w, p.Y},
			{p.X + w, p.Y + h},
			{p.X, p.Y + h},
		}
	}
}

// TileBounds returns the axis-aligned bounding rectangle of the tile cell.
func (l *Layer) TileBounds(tileX, tileY int, cam *Camera) Rect {
	var p Vec2
	l.TileToWorldXY(tileX, tileY, &p, cam)
	w, h := l.EffectiveTileSize()
	return Rect{X: p.X, Y: p.Y, Width: w, Height: h}
}
