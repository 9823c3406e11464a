package gridspace

import (
	"fmt"
	"strings"
)

// Vec2 is a 2D point or vector in world units. TileToWorldXY writes its result
// into a caller-supplied *Vec2 when one is given.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Orientation selects the grid topology of a layer.
type Orientation uint8

const (
	Orthogonal Orientation = iota // square grid, one tile per column/row step
	Isometric                     // diamond projection
	Staggered                     // diamond tiles, odd rows shifted half a tile right
	Hexagonal                     // pointy-top hexagons, odd rows shifted ("oddr")
)

var orientationNames = [...]string{
	Orthogonal: "orthogonal",
	Isometric:  "isometric",
	Staggered:  "staggered",
	Hexagonal:  "hexagonal",
}

// Valid reports whether o is one of the four known orientations.
func (o Orientation) Valid() bool {
	return int(o) < len(orientationNames)
}

// String returns the lower-case orientation name as used in Tiled maps.
func (o Orientation) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Orientation(%d)", uint8(o))
	}
	return orientationNames[o]
}

// ParseOrientation converts a name such as "isometric" into an Orientation.
// Matching is case-insensitive.
func ParseOrientation(s string) (Orientation, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range orientationNames {
		if n == name {
			return Orientation(i), nil
		}
	}
	return 0, fmt.Errorf("gridspace: %q: %w", s, ErrUnknownOrientation)
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("gridspace: %d: %w", uint8(o), ErrUnknownOrientation)
	}
	return []byte(orientationNames[o]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(text []byte) error {
	v, err := ParseOrientation(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}
