package gridspace

import "math"

// AxisTransform converts a single tile index to a world coordinate along one
// axis of an orthogonal layer.
type AxisTransform func(tile int, cam *Camera, layer *Layer) float64

// Transformer converts tile coordinates to world coordinates. The zero value
// is ready to use and delegates orthogonal layers to TileToWorldX and
// TileToWorldY.
type Transformer struct {
	// AxisX and AxisY handle orthogonal layers. nil selects the defaults.
	AxisX AxisTransform
	AxisY AxisTransform
}

// defaultTransformer backs the package-level TileToWorldXY.
var defaultTransformer Transformer

// TileToWorldXY converts tile coordinates to world coordinates with the
// default Transformer.
func TileToWorldXY(tileX, tileY int, point *Vec2, cam *Camera, layer *Layer) *Vec2 {
	return defaultTransformer.TileToWorldXY(tileX, tileY, point, cam, layer)
}

// TileToWorldXY converts the tile at (tileX, tileY) to the world position of
// its anchor, factoring in the layer's position, scale, and scroll factor.
//
// The result is written to point and point is returned. A nil point allocates
// a new Vec2. A nil cam uses the renderable owner's default camera; it is
// ignored for layers without a Renderable. Tile coordinates are not bounded
// by any map size.
//
// Layers with an unknown orientation leave point untouched.
func (t Transformer) TileToWorldXY(tileX, tileY int, point *Vec2, cam *Camera, layer *Layer) *Vec2 {
	if point == nil {
		point = &Vec2{}
	}

	switch layer.Orientation {
	case Orthogonal:
		axisX, axisY := t.AxisX, t.AxisY
		if axisX == nil {
			axisX = TileToWorldX
		}
		if axisY == nil {
			axisY = TileToWorldY
		}
		point.X = axisX(tileX, cam, layer)
		point.Y = axisY(tileY, cam, layer)

	case Isometric, Staggered, Hexagonal:
		origin := layer.Origin(cam)
		w, h := layer.EffectiveTileSize()
		tx, ty := float64(tileX), float64(tileY)

		switch layer.Orientation {
		case Isometric:
			point.X = origin.X + (tx-ty)*(w/2)
			point.Y = origin.Y + (tx+ty)*(h/2)
		case Staggered:
			point.X = origin.X + tx*w + float64(tileY%2)*(w/2)
			point.Y = origin.Y + ty*(h/2)
		case Hexagonal:
			// Tiled stores hex maps in the same odd-row layout as staggered.
			side := layer.HexSideLength
			rowHeight := (h-side)/2 + side
			point.X = origin.X + tx*w + float64(tileY%2)*(w/2)
			point.Y = origin.Y + ty*rowHeight
		}

	default:
		if globalDebug.Load() {
			debugWarnOrientation(layer)
		}
	}

	return point
}

// TileToWorldX converts a column index to a world X coordinate on an
// orthogonal layer.
func TileToWorldX(tileX int, cam *Camera, layer *Layer) float64 {
	origin := layer.Origin(cam)
	w, _ := layer.EffectiveTileSize()
	return origin.X + float64(tileX)*w
}

// TileToWorldY converts a row index to a world Y coordinate on an
// orthogonal layer.
func TileToWorldY(tileY int, cam *Camera, layer *Layer) float64 {
	origin := layer.Origin(cam)
	_, h := layer.EffectiveTileSize()
	return origin.Y + float64(tileY)*h
}

// --- Affine helpers ---

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if math.Abs(det) < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// tileTransform returns the affine matrix that maps tile-local pixel
// coordinates (0..TileWidth, 0..TileHeight) to world space for the tile whose
// anchor is at (ax, ay).
func (l *Layer) tileTransform(ax, ay float64) [6]float64 {
	sx, sy := 1.0, 1.0
	if r := l.Renderable; r != nil {
		sx, sy = r.ScaleX, r.ScaleY
	}
	return multiplyAffine([6]float64{1, 0, 0, 1, ax, ay}, [6]float64{sx, 0, 0, sy, 0, 0})
}
