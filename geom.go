package gridspace

import "github.com/hajimehoshi/ebiten/v2"

// affineToGeoM converts a [a, b, c, d, tx, ty] matrix into an ebiten.GeoM.
func affineToGeoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
	return g
}

// TileGeoM returns the world-space GeoM for drawing a tile image of
// TileWidth x TileHeight pixels at tile (tileX, tileY). Concatenate the
// camera's GeoM to get screen space:
//
//	op := &ebiten.DrawImageOptions{}
//	op.GeoM = layer.TileGeoM(x, y, cam)
//	op.GeoM.Concat(cam.GeoM())
//	screen.DrawImage(tileImg, op)
func (l *Layer) TileGeoM(tileX, tileY int, cam *Camera) ebiten.GeoM {
	var p Vec2
	l.TileToWorldXY(tileX, tileY, &p, cam)
	return affineToGeoM(l.tileTransform(p.X, p.Y))
}

// GeoM returns the camera's world-to-screen transform.
func (c *Camera) GeoM() ebiten.GeoM {
	return affineToGeoM(c.computeViewMatrix())
}
