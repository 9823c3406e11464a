package gridspace

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera ScrollX and ScrollY.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera is a view into the world. The transform functions only read
// ScrollX and ScrollY; the remaining fields drive screen conversion.
type Camera struct {
	// ScrollX and ScrollY are the world-space offset of the viewport's
	// top-left corner.
	ScrollX, ScrollY float64
	// Zoom is the scale factor (1.0 = no zoom). Zero is treated as 1.
	Zoom float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	// BoundsEnabled clamps the scroll so the visible area stays within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the camera is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	viewState     [5]float64 // scroll, zoom and viewport origin the matrix was built from
	dirty         bool

	scrollTween *scrollAnim
}

// newCamera creates a Camera with default values and the given viewport.
func newCamera(viewport Rect) *Camera {
	return &Camera{
		Zoom:     1.0,
		Viewport: viewport,
		dirty:    true,
	}
}

// SetScroll moves the camera to the given scroll offset.
func (c *Camera) SetScroll(x, y float64) {
	c.ScrollX = x
	c.ScrollY = y
	c.dirty = true
}

// CenterOn scrolls so the world point (x, y) sits in the middle of the viewport.
func (c *Camera) CenterOn(x, y float64) {
	z := c.zoom()
	c.SetScroll(x-c.Viewport.Width/(2*z), y-c.Viewport.Height/(2*z))
}

// ScrollTo animates the camera scroll to (x, y) over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.ScrollX), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.ScrollY), float32(y), duration, easeFn),
	}
}

// ScrollToTile animates the camera so the centre of the given tile ends up in
// the middle of the viewport. The tile position is taken from the layer as
// seen through this camera when the call is made.
func (c *Camera) ScrollToTile(layer *Layer, tileX, tileY int, duration float32, easeFn ease.TweenFunc) {
	var p Vec2
	TileToWorldXY(tileX, tileY, &p, c, layer)
	w, h := layer.EffectiveTileSize()
	z := c.zoom()
	c.ScrollTo(p.X+w/2-c.Viewport.Width/(2*z), p.Y+h/2-c.Viewport.Height/(2*z), duration, easeFn)
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// Update advances the scroll animation by dt seconds and applies bounds
// clamping. Scene.Update calls it for every scene camera.
func (c *Camera) Update(dt float32) {
	prevX, prevY, prevZoom := c.ScrollX, c.ScrollY, c.Zoom

	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			c.ScrollX = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			c.ScrollY = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}

	if c.ScrollX != prevX || c.ScrollY != prevY || c.Zoom != prevZoom {
		c.dirty = true
	}
}

func (c *Camera) zoom() float64 {
	if c.Zoom == 0 {
		return 1
	}
	return c.Zoom
}

// clampToBounds restricts the scroll so the visible area stays within Bounds.
func (c *Camera) clampToBounds() {
	z := c.zoom()
	visW := c.Viewport.Width / z
	visH := c.Viewport.Height / z

	// If bounds are smaller than the visible area, center on them.
	if visW > c.Bounds.Width {
		c.ScrollX = c.Bounds.X + (c.Bounds.Width-visW)/2
	} else {
		c.ScrollX = math.Max(c.Bounds.X, math.Min(c.ScrollX, c.Bounds.X+c.Bounds.Width-visW))
	}
	if visH > c.Bounds.Height {
		c.ScrollY = c.Bounds.Y + (c.Bounds.Height-visH)/2
	} else {
		c.ScrollY = math.Max(c.Bounds.Y, math.Min(c.ScrollY, c.Bounds.Y+c.Bounds.Height-visH))
	}
}

// computeViewMatrix recomputes the cached view matrix if dirty or if the
// scroll, zoom, or viewport origin changed since it was built.
//
// viewMatrix = Translate(viewport.X, viewport.Y) * Scale(zoom) * Translate(-ScrollX, -ScrollY)
func (c *Camera) computeViewMatrix() [6]float64 {
	z := c.zoom()
	state := [5]float64{c.ScrollX, c.ScrollY, z, c.Viewport.X, c.Viewport.Y}
	// A zero scale entry means the matrix was never built (zoom is never 0).
	if !c.dirty && c.viewMatrix[0] != 0 && state == c.viewState {
		return c.viewMatrix
	}
	c.dirty = false
	c.viewState = state

	c.viewMatrix = [6]float64{
		z, 0, 0, z,
		c.Viewport.X - z*c.ScrollX,
		c.Viewport.Y - z*c.ScrollY,
	}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// MarkDirty forces a recomputation of the view matrix. Direct assignments to
// ScrollX, ScrollY, Zoom, or Viewport are picked up without it.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	c.computeViewMatrix()
	return transformPoint(c.viewMatrix, wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// VisibleBounds returns the world-space rectangle visible through the viewport.
func (c *Camera) VisibleBounds() Rect {
	z := c.zoom()
	return Rect{
		X:      c.ScrollX,
		Y:      c.ScrollY,
		Width:  c.Viewport.Width / z,
		Height: c.Viewport.Height / z,
	}
}
