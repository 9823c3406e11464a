package gridspace

// CameraResolver supplies the camera used when a transform is called without
// one. *Scene implements it by returning its first camera.
type CameraResolver interface {
	DefaultCamera() *Camera
}

// CameraResolverFunc adapts a plain function to a CameraResolver.
type CameraResolverFunc func() *Camera

// DefaultCamera calls f.
func (f CameraResolverFunc) DefaultCamera() *Camera {
	return f()
}

// Renderable is the on-screen placement of a layer: its world position,
// scale, and parallax scroll factor. A layer without a Renderable is treated
// as sitting at the world origin at unit scale.
type Renderable struct {
	// X and Y are the layer's world-space position.
	X, Y float64
	// ScaleX and ScaleY multiply the layer's base tile size.
	ScaleX, ScaleY float64
	// ScrollFactorX and ScrollFactorY control how much the layer follows the
	// camera. 1 moves with the world, 0 stays fixed on screen.
	ScrollFactorX, ScrollFactorY float64

	// Owner resolves the default camera. May be nil.
	Owner CameraResolver
}

// NewRenderable creates a Renderable at the origin with unit scale and unit
// scroll factor, owned by the given resolver (which may be nil).
func NewRenderable(owner CameraResolver) *Renderable {
	return &Renderable{
		ScaleX:        1,
		ScaleY:        1,
		ScrollFactorX: 1,
		ScrollFactorY: 1,
		Owner:         owner,
	}
}

// SetPosition sets the renderable's world X and Y.
func (r *Renderable) SetPosition(x, y float64) {
	r.X = x
	r.Y = y
}

// SetScale sets ScaleX and ScaleY.
func (r *Renderable) SetScale(sx, sy float64) {
	r.ScaleX = sx
	r.ScaleY = sy
}

// SetScrollFactor sets ScrollFactorX and ScrollFactorY.
func (r *Renderable) SetScrollFactor(fx, fy float64) {
	r.ScrollFactorX = fx
	r.ScrollFactorY = fy
}

// resolveCamera returns cam, or the owner's default camera when cam is nil.
// The result may still be nil.
func (r *Renderable) resolveCamera(cam *Camera) *Camera {
	if cam != nil || r.Owner == nil {
		return cam
	}
	return r.Owner.DefaultCamera()
}

// worldOrigin returns the renderable's position shifted by the portion of the
// camera scroll it does not follow.
func (r *Renderable) worldOrigin(cam *Camera) (x, y float64) {
	x, y = r.X, r.Y
	cam = r.resolveCamera(cam)
	if cam == nil {
		return x, y
	}
	x += cam.ScrollX * (1 - r.ScrollFactorX)
	y += cam.ScrollY * (1 - r.ScrollFactorY)
	return x, y
}
