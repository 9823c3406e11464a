package gridspace

import "sync/atomic"

// Scene owns a set of cameras and the layers placed in the world. Its first
// camera is the default camera for every Renderable it owns.
type Scene struct {
	cameras []*Camera
	layers  []*Layer
	debug   bool
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// NewCamera creates a camera with the given viewport and adds it to the scene.
func (s *Scene) NewCamera(viewport Rect) *Camera {
	cam := newCamera(viewport)
	s.cameras = append(s.cameras, cam)
	return cam
}

// RemoveCamera removes a camera from the scene.
func (s *Scene) RemoveCamera(cam *Camera) {
	for i, c := range s.cameras {
		if c == cam {
			s.cameras = append(s.cameras[:i], s.cameras[i+1:]...)
			return
		}
	}
}

// Cameras returns the scene's camera list. The returned slice MUST NOT be mutated.
func (s *Scene) Cameras() []*Camera {
	return s.cameras
}

// DefaultCamera returns the scene's first camera, or nil if it has none.
func (s *Scene) DefaultCamera() *Camera {
	if len(s.cameras) == 0 {
		return nil
	}
	return s.cameras[0]
}

// AddLayer registers a layer with the scene. If the layer has a Renderable,
// the scene becomes its owner and supplies its default camera. Detached
// layers stay detached.
func (s *Scene) AddLayer(layer *Layer) *Layer {
	if layer.Renderable != nil {
		layer.Renderable.Owner = s
	}
	if s.debug {
		debugCheckLayer(layer)
	}
	s.layers = append(s.layers, layer)
	return layer
}

// Layers returns the scene's layers in insertion order. The returned slice
// MUST NOT be mutated.
func (s *Scene) Layers() []*Layer {
	return s.layers
}

// Layer returns the first layer with the given name, or nil.
func (s *Scene) Layer(name string) *Layer {
	for _, l := range s.layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Update advances camera scroll animations by dt seconds.
func (s *Scene) Update(dt float32) {
	for _, cam := range s.cameras {
		cam.Update(dt)
	}
}

// SetDebugMode enables or disables debug mode. When enabled, layers with
// invalid geometry and transforms on unknown orientations print warnings to
// stderr. Results are unchanged.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug.Store(enabled)
}

// globalDebug mirrors the most recently set Scene debug flag so that the
// transform functions (which lack a Scene pointer) can check it cheaply.
// Transforms on any goroutine may read it.
var globalDebug atomic.Bool
