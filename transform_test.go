package gridspace

import (
	"math"
	"sync"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertPoint(t *testing.T, name string, got *Vec2, wantX, wantY float64) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s: got nil point", name)
	}
	assertNear(t, name+".X", got.X, wantX)
	assertNear(t, name+".Y", got.Y, wantY)
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- Unattached layers ---

func TestTileToWorldNoRenderable(t *testing.T) {
	tests := []struct {
		name         string
		layer        Layer
		tileX, tileY int
		wantX, wantY float64
	}{
		{"orthogonal", Layer{Orientation: Orthogonal, TileWidth: 32, TileHeight: 16}, 2, 3, 64, 48},
		{"isometric", Layer{Orientation: Isometric, TileWidth: 32, TileHeight: 32}, 2, 3, -16, 80},
		{"isometric origin", Layer{Orientation: Isometric, TileWidth: 64, TileHeight: 32}, 0, 0, 0, 0},
		{"isometric x step", Layer{Orientation: Isometric, TileWidth: 64, TileHeight: 32}, 1, 0, 32, 16},
		{"isometric y step", Layer{Orientation: Isometric, TileWidth: 64, TileHeight: 32}, 0, 1, -32, 16},
		{"staggered odd row", Layer{Orientation: Staggered, TileWidth: 32, TileHeight: 32}, 2, 3, 80, 48},
		{"staggered even row", Layer{Orientation: Staggered, TileWidth: 32, TileHeight: 32}, 2, 2, 64, 32},
		{"staggered negative odd row", Layer{Orientation: Staggered, TileWidth: 32, TileHeight: 32}, 0, -1, -16, -16},
		{"hexagonal even row", Layer{Orientation: Hexagonal, TileWidth: 32, TileHeight: 34, HexSideLength: 10}, 1, 2, 32, 44},
		{"hexagonal odd row", Layer{Orientation: Hexagonal, TileWidth: 32, TileHeight: 34, HexSideLength: 10}, 1, 1, 48, 22},
		{"hexagonal zero side", Layer{Orientation: Hexagonal, TileWidth: 32, TileHeight: 32}, 0, 2, 0, 32},
		{"outside grid", Layer{Orientation: Isometric, TileWidth: 32, TileHeight: 32}, -100, 1000, -17600, 14400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TileToWorldXY(tt.tileX, tt.tileY, nil, nil, &tt.layer)
			assertPoint(t, "point", got, tt.wantX, tt.wantY)
		})
	}
}

// --- Attached layers ---

func parallaxRenderable(owner CameraResolver) *Renderable {
	r := NewRenderable(owner)
	r.SetPosition(100, 50)
	r.SetScale(2, 1)
	r.SetScrollFactor(0.5, 0.25)
	return r
}

func TestTileToWorldRenderableExplicitCamera(t *testing.T) {
	layer := &Layer{Orientation: Isometric, TileWidth: 32, TileHeight: 32, Renderable: parallaxRenderable(nil)}
	cam := &Camera{ScrollX: 40, ScrollY: 80}

	// origin = (100 + 40*0.5, 50 + 80*0.75) = (120, 110); tile = 64x32
	got := TileToWorldXY(2, 3, nil, cam, layer)
	assertPoint(t, "isometric", got, 88, 190)
}

func TestTileToWorldRenderableDefaultCamera(t *testing.T) {
	scene := NewScene()
	cam := scene.NewCamera(Rect{Width: 800, Height: 600})
	cam.SetScroll(40, 80)

	layer := &Layer{Orientation: Isometric, TileWidth: 32, TileHeight: 32, Renderable: parallaxRenderable(scene)}
	got := TileToWorldXY(2, 3, nil, nil, layer)
	assertPoint(t, "default camera", got, 88, 190)

	// An explicit camera wins over the owner's default.
	got = TileToWorldXY(2, 3, nil, &Camera{}, layer)
	assertPoint(t, "explicit camera", got, 68, 130)
}

func TestTileToWorldRenderableNoCamera(t *testing.T) {
	tests := []struct {
		name  string
		owner CameraResolver
	}{
		{"nil owner", nil},
		{"scene without cameras", NewScene()},
		{"resolver returns nil", CameraResolverFunc(func() *Camera { return nil })},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layer := &Layer{Orientation: Isometric, TileWidth: 32, TileHeight: 32, Renderable: parallaxRenderable(tt.owner)}
			got := TileToWorldXY(2, 3, nil, nil, layer)
			assertPoint(t, "point", got, 68, 130)
		})
	}
}

func TestTileToWorldCameraIgnoredWithoutRenderable(t *testing.T) {
	layer := &Layer{Orientation: Staggered, TileWidth: 32, TileHeight: 32}
	got := TileToWorldXY(2, 3, nil, &Camera{ScrollX: 999, ScrollY: -999}, layer)
	assertPoint(t, "staggered", got, 80, 48)
}

func TestTileToWorldStaggeredScaled(t *testing.T) {
	r := NewRenderable(nil)
	r.SetPosition(10, 20)
	r.SetScale(0.5, 2)
	layer := &Layer{Orientation: Staggered, TileWidth: 64, TileHeight: 32, Renderable: r}

	// tile = 32x64, odd row shifted by 16, row step 32.
	got := TileToWorldXY(1, 1, nil, &Camera{ScrollX: 500, ScrollY: 500}, layer)
	assertPoint(t, "staggered", got, 10+32+16, 20+32)
}

func TestTileToWorldHexagonalScaled(t *testing.T) {
	r := NewRenderable(nil)
	r.SetScale(2, 2)
	layer := &Layer{Orientation: Hexagonal, TileWidth: 32, TileHeight: 34, HexSideLength: 10, Renderable: r}

	// Side length is not scaled: rowHeight = (68-10)/2 + 10 = 39.
	got := TileToWorldXY(1, 3, nil, nil, layer)
	assertPoint(t, "hexagonal", got, 64+32, 3*39)
}

func TestTileToWorldScrollFactorOne(t *testing.T) {
	// A layer that follows the camera fully is not shifted by scroll.
	r := NewRenderable(nil)
	r.SetPosition(5, 7)
	layer := &Layer{Orientation: Isometric, TileWidth: 32, TileHeight: 32, Renderable: r}
	got := TileToWorldXY(0, 0, nil, &Camera{ScrollX: 300, ScrollY: 400}, layer)
	assertPoint(t, "origin", got, 5, 7)
}

// --- Orthogonal ---

func TestTileToWorldOrthogonalDefaultAxes(t *testing.T) {
	r := NewRenderable(nil)
	r.SetPosition(10, 20)
	r.SetScale(2, 3)
	layer := &Layer{Orientation: Orthogonal, TileWidth: 32, TileHeight: 32, Renderable: r}

	got := TileToWorldXY(3, 4, nil, &Camera{ScrollX: 100, ScrollY: 200}, layer)
	assertPoint(t, "scroll factor 1", got, 202, 404)

	r.SetScrollFactor(0, 0)
	got = TileToWorldXY(3, 4, nil, &Camera{ScrollX: 100, ScrollY: 200}, layer)
	assertPoint(t, "scroll factor 0", got, 302, 604)
}

func TestTileToWorldOrthogonalDelegates(t *testing.T) {
	layer := &Layer{Orientation: Orthogonal, TileWidth: 32, TileHeight: 32}
	cam := &Camera{ScrollX: 1}

	var gotX, gotY int
	var camX, camY *Camera
	var layerX, layerY *Layer
	tr := Transformer{
		AxisX: func(tile int, c *Camera, l *Layer) float64 {
			gotX, camX, layerX = tile, c, l
			return float64(tile) * 1000
		},
		AxisY: func(tile int, c *Camera, l *Layer) float64 {
			gotY, camY, layerY = tile, c, l
			return float64(tile) * -7
		},
	}

	for _, tc := range [][2]int{{0, 0}, {3, 4}, {-5, 9}} {
		p := tr.TileToWorldXY(tc[0], tc[1], nil, cam, layer)
		assertPoint(t, "delegated", p, float64(tc[0])*1000, float64(tc[1])*-7)
		if gotX != tc[0] || gotY != tc[1] {
			t.Errorf("axis args = (%d,%d), want (%d,%d)", gotX, gotY, tc[0], tc[1])
		}
		if camX != cam || camY != cam || layerX != layer || layerY != layer {
			t.Error("axis transforms did not receive the caller's camera and layer")
		}
	}
}

func TestTransformerAxesUnusedForOtherOrientations(t *testing.T) {
	called := false
	axis := func(int, *Camera, *Layer) float64 { called = true; return 0 }
	tr := Transformer{AxisX: axis, AxisY: axis}
	for _, o := range []Orientation{Isometric, Staggered, Hexagonal} {
		tr.TileToWorldXY(1, 1, nil, nil, &Layer{Orientation: o, TileWidth: 32, TileHeight: 32})
	}
	if called {
		t.Error("axis transform called for a non-orthogonal layer")
	}
}

// --- Output point ---

func TestTileToWorldReusesPoint(t *testing.T) {
	layer := &Layer{Orientation: Isometric, TileWidth: 32, TileHeight: 32}
	p := &Vec2{X: 123, Y: 456}
	got := TileToWorldXY(2, 3, p, nil, layer)
	if got != p {
		t.Fatal("returned point is not the supplied point")
	}
	assertPoint(t, "point", p, -16, 80)
}

func TestTileToWorldIdempotent(t *testing.T) {
	for _, o := range []Orientation{Orthogonal, Isometric, Staggered, Hexagonal} {
		layer := &Layer{Orientation: o, TileWidth: 48, TileHeight: 24, HexSideLength: 8, Renderable: parallaxRenderable(nil)}
		cam := &Camera{ScrollX: 13, ScrollY: -21}
		a := TileToWorldXY(7, -3, nil, cam, layer)
		b := TileToWorldXY(7, -3, nil, cam, layer)
		if a == b {
			t.Fatalf("%v: fresh points share storage", o)
		}
		if *a != *b {
			t.Errorf("%v: %v != %v", o, *a, *b)
		}
	}
}

func TestTileToWorldDoesNotMutateInputs(t *testing.T) {
	scene := NewScene()
	cam := scene.NewCamera(Rect{Width: 320, Height: 240})
	cam.SetScroll(17, 29)

	for _, o := range []Orientation{Orthogonal, Isometric, Staggered, Hexagonal} {
		layer := &Layer{Name: "l", Orientation: o, TileWidth: 32, TileHeight: 34, HexSideLength: 10, Renderable: parallaxRenderable(scene)}
		layerBefore := *layer
		renderBefore := *layer.Renderable
		camBefore := *cam

		TileToWorldXY(4, 5, nil, nil, layer)
		TileToWorldXY(4, 5, &Vec2{}, cam, layer)

		if *layer != layerBefore {
			t.Errorf("%v: layer mutated", o)
		}
		if *layer.Renderable != renderBefore {
			t.Errorf("%v: renderable mutated", o)
		}
		if *cam != camBefore {
			t.Errorf("%v: camera mutated", o)
		}
	}
}

func TestTileToWorldUnknownOrientation(t *testing.T) {
	layer := &Layer{Orientation: Orientation(9), TileWidth: 32, TileHeight: 32, Renderable: parallaxRenderable(nil)}

	got := TileToWorldXY(2, 3, nil, &Camera{ScrollX: 10}, layer)
	assertPoint(t, "fresh", got, 0, 0)

	p := &Vec2{X: 5, Y: 6}
	got = TileToWorldXY(2, 3, p, nil, layer)
	if got != p {
		t.Fatal("returned point is not the supplied point")
	}
	assertPoint(t, "supplied", p, 5, 6)
}

func TestTileToWorldNonFinitePropagates(t *testing.T) {
	layer := &Layer{Orientation: Isometric, TileWidth: math.NaN(), TileHeight: math.Inf(1)}
	got := TileToWorldXY(1, 0, nil, nil, layer)
	if !math.IsNaN(got.X) {
		t.Errorf("X = %v, want NaN", got.X)
	}
	if !math.IsInf(got.Y, 1) {
		t.Errorf("Y = %v, want +Inf", got.Y)
	}
}

func TestTileToWorldConcurrent(t *testing.T) {
	layer := &Layer{Orientation: Hexagonal, TileWidth: 32, TileHeight: 34, HexSideLength: 10, Renderable: parallaxRenderable(nil)}
	cam := &Camera{ScrollX: 64, ScrollY: 32}
	want := TileToWorldXY(9, 11, nil, cam, layer)

	var wg sync.WaitGroup
	errs := make(chan Vec2, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var p Vec2
			for range 100 {
				TileToWorldXY(9, 11, &p, cam, layer)
				if p != *want {
					errs <- p
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for p := range errs {
		t.Errorf("concurrent result %v, want %v", p, *want)
	}
}

// --- Affine helpers ---

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 0.5, -1, 3, 10, 20}
	assertMatrix(t, "I*m", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "m*I", multiplyAffine(m, identityTransform), m)
}

func TestInvertAffineRoundtrip(t *testing.T) {
	m := [6]float64{2, 0.5, -1, 3, 10, 20}
	assertMatrix(t, "m*inv(m)", multiplyAffine(m, invertAffine(m)), identityTransform)
}

func TestInvertAffineSingular(t *testing.T) {
	assertMatrix(t, "singular", invertAffine([6]float64{0, 0, 0, 0, 5, 5}), identityTransform)
}

func TestTileTransform(t *testing.T) {
	r := NewRenderable(nil)
	r.SetScale(2, 3)
	layer := &Layer{Orientation: Orthogonal, TileWidth: 16, TileHeight: 16, Renderable: r}
	m := layer.tileTransform(100, 200)
	assertMatrix(t, "tile", m, [6]float64{2, 0, 0, 3, 100, 200})

	x, y := transformPoint(m, 16, 16)
	assertNear(t, "corner.X", x, 132)
	assertNear(t, "corner.Y", y, 248)
}
