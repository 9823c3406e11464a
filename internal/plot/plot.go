// Package plot draws preview images of tile outlines produced by gridspace.
package plot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/phanxgames/gridspace"

	"github.com/chai2010/webp"
	"golang.org/x/image/vector"
)

// Shape is one tile outline in world coordinates.
type Shape struct {
	Layer  int // index into the palette
	TileX  int
	TileY  int
	Points []gridspace.Vec2
}

// Options control preview output.
type Options struct {
	// Padding is the empty border around the shapes, in world units.
	Padding float64
	// Scale multiplies world units into output pixels. Zero means 1.
	Scale float64
	// Background fills the image before drawing. nil means transparent.
	Background color.Color
}

// ErrUnsupportedFormat is returned by Write for unknown file extensions.
var ErrUnsupportedFormat = errors.New("plot: unsupported output format")

// ErrEmpty is returned when there is nothing to draw.
var ErrEmpty = errors.New("plot: no shapes")

// ErrTooLarge is returned when the preview would exceed MaxPixels.
var ErrTooLarge = errors.New("plot: preview too large")

// MaxPixels limits the width*height of a preview image.
const MaxPixels = 1 << 26

// palette holds per-layer outline colors.
var palette = []color.NRGBA{
	{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff},
	{R: 0x21, G: 0x96, B: 0xf3, A: 0xff},
	{R: 0xff, G: 0x98, B: 0x00, A: 0xff},
	{R: 0xe9, G: 0x1e, B: 0x63, A: 0xff},
	{R: 0x9c, G: 0x27, B: 0xb0, A: 0xff},
}

func layerColor(i int) color.NRGBA {
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}

// Outlines returns the outline of every tile in tiles on the given layer.
func Outlines(layerIndex int, layer *gridspace.Layer, cam *gridspace.Camera, tiles []image.Point) []Shape {
	shapes := make([]Shape, 0, len(tiles))
	for _, t := range tiles {
		pts := layer.TileOutline(t.X, t.Y, cam)
		if pts == nil {
			continue
		}
		shapes = append(shapes, Shape{Layer: layerIndex, TileX: t.X, TileY: t.Y, Points: pts})
	}
	return shapes
}

// Bounds returns the world-space bounding rectangle of all shapes.
func Bounds(shapes []Shape) gridspace.Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, s := range shapes {
		for _, p := range s.Points {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	if minX > maxX {
		return gridspace.Rect{}
	}
	return gridspace.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// frame maps world coordinates into output pixels.
type frame struct {
	originX, originY float64
	scale            float64
	width, height    int
}

func newFrame(shapes []Shape, opts Options) (frame, error) {
	if len(shapes) == 0 {
		return frame{}, ErrEmpty
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	b := Bounds(shapes)
	w := math.Ceil((b.Width + 2*opts.Padding) * scale)
	h := math.Ceil((b.Height + 2*opts.Padding) * scale)
	if !(w > 0 && h > 0) {
		return frame{}, fmt.Errorf("plot: degenerate bounds %v", b)
	}
	// Float comparison also rejects Inf and sizes beyond the int range.
	if w*h > MaxPixels {
		return frame{}, fmt.Errorf("%w: %.0fx%.0f pixels, limit is %d", ErrTooLarge, w, h, MaxPixels)
	}
	return frame{
		originX: b.X - opts.Padding,
		originY: b.Y - opts.Padding,
		scale:   scale,
		width:   int(w),
		height:  int(h),
	}, nil
}

func (f frame) point(p gridspace.Vec2) (float32, float32) {
	return float32((p.X - f.originX) * f.scale), float32((p.Y - f.originY) * f.scale)
}

// Raster draws the shapes into a new RGBA image: a translucent fill per tile
// and a one-pixel outline.
func Raster(shapes []Shape, opts Options) (*image.RGBA, error) {
	f, err := newFrame(shapes, opts)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	if opts.Background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}

	r := vector.NewRasterizer(f.width, f.height)
	for _, s := range shapes {
		c := layerColor(s.Layer)
		fill := color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0x40}

		r.Reset(f.width, f.height)
		r.DrawOp = draw.Over
		for i, p := range s.Points {
			x, y := f.point(p)
			if i == 0 {
				r.MoveTo(x, y)
			} else {
				r.LineTo(x, y)
			}
		}
		r.ClosePath()
		r.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{})

		r.Reset(f.width, f.height)
		r.DrawOp = draw.Over
		for i := range s.Points {
			a := s.Points[i]
			b := s.Points[(i+1)%len(s.Points)]
			strokeSegment(r, f, a, b, 1)
		}
		r.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
	}
	return img, nil
}

// strokeSegment adds a quad of the given pixel width around segment a-b.
func strokeSegment(r *vector.Rasterizer, f frame, a, b gridspace.Vec2, width float32) {
	ax, ay := f.point(a)
	bx, by := f.point(b)
	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	r.MoveTo(ax+nx, ay+ny)
	r.LineTo(bx+nx, by+ny)
	r.LineTo(bx-nx, by-ny)
	r.LineTo(ax-nx, ay-ny)
	r.ClosePath()
}

// Encode writes img in the given format ("png" or "webp").
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "webp":
		return webp.Encode(w, img, &webp.Options{Lossless: true})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// FormatFromPath returns the output format implied by a file extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "png", "webp", "svg":
		return ext, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Write renders shapes to path, choosing PNG, WebP, or SVG from the extension.
func Write(path string, shapes []Shape, opts Options) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if format == "svg" {
		data, err := SVG(shapes, opts)
		if err != nil {
			return err
		}
		return os.WriteFile(path, data, 0o644)
	}

	img, err := Raster(shapes, opts)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(out, img, format); err != nil {
		_ = out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return out.Close()
}
