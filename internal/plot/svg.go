package plot

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
)

const svgMime = "image/svg+xml"

// SVG renders shapes as a minified SVG document with one polygon per tile.
// Polygons carry data-tile attributes ("x,y") for inspection in a browser.
func SVG(shapes []Shape, opts Options) ([]byte, error) {
	f, err := newFrame(shapes, opts)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		f.width, f.height, f.width, f.height)
	if opts.Background != nil {
		fmt.Fprintf(&b, `  <rect x="0" y="0" width="100%%" height="100%%" fill="%s" />`+"\n", hexColor(opts.Background))
	}
	for _, s := range shapes {
		c := hexColor(layerColor(s.Layer))
		fmt.Fprintf(&b, `  <polygon data-tile="%d,%d" fill="%s" fill-opacity="0.25" stroke="%s" stroke-width="1" points="`,
			s.TileX, s.TileY, c, c)
		for i, p := range s.Points {
			if i > 0 {
				b.WriteByte(' ')
			}
			x, y := f.point(p)
			b.WriteString(strconv.FormatFloat(float64(x), 'f', 2, 32))
			b.WriteByte(',')
			b.WriteString(strconv.FormatFloat(float64(y), 'f', 2, 32))
		}
		b.WriteString("\" />\n")
	}
	b.WriteString("</svg>\n")

	m := minify.New()
	m.AddFunc(svgMime, svg.Minify)
	out, err := m.Bytes(svgMime, []byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("plot: minify svg: %w", err)
	}
	return out, nil
}

func hexColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}
