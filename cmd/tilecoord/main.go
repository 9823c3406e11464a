// Command tilecoord converts tile coordinates of configured layers into world
// coordinates and optionally writes a preview of the tile outlines.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/phanxgames/gridspace"
	"github.com/phanxgames/gridspace/internal/config"
	"github.com/phanxgames/gridspace/internal/logger"
	"github.com/phanxgames/gridspace/internal/plot"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Options are the tilecoord command-line flags.
type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile   string   `short:"c" long:"config"        env:"TILECOORD_CONFIG" description:"Path to scene configuration file" default:"scene.yaml"`
	Layers       []string `short:"l" long:"layer"         description:"Layer to convert (repeatable). All layers if empty"`
	Tiles        []string `short:"t" long:"tile"          description:"Tile coordinate as X,Y (repeatable)"`
	Range        string   `short:"r" long:"range"         description:"Inclusive tile rectangle as X0,Y0:X1,Y1"`
	Camera       string   `long:"camera"                  description:"Camera name. The scene default camera if empty"`
	Format       string   `short:"f" long:"format"        description:"Output format" choice:"json" choice:"yaml" default:"json"`
	Output       string   `short:"o" long:"out"           description:"Output file path. Writes to stdout if empty"`
	Preview      string   `short:"p" long:"preview"       description:"Write a tile outline preview (.png, .webp or .svg)"`
	PreviewScale float64  `long:"preview-scale"           description:"Preview pixels per world unit" default:"1"`
}

// Result is one converted tile.
type Result struct {
	Layer       string  `json:"layer" yaml:"layer"`
	Orientation string  `json:"orientation" yaml:"orientation"`
	TileX       int     `json:"tile_x" yaml:"tile_x"`
	TileY       int     `json:"tile_y" yaml:"tile_y"`
	X           float64 `json:"x" yaml:"x"`
	Y           float64 `json:"y" yaml:"y"`
}

// maxRangeTiles caps the number of tiles a --range may expand to.
const maxRangeTiles = 1 << 20

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	if err := run(opts, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("tilecoord failed")
	}
}

func run(opts Options, stdout io.Writer) error {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	scene, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}

	cam, err := selectCamera(cfg, scene, opts.Camera)
	if err != nil {
		return err
	}

	tiles, err := collectTiles(opts.Tiles, opts.Range)
	if err != nil {
		return err
	}

	layers, err := selectLayers(scene, opts.Layers)
	if err != nil {
		return err
	}

	log.Info().
		Str("config", opts.ConfigFile).
		Int("layers", len(layers)).
		Int("tiles", len(tiles)).
		Int("cameras", len(scene.Cameras())).
		Msg("Converting tiles")

	results := make([]Result, 0, len(layers)*len(tiles))
	var shapes []plot.Shape
	var p gridspace.Vec2
	for i, layer := range layers {
		for _, t := range tiles {
			layer.TileToWorldXY(t.X, t.Y, &p, cam)
			results = append(results, Result{
				Layer:       layer.Name,
				Orientation: layer.Orientation.String(),
				TileX:       t.X,
				TileY:       t.Y,
				X:           p.X,
				Y:           p.Y,
			})
		}
		if opts.Preview != "" {
			shapes = append(shapes, plot.Outlines(i, layer, cam, tiles)...)
		}
		log.Debug().Str("layer", layer.Name).Str("orientation", layer.Orientation.String()).Msg("Layer converted")
	}

	if opts.Preview != "" {
		if err := plot.Write(opts.Preview, shapes, plot.Options{Padding: 4, Scale: opts.PreviewScale}); err != nil {
			return fmt.Errorf("write preview: %w", err)
		}
		log.Info().Str("path", opts.Preview).Int("shapes", len(shapes)).Msg("Preview written")
	}

	data, err := marshal(results, opts.Format)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, data, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		log.Info().Str("path", opts.Output).Int("results", len(results)).Str("format", opts.Format).Msg("Results written")
		return nil
	}
	_, err = stdout.Write(data)
	return err
}

func marshal(results []Result, format string) ([]byte, error) {
	if format == "yaml" {
		return yaml.Marshal(results)
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// selectCamera returns the named camera, or nil (the scene default) when
// name is empty.
func selectCamera(cfg *config.Config, scene *gridspace.Scene, name string) (*gridspace.Camera, error) {
	if name == "" {
		return nil, nil
	}
	for i, c := range cfg.Cameras {
		if c.Name == name {
			return scene.Cameras()[i], nil
		}
	}
	return nil, fmt.Errorf("camera %q not found in configuration", name)
}

func selectLayers(scene *gridspace.Scene, names []string) ([]*gridspace.Layer, error) {
	if len(names) == 0 {
		return scene.Layers(), nil
	}
	layers := make([]*gridspace.Layer, 0, len(names))
	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		l := scene.Layer(name)
		if l == nil {
			return nil, fmt.Errorf("layer %q not found in configuration", name)
		}
		layers = append(layers, l)
	}
	return layers, nil
}

func collectTiles(list []string, rng string) ([]image.Point, error) {
	tiles := make([]image.Point, 0, len(list))
	for _, s := range list {
		p, err := parsePoint(s)
		if err != nil {
			return nil, fmt.Errorf("--tile %q: %w", s, err)
		}
		tiles = append(tiles, p)
	}

	if rng != "" {
		r, err := parseRange(rng)
		if err != nil {
			return nil, fmt.Errorf("--range %q: %w", rng, err)
		}
		// Offsets keep the loops finite when Max is math.MaxInt.
		for dy := 0; dy <= r.Dy(); dy++ {
			for dx := 0; dx <= r.Dx(); dx++ {
				tiles = append(tiles, image.Pt(r.Min.X+dx, r.Min.Y+dy))
			}
		}
	}

	if len(tiles) == 0 {
		return nil, errors.New("no tiles given: use --tile or --range")
	}
	return tiles, nil
}

func parsePoint(s string) (image.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return image.Point{}, errors.New("expected X,Y")
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return image.Point{}, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return image.Point{}, err
	}
	return image.Pt(x, y), nil
}

// parseRange parses "X0,Y0:X1,Y1" into a rectangle whose Max is inclusive.
func parseRange(s string) (image.Rectangle, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return image.Rectangle{}, errors.New("expected X0,Y0:X1,Y1")
	}
	p0, err := parsePoint(a)
	if err != nil {
		return image.Rectangle{}, err
	}
	p1, err := parsePoint(b)
	if err != nil {
		return image.Rectangle{}, err
	}
	r := image.Rectangle{Min: p0, Max: p1}
	if r.Min.X > r.Max.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Min.Y > r.Max.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	// Unsigned subtraction gives the exact span even across the full int range.
	w := uint64(r.Max.X) - uint64(r.Min.X)
	h := uint64(r.Max.Y) - uint64(r.Min.Y)
	if w >= maxRangeTiles || h >= maxRangeTiles || (w+1)*(h+1) > maxRangeTiles {
		return image.Rectangle{}, fmt.Errorf("range exceeds the limit of %d tiles", maxRangeTiles)
	}
	return r, nil
}
