// Package config loads scene descriptions (cameras and tile layers) from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/phanxgames/gridspace"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Cameras []Camera `yaml:"cameras,omitempty" json:"cameras,omitempty"`
	Layers  []Layer  `yaml:"layers" json:"layers"`
}

// Camera describes one scene camera. The first camera is the scene default.
type Camera struct {
	Name     string         `yaml:"name" json:"name"`
	Viewport gridspace.Rect `yaml:"viewport" json:"viewport"`
	ScrollX  float64        `yaml:"scroll_x,omitempty" json:"scroll_x,omitempty"`
	ScrollY  float64        `yaml:"scroll_y,omitempty" json:"scroll_y,omitempty"`
	Zoom     float64        `yaml:"zoom,omitempty" json:"zoom,omitempty"`
}

// Layer describes one tile layer. A missing orientation means orthogonal.
type Layer struct {
	Name          string                `yaml:"name" json:"name"`
	Orientation   gridspace.Orientation `yaml:"orientation" json:"orientation"`
	TileWidth     float64               `yaml:"tile_width" json:"tile_width"`
	TileHeight    float64               `yaml:"tile_height" json:"tile_height"`
	HexSideLength float64               `yaml:"hex_side_length,omitempty" json:"hex_side_length,omitempty"`
	Renderable    *Renderable           `yaml:"renderable,omitempty" json:"renderable,omitempty"`
}

// Renderable describes a layer's placement. Omitted scale and scroll factors
// default to 1.
type Renderable struct {
	X             float64  `yaml:"x,omitempty" json:"x,omitempty"`
	Y             float64  `yaml:"y,omitempty" json:"y,omitempty"`
	ScaleX        *float64 `yaml:"scale_x,omitempty" json:"scale_x,omitempty"`
	ScaleY        *float64 `yaml:"scale_y,omitempty" json:"scale_y,omitempty"`
	ScrollFactorX *float64 `yaml:"scroll_factor_x,omitempty" json:"scroll_factor_x,omitempty"`
	ScrollFactorY *float64 `yaml:"scroll_factor_y,omitempty" json:"scroll_factor_y,omitempty"`
}

// ErrNoLayers is returned when a configuration defines no layers.
var ErrNoLayers = errors.New("config: no layers defined")

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML configuration data. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if len(cfg.Layers) == 0 {
		return nil, ErrNoLayers
	}
	return &cfg, nil
}

// Build creates a scene with the configured cameras and layers. Every layer
// is validated; the first invalid one aborts the build.
func (c *Config) Build() (*gridspace.Scene, error) {
	scene := gridspace.NewScene()

	for _, cc := range c.Cameras {
		cam := scene.NewCamera(cc.Viewport)
		cam.SetScroll(cc.ScrollX, cc.ScrollY)
		if cc.Zoom != 0 {
			cam.Zoom = cc.Zoom
		}
	}

	seen := make(map[string]bool, len(c.Layers))
	for _, lc := range c.Layers {
		if seen[lc.Name] {
			return nil, fmt.Errorf("config: duplicate layer name %q", lc.Name)
		}
		seen[lc.Name] = true

		layer := lc.layer()
		if err := layer.Validate(); err != nil {
			return nil, err
		}
		scene.AddLayer(layer)
	}

	return scene, nil
}

func (lc Layer) layer() *gridspace.Layer {
	layer := gridspace.NewLayer(lc.Name, lc.Orientation, lc.TileWidth, lc.TileHeight)
	layer.HexSideLength = lc.HexSideLength
	if rc := lc.Renderable; rc != nil {
		r := gridspace.NewRenderable(nil)
		r.SetPosition(rc.X, rc.Y)
		r.SetScale(orOne(rc.ScaleX), orOne(rc.ScaleY))
		r.SetScrollFactor(orOne(rc.ScrollFactorX), orOne(rc.ScrollFactorY))
		layer.Renderable = r
	}
	return layer
}

func orOne(v *float64) float64 {
	if v == nil {
		return 1
	}
	return *v
}
