// Package config reads render settings from YAML files and layers them
// over a built-in scene's defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"gopkg.in/yaml.v3"
)

// Vector is a three-component YAML sequence such as [0, 1, 0]
type Vector []float64

// Vec3 converts the sequence to a core.Vec3
func (v Vector) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// RenderConfig holds render invocation parameters. Every field is optional;
// nil fields leave the scene or renderer default in place.
type RenderConfig struct {
	Scene           *string  `yaml:"scene"`
	Width           *int     `yaml:"width"`
	AspectRatio     *float64 `yaml:"aspect_ratio"`
	VFov            *float64 `yaml:"vfov"`
	LookFrom        Vector   `yaml:"look_from"`
	LookAt          Vector   `yaml:"look_at"`
	Up              Vector   `yaml:"up"`
	Aperture        *float64 `yaml:"aperture"`
	FocusDistance   *float64 `yaml:"focus_distance"`
	Background      Vector   `yaml:"background"`
	SamplesPerPixel *int     `yaml:"samples_per_pixel"`
	MaxDepth        *int     `yaml:"max_depth"`
	TileSize        *int     `yaml:"tile_size"`
	Workers         *int     `yaml:"workers"`
	Seed            *uint64  `yaml:"seed"`
	SeedMode        *string  `yaml:"seed_mode"`
	Aggregation     *string  `yaml:"aggregation"`
	Integrator      *string  `yaml:"integrator"`
	Texture         *string  `yaml:"texture"`
	Output          *string  `yaml:"output"`
}

// Load reads and validates a YAML config file
func Load(path string) (RenderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RenderConfig{}, fmt.Errorf("while reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return RenderConfig{}, fmt.Errorf("while parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates YAML config data. Unknown keys are rejected.
func Parse(data []byte) (RenderConfig, error) {
	var cfg RenderConfig

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return RenderConfig{}, fmt.Errorf("while decoding YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return RenderConfig{}, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerated values of the set fields
func (c RenderConfig) Validate() error {
	vectors := []struct {
		name string
		v    Vector
	}{
		{"look_from", c.LookFrom},
		{"look_at", c.LookAt},
		{"up", c.Up},
		{"background", c.Background},
	}
	for _, vec := range vectors {
		if vec.v != nil && len(vec.v) != 3 {
			return fmt.Errorf("%s must have 3 components, got %d", vec.name, len(vec.v))
		}
	}

	positive := []struct {
		name string
		v    *int
	}{
		{"width", c.Width},
		{"samples_per_pixel", c.SamplesPerPixel},
		{"max_depth", c.MaxDepth},
		{"tile_size", c.TileSize},
	}
	for _, p := range positive {
		if p.v != nil && *p.v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", p.name, *p.v)
		}
	}

	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", *c.Workers)
	}
	if c.AspectRatio != nil && *c.AspectRatio <= 0 {
		return fmt.Errorf("aspect_ratio must be positive, got %g", *c.AspectRatio)
	}
	if c.VFov != nil && (*c.VFov <= 0 || *c.VFov >= 180) {
		return fmt.Errorf("vfov must be in (0, 180), got %g", *c.VFov)
	}
	if c.Aperture != nil && *c.Aperture < 0 {
		return fmt.Errorf("aperture must not be negative, got %g", *c.Aperture)
	}
	if c.SeedMode != nil {
		if _, err := ParseSeedMode(*c.SeedMode); err != nil {
			return err
		}
	}
	if c.Aggregation != nil {
		if _, err := ParseAggregation(*c.Aggregation); err != nil {
			return err
		}
	}
	if c.Integrator != nil && *c.Integrator != scene.IntegratorPath && *c.Integrator != scene.IntegratorNormal {
		return fmt.Errorf("integrator must be %q or %q, got %q", scene.IntegratorPath, scene.IntegratorNormal, *c.Integrator)
	}
	return nil
}

// Merge returns c with every set field of override applied on top
func (c RenderConfig) Merge(override RenderConfig) RenderConfig {
	result := c
	dst := reflect.ValueOf(&result).Elem()
	src := reflect.ValueOf(override)
	for i := 0; i < src.NumField(); i++ {
		// Every field is a pointer or a slice
		if !src.Field(i).IsNil() {
			dst.Field(i).Set(src.Field(i))
		}
	}
	return result
}

// Apply writes the camera and sampling settings onto a scene
func (c RenderConfig) Apply(s *scene.Scene) {
	camera := &s.CameraConfig
	if c.Width != nil {
		camera.Width = *c.Width
	}
	if c.AspectRatio != nil {
		camera.AspectRatio = *c.AspectRatio
	}
	if c.VFov != nil {
		camera.VFov = *c.VFov
	}
	if c.LookFrom != nil {
		camera.Center = c.LookFrom.Vec3()
	}
	if c.LookAt != nil {
		camera.LookAt = c.LookAt.Vec3()
	}
	if c.Up != nil {
		camera.Up = c.Up.Vec3()
	}
	if c.Aperture != nil {
		camera.Aperture = *c.Aperture
	}
	if c.FocusDistance != nil {
		camera.FocusDistance = *c.FocusDistance
	}
	if c.Background != nil {
		s.SetBackground(c.Background.Vec3())
	}
	if c.SamplesPerPixel != nil {
		s.SamplesPerPixel = *c.SamplesPerPixel
	}
	if c.MaxDepth != nil {
		s.MaxDepth = *c.MaxDepth
	}
}

// RenderOptions layers the scheduler settings over base
func (c RenderConfig) RenderOptions(base renderer.RenderOptions) renderer.RenderOptions {
	options := base
	if c.SamplesPerPixel != nil {
		options.SamplesPerPixel = *c.SamplesPerPixel
	}
	if c.TileSize != nil {
		options.TileSize = *c.TileSize
	}
	if c.Workers != nil {
		options.NumWorkers = *c.Workers
	}
	if c.Seed != nil {
		options.Seed = *c.Seed
	}
	if c.SeedMode != nil {
		// Validated on parse
		options.SeedMode, _ = ParseSeedMode(*c.SeedMode)
	}
	if c.Aggregation != nil {
		options.Aggregation, _ = ParseAggregation(*c.Aggregation)
	}
	return options
}

// SceneOptions returns the inputs for building the configured scene
func (c RenderConfig) SceneOptions() scene.Options {
	var options scene.Options
	if c.Seed != nil {
		options.Seed = *c.Seed
	}
	if c.Texture != nil {
		options.TexturePath = *c.Texture
	}
	return options
}

// ParseSeedMode converts "pixel" or "tile" to a renderer.SeedMode
func ParseSeedMode(s string) (renderer.SeedMode, error) {
	for _, mode := range []renderer.SeedMode{renderer.SeedPerPixel, renderer.SeedPerTile} {
		if mode.String() == s {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("seed mode must be %q or %q, got %q", renderer.SeedPerPixel, renderer.SeedPerTile, s)
}

// ParseAggregation converts "merge" or "locked" to a renderer.Aggregation
func ParseAggregation(s string) (renderer.Aggregation, error) {
	for _, a := range []renderer.Aggregation{renderer.AggregateMerge, renderer.AggregateLocked} {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("aggregation must be %q or %q, got %q", renderer.AggregateMerge, renderer.AggregateLocked, s)
}
