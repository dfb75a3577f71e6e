package renderer

import (
	"context"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// SeedMode selects how random streams are assigned to pixels
type SeedMode int

const (
	// SeedPerPixel gives every pixel its own stream, so output does not
	// depend on tile size or scheduling order
	SeedPerPixel SeedMode = iota
	// SeedPerTile gives every tile one stream consumed in scanline order
	SeedPerTile
)

// String returns the config spelling of the mode
func (m SeedMode) String() string {
	switch m {
	case SeedPerPixel:
		return "pixel"
	case SeedPerTile:
		return "tile"
	default:
		return "unknown"
	}
}

// PixelResult is one finished pixel produced by a tile
type PixelResult struct {
	Row   int
	Col   int
	Color core.Vec3
}

// TileRenderer renders individual tiles using an integrator. It holds no
// mutable state, so one instance serves every worker.
type TileRenderer struct {
	world           geometry.Shape
	camera          *Camera
	integrator      integrator.Integrator
	samplesPerPixel int
	seed            uint64
	seedMode        SeedMode
}

// NewTileRenderer creates a new tile renderer
func NewTileRenderer(world geometry.Shape, camera *Camera, integratorInst integrator.Integrator, samplesPerPixel int, seed uint64, seedMode SeedMode) *TileRenderer {
	return &TileRenderer{
		world:           world,
		camera:          camera,
		integrator:      integratorInst,
		samplesPerPixel: samplesPerPixel,
		seed:            seed,
		seedMode:        seedMode,
	}
}

// RenderTile computes the Monte Carlo mean of every pixel in the tile
func (tr *TileRenderer) RenderTile(ctx context.Context, tile Tile) []PixelResult {
	tracer := otel.Tracer("go-pathtracer/renderer")
	var span trace.Span
	_, span = tracer.Start(ctx, "TileRenderer.RenderTile", trace.WithAttributes(
		attribute.Int("tile.id", tile.ID),
		attribute.Int("tile.pixels", tile.Bounds.Dx()*tile.Bounds.Dy()),
	))
	defer span.End()

	results := make([]PixelResult, 0, tile.Bounds.Dx()*tile.Bounds.Dy())

	var tileSampler core.Sampler
	if tr.seedMode == SeedPerTile {
		tileSampler = core.NewSeededSampler(tr.seed, uint64(tile.ID))
	}

	for row := tile.Bounds.Min.Y; row < tile.Bounds.Max.Y; row++ {
		for col := tile.Bounds.Min.X; col < tile.Bounds.Max.X; col++ {
			sampler := tileSampler
			if sampler == nil {
				sampler = tr.pixelSampler(row, col)
			}
			results = append(results, PixelResult{
				Row:   row,
				Col:   col,
				Color: tr.samplePixel(row, col, sampler),
			})
		}
	}

	return results
}

// pixelSampler returns the private stream for one pixel
func (tr *TileRenderer) pixelSampler(row, col int) core.Sampler {
	return core.NewSeededSampler(tr.seed, uint64(row*tr.camera.Width()+col))
}

// samplePixel averages samplesPerPixel independent estimates for one pixel
func (tr *TileRenderer) samplePixel(row, col int, sampler core.Sampler) core.Vec3 {
	colorAccum := core.Vec3{}
	for sample := 0; sample < tr.samplesPerPixel; sample++ {
		ray := tr.camera.GetRay(col, row, sampler)
		colorAccum = colorAccum.Add(tr.integrator.RayColor(ray, tr.world, sampler))
	}
	return colorAccum.Multiply(1.0 / float64(tr.samplesPerPixel))
}
