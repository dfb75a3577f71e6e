package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrInvalidConfig is returned by Render when the options cannot produce an image
var ErrInvalidConfig = errors.New("invalid render configuration")

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// RenderOptions contains configuration for a single render
type RenderOptions struct {
	SamplesPerPixel int          // Number of camera rays per pixel
	TileSize        int          // Size of each square tile in pixels
	NumWorkers      int          // Number of parallel workers (0 = use CPU count)
	Seed            uint64       // Base seed for every random stream
	SeedMode        SeedMode     // Per-pixel or per-tile streams
	Aggregation     Aggregation  // How tiles are committed to the framebuffer
	Progress        ProgressFunc // Optional callback after each tile
}

// DefaultRenderOptions returns sensible default values
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		SamplesPerPixel: 100,
		TileSize:        64,
		NumWorkers:      0, // Auto-detect CPU count
		Seed:            42,
		SeedMode:        SeedPerPixel,
		Aggregation:     AggregateMerge,
	}
}

// Raytracer drives a full render of one world through one camera
type Raytracer struct {
	world      geometry.Shape
	camera     *Camera
	integrator integrator.Integrator
	options    RenderOptions
	logger     core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(world geometry.Shape, camera *Camera, integratorInst integrator.Integrator, options RenderOptions, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integratorInst,
		options:    options,
		logger:     logger,
	}
}

// Options returns the render options
func (rt *Raytracer) Options() RenderOptions {
	return rt.options
}

func (rt *Raytracer) validate() error {
	switch {
	case rt.world == nil:
		return fmt.Errorf("%w: no world to render", ErrInvalidConfig)
	case rt.camera == nil:
		return fmt.Errorf("%w: no camera", ErrInvalidConfig)
	case rt.integrator == nil:
		return fmt.Errorf("%w: no integrator", ErrInvalidConfig)
	case rt.options.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, rt.options.SamplesPerPixel)
	case rt.options.TileSize <= 0:
		return fmt.Errorf("%w: tile size must be positive, got %d", ErrInvalidConfig, rt.options.TileSize)
	case rt.options.NumWorkers < 0:
		return fmt.Errorf("%w: worker count must not be negative, got %d", ErrInvalidConfig, rt.options.NumWorkers)
	}
	return nil
}

// Render renders every tile and returns the assembled framebuffer. It
// blocks until all tiles finish, the first error, or ctx cancellation.
func (rt *Raytracer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	if err := rt.validate(); err != nil {
		return nil, RenderStats{}, err
	}

	width, height := rt.camera.Width(), rt.camera.Height()
	tiles := NewTileGrid(width, height, rt.options.TileSize)

	tracer := otel.Tracer("go-pathtracer/renderer")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Raytracer.Render", trace.WithAttributes(
		attribute.Int("image.width", width),
		attribute.Int("image.height", height),
		attribute.Int("render.tiles", len(tiles)),
		attribute.Int("render.samples", rt.options.SamplesPerPixel),
	))
	defer span.End()

	tileRenderer := NewTileRenderer(rt.world, rt.camera, rt.integrator, rt.options.SamplesPerPixel, rt.options.Seed, rt.options.SeedMode)
	scheduler := NewScheduler(tileRenderer, rt.options.NumWorkers, rt.options.Aggregation, rt.logger, rt.options.Progress)

	rt.logger.Printf("Rendering %dx%d, %d spp, %d tiles on %d workers\n",
		width, height, rt.options.SamplesPerPixel, len(tiles), scheduler.NumWorkers())

	start := time.Now()
	fb := NewFramebuffer(width, height)
	if err := scheduler.Run(ctx, tiles, fb); err != nil {
		span.RecordError(err)
		return nil, RenderStats{}, fmt.Errorf("failed to render: %w", err)
	}

	stats := RenderStats{
		TotalPixels:     width * height,
		TotalSamples:    width * height * rt.options.SamplesPerPixel,
		SamplesPerPixel: rt.options.SamplesPerPixel,
		Tiles:           len(tiles),
		Workers:         scheduler.NumWorkers(),
		Duration:        time.Since(start),
	}
	rt.logger.Printf("Render complete in %v\n", stats.Duration)

	return fb, stats, nil
}
