package renderer

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/df07/go-pathtracer/pkg/core"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Aggregation selects how finished tiles reach the framebuffer
type Aggregation int

const (
	// AggregateMerge keeps every tile's pixels until all tiles finish, then
	// writes them sequentially
	AggregateMerge Aggregation = iota
	// AggregateLocked writes each tile into the shared framebuffer under a
	// lock taken once per tile
	AggregateLocked
)

// String returns the config spelling of the strategy
func (a Aggregation) String() string {
	switch a {
	case AggregateMerge:
		return "merge"
	case AggregateLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// ProgressFunc receives the number of completed tiles after each tile
// finishes. It may be called from several workers at once.
type ProgressFunc func(completed, total int)

// Scheduler runs tiles in parallel on a bounded number of workers
type Scheduler struct {
	renderer    *TileRenderer
	numWorkers  int
	aggregation Aggregation
	logger      core.Logger
	progress    ProgressFunc
}

// NewScheduler creates a scheduler. numWorkers <= 0 uses the CPU count.
func NewScheduler(renderer *TileRenderer, numWorkers int, aggregation Aggregation, logger core.Logger, progress ProgressFunc) *Scheduler {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Scheduler{
		renderer:    renderer,
		numWorkers:  numWorkers,
		aggregation: aggregation,
		logger:      logger,
		progress:    progress,
	}
}

// NumWorkers returns the concurrency limit
func (s *Scheduler) NumWorkers() int {
	return s.numWorkers
}

// Run renders every tile into fb and returns once all of them are done
func (s *Scheduler) Run(ctx context.Context, tiles []Tile, fb *Framebuffer) error {
	eg, ctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(s.numWorkers))

	var (
		mu        sync.Mutex
		completed atomic.Int64
		results   = make([][]PixelResult, len(tiles))
	)
	total := len(tiles)
	logEvery := max(1, total/10)

	for i, tile := range tiles {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Leave the goroutines already started to drain
			_ = eg.Wait()
			return fmt.Errorf("while acquiring worker semaphore: %w", err)
		}

		eg.Go(func() error {
			defer sem.Release(1)
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("while rendering tile %d: %w", tile.ID, err)
			}

			pixels := s.renderer.RenderTile(ctx, tile)

			switch s.aggregation {
			case AggregateLocked:
				mu.Lock()
				writePixels(fb, pixels)
				mu.Unlock()
			default:
				// Each goroutine owns its own slot
				results[i] = pixels
			}

			n := int(completed.Add(1))
			if n%logEvery == 0 || n == total {
				s.logger.Printf("Tiles completed: %d/%d (%.0f%%)\n", n, total, 100*float64(n)/float64(total))
			}
			if s.progress != nil {
				s.progress(n, total)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("while waiting for tile workers: %w", err)
	}

	if s.aggregation != AggregateLocked {
		for _, pixels := range results {
			writePixels(fb, pixels)
		}
	}
	return nil
}

func writePixels(fb *Framebuffer, pixels []PixelResult) {
	for _, p := range pixels {
		fb.SetPixel(p.Row, p.Col, p.Color)
	}
}
