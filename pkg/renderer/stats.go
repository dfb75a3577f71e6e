package renderer

import (
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera samples taken
	SamplesPerPixel int           // Samples taken for each pixel
	Tiles           int           // Number of tiles the image was split into
	Workers         int           // Concurrency limit used by the scheduler
	Duration        time.Duration // Wall time spent rendering
}

// SamplesPerSecond returns the sampling throughput of the render
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// AverageLuminance returns the mean linear luminance over all pixels
func AverageLuminance(fb *Framebuffer) float64 {
	if fb.width == 0 || fb.height == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range fb.pixels {
		sum += c.Luminance()
	}
	return sum / float64(len(fb.pixels))
}

// AverageColor returns the mean linear color over all pixels
func AverageColor(fb *Framebuffer) core.Vec3 {
	if len(fb.pixels) == 0 {
		return core.Vec3{}
	}
	sum := core.Vec3{}
	for _, c := range fb.pixels {
		sum = sum.Add(c)
	}
	return sum.Divide(float64(len(fb.pixels)))
}
