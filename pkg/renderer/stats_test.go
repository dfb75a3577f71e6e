package renderer

import (
	"math"
	"testing"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestAverageLuminance(t *testing.T) {
	// Red, green, blue and black pixels
	fb := NewFramebuffer(2, 2)
	fb.SetPixel(0, 0, core.NewVec3(1, 0, 0))
	fb.SetPixel(0, 1, core.NewVec3(0, 1, 0))
	fb.SetPixel(1, 0, core.NewVec3(0, 0, 1))

	// Expected average: (0.299 + 0.587 + 0.114 + 0.0) / 4 = 0.25
	avgLum := AverageLuminance(fb)
	if math.Abs(avgLum-0.25) > 1e-4 {
		t.Errorf("Expected average luminance 0.25, got %f", avgLum)
	}

	want := core.NewVec3(0.25, 0.25, 0.25)
	if got := AverageColor(fb); got.Subtract(want).Length() > 1e-12 {
		t.Errorf("Expected average color %v, got %v", want, got)
	}
}

func TestAverageLuminance_Empty(t *testing.T) {
	if got := AverageLuminance(NewFramebuffer(0, 0)); got != 0 {
		t.Errorf("Expected 0 for an empty framebuffer, got %f", got)
	}
}

func TestRenderStatsSamplesPerSecond(t *testing.T) {
	stats := RenderStats{TotalSamples: 1000, Duration: 2 * time.Second}
	if got := stats.SamplesPerSecond(); got != 500 {
		t.Errorf("Expected 500 samples/s, got %f", got)
	}
	if got := (RenderStats{TotalSamples: 10}).SamplesPerSecond(); got != 0 {
		t.Errorf("Expected 0 with no duration, got %f", got)
	}
}
