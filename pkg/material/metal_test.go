package material

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestNewMetal_RoughnessClamp(t *testing.T) {
	tests := []struct {
		name              string
		inputRoughness    float64
		expectedRoughness float64
	}{
		{"Valid roughness 0.0", 0.0, 0.0},
		{"Valid roughness 0.5", 0.5, 0.5},
		{"Valid roughness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputRoughness)
			if metal.Roughness != tt.expectedRoughness {
				t.Errorf("Expected roughness %f, got %f", tt.expectedRoughness, metal.Roughness)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewSeededSampler(42, 0)

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))
	hit := upHit(metal)

	scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	expected := core.NewVec3(1, 1, 0).Normalize()
	if scatter.Scattered.Direction.Subtract(expected).Length() > 1e-10 {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, scatter.Scattered.Direction)
	}
	if scatter.Attenuation != albedo {
		t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
	}
}

func TestMetal_RoughReflectionStaysAboveSurfaceOrAbsorbs(t *testing.T) {
	metal := NewMetal(core.NewVec3(1, 1, 1), 1.0)
	sampler := core.NewSeededSampler(7, 0)

	// Grazing incidence: heavy roughness pushes many reflections under the surface
	rayIn := core.NewRay(core.NewVec3(-1, 0.05, 0), core.NewVec3(1, -0.05, 0))
	hit := upHit(metal)

	absorbed, scattered := 0, 0
	for i := 0; i < 2000; i++ {
		scatter, ok := metal.Scatter(rayIn, hit, sampler)
		if !ok {
			absorbed++
			continue
		}
		scattered++
		if scatter.Scattered.Direction.Dot(hit.Normal) <= 0 {
			t.Fatalf("Scattered ray %v points into the surface", scatter.Scattered.Direction)
		}
	}

	if absorbed == 0 || scattered == 0 {
		t.Errorf("Expected a mix of absorption and scattering, got absorbed=%d scattered=%d", absorbed, scattered)
	}
}
