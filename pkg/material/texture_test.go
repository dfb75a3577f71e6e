package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestCheckerTexture(t *testing.T) {
	even := core.NewVec3(1, 1, 1)
	odd := core.NewVec3(0, 0, 0)
	checker := NewCheckerTextureFromColors(0.5, even, odd)

	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Vec3
	}{
		{"origin cell", core.NewVec3(0.1, 0.1, 0.1), even},
		{"step in x", core.NewVec3(0.6, 0.1, 0.1), odd},
		{"step in x and y", core.NewVec3(0.6, 0.6, 0.1), even},
		{"negative cell", core.NewVec3(-0.1, 0.1, 0.1), odd},
		{"two negative steps", core.NewVec3(-0.1, -0.1, 0.1), even},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.Evaluate(core.Vec2{}, tt.point); got != tt.expected {
				t.Errorf("Evaluate(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestCheckerTextureComposes(t *testing.T) {
	inner := NewCheckerTextureFromColors(0.1, core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0))
	outer := NewCheckerTexture(10, inner, NewSolidColor(core.NewVec3(0, 0, 1)))

	// Inside the even outer cell the inner checker shows through
	if got := outer.Evaluate(core.Vec2{}, core.NewVec3(0.05, 0.05, 0.05)); got != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected inner even color, got %v", got)
	}
	if got := outer.Evaluate(core.Vec2{}, core.NewVec3(15, 0.05, 0.05)); got != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected outer odd color, got %v", got)
	}
}

func TestPerlinDeterministic(t *testing.T) {
	a := NewPerlin(core.NewSeededSampler(5, 0))
	b := NewPerlin(core.NewSeededSampler(5, 0))

	sampler := core.NewSeededSampler(9, 9)
	for i := 0; i < 100; i++ {
		p := core.RandomVec3InRange(sampler, -20, 20)
		if a.Noise(p) != b.Noise(p) {
			t.Fatalf("Equal seeds produced different noise at %v", p)
		}
	}
}

func TestPerlinRange(t *testing.T) {
	perlin := NewPerlin(core.NewSeededSampler(5, 1))
	sampler := core.NewSeededSampler(10, 10)

	for i := 0; i < 1000; i++ {
		p := core.RandomVec3InRange(sampler, -50, 50)
		n := perlin.Noise(p)
		if math.IsNaN(n) || n < -1.0001 || n > 1.0001 {
			t.Fatalf("Noise(%v) = %f outside [-1, 1]", p, n)
		}
		if turb := perlin.Turbulence(p, 7); turb < 0 {
			t.Fatalf("Turbulence must be non-negative, got %f", turb)
		}
	}
}

func TestPerlinZeroAtLatticePoints(t *testing.T) {
	perlin := NewPerlin(core.NewSeededSampler(5, 2))
	for _, p := range []core.Vec3{{X: 0, Y: 0, Z: 0}, {X: 3, Y: -2, Z: 7}} {
		if n := perlin.Noise(p); math.Abs(n) > 1e-12 {
			t.Errorf("Gradient noise should vanish on lattice points, Noise(%v) = %f", p, n)
		}
	}
}

func TestNoiseTextureRange(t *testing.T) {
	texture := NewNoiseTexture(4, core.NewSeededSampler(1, 2))
	sampler := core.NewSeededSampler(3, 4)

	for i := 0; i < 500; i++ {
		p := core.RandomVec3InRange(sampler, -5, 5)
		c := texture.Evaluate(core.Vec2{}, p)
		if c.X < 0 || c.X > 1 || c.X != c.Y || c.Y != c.Z {
			t.Fatalf("Expected gray level in [0,1], got %v", c)
		}
	}
}

func TestDiffuseLight(t *testing.T) {
	light := NewDiffuseLight(core.NewVec3(4, 4, 4))

	if _, ok := light.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0)), upHit(light), core.NewSeededSampler(1, 1)); ok {
		t.Error("Diffuse light should never scatter")
	}
	if got := light.Emitted(core.Vec2{}, core.Vec3{}); got != core.NewVec3(4, 4, 4) {
		t.Errorf("Expected emission (4,4,4), got %v", got)
	}
}

func TestIsotropicScattersUniformly(t *testing.T) {
	iso := NewIsotropic(core.NewVec3(0.8, 0.8, 0.8))
	sampler := core.NewSeededSampler(11, 0)
	hit := upHit(iso)

	var sum core.Vec3
	const n = 5000
	for i := 0; i < n; i++ {
		result, ok := iso.Scatter(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), hit, sampler)
		if !ok {
			t.Fatal("Isotropic should always scatter")
		}
		if math.Abs(result.Scattered.Direction.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit direction, got %v", result.Scattered.Direction)
		}
		sum = sum.Add(result.Scattered.Direction)
	}

	// Unlike a surface, the phase function ignores the normal
	if mean := sum.Multiply(1.0 / n); mean.Length() > 0.05 {
		t.Errorf("Expected directions to average near zero, got %v", mean)
	}
}
