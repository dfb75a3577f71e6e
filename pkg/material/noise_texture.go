package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// turbulenceOctaves is the number of noise octaves in the marble pattern
const turbulenceOctaves = 7

// NoiseTexture is a marble-like pattern: a sine wave along z whose phase is
// warped by Perlin turbulence
type NoiseTexture struct {
	noise *Perlin
	Scale float64
}

// NewNoiseTexture creates a marble texture with a freshly built noise field
func NewNoiseTexture(scale float64, sampler core.Sampler) *NoiseTexture {
	return &NoiseTexture{noise: NewPerlin(sampler), Scale: scale}
}

// NewNoiseTextureFromPerlin creates a marble texture sharing an existing noise field
func NewNoiseTextureFromPerlin(scale float64, noise *Perlin) *NoiseTexture {
	return &NoiseTexture{noise: noise, Scale: scale}
}

// Evaluate returns a gray level in [0, 1]
func (n *NoiseTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	phase := n.Scale*point.Z + 10*n.noise.Turbulence(point, turbulenceOctaves)
	return core.NewVec3(0.5, 0.5, 0.5).Multiply(1 + math.Sin(phase))
}

func (*NoiseTexture) isTexture() {}
