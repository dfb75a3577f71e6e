package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms.
// Implementations are immutable and safe for concurrent use; all per-call
// randomness comes from the sampler.
type Integrator interface {
	// RayColor estimates the radiance arriving along ray
	RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3
}

var (
	skyTop    = core.NewVec3(0.5, 0.7, 1.0)
	skyBottom = core.NewVec3(1.0, 1.0, 1.0)
)

// Background is what a ray sees when it escapes the scene
type Background struct {
	color *core.Vec3
}

// SkyBackground is a white-to-blue vertical gradient
func SkyBackground() Background {
	return Background{}
}

// SolidBackground is a constant color in every direction
func SolidBackground(color core.Vec3) Background {
	return Background{color: &color}
}

// Color returns the background radiance for an escaping ray
func (b Background) Color(r core.Ray) core.Vec3 {
	if b.color != nil {
		return *b.color
	}

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	unitDirection := r.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return skyBottom.Multiply(1.0 - t).Add(skyTop.Multiply(t))
}
