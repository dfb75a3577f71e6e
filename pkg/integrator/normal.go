package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// NormalIntegrator shades the first hit by its surface normal, mapped from
// [-1, 1] to [0, 1]. Useful for checking geometry and camera setup.
type NormalIntegrator struct {
	Background Background
}

// NewNormalIntegrator creates a normal-shading integrator
func NewNormalIntegrator(background Background) *NormalIntegrator {
	return &NormalIntegrator{Background: background}
}

// RayColor returns 0.5 * (normal + 1) for the nearest hit
func (n *NormalIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3 {
	hit, isHit := world.Hit(ray, core.NewInterval(0, math.Inf(1)), sampler)
	if !isHit {
		return n.Background.Color(ray)
	}
	return hit.Normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
}
