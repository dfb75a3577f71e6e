package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// exitSearchOffset separates the search for the exit point from the entry point
const exitSearchOffset = 0.0001

// ConstantMedium is a homogeneous participating medium (smoke, fog) filling
// a convex boundary shape
type ConstantMedium struct {
	Boundary      Shape
	negInvDensity float64
	PhaseFunction material.Material
}

// NewConstantMedium creates a medium of the given density whose scattering color follows tex
func NewConstantMedium(boundary Shape, density float64, tex material.Texture) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		negInvDensity: -1 / density,
		PhaseFunction: material.NewTexturedIsotropic(tex),
	}
}

// NewConstantMediumFromColor creates a medium with a constant scattering color
func NewConstantMediumFromColor(boundary Shape, density float64, albedo core.Vec3) *ConstantMedium {
	return NewConstantMedium(boundary, density, material.NewSolidColor(albedo))
}

// Hit samples a free-flight distance through the medium. The result depends
// only on the inputs and the single draw taken from sampler.
func (m *ConstantMedium) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	// Entry and exit along the whole line, not just the query interval,
	// so rays starting inside the medium still work
	entry, ok := m.Boundary.Hit(ray, core.UniverseInterval(), sampler)
	if !ok {
		return nil, false
	}
	exit, ok := m.Boundary.Hit(ray, core.NewInterval(entry.T+exitSearchOffset, math.Inf(1)), sampler)
	if !ok {
		return nil, false
	}

	t1 := math.Max(entry.T, rayT.Min)
	t2 := math.Min(exit.T, rayT.Max)
	if t1 >= t2 {
		return nil, false
	}
	t1 = math.Max(t1, 0)

	rayLength := ray.Direction.Length()
	distanceInsideBoundary := (t2 - t1) * rayLength
	hitDistance := m.negInvDensity * math.Log(openUnit(sampler.Get1D()))

	if hitDistance > distanceInsideBoundary {
		return nil, false
	}

	// Isotropic scattering ignores the normal and facing
	t := t1 + hitDistance/rayLength
	return &material.HitRecord{
		T:         t,
		Point:     ray.At(t),
		Normal:    core.NewVec3(1, 0, 0),
		FrontFace: true,
		Material:  m.PhaseFunction,
	}, true
}

// openUnit maps a draw in [0, 1) to (0, 1) so its logarithm stays finite
func openUnit(u float64) float64 {
	return 1 - u
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox() core.AABB {
	return m.Boundary.BoundingBox()
}
