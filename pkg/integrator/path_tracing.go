package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// shadowAcneEpsilon keeps bounced rays from re-hitting the surface they left
const shadowAcneEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing with a hard
// bounce limit instead of Russian roulette
type PathTracingIntegrator struct {
	MaxDepth   int
	Background Background
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int, background Background) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		MaxDepth:   maxDepth,
		Background: background,
	}
}

// RayColor follows the path for at most MaxDepth intersections, accumulating
// emission weighted by the product of attenuations seen so far
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3 {
	color := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)
	rayT := core.NewInterval(shadowAcneEpsilon, math.Inf(1))

	for depth := 0; depth < pt.MaxDepth; depth++ {
		hit, isHit := world.Hit(ray, rayT, sampler)
		if !isHit {
			return color.Add(throughput.MultiplyVec(pt.Background.Color(ray)))
		}

		emitted := hit.Material.Emitted(hit.UV, hit.Point)
		color = color.Add(throughput.MultiplyVec(emitted))

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			// Pure light or full absorption
			return color
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Bounce limit reached, no more light is gathered
	return color
}
