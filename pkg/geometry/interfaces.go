package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
//
// Hit returns the nearest intersection with t inside rayT. It has no side
// effects; the sampler supplies the random draw that participating media
// need and is ignored by solid surfaces.
type Shape interface {
	Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool)
	BoundingBox() core.AABB
}
