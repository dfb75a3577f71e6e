package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Translate moves a shape by a fixed offset
type Translate struct {
	Shape  Shape
	Offset core.Vec3
	bbox   core.AABB
}

// NewTranslate wraps shape so it appears displaced by offset
func NewTranslate(shape Shape, offset core.Vec3) *Translate {
	return &Translate{
		Shape:  shape,
		Offset: offset,
		bbox:   shape.BoundingBox().Offset(offset),
	}
}

// Hit moves the ray into object space, intersects, and moves the hit back
func (t *Translate) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	offsetRay := core.NewRayAtTime(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)

	hit, ok := t.Shape.Hit(offsetRay, rayT, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = hit.Point.Add(t.Offset)
	return hit, true
}

// BoundingBox returns the translated child box
func (t *Translate) BoundingBox() core.AABB {
	return t.bbox
}

// RotateY rotates a shape about the world Y axis
type RotateY struct {
	Shape    Shape
	sinTheta float64
	cosTheta float64
	bbox     core.AABB
}

// NewRotateY wraps shape so it appears rotated by angle degrees about +Y
func NewRotateY(shape Shape, angle float64) *RotateY {
	radians := angle * math.Pi / 180
	r := &RotateY{
		Shape:    shape,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	// Rotate all 8 corners of the child box and take their extent
	box := shape.BoundingBox()
	minCorner := core.NewVec3(math.Inf(1), math.Inf(1), math.Inf(1))
	maxCorner := core.NewVec3(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				x := float64(i)*box.X.Max + float64(1-i)*box.X.Min
				y := float64(j)*box.Y.Max + float64(1-j)*box.Y.Min
				z := float64(k)*box.Z.Max + float64(1-k)*box.Z.Min

				rotated := r.toWorld(core.NewVec3(x, y, z))
				minCorner = core.NewVec3(min(minCorner.X, rotated.X), min(minCorner.Y, rotated.Y), min(minCorner.Z, rotated.Z))
				maxCorner = core.NewVec3(max(maxCorner.X, rotated.X), max(maxCorner.Y, rotated.Y), max(maxCorner.Z, rotated.Z))
			}
		}
	}
	r.bbox = core.NewAABBFromPoints(minCorner, maxCorner)

	return r
}

// toObject applies the inverse rotation
func (r *RotateY) toObject(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// toWorld applies the rotation
func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// Hit rotates the ray into object space, intersects, and rotates the hit back
func (r *RotateY) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	rotatedRay := core.NewRayAtTime(r.toObject(ray.Origin), r.toObject(ray.Direction), ray.Time)

	hit, ok := r.Shape.Hit(rotatedRay, rayT, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = r.toWorld(hit.Point)
	hit.Normal = r.toWorld(hit.Normal)
	return hit, true
}

// BoundingBox returns the box of the rotated child corners
func (r *RotateY) BoundingBox() core.AABB {
	return r.bbox
}
