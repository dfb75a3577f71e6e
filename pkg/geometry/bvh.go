package geometry

import (
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// BVHNode represents a node in the Bounding Volume Hierarchy.
// A node's box is the union of its children's boxes. A node built over a
// single shape holds that shape as both children.
type BVHNode struct {
	Left  Shape
	Right Shape
	bbox  core.AABB
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// It is immutable after construction.
type BVH struct {
	Root *BVHNode // nil when built from no shapes
}

// BVHStats describes the shape of a built hierarchy
type BVHStats struct {
	Nodes      int // Interior nodes
	Primitives int // Child references that are not BVH nodes
	MaxDepth   int
}

// NewBVH constructs a BVH from a slice of shapes
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{}
	}

	// Sorting happens in place, so work on a copy of the caller's slice
	working := make([]Shape, len(shapes))
	copy(working, shapes)

	return &BVH{Root: buildBVH(working)}
}

// NewBVHFromList constructs a BVH over the shapes of a list
func NewBVHFromList(list *HittableList) *BVH {
	return NewBVH(list.Shapes())
}

// buildBVH recursively splits shapes at the median along the longest axis
func buildBVH(shapes []Shape) *BVHNode {
	bbox := core.EmptyAABB()
	for _, shape := range shapes {
		bbox = bbox.Union(shape.BoundingBox())
	}

	switch len(shapes) {
	case 1:
		return &BVHNode{Left: shapes[0], Right: shapes[0], bbox: bbox}
	case 2:
		return &BVHNode{Left: shapes[0], Right: shapes[1], bbox: bbox}
	}

	axis := bbox.LongestAxis()
	sort.SliceStable(shapes, func(i, j int) bool {
		return shapes[i].BoundingBox().Axis(axis).Min < shapes[j].BoundingBox().Axis(axis).Min
	})

	mid := len(shapes) / 2
	return &BVHNode{
		Left:  buildBVH(shapes[:mid]),
		Right: buildBVH(shapes[mid:]),
		bbox:  bbox,
	}
}

// Hit tests the node box, then both children, narrowing the right search
// to anything closer than the left hit
func (n *BVHNode) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	if !n.bbox.Hit(ray, rayT) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, rayT, sampler)

	rightT := rayT
	if hitLeft {
		rightT.Max = leftHit.T
	}
	if rightHit, hitRight := n.Right.Hit(ray, rightT, sampler); hitRight {
		return rightHit, true
	}

	return leftHit, hitLeft
}

// BoundingBox returns the node's box
func (n *BVHNode) BoundingBox() core.AABB {
	return n.bbox
}

// Hit tests if a ray intersects any shape in the BVH
func (bvh *BVH) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return bvh.Root.Hit(ray, rayT, sampler)
}

// BoundingBox implements the Shape interface - returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.EmptyAABB()
	}
	return bvh.Root.bbox
}

// Stats returns statistics about the BVH structure
func (bvh *BVH) Stats() BVHStats {
	var stats BVHStats
	if bvh.Root != nil {
		collectStats(bvh.Root, 1, &stats)
	}
	return stats
}

func collectStats(shape Shape, depth int, stats *BVHStats) {
	node, ok := shape.(*BVHNode)
	if !ok {
		stats.Primitives++
		return
	}

	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}
	collectStats(node.Left, depth+1, stats)
	collectStats(node.Right, depth+1, stats)
}
