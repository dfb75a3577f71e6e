package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestQuad_Hit_BasicIntersection(t *testing.T) {
	// Create a 1x1 quad in the XZ plane at y=0
	corner := core.NewVec3(0, 0, 0)
	u := core.NewVec3(1, 0, 0) // X direction
	v := core.NewVec3(0, 0, 1) // Z direction
	quad := NewQuad(corner, u, v, testMaterial)

	// Ray shooting up at a point of the quad (normal is u × v = -y)
	ray := core.NewRay(core.NewVec3(0.25, -1, 0.75), core.NewVec3(0, 1, 0))

	hit, isHit := quad.Hit(ray, forever(0.001), nil)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(hit.T-1) > 1e-9 {
		t.Errorf("Expected t=1, got t=%f", hit.T)
	}
	if hit.Point.Subtract(core.NewVec3(0.25, 0, 0.75)).Length() > 1e-9 {
		t.Errorf("Unexpected hit point %v", hit.Point)
	}
	if math.Abs(hit.UV.X-0.25) > 1e-9 || math.Abs(hit.UV.Y-0.75) > 1e-9 {
		t.Errorf("Expected UV (0.25, 0.75), got %v", hit.UV)
	}
	if !hit.FrontFace {
		t.Error("Ray travelling against the normal should hit the front face")
	}
}

func TestQuad_Hit_OutsideBounds(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), testMaterial)

	tests := []struct {
		name      string
		rayOrigin core.Vec3
		rayDir    core.Vec3
	}{
		{"outside X bounds (negative)", core.NewVec3(-0.5, 1, 0.5), core.NewVec3(0, -1, 0)},
		{"outside X bounds (positive)", core.NewVec3(1.5, 1, 0.5), core.NewVec3(0, -1, 0)},
		{"outside Z bounds (negative)", core.NewVec3(0.5, 1, -0.5), core.NewVec3(0, -1, 0)},
		{"outside Z bounds (positive)", core.NewVec3(0.5, 1, 1.5), core.NewVec3(0, -1, 0)},
		{"parallel to plane", core.NewVec3(0.5, 0, -1), core.NewVec3(0, 0, 1)},
		{"pointing away", core.NewVec3(0.5, 1, 0.5), core.NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDir)
			if hit, isHit := quad.Hit(ray, forever(0.001), nil); isHit {
				t.Errorf("Expected miss, but got hit at t=%f", hit.T)
			}
		})
	}
}

func TestQuad_NonSquareParallelogram(t *testing.T) {
	// Skewed edges: interior test must use the (u, v) basis, not world axes
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(1, 1, 0), testMaterial)

	inside := core.NewRay(core.NewVec3(2.5, 0.5, 1), core.NewVec3(0, 0, -1))
	hit, isHit := quad.Hit(inside, forever(0.001), nil)
	if !isHit {
		t.Fatal("Expected hit inside the parallelogram")
	}
	if math.Abs(hit.UV.X-1) > 1e-9 || math.Abs(hit.UV.Y-0.5) > 1e-9 {
		t.Errorf("Expected UV (1, 0.5), got %v", hit.UV)
	}

	// Inside the bounding box but outside the skewed shape
	outside := core.NewRay(core.NewVec3(0.1, 0.9, 1), core.NewVec3(0, 0, -1))
	if _, isHit := quad.Hit(outside, forever(0.001), nil); isHit {
		t.Error("Expected miss outside the parallelogram")
	}
}

func TestQuad_BoundingBoxPadded(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), testMaterial)
	box := quad.BoundingBox()
	if box.Y.Size() <= 0 {
		t.Errorf("Flat quad box must be padded, got Y=%v", box.Y)
	}
}

func TestBox_HitFromEverySide(t *testing.T) {
	box := NewBox(core.NewVec3(1, 1, 1), core.NewVec3(-1, -1, -1), testMaterial)
	if box.Len() != 6 {
		t.Fatalf("Expected six faces, got %d", box.Len())
	}

	directions := []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0),
		core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0),
		core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1),
	}

	for _, d := range directions {
		// From outside toward the center
		ray := core.NewRay(d.Multiply(-5), d)
		hit, isHit := box.Hit(ray, forever(0.001), nil)
		if !isHit {
			t.Fatalf("Expected hit travelling %v", d)
		}
		if math.Abs(hit.T-4) > 1e-9 {
			t.Errorf("Travelling %v: expected t=4, got %f", d, hit.T)
		}
		if !hit.FrontFace {
			t.Errorf("Travelling %v: outward normals should make the entry a front face", d)
		}
		if hit.Normal.Subtract(d.Negate()).Length() > 1e-9 {
			t.Errorf("Travelling %v: expected normal %v, got %v", d, d.Negate(), hit.Normal)
		}
	}
}
