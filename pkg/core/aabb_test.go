package core

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestInterval_ContainsAndSurrounds(t *testing.T) {
	i := NewInterval(1, 2)

	tests := []struct {
		x         float64
		contains  bool
		surrounds bool
	}{
		{0.5, false, false},
		{1, true, false},
		{1.5, true, true},
		{2, true, false},
		{2.5, false, false},
	}

	for _, tt := range tests {
		if got := i.Contains(tt.x); got != tt.contains {
			t.Errorf("Contains(%f) = %t, want %t", tt.x, got, tt.contains)
		}
		if got := i.Surrounds(tt.x); got != tt.surrounds {
			t.Errorf("Surrounds(%f) = %t, want %t", tt.x, got, tt.surrounds)
		}
	}
}

func TestInterval_EmptyAndClamp(t *testing.T) {
	empty := EmptyInterval()
	if !empty.IsEmpty() {
		t.Error("Expected empty interval to report empty")
	}
	if empty.Contains(0) {
		t.Error("Empty interval should contain nothing")
	}

	u := empty.Union(NewInterval(-1, 1))
	if u != NewInterval(-1, 1) {
		t.Errorf("Empty is not the union identity, got %v", u)
	}

	i := NewInterval(0, 0.999)
	if got := i.Clamp(1.5); got != 0.999 {
		t.Errorf("Clamp(1.5) = %f", got)
	}
	if got := i.Clamp(-1); got != 0 {
		t.Errorf("Clamp(-1) = %f", got)
	}
}

func TestAABB_PadsDegenerateAxes(t *testing.T) {
	flat := NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(1, 0, 1))
	if flat.Y.Size() < aabbPadding {
		t.Errorf("Expected Y axis padded to at least %g, got %g", aabbPadding, flat.Y.Size())
	}
	if flat.X.Size() != 1 {
		t.Errorf("Non-degenerate axis should be untouched, got size %g", flat.X.Size())
	}

	// A ray straight down through the flat box must register a hit
	ray := NewRay(NewVec3(0.5, 1, 0.5), NewVec3(0, -1, 0))
	if !flat.Hit(ray, NewInterval(0, math.Inf(1))) {
		t.Error("Expected ray to hit padded flat box")
	}
}

func TestAABB_Hit(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		rayT     Interval
		expected bool
	}{
		{"head-on", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), NewInterval(0, math.Inf(1)), true},
		{"miss beside", NewRay(NewVec3(2, 0, -5), NewVec3(0, 0, 1)), NewInterval(0, math.Inf(1)), false},
		{"pointing away", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, -1)), NewInterval(0, math.Inf(1)), false},
		{"interval ends before box", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), NewInterval(0, 3), false},
		{"origin inside", NewRay(NewVec3(0, 0, 0), NewVec3(1, 1, 0)), NewInterval(0, math.Inf(1)), true},
		{"axis-parallel inside slab", NewRay(NewVec3(0.5, 0.5, -5), NewVec3(0, 0, 1)), NewInterval(0, math.Inf(1)), true},
		{"axis-parallel outside slab", NewRay(NewVec3(0.5, 3, -5), NewVec3(0, 0, 1)), NewInterval(0, math.Inf(1)), false},
		{"diagonal", NewRay(NewVec3(-5, -5, -5), NewVec3(1, 1, 1)), NewInterval(0, math.Inf(1)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, tt.rayT); got != tt.expected {
				t.Errorf("Hit() = %t, want %t", got, tt.expected)
			}
		})
	}
}

func TestAABB_LongestAxis(t *testing.T) {
	tests := []struct {
		max  Vec3
		axis int
	}{
		{NewVec3(3, 1, 1), 0},
		{NewVec3(1, 3, 1), 1},
		{NewVec3(1, 1, 3), 2},
	}
	for _, tt := range tests {
		box := NewAABBFromPoints(NewVec3(0, 0, 0), tt.max)
		if got := box.LongestAxis(); got != tt.axis {
			t.Errorf("LongestAxis(%v) = %d, want %d", tt.max, got, tt.axis)
		}
	}
}

func randomBox(random *rand.Rand) AABB {
	a := NewVec3(random.Float64()*10-5, random.Float64()*10-5, random.Float64()*10-5)
	b := NewVec3(random.Float64()*10-5, random.Float64()*10-5, random.Float64()*10-5)
	return NewAABBFromPoints(a, b)
}

func TestAABB_UnionProperties(t *testing.T) {
	random := rand.New(rand.NewPCG(7, 11))
	opt := cmpopts.EquateApprox(0, 1e-12)

	for i := 0; i < 100; i++ {
		a, b, c := randomBox(random), randomBox(random), randomBox(random)

		if diff := cmp.Diff(a.Union(b).Union(c), a.Union(b.Union(c)), opt); diff != "" {
			t.Fatalf("Union not associative (-left +right)\n%s", diff)
		}
		if diff := cmp.Diff(a.Union(b), b.Union(a), opt); diff != "" {
			t.Fatalf("Union not commutative (-ab +ba)\n%s", diff)
		}
		if diff := cmp.Diff(a.Union(a), a, opt); diff != "" {
			t.Fatalf("Union not idempotent (-aa +a)\n%s", diff)
		}
		if diff := cmp.Diff(EmptyAABB().Union(a), a, opt); diff != "" {
			t.Fatalf("Empty box is not the identity (-got +want)\n%s", diff)
		}
	}
}

func TestAABB_Offset(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(1, 1, 1)).Offset(NewVec3(1, 2, 3))
	want := NewAABBFromPoints(NewVec3(1, 2, 3), NewVec3(2, 3, 4))
	if diff := cmp.Diff(box, want); diff != "" {
		t.Errorf("Offset mismatch (-got +want)\n%s", diff)
	}
}
