package scene

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/google/go-cmp/cmp"
)

func writeTexture(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		img.Set(x, 0, color.RGBA{R: 200, G: 50, B: 10, A: 255})
		img.Set(x, 1, color.RGBA{R: 10, G: 50, B: 200, A: 255})
	}
	path := filepath.Join(t.TempDir(), "globe.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNames(t *testing.T) {
	want := []string{
		"bouncing", "checkered", "cornell", "cornell-smoke", "earth", "final",
		"materials", "perlin", "quads", "simple-light", "spheres",
	}
	got := Names()
	if !sort.StringsAreSorted(got) {
		t.Errorf("Names are not sorted: %v", got)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("scene names mismatch (-want +got):\n%s", diff)
	}
}

// TestCreateAll builds every scene and renders a tiny preview of it
func TestCreateAll(t *testing.T) {
	options := Options{Seed: 1, TexturePath: writeTexture(t), Camera: renderer.CameraConfig{Width: 12}}

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Create(name, options)
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}
			if s.Name != name {
				t.Errorf("Expected scene name %q, got %q", name, s.Name)
			}
			if s.World == nil || len(s.Shapes) == 0 {
				t.Fatal("Scene has no world")
			}
			if s.CameraConfig.Width != 12 {
				t.Errorf("Camera override not applied, width %d", s.CameraConfig.Width)
			}
			if s.SamplesPerPixel <= 0 || s.MaxDepth <= 0 {
				t.Errorf("Expected positive sampling defaults, got spp=%d depth=%d", s.SamplesPerPixel, s.MaxDepth)
			}

			pt, err := s.Integrator(IntegratorPath)
			if err != nil {
				t.Fatal(err)
			}
			opts := renderer.DefaultRenderOptions()
			opts.SamplesPerPixel = 2
			opts.TileSize = 4
			fb, _, err := renderer.NewRaytracer(s.World, s.Camera(), pt, opts, nil).Render(context.Background())
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			for row := 0; row < fb.Height(); row++ {
				for col := 0; col < fb.Width(); col++ {
					c := fb.Pixel(row, col)
					if !c.IsFinite() || c.X < 0 || c.Y < 0 || c.Z < 0 {
						t.Fatalf("Pixel (%d,%d) has invalid radiance %v", row, col, c)
					}
				}
			}
		})
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no-such-scene", Options{})
	if !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestEarthNeedsTexture(t *testing.T) {
	if _, err := Create("earth", Options{}); err == nil {
		t.Error("Expected an error without a texture path")
	}
	if _, err := Create("earth", Options{TexturePath: filepath.Join(t.TempDir(), "missing.png")}); err == nil {
		t.Error("Expected an error for a missing texture file")
	}

	// The final scene falls back to a checker globe
	if _, err := Create("final", Options{}); err != nil {
		t.Errorf("Final scene without a texture failed: %v", err)
	}
}

func TestSeededScenesAreDeterministic(t *testing.T) {
	a := NewBouncingScene(5)
	b := NewBouncingScene(5)
	if len(a.Shapes) != len(b.Shapes) {
		t.Fatalf("Same seed produced %d and %d shapes", len(a.Shapes), len(b.Shapes))
	}
	if a.World.BoundingBox() != b.World.BoundingBox() {
		t.Errorf("Same seed produced different bounds")
	}
}

func TestSpheresSceneMatchesNormalFormula(t *testing.T) {
	s := NewSpheresScene()
	normal, err := s.Integrator(IntegratorNormal)
	if err != nil {
		t.Fatal(err)
	}

	got := normal.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), s.World, nil)
	want := core.NewVec3(0.5, 0.5, 1)
	if got.Subtract(want).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestSceneIntegrator(t *testing.T) {
	s := NewCornellScene()

	if _, err := s.Integrator("bdpt"); !errors.Is(err, ErrUnknownIntegrator) {
		t.Errorf("Expected ErrUnknownIntegrator, got %v", err)
	}

	got, err := s.Integrator("")
	if err != nil {
		t.Fatal(err)
	}
	pt, ok := got.(*integrator.PathTracingIntegrator)
	if !ok {
		t.Fatalf("Expected path tracer by default, got %T", got)
	}
	if pt.MaxDepth != s.MaxDepth {
		t.Errorf("Expected max depth %d, got %d", s.MaxDepth, pt.MaxDepth)
	}

	// Cornell box has a black background
	up := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))
	if c := s.BackgroundColor().Color(up); c != (core.Vec3{}) {
		t.Errorf("Expected black background, got %v", c)
	}
	if c := NewSpheresScene().BackgroundColor().Color(up); math.Abs(c.Z-1) > 1e-12 {
		t.Errorf("Expected sky gradient top, got %v", c)
	}
}

func TestBVHStats(t *testing.T) {
	s := NewSpheresScene()
	if stats := s.BVHStats(); stats.Primitives != 2 || stats.Nodes != 1 {
		t.Errorf("Expected one node over two spheres, got %+v", stats)
	}
}

func TestListScenes(t *testing.T) {
	groups := ListScenes()
	total := 0
	for _, g := range groups {
		for _, info := range g.Scenes {
			if info.Group != g.Name {
				t.Errorf("Scene %s listed under %s but belongs to %s", info.ID, g.Name, info.Group)
			}
			if info.DisplayName == "" || info.Description == "" {
				t.Errorf("Scene %s is missing metadata", info.ID)
			}
		}
		total += len(g.Scenes)
	}
	if total != len(Names()) {
		t.Errorf("Expected %d listed scenes, got %d", len(Names()), total)
	}
	if groups[0].Name != "Basics" {
		t.Errorf("Expected Basics first, got %s", groups[0].Name)
	}
}

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-smoke", "Cornell Smoke"},
		{"simple_light", "Simple Light"},
		{"spheres", "Spheres"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}
