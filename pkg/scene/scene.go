package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Integrator kinds accepted by Scene.Integrator
const (
	IntegratorPath   = "path"
	IntegratorNormal = "normal"
)

// ErrUnknownIntegrator is returned for an integrator kind that does not exist
var ErrUnknownIntegrator = errors.New("unknown integrator")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name            string
	Shapes          []geometry.Shape // Top-level objects in the scene
	World           geometry.Shape   // Acceleration structure over Shapes, built by Preprocess
	CameraConfig    renderer.CameraConfig
	Background      *core.Vec3 // Escaping rays see this color; nil means the sky gradient
	SamplesPerPixel int
	MaxDepth        int
}

// newScene creates an empty scene with the camera overrides applied
func newScene(name string, defaultCamera renderer.CameraConfig, cameraOverrides []renderer.CameraConfig) *Scene {
	cameraConfig := defaultCamera
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(defaultCamera, cameraOverrides[0])
	}
	return &Scene{
		Name:            name,
		CameraConfig:    cameraConfig,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// AddQuadLight adds a rectangular area light to the scene
func (s *Scene) AddQuadLight(corner, u, v core.Vec3, emission core.Vec3) {
	s.Add(geometry.NewQuad(corner, u, v, material.NewDiffuseLight(emission)))
}

// AddSphereLight adds a spherical light to the scene
func (s *Scene) AddSphereLight(center core.Vec3, radius float64, emission core.Vec3) {
	s.Add(geometry.NewSphere(center, radius, material.NewDiffuseLight(emission)))
}

// SetBackground replaces the sky gradient with a constant color
func (s *Scene) SetBackground(color core.Vec3) {
	s.Background = &color
}

// Preprocess prepares the scene for rendering by building the BVH
func (s *Scene) Preprocess() {
	s.World = geometry.NewBVH(s.Shapes)
}

// Camera creates the camera described by CameraConfig
func (s *Scene) Camera() *renderer.Camera {
	return renderer.NewCamera(s.CameraConfig)
}

// BackgroundColor returns what escaping rays see
func (s *Scene) BackgroundColor() integrator.Background {
	if s.Background == nil {
		return integrator.SkyBackground()
	}
	return integrator.SolidBackground(*s.Background)
}

// Integrator creates the named integrator configured for this scene
func (s *Scene) Integrator(kind string) (integrator.Integrator, error) {
	switch kind {
	case IntegratorPath, "":
		return integrator.NewPathTracingIntegrator(s.MaxDepth, s.BackgroundColor()), nil
	case IntegratorNormal:
		return integrator.NewNormalIntegrator(s.BackgroundColor()), nil
	default:
		return nil, fmt.Errorf("%w %q (want %q or %q)", ErrUnknownIntegrator, kind, IntegratorPath, IntegratorNormal)
	}
}

// BVHStats reports the shape of the scene's acceleration structure
func (s *Scene) BVHStats() geometry.BVHStats {
	if bvh, ok := s.World.(*geometry.BVH); ok {
		return bvh.Stats()
	}
	return geometry.BVHStats{}
}

// NewGroundQuad creates a large quad to replace infinite ground planes
// Creates a horizontal quad centered at the given point with normal pointing up (0,1,0)
func NewGroundQuad(center core.Vec3, size float64, material material.Material) *geometry.Quad {
	// Create corner at bottom-left of the quad
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// Edge vectors: u × v = (0,0,size) × (size,0,0) = (0,size²,0) points up
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, material)
}
