package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

func cornellCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:        core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:        core.NewVec3(278, 278, 0),    // Look at the center of the box
		Up:            core.NewVec3(0, 1, 0),        // Standard up direction
		Width:         400,
		AspectRatio:   1.0,  // Square aspect ratio for Cornell box
		VFov:          40.0, // Field of view
		Aperture:      0.0,  // No depth of field for Cornell box
		FocusDistance: 0.0,  // Auto-calculate focus distance
	}
}

// addCornellWalls adds the five walls: red left, green right, white floor,
// ceiling and back
func addCornellWalls(s *Scene, white material.Material) {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	s.Add(
		// Right wall (green) - YZ plane at x=boxSize
		geometry.NewQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), green),
		// Left wall (red) - YZ plane at x=0
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), red),
		// Floor (white) - XZ plane at y=0
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white),
		// Ceiling (white) - XZ plane at y=boxSize
		geometry.NewQuad(core.NewVec3(boxSize, boxSize, boxSize), core.NewVec3(-boxSize, 0, 0), core.NewVec3(0, 0, -boxSize), white),
		// Back wall (white) - XY plane at z=boxSize
		geometry.NewQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), white),
	)
}

// cornellBoxes returns the tall and short boxes, rotated and moved into place
func cornellBoxes(white material.Material) (tall, short geometry.Shape) {
	tall = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white)
	tall = geometry.NewRotateY(tall, 15)
	tall = geometry.NewTranslate(tall, core.NewVec3(265, 0, 295))

	short = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white)
	short = geometry.NewRotateY(short, -18)
	short = geometry.NewTranslate(short, core.NewVec3(130, 0, 65))
	return tall, short
}

// NewCornellScene creates a classic Cornell box scene with quad walls and area lighting
func NewCornellScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	s := newScene("cornell", cornellCamera(), cameraOverrides)
	s.SetBackground(core.Vec3{}) // Black background
	s.SamplesPerPixel = 200

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	addCornellWalls(s, white)

	// Ceiling light, slightly below the ceiling
	s.AddQuadLight(core.NewVec3(343, boxSize-1, 332), core.NewVec3(-130, 0, 0), core.NewVec3(0, 0, -105), core.NewVec3(15, 15, 15))

	tall, short := cornellBoxes(white)
	s.Add(tall, short)

	s.Preprocess()
	return s
}

// NewCornellSmokeScene replaces the Cornell boxes with black and white smoke
// under a larger, dimmer light
func NewCornellSmokeScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	s := newScene("cornell-smoke", cornellCamera(), cameraOverrides)
	s.SetBackground(core.Vec3{})
	s.SamplesPerPixel = 200

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	addCornellWalls(s, white)

	s.AddQuadLight(core.NewVec3(113, boxSize-1, 127), core.NewVec3(330, 0, 0), core.NewVec3(0, 0, 305), core.NewVec3(7, 7, 7))

	tall, short := cornellBoxes(white)
	s.Add(
		geometry.NewConstantMediumFromColor(tall, 0.01, core.NewVec3(0, 0, 0)),
		geometry.NewConstantMediumFromColor(short, 0.01, core.NewVec3(1, 1, 1)),
	)

	s.Preprocess()
	return s
}
