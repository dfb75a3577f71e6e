package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewFinalScene combines every primitive, material and texture: a field of
// boxes, a moving sphere, glass, metal, fog, subsurface glass, noise and a
// rotated cluster of small spheres. The textured sphere uses texturePath
// when set and a checker otherwise.
func NewFinalScene(seed uint64, texturePath string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	defaultCameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(478, 278, -600),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 1.0,
		VFov:        40.0,
	}
	s := newScene("final", defaultCameraConfig, cameraOverrides)
	s.SetBackground(core.Vec3{})
	s.SamplesPerPixel = 250
	s.MaxDepth = 4

	random := core.NewSeededSampler(seed, 0)

	// Field of boxes with random heights, in its own BVH
	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	const boxesPerSide = 20
	var boxes []geometry.Shape
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			w := 100.0
			x0 := -1000.0 + float64(i)*w
			z0 := -1000.0 + float64(j)*w
			y1 := core.RandomInRange(random, 1, 101)
			boxes = append(boxes, geometry.NewBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground))
		}
	}
	s.Add(geometry.NewBVH(boxes))

	s.AddQuadLight(core.NewVec3(123, 554, 147), core.NewVec3(300, 0, 0), core.NewVec3(0, 0, 265), core.NewVec3(7, 7, 7))

	center := core.NewVec3(400, 400, 200)
	s.Add(geometry.NewMovingSphere(center, center.Add(core.NewVec3(30, 0, 0)), 50,
		material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))))
	s.Add(geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)))
	s.Add(geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)))

	// Blue subsurface: a glass shell filled with dense medium
	boundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	s.Add(boundary, geometry.NewConstantMediumFromColor(boundary, 0.2, core.NewVec3(0.2, 0.4, 0.9)))

	// Thin global fog
	fog := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))
	s.Add(geometry.NewConstantMediumFromColor(fog, 0.0001, core.NewVec3(1, 1, 1)))

	var globeTexture material.Texture = material.NewCheckerTextureFromColors(20, core.NewVec3(0.1, 0.2, 0.5), core.NewVec3(0.9, 0.9, 0.9))
	if texturePath != "" {
		image, err := loaders.LoadImage(texturePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load globe texture: %w", err)
		}
		globeTexture = material.NewImageTexture(image)
	}
	s.Add(geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(globeTexture)))

	s.Add(geometry.NewSphere(core.NewVec3(220, 280, 300), 80,
		material.NewTexturedLambertian(material.NewNoiseTexture(0.2, core.NewSeededSampler(seed, 1)))))

	// Cluster of small white spheres, rotated and moved into place
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	var cluster []geometry.Shape
	for i := 0; i < 1000; i++ {
		cluster = append(cluster, geometry.NewSphere(core.RandomVec3InRange(random, 0, 165), 10, white))
	}
	s.Add(geometry.NewTranslate(geometry.NewRotateY(geometry.NewBVH(cluster), 15), core.NewVec3(-100, 270, 395)))

	s.Preprocess()
	return s, nil
}
