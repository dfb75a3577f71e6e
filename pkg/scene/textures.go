package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

func textureCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:      core.NewVec3(13, 2, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        20.0,
	}
}

// NewCheckeredScene creates two large spheres sharing one solid checker texture
func NewCheckeredScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	s := newScene("checkered", textureCamera(), cameraOverrides)

	checker := material.NewTexturedLambertian(
		material.NewCheckerTextureFromColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)),
	)
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	)

	s.Preprocess()
	return s
}

// NewPerlinScene creates a marbled ground and sphere from one Perlin field
func NewPerlinScene(seed uint64, cameraOverrides ...renderer.CameraConfig) *Scene {
	s := newScene("perlin", textureCamera(), cameraOverrides)

	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, core.NewSeededSampler(seed, 0)))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)

	s.Preprocess()
	return s
}

// NewEarthScene wraps the image at texturePath around a sphere. A missing
// or undecodable image is an error.
func NewEarthScene(texturePath string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	defaultCameraConfig := textureCamera()
	defaultCameraConfig.Center = core.NewVec3(0, 0, 12)
	s := newScene("earth", defaultCameraConfig, cameraOverrides)

	if texturePath == "" {
		return nil, errors.New("earth scene needs a texture image path")
	}
	image, err := loaders.LoadImage(texturePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load earth texture: %w", err)
	}

	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(material.NewImageTexture(image))))

	s.Preprocess()
	return s, nil
}
