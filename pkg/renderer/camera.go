package renderer

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Center        core.Vec3 // Camera position (look-from)
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	Width         int       // Image width in pixels
	AspectRatio   float64   // Width / height
	VFov          float64   // Vertical field of view in degrees
	Aperture      float64   // Defocus angle in degrees; 0 disables depth of field
	FocusDistance float64   // Distance to the plane of perfect focus; 0 = |LookAt - Center|
}

// MergeCameraConfig returns base with every non-zero field of override applied on top
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base

	if override.Center != (core.Vec3{}) {
		result.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}

	return result
}

// Camera generates jittered primary rays for a pixel grid. It is immutable
// after construction and safe to share between tiles.
type Camera struct {
	config      CameraConfig
	width       int
	height      int
	center      core.Vec3
	pixel00     core.Vec3 // Center of the top-left pixel
	pixelDeltaU core.Vec3 // Offset to the pixel to the right
	pixelDeltaV core.Vec3 // Offset to the pixel below
	defocusU    core.Vec3 // Defocus disk horizontal radius
	defocusV    core.Vec3 // Defocus disk vertical radius
	w           core.Vec3 // Points away from the view direction
}

// NewCamera derives the camera basis and pixel grid from the configuration
func NewCamera(config CameraConfig) *Camera {
	width := max(1, config.Width)
	aspect := config.AspectRatio
	if aspect <= 0 {
		aspect = 1
	}
	height := max(1, int(float64(width)/aspect))

	up := config.Up
	if up.NearZero() {
		up = core.NewVec3(0, 1, 0)
	}

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.LookAt.Subtract(config.Center).Length()
	}
	if focusDistance <= 0 {
		focusDistance = 1
	}

	// Viewport dimensions on the focus plane
	theta := config.VFov * math.Pi / 180.0
	viewportHeight := 2.0 * math.Tan(theta/2) * focusDistance
	viewportWidth := viewportHeight * (float64(width) / float64(height))

	// Orthonormal camera basis
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := up.Cross(w).Normalize()
	v := w.Cross(u)

	// Viewport edges: u runs left to right, v runs top to bottom
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)

	pixelDeltaU := viewportU.Divide(float64(width))
	pixelDeltaV := viewportV.Divide(float64(height))

	viewportTopLeft := config.Center.
		Subtract(w.Multiply(focusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00 := viewportTopLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	defocusRadius := focusDistance * math.Tan(config.Aperture*math.Pi/180.0/2)

	return &Camera{
		config:      config,
		width:       width,
		height:      height,
		center:      config.Center,
		pixel00:     pixel00,
		pixelDeltaU: pixelDeltaU,
		pixelDeltaV: pixelDeltaV,
		defocusU:    u.Multiply(defocusRadius),
		defocusV:    v.Multiply(defocusRadius),
		w:           w,
	}
}

// GetRay generates a ray for pixel (col, row), with row 0 at the top of the
// image. The sample position is jittered within the pixel, the origin is
// drawn from the defocus disk when the aperture is open, and the ray time
// is uniform in [0, 1).
func (c *Camera) GetRay(col, row int, sampler core.Sampler) core.Ray {
	jitter := sampler.Get2D()
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(col) + jitter.X - 0.5)).
		Add(c.pixelDeltaV.Multiply(float64(row) + jitter.Y - 0.5))

	origin := c.center
	if c.config.Aperture > 0 {
		p := core.SamplePointInUnitDisk(sampler.Get2D())
		origin = c.center.Add(c.defocusU.Multiply(p.X)).Add(c.defocusV.Multiply(p.Y))
	}

	return core.NewRayAtTime(origin, pixelSample.Subtract(origin), sampler.Get1D())
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.width
}

// Height returns the image height in pixels
func (c *Camera) Height() int {
	return c.height
}

// Center returns the camera position
func (c *Camera) Center() core.Vec3 {
	return c.center
}

// Forward returns the unit view direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}
