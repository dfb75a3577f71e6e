package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// PixelSource is a decoded image that can be queried pixel by pixel.
// Out-of-range coordinates are clamped to the image bounds.
type PixelSource interface {
	Width() int
	Height() int
	Pixel(x, y int) (r, g, b uint8)
}

// debugCyan marks surfaces whose image failed to provide any pixels
var debugCyan = core.NewVec3(0, 1, 1)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Source PixelSource
}

// NewImageTexture creates a new image texture
func NewImageTexture(source PixelSource) *ImageTexture {
	return &ImageTexture{Source: source}
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Source == nil || t.Source.Height() <= 0 || t.Source.Width() <= 0 {
		return debugCyan
	}

	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	u := clamp01(uv.X)
	v := 1.0 - clamp01(uv.Y)

	x := int(u * float64(t.Source.Width()))
	y := int(v * float64(t.Source.Height()))
	r, g, b := t.Source.Pixel(x, y)

	const colorScale = 1.0 / 255.0
	return core.NewVec3(
		colorScale*float64(r),
		colorScale*float64(g),
		colorScale*float64(b),
	)
}

func (*ImageTexture) isTexture() {}

func clamp01(x float64) float64 {
	return max(0, min(1, x))
}
