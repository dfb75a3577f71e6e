package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Framebuffer is a row-major grid of linear radiance values
type Framebuffer struct {
	width  int
	height int
	pixels []core.Vec3
}

// NewFramebuffer creates a black framebuffer of the given size
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

// Width returns the number of columns
func (fb *Framebuffer) Width() int {
	return fb.width
}

// Height returns the number of rows
func (fb *Framebuffer) Height() int {
	return fb.height
}

// SetPixel stores the linear color for (row, col)
func (fb *Framebuffer) SetPixel(row, col int, c core.Vec3) {
	fb.pixels[row*fb.width+col] = c
}

// Pixel returns the linear color stored at (row, col)
func (fb *Framebuffer) Pixel(row, col int) core.Vec3 {
	return fb.pixels[row*fb.width+col]
}

// ToByteTriplet converts the pixel at (row, col) to gamma-corrected 8-bit channels
func (fb *Framebuffer) ToByteTriplet(row, col int) (r, g, b uint8) {
	c := fb.Pixel(row, col)
	return toByte(c.X), toByte(c.Y), toByte(c.Z)
}

// ToRGBA converts the framebuffer to an opaque 8-bit image
func (fb *Framebuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for row := 0; row < fb.height; row++ {
		for col := 0; col < fb.width; col++ {
			r, g, b := fb.ToByteTriplet(row, col)
			img.SetRGBA(col, row, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// toByte applies gamma 2 and maps [0, 1) onto [0, 255]
func toByte(linear float64) uint8 {
	if !(linear > 0) {
		return 0
	}
	gamma := math.Sqrt(linear)
	return uint8(256 * math.Min(gamma, 0.999))
}
