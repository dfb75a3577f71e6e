package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/df07/go-pathtracer/pkg/material"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder
)

// ImageData is a decoded texture image stored as packed 8-bit RGB triplets
type ImageData struct {
	width  int
	height int
	pixels []uint8
	format string
}

var _ material.PixelSource = (*ImageData)(nil)

// LoadImage loads a PNG, JPEG, BMP, TIFF or WebP image
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects the format from the file header)
	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}

	data := NewImageData(img)
	data.format = format
	return data, nil
}

// NewImageData converts any decoded image to 8-bit RGB, dropping alpha
func NewImageData(img image.Image) *ImageData {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]uint8, 3*width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			i := 3 * (y*width + x)
			pixels[i] = uint8(r >> 8)
			pixels[i+1] = uint8(g >> 8)
			pixels[i+2] = uint8(b >> 8)
		}
	}

	return &ImageData{
		width:  width,
		height: height,
		pixels: pixels,
	}
}

// Width returns the image width in pixels
func (d *ImageData) Width() int {
	return d.width
}

// Height returns the image height in pixels
func (d *ImageData) Height() int {
	return d.height
}

// Format returns the name of the decoder used, empty for in-memory images
func (d *ImageData) Format() string {
	return d.format
}

// Pixel returns the RGB triplet at (x, y), with y=0 the top row.
// Coordinates outside the image are clamped to the nearest edge.
func (d *ImageData) Pixel(x, y int) (r, g, b uint8) {
	if d.width == 0 || d.height == 0 {
		return 0, 0, 0
	}
	x = max(0, min(x, d.width-1))
	y = max(0, min(y, d.height-1))
	i := 3 * (y*d.width + x)
	return d.pixels[i], d.pixels[i+1], d.pixels[i+2]
}
