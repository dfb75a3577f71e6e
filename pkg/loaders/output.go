package loaders

import (
	"bufio"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// WritePPM writes the framebuffer as a plain-text P3 image
func WritePPM(w io.Writer, fb *renderer.Framebuffer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", fb.Width(), fb.Height()); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	for row := 0; row < fb.Height(); row++ {
		for col := 0; col < fb.Width(); col++ {
			r, g, b := fb.ToByteTriplet(row, col)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
				return fmt.Errorf("failed to write PPM pixel: %w", err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush PPM output: %w", err)
	}
	return nil
}

// WritePNG writes the framebuffer as an 8-bit PNG
func WritePNG(w io.Writer, fb *renderer.Framebuffer) error {
	if err := png.Encode(w, fb.ToRGBA()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// SaveImage writes the framebuffer to path, choosing the format from the
// extension (.ppm or .png). Missing parent directories are created.
func SaveImage(path string, fb *renderer.Framebuffer) (err error) {
	var write func(io.Writer, *renderer.Framebuffer) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		write = WritePNG
	case ".ppm":
		write = WritePPM
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	return write(file, fb)
}
