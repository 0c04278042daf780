package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// intensity is the range colors are clamped to before scaling to bytes
var intensity = core.NewInterval(0.000, 0.999)

// Image holds linear radiance per pixel, row-major with row 0 at the top
type Image struct {
	Width  int
	Height int
	Pixels []core.Color
}

// NewImage creates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}
}

// At returns the radiance of pixel (x, y)
func (img *Image) At(x, y int) core.Color {
	return img.Pixels[y*img.Width+x]
}

// Set stores the radiance of pixel (x, y)
func (img *Image) Set(x, y int, c core.Color) {
	img.Pixels[y*img.Width+x] = c
}

// LinearToGamma applies a gamma 2 transform; non-positive input maps to 0
func LinearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// ToByte maps a linear component to [0, 255]: gamma, clamp to [0, 0.999], ×256, truncate
func ToByte(linear float64) uint8 {
	return uint8(256 * intensity.Clamp(LinearToGamma(linear)))
}

// ToRGBA converts the image to 8-bit sRGB-ish bytes using the PPM byte mapping
func (img *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y)
			out.SetRGBA(x, y, color.RGBA{R: ToByte(c.X), G: ToByte(c.Y), B: ToByte(c.Z), A: 255})
		}
	}
	return out
}

// WritePPM writes the image as a plain-text P3 pixmap, one pixel per line
func WritePPM(w io.Writer, img *Image) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}
	for _, c := range img.Pixels {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", ToByte(c.X), ToByte(c.Y), ToByte(c.Z)); err != nil {
			return fmt.Errorf("failed to write PPM pixel: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return nil
}

// WritePNG encodes the image as PNG
func WritePNG(w io.Writer, img *Image) error {
	if err := png.Encode(w, img.ToRGBA()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
