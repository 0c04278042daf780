package loaders

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ImageSearchEnv names the environment variable holding an extra image directory
const ImageSearchEnv = "RTW_IMAGES"

// maxParentSearchDepth bounds how many ../ levels are searched for an images/ directory
const maxParentSearchDepth = 6

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// Magenta is returned for pixel reads when no pixel data is present
var Magenta = core.NewVec3(1, 0, 1)

// At returns the pixel at (x, y) with coordinates clamped to the image.
// Images without pixel data return Magenta.
func (d *ImageData) At(x, y int) core.Vec3 {
	if d == nil || d.Width <= 0 || d.Height <= 0 || len(d.Pixels) < d.Width*d.Height {
		return Magenta
	}
	x = clampIndex(x, d.Width)
	y = clampIndex(y, d.Height)
	return d.Pixels[y*d.Width+x]
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// LoadImage loads a PNG or JPEG image and converts it to Vec3 color array
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// ImageSearchPaths lists the candidate locations for an image name in lookup order:
// $RTW_IMAGES/name, name, images/name, then ../images/name up to six levels up.
func ImageSearchPaths(name string) []string {
	var paths []string
	if dir := os.Getenv(ImageSearchEnv); dir != "" {
		paths = append(paths, filepath.Join(dir, name))
	}
	paths = append(paths, name, filepath.Join("images", name))
	for level := 1; level <= maxParentSearchDepth; level++ {
		prefix := strings.Repeat("../", level)
		paths = append(paths, filepath.Join(prefix+"images", name))
	}
	return paths
}

// FindImage loads the first image found on the search path
func FindImage(name string) (*ImageData, error) {
	var errs []error
	for _, path := range ImageSearchPaths(name) {
		data, err := LoadImage(path)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("could not load image file %q: %w", name, errors.Join(errs...))
	}
	return nil, fmt.Errorf("could not load image file %q: %w", name, os.ErrNotExist)
}
