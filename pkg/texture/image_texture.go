package texture

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
)

// Cyan is returned by image textures that have no pixel data
var Cyan = core.NewVec3(0, 1, 1)

// ImageTexture provides color from a 2D image using nearest-neighbor lookup
type ImageTexture struct {
	image *loaders.ImageData
}

// NewImageTexture wraps already-loaded image data. A nil image renders cyan.
func NewImageTexture(image *loaders.ImageData) *ImageTexture {
	return &ImageTexture{image: image}
}

// LoadImageTexture finds and loads the named image on the image search path.
// A load failure is logged and yields a texture that renders cyan.
func LoadImageTexture(name string, logger core.Logger) *ImageTexture {
	image, err := loaders.FindImage(name)
	if err != nil {
		if logger != nil {
			logger.Printf("ERROR: %v\n", err)
		}
		return NewImageTexture(nil)
	}
	return NewImageTexture(image)
}

// HasData reports whether the texture holds pixel data
func (t *ImageTexture) HasData() bool {
	return t.image != nil && t.image.Height > 0 && t.image.Width > 0
}

// Value clamps (u, v) to [0,1], flips v to image rows, and returns the pixel there
func (t *ImageTexture) Value(u, v float64, p core.Point3) core.Color {
	if !t.HasData() {
		return Cyan
	}

	unit := core.NewInterval(0, 1)
	u = unit.Clamp(u)
	v = 1.0 - unit.Clamp(v) // image origin is top-left

	i := int(u * float64(t.image.Width))
	j := int(v * float64(t.image.Height))

	return t.image.At(i, j)
}
