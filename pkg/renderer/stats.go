package renderer

import (
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera rays traced
	SamplesPerPixel int           // Effective samples per pixel (sqrtSpp²)
	Tiles           int           // Number of tiles rendered
	Duration        time.Duration // Wall time of the render
}

// Merge adds the counters of a tile's stats
func (rs *RenderStats) Merge(other RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.TotalSamples += other.TotalSamples
	rs.Tiles += other.Tiles
}

// AverageSamples returns the mean number of samples per rendered pixel
func (rs RenderStats) AverageSamples() float64 {
	if rs.TotalPixels == 0 {
		return 0
	}
	return float64(rs.TotalSamples) / float64(rs.TotalPixels)
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the accumulated color scaled by the per-sample weight
func (ps *PixelStats) GetColor(scale float64) core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(scale)
}

// AverageLuminance returns the mean linear luminance of an image
func AverageLuminance(img *Image) float64 {
	if len(img.Pixels) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range img.Pixels {
		total += c.Luminance()
	}
	return total / float64(len(img.Pixels))
}
