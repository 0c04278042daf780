package renderer

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center        core.Vec3 // Camera position (look from)
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	Width         int       // Image width in pixels
	AspectRatio   float64   // Width / height ratio
	VFov          float64   // Vertical field of view in degrees
	DefocusAngle  float64   // Variation angle of rays through each pixel (0 = no defocus blur)
	FocusDistance float64   // Distance from camera to plane of perfect focus (0 = |Center-LookAt|)
}

// DefaultCameraConfig returns the camera used when a scene does not configure one
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   1.0,
		VFov:          90.0,
		DefocusAngle:  0.0,
		FocusDistance: 10.0,
	}
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel, rounded down to a square grid of strata
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Camera generates stratified, time-jittered primary rays with optional depth of field
type Camera struct {
	config CameraConfig

	width, height int
	sqrtSpp       int     // Strata per pixel side
	recipSqrtSpp  float64 // 1 / sqrtSpp

	center       core.Vec3
	pixel00      core.Vec3 // Center of pixel (0, 0), the top-left pixel
	pixelDeltaU  core.Vec3 // Offset to the pixel to the right
	pixelDeltaV  core.Vec3 // Offset to the pixel below
	u, v, w      core.Vec3 // Camera frame basis vectors
	defocusDiskU core.Vec3
	defocusDiskV core.Vec3
}

// NewCamera derives the viewport and lens geometry for a configuration and sample count
func NewCamera(config CameraConfig, samplesPerPixel int) *Camera {
	if config.Width < 1 {
		config.Width = 1
	}
	if config.AspectRatio <= 0 {
		config.AspectRatio = 1.0
	}
	if config.FocusDistance <= 0 {
		config.FocusDistance = 1.0
		if !config.Center.Equals(config.LookAt) {
			config.FocusDistance = config.Center.Subtract(config.LookAt).Length()
		}
	}

	c := &Camera{config: config, width: config.Width, center: config.Center}

	c.height = int(float64(c.width) / config.AspectRatio)
	if c.height < 1 {
		c.height = 1
	}

	if samplesPerPixel > 0 {
		c.sqrtSpp = int(math.Sqrt(float64(samplesPerPixel)))
		c.recipSqrtSpp = 1.0 / float64(c.sqrtSpp)
	}

	theta := core.DegreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h * config.FocusDistance
	viewportWidth := viewportHeight * (float64(c.width) / float64(c.height))

	c.w = config.Center.Subtract(config.LookAt).Normalize()
	c.u = config.Up.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u)

	// Viewport edges: across the top and down the left side
	viewportU := c.u.Multiply(viewportWidth)
	viewportV := c.v.Negate().Multiply(viewportHeight)

	c.pixelDeltaU = viewportU.Divide(float64(c.width))
	c.pixelDeltaV = viewportV.Divide(float64(c.height))

	viewportUpperLeft := c.center.
		Subtract(c.w.Multiply(config.FocusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	c.pixel00 = viewportUpperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Multiply(0.5))

	defocusRadius := config.FocusDistance * math.Tan(core.DegreesToRadians(config.DefocusAngle/2))
	c.defocusDiskU = c.u.Multiply(defocusRadius)
	c.defocusDiskV = c.v.Multiply(defocusRadius)

	return c
}

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.width }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.height }

// SqrtSamples returns the number of strata along each side of a pixel
func (c *Camera) SqrtSamples() int { return c.sqrtSpp }


// Config returns the effective configuration after defaults were applied
func (c *Camera) Config() CameraConfig { return c.config }

// GetRay returns a ray through pixel (i, j), jittered within stratum (si, sj),
// originating on the defocus disk and carrying a random time in [0, 1)
func (c *Camera) GetRay(i, j, si, sj int, sampler core.Sampler) core.Ray {
	offset := c.sampleSquareStratified(si, sj, sampler)
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y))

	origin := c.center
	if c.config.DefocusAngle > 0 {
		origin = c.defocusDiskSample(sampler)
	}

	return core.NewRayAtTime(origin, pixelSample.Subtract(origin), sampler.Get1D())
}

// sampleSquareStratified returns an offset in [-0.5, 0.5)² inside sub-cell (si, sj)
func (c *Camera) sampleSquareStratified(si, sj int, sampler core.Sampler) core.Vec2 {
	sample := sampler.Get2D()
	px := (float64(si)+sample.X)*c.recipSqrtSpp - 0.5
	py := (float64(sj)+sample.Y)*c.recipSqrtSpp - 0.5
	return core.NewVec2(px, py)
}

func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.SamplePointInUnitDisk(sampler.Get2D())
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}
