// Package scene builds the preset worlds the renderer can draw.
package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// DefaultBackground is the sky color of daylight scenes
var DefaultBackground = core.NewVec3(0.70, 0.80, 1.00)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	World          geometry.Hittable   // Usually a BVH over every object
	Lights         geometry.Sampleable // Emitters to importance-sample; nil for none
	Background     core.Color          // Radiance of escaping rays
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig
}

// GetWorld implements renderer.Scene
func (s *Scene) GetWorld() geometry.Hittable { return s.World }

// GetLights implements renderer.Scene
func (s *Scene) GetLights() geometry.Sampleable { return s.Lights }

// GetBackground implements renderer.Scene
func (s *Scene) GetBackground() core.Color { return s.Background }

// GetCameraConfig implements renderer.Scene
func (s *Scene) GetCameraConfig() renderer.CameraConfig { return s.CameraConfig }

// GetSamplingConfig implements renderer.Scene
func (s *Scene) GetSamplingConfig() renderer.SamplingConfig { return s.SamplingConfig }

// Options are the inputs a preset may use while building
type Options struct {
	Seed     int64       // Seed for randomized layouts and Perlin tables
	Logger   core.Logger // Receives texture and mesh load messages
	MeshPath string      // Model file for the mesh scene
}

// DefaultOptions returns the options used when none are given
func DefaultOptions() Options {
	return Options{Seed: 42, Logger: core.NopLogger{}}
}

func (o Options) logger() core.Logger {
	if o.Logger == nil {
		return core.NopLogger{}
	}
	return o.Logger
}

// NewGroundQuad creates a horizontal square centered at center with its normal pointing up
func NewGroundQuad(center core.Vec3, size float64, mat material.Material) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// (0,0,size) × (size,0,0) points along +Y
	return geometry.NewQuad(corner, core.NewVec3(0, 0, size), core.NewVec3(size, 0, 0), mat)
}

// daylightCamera is the 16:9 view shared by the sphere and texture presets
func daylightCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          20,
		DefocusAngle:  0,
		FocusDistance: 10,
	}
}
