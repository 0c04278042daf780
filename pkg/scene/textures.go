package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// EarthImage is the texture file the earth and final scenes look up on the image search path
const EarthImage = "earthmap.jpg"

// NewEarth creates a globe wrapped in an equirectangular earth map.
// Without the image file the globe renders cyan.
func NewEarth(opts Options) (*Scene, error) {
	earth := material.NewLambertian(texture.LoadImageTexture(EarthImage, opts.logger()))
	globe := geometry.NewSphere(core.NewVec3(0, 0, 0), 2, earth)

	camera := daylightCamera()
	camera.Center = core.NewVec3(0, 0, 12)

	return &Scene{
		Name:           "earth",
		World:          geometry.NewBVH([]geometry.Hittable{globe}),
		Background:     DefaultBackground,
		CameraConfig:   camera,
		SamplingConfig: renderer.SamplingConfig{SamplesPerPixel: 25, MaxDepth: 25},
	}, nil
}

// NewPerlinSpheres creates a marble sphere resting on a marble ground
func NewPerlinSpheres(opts Options) (*Scene, error) {
	marble := material.NewLambertian(texture.NewNoiseTexture(4, core.NewSeededSampler(opts.Seed)))

	objects := []geometry.Hittable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	}

	return &Scene{
		Name:           "perlin-spheres",
		World:          geometry.NewBVH(objects),
		Background:     DefaultBackground,
		CameraConfig:   daylightCamera(),
		SamplingConfig: renderer.SamplingConfig{SamplesPerPixel: 25, MaxDepth: 25},
	}, nil
}

// NewQuads creates five colored quads facing a camera placed inside their box
func NewQuads(opts Options) (*Scene, error) {
	leftRed := material.NewLambertianColor(core.NewVec3(1.0, 0.2, 0.2))
	backGreen := material.NewLambertianColor(core.NewVec3(0.2, 1.0, 0.2))
	rightBlue := material.NewLambertianColor(core.NewVec3(0.2, 0.2, 1.0))
	upperOrange := material.NewLambertianColor(core.NewVec3(1.0, 0.5, 0.0))
	lowerTeal := material.NewLambertianColor(core.NewVec3(0.2, 0.8, 0.8))

	objects := []geometry.Hittable{
		geometry.NewQuad(core.NewVec3(-3, -2, 5), core.NewVec3(0, 0, -4), core.NewVec3(0, 4, 0), leftRed),
		geometry.NewQuad(core.NewVec3(-2, -2, 0), core.NewVec3(4, 0, 0), core.NewVec3(0, 4, 0), backGreen),
		geometry.NewQuad(core.NewVec3(3, -2, 1), core.NewVec3(0, 0, 4), core.NewVec3(0, 4, 0), rightBlue),
		geometry.NewQuad(core.NewVec3(-2, 3, 1), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, 4), upperOrange),
		geometry.NewQuad(core.NewVec3(-2, -3, 5), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, -4), lowerTeal),
	}

	return &Scene{
		Name:       "quads",
		World:      geometry.NewBVH(objects),
		Background: DefaultBackground,
		CameraConfig: renderer.CameraConfig{
			Center:        core.NewVec3(0, 0, 9),
			LookAt:        core.NewVec3(0, 0, 0),
			Up:            core.NewVec3(0, 1, 0),
			Width:         400,
			AspectRatio:   1.0,
			VFov:          80,
			FocusDistance: 10,
		},
		SamplingConfig: renderer.SamplingConfig{SamplesPerPixel: 25, MaxDepth: 25},
	}, nil
}

// NewSimpleLight lights two marble spheres with a rectangle and a sphere light in the dark
func NewSimpleLight(opts Options) (*Scene, error) {
	marble := material.NewLambertian(texture.NewNoiseTexture(4, core.NewSeededSampler(opts.Seed)))
	diffLight := material.NewDiffuseLightColor(core.NewVec3(4, 4, 4))

	panel := geometry.NewQuad(core.NewVec3(3, 1, -2), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), diffLight)
	bulb := geometry.NewSphere(core.NewVec3(0, 7, 0), 2, diffLight)

	objects := []geometry.Hittable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
		panel,
		bulb,
	}

	return &Scene{
		Name:       "simple-light",
		World:      geometry.NewBVH(objects),
		Lights:     geometry.NewList(panel, bulb),
		Background: core.Color{},
		CameraConfig: renderer.CameraConfig{
			Center:        core.NewVec3(26, 3, 6),
			LookAt:        core.NewVec3(0, 2, 0),
			Up:            core.NewVec3(0, 1, 0),
			Width:         400,
			AspectRatio:   16.0 / 9.0,
			VFov:          20,
			FocusDistance: 10,
		},
		SamplingConfig: renderer.SamplingConfig{SamplesPerPixel: 25, MaxDepth: 25},
	}, nil
}
