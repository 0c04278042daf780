package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// NewBouncingSpheres creates the cover scene: a field of small random spheres, some of
// them bouncing during the shutter interval, around three large feature spheres
func NewBouncingSpheres(opts Options) (*Scene, error) {
	random := core.NewSeededSampler(opts.Seed)
	randomColor := func() core.Color { return random.Get3D() }

	objects := []geometry.Hittable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertianColor(core.NewVec3(0.5, 0.5, 0.5))),
	}

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Get1D()
			center := core.NewVec3(float64(a)+0.9*random.Get1D(), 0.2, float64(b)+0.9*random.Get1D())
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				// Diffuse, bouncing upward while the shutter is open
				albedo := randomColor().MultiplyVec(randomColor())
				center2 := center.Add(core.NewVec3(0, core.RandomInRange(random, 0, 0.5), 0))
				objects = append(objects, geometry.NewMovingSphere(center, center2, 0.2, material.NewLambertianColor(albedo)))
			case chooseMat < 0.95:
				albedo := core.NewVec3(core.RandomInRange(random, 0.5, 1), core.RandomInRange(random, 0.5, 1), core.RandomInRange(random, 0.5, 1))
				fuzz := core.RandomInRange(random, 0, 0.5)
				objects = append(objects, geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				objects = append(objects, geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	objects = append(objects,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertianColor(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	camera := daylightCamera()
	camera.DefocusAngle = 0.6

	return &Scene{
		Name:           "bouncing-spheres",
		World:          geometry.NewBVH(objects),
		Background:     DefaultBackground,
		CameraConfig:   camera,
		SamplingConfig: renderer.SamplingConfig{SamplesPerPixel: 25, MaxDepth: 25},
	}, nil
}

// NewMaterialSpheres creates a glass ball and a polished metal ball on a large ground sphere
func NewMaterialSpheres(opts Options) (*Scene, error) {
	objects := []geometry.Hittable{
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertianColor(core.NewVec3(0.8, 0.8, 0.0))),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.50)),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)),
	}

	return &Scene{
		Name:       "materials",
		World:      geometry.NewBVH(objects),
		Background: DefaultBackground,
		CameraConfig: renderer.CameraConfig{
			Center:        core.NewVec3(7, 5, 7),
			LookAt:        core.NewVec3(0, 0, 0),
			Up:            core.NewVec3(0, 1, 0),
			Width:         400,
			AspectRatio:   16.0 / 9.0,
			VFov:          35,
			FocusDistance: 10,
		},
		SamplingConfig: renderer.SamplingConfig{SamplesPerPixel: 13, MaxDepth: 13},
	}, nil
}

// NewCheckeredSpheres creates two huge spheres sharing one solid checker texture
func NewCheckeredSpheres(opts Options) (*Scene, error) {
	checker := texture.NewCheckerColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	mat := material.NewLambertian(checker)

	objects := []geometry.Hittable{
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, mat),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, mat),
	}

	return &Scene{
		Name:           "checkered-spheres",
		World:          geometry.NewBVH(objects),
		Background:     DefaultBackground,
		CameraConfig:   daylightCamera(),
		SamplingConfig: renderer.SamplingConfig{SamplesPerPixel: 25, MaxDepth: 25},
	}, nil
}
