package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// NewFinal creates the closing scene that combines every primitive, material and texture
func NewFinal(opts Options) (*Scene, error) {
	random := core.NewSeededSampler(opts.Seed)

	const boxesPerSide = 20
	const w = 100.0
	ground := material.NewLambertianColor(core.NewVec3(0.48, 0.83, 0.53))
	floor := make([]geometry.Hittable, 0, boxesPerSide*boxesPerSide)
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			x0 := -1000.0 + float64(i)*w
			z0 := -1000.0 + float64(j)*w
			y1 := core.RandomInRange(random, 1, 101)
			floor = append(floor, geometry.NewBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground))
		}
	}

	light := geometry.NewQuad(core.NewVec3(123, 554, 147), core.NewVec3(300, 0, 0), core.NewVec3(0, 0, 265),
		material.NewDiffuseLightColor(core.NewVec3(7, 7, 7)))

	center1 := core.NewVec3(400, 400, 200)
	center2 := center1.Add(core.NewVec3(30, 0, 0))

	// Glass ball filled with blue fog
	fogged := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	mist := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))

	earth := material.NewLambertian(texture.LoadImageTexture(EarthImage, opts.logger()))
	marble := material.NewLambertian(texture.NewNoiseTexture(0.2, random))

	white := material.NewLambertianColor(core.NewVec3(0.73, 0.73, 0.73))
	cluster := make([]geometry.Hittable, 0, 1000)
	for j := 0; j < 1000; j++ {
		center := core.NewVec3(core.RandomInRange(random, 0, 165), core.RandomInRange(random, 0, 165), core.RandomInRange(random, 0, 165))
		cluster = append(cluster, geometry.NewSphere(center, 10, white))
	}

	objects := []geometry.Hittable{
		geometry.NewBVH(floor),
		light,
		geometry.NewMovingSphere(center1, center2, 50, material.NewLambertianColor(core.NewVec3(0.7, 0.3, 0.1))),
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)),
		fogged,
		geometry.NewConstantMediumColor(fogged, 0.2, core.NewVec3(0.2, 0.4, 0.9)),
		geometry.NewConstantMediumColor(mist, 0.0001, core.NewVec3(1, 1, 1)),
		geometry.NewSphere(core.NewVec3(400, 200, 400), 100, earth),
		geometry.NewSphere(core.NewVec3(220, 280, 300), 80, marble),
		geometry.NewTranslate(geometry.NewRotateY(geometry.NewBVH(cluster), 15), core.NewVec3(-100, 270, 395)),
	}

	return &Scene{
		Name:       "final",
		World:      geometry.NewBVH(objects),
		Lights:     light,
		Background: core.Color{},
		CameraConfig: renderer.CameraConfig{
			Center:        core.NewVec3(278, 278, -600),
			LookAt:        core.NewVec3(278, 278, 0),
			Up:            core.NewVec3(0, 1, 0),
			Width:         400,
			AspectRatio:   1.0,
			VFov:          40,
			FocusDistance: 10,
		},
		SamplingConfig: renderer.SamplingConfig{SamplesPerPixel: 250, MaxDepth: 40},
	}, nil
}
