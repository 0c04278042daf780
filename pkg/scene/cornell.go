package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// cornellMaterials are the wall and light materials of the classic box
type cornellMaterials struct {
	red, white, green material.Material
	light             material.Material
}

func newCornellMaterials() cornellMaterials {
	return cornellMaterials{
		red:   material.NewLambertianColor(core.NewVec3(0.65, 0.05, 0.05)),
		white: material.NewLambertianColor(core.NewVec3(0.73, 0.73, 0.73)),
		green: material.NewLambertianColor(core.NewVec3(0.12, 0.45, 0.15)),
		light: material.NewDiffuseLightColor(core.NewVec3(15, 15, 15)),
	}
}

// cornellBlocks returns the tall and short boxes, rotated and placed on the floor
func cornellBlocks(mat material.Material) (tall, short geometry.Hittable) {
	box1 := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), mat)
	tall = geometry.NewTranslate(geometry.NewRotateY(box1, 15), core.NewVec3(265, 0, 295))

	box2 := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), mat)
	short = geometry.NewTranslate(geometry.NewRotateY(box2, -18), core.NewVec3(130, 0, 65))
	return tall, short
}

// cornellCamera looks into the open side of the 555-unit box
func cornellCamera(width int) renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:        core.NewVec3(278, 278, -800),
		LookAt:        core.NewVec3(278, 278, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         width,
		AspectRatio:   1.0,
		VFov:          40,
		FocusDistance: 10,
	}
}

// NewCornellBox creates the Cornell box with two white blocks and importance-sampled ceiling light
func NewCornellBox(opts Options) (*Scene, error) {
	m := newCornellMaterials()

	light := geometry.NewQuad(core.NewVec3(213, 554, 227), core.NewVec3(130, 0, 0), core.NewVec3(0, 0, 105), m.light)
	tall, short := cornellBlocks(m.white)

	objects := []geometry.Hittable{
		geometry.NewQuad(core.NewVec3(555, 0, 0), core.NewVec3(0, 0, 555), core.NewVec3(0, 555, 0), m.green),
		geometry.NewQuad(core.NewVec3(0, 0, 555), core.NewVec3(0, 0, -555), core.NewVec3(0, 555, 0), m.red),
		geometry.NewQuad(core.NewVec3(0, 555, 0), core.NewVec3(555, 0, 0), core.NewVec3(0, 0, 555), m.white),
		geometry.NewQuad(core.NewVec3(0, 0, 555), core.NewVec3(555, 0, 0), core.NewVec3(0, 0, -555), m.white),
		geometry.NewQuad(core.NewVec3(555, 0, 555), core.NewVec3(-555, 0, 0), core.NewVec3(0, 555, 0), m.white),
		light,
		tall,
		short,
	}

	return &Scene{
		Name:           "cornell-box",
		World:          geometry.NewBVH(objects),
		Lights:         light,
		Background:     core.Color{},
		CameraConfig:   cornellCamera(600),
		SamplingConfig: renderer.SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50},
	}, nil
}

// NewCornellSmoke fills the Cornell box blocks with black and white smoke
func NewCornellSmoke(opts Options) (*Scene, error) {
	m := newCornellMaterials()

	light := geometry.NewQuad(core.NewVec3(343, 554, 332), core.NewVec3(-130, 0, 0), core.NewVec3(0, 0, -105), m.light)
	tall, short := cornellBlocks(m.white)

	objects := []geometry.Hittable{
		geometry.NewQuad(core.NewVec3(555, 0, 0), core.NewVec3(0, 555, 0), core.NewVec3(0, 0, 555), m.green),
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 555, 0), core.NewVec3(0, 0, 555), m.red),
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(555, 0, 0), core.NewVec3(0, 0, 555), m.white),
		geometry.NewQuad(core.NewVec3(555, 555, 555), core.NewVec3(-555, 0, 0), core.NewVec3(0, 0, -555), m.white),
		geometry.NewQuad(core.NewVec3(0, 0, 555), core.NewVec3(555, 0, 0), core.NewVec3(0, 555, 0), m.white),
		light,
		geometry.NewConstantMediumColor(tall, 0.01, core.NewVec3(0, 0, 0)),
		geometry.NewConstantMediumColor(short, 0.01, core.NewVec3(1, 1, 1)),
	}

	return &Scene{
		Name:           "cornell-smoke",
		World:          geometry.NewBVH(objects),
		Lights:         light,
		Background:     core.Color{},
		CameraConfig:   cornellCamera(600),
		SamplingConfig: renderer.SamplingConfig{SamplesPerPixel: 200, MaxDepth: 50},
	}, nil
}
