package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrNoMeshPath is returned by the mesh scene when Options.MeshPath is empty
var ErrNoMeshPath = errors.New("mesh scene requires a model file (.gltf, .glb or .ply)")

// NewMeshScene loads a glTF or PLY model, fits it into a two-unit cube resting on a ground
// square and lights it from above
func NewMeshScene(opts Options) (*Scene, error) {
	if opts.MeshPath == "" {
		return nil, ErrNoMeshPath
	}
	logger := opts.logger()

	logger.Printf("Loading mesh from %s...\n", opts.MeshPath)
	model, err := loaders.LoadMesh(opts.MeshPath)
	if err != nil {
		return nil, fmt.Errorf("mesh scene: %w", err)
	}
	model.Fit(core.NewVec3(0, 1, 0), 2)

	mesh, err := geometry.NewTriangleMesh(model.Vertices, model.Faces,
		material.NewLambertianColor(core.NewVec3(0.7, 0.5, 0.2)))
	if err != nil {
		return nil, fmt.Errorf("mesh scene: %w", err)
	}
	logger.Printf("Loaded %s: %d triangles\n", model.Name, mesh.TriangleCount())

	ground := NewGroundQuad(core.NewVec3(0, 0, 0), 20, material.NewLambertianColor(core.NewVec3(0.6, 0.6, 0.6)))

	// Corner and edges chosen so u×v points down toward the model
	light := geometry.NewQuad(core.NewVec3(-1.5, 5, -1.5), core.NewVec3(3, 0, 0), core.NewVec3(0, 0, 3),
		material.NewDiffuseLightColor(core.NewVec3(4, 4, 4)))

	return &Scene{
		Name:       "mesh",
		World:      geometry.NewBVH([]geometry.Hittable{mesh, ground, light}),
		Lights:     light,
		Background: DefaultBackground,
		CameraConfig: renderer.CameraConfig{
			Center:        core.NewVec3(0, 2, 6),
			LookAt:        mesh.BoundingBox().Center(),
			Up:            core.NewVec3(0, 1, 0),
			Width:         400,
			AspectRatio:   16.0 / 9.0,
			VFov:          35,
			FocusDistance: 0,
		},
		SamplingConfig: renderer.SamplingConfig{SamplesPerPixel: 64, MaxDepth: 20},
	}, nil
}
