package geometry

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// TriangleMesh represents a collection of triangles with efficient ray intersection.
// It uses an internal BVH for fast intersection tests.
type TriangleMesh struct {
	triangles []Hittable
	bvh       *BVHNode
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices.
// Each group of 3 indices in faces forms one triangle.
func NewTriangleMesh(vertices []core.Point3, faces []int, mat material.Material) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face indices must be a multiple of 3, got %d", len(faces))
	}

	triangles := make([]Hittable, 0, len(faces)/3)
	for i := 0; i < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]
		for _, idx := range []int{i0, i1, i2} {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range [0, %d)", i/3, idx, len(vertices))
			}
		}
		triangles = append(triangles, NewTriangle(vertices[i0], vertices[i1], vertices[i2], mat))
	}

	return &TriangleMesh{
		triangles: triangles,
		bvh:       NewBVH(triangles),
	}, nil
}

// Hit tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	return tm.bvh.Hit(ray, rayT, sampler)
}

// BoundingBox returns the bounding box of the entire mesh
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bvh.BoundingBox()
}

// TriangleCount returns the number of triangles in the mesh
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}
