package loaders

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Mesh is an indexed triangle list loaded from a model file
type Mesh struct {
	Name     string
	Vertices []core.Vec3
	Faces    []int // Triangle vertex indices, 3 per triangle, counter-clockwise front faces
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.Faces) / 3
}

// Bounds returns the component-wise minimum and maximum vertex positions
func (m *Mesh) Bounds() (lo, hi core.Vec3) {
	if len(m.Vertices) == 0 {
		return core.Vec3{}, core.Vec3{}
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		lo = core.NewVec3(math.Min(lo.X, v.X), math.Min(lo.Y, v.Y), math.Min(lo.Z, v.Z))
		hi = core.NewVec3(math.Max(hi.X, v.X), math.Max(hi.Y, v.Y), math.Max(hi.Z, v.Z))
	}
	return lo, hi
}

// Fit uniformly scales and moves the mesh so its largest extent equals size
// and the center of its bounds sits at center
func (m *Mesh) Fit(center core.Vec3, size float64) {
	lo, hi := m.Bounds()
	extent := hi.Subtract(lo)
	largest := math.Max(extent.X, math.Max(extent.Y, extent.Z))
	scale := 1.0
	if largest > 0 {
		scale = size / largest
	}
	mid := lo.Add(hi).Multiply(0.5)
	for i, v := range m.Vertices {
		m.Vertices[i] = v.Subtract(mid).Multiply(scale).Add(center)
	}
}

// validate checks that every face index refers to a vertex
func (m *Mesh) validate() error {
	if len(m.Faces)%3 != 0 {
		return fmt.Errorf("face index count %d is not a multiple of 3", len(m.Faces))
	}
	for _, idx := range m.Faces {
		if idx < 0 || idx >= len(m.Vertices) {
			return fmt.Errorf("face index %d out of range [0,%d)", idx, len(m.Vertices))
		}
	}
	return nil
}

// LoadMesh loads a .gltf, .glb or .ply file
func LoadMesh(path string) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gltf", ".glb":
		return LoadGLTF(path)
	case ".ply":
		return LoadPLY(path)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q", ext)
	}
}
