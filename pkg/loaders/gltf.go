package loaders

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"

	"github.com/df07/go-pathtracer/pkg/core"
)

// LoadGLTF loads every triangle primitive of a .gltf or .glb file into one mesh.
// Node transforms are not applied; positions are taken in mesh space.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return LoadGLTFDocument(doc, filepath.Base(path))
}

// LoadGLTFDocument extracts triangles from an already decoded document
func LoadGLTFDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := &Mesh{Name: name}
	for _, m := range doc.Meshes {
		if err := processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if err := mesh.validate(); err != nil {
		return nil, err
	}
	return mesh, nil
}

// processMesh appends the triangle primitives of a glTF mesh
func processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Lines and points have no surface
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		baseVertex := len(mesh.Vertices)
		mesh.Vertices = append(mesh.Vertices, positions...)

		if prim.Indices != nil {
			indices, err := readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			for i := 0; i+2 < len(indices); i += 3 {
				mesh.Faces = append(mesh.Faces, baseVertex+indices[i], baseVertex+indices[i+1], baseVertex+indices[i+2])
			}
		} else {
			// Non-indexed: consecutive vertex triples
			for i := 0; i+2 < len(positions); i += 3 {
				mesh.Faces = append(mesh.Faces, baseVertex+i, baseVertex+i+1, baseVertex+i+2)
			}
		}
	}
	return nil
}

// accessorBytes returns the buffer bytes an accessor reads from, its start offset and element stride
func accessorBytes(doc *gltf.Document, accessorIdx int, elementSize int) ([]byte, int, int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, 0, 0, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor %d has no buffer view", accessorIdx)
	}
	if *accessor.BufferView >= len(doc.BufferViews) {
		return nil, 0, 0, fmt.Errorf("buffer view %d out of range", *accessor.BufferView)
	}
	view := doc.BufferViews[*accessor.BufferView]
	if view.Buffer >= len(doc.Buffers) {
		return nil, 0, 0, fmt.Errorf("buffer %d out of range", view.Buffer)
	}
	data := doc.Buffers[view.Buffer].Data
	if data == nil {
		return nil, 0, 0, fmt.Errorf("buffer %d has no data", view.Buffer)
	}

	start := view.ByteOffset + accessor.ByteOffset
	stride := view.ByteStride
	if stride == 0 {
		stride = elementSize
	}
	if accessor.Count > 0 && start+(accessor.Count-1)*stride+elementSize > len(data) {
		return nil, 0, 0, fmt.Errorf("accessor %d reads past the end of buffer %d", accessorIdx, view.Buffer)
	}
	return data, start, stride, nil
}

// readVec3Accessor reads float VEC3 data
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]core.Vec3, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v of %v", accessor.Type, accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessorIdx, 12)
	if err != nil {
		return nil, err
	}

	result := make([]core.Vec3, accessor.Count)
	for i := range result {
		offset := start + i*stride
		result[i] = core.NewVec3(readFloat32(data[offset:]), readFloat32(data[offset+4:]), readFloat32(data[offset+8:]))
	}
	return result, nil
}

// readIndices reads unsigned SCALAR index data of any width
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessorIdx, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range result {
		offset := start + i*stride
		switch size {
		case 1:
			result[i] = int(data[offset])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(data[offset:]))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(data[offset:]))
		}
	}
	return result, nil
}

// readFloat32 reads a little-endian float32 as float64
func readFloat32(b []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}
