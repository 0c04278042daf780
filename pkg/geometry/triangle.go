package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Point3       // The three vertices
	Material   material.Material // Material of the triangle
	normal     core.Vec3         // Cached unit normal
	area       float64           // Cached area
	bbox       core.AABB         // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices.
// The front face is the one from which the vertices appear counter-clockwise.
func NewTriangle(v0, v1, v2 core.Point3, mat material.Material) *Triangle {
	n := v1.Subtract(v0).Cross(v2.Subtract(v0))
	return &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: mat,
		normal:   n.Normalize(),
		area:     0.5 * n.Length(),
		bbox:     core.NewAABBUnion(core.NewAABBFromPoints(v0, v1), core.NewAABBFromPoints(v1, v2)),
	}
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	const epsilon = 1e-8

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	// Determinant near zero: the ray lies in the triangle's plane
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	tHit := f * edge2.Dot(q)
	if !rayT.Contains(tHit) {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        tHit,
		Point:    ray.At(tHit),
		Material: t.Material,
		U:        u,
		V:        v,
	}
	hitRecord.SetFaceNormal(ray, t.normal)

	return hitRecord, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Normal returns the triangle's unit normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// PDFValue converts the uniform area density of the triangle to solid angle from origin
func (t *Triangle) PDFValue(origin, direction core.Vec3) float64 {
	hit, ok := t.Hit(core.NewRay(origin, direction), pdfRayInterval, nil)
	if !ok || t.area == 0 {
		return 0
	}

	distanceSquared := hit.T * hit.T * direction.LengthSquared()
	cosine := direction.Dot(t.normal) / direction.Length()
	if cosine < 0 {
		cosine = -cosine
	}
	return distanceSquared / (cosine * t.area)
}

// Random returns a direction from origin to a uniformly chosen point on the triangle
func (t *Triangle) Random(origin core.Point3, sampler core.Sampler) core.Vec3 {
	sample := sampler.Get2D()
	u, v := sample.X, sample.Y
	// Fold the unit square onto the triangle
	if u+v > 1 {
		u, v = 1-u, 1-v
	}
	p := t.V0.Add(t.V1.Subtract(t.V0).Multiply(u)).Add(t.V2.Subtract(t.V0).Multiply(v))
	return p.Subtract(origin)
}
