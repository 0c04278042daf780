package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner   core.Point3       // One corner of the quad
	U        core.Vec3         // First edge vector
	V        core.Vec3         // Second edge vector
	Normal   core.Vec3         // Unit normal (U × V normalized)
	Material material.Material // Material of the quad
	D        float64           // Plane equation constant: normal · p = D
	W        core.Vec3         // n / (n·n), maps plane points to edge coordinates
	area     float64
	bbox     core.AABB
}

// NewQuad creates a new quad from a corner point and two edge vectors.
// Collinear edges produce a degenerate quad that is never hit.
func NewQuad(corner, u, v core.Vec3, mat material.Material) *Quad {
	n := u.Cross(v)
	normal := n.Normalize()

	var w core.Vec3
	if nn := n.Dot(n); nn != 0 {
		w = n.Divide(nn)
	}

	boxDiagonal1 := core.NewAABBFromPoints(corner, corner.Add(u).Add(v))
	boxDiagonal2 := core.NewAABBFromPoints(corner.Add(u), corner.Add(v))

	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		Material: mat,
		D:        normal.Dot(corner),
		W:        w,
		area:     n.Length(),
		bbox:     core.NewAABBUnion(boxDiagonal1, boxDiagonal2),
	}
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	// Ray parallel to the plane
	denominator := q.Normal.Dot(ray.Direction)
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	t := (q.D - q.Normal.Dot(ray.Origin)) / denominator
	if !rayT.Contains(t) {
		return nil, false
	}

	// Planar coordinates of the hit point along U and V
	intersection := ray.At(t)
	planarHit := intersection.Subtract(q.Corner)
	alpha := q.W.Dot(planarHit.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(planarHit))

	unit := core.NewInterval(0, 1)
	if !unit.Contains(alpha) || !unit.Contains(beta) {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    intersection,
		Material: q.Material,
		U:        alpha,
		V:        beta,
	}
	hitRecord.SetFaceNormal(ray, q.Normal)

	return hitRecord, true
}

// BoundingBox returns the axis-aligned bounding box for this quad
func (q *Quad) BoundingBox() core.AABB {
	return q.bbox
}

// PDFValue converts the uniform area density of the quad to solid angle from origin
func (q *Quad) PDFValue(origin, direction core.Vec3) float64 {
	hit, ok := q.Hit(core.NewRay(origin, direction), pdfRayInterval, nil)
	if !ok {
		return 0
	}

	distanceSquared := hit.T * hit.T * direction.LengthSquared()
	cosine := math.Abs(direction.Dot(hit.Normal) / direction.Length())
	return distanceSquared / (cosine * q.area)
}

// Random returns a direction from origin to a uniformly chosen point on the quad
func (q *Quad) Random(origin core.Point3, sampler core.Sampler) core.Vec3 {
	sample := sampler.Get2D()
	p := q.Corner.Add(q.U.Multiply(sample.X)).Add(q.V.Multiply(sample.Y))
	return p.Subtract(origin)
}

// NewBox returns the six quads enclosing the box with opposite corners a and b:
// front, right, back, left, top and bottom
func NewBox(a, b core.Point3, mat material.Material) *List {
	lo := core.NewVec3(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z))
	hi := core.NewVec3(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z))

	dx := core.NewVec3(hi.X-lo.X, 0, 0)
	dy := core.NewVec3(0, hi.Y-lo.Y, 0)
	dz := core.NewVec3(0, 0, hi.Z-lo.Z)

	return NewList(
		NewQuad(core.NewVec3(lo.X, lo.Y, hi.Z), dx, dy, mat),
		NewQuad(core.NewVec3(hi.X, lo.Y, hi.Z), dz.Negate(), dy, mat),
		NewQuad(core.NewVec3(hi.X, lo.Y, lo.Z), dx.Negate(), dy, mat),
		NewQuad(core.NewVec3(lo.X, lo.Y, lo.Z), dz, dy, mat),
		NewQuad(core.NewVec3(lo.X, hi.Y, hi.Z), dx, dz.Negate(), mat),
		NewQuad(core.NewVec3(lo.X, lo.Y, lo.Z), dx, dz, mat),
	)
}
