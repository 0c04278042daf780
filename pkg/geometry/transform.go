package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Translate moves an object by a fixed offset
type Translate struct {
	Object Hittable
	Offset core.Vec3
	bbox   core.AABB
}

// NewTranslate wraps object so it appears displaced by offset
func NewTranslate(object Hittable, offset core.Vec3) *Translate {
	return &Translate{
		Object: object,
		Offset: offset,
		bbox:   object.BoundingBox().Translate(offset),
	}
}

// Hit moves the ray into object space, delegates, and moves the hit point back
func (tr *Translate) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	offsetRay := core.NewRayAtTime(ray.Origin.Subtract(tr.Offset), ray.Direction, ray.Time)

	hit, ok := tr.Object.Hit(offsetRay, rayT, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = hit.Point.Add(tr.Offset)
	return hit, true
}

// BoundingBox returns the child box shifted by the offset
func (tr *Translate) BoundingBox() core.AABB {
	return tr.bbox
}

// PDFValue forwards to a sampleable child in object space
func (tr *Translate) PDFValue(origin, direction core.Vec3) float64 {
	s, ok := tr.Object.(Sampleable)
	if !ok {
		return 0
	}
	return s.PDFValue(origin.Subtract(tr.Offset), direction)
}

// Random forwards to a sampleable child in object space
func (tr *Translate) Random(origin core.Point3, sampler core.Sampler) core.Vec3 {
	s, ok := tr.Object.(Sampleable)
	if !ok {
		return core.RandomUnitVector(sampler)
	}
	return s.Random(origin.Subtract(tr.Offset), sampler)
}

// RotateY rotates an object about the Y axis
type RotateY struct {
	Object   Hittable
	sinTheta float64
	cosTheta float64
	bbox     core.AABB
}

// NewRotateY wraps object rotated by angle degrees about the Y axis
func NewRotateY(object Hittable, angle float64) *RotateY {
	radians := core.DegreesToRadians(angle)
	r := &RotateY{
		Object:   object,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	box := object.BoundingBox()
	if box.IsEmpty() {
		r.bbox = core.EmptyAABB
		return r
	}

	// Enclose all 8 rotated corners of the child box
	boxMin, boxMax := box.Min(), box.Max()
	lo := core.NewVec3(math.Inf(1), math.Inf(1), math.Inf(1))
	hi := core.NewVec3(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	for i := 0; i < 8; i++ {
		corner := boxMin
		if i&1 != 0 {
			corner.X = boxMax.X
		}
		if i&2 != 0 {
			corner.Y = boxMax.Y
		}
		if i&4 != 0 {
			corner.Z = boxMax.Z
		}
		rotated := r.toWorld(corner)
		lo = core.NewVec3(math.Min(lo.X, rotated.X), math.Min(lo.Y, rotated.Y), math.Min(lo.Z, rotated.Z))
		hi = core.NewVec3(math.Max(hi.X, rotated.X), math.Max(hi.Y, rotated.Y), math.Max(hi.Z, rotated.Z))
	}
	r.bbox = core.NewAABBFromPoints(lo, hi)

	return r
}

// toObject rotates a world-space vector by -angle
func (r *RotateY) toObject(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// toWorld rotates an object-space vector by +angle
func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// Hit rotates the ray into object space, delegates, and rotates the hit back
func (r *RotateY) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	rotated := core.NewRayAtTime(r.toObject(ray.Origin), r.toObject(ray.Direction), ray.Time)

	hit, ok := r.Object.Hit(rotated, rayT, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = r.toWorld(hit.Point)
	hit.Normal = r.toWorld(hit.Normal)
	return hit, true
}

// BoundingBox returns the box enclosing the rotated child box
func (r *RotateY) BoundingBox() core.AABB {
	return r.bbox
}

// PDFValue forwards to a sampleable child in object space
func (r *RotateY) PDFValue(origin, direction core.Vec3) float64 {
	s, ok := r.Object.(Sampleable)
	if !ok {
		return 0
	}
	return s.PDFValue(r.toObject(origin), r.toObject(direction))
}

// Random forwards to a sampleable child in object space
func (r *RotateY) Random(origin core.Point3, sampler core.Sampler) core.Vec3 {
	s, ok := r.Object.(Sampleable)
	if !ok {
		return core.RandomUnitVector(sampler)
	}
	return r.toWorld(s.Random(r.toObject(origin), sampler))
}
