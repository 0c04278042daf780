package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// List is an ordered aggregate of hittables searched linearly
type List struct {
	objects     []Hittable
	sampleables []Sampleable
	bbox        core.AABB
}

// NewList creates a list holding the given objects
func NewList(objects ...Hittable) *List {
	l := &List{bbox: core.EmptyAABB}
	for _, object := range objects {
		l.Add(object)
	}
	return l
}

// Add appends an object and grows the cached bounding box
func (l *List) Add(object Hittable) {
	l.objects = append(l.objects, object)
	if s, ok := object.(Sampleable); ok {
		l.sampleables = append(l.sampleables, s)
	}
	l.bbox = core.NewAABBUnion(l.bbox, object.BoundingBox())
}

// Objects returns the list's objects in insertion order
func (l *List) Objects() []Hittable {
	return l.objects
}

// Len returns the number of objects in the list
func (l *List) Len() int {
	return len(l.objects)
}

// Hit returns the closest hit among all objects, narrowing the interval as hits are found
func (l *List) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestSoFar := rayT.Max

	for _, object := range l.objects {
		if hit, ok := object.Hit(ray, core.NewInterval(rayT.Min, closestSoFar), sampler); ok {
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, closest != nil
}

// BoundingBox returns the union of all object boxes
func (l *List) BoundingBox() core.AABB {
	return l.bbox
}

// PDFValue averages the densities of the sampleable objects.
// A list with nothing to sample falls back to a uniform sphere density.
func (l *List) PDFValue(origin, direction core.Vec3) float64 {
	if len(l.sampleables) == 0 {
		return 1 / (4 * math.Pi)
	}

	weight := 1.0 / float64(len(l.sampleables))
	sum := 0.0
	for _, s := range l.sampleables {
		sum += weight * s.PDFValue(origin, direction)
	}
	return sum
}

// Random samples a direction toward one sampleable object chosen uniformly
func (l *List) Random(origin core.Point3, sampler core.Sampler) core.Vec3 {
	n := len(l.sampleables)
	if n == 0 {
		return core.RandomUnitVector(sampler)
	}

	i := int(sampler.Get1D() * float64(n))
	if i >= n {
		i = n - 1
	}
	return l.sampleables[i].Random(origin, sampler)
}
