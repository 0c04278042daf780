// Package geometry holds the ray-intersectable primitives, their transform and volume
// decorators, and the BVH that accelerates queries over them.
package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Hittable interface for objects that can be hit by rays
type Hittable interface {
	// Hit returns the nearest intersection with ray whose parameter lies in rayT.
	// The sampler is used by volumes that scatter stochastically.
	Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool)
	BoundingBox() core.AABB
}

// Sampleable is implemented by objects that can be importance-sampled as lights.
// It satisfies pdf.Target.
type Sampleable interface {
	// PDFValue returns the solid-angle density of direction as seen from origin
	PDFValue(origin, direction core.Vec3) float64
	// Random returns a direction from origin toward a random point on the object
	Random(origin core.Point3, sampler core.Sampler) core.Vec3
}

// pdfRayInterval is the hit interval used when evaluating light densities
var pdfRayInterval = core.NewInterval(0.001, core.UniverseInterval.Max)
