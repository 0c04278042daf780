package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// ConstantMedium is a volume of uniform density bounded by a convex shape
type ConstantMedium struct {
	Boundary      Hittable
	negInvDensity float64
	phase         material.Material
}

// NewConstantMedium creates a medium whose phase function is isotropic with the given albedo texture
func NewConstantMedium(boundary Hittable, density float64, albedo texture.Texture) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		negInvDensity: -1 / density,
		phase:         material.NewIsotropic(albedo),
	}
}

// NewConstantMediumColor creates a medium with a solid albedo
func NewConstantMediumColor(boundary Hittable, density float64, albedo core.Color) *ConstantMedium {
	return NewConstantMedium(boundary, density, texture.NewSolidColor(albedo))
}

// Hit samples an exponential free path inside the boundary and reports a scattering
// event when it ends before the ray leaves the volume
func (m *ConstantMedium) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	// Entry and exit crossings of the whole line
	entry, ok := m.Boundary.Hit(ray, core.UniverseInterval, sampler)
	if !ok {
		return nil, false
	}
	exit, ok := m.Boundary.Hit(ray, core.NewInterval(entry.T+0.0001, math.Inf(1)), sampler)
	if !ok {
		return nil, false
	}

	t1 := math.Max(entry.T, rayT.Min)
	t2 := math.Min(exit.T, rayT.Max)
	if t1 >= t2 {
		return nil, false
	}
	if t1 < 0 {
		t1 = 0
	}

	rayLength := ray.Direction.Length()
	distanceInsideBoundary := (t2 - t1) * rayLength
	hitDistance := m.negInvDensity * math.Log(sampler.Get1D())
	if hitDistance > distanceInsideBoundary {
		return nil, false
	}

	t := t1 + hitDistance/rayLength
	return &material.HitRecord{
		T:         t,
		Point:     ray.At(t),
		Normal:    core.NewVec3(1, 0, 0), // arbitrary
		FrontFace: true,                  // also arbitrary
		Material:  m.phase,
	}, true
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox() core.AABB {
	return m.Boundary.BoundingBox()
}
