package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere represents a sphere shape whose center may move linearly over the shutter interval
type Sphere struct {
	Center   core.Ray // Center at time t is Center.At(t)
	Radius   float64
	Material material.Material
	bbox     core.AABB
}

// NewSphere creates a new stationary sphere
func NewSphere(center core.Point3, radius float64, mat material.Material) *Sphere {
	radius = math.Max(0, radius)
	rvec := core.NewVec3(radius, radius, radius)
	return &Sphere{
		Center:   core.NewRay(center, core.Vec3{}),
		Radius:   radius,
		Material: mat,
		bbox:     core.NewAABBFromPoints(center.Subtract(rvec), center.Add(rvec)),
	}
}

// NewMovingSphere creates a sphere moving from center1 at time 0 to center2 at time 1
func NewMovingSphere(center1, center2 core.Point3, radius float64, mat material.Material) *Sphere {
	radius = math.Max(0, radius)
	rvec := core.NewVec3(radius, radius, radius)
	box1 := core.NewAABBFromPoints(center1.Subtract(rvec), center1.Add(rvec))
	box2 := core.NewAABBFromPoints(center2.Subtract(rvec), center2.Add(rvec))
	return &Sphere{
		Center:   core.NewRay(center1, center2.Subtract(center1)),
		Radius:   radius,
		Material: mat,
		bbox:     core.NewAABBUnion(box1, box2),
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	currentCenter := s.Center.At(ray.Time)
	oc := currentCenter.Subtract(ray.Origin)

	// Quadratic in half-b form: a t² - 2h t + c = 0
	a := ray.Direction.LengthSquared()
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Nearest root inside the interval, falling back to the far root
	root := (h - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtD) / a
		if !rayT.Surrounds(root) {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}
	outwardNormal := hitRecord.Point.Subtract(currentCenter).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)
	hitRecord.U, hitRecord.V = sphereUV(outwardNormal)

	return hitRecord, true
}

// sphereUV maps a point on the unit sphere to texture coordinates.
// u is the angle around the Y axis from X=-1, v is the angle from Y=-1 to Y=+1.
func sphereUV(p core.Point3) (float64, float64) {
	theta := math.Acos(-p.Y)
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return phi / (2 * math.Pi), theta / math.Pi
}

// BoundingBox returns the axis-aligned bounding box for this sphere over the whole shutter interval
func (s *Sphere) BoundingBox() core.AABB {
	return s.bbox
}

// PDFValue returns the reciprocal of the solid angle the sphere subtends from origin.
// It is zero when the direction misses or origin lies inside the sphere.
func (s *Sphere) PDFValue(origin, direction core.Vec3) float64 {
	if _, hit := s.Hit(core.NewRay(origin, direction), pdfRayInterval, nil); !hit {
		return 0
	}

	distanceSquared := s.Center.At(0).Subtract(origin).LengthSquared()
	radiusSquared := s.Radius * s.Radius
	if distanceSquared <= radiusSquared {
		return 0
	}

	cosThetaMax := math.Sqrt(1 - radiusSquared/distanceSquared)
	solidAngle := 2 * math.Pi * (1 - cosThetaMax)
	return 1 / solidAngle
}

// Random returns a direction uniformly distributed over the cone the sphere subtends from origin
func (s *Sphere) Random(origin core.Point3, sampler core.Sampler) core.Vec3 {
	direction := s.Center.At(0).Subtract(origin)
	distanceSquared := direction.LengthSquared()
	if distanceSquared <= s.Radius*s.Radius {
		return core.RandomUnitVector(sampler)
	}

	uvw := core.NewONB(direction)
	return uvw.Transform(core.SampleToSphere(s.Radius, distanceSquared, sampler.Get2D()))
}
