// Package pdf provides directional sampling strategies with evaluable densities.
package pdf

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// PDF is a directional probability density that can also draw samples from itself
type PDF interface {
	// Value returns the solid-angle density of direction
	Value(direction core.Vec3) float64
	// Generate draws a direction distributed according to Value
	Generate(sampler core.Sampler) core.Vec3
}

// Target is an object that can be importance-sampled from a point, such as a light
type Target interface {
	PDFValue(origin, direction core.Vec3) float64
	Random(origin core.Vec3, sampler core.Sampler) core.Vec3
}

// SpherePDF is uniform over all directions
type SpherePDF struct{}

// NewSpherePDF creates a uniform sphere density
func NewSpherePDF() SpherePDF {
	return SpherePDF{}
}

// Value returns 1/(4π) for every direction
func (SpherePDF) Value(direction core.Vec3) float64 {
	return 1 / (4 * math.Pi)
}

// Generate returns a uniform random unit vector
func (SpherePDF) Generate(sampler core.Sampler) core.Vec3 {
	return core.RandomUnitVector(sampler)
}

// CosinePDF is cosine-weighted over the hemisphere about a normal
type CosinePDF struct {
	uvw core.ONB
}

// NewCosinePDF creates a cosine density around normal
func NewCosinePDF(normal core.Vec3) CosinePDF {
	return CosinePDF{uvw: core.NewONB(normal)}
}

// Value returns max(0, cos θ / π)
func (p CosinePDF) Value(direction core.Vec3) float64 {
	cosine := direction.Normalize().Dot(p.uvw.W)
	return math.Max(0, cosine/math.Pi)
}

// Generate draws a cosine-weighted direction in the hemisphere
func (p CosinePDF) Generate(sampler core.Sampler) core.Vec3 {
	return p.uvw.Transform(core.SampleCosineDirection(sampler.Get2D()))
}

// HittablePDF samples directions toward a Target as seen from origin
type HittablePDF struct {
	target Target
	origin core.Point3
}

// NewHittablePDF creates a density toward target from origin
func NewHittablePDF(target Target, origin core.Point3) HittablePDF {
	return HittablePDF{target: target, origin: origin}
}

// Value delegates to the target's density
func (p HittablePDF) Value(direction core.Vec3) float64 {
	return p.target.PDFValue(p.origin, direction)
}

// Generate delegates to the target's sampler
func (p HittablePDF) Generate(sampler core.Sampler) core.Vec3 {
	return p.target.Random(p.origin, sampler)
}

// MixturePDF is an equal-weight blend of two densities
type MixturePDF struct {
	p [2]PDF
}

// NewMixturePDF creates a 0.5/0.5 mixture of p0 and p1
func NewMixturePDF(p0, p1 PDF) MixturePDF {
	return MixturePDF{p: [2]PDF{p0, p1}}
}

// Value averages the two densities
func (m MixturePDF) Value(direction core.Vec3) float64 {
	return 0.5*m.p[0].Value(direction) + 0.5*m.p[1].Value(direction)
}

// Generate picks one of the two strategies with a fair coin flip
func (m MixturePDF) Generate(sampler core.Sampler) core.Vec3 {
	if sampler.Get1D() < 0.5 {
		return m.p[0].Generate(sampler)
	}
	return m.p[1].Generate(sampler)
}
