package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo   core.Color // Metal color
	Fuzzness float64    // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Color, fuzzness float64) *Metal {
	// Clamp fuzzness to valid range
	if fuzzness > 1.0 {
		fuzzness = 1.0
	}
	if fuzzness < 0.0 {
		fuzzness = 0.0
	}
	return &Metal{Albedo: albedo, Fuzzness: fuzzness}
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	// Perfect mirror: d - 2(d·n)n, left unnormalized so fuzz 0 is exact
	reflected := core.Reflect(rayIn.Direction, hit.Normal)

	// Add fuzziness by perturbing the unit reflection direction
	if m.Fuzzness > 0 {
		reflected = reflected.Normalize().Add(core.RandomUnitVector(sampler).Multiply(m.Fuzzness))
	}

	// Rays reflected below the surface are absorbed
	if reflected.Dot(hit.Normal) <= 0 {
		return ScatterRecord{}, false
	}

	return ScatterRecord{
		Attenuation: m.Albedo,
		SkipPDF:     true,
		SkipPDFRay:  core.NewRayAtTime(hit.Point, reflected, rayIn.Time),
	}, true
}

// ScatteringPDF is zero: a mirror bounce has no continuous density
func (m *Metal) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	return 0
}
