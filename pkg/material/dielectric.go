package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	// Entering the material goes from air to glass, leaving goes back
	refractionRatio := d.RefractiveIndex
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractiveIndex
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(-unitDirection.Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	// Total internal reflection
	cannotRefract := refractionRatio*sinTheta > 1.0

	var direction core.Vec3
	if cannotRefract || Reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		direction = core.Reflect(unitDirection, hit.Normal)
	} else {
		direction = core.Refract(unitDirection, hit.Normal, refractionRatio)
	}

	return ScatterRecord{
		Attenuation: core.NewVec3(1.0, 1.0, 1.0), // clear glass absorbs nothing
		SkipPDF:     true,
		SkipPDFRay:  core.NewRayAtTime(hit.Point, direction, rayIn.Time),
	}, true
}

// ScatteringPDF is zero: refraction and reflection are delta bounces
func (d *Dielectric) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	return 0
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
