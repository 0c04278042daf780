package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/pdf"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo texture.Texture // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material from a texture
func NewLambertian(albedo texture.Texture) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// NewLambertianColor creates a new lambertian material with a solid color
func NewLambertianColor(albedo core.Color) *Lambertian {
	return &Lambertian{Albedo: texture.NewSolidColor(albedo)}
}

// Scatter implements the Material interface for lambertian scattering.
// The bounce direction is left to the integrator through a cosine PDF.
func (l *Lambertian) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	return ScatterRecord{
		Attenuation: l.Albedo.Value(hit.U, hit.V, hit.Point),
		PDF:         pdf.NewCosinePDF(hit.Normal),
	}, true
}

// ScatteringPDF returns cos(θ)/π, or 0 below the surface
func (l *Lambertian) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	cosTheta := hit.Normal.Dot(scattered.Direction.Normalize())
	if cosTheta <= 0 {
		return 0
	}
	return cosTheta / math.Pi
}
