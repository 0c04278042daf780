package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/pdf"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// Isotropic is the phase function of a participating medium: every direction is equally likely
type Isotropic struct {
	Albedo texture.Texture
}

// NewIsotropic creates an isotropic phase function from a texture
func NewIsotropic(albedo texture.Texture) *Isotropic {
	return &Isotropic{Albedo: albedo}
}

// NewIsotropicColor creates an isotropic phase function with a solid color
func NewIsotropicColor(albedo core.Color) *Isotropic {
	return &Isotropic{Albedo: texture.NewSolidColor(albedo)}
}

// Scatter samples the full sphere
func (i *Isotropic) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	return ScatterRecord{
		Attenuation: i.Albedo.Value(hit.U, hit.V, hit.Point),
		PDF:         pdf.NewSpherePDF(),
	}, true
}

// ScatteringPDF returns the uniform density 1/(4π)
func (i *Isotropic) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	return 1 / (4 * math.Pi)
}
