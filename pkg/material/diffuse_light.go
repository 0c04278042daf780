package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// DiffuseLight is a one-sided area emitter
type DiffuseLight struct {
	Emit texture.Texture
}

// NewDiffuseLight creates a light that emits the texture's color
func NewDiffuseLight(emit texture.Texture) *DiffuseLight {
	return &DiffuseLight{Emit: emit}
}

// NewDiffuseLightColor creates a light with a constant emission color
func NewDiffuseLightColor(emission core.Color) *DiffuseLight {
	return &DiffuseLight{Emit: texture.NewSolidColor(emission)}
}

// Scatter never scatters; lights only emit
func (l *DiffuseLight) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	return ScatterRecord{}, false
}

// ScatteringPDF is zero for a non-scattering surface
func (l *DiffuseLight) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	return 0
}

// Emitted returns the emission on the front face and black on the back
func (l *DiffuseLight) Emitted(rayIn core.Ray, hit *HitRecord, u, v float64, p core.Point3) core.Color {
	if !hit.FrontFace {
		return core.Color{}
	}
	return l.Emit.Value(u, v, p)
}
