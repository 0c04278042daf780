package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// Material interface for surfaces that can scatter rays
type Material interface {
	// Scatter decides how an incoming ray leaves the surface. A false return means
	// the surface absorbs the ray (it may still emit).
	Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool)

	// ScatteringPDF is the material's own density for scattering rayIn into scattered
	ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64
}

// Emitter interface for materials that emit light
type Emitter interface {
	Emitted(rayIn core.Ray, hit *HitRecord, u, v float64, p core.Point3) core.Color
}

// ScatterRecord contains the result of material scattering
type ScatterRecord struct {
	Attenuation core.Color // Color attenuation
	PDF         pdf.PDF    // Sampling strategy for diffuse bounces
	SkipPDF     bool       // Delta bounce: follow SkipPDFRay without a density
	SkipPDFRay  core.Ray   // The deterministic scattered ray when SkipPDF is set
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Point3 // Point of intersection
	Normal    core.Vec3   // Surface normal, always facing against the ray
	Material  Material    // Material of the hit object
	T         float64     // Parameter t along the ray
	U, V      float64     // Surface coordinates
	FrontFace bool        // Whether ray hit the front face
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal is assumed to have unit length.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Emission returns what the hit material emits toward rayIn; non-emitters are black
func Emission(rayIn core.Ray, hit *HitRecord) core.Color {
	if emitter, ok := hit.Material.(Emitter); ok {
		return emitter.Emitted(rayIn, hit, hit.U, hit.V, hit.Point)
	}
	return core.Color{}
}
