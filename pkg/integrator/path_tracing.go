package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// minSamplingDensity ends a path whose sampled direction has (almost) no density
const minSamplingDensity = 1e-12

// PathTracingIntegrator implements unidirectional path tracing with an optional
// 50/50 mixture of light sampling and material sampling
type PathTracingIntegrator struct {
	Background core.Color          // Radiance of rays that escape the scene
	Lights     geometry.Sampleable // Importance-sampled emitters; nil samples materials only
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(background core.Color, lights geometry.Sampleable) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		Background: background,
		Lights:     lights,
	}
}

// RayColor computes the color for a single ray recursively
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, depth int, world geometry.Hittable, sampler core.Sampler) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Color{}
	}

	hit, isHit := world.Hit(ray, worldInterval, sampler)
	if !isHit {
		return pt.Background
	}
	if hit.Material == nil {
		return core.Color{}
	}

	colorEmitted := material.Emission(ray, hit)

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		return colorEmitted
	}

	// Delta bounce: follow the attached ray without a density
	if scatter.SkipPDF {
		return colorEmitted.Add(scatter.Attenuation.MultiplyVec(
			pt.RayColor(scatter.SkipPDFRay, depth-1, world, sampler)))
	}

	scattered, weight, ok := pt.sampleDirection(ray, hit, scatter, sampler)
	if !ok {
		return colorEmitted
	}

	colorScattered := weight.MultiplyVec(pt.RayColor(scattered, depth-1, world, sampler))
	return colorEmitted.Add(colorScattered)
}

// RayColorIterative computes the same estimate as RayColor with an explicit loop
// carrying the path throughput
func (pt *PathTracingIntegrator) RayColorIterative(ray core.Ray, depth int, world geometry.Hittable, sampler core.Sampler) core.Color {
	color := core.Color{}
	throughput := core.NewVec3(1, 1, 1)

	for ; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, worldInterval, sampler)
		if !isHit {
			return color.Add(throughput.MultiplyVec(pt.Background))
		}
		if hit.Material == nil {
			return color
		}

		color = color.Add(throughput.MultiplyVec(material.Emission(ray, hit)))

		scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
		if !didScatter {
			return color
		}

		if scatter.SkipPDF {
			throughput = throughput.MultiplyVec(scatter.Attenuation)
			ray = scatter.SkipPDFRay
			continue
		}

		scattered, weight, ok := pt.sampleDirection(ray, hit, scatter, sampler)
		if !ok {
			return color
		}
		throughput = throughput.MultiplyVec(weight)
		ray = scattered
	}

	return color
}

// sampleDirection draws the next path direction and returns it with the estimator
// weight attenuation·scattering_pdf/sampling_pdf
func (pt *PathTracingIntegrator) sampleDirection(ray core.Ray, hit *material.HitRecord, scatter material.ScatterRecord, sampler core.Sampler) (core.Ray, core.Vec3, bool) {
	samplingPDF := scatter.PDF
	if pt.Lights != nil {
		samplingPDF = pdf.NewMixturePDF(pdf.NewHittablePDF(pt.Lights, hit.Point), scatter.PDF)
	}

	scattered := core.NewRayAtTime(hit.Point, samplingPDF.Generate(sampler), ray.Time)
	pdfValue := samplingPDF.Value(scattered.Direction)
	if pdfValue < minSamplingDensity {
		return core.Ray{}, core.Vec3{}, false
	}

	scatteringPDF := hit.Material.ScatteringPDF(ray, hit, scattered)
	return scattered, scatter.Attenuation.Multiply(scatteringPDF / pdfValue), true
}

// Iterative returns an Integrator that evaluates paths with RayColorIterative
func (pt *PathTracingIntegrator) Iterative() Integrator {
	return iterativeIntegrator{pt}
}

type iterativeIntegrator struct {
	pt *PathTracingIntegrator
}

func (it iterativeIntegrator) RayColor(ray core.Ray, depth int, world geometry.Hittable, sampler core.Sampler) core.Color {
	return it.pt.RayColorIterative(ray, depth, world, sampler)
}
