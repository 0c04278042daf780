// Package integrator estimates the radiance carried along camera rays.
package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray, following at most depth bounces
	RayColor(ray core.Ray, depth int, world geometry.Hittable, sampler core.Sampler) core.Color
}

// worldInterval skips self-intersections right at the ray origin ("shadow acne")
var worldInterval = core.NewInterval(0.001, core.UniverseInterval.Max)
