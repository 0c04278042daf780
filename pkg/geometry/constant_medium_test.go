package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestConstantMedium_Deterministic(t *testing.T) {
	medium := NewConstantMediumColor(NewSphere(core.NewVec3(0, 0, 0), 1, nil), 2, core.NewVec3(1, 1, 1))
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	rayT := core.NewInterval(0.001, math.Inf(1))

	a := core.NewSeededSampler(42)
	b := core.NewSeededSampler(42)
	for i := 0; i < 100; i++ {
		hitA, okA := medium.Hit(ray, rayT, a)
		hitB, okB := medium.Hit(ray, rayT, b)
		if okA != okB || (okA && hitA.T != hitB.T) {
			t.Fatalf("Same seed should give the same scattering events")
		}
	}
}

func TestConstantMedium_HitRecord(t *testing.T) {
	medium := NewConstantMediumColor(NewSphere(core.NewVec3(0, 0, 0), 1, nil), 50, core.NewVec3(0.2, 0.4, 0.9))
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	sampler := core.NewSeededSampler(42)

	hits := 0
	for i := 0; i < 200; i++ {
		hit, ok := medium.Hit(ray, core.NewInterval(0.001, math.Inf(1)), sampler)
		if !ok {
			continue
		}
		hits++
		if hit.T < 4 || hit.T > 6 {
			t.Fatalf("Scattering event at t=%f lies outside the boundary", hit.T)
		}
		if !hit.FrontFace || !hit.Normal.Equals(core.NewVec3(1, 0, 0)) {
			t.Errorf("Expected arbitrary front-facing +X normal, got %v front=%t", hit.Normal, hit.FrontFace)
		}
		if _, isIsotropic := hit.Material.(*material.Isotropic); !isIsotropic {
			t.Errorf("Expected isotropic phase function, got %T", hit.Material)
		}
	}

	// Density 50 over a path of 2 almost always scatters
	if hits < 190 {
		t.Errorf("Expected nearly every ray to scatter, got %d of 200", hits)
	}
}

func TestConstantMedium_TransmissionFollowsBeerLambert(t *testing.T) {
	density := 0.5
	medium := NewConstantMediumColor(NewSphere(core.NewVec3(0, 0, 0), 1, nil), density, core.NewVec3(1, 1, 1))
	// Unnormalized direction: distances must be measured in world units
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 3))
	sampler := core.NewSeededSampler(42)

	const n = 20000
	passed := 0
	for i := 0; i < n; i++ {
		if _, ok := medium.Hit(ray, core.NewInterval(0.001, math.Inf(1)), sampler); !ok {
			passed++
		}
	}

	expected := math.Exp(-density * 2)
	if fraction := float64(passed) / n; math.Abs(fraction-expected) > 0.015 {
		t.Errorf("Expected transmission %f, got %f", expected, fraction)
	}
}

func TestConstantMedium_FromInsideAndClipped(t *testing.T) {
	medium := NewConstantMediumColor(NewSphere(core.NewVec3(0, 0, 0), 10, nil), 100, core.NewVec3(1, 1, 1))
	sampler := core.NewSeededSampler(42)

	// Origin inside the volume: events start at the ray origin, not behind it
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
	for i := 0; i < 100; i++ {
		hit, ok := medium.Hit(ray, core.NewInterval(0.001, math.Inf(1)), sampler)
		if ok && hit.T < 0 {
			t.Fatalf("Expected non-negative t from inside, got %f", hit.T)
		}
	}

	// Interval ending before the volume
	far := core.NewRay(core.NewVec3(-50, 0, 0), core.NewVec3(1, 0, 0))
	if _, ok := medium.Hit(far, core.NewInterval(0.001, 30), sampler); ok {
		t.Error("Expected no event when the interval ends before the volume")
	}

	// Missing the boundary entirely
	miss := core.NewRay(core.NewVec3(-50, 20, 0), core.NewVec3(1, 0, 0))
	if _, ok := medium.Hit(miss, core.UniverseInterval, sampler); ok {
		t.Error("Expected no event for a ray missing the boundary")
	}
}
