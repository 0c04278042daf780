package pdf

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

// integrateOverSphere estimates ∫ p(ω) dω with uniform sphere samples
func integrateOverSphere(p PDF, samples int, sampler core.Sampler) float64 {
	sum := 0.0
	for i := 0; i < samples; i++ {
		sum += p.Value(core.RandomUnitVector(sampler))
	}
	return sum / float64(samples) * 4 * math.Pi
}

func TestCosinePDF_IntegratesToOne(t *testing.T) {
	normals := []core.Vec3{
		core.NewVec3(0, 0, 1),
		core.NewVec3(0, 1, 0),
		core.NewVec3(1, 1, 1).Normalize(),
		core.NewVec3(-0.95, 0.2, 0.1).Normalize(),
	}

	for _, n := range normals {
		p := NewCosinePDF(n)
		sampler := core.NewSeededSampler(42)

		if integral := integrateOverSphere(p, 200000, sampler); math.Abs(integral-1) > 0.02 {
			t.Errorf("normal %v: expected ∫p ≈ 1, got %f", n, integral)
		}
	}
}

func TestCosinePDF_GenerateMatchesValue(t *testing.T) {
	normal := core.NewVec3(0, 1, 0)
	p := NewCosinePDF(normal)
	sampler := core.NewSeededSampler(42)

	// Under its own samples E[p(ω)] = ∫p² dω = 2/(3π)
	const n = 100000
	sum := 0.0
	for i := 0; i < n; i++ {
		direction := p.Generate(sampler)
		if direction.Dot(normal) < 0 {
			t.Fatalf("Generated direction %v below the hemisphere", direction)
		}
		sum += p.Value(direction)
	}

	expected := 2 / (3 * math.Pi)
	if mean := sum / n; math.Abs(mean-expected) > 0.005 {
		t.Errorf("Expected E[p] ≈ %f, got %f", expected, mean)
	}
}

func TestCosinePDF_ValueBelowHemisphere(t *testing.T) {
	p := NewCosinePDF(core.NewVec3(0, 0, 1))

	tests := []struct {
		name      string
		direction core.Vec3
		expected  float64
	}{
		{"Along normal", core.NewVec3(0, 0, 1), 1 / math.Pi},
		{"Along normal, unnormalized", core.NewVec3(0, 0, 7), 1 / math.Pi},
		{"Grazing", core.NewVec3(1, 0, 0), 0},
		{"Below", core.NewVec3(0, 0, -1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Value(tt.direction); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestSpherePDF(t *testing.T) {
	p := NewSpherePDF()
	sampler := core.NewSeededSampler(42)

	if got := p.Value(core.NewVec3(0, 1, 0)); math.Abs(got-1/(4*math.Pi)) > 1e-15 {
		t.Errorf("Expected 1/4π, got %f", got)
	}
	if integral := integrateOverSphere(p, 1000, sampler); math.Abs(integral-1) > 1e-12 {
		t.Errorf("Expected ∫p = 1, got %f", integral)
	}
	for i := 0; i < 100; i++ {
		if d := p.Generate(sampler); math.Abs(d.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit direction, got %v", d)
		}
	}
}

// mockTarget records the origin it was queried from
type mockTarget struct {
	value      float64
	direction  core.Vec3
	lastOrigin core.Vec3
}

func (m *mockTarget) PDFValue(origin, direction core.Vec3) float64 {
	m.lastOrigin = origin
	return m.value
}

func (m *mockTarget) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	m.lastOrigin = origin
	return m.direction
}

func TestHittablePDF_Delegates(t *testing.T) {
	target := &mockTarget{value: 0.25, direction: core.NewVec3(0, 1, 0)}
	origin := core.NewVec3(1, 2, 3)
	p := NewHittablePDF(target, origin)

	if got := p.Value(core.NewVec3(1, 0, 0)); got != 0.25 {
		t.Errorf("Expected delegated value 0.25, got %f", got)
	}
	if !target.lastOrigin.Equals(origin) {
		t.Errorf("Expected origin %v, got %v", origin, target.lastOrigin)
	}
	if got := p.Generate(core.NewSeededSampler(42)); !got.Equals(target.direction) {
		t.Errorf("Expected delegated direction, got %v", got)
	}
}

func TestMixturePDF(t *testing.T) {
	up := &mockTarget{value: 2, direction: core.NewVec3(0, 1, 0)}
	down := &mockTarget{value: 4, direction: core.NewVec3(0, -1, 0)}
	m := NewMixturePDF(NewHittablePDF(up, core.Vec3{}), NewHittablePDF(down, core.Vec3{}))

	if got := m.Value(core.NewVec3(1, 0, 0)); got != 3 {
		t.Errorf("Expected average density 3, got %f", got)
	}

	sampler := core.NewSeededSampler(42)
	ups := 0
	const n = 10000
	for i := 0; i < n; i++ {
		if m.Generate(sampler).Y > 0 {
			ups++
		}
	}
	if fraction := float64(ups) / n; math.Abs(fraction-0.5) > 0.02 {
		t.Errorf("Expected a fair coin flip between strategies, got %f", fraction)
	}
}

func TestMixturePDF_IntegratesToOne(t *testing.T) {
	m := NewMixturePDF(NewCosinePDF(core.NewVec3(0, 0, 1)), NewSpherePDF())
	if integral := integrateOverSphere(m, 200000, core.NewSeededSampler(42)); math.Abs(integral-1) > 0.02 {
		t.Errorf("Expected ∫p ≈ 1, got %f", integral)
	}
}
