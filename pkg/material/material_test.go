package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/pdf"
	"github.com/df07/go-pathtracer/pkg/texture"
)

func hitAt(point, normal core.Vec3, frontFace bool) *HitRecord {
	return &HitRecord{Point: point, Normal: normal, T: 1, FrontFace: frontFace}
}

func TestSetFaceNormal(t *testing.T) {
	outward := core.NewVec3(0, 0, -1)

	tests := []struct {
		name           string
		direction      core.Vec3
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{"Ray against outward normal", core.NewVec3(0, 0, 1), true, outward},
		{"Ray along outward normal", core.NewVec3(0, 0, -1), false, outward.Negate()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit HitRecord
			hit.SetFaceNormal(core.NewRay(core.Vec3{}, tt.direction), outward)
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected FrontFace %v, got %v", tt.expectedFront, hit.FrontFace)
			}
			if !hit.Normal.Equals(tt.expectedNormal) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestLambertian(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.3, 0.3)
	lambertian := NewLambertianColor(albedo)
	hit := hitAt(core.Vec3{}, core.NewVec3(0, 1, 0), true)
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	scatter, ok := lambertian.Scatter(rayIn, hit, core.NewSeededSampler(42))
	if !ok {
		t.Fatal("Lambertian should always scatter")
	}
	if scatter.SkipPDF {
		t.Error("Lambertian should not skip the PDF")
	}
	if !scatter.Attenuation.Equals(albedo) {
		t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
	}
	if _, isCosine := scatter.PDF.(pdf.CosinePDF); !isCosine {
		t.Errorf("Expected a cosine PDF, got %T", scatter.PDF)
	}

	tests := []struct {
		name      string
		direction core.Vec3
		expected  float64
	}{
		{"Along normal", core.NewVec3(0, 3, 0), 1 / math.Pi},
		{"45 degrees", core.NewVec3(1, 1, 0), math.Sqrt2 / 2 / math.Pi},
		{"Tangent", core.NewVec3(1, 0, 0), 0},
		{"Below surface", core.NewVec3(0, -1, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lambertian.ScatteringPDF(rayIn, hit, core.NewRay(hit.Point, tt.direction))
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestLambertian_TexturedAttenuation(t *testing.T) {
	checker := texture.NewCheckerColors(1, core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0))
	lambertian := NewLambertian(checker)
	rayIn := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))

	inOdd := hitAt(core.NewVec3(1.5, 0.5, 0.5), core.NewVec3(0, 1, 0), true)
	scatter, _ := lambertian.Scatter(rayIn, inOdd, core.NewSeededSampler(42))
	if !scatter.Attenuation.Equals(core.Vec3{}) {
		t.Errorf("Expected texture lookup at hit point, got %v", scatter.Attenuation)
	}
}

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
		})
	}
}

func TestMetal_PerfectReflectionIsExact(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.0)
	sampler := core.NewSeededSampler(42)

	directions := []core.Vec3{
		core.NewVec3(0, -1, -1),
		core.NewVec3(0.3, -2.7, 0.11),
		core.NewVec3(-5, -0.001, 3),
	}
	n := core.NewVec3(0, 1, 0)

	for _, d := range directions {
		rayIn := core.NewRayAtTime(core.NewVec3(0, 1, 1), d, 0.4)
		scatter, ok := metal.Scatter(rayIn, hitAt(core.Vec3{}, n, true), sampler)
		if !ok {
			t.Fatalf("Metal should scatter direction %v", d)
		}
		if !scatter.SkipPDF {
			t.Error("Metal should skip the PDF")
		}

		expected := d.Subtract(n.Multiply(2 * d.Dot(n)))
		if scatter.SkipPDFRay.Direction != expected {
			t.Errorf("Expected exact mirror %v, got %v", expected, scatter.SkipPDFRay.Direction)
		}
		if scatter.SkipPDFRay.Time != 0.4 {
			t.Errorf("Expected ray time to carry over, got %f", scatter.SkipPDFRay.Time)
		}
	}
}

func TestMetal_FuzzyReflection(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.3)
	sampler := core.NewSeededSampler(42)
	n := core.NewVec3(0, 1, 0)
	rayIn := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))
	mirror := core.NewVec3(1, 1, 0).Normalize()

	for i := 0; i < 200; i++ {
		scatter, ok := metal.Scatter(rayIn, hitAt(core.Vec3{}, n, true), sampler)
		if !ok {
			continue
		}
		// Perturbation of at most fuzz around the unit mirror direction
		if offset := scatter.SkipPDFRay.Direction.Subtract(mirror).Length(); offset > 0.3+1e-9 {
			t.Fatalf("Perturbation %f exceeds fuzz", offset)
		}
	}
}

func TestMetal_BelowSurfaceAbsorbs(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.9, 0.9, 0.9), 1.0)
	sampler := core.NewSeededSampler(42)
	n := core.NewVec3(0, 1, 0)
	// Grazing incidence with full fuzz sends many rays below the surface
	rayIn := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))

	absorbed := 0
	for i := 0; i < 500; i++ {
		scatter, ok := metal.Scatter(rayIn, hitAt(core.Vec3{}, n, true), sampler)
		if !ok {
			absorbed++
			continue
		}
		if scatter.SkipPDFRay.Direction.Dot(n) <= 0 {
			t.Fatalf("Scattered ray below surface: %v", scatter.SkipPDFRay.Direction)
		}
	}
	if absorbed == 0 {
		t.Error("Expected some grazing fuzzy reflections to be absorbed")
	}
}

func TestReflectance(t *testing.T) {
	// Normal incidence on glass: ((1-1.5)/(1+1.5))^2 = 0.04
	if got := Reflectance(1.0, 1.5); math.Abs(got-0.04) > 1e-12 {
		t.Errorf("Expected 0.04 at normal incidence, got %f", got)
	}
	// Grazing incidence reflects everything
	if got := Reflectance(0.0, 1.5); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("Expected 1.0 at grazing incidence, got %f", got)
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewSeededSampler(42)

	// Leaving glass at 60 degrees from the normal: 1.5*sin(60°) > 1
	n := core.NewVec3(0, 1, 0)
	d := core.NewVec3(math.Sin(math.Pi/3), math.Cos(math.Pi/3), 0)
	hit := hitAt(core.Vec3{}, n.Negate(), false)

	for i := 0; i < 50; i++ {
		scatter, ok := glass.Scatter(core.NewRay(core.Vec3{}, d), hit, sampler)
		if !ok || !scatter.SkipPDF {
			t.Fatal("Dielectric should always scatter without a PDF")
		}
		expected := core.Reflect(d, n.Negate())
		if scatter.SkipPDFRay.Direction.Subtract(expected).Length() > 1e-12 {
			t.Fatalf("Expected reflection %v, got %v", expected, scatter.SkipPDFRay.Direction)
		}
	}
}

func TestDielectric_RefractsAndReflects(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewSeededSampler(42)
	n := core.NewVec3(0, 1, 0)
	hit := hitAt(core.Vec3{}, n, true)
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	refracted, reflected := 0, 0
	const samples = 5000
	for i := 0; i < samples; i++ {
		scatter, _ := glass.Scatter(rayIn, hit, sampler)
		if !scatter.Attenuation.Equals(core.NewVec3(1, 1, 1)) {
			t.Fatalf("Glass should not attenuate, got %v", scatter.Attenuation)
		}
		if scatter.SkipPDFRay.Direction.Y < 0 {
			refracted++
		} else {
			reflected++
		}
	}

	// Schlick at normal incidence reflects about 4% of the time
	if fraction := float64(reflected) / samples; math.Abs(fraction-0.04) > 0.015 {
		t.Errorf("Expected about 4%% reflections, got %f (refracted %d)", fraction, refracted)
	}
}

func TestDiffuseLight_OneSided(t *testing.T) {
	emission := core.NewVec3(4, 4, 4)
	light := NewDiffuseLightColor(emission)
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	if _, ok := light.Scatter(rayIn, hitAt(core.Vec3{}, core.NewVec3(0, 1, 0), true), core.NewSeededSampler(42)); ok {
		t.Error("Lights should not scatter")
	}

	front := hitAt(core.Vec3{}, core.NewVec3(0, 1, 0), true)
	front.Material = light
	if got := Emission(rayIn, front); !got.Equals(emission) {
		t.Errorf("Expected front face emission %v, got %v", emission, got)
	}

	back := hitAt(core.Vec3{}, core.NewVec3(0, 1, 0), false)
	back.Material = light
	if got := Emission(rayIn, back); !got.Equals(core.Vec3{}) {
		t.Errorf("Expected back face to be black, got %v", got)
	}
}

func TestEmission_NonEmitterIsBlack(t *testing.T) {
	hit := hitAt(core.Vec3{}, core.NewVec3(0, 1, 0), true)
	hit.Material = NewLambertianColor(core.NewVec3(1, 1, 1))
	if got := Emission(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0)), hit); !got.Equals(core.Vec3{}) {
		t.Errorf("Expected black, got %v", got)
	}
}

func TestIsotropic(t *testing.T) {
	albedo := core.NewVec3(0.2, 0.4, 0.9)
	iso := NewIsotropicColor(albedo)
	hit := hitAt(core.Vec3{}, core.NewVec3(1, 0, 0), true)
	rayIn := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))

	scatter, ok := iso.Scatter(rayIn, hit, core.NewSeededSampler(42))
	if !ok || scatter.SkipPDF {
		t.Fatal("Isotropic should scatter through a PDF")
	}
	if !scatter.Attenuation.Equals(albedo) {
		t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
	}
	if _, isSphere := scatter.PDF.(pdf.SpherePDF); !isSphere {
		t.Errorf("Expected a sphere PDF, got %T", scatter.PDF)
	}

	for _, d := range []core.Vec3{core.NewVec3(0, 0, 1), core.NewVec3(0, -1, 0)} {
		if got := iso.ScatteringPDF(rayIn, hit, core.NewRay(core.Vec3{}, d)); math.Abs(got-1/(4*math.Pi)) > 1e-15 {
			t.Errorf("Expected 1/4π for %v, got %f", d, got)
		}
	}
}
