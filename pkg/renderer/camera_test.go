package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestNewCamera_ImageSize(t *testing.T) {
	tests := []struct {
		name           string
		width          int
		aspectRatio    float64
		expectedWidth  int
		expectedHeight int
	}{
		{"16:9", 400, 16.0 / 9.0, 400, 225},
		{"square", 100, 1.0, 100, 100},
		{"height clamped to 1", 1, 16.0 / 9.0, 1, 1},
		{"invalid aspect falls back to square", 50, 0, 50, 50},
		{"invalid width", 0, 1.0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultCameraConfig()
			config.Width = tt.width
			config.AspectRatio = tt.aspectRatio
			camera := NewCamera(config, 1)
			if camera.Width() != tt.expectedWidth || camera.Height() != tt.expectedHeight {
				t.Errorf("Expected %dx%d, got %dx%d", tt.expectedWidth, tt.expectedHeight, camera.Width(), camera.Height())
			}
		})
	}
}

func TestNewCamera_Strata(t *testing.T) {
	tests := []struct {
		spp          int
		expectedSqrt int
	}{
		{0, 0},
		{1, 1},
		{3, 1},
		{4, 2},
		{10, 3},
		{100, 10},
	}

	for _, tt := range tests {
		camera := NewCamera(DefaultCameraConfig(), tt.spp)
		if camera.SqrtSamples() != tt.expectedSqrt {
			t.Errorf("spp %d: expected sqrtSpp %d, got %d", tt.spp, tt.expectedSqrt, camera.SqrtSamples())
		}
	}
}

// TestCamera_GetRayStratified tests that each stratum's rays land inside its sub-cell.
// With a 90° fov and focus distance 1, a 2x2 image spans [-1,1]² on the plane z=-1.
func TestCamera_GetRayStratified(t *testing.T) {
	config := DefaultCameraConfig()
	config.Width = 2
	config.FocusDistance = 1
	camera := NewCamera(config, 4)
	sampler := core.NewSeededSampler(42)

	tests := []struct {
		i, j, si, sj int
		minX, maxX   float64
		minY, maxY   float64
	}{
		{0, 0, 0, 0, -1, -0.5, 0.5, 1},
		{0, 0, 1, 1, -0.5, 0, 0, 0.5},
		{1, 1, 0, 0, 0, 0.5, -0.5, 0},
		{1, 1, 1, 1, 0.5, 1, -1, -0.5},
	}

	for _, tt := range tests {
		for n := 0; n < 100; n++ {
			ray := camera.GetRay(tt.i, tt.j, tt.si, tt.sj, sampler)
			if !ray.Origin.Equals(config.Center) {
				t.Fatalf("Expected origin at the camera center without defocus, got %v", ray.Origin)
			}
			p := ray.Direction
			if math.Abs(p.Z+1) > 1e-12 {
				t.Fatalf("Expected the sample on the focus plane z=-1, got %v", p)
			}
			if p.X < tt.minX-1e-12 || p.X > tt.maxX+1e-12 || p.Y < tt.minY-1e-12 || p.Y > tt.maxY+1e-12 {
				t.Fatalf("pixel (%d,%d) stratum (%d,%d): sample %v outside [%g,%g]x[%g,%g]",
					tt.i, tt.j, tt.si, tt.sj, p, tt.minX, tt.maxX, tt.minY, tt.maxY)
			}
			if ray.Time < 0 || ray.Time >= 1 {
				t.Fatalf("Expected time in [0,1), got %f", ray.Time)
			}
		}
	}
}

func TestCamera_DefocusDisk(t *testing.T) {
	config := DefaultCameraConfig()
	config.Center = core.NewVec3(0, 0, 5)
	config.LookAt = core.NewVec3(0, 0, 0)
	config.DefocusAngle = 10
	config.FocusDistance = 5
	camera := NewCamera(config, 1)
	sampler := core.NewSeededSampler(42)

	radius := 5 * math.Tan(core.DegreesToRadians(5))
	moved := false
	for n := 0; n < 500; n++ {
		ray := camera.GetRay(10, 10, 0, 0, sampler)
		offset := ray.Origin.Subtract(config.Center)
		if offset.Length() > radius+1e-12 {
			t.Fatalf("Lens sample %v outside disk of radius %f", offset, radius)
		}
		if math.Abs(offset.Z) > 1e-12 {
			t.Fatalf("Lens sample %v not in the lens plane", offset)
		}
		if offset.Length() > 1e-9 {
			moved = true
		}
	}
	if !moved {
		t.Error("Expected lens samples away from the center")
	}
}

func TestCamera_FocusDistanceFallback(t *testing.T) {
	config := DefaultCameraConfig()
	config.Center = core.NewVec3(0, 3, 4)
	config.LookAt = core.NewVec3(0, 0, 0)
	config.FocusDistance = 0

	camera := NewCamera(config, 1)
	if got := camera.Config().FocusDistance; math.Abs(got-5) > 1e-12 {
		t.Errorf("Expected focus distance |center-lookAt| = 5, got %f", got)
	}

	config.LookAt = config.Center
	camera = NewCamera(config, 1)
	if got := camera.Config().FocusDistance; got != 1 {
		t.Errorf("Expected focus distance 1 when center and lookAt coincide, got %f", got)
	}
}
