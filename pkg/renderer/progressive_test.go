package renderer

import (
	"context"
	"errors"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func collectPasses(t *testing.T, rt *Raytracer, ctx context.Context, maxPasses int) ([]PassResult, error) {
	t.Helper()
	passChan, errChan := rt.RenderProgressive(ctx, maxPasses)
	var results []PassResult
	for result := range passChan {
		results = append(results, result)
	}
	return results, <-errChan
}

func TestPassRows(t *testing.T) {
	tests := []struct {
		name     string
		passes   int
		n        int
		expected []strataRows
	}{
		{"single pass", 1, 4, []strataRows{{0, 4}}},
		{"even split", 2, 4, []strataRows{{0, 2}, {2, 4}}},
		{"uneven split", 3, 4, []strataRows{{0, 1}, {1, 2}, {2, 4}}},
		{"one row each", 3, 3, []strataRows{{0, 1}, {1, 2}, {2, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for pass, expected := range tt.expected {
				if got := passRows(pass, tt.passes, tt.n); got != expected {
					t.Errorf("Pass %d: expected %+v, got %+v", pass, expected, got)
				}
			}
		})
	}
}

func TestPassCount(t *testing.T) {
	tests := []struct {
		name      string
		spp       int
		maxPasses int
		expected  int
	}{
		{"capped by strata", 16, 10, 4},
		{"capped by request", 100, 3, 3},
		{"zero requested", 16, 0, 1},
		{"no samples", 0, 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := NewRaytracer(newUniformScene(2, tt.spp, core.Vec3{}), DefaultRenderConfig(), nil)
			if got := rt.PassCount(tt.maxPasses); got != tt.expected {
				t.Errorf("Expected %d passes, got %d", tt.expected, got)
			}
		})
	}
}

func TestRenderProgressive_Accumulates(t *testing.T) {
	background := core.NewVec3(0.25, 0.25, 0.25)
	rt := NewRaytracer(newUniformScene(4, 16, background), RenderConfig{TileSize: 2, NumWorkers: 2, Seed: 42}, nil)

	results, err := collectPasses(t, rt, context.Background(), 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 passes, got %d", len(results))
	}

	for i, result := range results {
		if result.PassNumber != i+1 || result.TotalPasses != 2 || result.IsLast != (i == 1) {
			t.Errorf("Unexpected pass header %+v", result)
		}
		// 8 then 16 samples per pixel over 16 pixels
		if expected := 16 * 8 * (i + 1); result.Stats.TotalSamples != expected {
			t.Errorf("Pass %d: expected %d samples, got %d", i+1, expected, result.Stats.TotalSamples)
		}
		for p, c := range result.Image.Pixels {
			if c != background {
				t.Fatalf("Pass %d pixel %d: expected %v, got %v", i+1, p, background, c)
			}
		}
	}
}

func TestRenderProgressive_SinglePassMatchesRender(t *testing.T) {
	config := RenderConfig{TileSize: 5, NumWorkers: 3, Seed: 42}
	reference, refStats, err := NewRaytracer(newLitScene(), config, nil).Render(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	results, err := collectPasses(t, NewRaytracer(newLitScene(), config, nil), context.Background(), 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 pass, got %d", len(results))
	}
	if results[0].Stats.TotalSamples != refStats.TotalSamples {
		t.Errorf("Expected %d samples, got %d", refStats.TotalSamples, results[0].Stats.TotalSamples)
	}
	for i := range reference.Pixels {
		if results[0].Image.Pixels[i] != reference.Pixels[i] {
			t.Fatalf("Pixel %d differs: %v vs %v", i, results[0].Image.Pixels[i], reference.Pixels[i])
		}
	}
}

// TestRenderProgressive_WorkerCountIndependence tests that multi-pass renders stay deterministic
func TestRenderProgressive_WorkerCountIndependence(t *testing.T) {
	render := func(workers int) *Image {
		config := RenderConfig{TileSize: 5, NumWorkers: workers, Seed: 42}
		results, err := collectPasses(t, NewRaytracer(newLitScene(), config, nil), context.Background(), 2)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		return results[len(results)-1].Image
	}

	reference := render(1)
	if AverageLuminance(reference) <= 0 {
		t.Fatal("Expected a lit image")
	}
	img := render(4)
	for i := range reference.Pixels {
		if img.Pixels[i] != reference.Pixels[i] {
			t.Fatalf("Pixel %d differs: %v vs %v", i, img.Pixels[i], reference.Pixels[i])
		}
	}
}

func TestRenderProgressive_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := collectPasses(t, NewRaytracer(newLitScene(), DefaultRenderConfig(), nil), ctx, 2)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no passes, got %d", len(results))
	}
}
