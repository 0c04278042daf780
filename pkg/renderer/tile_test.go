package renderer

import (
	"testing"
)

func TestNewTileGrid_Coverage(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		expectedTiles int
	}{
		{"exact fit", 8, 8, 4, 4},
		{"ragged edges", 10, 7, 3, 12},
		{"tile larger than image", 5, 3, 64, 1},
		{"single pixel", 1, 1, 1, 1},
		{"default size", 130, 10, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize, 42)
			if len(tiles) != tt.expectedTiles {
				t.Fatalf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			covered := make([]int, tt.width*tt.height)
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("Expected tile id %d, got %d", i, tile.ID)
				}
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						covered[y*tt.width+x]++
					}
				}
			}
			for i, n := range covered {
				if n != 1 {
					t.Fatalf("Pixel %d covered %d times", i, n)
				}
			}
		})
	}
}

func TestNewTileGrid_DeterministicSamplers(t *testing.T) {
	a := NewTileGrid(16, 16, 8, 42)
	b := NewTileGrid(16, 16, 8, 42)
	c := NewTileGrid(16, 16, 8, 7)

	for i := range a {
		va, vb, vc := a[i].Sampler.Get1D(), b[i].Sampler.Get1D(), c[i].Sampler.Get1D()
		if va != vb {
			t.Errorf("tile %d: same seed gave %f and %f", i, va, vb)
		}
		if va == vc {
			t.Errorf("tile %d: different seeds gave the same value %f", i, va)
		}
	}

	if a[0].Sampler.Get1D() == a[1].Sampler.Get1D() {
		t.Error("Expected neighbouring tiles to draw different sequences")
	}
}
