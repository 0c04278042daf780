package renderer

import (
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID      int             // Unique tile identifier, row-major
	Bounds  image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	Sampler core.Sampler    // Tile-specific sampler for deterministic results
}

// NewTile creates a tile whose sampler is seeded from its id
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:      id,
		Bounds:  bounds,
		Sampler: core.NewSeededSampler(int64(id) + seed),
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	if tileSize <= 0 {
		tileSize = DefaultRenderConfig().TileSize
	}

	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}
