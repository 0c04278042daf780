package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// Scene interface to avoid circular imports
type Scene interface {
	GetWorld() geometry.Hittable
	GetLights() geometry.Sampleable // nil when the scene has no importance-sampled lights
	GetBackground() core.Color
	GetCameraConfig() CameraConfig
	GetSamplingConfig() SamplingConfig
}

// RenderConfig contains configuration for how a frame is split up and scheduled
type RenderConfig struct {
	TileSize   int   // Size of each square tile in pixels
	NumWorkers int   // Parallel tiles; 0 = one per logical CPU
	Seed       int64 // Base seed; tile n samples from Seed+n
	Iterative  bool  // Evaluate paths with the loop form of the integrator
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   64,
		NumWorkers: 0,
		Seed:       42,
		Iterative:  false,
	}
}

// Raytracer renders a scene into an Image of linear radiance
type Raytracer struct {
	scene      Scene
	world      geometry.Hittable
	camera     *Camera
	sampling   SamplingConfig
	config     RenderConfig
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaytracer creates a raytracer for a scene
func NewRaytracer(scene Scene, config RenderConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultRenderConfig().TileSize
	}

	sampling := scene.GetSamplingConfig()
	pt := integrator.NewPathTracingIntegrator(scene.GetBackground(), scene.GetLights())

	var integ integrator.Integrator = pt
	if config.Iterative {
		integ = pt.Iterative()
	}

	world := scene.GetWorld()
	if world == nil {
		world = geometry.NewList()
	}

	return &Raytracer{
		scene:      scene,
		world:      world,
		camera:     NewCamera(scene.GetCameraConfig(), sampling.SamplesPerPixel),
		sampling:   sampling,
		config:     config,
		integrator: integ,
		logger:     logger,
	}
}

// Camera returns the camera the raytracer renders through
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// Render traces every pixel and returns the image. Cancelling ctx stops the
// render between tiles and between rows and returns ctx's error.
func (rt *Raytracer) Render(ctx context.Context) (*Image, RenderStats, error) {
	var img *Image
	stats, err := rt.renderPasses(ctx, 1, func(result PassResult) error {
		img = result.Image
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	return img, stats, nil
}

// renderPasses splits the strata rows into passes and renders every tile once per pass,
// accumulating into one PixelStats per pixel. onPass receives the image after each pass;
// an error from it stops the render.
func (rt *Raytracer) renderPasses(ctx context.Context, maxPasses int, onPass func(PassResult) error) (RenderStats, error) {
	start := time.Now()
	width, height := rt.camera.Width(), rt.camera.Height()
	sqrtSpp := rt.camera.SqrtSamples()
	passes := rt.PassCount(maxPasses)

	tiles := NewTileGrid(width, height, rt.config.TileSize, rt.config.Seed)
	tasks := make([]TileTask, len(tiles))
	for i, tile := range tiles {
		tasks[i] = TileTask{TaskID: i, Tile: tile}
	}

	pool := NewWorkerPool(rt.config.NumWorkers)
	rt.logger.Printf("Rendering %dx%d, %d samples per pixel (%dx%d strata), max depth %d, %d tiles on %d workers\n",
		width, height, sqrtSpp*sqrtSpp, sqrtSpp, sqrtSpp, rt.sampling.MaxDepth, len(tiles), pool.GetNumWorkers())
	if passes > 1 {
		rt.logger.Printf("Splitting the strata into %d passes\n", passes)
	}

	accum := make([]PixelStats, width*height)
	progress := NewProgressReporter(height*passes, rt.logger)
	progress.Start()

	stats := RenderStats{TotalPixels: width * height, SamplesPerPixel: sqrtSpp * sqrtSpp, Tiles: len(tiles)}
	for pass := 0; pass < passes; pass++ {
		rows := passRows(pass, passes, sqrtSpp)

		// Tiles pending per horizontal band; a band's rows are done when its count reaches 0
		bandPending := map[int]int{}
		for _, tile := range tiles {
			bandPending[tile.Bounds.Min.Y]++
		}

		err := pool.Run(ctx, tasks, func(ctx context.Context, task TileTask) TileResult {
			tileStats, err := rt.renderTile(ctx, task.Tile, rows, accum, width)
			return TileResult{TaskID: task.TaskID, Tile: task.Tile, Stats: tileStats, Error: err}
		}, func(result TileResult) {
			stats.TotalSamples += result.Stats.TotalSamples
			band := result.Tile.Bounds.Min.Y
			bandPending[band]--
			if bandPending[band] == 0 {
				progress.LinesDone(result.Tile.Bounds.Dy())
			}
		})
		stats.Duration = time.Since(start)
		if err != nil {
			return stats, fmt.Errorf("render aborted: %w", err)
		}

		if passes > 1 {
			rt.logger.Printf("Pass %d/%d done after %v (%d samples per pixel)\n",
				pass+1, passes, stats.Duration.Round(time.Millisecond), rows.hi*sqrtSpp)
		}
		result := PassResult{
			PassNumber:  pass + 1,
			TotalPasses: passes,
			Image:       resolveImage(accum, width, height),
			Stats:       stats,
			IsLast:      pass == passes-1,
		}
		if err := onPass(result); err != nil {
			return stats, fmt.Errorf("render aborted: %w", err)
		}
	}

	rt.logger.Printf("Done in %v (%d samples)\n", stats.Duration.Round(time.Millisecond), stats.TotalSamples)
	return stats, nil
}

// renderTile adds the strata rows of a pass to every pixel within a tile's bounds.
// Tiles cover disjoint pixels, so concurrent tiles never write the same slot.
func (rt *Raytracer) renderTile(ctx context.Context, tile *Tile, rows strataRows, accum []PixelStats, width int) (RenderStats, error) {
	stats := RenderStats{Tiles: 1}
	for j := tile.Bounds.Min.Y; j < tile.Bounds.Max.Y; j++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			ps := &accum[j*width+i]
			before := ps.SampleCount
			rt.samplePixel(i, j, rows, ps, tile.Sampler)
			stats.TotalPixels++
			stats.TotalSamples += ps.SampleCount - before
		}
	}
	return stats, nil
}

// samplePixel traces one jittered ray through each stratum of pixel (i, j) in rows
func (rt *Raytracer) samplePixel(i, j int, rows strataRows, ps *PixelStats, sampler core.Sampler) {
	n := rt.camera.SqrtSamples()
	for sj := rows.lo; sj < rows.hi; sj++ {
		for si := 0; si < n; si++ {
			ray := rt.camera.GetRay(i, j, si, sj, sampler)
			ps.AddSample(rt.integrator.RayColor(ray, rt.sampling.MaxDepth, rt.world, sampler))
		}
	}
}
