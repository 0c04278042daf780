package renderer

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	TaskID int
	Tile   *Tile
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Tile   *Tile
	Stats  RenderStats
	Error  error
}

// TileFunc renders one task; it should return promptly once ctx is done
type TileFunc func(ctx context.Context, task TileTask) TileResult

// WorkerPool runs tile tasks on a bounded number of goroutines
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool; numWorkers <= 0 uses one worker per logical CPU
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = DefaultWorkerCount()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run renders every task and hands each result to onResult, one call at a time.
// The first tile error or the cancellation of ctx stops the remaining tasks.
func (wp *WorkerPool) Run(ctx context.Context, tasks []TileTask, render TileFunc, onResult func(TileResult)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	var mu sync.Mutex
	for _, task := range tasks {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			result := render(gctx, task)
			if result.Error != nil {
				return result.Error
			}
			if onResult != nil {
				mu.Lock()
				onResult(result)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
