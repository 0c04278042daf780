package renderer

import (
	"context"
)

// PassResult contains the image accumulated after a pass
type PassResult struct {
	PassNumber  int         // 1-based pass index
	TotalPasses int         // Passes in the whole render
	Image       *Image      // Average of every sample taken so far
	Stats       RenderStats // Cumulative over the passes so far
	IsLast      bool        // Whether this is the final pass
}

// strataRows is the half-open range of stratum rows [lo, hi) a pass traces
type strataRows struct {
	lo, hi int
}

// passRows spreads n stratum rows as evenly as possible over passes
func passRows(pass, passes, n int) strataRows {
	return strataRows{lo: pass * n / passes, hi: (pass + 1) * n / passes}
}

// PassCount returns the number of passes a render split into at most maxPasses makes.
// Each pass traces at least one full row of strata, so it never exceeds the strata per side.
func (rt *Raytracer) PassCount(maxPasses int) int {
	n := rt.camera.SqrtSamples()
	if maxPasses < 1 || n < 1 {
		return 1
	}
	return min(maxPasses, n)
}

// RenderProgressive renders like Render but in up to maxPasses passes, sending the
// accumulated image after each one. The final image holds the same samples per pixel
// as Render. Both channels close when the render ends; the error channel carries at
// most one error. Cancelling ctx stops the render.
func (rt *Raytracer) RenderProgressive(ctx context.Context, maxPasses int) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)

		_, err := rt.renderPasses(ctx, maxPasses, func(result PassResult) error {
			select {
			case passChan <- result:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil {
			errChan <- err
		}
	}()

	return passChan, errChan
}

// resolveImage averages the samples of every pixel; pixels without samples are black
func resolveImage(accum []PixelStats, width, height int) *Image {
	img := NewImage(width, height)
	for idx := range accum {
		ps := &accum[idx]
		if ps.SampleCount == 0 {
			continue
		}
		img.Set(idx%width, idx/width, ps.GetColor(1.0/float64(ps.SampleCount)))
	}
	return img
}
