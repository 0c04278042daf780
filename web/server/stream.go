package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

var passLimits = intLimits{1, 64}

const defaultPasses = 8

// PassEvent is the data of a "pass" event: the image accumulated so far
type PassEvent struct {
	PassNumber  int    `json:"passNumber"`
	TotalPasses int    `json:"totalPasses"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG
	Stats       Stats  `json:"stats"`
	ElapsedMs   int64  `json:"elapsedMs"`
}

// CompleteEvent is the data of the final "complete" event
type CompleteEvent struct {
	Scene     string           `json:"scene"`
	Console   []ConsoleMessage `json:"console"`
	ElapsedMs int64            `json:"elapsedMs"`
}

// handleRenderStream renders a preset in passes and streams the image after each
// pass as a Server-Sent Event, followed by "complete" or "error".
// Client disconnection cancels the render.
func (s *Server) handleRenderStream(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
	}
	passes, err := parseIntParam(c.QueryParams(), "passes", defaultPasses, passLimits)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
	}

	log := NewRenderLog(nextRenderID(), s.logger)
	rt, sc, err := s.newRaytracer(req, log)
	if err != nil {
		return err
	}

	// Stops the render if the stream ends before it does
	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	w := c.Response()
	setSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	start := time.Now()
	passChan, errChan := rt.RenderProgressive(ctx, passes)
	for result := range passChan {
		imageData, err := imageToBase64PNG(result.Image)
		if err != nil {
			return writeSSE(w, "error", map[string]string{"error": err.Error()})
		}
		event := PassEvent{
			PassNumber:  result.PassNumber,
			TotalPasses: result.TotalPasses,
			ImageData:   imageData,
			Stats:       newStats(result.Image, result.Stats),
			ElapsedMs:   time.Since(start).Milliseconds(),
		}
		if err := writeSSE(w, "pass", event); err != nil {
			// Client gone
			return nil
		}
	}

	if err := <-errChan; err != nil {
		log.Errorf("%v\n", err)
		return writeSSE(w, "error", map[string]string{"error": err.Error()})
	}
	return writeSSE(w, "complete", CompleteEvent{
		Scene:     sc.Name,
		Console:   log.Messages(),
		ElapsedMs: time.Since(start).Milliseconds(),
	})
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(w *echo.Response) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// writeSSE writes one event with a JSON payload and flushes it to the client
func writeSSE(w *echo.Response, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event, err)
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	w.Flush()
	return nil
}
