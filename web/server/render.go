package server

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// RenderRequest represents a render request from the client.
// Zero Width, SamplesPerPixel or MaxDepth keep the preset's value.
type RenderRequest struct {
	Scene           string `json:"scene"`
	Width           int    `json:"width"`
	SamplesPerPixel int    `json:"spp"`
	MaxDepth        int    `json:"depth"`
	Seed            int64  `json:"seed"`
	Format          string `json:"format"` // "png", "ppm" or "json"
}

// Stats represents render statistics
type Stats struct {
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	Tiles          int     `json:"tiles"`
}

// RenderResponse is the body of a render requested with format=json
type RenderResponse struct {
	Scene     string           `json:"scene"`
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
	ElapsedMs int64            `json:"elapsedMs"`
}

type intLimits struct{ min, max int }

var (
	widthLimits = intLimits{1, 2000}
	sppLimits   = intLimits{1, 10000}
	depthLimits = intLimits{1, 1000}
)

var renderCounter atomic.Int64

// handleRender renders a preset and returns the whole frame once it is done.
// Client disconnection cancels the render.
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
	}

	log := NewRenderLog(nextRenderID(), s.logger)
	rt, sc, err := s.newRaytracer(req, log)
	if err != nil {
		return err
	}

	start := time.Now()
	img, stats, err := rt.Render(c.Request().Context())
	if err != nil {
		log.Errorf("%v\n", err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	c.Response().Header().Set("X-Render-Duration", stats.Duration.String())

	var buf bytes.Buffer
	switch req.Format {
	case "ppm":
		if err := renderer.WritePPM(&buf, img); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("encode ppm: %v", err))
		}
		return c.Blob(http.StatusOK, "image/x-portable-pixmap", buf.Bytes())
	case "png":
		if err := renderer.WritePNG(&buf, img); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("encode png: %v", err))
		}
		return c.Blob(http.StatusOK, "image/png", buf.Bytes())
	}

	imageData, err := imageToBase64PNG(img)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, RenderResponse{
		Scene:     sc.Name,
		ImageData: imageData,
		Stats:     newStats(img, stats),
		Console:   log.Messages(),
		ElapsedMs: time.Since(start).Milliseconds(),
	})
}

// newRaytracer builds the requested preset, applies the request's overrides and
// creates a raytracer that logs to log
func (s *Server) newRaytracer(req *RenderRequest, log *RenderLog) (*renderer.Raytracer, *scene.Scene, error) {
	opts := scene.DefaultOptions()
	opts.Seed = req.Seed
	opts.Logger = log
	sc, err := s.buildScene(req.Scene, opts)
	if err != nil {
		return nil, nil, err
	}
	if req.Width > 0 {
		sc.CameraConfig.Width = req.Width
	}
	if req.SamplesPerPixel > 0 {
		sc.SamplingConfig.SamplesPerPixel = req.SamplesPerPixel
	}
	if req.MaxDepth > 0 {
		sc.SamplingConfig.MaxDepth = req.MaxDepth
	}

	config := renderer.DefaultRenderConfig()
	config.NumWorkers = s.numWorkers
	config.Seed = req.Seed
	return renderer.NewRaytracer(sc, config, log), sc, nil
}

func nextRenderID() string {
	return fmt.Sprintf("render-%d", renderCounter.Add(1))
}

func newStats(img *renderer.Image, stats renderer.RenderStats) Stats {
	return Stats{
		Width:          img.Width,
		Height:         img.Height,
		TotalPixels:    stats.TotalPixels,
		TotalSamples:   stats.TotalSamples,
		AverageSamples: stats.AverageSamples(),
		Tiles:          stats.Tiles,
	}
}

// imageToBase64PNG encodes an image as a base64 PNG for JSON payloads
func imageToBase64PNG(img *renderer.Image) (string, error) {
	var buf bytes.Buffer
	if err := renderer.WritePNG(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// parseRenderRequest parses and validates the query parameters of a render
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene"), Format: values.Get("format")}
	if req.Scene == "" {
		req.Scene = "cornell-box"
	}
	switch req.Format {
	case "":
		req.Format = "png"
	case "png", "ppm", "json":
	default:
		return nil, fmt.Errorf("unknown format %q (use png, ppm or json)", req.Format)
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, widthLimits); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(values, "spp", 0, sppLimits); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", 0, depthLimits); err != nil {
		return nil, err
	}

	req.Seed = scene.DefaultOptions().Seed
	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue int, limits intLimits) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < limits.min || parsed > limits.max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, limits.min, limits.max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
