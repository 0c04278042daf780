package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// shutdownTimeout bounds how long Run waits for active renders once its context is done
const shutdownTimeout = 5 * time.Second

// Server serves preset renders over HTTP
type Server struct {
	port       int
	numWorkers int
	logger     core.Logger
	echo       *echo.Echo
}

// NewServer creates a web server listening on port. A nil logger discards server logs.
func NewServer(port, numWorkers int, logger core.Logger) *Server {
	if logger == nil {
		logger = core.NopLogger{}
	}
	s := &Server{port: port, numWorkers: numWorkers, logger: logger}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(corsMiddleware)

	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/scene-config", s.handleSceneConfig)
	e.GET("/api/render", s.handleRender)
	e.GET("/api/render/stream", s.handleRenderStream)
	s.echo = e

	return s
}

// Handler returns the HTTP handler serving every endpoint
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Printf("Starting web server on http://localhost%s\n", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Run serves until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Printf("Shutting down web server...\n")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		s.logger.Printf("Error during shutdown: %v\n", err)
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// Shutdown stops accepting requests and waits for active renders up to the context deadline
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}
		return next(c)
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string            `json:"name"`
	Scenes []scene.SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// handleScenes lists the presets grouped by category in listing order
func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, groupScenes(scene.List()))
}

func groupScenes(infos []scene.SceneInfo) ScenesResponse {
	var response ScenesResponse
	index := make(map[string]int)
	for _, info := range infos {
		i, ok := index[info.Group]
		if !ok {
			i = len(response.Groups)
			index[info.Group] = i
			response.Groups = append(response.Groups, SceneGroup{Name: info.Group})
		}
		response.Groups[i].Scenes = append(response.Groups[i].Scenes, info)
	}
	return response
}

// handleSceneConfig returns the defaults of a preset and the accepted parameter ranges
func (s *Server) handleSceneConfig(c echo.Context) error {
	name := c.QueryParam("scene")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing scene parameter")
	}

	sc, err := s.buildScene(name, scene.DefaultOptions())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"scene": name,
		"defaults": map[string]interface{}{
			"width":           sc.CameraConfig.Width,
			"aspectRatio":     sc.CameraConfig.AspectRatio,
			"samplesPerPixel": sc.SamplingConfig.SamplesPerPixel,
			"maxDepth":        sc.SamplingConfig.MaxDepth,
		},
		"limits": map[string]interface{}{
			"width":  map[string]int{"min": widthLimits.min, "max": widthLimits.max},
			"spp":    map[string]int{"min": sppLimits.min, "max": sppLimits.max},
			"depth":  map[string]int{"min": depthLimits.min, "max": depthLimits.max},
			"passes": map[string]int{"min": passLimits.min, "max": passLimits.max},
		},
	})
}

// buildScene builds a preset, mapping lookup and file errors to HTTP errors
func (s *Server) buildScene(name string, opts scene.Options) (*scene.Scene, error) {
	for _, info := range scene.List() {
		if info.ID == name && info.NeedsFile {
			return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("scene %q needs a model file and cannot be rendered over HTTP", name))
		}
	}
	if _, err := scene.Lookup(name); err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	sc, err := scene.Build(name, opts)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("build scene: %v", err))
	}
	return sc, nil
}
