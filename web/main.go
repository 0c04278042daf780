package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	port := pflag.Int("port", 8080, "Port to serve on")
	workers := pflag.Int("workers", 0, "Parallel tiles per render (0 = one per logical CPU)")
	pflag.Parse()

	logger := renderer.NewDefaultLogger()
	webServer := server.NewServer(*port, *workers, logger)

	logger.Printf("Path Tracer Web Server\n")
	logger.Printf("Try http://localhost:%d/api/render?scene=cornell-box&width=200&spp=16\n", *port)

	if err := webServer.Run(ctx); err != nil {
		logger.Printf("Server error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
