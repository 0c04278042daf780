package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/df07/go-pathtracer/pkg/preview"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/df07/go-pathtracer/web/server"
)

var version = "dev"

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#767676"))
	groupStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true).MarginTop(1)
)

// styledLogger implements core.Logger with a dimmed prefix per line
type styledLogger struct {
	mu  sync.Mutex
	out io.Writer
}

func (l *styledLogger) Printf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	for _, line := range strings.Split(message, "\n") {
		fmt.Fprintln(l.out, dimStyle.Render("│ ")+line)
	}
}

// renderOptions are the flags shared by render and preview
type renderOptions struct {
	scene     string
	mesh      string
	width     int
	spp       int
	depth     int
	workers   int
	tileSize  int
	seed      int64
	iterative bool
	output    string
	format    string
	preview   bool
}

func (o *renderOptions) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&o.scene, "scene", "s", "cornell-box", "Preset scene (see 'scenes')")
	flags.StringVar(&o.mesh, "mesh", "", "Model file (.gltf, .glb, .ply) for the mesh scene")
	flags.IntVarP(&o.width, "width", "w", 0, "Image width in pixels (default: the scene's)")
	flags.IntVar(&o.spp, "spp", 0, "Samples per pixel (default: the scene's)")
	flags.IntVar(&o.depth, "depth", 0, "Maximum bounces per path (default: the scene's)")
	flags.IntVar(&o.workers, "workers", 0, "Parallel tiles (0 = one per logical CPU)")
	flags.IntVar(&o.tileSize, "tile-size", renderer.DefaultRenderConfig().TileSize, "Tile edge in pixels")
	flags.Int64Var(&o.seed, "seed", scene.DefaultOptions().Seed, "Seed for random layouts and sampling")
	flags.BoolVar(&o.iterative, "iterative", false, "Evaluate paths with a loop instead of recursion")
}

// buildScene builds the preset and applies the sampling flags the user set
func (o *renderOptions) buildScene(cmd *cobra.Command, logger *styledLogger) (*scene.Scene, error) {
	sc, err := scene.Build(o.scene, scene.Options{Seed: o.seed, Logger: logger, MeshPath: o.mesh})
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		sc.CameraConfig.Width = o.width
	}
	if flags.Changed("spp") {
		sc.SamplingConfig.SamplesPerPixel = o.spp
	}
	if flags.Changed("depth") {
		sc.SamplingConfig.MaxDepth = o.depth
	}
	return sc, nil
}

// render builds and renders the selected scene
func (o *renderOptions) render(cmd *cobra.Command, logger *styledLogger) (*renderer.Image, error) {
	if host, err := renderer.GetHostInfo(); err == nil {
		logger.Printf("Host: %s\n", host)
	}

	sc, err := o.buildScene(cmd, logger)
	if err != nil {
		return nil, err
	}

	config := renderer.RenderConfig{
		TileSize:   o.tileSize,
		NumWorkers: o.workers,
		Seed:       o.seed,
		Iterative:  o.iterative,
	}
	img, _, err := renderer.NewRaytracer(sc, config, logger).Render(cmd.Context())
	return img, err
}

// resolveOutput picks the output path and format. An empty path becomes
// output/<scene>/render_<timestamp>.<format>; an empty format follows the extension.
func resolveOutput(output, format, sceneName string, now time.Time) (string, string, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(output)) {
		case ".png":
			format = "png"
		default:
			format = "ppm"
		}
	}
	if format != "ppm" && format != "png" {
		return "", "", fmt.Errorf("unknown format %q (use ppm or png)", format)
	}
	if output == "" {
		output = filepath.Join("output", sceneName, fmt.Sprintf("render_%s.%s", now.Format("20060102_150405"), format))
	}
	return output, format, nil
}

// writeImage saves the image, creating the parent directory
func writeImage(path, format string, img *renderer.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if format == "png" {
		err = renderer.WritePNG(file, img)
	} else {
		err = renderer.WritePPM(file, img)
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a preset scene to a PPM or PNG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := &styledLogger{out: cmd.ErrOrStderr()}
			path, format, err := resolveOutput(opts.output, opts.format, opts.scene, time.Now())
			if err != nil {
				return err
			}

			img, err := opts.render(cmd, logger)
			if err != nil {
				return err
			}
			if err := writeImage(path, format, img); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), accentStyle.Render("Render saved as ")+path)

			if opts.preview {
				return preview.Show(cmd.Context(), img)
			}
			return nil
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (default: output/<scene>/render_<timestamp>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: ppm or png (default: from the extension, else ppm)")
	cmd.Flags().BoolVarP(&opts.preview, "preview", "p", false, "Show the finished image in the terminal")
	return cmd
}

func newPreviewCmd() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render a preset scene and show it in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := opts.render(cmd, &styledLogger{out: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			return preview.Show(cmd.Context(), img)
		},
	}
	opts.bind(cmd)
	return cmd
}

func newServeCmd() *cobra.Command {
	var port, workers int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve renders over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := &styledLogger{out: cmd.ErrOrStderr()}
			return server.NewServer(port, workers, logger).Run(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "Port to serve on")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel tiles per render (0 = one per logical CPU)")
	return cmd
}

func newScenesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List the preset scenes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printScenes(cmd.OutOrStdout(), scene.List())
		},
	}
}

// printScenes writes the presets grouped by category
func printScenes(w io.Writer, infos []scene.SceneInfo) {
	group := ""
	for _, info := range infos {
		if info.Group != group {
			group = info.Group
			fmt.Fprintln(w, groupStyle.Render(group))
		}
		name := info.ID
		if info.NeedsFile {
			name += " --mesh FILE"
		}
		fmt.Fprintf(w, "  %s  %s\n", accentStyle.Render(fmt.Sprintf("%-18s", name)), dimStyle.Render(info.Description))
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pathtracer",
		Short: "Monte Carlo path tracer for the Ray Tracing in One Weekend scenes",
		Long: "Renders preset scenes with a BVH-accelerated, importance-sampled path tracer.\n" +
			"Images are written as plain PPM or PNG.",
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCmd(), newPreviewCmd(), newServeCmd(), newScenesCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}
