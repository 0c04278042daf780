package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func TestResolveOutput(t *testing.T) {
	now := time.Date(2024, 3, 5, 7, 9, 11, 0, time.UTC)
	tests := []struct {
		name           string
		output         string
		format         string
		expectedPath   string
		expectedFormat string
		expectError    bool
	}{
		{"defaults", "", "", filepath.Join("output", "quads", "render_20240305_070911.ppm"), "ppm", false},
		{"default path as png", "", "png", filepath.Join("output", "quads", "render_20240305_070911.png"), "png", false},
		{"png extension", "out/frame.PNG", "", "out/frame.PNG", "png", false},
		{"ppm extension", "frame.ppm", "", "frame.ppm", "ppm", false},
		{"explicit format wins", "frame.png", "ppm", "frame.png", "ppm", false},
		{"unknown format", "frame.gif", "gif", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, format, err := resolveOutput(tt.output, tt.format, "quads", now)
			if tt.expectError {
				if err == nil {
					t.Error("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if path != tt.expectedPath || format != tt.expectedFormat {
				t.Errorf("Expected %s (%s), got %s (%s)", tt.expectedPath, tt.expectedFormat, path, format)
			}
		})
	}
}

func TestWriteImage(t *testing.T) {
	img := renderer.NewImage(2, 1)
	img.Set(0, 0, core.NewVec3(1, 0.25, 0))

	dir := t.TempDir()
	ppmPath := filepath.Join(dir, "nested", "frame.ppm")
	if err := writeImage(ppmPath, "ppm", img); err != nil {
		t.Fatalf("writeImage failed: %v", err)
	}
	data, err := os.ReadFile(ppmPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "P3\n2 1\n255\n255 128 0\n0 0 0\n" {
		t.Errorf("Unexpected PPM %q", data)
	}

	pngPath := filepath.Join(dir, "frame.png")
	if err := writeImage(pngPath, "png", img); err != nil {
		t.Fatalf("writeImage failed: %v", err)
	}
	if data, _ := os.ReadFile(pngPath); !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("Expected a PNG signature")
	}
}

func TestBuildScene_OverridesOnlySetFlags(t *testing.T) {
	defaults, err := scene.Build("quads", scene.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	opts := &renderOptions{}
	cmd := &cobra.Command{Use: "render"}
	opts.bind(cmd)
	if err := cmd.ParseFlags([]string{"--scene", "quads", "--spp", "4"}); err != nil {
		t.Fatal(err)
	}

	sc, err := opts.buildScene(cmd, &styledLogger{out: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("buildScene failed: %v", err)
	}
	if sc.SamplingConfig.SamplesPerPixel != 4 {
		t.Errorf("Expected spp 4, got %d", sc.SamplingConfig.SamplesPerPixel)
	}
	if sc.SamplingConfig.MaxDepth != defaults.SamplingConfig.MaxDepth {
		t.Errorf("Expected the scene's depth %d, got %d", defaults.SamplingConfig.MaxDepth, sc.SamplingConfig.MaxDepth)
	}
	if sc.CameraConfig.Width != defaults.CameraConfig.Width {
		t.Errorf("Expected the scene's width %d, got %d", defaults.CameraConfig.Width, sc.CameraConfig.Width)
	}
}

func TestRenderCommand(t *testing.T) {
	output := filepath.Join(t.TempDir(), "quads.ppm")
	var stdout, stderr bytes.Buffer

	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"render", "--scene", "quads", "--width", "8", "--spp", "1", "--depth", "2", "--output", output})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render failed: %v\n%s", err, stderr.String())
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Expected an output file: %v", err)
	}
	if !strings.HasPrefix(string(data), "P3\n8 8\n255\n") {
		t.Errorf("Unexpected PPM header %q", string(data[:12]))
	}
	if !strings.Contains(stdout.String(), output) {
		t.Errorf("Expected the saved path in the output, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "Done in") {
		t.Errorf("Expected render progress on stderr, got %q", stderr.String())
	}
}

func TestRenderCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown scene", []string{"render", "--scene", "teapot"}},
		{"mesh without file", []string{"render", "--scene", "mesh"}},
		{"bad format", []string{"render", "--scene", "quads", "--format", "gif"}},
		{"positional argument", []string{"render", "quads"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRootCmd()
			root.SetOut(&bytes.Buffer{})
			root.SetErr(&bytes.Buffer{})
			root.SetArgs(tt.args)
			if err := root.Execute(); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestScenesCommand(t *testing.T) {
	var stdout bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetArgs([]string{"scenes"})
	if err := root.Execute(); err != nil {
		t.Fatalf("scenes failed: %v", err)
	}

	for _, name := range scene.Names() {
		if !strings.Contains(stdout.String(), name) {
			t.Errorf("Expected %s in the listing", name)
		}
	}
	if !strings.Contains(stdout.String(), "--mesh FILE") {
		t.Error("Expected the mesh scene to show its file flag")
	}
}

func TestStyledLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := &styledLogger{out: &buf}
	logger.Printf("first %d\nsecond\n", 1)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %q", lines)
	}
	if !strings.HasSuffix(lines[0], "first 1") || !strings.HasSuffix(lines[1], "second") {
		t.Errorf("Unexpected lines %q", lines)
	}
}
