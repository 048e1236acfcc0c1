package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/config"
)

type testLogger struct {
	t *testing.T
}

func (l testLogger) Printf(format string, args ...interface{}) {
	l.t.Logf(format, args...)
}

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		{"cornell scene", "cornell", false},
		{"sphere scene", "sphere", false},
		{"mirrors scene", "mirrors", false},

		{"unknown scene", "nonexistent", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Scene = tt.sceneType
			scene, err := createScene(cfg)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if scene != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if scene.Width <= 0 || scene.Height <= 0 {
				t.Errorf("Scene resolution should be positive, got %dx%d", scene.Width, scene.Height)
			}
			if len(scene.Objects) == 0 || len(scene.Lights) == 0 {
				t.Errorf("Scene should have objects and lights, got %d and %d", len(scene.Objects), len(scene.Lights))
			}
		})
	}
}

func TestCreateScene_Overrides(t *testing.T) {
	cfg := config.Default()
	cfg.Width, cfg.Height, cfg.MaxDepth = 64, 48, 9

	s, err := createScene(cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.Width != 64 || s.Height != 48 || s.MaxDepth != 9 {
		t.Errorf("Expected 64x48 depth 9, got %dx%d depth %d", s.Width, s.Height, s.MaxDepth)
	}
}

func TestApplyFlags(t *testing.T) {
	var f cliFlags
	fs := newFlagSet(&f)
	if err := fs.Parse([]string{"-scene", "mirrors", "-width", "120", "-format", "ppm"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	cfg := config.Default()
	cfg.Height = 90
	cfg.Workers = 3
	applyFlags(&cfg, fs, &f)

	if cfg.Scene != "mirrors" || cfg.Width != 120 || cfg.Format != "ppm" {
		t.Errorf("Expected flags to override config, got %+v", cfg)
	}
	if cfg.Height != 90 || cfg.Workers != 3 {
		t.Errorf("Expected unset flags to keep config values, got height %d workers %d", cfg.Height, cfg.Workers)
	}
}

func TestThumbnailPath(t *testing.T) {
	got := thumbnailPath(filepath.Join("output", "cornell", "render_20240101_120000.png"))
	expected := filepath.Join("output", "cornell", "render_20240101_120000_thumb.png")
	if got != expected {
		t.Errorf("Expected %s, got %s", expected, got)
	}
}

func TestRun(t *testing.T) {
	cfg := config.Default()
	cfg.Scene = "sphere"
	cfg.Width, cfg.Height = 32, 24
	cfg.OutputDir = t.TempDir()
	cfg.Thumbnail = 8

	if err := run(context.Background(), cfg, testLogger{t}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	files, err := os.ReadDir(filepath.Join(cfg.OutputDir, "sphere"))
	if err != nil {
		t.Fatalf("Output directory missing: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected render and thumbnail, got %d files", len(files))
	}
	var sawThumb bool
	for _, file := range files {
		if !strings.HasPrefix(file.Name(), "render_") || !strings.HasSuffix(file.Name(), ".png") {
			t.Errorf("Unexpected output file %s", file.Name())
		}
		if strings.HasSuffix(file.Name(), "_thumb.png") {
			sawThumb = true
		}
	}
	if !sawThumb {
		t.Error("Expected a thumbnail file")
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.MaxDepth = -2

	if err := run(context.Background(), cfg, testLogger{t}); err == nil {
		t.Error("Expected an error for an invalid configuration")
	}
}
