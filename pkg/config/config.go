// Package config loads run settings from .env files and the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Environment keys
const (
	KeyScene     = "RAYTRACER_SCENE"
	KeyWidth     = "RAYTRACER_WIDTH"
	KeyHeight    = "RAYTRACER_HEIGHT"
	KeyMaxDepth  = "RAYTRACER_MAX_DEPTH"
	KeyWorkers   = "RAYTRACER_WORKERS"
	KeyTileSize  = "RAYTRACER_TILE_SIZE"
	KeyOutputDir = "RAYTRACER_OUTPUT_DIR"
	KeyFormat    = "RAYTRACER_FORMAT"
	KeyThumbnail = "RAYTRACER_THUMBNAIL"

	KeyS3AccessKey = "S3_ACCESS_KEY"
	KeyS3SecretKey = "S3_SECRET_KEY"
	KeyS3Endpoint  = "S3_ENDPOINT"
	KeyS3Region    = "S3_REGION"
	KeyS3Bucket    = "S3_BUCKET"
	KeyCDNURL      = "CDN_URL"
)

// DefaultOutputDir is where the CLI writes renders
const DefaultOutputDir = "output"

// UnsetDepth leaves the scene's own reflection depth in place
const UnsetDepth = -1

// Config holds everything needed for a render run.
// Zero Width and Height mean "use the scene's own value".
type Config struct {
	Scene     string
	Width     int
	Height    int
	MaxDepth  int // UnsetDepth = scene default, 0 = no reflections
	Workers   int // 0 = CPU count
	TileSize  int
	OutputDir string
	Format    string
	Thumbnail int // Longest thumbnail edge, 0 = no thumbnail

	S3 output.S3Config
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Scene:     scene.DefaultSceneName,
		MaxDepth:  UnsetDepth,
		OutputDir: DefaultOutputDir,
		Format:    output.DefaultFormat,
	}
}

// Load reads the given .env files in order, then overlays the non-empty
// variables of the process environment. Missing files are skipped and later
// files override earlier ones.
func Load(files ...string) (Config, error) {
	values := make(map[string]string)
	for _, file := range files {
		fileValues, err := godotenv.Read(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("failed to read env file %s: %w", file, err)
		}
		for k, v := range fileValues {
			values[k] = v
		}
	}

	lookup := func(key string) (string, bool) {
		if v := os.Getenv(key); v != "" {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}

	return parse(lookup)
}

func parse(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	var err error
	num := func(key string, dst *int) {
		v, ok := lookup(key)
		if !ok || v == "" || err != nil {
			return
		}
		n, convErr := strconv.Atoi(v)
		if convErr != nil {
			err = fmt.Errorf("invalid %s %q: %w", key, v, convErr)
			return
		}
		*dst = n
	}

	str(KeyScene, &cfg.Scene)
	num(KeyWidth, &cfg.Width)
	num(KeyHeight, &cfg.Height)
	num(KeyMaxDepth, &cfg.MaxDepth)
	num(KeyWorkers, &cfg.Workers)
	num(KeyTileSize, &cfg.TileSize)
	str(KeyOutputDir, &cfg.OutputDir)
	str(KeyFormat, &cfg.Format)
	num(KeyThumbnail, &cfg.Thumbnail)

	str(KeyS3AccessKey, &cfg.S3.AccessKey)
	str(KeyS3SecretKey, &cfg.S3.SecretKey)
	str(KeyS3Endpoint, &cfg.S3.Endpoint)
	str(KeyS3Region, &cfg.S3.Region)
	str(KeyS3Bucket, &cfg.S3.Bucket)
	str(KeyCDNURL, &cfg.S3.CDNURL)

	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// UploadEnabled reports whether renders should also go to S3
func (c Config) UploadEnabled() bool {
	return c.S3.Bucket != ""
}

// Validate checks the configuration for values no render can use
func (c Config) Validate() error {
	if c.Scene == "" {
		return errors.New("scene name is required")
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("invalid resolution %dx%d", c.Width, c.Height)
	}
	if c.MaxDepth < UnsetDepth {
		return fmt.Errorf("invalid max depth %d", c.MaxDepth)
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid worker count %d", c.Workers)
	}
	if c.TileSize < 0 {
		return fmt.Errorf("invalid tile size %d", c.TileSize)
	}
	if c.Thumbnail < 0 {
		return fmt.Errorf("invalid thumbnail size %d", c.Thumbnail)
	}
	if err := output.ValidateFormat(c.Format); err != nil {
		return err
	}
	return nil
}

// Apply overrides the scene's resolution and depth with any values set in the config
func (c Config) Apply(s *scene.Scene) {
	if c.Width > 0 {
		s.Width = c.Width
	}
	if c.Height > 0 {
		s.Height = c.Height
	}
	if c.MaxDepth != UnsetDepth {
		s.MaxDepth = c.MaxDepth
	}
}
