package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// DefaultTileSize is the edge length of a render tile in pixels
const DefaultTileSize = 64

// RenderConfig contains configuration for parallel rendering
type RenderConfig struct {
	TileSize   int // Size of each tile
	NumWorkers int // Number of parallel workers (0 = use CPU count)
	Shading    ShadingConfig
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   DefaultTileSize,
		NumWorkers: 0, // Auto-detect CPU count
		Shading:    DefaultShadingConfig(),
	}
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX     int // Tile coordinates (not pixel coordinates)
	TileY     int
	Bounds    image.Rectangle // Pixel bounds of the tile
	TileImage *image.RGBA     // Image data for just this tile

	// Progress information
	TileNumber int // Tiles completed so far (1-based)
	TotalTiles int
}

// Renderer renders a scene in parallel tiles
type Renderer struct {
	scene  *scene.Scene
	config RenderConfig
	logger core.Logger
}

// NewRenderer creates a new tile renderer
func NewRenderer(s *scene.Scene, config RenderConfig, logger core.Logger) *Renderer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultTileSize
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Renderer{
		scene:  s,
		config: config,
		logger: logger,
	}
}

// Render traces every pixel of the scene and returns the framebuffer.
// onTile, if not nil, is called from the calling goroutine after each tile completes.
// If ctx is cancelled the remaining tiles are skipped and ctx.Err() is returned.
func (r *Renderer) Render(ctx context.Context, onTile func(TileCompletionResult)) (*Framebuffer, RenderStats, error) {
	startTime := time.Now()
	width, height := r.scene.Width, r.scene.Height

	fb := NewFramebuffer(width, height)
	tiles := NewTileGrid(width, height, r.config.TileSize)
	tilesX := (width + r.config.TileSize - 1) / r.config.TileSize

	pool := NewWorkerPool(r.scene, r.config.Shading, fb, r.config.NumWorkers, len(tiles))
	pool.Start(ctx)

	r.logger.Printf("Rendering %s: %dx%d, %d tiles, %d workers, max depth %d\n",
		r.scene.Name, width, height, len(tiles), pool.GetNumWorkers(), r.scene.MaxDepth)

	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}

	stats := RenderStats{
		TotalPixels: width * height,
		Tiles:       len(tiles),
		Workers:     pool.GetNumWorkers(),
	}

	var renderErr error
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}

		stats.Rays = stats.Rays.Add(result.Stats)

		if onTile != nil && renderErr == nil {
			tile := tiles[result.TaskID]
			onTile(TileCompletionResult{
				TileX:      result.TaskID % tilesX,
				TileY:      result.TaskID / tilesX,
				Bounds:     tile.Bounds,
				TileImage:  fb.SubImage(tile.Bounds),
				TileNumber: i + 1,
				TotalTiles: len(tiles),
			})
		}
	}
	pool.Stop()

	if renderErr == nil {
		stats.AverageLuminance = CalculateAverageLuminance(fb.Image())
	}
	stats.Duration = time.Since(startTime)
	if renderErr != nil {
		r.logger.Printf("Render of %s stopped after %v: %v\n", r.scene.Name, stats.Duration, renderErr)
		return nil, stats, fmt.Errorf("render %s: %w", r.scene.Name, renderErr)
	}

	r.logger.Printf("Render completed in %v: %d rays (%d primary, %d shadow, %d reflection), average luminance %.3f\n",
		stats.Duration, stats.Rays.TotalRays(), stats.Rays.PrimaryRays, stats.Rays.ShadowRays,
		stats.Rays.ReflectionRays, stats.AverageLuminance)

	return fb, stats, nil
}
