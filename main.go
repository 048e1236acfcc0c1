package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// cliFlags holds the raw command line values
type cliFlags struct {
	scene     string
	width     int
	height    int
	maxDepth  int
	workers   int
	tileSize  int
	outputDir string
	format    string
	thumbnail int
	envFile   string
	help      bool
}

func newFlagSet(f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.StringVar(&f.scene, "scene", scene.DefaultSceneName, "Scene: "+strings.Join(scene.Names(), ", "))
	fs.IntVar(&f.width, "width", 0, "Image width (0 = scene default)")
	fs.IntVar(&f.height, "height", 0, "Image height (0 = scene default)")
	fs.IntVar(&f.maxDepth, "max-depth", config.UnsetDepth, "Maximum reflection depth (-1 = scene default)")
	fs.IntVar(&f.workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	fs.IntVar(&f.tileSize, "tile-size", renderer.DefaultTileSize, "Tile size in pixels")
	fs.StringVar(&f.outputDir, "output", config.DefaultOutputDir, "Output directory")
	fs.StringVar(&f.format, "format", output.DefaultFormat, "Image format: png, jpg, gif, bmp, tiff or ppm")
	fs.IntVar(&f.thumbnail, "thumbnail", 0, "Also save a thumbnail with this longest edge (0 = none)")
	fs.StringVar(&f.envFile, "env", ".env", "Environment file with render and S3 settings")
	fs.BoolVar(&f.help, "help", false, "Show help information")
	return fs
}

// applyFlags overrides cfg with every flag set explicitly on the command line
func applyFlags(cfg *config.Config, fs *flag.FlagSet, f *cliFlags) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "scene":
			cfg.Scene = f.scene
		case "width":
			cfg.Width = f.width
		case "height":
			cfg.Height = f.height
		case "max-depth":
			cfg.MaxDepth = f.maxDepth
		case "workers":
			cfg.Workers = f.workers
		case "tile-size":
			cfg.TileSize = f.tileSize
		case "output":
			cfg.OutputDir = f.outputDir
		case "format":
			cfg.Format = f.format
		case "thumbnail":
			cfg.Thumbnail = f.thumbnail
		}
	})
}

func printHelp(fs *flag.FlagSet) {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.List() {
		fmt.Printf("  %-8s - %s\n", info.Name, info.Description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.<format>")
	fmt.Println("Renders are also uploaded when S3_BUCKET is set.")
}

func main() {
	var f cliFlags
	fs := newFlagSet(&f)
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if f.help {
		printHelp(fs)
		return
	}

	cfg, err := config.Load(f.envFile)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(&cfg, fs, &f)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, renderer.NewDefaultLogger()); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// createScene builds the configured scene with any resolution and depth overrides applied
func createScene(cfg config.Config) (*scene.Scene, error) {
	s, err := scene.New(cfg.Scene)
	if err != nil {
		return nil, err
	}
	cfg.Apply(s)
	return s, nil
}

// thumbnailPath derives the thumbnail file name from the render's path
func thumbnailPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_thumb" + ext
}

// run renders the configured scene, saves it and uploads it when S3 is configured
func run(ctx context.Context, cfg config.Config, logger core.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	s, err := createScene(cfg)
	if err != nil {
		return err
	}

	renderConfig := renderer.DefaultRenderConfig()
	renderConfig.NumWorkers = cfg.Workers
	if cfg.TileSize > 0 {
		renderConfig.TileSize = cfg.TileSize
	}

	fb, _, err := renderer.NewRenderer(s, renderConfig, logger).Render(ctx, nil)
	if err != nil {
		return err
	}
	img := fb.Image()

	filename, err := output.NewFileSink(cfg.OutputDir, cfg.Format).Write(ctx, s.Name, img)
	if err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", filename)

	if cfg.Thumbnail > 0 {
		thumbFile := thumbnailPath(filename)
		if err := output.Save(output.Thumbnail(img, cfg.Thumbnail, cfg.Thumbnail), thumbFile); err != nil {
			return err
		}
		logger.Printf("Thumbnail saved as %s\n", thumbFile)
	}

	if cfg.UploadEnabled() {
		client, err := output.NewS3Client(cfg.S3)
		if err != nil {
			return err
		}
		// Same name as the local file, under a per-scene prefix
		key := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		location, err := output.NewS3Sink(client, cfg.S3, s.Name, cfg.Format).Write(ctx, key, img)
		if err != nil {
			return err
		}
		logger.Printf("Render uploaded to %s\n", location)
	}

	return nil
}
