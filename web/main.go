package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	envFile := flag.String("env", ".env", "Environment file with render and S3 settings")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Printf("Error loading config: %v", err)
		os.Exit(1)
	}

	renderConfig := renderer.DefaultRenderConfig()
	renderConfig.NumWorkers = cfg.Workers
	if cfg.TileSize > 0 {
		renderConfig.TileSize = cfg.TileSize
	}

	// Uploads are only offered when a bucket is configured
	var sink output.Sink
	if cfg.UploadEnabled() {
		client, err := output.NewS3Client(cfg.S3)
		if err != nil {
			log.Printf("Error creating S3 client: %v", err)
			os.Exit(1)
		}
		sink = output.NewS3Sink(client, cfg.S3, "renders", cfg.Format)
		log.Printf("Uploads enabled to bucket %s", cfg.S3.Bucket)
	}

	webServer := server.NewServer(*port, renderConfig, sink)

	log.Printf("Whitted Raytracer Web Server")
	log.Printf("Try http://localhost:%d/api/render?scene=cornell", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
