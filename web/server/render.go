package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"path"
	"sync/atomic"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX      int    `json:"tileX"`
	TileY      int    `json:"tileY"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Tiles completed so far (1-based)
	TotalTiles int    `json:"totalTiles"` // Total number of tiles in the image
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalRays        int     `json:"totalRays"`
	PrimaryRays      int     `json:"primaryRays"`
	ShadowRays       int     `json:"shadowRays"`
	ReflectionRays   int     `json:"reflectionRays"`
	Workers          int     `json:"workers"`
	ElapsedMs        int64   `json:"elapsedMs"`
	AverageLuminance float64 `json:"averageLuminance"`
}

// CompleteUpdate is the final SSE event of a streamed render
type CompleteUpdate struct {
	Stats    Stats  `json:"stats"`
	Location string `json:"location,omitempty"` // Where the render was uploaded, if requested
}

// SSEEvent represents an SSE event waiting to be written
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

func newStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:      stats.TotalPixels,
		TotalRays:        stats.Rays.TotalRays(),
		PrimaryRays:      stats.Rays.PrimaryRays,
		ShadowRays:       stats.Rays.ShadowRays,
		ReflectionRays:   stats.Rays.ReflectionRays,
		Workers:          stats.Workers,
		ElapsedMs:        stats.Duration.Milliseconds(),
		AverageLuminance: stats.AverageLuminance,
	}
}

// handleRender renders a scene and responds with the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, sceneObj, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	ctx := r.Context()
	fb, stats, err := renderer.NewRenderer(sceneObj, s.renderConfig(req), NewWebLogger(renderID(), nil)).Render(ctx, nil)
	if err != nil {
		log.Printf("Render failed: %v", err)
		writeJSONError(w, http.StatusServiceUnavailable, "Render failed")
		return
	}

	var img image.Image = fb.Image()
	if req.Thumbnail > 0 {
		img = output.Thumbnail(img, req.Thumbnail, req.Thumbnail)
	}

	if req.Upload {
		location, err := s.upload(ctx, req.Scene, img)
		if err != nil {
			log.Printf("Upload failed: %v", err)
			writeJSONError(w, http.StatusBadGateway, err.Error())
			return
		}
		w.Header().Set("X-Render-Location", location)
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, img, req.Format); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", output.ContentType(req.Format))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time", stats.Duration.String())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Failed to write image: %v", err)
	}
}

// handleRenderStream renders a scene and streams console output and finished
// tiles to the client via SSE
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	req, sceneObj, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSONError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	s.setSSEHeaders(w)
	ctx := r.Context()

	consoleChan := make(chan ConsoleMessage, 50)
	tileChan := make(chan TileUpdate, 16)
	type outcome struct {
		fb    *renderer.Framebuffer
		stats renderer.RenderStats
		err   error
	}
	done := make(chan outcome, 1)

	rend := renderer.NewRenderer(sceneObj, s.renderConfig(req), NewWebLogger(renderID(), consoleChan))
	go func() {
		fb, stats, err := rend.Render(ctx, func(result renderer.TileCompletionResult) {
			update, err := newTileUpdate(result)
			if err != nil {
				log.Printf("Failed to encode tile: %v", err)
				return
			}
			select {
			case tileChan <- update:
			case <-ctx.Done():
			}
		})
		done <- outcome{fb, stats, err}
	}()

	for {
		select {
		case msg := <-consoleChan:
			s.sendSSEJSON(w, flusher, "console", msg)
		case update := <-tileChan:
			s.sendSSEJSON(w, flusher, "tile", update)
		case result := <-done:
			// Everything the render produced is already buffered
			s.drainConsole(w, flusher, consoleChan)
			for len(tileChan) > 0 {
				s.sendSSEJSON(w, flusher, "tile", <-tileChan)
			}

			if result.err != nil {
				s.sendSSEEvent(w, flusher, "error", fmt.Sprintf("Render error: %v", result.err))
				return
			}

			complete := CompleteUpdate{Stats: newStats(result.stats)}
			if req.Upload {
				location, err := s.upload(ctx, req.Scene, result.fb.Image())
				if err != nil {
					s.sendSSEEvent(w, flusher, "error", err.Error())
					return
				}
				complete.Location = location
			}
			s.sendSSEJSON(w, flusher, "complete", complete)
			return
		}
	}
}

func (s *Server) drainConsole(w http.ResponseWriter, flusher http.Flusher, consoleChan chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			s.sendSSEJSON(w, flusher, "console", msg)
		default:
			return
		}
	}
}

// upload stores img in the configured sink as <scene>/<render ID>
func (s *Server) upload(ctx context.Context, sceneName string, img image.Image) (string, error) {
	if s.sink == nil {
		return "", fmt.Errorf("uploads are not configured")
	}
	return s.sink.Write(ctx, path.Join(sceneName, renderID()), img)
}

func newTileUpdate(result renderer.TileCompletionResult) (TileUpdate, error) {
	imageData, err := imageToBase64PNG(result.TileImage)
	if err != nil {
		return TileUpdate{}, err
	}
	return TileUpdate{
		TileX:      result.TileX,
		TileY:      result.TileY,
		ImageData:  imageData,
		TileNumber: result.TileNumber,
		TotalTiles: result.TotalTiles,
	}, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// sendSSEJSON sends v as the JSON data of an SSE event
func (s *Server) sendSSEJSON(w http.ResponseWriter, flusher http.Flusher, event string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}
	s.sendSSEEvent(w, flusher, event, string(data))
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	flusher.Flush()
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := output.Encode(&buf, img, "png"); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

var renderSeq atomic.Uint64

// renderID returns an identifier unique within the process
func renderID() string {
	return fmt.Sprintf("render-%d-%d", time.Now().UnixNano(), renderSeq.Add(1))
}
