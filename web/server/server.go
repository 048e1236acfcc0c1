package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Request limits
const (
	minImageSize = 16
	maxImageSize = 2000
	maxDepth     = 20
	maxThumbnail = 512
)

// Server handles web requests for the raytracer
type Server struct {
	port   int
	render renderer.RenderConfig
	sink   output.Sink // Optional destination for uploaded renders
}

// NewServer creates a new web server. sink may be nil, which disables uploads.
func NewServer(port int, render renderer.RenderConfig, sink output.Sink) *Server {
	return &Server{port: port, render: render, sink: sink}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene     string `json:"scene"`     // Built-in scene name
	Width     int    `json:"width"`     // Image width
	Height    int    `json:"height"`    // Image height
	MaxDepth  int    `json:"maxDepth"`  // Reflection recursion limit
	Format    string `json:"format"`    // Output encoding
	Thumbnail int    `json:"thumbnail"` // Longest edge of a preview, 0 = full size
	Upload    bool   `json:"upload"`    // Also store the render in the configured sink

	ShadowAttenuation float64 `json:"shadowAttenuation"` // Diffuse multiplier for occluded lights
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.List())
}

// parseRenderRequest parses request parameters. Width, height and depth default
// to the scene's own values.
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, *scene.Scene, error) {
	query := r.URL.Query()

	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = scene.DefaultSceneName
	}

	sceneObj, err := scene.New(req.Scene)
	if err != nil {
		return nil, nil, err
	}

	if req.Width, err = parseIntParam(query, "width", sceneObj.Width, minImageSize, maxImageSize); err != nil {
		return nil, nil, err
	}
	if req.Height, err = parseIntParam(query, "height", sceneObj.Height, minImageSize, maxImageSize); err != nil {
		return nil, nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", sceneObj.MaxDepth, 0, maxDepth); err != nil {
		return nil, nil, err
	}
	if req.Thumbnail, err = parseIntParam(query, "thumb", 0, 0, maxThumbnail); err != nil {
		return nil, nil, err
	}
	if req.ShadowAttenuation, err = parseFloatParam(query, "shadow", s.render.Shading.ShadowAttenuation, 0, 1); err != nil {
		return nil, nil, err
	}

	req.Format = output.NormalizeFormat(query.Get("format"))
	if req.Format == "" {
		req.Format = output.DefaultFormat
	}
	if err := output.ValidateFormat(req.Format); err != nil {
		return nil, nil, err
	}

	if upload := query.Get("upload"); upload != "" {
		if req.Upload, err = strconv.ParseBool(upload); err != nil {
			return nil, nil, fmt.Errorf("invalid upload: %s", upload)
		}
	}

	sceneObj.SetResolution(req.Width, req.Height)
	sceneObj.MaxDepth = req.MaxDepth

	return req, sceneObj, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// renderConfig returns the server's render settings adjusted for a request
func (s *Server) renderConfig(req *RenderRequest) renderer.RenderConfig {
	config := s.render
	config.Shading.ShadowAttenuation = req.ShadowAttenuation
	return config
}

// writeJSON encodes v as the response body
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

// writeJSONError reports an error as {"error": message}
func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
