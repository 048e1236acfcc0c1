package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// memorySink records uploaded renders
type memorySink struct {
	names []string
	err   error
}

func (m *memorySink) Write(ctx context.Context, name string, img image.Image) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.names = append(m.names, name)
	return "mem://" + name, nil
}

func newTestServer(sink *memorySink) *Server {
	config := renderer.DefaultRenderConfig()
	config.NumWorkers = 2
	config.TileSize = 16
	if sink == nil {
		return NewServer(0, config, nil)
	}
	return NewServer(0, config, sink)
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, newTestServer(nil), "/api/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
}

func TestHandleScenes(t *testing.T) {
	rec := get(t, newTestServer(nil), "/api/scenes")

	var scenes []scene.SceneInfo
	if err := json.NewDecoder(rec.Body).Decode(&scenes); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(scenes) != len(scene.Names()) {
		t.Fatalf("Expected %d scenes, got %d", len(scene.Names()), len(scenes))
	}
	for i, name := range scene.Names() {
		if scenes[i].Name != name {
			t.Errorf("Expected scene %d to be %q, got %q", i, name, scenes[i].Name)
		}
	}
}

func TestHandleRender_PNG(t *testing.T) {
	rec := get(t, newTestServer(nil), "/api/render?scene=cornell&width=40&height=30")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("Response is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Errorf("Expected 40x30, got %v", img.Bounds())
	}
}

func TestHandleRender_PPMThumbnail(t *testing.T) {
	rec := get(t, newTestServer(nil), "/api/render?scene=sphere&width=64&height=64&format=ppm&thumb=16")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(rec.Body.String(), "P3\n16 16\n255\n") {
		t.Errorf("Expected a 16x16 PPM, got header %q", strings.SplitN(rec.Body.String(), "\n", 4)[:3])
	}
}

func TestHandleRender_InvalidParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"unknown scene", "scene=teapot"},
		{"width too small", "width=1"},
		{"width not a number", "width=wide"},
		{"height too large", "height=99999"},
		{"negative depth", "maxDepth=-1"},
		{"unknown format", "format=webp"},
		{"shadow out of range", "shadow=1.5"},
		{"bad upload flag", "upload=maybe"},
	}

	s := newTestServer(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, "/api/render?"+tt.query)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestHandleRender_Upload(t *testing.T) {
	sink := &memorySink{}
	rec := get(t, newTestServer(sink), "/api/render?scene=sphere&width=32&height=32&upload=true")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("X-Render-Location"); !strings.HasPrefix(loc, "mem://sphere/render-") {
		t.Errorf("Expected a per-render upload location under sphere/, got %q", loc)
	}

	// A second upload of the same scene must not reuse the first key
	rec = get(t, newTestServer(sink), "/api/render?scene=sphere&width=32&height=32&upload=true")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(sink.names) != 2 {
		t.Fatalf("Expected 2 uploads, got %d", len(sink.names))
	}
	if sink.names[0] == sink.names[1] {
		t.Errorf("Expected distinct upload names, both were %q", sink.names[0])
	}
}

func TestHandleRender_UploadFailures(t *testing.T) {
	rec := get(t, newTestServer(nil), "/api/render?scene=sphere&width=32&height=32&upload=1")
	if rec.Code != http.StatusBadGateway {
		t.Errorf("Expected 502 without a sink, got %d", rec.Code)
	}

	rec = get(t, newTestServer(&memorySink{err: errors.New("denied")}), "/api/render?scene=sphere&width=32&height=32&upload=1")
	if rec.Code != http.StatusBadGateway {
		t.Errorf("Expected 502 for a failing sink, got %d", rec.Code)
	}
}

func TestHandleRenderStream(t *testing.T) {
	sink := &memorySink{}
	rec := get(t, newTestServer(sink), "/api/render/stream?scene=cornell&width=32&height=32&upload=true")

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Expected an event stream, got %q", ct)
	}

	events := make(map[string][]string)
	var lastEvent string
	scanner := bufio.NewScanner(rec.Body)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			lastEvent = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			events[lastEvent] = append(events[lastEvent], strings.TrimPrefix(line, "data: "))
		}
	}

	if len(events["tile"]) != 4 {
		t.Errorf("Expected 4 tile events, got %d", len(events["tile"]))
	}
	if len(events["console"]) == 0 {
		t.Error("Expected console events")
	}
	if len(events["error"]) != 0 {
		t.Errorf("Unexpected error events: %v", events["error"])
	}
	if len(events["complete"]) != 1 {
		t.Fatalf("Expected 1 complete event, got %d", len(events["complete"]))
	}
	if lastEvent != "complete" {
		t.Errorf("Expected the stream to end with complete, got %q", lastEvent)
	}

	var complete CompleteUpdate
	if err := json.Unmarshal([]byte(events["complete"][0]), &complete); err != nil {
		t.Fatalf("Invalid complete event: %v", err)
	}
	if complete.Stats.PrimaryRays != 32*32 {
		t.Errorf("Expected %d primary rays, got %d", 32*32, complete.Stats.PrimaryRays)
	}
	rays := complete.Stats.PrimaryRays + complete.Stats.ShadowRays + complete.Stats.ReflectionRays
	if complete.Stats.TotalRays != rays {
		t.Errorf("Expected %d total rays, got %d", rays, complete.Stats.TotalRays)
	}
	if complete.Stats.AverageLuminance <= 0 || complete.Stats.AverageLuminance > 1 {
		t.Errorf("Expected average luminance in (0,1], got %f", complete.Stats.AverageLuminance)
	}
	if !strings.HasPrefix(complete.Location, "mem://cornell/render-") {
		t.Errorf("Expected a per-render upload location, got %q", complete.Location)
	}

	var tile TileUpdate
	if err := json.Unmarshal([]byte(events["tile"][0]), &tile); err != nil {
		t.Fatalf("Invalid tile event: %v", err)
	}
	if tile.TotalTiles != 4 || tile.ImageData == "" {
		t.Errorf("Unexpected tile event: %+v", tile)
	}
}

func TestHandleInspect(t *testing.T) {
	s := newTestServer(nil)

	rec := get(t, s, "/api/inspect?scene=sphere&width=20&height=20&x=10&y=9")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var hit InspectResponse
	if err := json.NewDecoder(rec.Body).Decode(&hit); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if !hit.Hit || hit.GeometryType != "sphere" || hit.ObjectIndex != 0 {
		t.Errorf("Expected to hit sphere 0, got %+v", hit)
	}
	if hit.Distance <= 0 {
		t.Errorf("Expected a positive distance, got %f", hit.Distance)
	}

	rec = get(t, s, "/api/inspect?scene=sphere&width=20&height=20&x=0&y=19")
	var miss InspectResponse
	if err := json.NewDecoder(rec.Body).Decode(&miss); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if miss.Hit || miss.ObjectIndex != -1 || miss.Color != "#000000" {
		t.Errorf("Expected a black miss, got %+v", miss)
	}
}

func TestHandleInspect_InvalidCoordinates(t *testing.T) {
	s := newTestServer(nil)
	for _, query := range []string{"x=5", "x=20&y=0", "x=0&y=-1", "x=a&y=0"} {
		rec := get(t, s, "/api/inspect?scene=sphere&width=20&height=20&"+query)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for %q, got %d", query, rec.Code)
		}
	}
}

func TestParseFloatParam(t *testing.T) {
	values := url.Values{"shadow": {"0.25"}, "bad": {"x"}}

	if v, err := parseFloatParam(values, "shadow", 0.5, 0, 1); err != nil || v != 0.25 {
		t.Errorf("Expected 0.25, got %f (%v)", v, err)
	}
	if v, err := parseFloatParam(values, "missing", 0.5, 0, 1); err != nil || v != 0.5 {
		t.Errorf("Expected default 0.5, got %f (%v)", v, err)
	}
	if _, err := parseFloatParam(values, "bad", 0.5, 0, 1); err == nil {
		t.Error("Expected an error for a non-numeric value")
	}
}
