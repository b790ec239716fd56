package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testSceneJSON = `{
	"width": 6,
	"height": 3,
	"samplesPerPixel": 1,
	"maxDepth": 4,
	"spheres": [
		{"center": [0, 0, -1], "radius": 0.5, "material": {"type": "dielectric", "ior": 1.5}}
	]
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "glass-ball.json"), []byte(testSceneJSON), 0644); err != nil {
		t.Fatal(err)
	}
	return NewServer(0, dir)
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var health HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if health.Status != "ok" {
		t.Errorf("Expected status ok, got %q", health.Status)
	}
	if health.LogicalCPUs < 1 || health.DefaultWorkers < 1 {
		t.Errorf("Expected positive CPU counts, got %+v", health)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("Expected a request ID header")
	}
}

func TestHandleScenes(t *testing.T) {
	s := newTestServer(t)
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/scenes", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var scenes ScenesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &scenes); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(scenes.Builtin) != 4 {
		t.Errorf("Expected 4 built-in scenes, got %d", len(scenes.Builtin))
	}
	if len(scenes.Files) != 1 || scenes.Files[0].DisplayName != "Glass Ball" {
		t.Errorf("Expected the glass-ball scene file, got %+v", scenes.Files)
	}
}

func TestHandleRenderScene(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name          string
		query         string
		width, height int
	}{
		{"builtin with overrides", "scene=single&width=8&height=4&samples=1&depth=3&seed=9", 8, 4},
		{"annotated", "scene=default&width=40&height=20&samples=1&depth=2&annotate=true", 40, 20},
		{"scene file", "scene=glass-ball.json", 6, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/render?"+tt.query, nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
				t.Errorf("Expected image/png, got %q", ct)
			}

			img, err := png.Decode(rec.Body)
			if err != nil {
				t.Fatalf("Invalid PNG: %v", err)
			}
			if img.Bounds().Dx() != tt.width || img.Bounds().Dy() != tt.height {
				t.Errorf("Expected %dx%d, got %v", tt.width, tt.height, img.Bounds())
			}
			if rec.Header().Get("X-Render-Samples") == "" {
				t.Error("Expected render stats headers")
			}
		})
	}
}

func TestHandleRenderScene_Deterministic(t *testing.T) {
	s := newTestServer(t)
	url := "/api/render?scene=single&width=8&height=4&samples=2&depth=5&seed=3"

	first := serve(s, httptest.NewRequest(http.MethodGet, url, nil))
	second := serve(s, httptest.NewRequest(http.MethodGet, url, nil))
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("Expected 200s, got %d and %d", first.Code, second.Code)
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("Identical requests should produce identical images")
	}
}

func TestHandleRenderScene_Errors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"unknown scene", "scene=nonexistent", http.StatusBadRequest},
		{"width not a number", "scene=single&width=wide", http.StatusBadRequest},
		{"width too large", "scene=single&width=5000", http.StatusBadRequest},
		{"zero samples", "scene=single&samples=0", http.StatusBadRequest},
		{"negative seed", "scene=single&seed=-1", http.StatusBadRequest},
		{"bad annotate", "scene=single&annotate=maybe", http.StatusBadRequest},
		{"missing scene file", "scene=missing.json", http.StatusNotFound},
		{"scene file outside directory", "scene=../../etc/glass-ball-copy.json", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/render?"+tt.query, nil))
			if rec.Code != tt.status {
				t.Errorf("Expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["error"] == "" {
				t.Errorf("Expected JSON error body, got %q", rec.Body.String())
			}
		})
	}
}

func TestHandleRenderScene_ClientGone(t *testing.T) {
	s := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/render?scene=single&width=8&height=4&samples=1", nil).WithContext(ctx)

	rec := serve(s, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", rec.Code)
	}
}

func TestHandleRenderJSON(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		query  string
		body   string
		status int
	}{
		{"valid document", "", testSceneJSON, http.StatusOK},
		{"valid document with override", "?width=12", testSceneJSON, http.StatusOK},
		{"malformed json", "", `{"width": `, http.StatusBadRequest},
		{"invalid material", "", strings.Replace(testSceneJSON, `"ior": 1.5`, `"ior": 0`, 1), http.StatusBadRequest},
		{"too large", "", strings.Replace(testSceneJSON, `"width": 6`, `"width": 6000`, 1), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/render"+tt.query, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			rec := serve(s, req)
			if rec.Code != tt.status {
				t.Fatalf("Expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			if tt.status == http.StatusOK {
				if _, err := png.Decode(rec.Body); err != nil {
					t.Errorf("Invalid PNG: %v", err)
				}
			}
		})
	}
}

func TestParseRenderRequest_Defaults(t *testing.T) {
	req, err := parseRenderRequest(nil)
	if err != nil {
		t.Fatal(err)
	}
	if req.Scene != "default" || req.Width != 0 || req.HasSeed || req.Annotate {
		t.Errorf("Unexpected defaults %+v", req)
	}
}

func TestWebLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWebLogger("abc123")

	restore := captureLog(&buf)
	defer restore()

	logger.Printf("Rendering %dx%d\n", 4, 2)
	if got := buf.String(); !strings.Contains(got, "[abc123] Rendering 4x2") {
		t.Errorf("Expected tagged message, got %q", got)
	}
}

// captureLog redirects the standard logger to w until the returned func is called
func captureLog(w io.Writer) func() {
	previous := log.Writer()
	log.SetOutput(w)
	return func() { log.SetOutput(previous) }
}
