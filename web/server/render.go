package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/JMS55/raytracing-in-one-weekend/pkg/output"
	"github.com/JMS55/raytracing-in-one-weekend/pkg/renderer"
	"github.com/JMS55/raytracing-in-one-weekend/pkg/scene"
)

// Limits applied to every render request
const (
	maxImageSize       = 2000
	maxSamplesPerPixel = 10000
	maxRayDepth        = 1000
)

// RenderRequest holds the query parameters of a render request.
// Zero values leave the scene's own settings in place.
type RenderRequest struct {
	Scene    string
	Width    int
	Height   int
	Samples  int
	MaxDepth int
	Seed     uint64
	HasSeed  bool
	Annotate bool
}

// errBadRequest marks errors caused by the client's input
var errBadRequest = errors.New("bad request")

// handleRenderScene renders a built-in scene or a scene file from the scenes directory
func (s *Server) handleRenderScene(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return renderError(c, err)
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		return renderError(c, err)
	}

	return s.renderPNG(c, sceneObj, req)
}

// handleRenderJSON renders a scene document posted as the request body
func (s *Server) handleRenderJSON(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return renderError(c, err)
	}

	sceneObj, err := scene.ParseJSONScene(c.Request().Body)
	if err != nil {
		return renderError(c, err)
	}

	return s.renderPNG(c, sceneObj, req)
}

// createScene creates a built-in scene by name or loads a .json file from the scenes directory.
// Only the base name of a file is used, so requests cannot reach outside the directory.
func (s *Server) createScene(name string) (*scene.Scene, error) {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return scene.LoadJSONScene(filepath.Join(s.scenesDir, filepath.Base(name)))
	}
	return scene.Create(name)
}

// renderPNG renders the scene with the request's overrides and responds with a PNG
func (s *Server) renderPNG(c echo.Context, sceneObj *scene.Scene, req *RenderRequest) error {
	applyRequest(sceneObj, req)
	if err := checkLimits(sceneObj.SamplingConfig); err != nil {
		return renderError(c, err)
	}

	renderID := c.Response().Header().Get(echo.HeaderXRequestID)
	raytracer := renderer.NewRaytracer(sceneObj, 0, NewWebLogger(renderID))

	// The request context is cancelled when the client disconnects
	img, stats, err := raytracer.Render(c.Request().Context())
	if err != nil {
		return renderError(c, err)
	}

	annotation := ""
	if req.Annotate {
		annotation = stats.String()
	}

	var buf bytes.Buffer
	if err := output.EncodePNG(&buf, img, annotation); err != nil {
		return renderError(c, err)
	}

	header := c.Response().Header()
	header.Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	header.Set("X-Render-Workers", strconv.Itoa(stats.NumWorkers))
	header.Set("X-Render-Time-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// renderError maps an error to a JSON error response with a matching status code
func renderError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, scene.ErrInvalidScene),
		errors.Is(err, scene.ErrUnknownScene):
		status = http.StatusBadRequest
	case errors.Is(err, fs.ErrNotExist):
		status = http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}

// applyRequest overrides the scene's sampling settings with the parameters that were given
func applyRequest(sceneObj *scene.Scene, req *RenderRequest) {
	cfg := &sceneObj.SamplingConfig
	if req.Width > 0 {
		cfg.Width = req.Width
	}
	if req.Height > 0 {
		cfg.Height = req.Height
	}
	if req.Samples > 0 {
		cfg.SamplesPerPixel = req.Samples
	}
	if req.MaxDepth > 0 {
		cfg.MaxDepth = req.MaxDepth
	}
	if req.HasSeed {
		cfg.Seed = req.Seed
	}
}

// checkLimits rejects renders too large to serve
func checkLimits(cfg scene.SamplingConfig) error {
	if cfg.Width > maxImageSize || cfg.Height > maxImageSize {
		return fmt.Errorf("%w: image size %dx%d exceeds %d", errBadRequest, cfg.Width, cfg.Height, maxImageSize)
	}
	if cfg.SamplesPerPixel > maxSamplesPerPixel {
		return fmt.Errorf("%w: samples %d exceeds %d", errBadRequest, cfg.SamplesPerPixel, maxSamplesPerPixel)
	}
	if cfg.MaxDepth > maxRayDepth {
		return fmt.Errorf("%w: depth %d exceeds %d", errBadRequest, cfg.MaxDepth, maxRayDepth)
	}
	return nil
}

// parseRenderRequest parses request parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: "default"}
	if name := values.Get("scene"); name != "" {
		req.Scene = name
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 0, 1, maxSamplesPerPixel); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", 0, 1, maxRayDepth); err != nil {
		return nil, err
	}

	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseUint(value, 10, 64); err != nil {
			return nil, fmt.Errorf("%w: invalid seed: %s", errBadRequest, value)
		}
		req.HasSeed = true
	}

	if value := values.Get("annotate"); value != "" {
		if req.Annotate, err = strconv.ParseBool(value); err != nil {
			return nil, fmt.Errorf("%w: invalid annotate: %s", errBadRequest, value)
		}
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid %s: %s", errBadRequest, key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%w: %s must be between %d and %d, got: %d", errBadRequest, key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
