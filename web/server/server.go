package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/JMS55/raytracing-in-one-weekend/pkg/renderer"
	"github.com/JMS55/raytracing-in-one-weekend/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string // Directory scanned for .json scene files
	echo      *echo.Echo
}

// NewServer creates a new web server with all routes registered
func NewServer(port int, scenesDir string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		port:      port,
		scenesDir: scenesDir,
		echo:      e,
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} ${id} ${method} ${uri} ${status} ${latency_human}\n",
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))

	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/render", s.handleRenderScene)
	e.POST("/api/render", s.handleRenderJSON)

	return s
}

// Handler returns the HTTP handler serving all routes
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the web server and blocks until it stops
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return s.echo.Start(addr)
}

// Shutdown stops the server, waiting for in-flight renders until ctx expires
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// HealthResponse reports server status and host capacity
type HealthResponse struct {
	Status         string  `json:"status"`
	CPUModel       string  `json:"cpuModel,omitempty"`
	LogicalCPUs    int     `json:"logicalCpus"`
	DefaultWorkers int     `json:"defaultWorkers"`
	TotalMemoryMB  uint64  `json:"totalMemoryMb,omitempty"`
	MemoryUsedPct  float64 `json:"memoryUsedPercent,omitempty"`
	GoVersion      string  `json:"goVersion"`
}

// handleHealth provides a health check endpoint with host information
func (s *Server) handleHealth(c echo.Context) error {
	response := HealthResponse{
		Status:         "ok",
		LogicalCPUs:    runtime.NumCPU(),
		DefaultWorkers: renderer.DefaultNumWorkers(),
		GoVersion:      runtime.Version(),
	}

	// Host details are best effort; some platforms do not expose them
	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		response.CPUModel = info[0].ModelName
	}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		response.LogicalCPUs = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		response.TotalMemoryMB = vm.Total / (1024 * 1024)
		response.MemoryUsedPct = vm.UsedPercent
	}

	return c.JSON(http.StatusOK, response)
}

// ScenesResponse lists the scenes that can be rendered by name
type ScenesResponse struct {
	Builtin []scene.SceneInfo `json:"builtin"`
	Files   []scene.SceneInfo `json:"files"`
}

// handleScenes lists built-in scenes and scene files found in the scenes directory
func (s *Server) handleScenes(c echo.Context) error {
	files, err := scene.ListJSONScenes(s.scenesDir)
	if err != nil {
		log.Printf("Warning: %v", err)
		files = []scene.SceneInfo{}
	}

	return c.JSON(http.StatusOK, ScenesResponse{
		Builtin: scene.List(),
		Files:   files,
	})
}
