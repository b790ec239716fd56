package scene

import (
	"github.com/JMS55/raytracing-in-one-weekend/pkg/core"
	"github.com/JMS55/raytracing-in-one-weekend/pkg/geometry"
	"github.com/JMS55/raytracing-in-one-weekend/pkg/material"
)

// Scene contains all the elements needed for rendering.
// It is read-only while a render is running and shared by every worker.
type Scene struct {
	Camera         *geometry.Camera
	Shapes         []geometry.Shape // Objects in the scene, tested by linear scan
	TopColor       core.Vec3        // Sky color straight up
	BottomColor    core.Vec3        // Sky color straight down
	SamplingConfig SamplingConfig
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int    // Image width
	Height          int    // Image height
	SamplesPerPixel int    // Number of rays per pixel
	MaxDepth        int    // Maximum ray bounce depth
	Seed            uint64 // Base seed for the per-pixel random streams
}

// Sky gradient used by every built-in scene
var (
	DefaultTopColor    = core.NewVec3(0.5, 0.7, 1.0)
	DefaultBottomColor = core.NewVec3(1.0, 1.0, 1.0)
)

// NewScene creates an empty scene with the default sky gradient
func NewScene(camera *geometry.Camera, config SamplingConfig) *Scene {
	return &Scene{
		Camera:         camera,
		Shapes:         make([]geometry.Shape, 0),
		TopColor:       DefaultTopColor,
		BottomColor:    DefaultBottomColor,
		SamplingConfig: config,
	}
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// AddSphere adds a sphere with the given material to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float32, mat material.Material) {
	s.Add(geometry.NewSphere(center, radius, mat))
}

// Hit returns the nearest intersection among all shapes with t inside (tMin, tMax)
func (s *Scene) Hit(ray core.Ray, tMin, tMax float32) (material.HitRecord, bool) {
	var closestHit material.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, shape := range s.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}
