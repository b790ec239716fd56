package integrator

import (
	"github.com/chewxy/math32"

	"github.com/JMS55/raytracing-in-one-weekend/pkg/core"
	"github.com/JMS55/raytracing-in-one-weekend/pkg/scene"
)

// MinHitDistance keeps scattered rays from re-hitting the surface they left
const MinHitDistance = 0.001

// PathTracingIntegrator implements unidirectional path tracing against a sky gradient
type PathTracingIntegrator struct {
	config scene.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config scene.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor computes the color for a single camera ray, following at most MaxDepth bounces
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	return pt.rayColor(ray, s, sampler, pt.config.MaxDepth)
}

func (pt *PathTracingIntegrator) rayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := s.Hit(ray, MinHitDistance, math32.Inf(1))
	if !isHit {
		return pt.backgroundGradient(ray, s)
	}

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		// Material absorbed the ray
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	return scatter.Attenuation.MultiplyVec(
		pt.rayColor(scatter.Scattered, s, sampler, depth-1))
}

// backgroundGradient blends the scene's sky colors by the ray's vertical direction
func (pt *PathTracingIntegrator) backgroundGradient(ray core.Ray, s *scene.Scene) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return s.BottomColor.Lerp(s.TopColor, t)
}
