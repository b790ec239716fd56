package integrator

import (
	"github.com/JMS55/raytracing-in-one-weekend/pkg/core"
	"github.com/JMS55/raytracing-in-one-weekend/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the radiance carried back along a camera ray
	RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Vec3
}
