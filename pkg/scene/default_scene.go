package scene

import (
	"github.com/JMS55/raytracing-in-one-weekend/pkg/core"
	"github.com/JMS55/raytracing-in-one-weekend/pkg/geometry"
	"github.com/JMS55/raytracing-in-one-weekend/pkg/material"
)

// NewDefaultScene creates the classic four-sphere scene: a red diffuse sphere,
// a yellow ground, and gold and silver metal spheres of different roughness
func NewDefaultScene() *Scene {
	samplingConfig := SamplingConfig{
		Width:           1280,
		Height:          640,
		SamplesPerPixel: 500,
		MaxDepth:        50,
	}

	aspectRatio := float32(samplingConfig.Width) / float32(samplingConfig.Height)
	s := NewScene(geometry.NewDefaultCamera(aspectRatio), samplingConfig)

	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3)))
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0)))
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3))
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0))

	return s
}

// NewSingleSphereScene creates a grey diffuse sphere resting on a grey ground sphere
func NewSingleSphereScene() *Scene {
	samplingConfig := SamplingConfig{
		Width:           400,
		Height:          200,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	s := NewScene(geometry.NewDefaultCamera(2.0), samplingConfig)

	grey := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, grey)
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, grey)

	return s
}

// NewGlassScene creates a scene exercising all three materials, including a
// hollow glass shell modelled with a negative-radius inner sphere
func NewGlassScene() *Scene {
	samplingConfig := SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 200,
		MaxDepth:        50,
	}

	camera := geometry.NewLookAtCamera(
		core.NewVec3(0, 0.75, 2),  // Position camera higher and farther back
		core.NewVec3(0, 0.25, -1), // Look at the sphere row
		core.NewVec3(0, 1, 0),
		40.0,
		16.0/9.0,
	)
	s := NewScene(camera, samplingConfig)

	lambertianGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	glass := material.NewDielectric(1.5)

	s.AddSphere(core.NewVec3(0, -1000, -1), 1000, lambertianGround)

	s.AddSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianRed)
	s.AddSphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver)
	s.AddSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold)
	s.AddSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, glass)

	// Hollow glass shell with a blue sphere inside
	s.AddSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25, glass)
	s.AddSphere(core.NewVec3(-0.5, 0.25, -0.5), -0.24, glass)
	s.AddSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.20, lambertianBlue)

	return s
}
