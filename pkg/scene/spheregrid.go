package scene

import (
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/JMS55/raytracing-in-one-weekend/pkg/core"
	"github.com/JMS55/raytracing-in-one-weekend/pkg/geometry"
	"github.com/JMS55/raytracing-in-one-weekend/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float32) core.Vec3 {
	hRad := h * math32.Pi / 180.0

	// Convert from OKLCH to OKLAB
	a := c * math32.Cos(hRad)
	b := c * math32.Sin(hRad)

	// OKLAB to LMS, then cube
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a field of small spheres with randomly chosen
// materials around three large feature spheres. The layout is fixed by layoutSeed.
func NewSphereGridScene(layoutSeed uint64) *Scene {
	samplingConfig := SamplingConfig{
		Width:           600,
		Height:          400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	camera := geometry.NewLookAtCamera(
		core.NewVec3(13, 2, 3),
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 1, 0),
		20.0,
		float32(samplingConfig.Width)/float32(samplingConfig.Height),
	)
	s := NewScene(camera, samplingConfig)

	random := rand.New(rand.NewPCG(layoutSeed, 0x5eed))

	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	const gridHalf = 8
	const radius = 0.2
	keepOut := core.NewVec3(4, radius, 0)

	for i := -gridHalf; i < gridHalf; i++ {
		for j := -gridHalf; j < gridHalf; j++ {
			center := core.NewVec3(
				float32(i)+0.9*random.Float32(),
				radius,
				float32(j)+0.9*random.Float32(),
			)
			if center.Subtract(keepOut).Length() <= 0.9 {
				continue
			}

			// Hue follows the grid column, chroma the grid row
			hue := float32(i+gridHalf) / float32(2*gridHalf-1) * 360
			chroma := 0.05 + float32(j+gridHalf)/float32(2*gridHalf-1)*0.2
			color := oklchToRGB(0.7, chroma, hue)

			var mat material.Material
			switch choice := random.Float32(); {
			case choice < 0.75:
				mat = material.NewLambertian(color.MultiplyVec(color))
			case choice < 0.92:
				mat = material.NewMetal(color.Lerp(core.NewVec3(1, 1, 1), 0.5), 0.5*random.Float32())
			default:
				mat = material.NewDielectric(1.5)
			}
			s.AddSphere(center, radius, mat)
		}
	}

	s.AddSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5))
	s.AddSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	s.AddSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0))

	return s
}
