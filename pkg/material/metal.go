package material

import (
	"github.com/JMS55/raytracing-in-one-weekend/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo    core.Vec3 // Metal color
	Fuzziness float32   // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzziness float32) *Metal {
	// Clamp fuzziness to valid range
	fuzziness = max(0, min(1, fuzziness))
	return &Metal{Albedo: albedo, Fuzziness: fuzziness}
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Calculate perfect reflection direction
	reflected := Reflect(rayIn.Direction.Normalize(), hit.Normal)

	// Add fuzziness by perturbing the reflection direction
	if m.Fuzziness > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(sampler).Multiply(m.Fuzziness))
	}

	// Rays pushed below the surface are absorbed
	if reflected.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, reflected),
		Attenuation: m.Albedo,
	}, true
}
