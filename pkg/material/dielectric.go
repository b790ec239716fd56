package material

import (
	"github.com/chewxy/math32"

	"github.com/JMS55/raytracing-in-one-weekend/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float32 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float32) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Dielectrics always attenuate by 1.0 (no color absorption for clear glass)
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	// Determine if we're entering or exiting the material
	refractionRatio := d.RefractiveIndex
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractiveIndex
	}

	unitDirection := rayIn.Direction.Normalize()

	cosTheta := min(unitDirection.Negate().Dot(hit.Normal), 1.0)
	sinTheta := math32.Sqrt(1.0 - cosTheta*cosTheta)

	// Check for total internal reflection
	cannotRefract := refractionRatio*sinTheta > 1.0

	var direction core.Vec3
	if cannotRefract || Reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		direction = Reflect(unitDirection, hit.Normal)
	} else {
		direction = Refract(unitDirection, hit.Normal, cosTheta, refractionRatio)
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: attenuation,
	}, true
}

// Refract bends the unit vector uv through a surface with normal n using Snell's law.
// cosTheta is min(-uv·n, 1) and etaiOverEtat the ratio of refractive indices.
func Refract(uv, n core.Vec3, cosTheta, etaiOverEtat float32) core.Vec3 {
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math32.Sqrt(math32.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float32) float32 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math32.Pow(1-cosine, 5)
}
