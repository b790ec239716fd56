package geometry

import (
	"github.com/chewxy/math32"

	"github.com/JMS55/raytracing-in-one-weekend/pkg/core"
	"github.com/JMS55/raytracing-in-one-weekend/pkg/material"
)

// Sphere represents a sphere shape.
// A negative radius flips the normals, which models the inside of a hollow shell.
type Sphere struct {
	Center   core.Vec3
	Radius   float32
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float32, material material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float32) (material.HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return material.HitRecord{}, false
	}

	sqrtD := math32.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return material.HitRecord{}, false
		}
	}

	hit := material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	// Dividing by the signed radius turns the normal inward for hollow spheres
	outwardNormal := hit.Point.Subtract(s.Center).Divide(s.Radius)
	hit.SetFaceNormal(ray, outwardNormal)

	return hit, true
}
