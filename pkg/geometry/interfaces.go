package geometry

import (
	"github.com/JMS55/raytracing-in-one-weekend/pkg/core"
	"github.com/JMS55/raytracing-in-one-weekend/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Hit reports the intersection closest to the ray origin with t strictly inside (tMin, tMax).
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float32) (material.HitRecord, bool)
}
