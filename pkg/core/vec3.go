package core

import (
	"github.com/chewxy/math32"
)

// nearZeroEpsilon is the per-component threshold used by NearZero
const nearZeroEpsilon = 1e-8

// Vec3 represents a 3D vector or an RGB color
type Vec3 struct {
	X, Y, Z float32
}

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float32) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Divide returns the vector divided by a scalar
func (v Vec3) Divide(scalar float32) Vec3 {
	return Vec3{v.X / scalar, v.Y / scalar, v.Z / scalar}
}

// MultiplyVec returns component-wise multiplication of two vectors
func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{
		X: v.X * other.X,
		Y: v.Y * other.Y,
		Z: v.Z * other.Z,
	}
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.LengthSquared())
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Normalize returns a unit vector in the same direction
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{0, 0, 0}
	}
	return v.Divide(length)
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Clamp returns a vector with components clamped to [minVal, maxVal]
func (v Vec3) Clamp(minVal, maxVal float32) Vec3 {
	return Vec3{
		X: max(minVal, min(maxVal, v.X)),
		Y: max(minVal, min(maxVal, v.Y)),
		Z: max(minVal, min(maxVal, v.Z)),
	}
}

// Min returns the component-wise minimum of two vectors
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{min(v.X, other.X), min(v.Y, other.Y), min(v.Z, other.Z)}
}

// Sqrt returns the component-wise square root, i.e. gamma 2 correction for colors
func (v Vec3) Sqrt() Vec3 {
	return Vec3{math32.Sqrt(v.X), math32.Sqrt(v.Y), math32.Sqrt(v.Z)}
}

// Lerp linearly interpolates from v (t=0) to other (t=1)
func (v Vec3) Lerp(other Vec3, t float32) Vec3 {
	return v.Multiply(1 - t).Add(other.Multiply(t))
}

// NearZero reports whether every component is within 1e-8 of zero
func (v Vec3) NearZero() bool {
	return math32.Abs(v.X) < nearZeroEpsilon &&
		math32.Abs(v.Y) < nearZeroEpsilon &&
		math32.Abs(v.Z) < nearZeroEpsilon
}

// Equals checks if two vectors are equal within a small tolerance
func (v Vec3) Equals(other Vec3) bool {
	const tolerance = 1e-6
	return math32.Abs(v.X-other.X) < tolerance &&
		math32.Abs(v.Y-other.Y) < tolerance &&
		math32.Abs(v.Z-other.Z) < tolerance
}

// Vec2 represents a 2D sample or coordinate pair
type Vec2 struct {
	X, Y float32
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Ray represents a ray with an origin and direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
