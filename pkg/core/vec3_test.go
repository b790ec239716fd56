package core

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"Divide", b.Divide(2), NewVec3(2, -2.5, 3)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"Cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"Min", a.Min(b), NewVec3(1, -5, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.result.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}

	if dot := a.Dot(b); dot != 12 {
		t.Errorf("Expected dot product 12, got %f", dot)
	}
}

func TestVec3_LengthAndNormalize(t *testing.T) {
	v := NewVec3(3, 4, 0)
	if v.Length() != 5 {
		t.Errorf("Expected length 5, got %f", v.Length())
	}
	if v.LengthSquared() != 25 {
		t.Errorf("Expected squared length 25, got %f", v.LengthSquared())
	}

	n := v.Normalize()
	if math32.Abs(n.Length()-1) > 1e-6 {
		t.Errorf("Normalized vector should have unit length, got %f", n.Length())
	}

	// Zero vector normalizes to zero instead of NaN
	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("Expected zero vector, got %v", zero)
	}
}

func TestVec3_ClampAndSqrt(t *testing.T) {
	c := NewVec3(-0.5, 0.25, 2).Clamp(0, 0.999)
	expected := NewVec3(0, 0.25, 0.999)
	if c != expected {
		t.Errorf("Expected %v, got %v", expected, c)
	}

	g := NewVec3(0.25, 1, 0).Sqrt()
	if !g.Equals(NewVec3(0.5, 1, 0)) {
		t.Errorf("Expected gamma corrected (0.5, 1, 0), got %v", g)
	}
}

func TestVec3_Lerp(t *testing.T) {
	white := NewVec3(1, 1, 1)
	blue := NewVec3(0.5, 0.7, 1.0)

	if got := white.Lerp(blue, 0); got != white {
		t.Errorf("Lerp at t=0 should return start, got %v", got)
	}
	if got := white.Lerp(blue, 1); !got.Equals(blue) {
		t.Errorf("Lerp at t=1 should return end, got %v", got)
	}
	if got := white.Lerp(blue, 0.5); !got.Equals(NewVec3(0.75, 0.85, 1.0)) {
		t.Errorf("Lerp at t=0.5 should return midpoint, got %v", got)
	}
}

func TestVec3_NearZero(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		expected bool
	}{
		{"exact zero", NewVec3(0, 0, 0), true},
		{"tiny components", NewVec3(1e-9, -1e-9, 5e-9), true},
		{"one component large", NewVec3(1e-9, 1e-3, 0), false},
		{"unit", NewVec3(1, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.NearZero(); got != tt.expected {
				t.Errorf("NearZero(%v) = %t, expected %t", tt.v, got, tt.expected)
			}
		})
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -2))

	if p := ray.At(0); p != ray.Origin {
		t.Errorf("At(0) should be the origin, got %v", p)
	}
	if p := ray.At(1.5); !p.Equals(NewVec3(1, 2, 0)) {
		t.Errorf("Expected (1, 2, 0), got %v", p)
	}
}
