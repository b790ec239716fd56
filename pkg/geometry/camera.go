package geometry

import (
	"github.com/chewxy/math32"

	"github.com/JMS55/raytracing-in-one-weekend/pkg/core"
)

// Camera generates rays through a rectangular image plane in world space
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates a camera from its eye point and image plane rectangle.
// The plane spans lowerLeftCorner + u·horizontal + v·vertical for u, v in [0, 1].
func NewCamera(origin, lowerLeftCorner, horizontal, vertical core.Vec3) *Camera {
	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
	}
}

// NewDefaultCamera creates a camera at the origin looking down -Z with a viewport
// two units high. v grows downward, so v = 0 is the top row of the image.
func NewDefaultCamera(aspectRatio float32) *Camera {
	return NewCamera(
		core.NewVec3(0, 0, 0),
		core.NewVec3(-aspectRatio, 1, -1),
		core.NewVec3(2*aspectRatio, 0, 0),
		core.NewVec3(0, -2, 0),
	)
}

// NewLookAtCamera creates a camera at lookFrom aimed at lookAt with the given
// vertical field of view in degrees. Like NewDefaultCamera, v = 0 is the top row.
func NewLookAtCamera(lookFrom, lookAt, vup core.Vec3, vfov, aspectRatio float32) *Camera {
	theta := vfov * math32.Pi / 180
	halfHeight := math32.Tan(theta / 2)
	halfWidth := aspectRatio * halfHeight

	// Orthonormal basis: w points backwards, u right, v up
	w := lookFrom.Subtract(lookAt).Normalize()
	u := vup.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(2 * halfWidth)
	vertical := v.Multiply(-2 * halfHeight)
	topLeft := lookFrom.
		Subtract(u.Multiply(halfWidth)).
		Add(v.Multiply(halfHeight)).
		Subtract(w)

	return NewCamera(lookFrom, topLeft, horizontal, vertical)
}

// GetRay generates a ray for image plane coordinates (u, v).
// Values outside [0, 1] are allowed and aim outside the framed rectangle.
func (c *Camera) GetRay(u, v float32) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(u)).
		Add(c.vertical.Multiply(v)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

// Origin returns the eye point shared by all camera rays
func (c *Camera) Origin() core.Vec3 {
	return c.origin
}
