// Package picking provides ray casting and sphere picking utilities.
package picking

import (
	gomath "math"

	"github.com/Faultbox/orbitshade/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Camera is a pinhole camera that turns pixel coordinates into rays.
type Camera struct {
	Eye     math.Vec3
	Forward math.Vec3
	Right   math.Vec3
	Up      math.Vec3

	tanHalfFOV float32
	aspect     float32
}

// NewCamera creates a camera at eye looking at target with +Y up. fovY is
// the vertical field of view in radians and aspect is width/height.
func NewCamera(eye, target math.Vec3, fovY, aspect float32) Camera {
	forward := target.Sub(eye).Normalize()
	worldUp := math.Vec3{Y: 1}
	if gomath.Abs(float64(forward.Dot(worldUp))) > 0.9999 {
		worldUp = math.Vec3{Z: -1}
	}
	right := forward.Cross(worldUp).Normalize()

	return Camera{
		Eye:        eye,
		Forward:    forward,
		Right:      right,
		Up:         right.Cross(forward),
		tanHalfFOV: float32(gomath.Tan(float64(fovY) / 2)),
		aspect:     aspect,
	}
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates with the origin at the top left;
// the ray passes through the given point of the pixel grid.
func (c Camera) ScreenToRay(screenX, screenY, viewportW, viewportH float32) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := (2.0*screenX/viewportW - 1.0)
	ndcY := (1.0 - 2.0*screenY/viewportH) // Flip Y

	dir := c.Forward.
		Add(c.Right.Scale(ndcX * c.tanHalfFOV * c.aspect)).
		Add(c.Up.Scale(ndcY * c.tanHalfFOV))
	return Ray{Origin: c.Eye, Direction: dir.Normalize()}
}

// PixelRay is ScreenToRay through the center of pixel (x, y).
func (c Camera) PixelRay(x, y, width, height int) Ray {
	return c.ScreenToRay(float32(x)+0.5, float32(y)+0.5, float32(width), float32(height))
}

// IntersectSphere returns the distances to the entry and exit points of a
// sphere. If the ray starts inside, both are the exit distance.
func (r Ray) IntersectSphere(center math.Vec3, radius float32) (near, far float32, hit bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, 0, false
	}
	sq := float32(gomath.Sqrt(float64(disc)))
	near, far = -b-sq, -b+sq
	if far < 0 {
		return 0, 0, false // Sphere behind ray origin
	}
	if near < 0 {
		return far, far, true
	}
	return near, far, true
}

// Sphere is a pickable object.
type Sphere struct {
	Name   string
	Center math.Vec3
	Radius float32
}

// Pick returns the index of the closest sphere the ray hits and the
// distance to it.
func (r Ray) Pick(spheres []Sphere) (index int, t float32, hit bool) {
	index = -1
	for i, s := range spheres {
		near, _, ok := r.IntersectSphere(s.Center, s.Radius)
		if ok && (index < 0 || near < t) {
			index, t = i, near
		}
	}
	return index, t, index >= 0
}
