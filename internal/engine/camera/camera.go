// Package camera provides the orbit camera used to look at the scene.
package camera

import (
	gomath "math"

	"github.com/Faultbox/orbitshade/pkg/math"
)

// OrbitCamera orbits around a target point. Drag and zoom input feeds
// velocities that decay each Update, which gives the damped feel of a
// trackball.
type OrbitCamera struct {
	// Target point to orbit around
	Target math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from target
	RotationX float32 // Pitch (elevation above the XZ plane, radians)
	RotationY float32 // Yaw (around Y, 0 looks down -Z from +Z)

	// Projection
	FOV  float32 // vertical, radians
	Near float32
	Far  float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Damping is the fraction of velocity removed per Update; 1 stops at once.
	Damping float32

	velYaw   float32
	velPitch float32
	velZoom  float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        80,
		FOV:             float32(20 * gomath.Pi / 180),
		Near:            0.1,
		Far:             500,
		MinDistance:     5,
		MaxDistance:     300,
		MinPitch:        -1.55,
		MaxPitch:        1.55,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		Damping:         0.05,
	}
}

// LookFrom places the camera at position looking at target.
func (c *OrbitCamera) LookFrom(position, target math.Vec3) {
	c.Target = target
	offset := position.Sub(target)
	c.Distance = clamp(offset.Length(), c.MinDistance, c.MaxDistance)
	horizontal := gomath.Hypot(float64(offset.X), float64(offset.Z))
	c.RotationX = clamp(float32(gomath.Atan2(float64(offset.Y), horizontal)), c.MinPitch, c.MaxPitch)
	c.RotationY = float32(gomath.Atan2(float64(offset.X), float64(offset.Z)))
	c.velYaw, c.velPitch, c.velZoom = 0, 0, 0
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return c.Target.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Target, up)
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// HandleDrag adds rotation velocity from a mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.velYaw -= deltaX * c.DragSensitivity
	c.velPitch += deltaY * c.DragSensitivity
}

// HandleZoom adds zoom velocity from scroll wheel steps; positive zooms in.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.velZoom -= delta * c.ZoomSensitivity
}

// Update applies and then decays the pending velocities. Call once per tick.
func (c *OrbitCamera) Update() {
	c.RotationY += c.velYaw
	c.RotationX = clamp(c.RotationX+c.velPitch, c.MinPitch, c.MaxPitch)
	c.Distance = clamp(c.Distance*(1+c.velZoom), c.MinDistance, c.MaxDistance)

	keep := 1 - clamp(c.Damping, 0, 1)
	c.velYaw *= keep
	c.velPitch *= keep
	c.velZoom *= keep

	const rest = 1e-6
	if abs(c.velYaw) < rest {
		c.velYaw = 0
	}
	if abs(c.velPitch) < rest {
		c.velPitch = 0
	}
	if abs(c.velZoom) < rest {
		c.velZoom = 0
	}
}

// Moving reports whether any velocity is still pending.
func (c *OrbitCamera) Moving() bool {
	return c.velYaw != 0 || c.velPitch != 0 || c.velZoom != 0
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
