// Package camera holds the perspective camera state, the fit-to-content
// placement and the damped orbit controls. It has no GPU dependency; the
// graphics backend copies the state into its own camera each frame.
package camera

import "cogentcore.org/core/math32"

// Defaults match the viewer's initial camera.
const (
	DefaultFovy = 75
	DefaultNear = 0.1
	DefaultFar  = 1000
	// FitPadding scales the fit distance so content does not touch the edges.
	FitPadding = 1.5
)

// Camera is a perspective camera looking from Position at Target.
type Camera struct {
	Position math32.Vector3
	Target   math32.Vector3
	Up       math32.Vector3
	// Fovy is the vertical field of view in degrees.
	Fovy   float32
	Aspect float32
	Near   float32
	Far    float32
}

// New returns the default camera at (0,0,5) looking at the origin.
func New(aspect float32) Camera {
	return Camera{
		Position: math32.Vec3(0, 0, 5),
		Up:       math32.Vec3(0, 1, 0),
		Fovy:     DefaultFovy,
		Aspect:   aspect,
		Near:     DefaultNear,
		Far:      DefaultFar,
	}
}

// SetAspect sets the aspect ratio from surface dimensions. A zero height
// leaves the camera unchanged.
func (c *Camera) SetAspect(width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// Distance returns the distance between the camera and its target.
func (c *Camera) Distance() float32 {
	return c.Position.Sub(c.Target).Length()
}

// LookAt aims the camera at target without moving it.
func (c *Camera) LookAt(target math32.Vector3) {
	c.Target = target
}

// FitDistance returns how far from the center of box a camera with the given
// vertical field of view (degrees) must stand to see all of it, padded by
// [FitPadding]: |maxDim / sin(fov/2)| * 1.5.
func FitDistance(box math32.Box3, fovy float32) float32 {
	size := box.Size()
	maxDim := math32.Max(size.X, math32.Max(size.Y, size.Z))
	fov := math32.DegToRad(fovy)
	return math32.Abs(maxDim/math32.Sin(fov/2)) * FitPadding
}

// Fit moves the camera onto the +Z axis through the center of box at the fit
// distance and aims it at the center. It returns the center. An empty box
// leaves the camera untouched and returns its current target.
func (c *Camera) Fit(box math32.Box3) math32.Vector3 {
	if box.IsEmpty() {
		return c.Target
	}
	center := box.Center()
	dist := FitDistance(box, c.Fovy)
	c.Position = center.Add(math32.Vec3(0, 0, dist))
	c.LookAt(center)
	if need := dist * 4; need > c.Far {
		c.Far = need
	}
	return center
}
