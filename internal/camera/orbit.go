package camera

import "cogentcore.org/core/math32"

// DefaultDampingFactor is the fraction of pending motion applied per frame.
const DefaultDampingFactor = 0.25

// minPolar keeps the camera off the poles so the up vector stays valid.
const minPolar = 1e-4

// OrbitControls rotate, zoom and pan a camera around its target. Input
// methods accumulate motion; Update applies it once per frame. With damping
// enabled only DampingFactor of the pending rotation and pan is applied each
// frame and the rest decays, giving the camera inertia.
type OrbitControls struct {
	Camera        *Camera
	EnableDamping bool
	DampingFactor float32
	MinDistance   float32
	MaxDistance   float32

	dTheta, dPhi float32
	scale        float32
	pan          math32.Vector3
}

// NewOrbitControls returns damped controls driving cam.
func NewOrbitControls(cam *Camera) *OrbitControls {
	return &OrbitControls{
		Camera:        cam,
		EnableDamping: true,
		DampingFactor: DefaultDampingFactor,
		MinDistance:   0,
		MaxDistance:   math32.Inf(1),
		scale:         1,
	}
}

// SetTarget moves the orbit center without moving the camera.
func (o *OrbitControls) SetTarget(target math32.Vector3) {
	o.Camera.Target = target
}

// Rotate queues a rotation in radians: left around the up axis, up toward
// the top pole.
func (o *OrbitControls) Rotate(left, up float32) {
	o.dTheta -= left
	o.dPhi -= up
}

// Zoom queues a dolly. Factors above 1 move closer, below 1 move away.
func (o *OrbitControls) Zoom(factor float32) {
	if factor <= 0 {
		return
	}
	o.scale /= factor
}

// Pan queues a translation of camera and target in view-aligned world units.
func (o *OrbitControls) Pan(right, up float32) {
	c := o.Camera
	forward := c.Target.Sub(c.Position)
	r := unit(cross(forward, c.Up))
	u := unit(cross(r, forward))
	o.pan = o.pan.Add(r.MulScalar(right)).Add(u.MulScalar(up))
}

// Pending reports whether queued motion remains to be applied.
func (o *OrbitControls) Pending() bool {
	const eps = 1e-6
	return math32.Abs(o.dTheta) > eps || math32.Abs(o.dPhi) > eps ||
		o.scale != 1 || o.pan.Length() > eps
}

// Update applies queued motion to the camera. It must run once per frame
// when damping is enabled.
func (o *OrbitControls) Update() {
	c := o.Camera
	offset := c.Position.Sub(c.Target)
	radius := offset.Length()
	theta := math32.Atan2(offset.X, offset.Z)
	phi := float32(0)
	if radius > 0 {
		phi = math32.Acos(min(max(offset.Y/radius, -1), 1))
	}

	f := float32(1)
	if o.EnableDamping {
		f = o.DampingFactor
	}
	theta += o.dTheta * f
	phi += o.dPhi * f
	phi = min(max(phi, minPolar), math32.Pi-minPolar)

	radius *= o.scale
	radius = min(max(radius, o.MinDistance), o.MaxDistance)

	c.Target = c.Target.Add(o.pan.MulScalar(f))

	sinPhi := math32.Sin(phi)
	c.Position = c.Target.Add(math32.Vec3(
		radius*sinPhi*math32.Sin(theta),
		radius*math32.Cos(phi),
		radius*sinPhi*math32.Cos(theta),
	))

	if o.EnableDamping {
		o.dTheta *= 1 - f
		o.dPhi *= 1 - f
		o.pan = o.pan.MulScalar(1 - f)
	} else {
		o.dTheta, o.dPhi = 0, 0
		o.pan = math32.Vector3{}
	}
	o.scale = 1
}

func cross(a, b math32.Vector3) math32.Vector3 {
	return math32.Vec3(a.Y*b.Z-a.Z*b.Y, a.Z*b.X-a.X*b.Z, a.X*b.Y-a.Y*b.X)
}

func unit(v math32.Vector3) math32.Vector3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.MulScalar(1 / l)
}
