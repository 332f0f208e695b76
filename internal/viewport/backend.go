package viewport

import (
	"mesh-creator/internal/camera"
	"mesh-creator/internal/geom"
)

// Backend draws frames onto a surface. The raylib window implements it;
// tests use a recording fake.
type Backend interface {
	// SetSize resizes the drawing surface.
	SetSize(width, height int)
	// Render draws one frame.
	Render(f Frame)
	// ShouldClose reports whether the user asked to close the surface.
	ShouldClose() bool
	// OnResize registers fn to be called when the surface size changes
	// outside the program's control. The returned func detaches it.
	OnResize(fn func(width, height int)) (unsubscribe func())
	// Close releases the surface.
	Close() error
}

// Light is a scene light. Direction lights shine from Position toward the origin.
type Light struct {
	Color     uint32
	Intensity float32
	Position  [3]float32
}

// Lighting is the fixed scene lighting.
type Lighting struct {
	Ambient     Light
	Directional Light
}

// DefaultLighting is a white ambient at 0.4 and a white key light at 0.8
// from (5, 10, 7).
func DefaultLighting() Lighting {
	return Lighting{
		Ambient:     Light{Color: 0xffffff, Intensity: 0.4},
		Directional: Light{Color: 0xffffff, Intensity: 0.8, Position: [3]float32{5, 10, 7}},
	}
}

// Grid describes the ground helper: Size units wide with Divisions cells.
type Grid struct {
	Visible   bool
	Size      float32
	Divisions int
	Opacity   float32
}

// Frame is everything a backend needs to draw one frame. Mesh is never
// mutated after it is published, so backends may read it without locking.
type Frame struct {
	Camera camera.Camera
	// Mesh is the current generated group, nil before the first success.
	Mesh *geom.Group
	// Generation changes whenever Mesh is replaced. Backends key their GPU
	// caches on it and free the old meshes when it moves.
	Generation uint64
	Background uint32
	Lighting   Lighting
	Grid       Grid
	Width      int
	Height     int
}
