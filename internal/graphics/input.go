package graphics

import (
	"cogentcore.org/core/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OrbitInput is one frame of camera input read from the mouse.
type OrbitInput struct {
	RotateLeft float32
	RotateUp   float32
	// Zoom is a dolly factor: above 1 moves closer, 1 means none.
	Zoom     float32
	PanRight float32
	PanUp    float32
}

// IsZero reports whether the input moves nothing.
func (in OrbitInput) IsZero() bool {
	return in.RotateLeft == 0 && in.RotateUp == 0 && (in.Zoom == 1 || in.Zoom == 0) &&
		in.PanRight == 0 && in.PanUp == 0
}

const (
	zoomStep = 0.95
	// panPerPixel scales mouse pixels by the camera distance for world-space panning.
	panPerPixel = 0.0015
)

// ReadOrbit reads mouse input over the viewport: left drag rotates, right
// or middle drag pans and the wheel zooms. distance is the current camera
// distance to its target, which scales panning. Input outside the viewport
// is ignored unless a drag started inside it.
func (w *Window) ReadOrbit(distance float32) OrbitInput {
	in := OrbitInput{Zoom: 1}
	rect := w.ViewportRect()
	mouse := rl.GetMousePosition()
	inside := rl.CheckCollisionPointRec(mouse, rect)

	left := rl.IsMouseButtonDown(rl.MouseButtonLeft)
	pan := rl.IsMouseButtonDown(rl.MouseButtonRight) || rl.IsMouseButtonDown(rl.MouseButtonMiddle)
	if inside && (rl.IsMouseButtonPressed(rl.MouseButtonLeft) || rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsMouseButtonPressed(rl.MouseButtonMiddle)) {
		w.dragging = true
	}
	if !left && !pan {
		w.dragging = false
	}

	if w.dragging {
		delta := rl.GetMouseDelta()
		switch {
		case left:
			// A full viewport height of drag turns the camera by 2π.
			scale := 2 * rl.Pi / max(rect.Height, 1)
			in.RotateLeft = delta.X * scale
			in.RotateUp = delta.Y * scale
		case pan:
			k := distance * panPerPixel
			in.PanRight = -delta.X * k
			in.PanUp = delta.Y * k
		}
	}
	if inside {
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			in.Zoom = 1 / math32.Pow(zoomStep, wheel)
		}
	}
	return in
}
