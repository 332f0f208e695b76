// Package graphics is the raylib backend: it owns the window, renders the
// viewport scene into an off-screen target placed right of the sidebar and
// runs the 2D overlay hooks the UI registers.
package graphics

import (
	"mesh-creator/internal/camera"
	"mesh-creator/internal/viewport"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Options size and title the window.
type Options struct {
	Width     int
	Height    int
	Title     string
	TargetFPS int
	// SidebarWidth is reserved on the left for the UI; the 3D viewport fills the rest.
	SidebarWidth int
}

// Window is the raylib window. It implements viewport.Backend. All methods
// must be called from the goroutine that called Open (raylib is not thread safe).
type Window struct {
	opts Options

	target     rl.RenderTexture2D
	hasTarget  bool
	width      int
	height     int
	lastScreen [2]int

	resize  map[int]func(width, height int)
	nextSub int

	meshes   *meshCache
	dragging bool

	// updates run at the start of every frame, overlays after the scene is drawn.
	updates  []func()
	overlays []func()
	closed   bool
}

var _ viewport.Backend = (*Window)(nil)

// Open creates a resizable window. ESC does not close it; close via the window button.
func Open(opts Options) *Window {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	rl.SetExitKey(rl.KeyNull)
	if opts.TargetFPS > 0 {
		rl.SetTargetFPS(int32(opts.TargetFPS))
	}
	w := &Window{
		opts:   opts,
		resize: make(map[int]func(int, int)),
		meshes: newMeshCache(),
	}
	w.lastScreen = [2]int{rl.GetScreenWidth(), rl.GetScreenHeight()}
	return w
}

// ViewportSize returns the size of the 3D area for the current screen size.
func (w *Window) ViewportSize() (width, height int) {
	return max(rl.GetScreenWidth()-w.opts.SidebarWidth, 1), max(rl.GetScreenHeight(), 1)
}

// ViewportRect returns the screen rectangle of the 3D area.
func (w *Window) ViewportRect() rl.Rectangle {
	vw, vh := w.ViewportSize()
	return rl.NewRectangle(float32(w.opts.SidebarWidth), 0, float32(vw), float32(vh))
}

// SidebarWidth returns the width reserved for the UI.
func (w *Window) SidebarWidth() int {
	return w.opts.SidebarWidth
}

// OnFrame registers fn to run at the start of every frame, before drawing (input handling).
func (w *Window) OnFrame(fn func()) {
	w.updates = append(w.updates, fn)
}

// AddOverlay registers fn to draw in screen space after the viewport (sidebar, HUD).
func (w *Window) AddOverlay(fn func()) {
	w.overlays = append(w.overlays, fn)
}

// SetSize sets the render target size. The target is recreated on the next frame.
func (w *Window) SetSize(width, height int) {
	w.width, w.height = width, height
}

// OnResize registers fn for window resizes; fn receives the new viewport size.
func (w *Window) OnResize(fn func(width, height int)) (unsubscribe func()) {
	id := w.nextSub
	w.nextSub++
	w.resize[id] = fn
	return func() { delete(w.resize, id) }
}

// ShouldClose reports whether the close button was pressed.
func (w *Window) ShouldClose() bool {
	return w.closed || rl.WindowShouldClose()
}

// Render draws one frame: frame hooks, the scene into the render target,
// then the target and the overlays to the screen.
func (w *Window) Render(f viewport.Frame) {
	if w.closed {
		return
	}
	w.pollResize()
	for _, fn := range w.updates {
		fn()
	}
	w.ensureTarget()
	w.meshes.sync(f.Mesh, f.Generation)

	rl.BeginTextureMode(w.target)
	rl.ClearBackground(hexColor(f.Background, 1))
	rl.BeginMode3D(toRaylibCamera(f.Camera))
	if f.Grid.Visible {
		drawGrid(f.Grid)
	}
	w.meshes.draw(f.Camera.Position, f.Lighting)
	rl.EndMode3D()
	rl.EndTextureMode()

	rl.BeginDrawing()
	rl.ClearBackground(sidebarColor)
	// Render textures are stored upside down; a negative source height flips them.
	src := rl.NewRectangle(0, 0, float32(w.target.Texture.Width), -float32(w.target.Texture.Height))
	rl.DrawTextureRec(w.target.Texture, src, rl.NewVector2(float32(w.opts.SidebarWidth), 0), rl.White)
	for _, fn := range w.overlays {
		fn()
	}
	rl.EndDrawing()
}

// pollResize notifies listeners when the screen size changed since the last frame.
func (w *Window) pollResize() {
	sw, sh := rl.GetScreenWidth(), rl.GetScreenHeight()
	if !rl.IsWindowResized() && sw == w.lastScreen[0] && sh == w.lastScreen[1] {
		return
	}
	w.lastScreen = [2]int{sw, sh}
	vw, vh := w.ViewportSize()
	for _, fn := range w.resize {
		fn(vw, vh)
	}
}

// ensureTarget (re)creates the render texture when the viewport size changed.
func (w *Window) ensureTarget() {
	if w.width <= 0 || w.height <= 0 {
		w.width, w.height = w.ViewportSize()
	}
	if w.hasTarget && int(w.target.Texture.Width) == w.width && int(w.target.Texture.Height) == w.height {
		return
	}
	if w.hasTarget {
		rl.UnloadRenderTexture(w.target)
	}
	w.target = rl.LoadRenderTexture(int32(w.width), int32(w.height))
	w.hasTarget = true
}

// Close frees GPU resources and closes the window. Calling it again does nothing.
func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.meshes.unload()
	if w.hasTarget {
		rl.UnloadRenderTexture(w.target)
		w.hasTarget = false
	}
	rl.CloseWindow()
	return nil
}

var sidebarColor = rl.NewColor(30, 30, 30, 255)

// hexColor converts 0xRRGGBB and an opacity in [0,1] to a raylib color.
func hexColor(c uint32, opacity float32) rl.Color {
	col := rl.GetColor(uint(c)<<8 | 0xff)
	col.A = uint8(min(max(opacity, 0), 1) * 255)
	return col
}

func toRaylibCamera(c camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   rl.NewVector3(c.Position.X, c.Position.Y, c.Position.Z),
		Target:     rl.NewVector3(c.Target.X, c.Target.Y, c.Target.Z),
		Up:         rl.NewVector3(c.Up.X, c.Up.Y, c.Up.Z),
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}
