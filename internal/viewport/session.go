// Package viewport owns the viewport session: the scene, the generated mesh,
// the camera and its controls, the mesh statistics and the status line. A
// Session drives a Backend that does the actual drawing.
package viewport

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"mesh-creator/internal/camera"
	"mesh-creator/internal/geom"
	"mesh-creator/internal/sandbox"
	"mesh-creator/internal/stats"
)

// Status lines set by the session itself.
const (
	StatusReady      = "Ready"
	StatusGenerating = "Generating mesh..."
	StatusGenerated  = "Mesh generated"
	errorPrefix      = "Error: "
)

var (
	// ErrClosed is returned by operations on a closed session.
	ErrClosed = errors.New("viewport closed")
	// ErrNotInitialized is returned by Run before Init.
	ErrNotInitialized = errors.New("viewport not initialized")
	// ErrSuperseded is returned by a Generate whose result was dropped
	// because a later Generate started before it finished.
	ErrSuperseded = errors.New("generate superseded")
)

// Runner executes user code. *sandbox.Sandbox implements it.
type Runner interface {
	Run(ctx context.Context, code string) (*sandbox.Result, error)
}

// Logger receives every status change.
type Logger interface {
	Log(line string)
}

// Options configure a Session.
type Options struct {
	Runner Runner
	// Log is optional.
	Log Logger
	// Fovy is the vertical field of view in degrees. Zero means camera.DefaultFovy.
	Fovy          float32
	EnableDamping bool
	// DampingFactor zero means camera.DefaultDampingFactor.
	DampingFactor float32
	Background    uint32
	GridVisible   bool
	// FallbackCode runs when Generate is given blank code.
	FallbackCode string
}

// Snapshot is a copy of the session state for display.
type Snapshot struct {
	Status string
	Stats  stats.Stats
	// HasMesh is false until the first successful Generate.
	HasMesh bool
	// Objects is the number of generated hierarchies in the scene, 0 or 1.
	Objects     int
	Generation  uint64
	Camera      camera.Camera
	Width       int
	Height      int
	GridVisible bool
	// Busy is true while a Generate is running.
	Busy bool
}

// IsError reports whether the status line describes a failure.
func (s Snapshot) IsError() bool {
	return strings.Contains(s.Status, "Error")
}

// Session is the single viewport session. All methods are safe for
// concurrent use; Generate may run on any goroutine while the render loop
// calls Tick.
type Session struct {
	backend Backend
	opts    Options

	mu          sync.Mutex
	scene       *geom.Group
	current     *geom.Group
	generation  uint64
	stats       stats.Stats
	status      string
	cam         camera.Camera
	controls    *camera.OrbitControls
	width       int
	height      int
	grid        bool
	inflight    int
	initialized bool
	closed      bool
	unsubscribe func()

	runs atomic.Uint64
}

// New returns a session drawing through backend. Call Init before Tick or Run.
func New(backend Backend, opts Options) *Session {
	if opts.Fovy <= 0 {
		opts.Fovy = camera.DefaultFovy
	}
	if opts.DampingFactor <= 0 {
		opts.DampingFactor = camera.DefaultDampingFactor
	}
	s := &Session{
		backend: backend,
		opts:    opts,
		scene:   geom.NewGroup(),
		grid:    opts.GridVisible,
		status:  StatusReady,
	}
	s.cam = s.defaultCamera(1)
	s.controls = camera.NewOrbitControls(&s.cam)
	s.controls.EnableDamping = opts.EnableDamping
	s.controls.DampingFactor = opts.DampingFactor
	return s
}

func (s *Session) defaultCamera(aspect float32) camera.Camera {
	c := camera.New(aspect)
	c.Fovy = s.opts.Fovy
	return c
}

// Init sizes the surface, sets the camera aspect and subscribes to backend
// resize events.
func (s *Session) Init(width, height int) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.initialized {
		s.mu.Unlock()
		return nil
	}
	s.initialized = true
	s.mu.Unlock()

	s.Resize(width, height)
	unsubscribe := s.backend.OnResize(s.Resize)

	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.mu.Unlock()
	return nil
}

// Resize sets the surface size and the camera aspect to width/height.
// Non-positive dimensions are ignored.
func (s *Session) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.width, s.height = width, height
	s.cam.SetAspect(width, height)
	s.mu.Unlock()
	s.backend.SetSize(width, height)
}

// Tick advances the controls by one frame and renders.
func (s *Session) Tick() {
	s.mu.Lock()
	if s.closed || !s.initialized {
		s.mu.Unlock()
		return
	}
	if s.controls.Pending() {
		s.controls.Update()
	}
	f := s.frameLocked()
	s.mu.Unlock()
	s.backend.Render(f)
}

func (s *Session) frameLocked() Frame {
	return Frame{
		Camera:     s.cam,
		Mesh:       s.current,
		Generation: s.generation,
		Background: s.opts.Background,
		Lighting:   DefaultLighting(),
		Grid:       Grid{Visible: s.grid, Size: 10, Divisions: 10, Opacity: 0.2},
		Width:      s.width,
		Height:     s.height,
	}
}

// Run ticks until the backend asks to close (returning nil) or ctx is done
// (returning its error).
func (s *Session) Run(ctx context.Context) error {
	s.mu.Lock()
	closed, initialized := s.closed, s.initialized
	s.mu.Unlock()
	switch {
	case closed:
		return ErrClosed
	case !initialized:
		return ErrNotInitialized
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.backend.ShouldClose() {
			return nil
		}
		s.Tick()
	}
}

// Close detaches the resize listener and releases the backend. Calling it
// again does nothing.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	return s.backend.Close()
}

// Generate runs code and, on success, replaces the generated mesh, updates
// the statistics and fits the camera to the new content. On failure the
// previous mesh, statistics and camera stay as they were and the status
// line carries the error. Blank code runs Options.FallbackCode.
func (s *Session) Generate(ctx context.Context, code string) error {
	if strings.TrimSpace(code) == "" && s.opts.FallbackCode != "" {
		code = s.opts.FallbackCode
	}
	ticket := s.runs.Add(1)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.inflight++
	s.setStatusLocked(StatusGenerating)
	s.mu.Unlock()

	res, err := s.opts.Runner.Run(ctx, code)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if s.runs.Load() != ticket {
		return ErrSuperseded
	}
	if err != nil {
		s.setStatusLocked(errorPrefix + err.Error())
		return err
	}

	if s.current != nil {
		s.scene.Remove(s.current)
	}
	s.current = res.Output
	s.scene.Add(s.current)
	s.generation++
	s.stats = stats.Compute(s.current)
	s.fitLocked()

	status := res.LastLog()
	if status == "" {
		status = StatusGenerated
	}
	s.setStatusLocked(status)
	return nil
}

func (s *Session) fitLocked() {
	if s.current == nil {
		return
	}
	box := geom.BoundingBox(s.current)
	if box.IsEmpty() {
		return
	}
	center := s.cam.Fit(box)
	s.controls.SetTarget(center)
}

// SetStatus replaces the status line.
func (s *Session) SetStatus(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setStatusLocked(msg)
}

// SetError sets the status line to "Error: " followed by msg.
func (s *Session) SetError(msg string) {
	s.SetStatus(errorPrefix + msg)
}

func (s *Session) setStatusLocked(msg string) {
	s.status = msg
	if s.opts.Log != nil {
		s.opts.Log.Log(msg)
	}
}

// SetGridVisible shows or hides the ground grid.
func (s *Session) SetGridVisible(visible bool) {
	s.mu.Lock()
	s.grid = visible
	s.mu.Unlock()
}

// Orbit queues camera motion: rotation in radians, a zoom factor (1 for
// none) and a pan in world units. It is applied on the next Tick.
func (s *Session) Orbit(rotateLeft, rotateUp, zoom, panRight, panUp float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rotateLeft != 0 || rotateUp != 0 {
		s.controls.Rotate(rotateLeft, rotateUp)
	}
	if zoom != 1 && zoom > 0 {
		s.controls.Zoom(zoom)
	}
	if panRight != 0 || panUp != 0 {
		s.controls.Pan(panRight, panUp)
	}
}

// ResetCamera restores the default camera and refits it to the current mesh.
func (s *Session) ResetCamera() {
	s.mu.Lock()
	defer s.mu.Unlock()
	aspect := s.cam.Aspect
	s.cam = s.defaultCamera(aspect)
	s.controls = camera.NewOrbitControls(&s.cam)
	s.controls.EnableDamping = s.opts.EnableDamping
	s.controls.DampingFactor = s.opts.DampingFactor
	s.fitLocked()
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Status:      s.status,
		Stats:       s.stats,
		HasMesh:     s.current != nil,
		Objects:     s.scene.Len(),
		Generation:  s.generation,
		Camera:      s.cam,
		Width:       s.width,
		Height:      s.height,
		GridVisible: s.grid,
		Busy:        s.inflight > 0,
	}
}
