package viewport

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"mesh-creator/internal/camera"
	"mesh-creator/internal/geom"
	"mesh-creator/internal/sandbox"
	"mesh-creator/internal/stats"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu           sync.Mutex
	width        int
	height       int
	frames       []Frame
	resize       func(int, int)
	unsubscribed int
	closed       int
	closeAfter   int
}

func (b *fakeBackend) SetSize(w, h int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width, b.height = w, h
}

func (b *fakeBackend) Render(f Frame) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frames = append(b.frames, f)
}

func (b *fakeBackend) ShouldClose() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closeAfter > 0 && len(b.frames) >= b.closeAfter
}

func (b *fakeBackend) OnResize(fn func(int, int)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resize = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.resize = nil
		b.unsubscribed++
	}
}

func (b *fakeBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed++
	return nil
}

// fireResize simulates the window being resized by the user.
func (b *fakeBackend) fireResize(w, h int) bool {
	b.mu.Lock()
	fn := b.resize
	b.mu.Unlock()
	if fn == nil {
		return false
	}
	fn(w, h)
	return true
}

func (b *fakeBackend) lastFrame() Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frames[len(b.frames)-1]
}

type recordingLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLog) Log(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
}

func boxScript(size string) string {
	return `generatedMesh.Add(three.NewMesh(three.NewBoxGeometry(` + size + `, ` + size + `, ` + size + `), nil))`
}

const cubeWithLog = `
generatedMesh.Add(three.NewMesh(three.NewBoxGeometry(1, 1, 1), nil))
logStatus("Created a cube")
`

func newSession(t *testing.T, opts Options) (*Session, *fakeBackend) {
	t.Helper()
	if opts.Runner == nil {
		opts.Runner = sandbox.New(sandbox.Options{})
	}
	b := &fakeBackend{}
	s := New(b, opts)
	require.NoError(t, s.Init(800, 600))
	t.Cleanup(func() { _ = s.Close() })
	return s, b
}

func TestGenerateTwiceKeepsOneHierarchy(t *testing.T) {
	s, b := newSession(t, Options{})
	ctx := context.Background()

	require.NoError(t, s.Generate(ctx, cubeWithLog))
	s.Tick()
	first := b.lastFrame()

	require.NoError(t, s.Generate(ctx, cubeWithLog))
	s.Tick()
	second := b.lastFrame()

	snap := s.Snapshot()
	assert.Equal(t, 1, snap.Objects)
	assert.Equal(t, uint64(2), snap.Generation)
	assert.Equal(t, stats.Stats{Vertices: 24, Faces: 12}, snap.Stats)
	assert.NotSame(t, first.Mesh, second.Mesh)
	assert.NotEqual(t, first.Generation, second.Generation)
}

func TestFailedGenerateKeepsPreviousMesh(t *testing.T) {
	s, _ := newSession(t, Options{})
	ctx := context.Background()

	require.NoError(t, s.Generate(ctx, cubeWithLog))
	before := s.Snapshot()

	err := s.Generate(ctx, `panic("boom")`)
	var execErr *sandbox.ExecError
	require.ErrorAs(t, err, &execErr)

	after := s.Snapshot()
	assert.True(t, after.IsError())
	assert.Contains(t, after.Status, "boom")
	assert.Equal(t, before.Stats, after.Stats)
	assert.Equal(t, before.Generation, after.Generation)
	assert.Equal(t, before.Camera, after.Camera)
	assert.Equal(t, 1, after.Objects)
}

func TestEmptyOutputIsAnError(t *testing.T) {
	s, _ := newSession(t, Options{})
	err := s.Generate(context.Background(), `x := 1; _ = x`)
	require.ErrorIs(t, err, sandbox.ErrNoMesh)
	snap := s.Snapshot()
	assert.Equal(t, "Error: no mesh generated", snap.Status)
	assert.False(t, snap.HasMesh)
	assert.Zero(t, snap.Objects)
}

func TestStatusMessages(t *testing.T) {
	log := &recordingLog{}
	s, _ := newSession(t, Options{Log: log})
	ctx := context.Background()
	assert.Equal(t, StatusReady, s.Snapshot().Status)

	require.NoError(t, s.Generate(ctx, cubeWithLog))
	assert.Equal(t, "Created a cube", s.Snapshot().Status)

	require.NoError(t, s.Generate(ctx, boxScript("1")))
	assert.Equal(t, StatusGenerated, s.Snapshot().Status)
	assert.False(t, s.Snapshot().IsError())

	assert.Equal(t, []string{StatusGenerating, "Created a cube", StatusGenerating, StatusGenerated}, log.lines)
}

func TestBlankCodeRunsFallback(t *testing.T) {
	s, _ := newSession(t, Options{FallbackCode: cubeWithLog})
	require.NoError(t, s.Generate(context.Background(), "  \n\t"))
	assert.Equal(t, 24, s.Snapshot().Stats.Vertices)
}

func TestFitScalesLinearly(t *testing.T) {
	s, _ := newSession(t, Options{})
	ctx := context.Background()

	require.NoError(t, s.Generate(ctx, boxScript("1")))
	cam1 := s.Snapshot().Camera
	require.NoError(t, s.Generate(ctx, boxScript("3")))
	cam3 := s.Snapshot().Camera

	want := 1 / math32.Sin(math32.DegToRad(camera.DefaultFovy)/2) * camera.FitPadding
	assert.InDelta(t, want, cam1.Distance(), 1e-4)
	assert.InDelta(t, 3*cam1.Distance(), cam3.Distance(), 1e-4)
	assert.Equal(t, math32.Vector3{}, cam3.Target)
}

func TestFitTargetsCenter(t *testing.T) {
	s, _ := newSession(t, Options{})
	code := `m := three.NewMesh(three.NewBoxGeometry(2, 2, 2), nil)
m.SetPosition(4, 1, -2)
generatedMesh.Add(m)`
	require.NoError(t, s.Generate(context.Background(), code))
	cam := s.Snapshot().Camera
	assert.InDelta(t, 4, cam.Target.X, 1e-5)
	assert.InDelta(t, 1, cam.Target.Y, 1e-5)
	assert.InDelta(t, -2, cam.Target.Z, 1e-5)
	assert.InDelta(t, cam.Target.X, cam.Position.X, 1e-5)
	assert.InDelta(t, cam.Target.Y, cam.Position.Y, 1e-5)
}

func TestResize(t *testing.T) {
	s, b := newSession(t, Options{})
	assert.Equal(t, float32(800)/float32(600), s.Snapshot().Camera.Aspect)

	s.Resize(1024, 512)
	snap := s.Snapshot()
	assert.Equal(t, 1024, b.width)
	assert.Equal(t, 512, b.height)
	assert.Equal(t, float32(2), snap.Camera.Aspect)

	s.Resize(300, 0)
	assert.Equal(t, float32(2), s.Snapshot().Camera.Aspect)
	assert.Equal(t, 512, b.height)

	require.True(t, b.fireResize(640, 480))
	snap = s.Snapshot()
	assert.Equal(t, 640, snap.Width)
	assert.Equal(t, 480, snap.Height)
	assert.Equal(t, float32(640)/float32(480), snap.Camera.Aspect)

	s.Tick()
	f := b.lastFrame()
	assert.Equal(t, 640, f.Width)
	assert.Equal(t, float32(640)/float32(480), f.Camera.Aspect)
}

func TestCloseIsIdempotentAndDetaches(t *testing.T) {
	s, b := newSession(t, Options{})
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.Equal(t, 1, b.closed)
	assert.Equal(t, 1, b.unsubscribed)
	assert.False(t, b.fireResize(100, 100))

	assert.ErrorIs(t, s.Run(context.Background()), ErrClosed)
	assert.ErrorIs(t, s.Generate(context.Background(), cubeWithLog), ErrClosed)
	assert.ErrorIs(t, s.Init(10, 10), ErrClosed)

	n := len(b.frames)
	s.Tick()
	assert.Len(t, b.frames, n)
}

func TestRunStopsWhenBackendCloses(t *testing.T) {
	s, b := newSession(t, Options{})
	b.closeAfter = 3
	require.NoError(t, s.Run(context.Background()))
	assert.Len(t, b.frames, 3)
}

func TestRunStopsOnCancel(t *testing.T) {
	s, _ := newSession(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
}

func TestRunBeforeInit(t *testing.T) {
	s := New(&fakeBackend{}, Options{Runner: sandbox.New(sandbox.Options{})})
	assert.ErrorIs(t, s.Run(context.Background()), ErrNotInitialized)
}

func TestFrameScene(t *testing.T) {
	s, b := newSession(t, Options{GridVisible: true, Background: 0x1a1a1a})
	s.Tick()
	f := b.lastFrame()
	assert.Nil(t, f.Mesh)
	assert.Equal(t, uint32(0x1a1a1a), f.Background)
	assert.Equal(t, Grid{Visible: true, Size: 10, Divisions: 10, Opacity: 0.2}, f.Grid)
	assert.Equal(t, DefaultLighting(), f.Lighting)
	assert.Equal(t, float32(75), f.Camera.Fovy)
	assert.Equal(t, math32.Vec3(0, 0, 5), f.Camera.Position)

	s.SetGridVisible(false)
	s.Tick()
	assert.False(t, b.lastFrame().Grid.Visible)
}

func TestOrbitAndReset(t *testing.T) {
	s, _ := newSession(t, Options{})
	require.NoError(t, s.Generate(context.Background(), boxScript("1")))
	fitted := s.Snapshot().Camera

	s.Orbit(0.5, 0, 1, 0, 0)
	s.Tick()
	moved := s.Snapshot().Camera
	assert.NotEqual(t, fitted.Position, moved.Position)
	assert.InDelta(t, fitted.Distance(), moved.Distance(), 1e-4)

	s.ResetCamera()
	reset := s.Snapshot().Camera
	assert.InDelta(t, fitted.Position.Z, reset.Position.Z, 1e-5)
	assert.InDelta(t, 0, reset.Position.X, 1e-5)
}

// blockingRunner hands every call to the test, which decides when and how
// it completes.
type blockingRunner struct {
	calls chan *pendingRun
}

type pendingRun struct {
	code   string
	result chan *sandbox.Result
}

func (r *blockingRunner) Run(ctx context.Context, code string) (*sandbox.Result, error) {
	p := &pendingRun{code: code, result: make(chan *sandbox.Result)}
	r.calls <- p
	select {
	case res := <-p.result:
		return res, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func resultWith(g *geom.BufferGeometry) *sandbox.Result {
	out := geom.NewGroup()
	out.Add(geom.NewMesh(g, nil))
	return &sandbox.Result{Output: out}
}

func TestSlowGenerateIsSuperseded(t *testing.T) {
	r := &blockingRunner{calls: make(chan *pendingRun)}
	s, _ := newSession(t, Options{Runner: r})
	ctx := context.Background()

	firstErr := make(chan error, 1)
	go func() { firstErr <- s.Generate(ctx, "first") }()
	first := <-r.calls
	require.Equal(t, "first", first.code)
	assert.True(t, s.Snapshot().Busy)

	secondErr := make(chan error, 1)
	go func() { secondErr <- s.Generate(ctx, "second") }()
	second := <-r.calls
	require.Equal(t, "second", second.code)

	first.result <- resultWith(geom.NewBoxGeometry(1, 1, 1))
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(5 * time.Second):
		t.Fatal("first generate did not return")
	}
	assert.False(t, s.Snapshot().HasMesh)

	second.result <- resultWith(geom.NewPlaneGeometry(1, 1))
	require.NoError(t, <-secondErr)

	snap := s.Snapshot()
	assert.Equal(t, stats.Stats{Vertices: 4, Faces: 2}, snap.Stats)
	assert.Equal(t, 1, snap.Objects)
	assert.False(t, snap.Busy)
}

func TestSetError(t *testing.T) {
	s, _ := newSession(t, Options{})
	s.SetError(errors.New("preset not found: ring").Error())
	snap := s.Snapshot()
	assert.Equal(t, "Error: preset not found: ring", snap.Status)
	assert.True(t, snap.IsError())
}
