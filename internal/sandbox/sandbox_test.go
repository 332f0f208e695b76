package sandbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"mesh-creator/internal/geom"
	"mesh-creator/internal/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cubeScript = `// a cube
geometry := three.NewBoxGeometry(1, 1, 1)
material := three.NewMeshStandardMaterial(three.MaterialParams{
	Color:     0x00aaff,
	Roughness: 0.4,
	Metalness: 0.3,
})
generatedMesh.Add(three.NewMesh(geometry, material))
logStatus("Created a cube")
`

func TestRunCube(t *testing.T) {
	var seen []string
	sb := New(Options{OnLog: func(msg string) { seen = append(seen, msg) }})
	res, err := sb.Run(context.Background(), cubeScript)
	require.NoError(t, err)
	require.Equal(t, 1, res.Output.Len())

	m, ok := res.Output.Children()[0].(*geom.Mesh)
	require.True(t, ok)
	assert.Equal(t, uint32(0x00aaff), m.Material.Color)
	assert.Equal(t, stats.Stats{Vertices: 24, Faces: 12}, stats.Compute(res.Output))
	assert.Equal(t, []string{"Created a cube"}, res.Logs)
	assert.Equal(t, "Created a cube", res.LastLog())
	assert.Equal(t, []string{"Created a cube"}, seen)
}

func TestRunNestedGroupsAndStdlib(t *testing.T) {
	code := `
ring := three.NewGroup()
for i := 0; i < 4; i++ {
	m := three.NewMesh(three.NewSphereGeometry(0.2, 8, 6), nil)
	a := float64(i) * math.Pi / 2
	m.SetPosition(float32(math.Cos(a)), float32(math.Sin(a)), 0)
	m.Name = strings.ToUpper("ball")
	ring.Add(m)
}
generatedMesh.Add(ring)
`
	res, err := New(Options{}).Run(context.Background(), code)
	require.NoError(t, err)
	s := stats.Compute(res.Output)
	assert.Equal(t, 4*9*7, s.Vertices)
	assert.Empty(t, res.LastLog())
}

func TestRunOwnMain(t *testing.T) {
	code := `func main() {
	generatedMesh.Add(three.NewMesh(three.NewPlaneGeometry(1, 1), nil))
}`
	res, err := New(Options{}).Run(context.Background(), code)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Output.Len())
}

func TestRunPanic(t *testing.T) {
	_, err := New(Options{}).Run(context.Background(), `panic("boom")`)
	require.Error(t, err)
	var ee *ExecError
	assert.True(t, errors.As(err, &ee))
	assert.Contains(t, err.Error(), "boom")
}

func TestRunCompileError(t *testing.T) {
	_, err := New(Options{}).Run(context.Background(), `generatedMesh.Add(notDefined)`)
	require.Error(t, err)
	var ee *ExecError
	assert.True(t, errors.As(err, &ee))
	assert.Contains(t, err.Error(), "notDefined")
}

func TestRunRejectsImports(t *testing.T) {
	code := `import "os"

func main() {
	os.Exit(1)
}`
	_, err := New(Options{}).Run(context.Background(), code)
	assert.Error(t, err)
}

func TestRunEmptyOutput(t *testing.T) {
	_, err := New(Options{}).Run(context.Background(), `logStatus("nothing")`)
	assert.ErrorIs(t, err, ErrNoMesh)
}

func TestRunTimeout(t *testing.T) {
	sb := New(Options{Timeout: 100 * time.Millisecond})
	_, err := sb.Run(context.Background(), `for {}`)
	require.Error(t, err)
	var ee *ExecError
	assert.True(t, errors.As(err, &ee))
}

func TestFreshInterpreterPerRun(t *testing.T) {
	sb := New(Options{})
	first, err := sb.Run(context.Background(), cubeScript)
	require.NoError(t, err)
	second, err := sb.Run(context.Background(), cubeScript)
	require.NoError(t, err)
	assert.NotSame(t, first.Output, second.Output)
	assert.Equal(t, 1, second.Output.Len())
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "three.NewBoxGeometry")
	assert.Contains(t, names, "generatedMesh")
	assert.Contains(t, names, "logStatus")
	assert.IsIncreasing(t, names)
}

func TestRunRejectsGoStatements(t *testing.T) {
	var seen []string
	sb := New(Options{OnLog: func(msg string) { seen = append(seen, msg) }})
	code := `logStatus("started")
go func() { panic("from goroutine") }()
generatedMesh.Add(three.NewMesh(three.NewBoxGeometry(1, 1, 1), nil))`
	_, err := sb.Run(context.Background(), code)
	require.Error(t, err)
	var ee *ExecError
	assert.True(t, errors.As(err, &ee))
	assert.ErrorIs(t, err, ErrGoStatement)
	assert.Contains(t, err.Error(), "2:1")
	assert.Empty(t, seen, "nothing runs when a go statement is present")
}

func TestRunRecursionLimit(t *testing.T) {
	code := `var f func(n int) int
f = func(n int) int { return f(n+1) + 1 }
f(0)
generatedMesh.Add(three.NewMesh(three.NewBoxGeometry(1, 1, 1), nil))`
	_, err := New(Options{}).Run(context.Background(), code)
	require.Error(t, err)
	var ee *ExecError
	assert.True(t, errors.As(err, &ee))
	assert.Contains(t, err.Error(), ErrCallDepth.Error())
}

func TestRunBoundedRecursion(t *testing.T) {
	code := `var depth func(n int) int
depth = func(n int) int {
	if n == 0 {
		return 0
	}
	return depth(n-1) + 1
}
for i := 0; i < depth(100); i++ {
	generatedMesh.Add(three.NewMesh(three.NewBoxGeometry(1, 1, 1), nil))
}`
	res, err := New(Options{}).Run(context.Background(), code)
	require.NoError(t, err)
	assert.Equal(t, 100, res.Output.Len())
}

func TestInstrument(t *testing.T) {
	src := "func main() { x := func() int {\n\treturn 1\n}; _ = x }\n"
	got, err := instrument(src)
	require.NoError(t, err)
	assert.Equal(t, "func main() {"+guardCall+" x := func() int {"+guardCall+"\n\treturn 1\n}; _ = x }\n", got)

	_, err = instrument("func main() {\n\tgo println()\n}")
	assert.ErrorIs(t, err, ErrGoStatement)

	_, err = instrument("func main() {")
	assert.Error(t, err)
}
