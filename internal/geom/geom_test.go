package geom

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeCounts(t *testing.T) {
	tests := []struct {
		name     string
		geometry *BufferGeometry
		vertices int
		faces    float64
	}{
		{"box", NewBoxGeometry(1, 1, 1), 24, 12},
		{"sphere", NewSphereGeometry(1, 64, 48), 65 * 49, 64*48*2 - 2*64},
		{"cylinder", NewCylinderGeometry(0.5, 0.5, 2, 32), 66 + 2*65, 64 + 2*32},
		{"cone", NewCylinderGeometry(0, 1, 2, 8), 18 + 17, 8 + 8},
		{"torus", NewTorusGeometry(1, 0.4, 32, 100), 33 * 101, 32 * 100 * 2},
		{"plane", NewPlaneGeometry(2, 3), 4, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.geometry
			assert.Equal(t, tt.vertices, g.VertexCount())
			assert.Equal(t, tt.faces, g.FaceCount())
			assert.Equal(t, g.VertexCount(), g.Normal.Count())
			assert.Equal(t, g.VertexCount(), g.UV.Count())
			for _, ix := range g.Index {
				require.Less(t, int(ix), g.VertexCount())
			}
		})
	}
}

func TestSegmentClamping(t *testing.T) {
	s := NewSphereGeometry(1, 0, 0)
	assert.Equal(t, 4*3, s.VertexCount())
	tor := NewTorusGeometry(1, 0.2, 0, 0)
	assert.Equal(t, 3*4, tor.VertexCount())
}

func TestBoxBounds(t *testing.T) {
	box := NewBoxGeometry(2, 4, 6).BoundingBox()
	assert.Equal(t, math32.Vec3(-1, -2, -3), box.Min)
	assert.Equal(t, math32.Vec3(1, 2, 3), box.Max)
}

func TestNewBufferGeometry(t *testing.T) {
	_, err := NewBufferGeometry([]float32{0, 0}, nil)
	assert.Error(t, err)

	_, err = NewBufferGeometry([]float32{0, 0, 0}, []uint32{0, 1, 0})
	assert.Error(t, err)

	g, err := NewBufferGeometry(make([]float32, 3*7), nil)
	require.NoError(t, err)
	assert.False(t, g.IsIndexed())
	assert.InDelta(t, 7.0/3, g.FaceCount(), 1e-9)
}

func TestToNonIndexed(t *testing.T) {
	g := NewBoxGeometry(1, 1, 1)
	flat := g.ToNonIndexed()
	assert.False(t, flat.IsIndexed())
	assert.Equal(t, 36, flat.VertexCount())
	assert.Equal(t, g.FaceCount(), flat.FaceCount())
	assert.Equal(t, g.BoundingBox(), flat.BoundingBox())
}

func TestTraverseNested(t *testing.T) {
	root := NewGroup()
	inner := NewGroup()
	a := NewMesh(NewBoxGeometry(1, 1, 1), nil)
	b := NewMesh(NewPlaneGeometry(1, 1), nil)
	inner.Add(b)
	root.Add(a, inner, nil)

	var visited []Object3D
	Traverse(root, func(o Object3D) { visited = append(visited, o) })
	assert.Equal(t, []Object3D{root, a, inner, b}, visited)
}

func TestGroupRemove(t *testing.T) {
	g := NewGroup()
	m := NewMesh(NewPlaneGeometry(1, 1), nil)
	g.Add(m)
	assert.True(t, g.Remove(m))
	assert.False(t, g.Remove(m))
	assert.Equal(t, 0, g.Len())
}

func TestBoundingBoxTransforms(t *testing.T) {
	root := NewGroup()
	root.SetPosition(10, 0, 0)
	child := NewGroup()
	child.SetScale(2, 2, 2)
	m := NewMesh(NewBoxGeometry(1, 1, 1), nil)
	m.SetPosition(0, 1, 0)
	child.Add(m)
	root.Add(child)

	box := BoundingBox(root)
	assert.InDelta(t, 9, box.Min.X, 1e-5)
	assert.InDelta(t, 11, box.Max.X, 1e-5)
	assert.InDelta(t, 1, box.Min.Y, 1e-5)
	assert.InDelta(t, 3, box.Max.Y, 1e-5)
}

func TestBoundingBoxRotation(t *testing.T) {
	m := NewMesh(NewBoxGeometry(4, 1, 1), nil)
	m.SetRotation(0, 0, math32.Pi/2)
	box := BoundingBox(m)
	size := box.Size()
	assert.InDelta(t, 1, size.X, 1e-5)
	assert.InDelta(t, 4, size.Y, 1e-5)
}

func TestBoundingBoxEmpty(t *testing.T) {
	assert.True(t, BoundingBox(NewGroup()).IsEmpty())
}

func TestMaterialDefaults(t *testing.T) {
	m := NewMeshStandardMaterial(MaterialParams{Metalness: 3})
	assert.Equal(t, uint32(DefaultColor), m.Color)
	assert.Equal(t, float32(1), m.Roughness)
	assert.Equal(t, float32(1), m.Metalness)
	assert.Equal(t, float32(1), m.Opacity)

	m = NewMeshStandardMaterial(MaterialParams{Color: 0x00aaff, Roughness: 0.4})
	r, g, b := m.RGB()
	assert.Equal(t, [3]uint8{0, 0xaa, 0xff}, [3]uint8{r, g, b})
	assert.Equal(t, float32(0.4), m.Roughness)
}

func TestComputeVertexNormalsFlat(t *testing.T) {
	g, err := NewBufferGeometry([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, nil)
	require.NoError(t, err)
	g.ComputeVertexNormals()
	require.Equal(t, 3, g.Normal.Count())
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 1, g.Normal.Array[i*3+2], 1e-6)
	}
}

func TestComputeVertexNormalsSmooth(t *testing.T) {
	box := NewBoxGeometry(1, 1, 1)
	want := append([]float32(nil), box.Normal.Array...)
	box.ComputeVertexNormals()
	assert.InDeltaSlice(t, want, box.Normal.Array, 1e-5)
}
