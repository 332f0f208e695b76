package stats

import (
	"testing"

	"mesh-creator/internal/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexedTriangles(t *testing.T) {
	for _, n := range []int{1, 2, 17, 500} {
		pos := make([]float32, 3*3)
		index := make([]uint32, 0, 3*n)
		for i := 0; i < n; i++ {
			index = append(index, 0, 1, 2)
		}
		g, err := geom.NewBufferGeometry(pos, index)
		require.NoError(t, err)
		s := Compute(geom.NewMesh(g, nil))
		assert.Equal(t, n, s.Faces)
		assert.Equal(t, 3, s.Vertices)
	}
}

func TestNonIndexedFloor(t *testing.T) {
	for _, l := range []int{0, 1, 2, 3, 4, 8, 9, 100} {
		g, err := geom.NewBufferGeometry(make([]float32, 3*l), nil)
		require.NoError(t, err)
		s := Compute(geom.NewMesh(g, nil))
		assert.Equal(t, l/3, s.Faces, "length %d", l)
		assert.Equal(t, l, s.Vertices)
	}
}

func TestFloorAfterSum(t *testing.T) {
	// Two meshes of 2 vertices each: 2/3 + 2/3 floors to 1, not 0.
	root := geom.NewGroup()
	for i := 0; i < 2; i++ {
		g, err := geom.NewBufferGeometry(make([]float32, 6), nil)
		require.NoError(t, err)
		root.Add(geom.NewMesh(g, nil))
	}
	assert.Equal(t, Stats{Vertices: 4, Faces: 1}, Compute(root))
}

func TestNestedGroups(t *testing.T) {
	root := geom.NewGroup()
	mid := geom.NewGroup()
	leaf := geom.NewGroup()
	leaf.Add(geom.NewMesh(geom.NewBoxGeometry(1, 1, 1), nil))
	mid.Add(leaf, geom.NewMesh(geom.NewPlaneGeometry(1, 1), nil))
	root.Add(mid, geom.NewMesh(geom.NewBoxGeometry(1, 1, 1), nil))

	assert.Equal(t, Stats{Vertices: 24 + 4 + 24, Faces: 12 + 2 + 12}, Compute(root))
}

func TestEmpty(t *testing.T) {
	assert.Equal(t, Stats{}, Compute(geom.NewGroup()))
	assert.Equal(t, "Vertices: 0, Faces: 0", Stats{}.String())
}
