package geom

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// Attribute is a flat vertex attribute array. ItemSize is the number of
// components per vertex (3 for positions and normals, 2 for uvs).
type Attribute struct {
	Array    []float32
	ItemSize int
}

// Count returns the number of vertices stored in the attribute.
func (a Attribute) Count() int {
	if a.ItemSize <= 0 {
		return 0
	}
	return len(a.Array) / a.ItemSize
}

// BufferGeometry stores vertex attributes in flat arrays plus an optional
// index array for triangle reuse. A nil Index means every three consecutive
// vertices form a triangle.
type BufferGeometry struct {
	Position Attribute
	Normal   Attribute
	UV       Attribute
	Index    []uint32
}

// NewBufferGeometry builds a geometry from raw xyz positions and an optional
// triangle index. It returns an error when positions is not a multiple of
// three or an index references a missing vertex.
func NewBufferGeometry(positions []float32, index []uint32) (*BufferGeometry, error) {
	if len(positions)%3 != 0 {
		return nil, fmt.Errorf("position array length %d is not a multiple of 3", len(positions))
	}
	n := uint32(len(positions) / 3)
	for i, ix := range index {
		if ix >= n {
			return nil, fmt.Errorf("index %d at %d out of range (%d vertices)", ix, i, n)
		}
	}
	g := &BufferGeometry{
		Position: Attribute{Array: append([]float32(nil), positions...), ItemSize: 3},
	}
	if index != nil {
		g.Index = append([]uint32(nil), index...)
	}
	return g, nil
}

// VertexCount returns the number of vertices in the position attribute.
func (g *BufferGeometry) VertexCount() int {
	return g.Position.Count()
}

// IndexCount returns the length of the index buffer, 0 when non-indexed.
func (g *BufferGeometry) IndexCount() int {
	return len(g.Index)
}

// IsIndexed reports whether the geometry has an index buffer.
func (g *BufferGeometry) IsIndexed() bool {
	return g.Index != nil
}

// FaceCount returns index/3 for indexed geometry and vertices/3 otherwise.
// The value is left unfloored so callers summing several meshes floor once.
func (g *BufferGeometry) FaceCount() float64 {
	if g.IsIndexed() {
		return float64(len(g.Index)) / 3
	}
	return float64(g.VertexCount()) / 3
}

// Vertex returns the i-th position.
func (g *BufferGeometry) Vertex(i int) math32.Vector3 {
	a := g.Position.Array[i*3 : i*3+3]
	return math32.Vec3(a[0], a[1], a[2])
}

// BoundingBox returns the local-space bounding box of the positions.
func (g *BufferGeometry) BoundingBox() math32.Box3 {
	box := math32.B3Empty()
	for i := 0; i < g.VertexCount(); i++ {
		box.ExpandByPoint(g.Vertex(i))
	}
	return box
}

// ToNonIndexed returns a copy where every triangle owns its three vertices.
// A geometry that is already non-indexed is copied as is.
func (g *BufferGeometry) ToNonIndexed() *BufferGeometry {
	if !g.IsIndexed() {
		return &BufferGeometry{
			Position: cloneAttr(g.Position),
			Normal:   cloneAttr(g.Normal),
			UV:       cloneAttr(g.UV),
		}
	}
	return &BufferGeometry{
		Position: expand(g.Position, g.Index),
		Normal:   expand(g.Normal, g.Index),
		UV:       expand(g.UV, g.Index),
	}
}

func cloneAttr(a Attribute) Attribute {
	return Attribute{Array: append([]float32(nil), a.Array...), ItemSize: a.ItemSize}
}

func expand(a Attribute, index []uint32) Attribute {
	if a.Count() == 0 {
		return Attribute{ItemSize: a.ItemSize}
	}
	out := make([]float32, 0, len(index)*a.ItemSize)
	for _, ix := range index {
		off := int(ix) * a.ItemSize
		out = append(out, a.Array[off:off+a.ItemSize]...)
	}
	return Attribute{Array: out, ItemSize: a.ItemSize}
}

// builder accumulates vertices and indices for the shape generators.
type builder struct {
	pos, norm, uv []float32
	index         []uint32
}

func (b *builder) vertex(x, y, z, nx, ny, nz, u, v float32) uint32 {
	i := uint32(len(b.pos) / 3)
	b.pos = append(b.pos, x, y, z)
	b.norm = append(b.norm, nx, ny, nz)
	b.uv = append(b.uv, u, v)
	return i
}

func (b *builder) tri(a, c, d uint32) {
	b.index = append(b.index, a, c, d)
}

func (b *builder) count() uint32 {
	return uint32(len(b.pos) / 3)
}

func (b *builder) geometry() *BufferGeometry {
	return &BufferGeometry{
		Position: Attribute{Array: b.pos, ItemSize: 3},
		Normal:   Attribute{Array: b.norm, ItemSize: 3},
		UV:       Attribute{Array: b.uv, ItemSize: 2},
		Index:    b.index,
	}
}

func normalize(x, y, z float32) (float32, float32, float32) {
	l := math32.Sqrt(x*x + y*y + z*z)
	if l == 0 {
		return 0, 0, 0
	}
	return x / l, y / l, z / l
}
