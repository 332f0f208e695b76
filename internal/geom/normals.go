package geom

import "cogentcore.org/core/math32"

// ComputeVertexNormals fills the normal attribute from the triangles. An
// indexed geometry gets smooth normals, each vertex averaging the faces that
// share it; a non-indexed one gets flat per-face normals.
func (g *BufferGeometry) ComputeVertexNormals() {
	n := g.VertexCount()
	out := make([]float32, n*3)
	add := func(i int, v math32.Vector3) {
		out[i*3] += v.X
		out[i*3+1] += v.Y
		out[i*3+2] += v.Z
	}
	face := func(a, b, c int) {
		pa, pb, pc := g.Vertex(a), g.Vertex(b), g.Vertex(c)
		nrm := pc.Sub(pb).Cross(pa.Sub(pb))
		add(a, nrm)
		add(b, nrm)
		add(c, nrm)
	}
	if g.IsIndexed() {
		for i := 0; i+2 < len(g.Index); i += 3 {
			face(int(g.Index[i]), int(g.Index[i+1]), int(g.Index[i+2]))
		}
	} else {
		for i := 0; i+2 < n; i += 3 {
			face(i, i+1, i+2)
		}
	}
	for i := 0; i < n; i++ {
		out[i*3], out[i*3+1], out[i*3+2] = normalize(out[i*3], out[i*3+1], out[i*3+2])
	}
	g.Normal = Attribute{Array: out, ItemSize: 3}
}
