// Package stats derives vertex and face counts from a generated hierarchy.
package stats

import (
	"fmt"
	"math"

	"mesh-creator/internal/geom"
)

// Stats are the summary counts shown in the mesh info panel.
type Stats struct {
	Vertices int
	Faces    int
}

// String formats the counts the way the sidebar shows them.
func (s Stats) String() string {
	return fmt.Sprintf("Vertices: %d, Faces: %d", s.Vertices, s.Faces)
}

// Compute walks root depth first and sums every mesh: vertices from the
// position attribute, faces from index/3 when indexed and vertices/3
// otherwise. The face total is floored once, after summing.
func Compute(root geom.Object3D) Stats {
	var vertices int
	var faces float64
	geom.Traverse(root, func(o geom.Object3D) {
		m, ok := o.(*geom.Mesh)
		if !ok || m.Geometry == nil {
			return
		}
		vertices += m.Geometry.VertexCount()
		faces += m.Geometry.FaceCount()
	})
	return Stats{Vertices: vertices, Faces: int(math.Floor(faces))}
}
