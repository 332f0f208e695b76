package graphics

import (
	"mesh-creator/internal/geom"
	"mesh-creator/internal/viewport"

	"cogentcore.org/core/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// gpuMesh is one uploaded geometry. The Go slices back the raylib mesh's
// CPU-side pointers and must stay reachable while it is loaded.
type gpuMesh struct {
	mesh      rl.Mesh
	vertices  []float32
	normals   []float32
	texcoords []float32
}

// drawItem is one mesh node to draw: its geometry, world transform and material.
type drawItem struct {
	mesh      *gpuMesh
	transform rl.Matrix
	material  *geom.Material
}

// meshCache holds the GPU copy of the current generated group. It is rebuilt
// when the frame generation changes and the previous meshes are unloaded.
type meshCache struct {
	generation uint64
	loaded     bool
	byGeometry map[*geom.BufferGeometry]*gpuMesh
	items      []drawItem
	mtl        rl.Material
	hasMtl     bool
}

func newMeshCache() *meshCache {
	return &meshCache{byGeometry: make(map[*geom.BufferGeometry]*gpuMesh)}
}

// sync uploads root if generation moved since the last call.
func (c *meshCache) sync(root *geom.Group, generation uint64) {
	if c.loaded && c.generation == generation {
		return
	}
	c.unloadMeshes()
	c.generation = generation
	c.loaded = true
	if root == nil {
		return
	}
	c.collect(root, rl.MatrixIdentity())
}

// collect walks the hierarchy composing transforms child to parent.
func (c *meshCache) collect(obj geom.Object3D, parent rl.Matrix) {
	world := rl.MatrixMultiply(localMatrix(obj.Object()), parent)
	switch o := obj.(type) {
	case *geom.Mesh:
		if o.Geometry == nil || o.Geometry.VertexCount() == 0 {
			return
		}
		gm, ok := c.byGeometry[o.Geometry]
		if !ok {
			gm = upload(o.Geometry)
			c.byGeometry[o.Geometry] = gm
		}
		c.items = append(c.items, drawItem{mesh: gm, transform: world, material: o.Material})
	case *geom.Group:
		for _, child := range o.Children() {
			c.collect(child, world)
		}
	}
}

// localMatrix is scale, then rotation about Z, Y and X (Euler XYZ), then translation.
func localMatrix(n *geom.Node) rl.Matrix {
	m := rl.MatrixScale(n.Scale.X, n.Scale.Y, n.Scale.Z)
	m = rl.MatrixMultiply(m, rl.MatrixRotateZ(n.Rotation.Z))
	m = rl.MatrixMultiply(m, rl.MatrixRotateY(n.Rotation.Y))
	m = rl.MatrixMultiply(m, rl.MatrixRotateX(n.Rotation.X))
	return rl.MatrixMultiply(m, rl.MatrixTranslate(n.Position.X, n.Position.Y, n.Position.Z))
}

// upload converts g to a non-indexed raylib mesh. raylib indices are 16 bit,
// so expanding avoids the 65535 vertex limit. Missing normals are computed flat.
func upload(g *geom.BufferGeometry) *gpuMesh {
	flat := g.ToNonIndexed()
	if flat.Normal.Count() != flat.VertexCount() {
		flat.ComputeVertexNormals()
	}
	n := flat.VertexCount()
	gm := &gpuMesh{
		vertices: flat.Position.Array,
		normals:  flat.Normal.Array,
	}
	if flat.UV.Count() == n {
		gm.texcoords = flat.UV.Array
	} else {
		gm.texcoords = make([]float32, n*2)
	}
	gm.mesh = rl.Mesh{
		VertexCount:   int32(n),
		TriangleCount: int32(n / 3),
		Vertices:      &gm.vertices[0],
		Normals:       &gm.normals[0],
		Texcoords:     &gm.texcoords[0],
	}
	rl.UploadMesh(&gm.mesh, false)
	return gm
}

// draw renders every item with the lit material.
func (c *meshCache) draw(eye math32.Vector3, light viewport.Lighting) {
	if len(c.items) == 0 {
		return
	}
	c.ensureMaterial()
	for _, it := range c.items {
		m := it.material
		if m == nil {
			m = geom.NewMeshStandardMaterial(geom.MaterialParams{})
		}
		if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
			albedo.Color = hexColor(m.Color, m.Opacity)
		}
		setLitUniforms(c.mtl.Shader, eye, light, m)
		if m.Wireframe {
			rl.EnableWireMode()
		}
		rl.DrawMesh(it.mesh.mesh, c.mtl, it.transform)
		if m.Wireframe {
			rl.DisableWireMode()
		}
	}
}

func (c *meshCache) ensureMaterial() {
	if c.hasMtl {
		return
	}
	c.mtl = rl.LoadMaterialDefault()
	if shader := loadLitShader(); rl.IsShaderValid(shader) {
		c.mtl.Shader = shader
	}
	c.hasMtl = true
}

func (c *meshCache) unloadMeshes() {
	for g, gm := range c.byGeometry {
		rl.UnloadMesh(&gm.mesh)
		delete(c.byGeometry, g)
	}
	c.items = c.items[:0]
}

// unload frees meshes and the material shader.
func (c *meshCache) unload() {
	c.unloadMeshes()
	c.loaded = false
	if c.hasMtl {
		rl.UnloadShader(c.mtl.Shader)
		c.hasMtl = false
	}
}
