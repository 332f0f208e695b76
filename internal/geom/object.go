package geom

import "cogentcore.org/core/math32"

// Object3D is a node of a generated hierarchy: a Mesh or a Group.
type Object3D interface {
	// Object returns the node's transform and name.
	Object() *Node
}

// Node holds the transform shared by every Object3D. Rotation is an XYZ
// Euler angle in radians, applied after Scale and before Position.
type Node struct {
	Name     string
	Position math32.Vector3
	Rotation math32.Vector3
	Scale    math32.Vector3
}

func newNode() Node {
	return Node{Scale: math32.Vec3(1, 1, 1)}
}

// Object implements [Object3D].
func (n *Node) Object() *Node { return n }

// SetPosition sets the translation relative to the parent.
func (n *Node) SetPosition(x, y, z float32) { n.Position = math32.Vec3(x, y, z) }

// SetRotation sets the XYZ Euler rotation in radians.
func (n *Node) SetRotation(x, y, z float32) { n.Rotation = math32.Vec3(x, y, z) }

// SetScale sets the per-axis scale.
func (n *Node) SetScale(x, y, z float32) { n.Scale = math32.Vec3(x, y, z) }

// Apply transforms a point from this node's local space into its parent's.
func (n *Node) Apply(p math32.Vector3) math32.Vector3 {
	p = math32.Vec3(p.X*n.Scale.X, p.Y*n.Scale.Y, p.Z*n.Scale.Z)
	p = rotateZ(p, n.Rotation.Z)
	p = rotateY(p, n.Rotation.Y)
	p = rotateX(p, n.Rotation.X)
	return p.Add(n.Position)
}

func rotateX(p math32.Vector3, a float32) math32.Vector3 {
	if a == 0 {
		return p
	}
	s, c := math32.Sin(a), math32.Cos(a)
	return math32.Vec3(p.X, p.Y*c-p.Z*s, p.Y*s+p.Z*c)
}

func rotateY(p math32.Vector3, a float32) math32.Vector3 {
	if a == 0 {
		return p
	}
	s, c := math32.Sin(a), math32.Cos(a)
	return math32.Vec3(p.X*c+p.Z*s, p.Y, -p.X*s+p.Z*c)
}

func rotateZ(p math32.Vector3, a float32) math32.Vector3 {
	if a == 0 {
		return p
	}
	s, c := math32.Sin(a), math32.Cos(a)
	return math32.Vec3(p.X*c-p.Y*s, p.X*s+p.Y*c, p.Z)
}

// Mesh is a renderable surface: a geometry drawn with a material.
type Mesh struct {
	Node
	Geometry *BufferGeometry
	Material *Material
}

// NewMesh returns a mesh with identity transform. A nil material gets the
// default standard material.
func NewMesh(geometry *BufferGeometry, material *Material) *Mesh {
	if material == nil {
		material = NewMeshStandardMaterial(MaterialParams{})
	}
	return &Mesh{Node: newNode(), Geometry: geometry, Material: material}
}

// Group is a container of child objects with its own transform.
type Group struct {
	Node
	children []Object3D
}

// NewGroup returns an empty group with identity transform.
func NewGroup() *Group {
	return &Group{Node: newNode()}
}

// Add appends objects to the group. Nil objects are ignored.
func (g *Group) Add(objs ...Object3D) {
	for _, o := range objs {
		if o == nil {
			continue
		}
		g.children = append(g.children, o)
	}
}

// Remove detaches obj from the group and reports whether it was a child.
func (g *Group) Remove(obj Object3D) bool {
	for i, c := range g.children {
		if c == obj {
			g.children = append(g.children[:i], g.children[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every child.
func (g *Group) Clear() {
	g.children = nil
}

// Children returns the direct children. The slice must not be modified.
func (g *Group) Children() []Object3D {
	return g.children
}

// Len returns the number of direct children.
func (g *Group) Len() int {
	return len(g.children)
}

// Traverse calls fn for root and every descendant, depth first, parents
// before children.
func Traverse(root Object3D, fn func(Object3D)) {
	if root == nil {
		return
	}
	fn(root)
	if g, ok := root.(*Group); ok {
		for _, c := range g.children {
			Traverse(c, fn)
		}
	}
}

// BoundingBox returns the bounding box of every mesh vertex under root,
// with each node's transform applied, including root's own.
// The box is empty when the hierarchy holds no vertices.
func BoundingBox(root Object3D) math32.Box3 {
	box := math32.B3Empty()
	expandBox(&box, root, nil)
	return box
}

// expandBox walks the hierarchy keeping the chain of ancestor nodes so each
// vertex is mapped child to parent up to the root.
func expandBox(box *math32.Box3, obj Object3D, chain []*Node) {
	if obj == nil {
		return
	}
	chain = append(chain, obj.Object())
	switch o := obj.(type) {
	case *Mesh:
		if o.Geometry == nil {
			return
		}
		for i := 0; i < o.Geometry.VertexCount(); i++ {
			p := o.Geometry.Vertex(i)
			for j := len(chain) - 1; j >= 0; j-- {
				p = chain[j].Apply(p)
			}
			box.ExpandByPoint(p)
		}
	case *Group:
		for _, c := range o.children {
			expandBox(box, c, chain)
		}
	}
}
