// Package scene is the minimal scene graph the effect needs: translatable
// groups, a perspective camera and a full-screen quad mesh.
package scene

import "github.com/go-gl/mathgl/mgl32"

// Node is anything that can be placed in the graph.
type Node interface {
	Object3D() *Object
}

// Object carries the transform shared by all nodes. Only translation is
// modelled; the effect never rotates or scales anything.
type Object struct {
	Position mgl32.Vec3

	parent      *Object
	children    []Node
	matrixWorld mgl32.Mat4
}

func newObject() Object {
	return Object{matrixWorld: mgl32.Ident4()}
}

func (o *Object) Object3D() *Object { return o }

// Add attaches child to o, detaching it from any previous parent.
func (o *Object) Add(child Node) {
	c := child.Object3D()
	if c.parent != nil {
		c.parent.Remove(child)
	}
	c.parent = o
	o.children = append(o.children, child)
}

// Remove detaches child if it belongs to o.
func (o *Object) Remove(child Node) {
	c := child.Object3D()
	for i, n := range o.children {
		if n.Object3D() == c {
			o.children = append(o.children[:i], o.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

// Children returns the direct children of o.
func (o *Object) Children() []Node {
	return o.children
}

// Parent returns the parent object, or nil for a root.
func (o *Object) Parent() *Object {
	return o.parent
}

// MatrixLocal returns the transform relative to the parent.
func (o *Object) MatrixLocal() mgl32.Mat4 {
	return mgl32.Translate3D(o.Position[0], o.Position[1], o.Position[2])
}

// MatrixWorld returns the world transform computed by the last
// UpdateMatrixWorld on o or one of its ancestors.
func (o *Object) MatrixWorld() mgl32.Mat4 {
	return o.matrixWorld
}

// UpdateMatrixWorld recomputes the world transform of o and its subtree.
func (o *Object) UpdateMatrixWorld() {
	if o.parent == nil {
		o.matrixWorld = o.MatrixLocal()
	} else {
		o.matrixWorld = o.parent.matrixWorld.Mul4(o.MatrixLocal())
	}
	for _, child := range o.children {
		child.Object3D().UpdateMatrixWorld()
	}
}

// Traverse calls fn for n and every node below it, depth first.
func Traverse(n Node, fn func(Node)) {
	fn(n)
	for _, child := range n.Object3D().children {
		Traverse(child, fn)
	}
}

// Group is an empty node used to move its children together.
type Group struct {
	Object
}

// NewGroup creates an empty group at the origin.
func NewGroup() *Group {
	return &Group{Object: newObject()}
}

// Scene is the root of the graph.
type Scene struct {
	Object
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{Object: newObject()}
}

// Meshes returns every mesh in the scene in traversal order.
func (s *Scene) Meshes() []*Mesh {
	var meshes []*Mesh
	Traverse(s, func(n Node) {
		if m, ok := n.(*Mesh); ok {
			meshes = append(meshes, m)
		}
	})
	return meshes
}
