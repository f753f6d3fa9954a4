// Package scene implements the hierarchical scene graph: nodes with local
// and world transforms, inherited shader programs and keyframe animations
// that drive node transforms over time.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/tangram/engine/core"
	"github.com/spaghettifunk/tangram/engine/math"
)

// NodeCallback is invoked with the node being drawn.
type NodeCallback func(n *Node)

// Node is an element of the scene tree. A node owns its children and keeps
// a non-owning reference to its parent, which is only used to resolve the
// inherited shader program.
type Node struct {
	name     string
	parent   *Node
	children []*Node

	transform *math.Transform
	world     mgl32.Mat4

	mesh          Mesh
	shaderProgram ShaderProgram

	// PreDraw and PostDraw run around the node's own mesh draw, whether or
	// not the node has a mesh. Either may be nil.
	PreDraw  NodeCallback
	PostDraw NodeCallback
}

// NewNode creates a detached node. An empty name is replaced by a generated
// unique one. mesh and program may be nil.
func NewNode(name string, mesh Mesh, program ShaderProgram) *Node {
	if name == "" {
		name = core.IdentifierNew("node")
	}
	return &Node{
		name:          name,
		transform:     math.TransformCreate(),
		world:         mgl32.Ident4(),
		mesh:          mesh,
		shaderProgram: program,
	}
}

// ID returns the node name, which registries use as its key.
func (n *Node) ID() string {
	return n.name
}

func (n *Node) Name() string {
	return n.name
}

// AddChild transfers child into this node's child list.
// The child must be detached, and must not be this node or one of its ancestors.
func (n *Node) AddChild(child *Node) error {
	if child == nil {
		return ErrNilNode
	}
	if child.parent != nil {
		core.LogWarn("node '%s' already has parent '%s', not attaching to '%s'", child.name, child.parent.name, n.name)
		return fmt.Errorf("add child '%s' to '%s': %w", child.name, n.name, ErrNodeHasParent)
	}
	for p := n; p != nil; p = p.parent {
		if p == child {
			return fmt.Errorf("add child '%s' to '%s': %w", child.name, n.name, ErrNodeCycle)
		}
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// RemoveChild detaches a direct child and hands it back to the caller,
// which can then attach it elsewhere.
func (n *Node) RemoveChild(child *Node) (*Node, error) {
	if child == nil {
		return nil, ErrNilNode
	}
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return child, nil
		}
	}
	return nil, fmt.Errorf("remove child '%s' from '%s': %w", child.name, n.name, ErrNotChild)
}

func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the children in insertion order. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Walk visits the subtree in pre-order, depth-first, children in insertion
// order. Returning false from fn skips the node's descendants.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.children {
		child.Walk(fn)
	}
}

// Find returns the first node in the subtree with the given name, or nil.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.name == name {
			found = c
			return false
		}
		return true
	})
	return found
}

// DrawSceneGraph computes this node's world transform from its parent's,
// draws the node and then recurses into its children.
// The root is drawn with the identity matrix.
func (n *Node) DrawSceneGraph(parentTransform mgl32.Mat4) {
	n.world = parentTransform.Mul4(n.transform.GetLocal())

	n.drawNodeMesh()

	for _, child := range n.children {
		child.DrawSceneGraph(n.world)
	}
}

func (n *Node) drawNodeMesh() {
	if n.PreDraw != nil {
		n.PreDraw(n)
	}

	if n.mesh != nil {
		if sp := n.GetShaderProgram(); sp != nil {
			sp.UniformMatrix4(sp.UniformLocation(ModelMatrixUniform), n.world)
			n.mesh.Draw()
		} else {
			core.LogDebug("node '%s' has no shader program in its ancestry, skipping draw", n.name)
		}
	}

	if n.PostDraw != nil {
		n.PostDraw(n)
	}
}

func (n *Node) HasShaderProgram() bool {
	return n.shaderProgram != nil
}

// GetShaderProgram returns the node's own program or, failing that, the
// program of the nearest ancestor that has one. It returns nil when no node
// on the path to the root has a program.
func (n *Node) GetShaderProgram() ShaderProgram {
	for p := n; p != nil; p = p.parent {
		if p.HasShaderProgram() {
			return p.shaderProgram
		}
	}
	return nil
}

func (n *Node) SetShaderProgram(sp ShaderProgram) {
	n.shaderProgram = sp
}

func (n *Node) Mesh() Mesh {
	return n.mesh
}

func (n *Node) SetMesh(m Mesh) {
	n.mesh = m
}

/* Relative transformations: change the node relative to its current values. */

func (n *Node) TransformTranslate(translation mgl32.Vec3) {
	n.transform.Translate(translation)
}

// TransformScale multiplies the current scale component-wise.
func (n *Node) TransformScale(scale mgl32.Vec3) {
	n.transform.ScaleIt(scale)
}

// TransformRotate right-multiplies the orientation by q and renormalizes it.
func (n *Node) TransformRotate(q mgl32.Quat) {
	n.transform.Rotate(q)
}

func (n *Node) TransformRotateAxisAngle(rads float32, axis mgl32.Vec3) {
	n.TransformRotate(math.NewQuatFromAxisAngle(axis, rads))
}

/* Absolute transformations: replace the node values. */

func (n *Node) SetPosition(position mgl32.Vec3) {
	n.transform.SetPosition(position)
}

func (n *Node) SetScale(scale mgl32.Vec3) {
	n.transform.SetScale(scale)
}

func (n *Node) SetRotation(q mgl32.Quat) {
	n.transform.SetRotation(q)
}

func (n *Node) SetRotationAxisAngle(rads float32, axis mgl32.Vec3) {
	n.SetRotation(math.NewQuatFromAxisAngle(axis, rads))
}

func (n *Node) Translation() mgl32.Vec3 {
	return n.transform.Position
}

func (n *Node) Scale() mgl32.Vec3 {
	return n.transform.Scale
}

func (n *Node) Orientation() mgl32.Quat {
	return n.transform.Rotation
}

// LocalTransform returns Translate * Rotate * Scale for the current values.
func (n *Node) LocalTransform() mgl32.Mat4 {
	return n.transform.GetLocal()
}

// WorldTransform returns the world transform computed by the last
// DrawSceneGraph pass that visited this node.
func (n *Node) WorldTransform() mgl32.Mat4 {
	return n.world
}
