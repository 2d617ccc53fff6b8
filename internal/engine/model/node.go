package model

import "github.com/playforge/avatarview/pkg/math"

// Node is a named transform in the scene graph. Only Position and
// Orientation mutate after assembly (per animation frame); the tree itself
// is replaced wholesale on reload.
type Node struct {
	Name        string
	Position    math.Vec3
	Orientation math.Quat
	Mesh        *Mesh

	Parent   *Node
	Children []*Node
}

// NewNode creates a detached node with identity orientation.
func NewNode(name string) *Node {
	return &Node{Name: name, Orientation: math.QuatIdentity()}
}

// AddChild appends child to n and sets its parent pointer.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// LocalMatrix returns the node's transform relative to its parent.
func (n *Node) LocalMatrix() math.Mat4 {
	return math.Translate(n.Position.X, n.Position.Y, n.Position.Z).
		Mul(n.Orientation.ToMat4())
}

// WorldMatrix walks the parent chain to produce the model-space transform.
func (n *Node) WorldMatrix() math.Mat4 {
	local := n.LocalMatrix()
	if n.Parent == nil {
		return local
	}
	return n.Parent.WorldMatrix().Mul(local)
}

// Walk visits n and every descendant depth-first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Scene owns one assembled avatar graph plus a name index built once at
// assembly so bone lookups are O(1) instead of per-lookup traversals.
type Scene struct {
	Root  *Node
	index map[string]*Node
}

// NewScene creates a scene with an empty root group.
func NewScene() *Scene {
	return &Scene{
		Root:  NewNode("root"),
		index: make(map[string]*Node),
	}
}

// Register adds a node to the name index. The first registration for a name
// wins, so base-skeleton bones shadow same-named cosmetic anchor nodes.
func (s *Scene) Register(n *Node) {
	if _, exists := s.index[n.Name]; !exists {
		s.index[n.Name] = n
	}
}

// Node returns the indexed node for name, or nil.
func (s *Scene) Node(name string) *Node {
	return s.index[name]
}

// Walk visits every node in the scene depth-first from the root.
func (s *Scene) Walk(fn func(*Node)) {
	s.Root.Walk(fn)
}
