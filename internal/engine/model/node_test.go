package model

import (
	"math"
	"testing"

	gmath "github.com/playforge/avatarview/pkg/math"
)

func TestSceneRegisterFirstWins(t *testing.T) {
	scene := NewScene()

	bone := NewNode("Chest")
	scene.Register(bone)

	anchor := NewNode("Chest")
	scene.Register(anchor)

	if got := scene.Node("Chest"); got != bone {
		t.Error("first registration must win the name index")
	}
	if scene.Node("Pelvis") != nil {
		t.Error("unknown name should resolve to nil")
	}
}

func TestNodeWorldMatrix(t *testing.T) {
	parent := NewNode("parent")
	parent.Position = gmath.Vec3{X: 1}

	child := NewNode("child")
	child.Position = gmath.Vec3{Y: 2}
	parent.AddChild(child)

	p := child.WorldMatrix().TransformPoint(gmath.Vec3{})
	if p != (gmath.Vec3{X: 1, Y: 2}) {
		t.Errorf("child origin should land at (1,2,0), got %+v", p)
	}
}

func TestNodeWorldMatrixWithRotation(t *testing.T) {
	parent := NewNode("parent")
	parent.Orientation = gmath.QuatFromAxisAngle(gmath.Vec3{Y: 1}, float32(math.Pi/2))

	child := NewNode("child")
	child.Position = gmath.Vec3{X: 1}
	parent.AddChild(child)

	// Parent's 90-degree Y rotation carries the child's +X offset to -Z
	p := child.WorldMatrix().TransformPoint(gmath.Vec3{})
	if math.Abs(float64(p.X)) > 0.001 || math.Abs(float64(p.Z+1)) > 0.001 {
		t.Errorf("expected (0,0,-1), got %+v", p)
	}
}

func TestSceneWalk(t *testing.T) {
	scene := NewScene()
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	scene.Root.AddChild(a)
	a.AddChild(b)
	scene.Root.AddChild(c)

	var order []string
	scene.Walk(func(n *Node) { order = append(order, n.Name) })

	want := []string{"root", "a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("visited %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("visited %v, want %v", order, want)
		}
	}
}
