package math

import (
	"math"
	"testing"
)

func TestMat4Identity(t *testing.T) {
	m := Identity()
	p := m.TransformPoint(Vec3{X: 1, Y: 2, Z: 3})
	if p != (Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("identity transform changed the point: %+v", p)
	}
}

func TestMat4Translate(t *testing.T) {
	m := Translate(1, 2, 3)
	p := m.TransformPoint(Vec3{})
	if p != (Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("expected (1,2,3), got %+v", p)
	}
}

func TestMat4Scale(t *testing.T) {
	m := Scale(2, 3, 4)
	p := m.TransformPoint(Vec3{X: 1, Y: 1, Z: 1})
	if p != (Vec3{X: 2, Y: 3, Z: 4}) {
		t.Errorf("expected (2,3,4), got %+v", p)
	}
}

func TestMat4MulOrder(t *testing.T) {
	// Mul applies the right operand first: translate then scale
	m := Scale(2, 2, 2).Mul(Translate(1, 0, 0))
	p := m.TransformPoint(Vec3{})
	if p != (Vec3{X: 2}) {
		t.Errorf("scale*translate at origin: expected (2,0,0), got %+v", p)
	}

	// Opposite composition order
	m = Translate(1, 0, 0).Mul(Scale(2, 2, 2))
	p = m.TransformPoint(Vec3{X: 1})
	if p != (Vec3{X: 3}) {
		t.Errorf("translate*scale at (1,0,0): expected (3,0,0), got %+v", p)
	}
}

func TestMat4MulIdentity(t *testing.T) {
	m := Translate(5, -3, 2)
	r := m.Mul(Identity())
	for i := 0; i < 16; i++ {
		if r[i] != m[i] {
			t.Errorf("m * identity differs at element %d: got %v, want %v", i, r[i], m[i])
		}
	}
}

func TestMat4Perspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 4.0/3.0, 0.1, 100)

	// w' for a point must carry -z (element 11 is -1 in column-major)
	if m[11] != -1 {
		t.Errorf("perspective element 11 should be -1, got %v", m[11])
	}
	if m[15] != 0 {
		t.Errorf("perspective element 15 should be 0, got %v", m[15])
	}
}

func TestMat4LookAt(t *testing.T) {
	// Looking down -Z from +Z: view of the center is in front of the camera
	m := LookAt(Vec3{Z: 5}, Vec3{}, Vec3{Y: 1})
	p := m.TransformPoint(Vec3{})
	if math.Abs(float64(p.X)) > 0.001 || math.Abs(float64(p.Y)) > 0.001 || math.Abs(float64(p.Z+5)) > 0.001 {
		t.Errorf("center should map to (0,0,-5), got %+v", p)
	}
}
