package formats

import (
	"errors"
	"testing"
)

func TestParseModel_Empty(t *testing.T) {
	_, err := ParseModel(nil)
	if !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestParseModel_NoNodes(t *testing.T) {
	_, err := ParseModel([]byte(`{"nodes": []}`))
	if !errors.Is(err, ErrNoNodes) {
		t.Errorf("expected ErrNoNodes, got %v", err)
	}
}

func TestParseModel_UnnamedNode(t *testing.T) {
	_, err := ParseModel([]byte(`{"nodes": [{"position": [0,0,0]}]}`))
	if !errors.Is(err, ErrUnnamedNode) {
		t.Errorf("expected ErrUnnamedNode, got %v", err)
	}
}

func TestParseModel_DuplicateNames(t *testing.T) {
	doc := `{"nodes": [
		{"name": "Chest", "children": [{"name": "Chest"}]}
	]}`
	_, err := ParseModel([]byte(doc))
	if !errors.Is(err, ErrDuplicateNodeName) {
		t.Errorf("expected ErrDuplicateNodeName, got %v", err)
	}
}

func TestParseModel_UnknownShapeType(t *testing.T) {
	doc := `{"nodes": [
		{"name": "Chest", "shape": {"type": "sphere", "size": [1,1,1]}}
	]}`
	_, err := ParseModel([]byte(doc))
	if !errors.Is(err, ErrUnknownShapeType) {
		t.Errorf("expected ErrUnknownShapeType, got %v", err)
	}
}

func TestParseModel_Valid(t *testing.T) {
	doc := `{"nodes": [
		{
			"name": "Chest",
			"position": [0, 1.5, 0],
			"shape": {
				"type": "box",
				"size": [8, 12, 4],
				"textureLayout": {
					"front": {"offset": [4, 4], "angle": 90, "mirrorX": true}
				}
			},
			"children": [
				{"name": "Head", "position": [0, 1, 0], "orientation": [0, 0, 0, 1]}
			]
		}
	]}`

	m, err := ParseModel([]byte(doc))
	if err != nil {
		t.Fatalf("failed to parse model: %v", err)
	}

	if len(m.Nodes) != 1 {
		t.Fatalf("expected 1 root node, got %d", len(m.Nodes))
	}
	chest := &m.Nodes[0]
	if chest.Position != [3]float32{0, 1.5, 0} {
		t.Errorf("chest position: got %v", chest.Position)
	}
	if chest.Shape == nil || chest.Shape.Type != ShapeBox {
		t.Fatalf("chest shape missing or wrong type")
	}
	front := chest.Shape.TextureLayout.Front
	if front == nil || front.Angle != 90 || !front.MirrorX || front.MirrorY {
		t.Errorf("front layout: got %+v", front)
	}
	if len(chest.Children) != 1 || chest.Children[0].Name != "Head" {
		t.Errorf("children: got %+v", chest.Children)
	}
}

func TestShapeDefaults(t *testing.T) {
	s := &Shape{Type: ShapeBox}

	if got := s.StretchOrDefault(); got != [3]float32{1, 1, 1} {
		t.Errorf("default stretch should be (1,1,1), got %v", got)
	}
	if !s.IsVisible() {
		t.Error("missing visible flag should default to visible")
	}

	hidden := false
	s.Visible = &hidden
	if s.IsVisible() {
		t.Error("explicit visible=false should hide")
	}
}

func TestOrientationOrIdentity(t *testing.T) {
	n := &ModelNode{Name: "Head"}
	if got := n.OrientationOrIdentity(); got != [4]float32{0, 0, 0, 1} {
		t.Errorf("missing orientation should be identity, got %v", got)
	}

	n.Orientation = &[4]float32{0, 0.707, 0, 0.707}
	if got := n.OrientationOrIdentity(); got != *n.Orientation {
		t.Errorf("authored orientation lost: got %v", got)
	}
}
