package formats

import (
	"encoding/json"
	"fmt"
)

// Shape types.
const (
	ShapeBox  = "box"
	ShapeQuad = "quad"
	ShapeNone = "none"
)

// FaceLayout describes one texture-atlas rectangle assigned to a mesh face.
// Offset is in pixels from the atlas top-left; Angle rotates the region in
// 90-degree steps; MirrorX/MirrorY flip it.
type FaceLayout struct {
	Offset  [2]float32 `json:"offset"`
	Angle   int        `json:"angle"`
	MirrorX bool       `json:"mirrorX"`
	MirrorY bool       `json:"mirrorY"`
}

// TextureLayout holds per-face atlas rectangles for a box primitive.
// Quad primitives only use Front.
type TextureLayout struct {
	Front  *FaceLayout `json:"front"`
	Back   *FaceLayout `json:"back"`
	Left   *FaceLayout `json:"left"`
	Right  *FaceLayout `json:"right"`
	Top    *FaceLayout `json:"top"`
	Bottom *FaceLayout `json:"bottom"`
}

// Shape is the optional primitive attached to a model node.
type Shape struct {
	Type          string        `json:"type"`
	Size          *[3]float32   `json:"size"`
	Offset        [3]float32    `json:"offset"`
	Stretch       *[3]float32   `json:"stretch"`
	TextureLayout TextureLayout `json:"textureLayout"`
	Visible       *bool         `json:"visible"`
	DoubleSided   bool          `json:"doubleSided"`
}

// StretchOrDefault returns the signed scale, defaulting to (1,1,1).
func (s *Shape) StretchOrDefault() [3]float32 {
	if s.Stretch == nil {
		return [3]float32{1, 1, 1}
	}
	return *s.Stretch
}

// IsVisible reports whether the shape should emit a mesh. A missing flag
// defaults to visible.
func (s *Shape) IsVisible() bool {
	return s.Visible == nil || *s.Visible
}

// ModelNode is one named transform in a model tree. Orientation is an
// x,y,z,w quaternion; nil means identity.
type ModelNode struct {
	Name        string      `json:"name"`
	Position    [3]float32  `json:"position"`
	Orientation *[4]float32 `json:"orientation"`
	Shape       *Shape      `json:"shape"`
	Children    []ModelNode `json:"children"`
}

// OrientationOrIdentity returns the authored quaternion or identity.
func (n *ModelNode) OrientationOrIdentity() [4]float32 {
	if n.Orientation == nil {
		return [4]float32{0, 0, 0, 1}
	}
	return *n.Orientation
}

// Model is a parsed model document. Base skeletons and cosmetic parts share
// this schema.
type Model struct {
	Nodes []ModelNode `json:"nodes"`
}

// ParseModel decodes and validates a model document.
func ParseModel(data []byte) (*Model, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding model document: %w", err)
	}
	if len(m.Nodes) == 0 {
		return nil, ErrNoNodes
	}

	seen := make(map[string]bool)
	for i := range m.Nodes {
		if err := validateNode(&m.Nodes[i], seen); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

// validateNode checks names and shape types recursively. Node names must be
// unique within one tree because cosmetic attachment keys on them.
func validateNode(n *ModelNode, seen map[string]bool) error {
	if n.Name == "" {
		return ErrUnnamedNode
	}
	if seen[n.Name] {
		return fmt.Errorf("node %q: %w", n.Name, ErrDuplicateNodeName)
	}
	seen[n.Name] = true

	if n.Shape != nil {
		switch n.Shape.Type {
		case ShapeBox, ShapeQuad, ShapeNone:
		default:
			return fmt.Errorf("node %q type %q: %w", n.Name, n.Shape.Type, ErrUnknownShapeType)
		}
	}

	for i := range n.Children {
		if err := validateNode(&n.Children[i], seen); err != nil {
			return err
		}
	}
	return nil
}
