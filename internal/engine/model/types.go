// Package model provides the avatar scene graph: named transform nodes,
// primitive mesh building and texture-atlas UV resolution.
package model

import "image"

// Vertex is one mesh vertex with position, normal and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Material describes how a mesh is shaded. A nil Image means flat color.
type Material struct {
	Image       *image.NRGBA
	Color       [3]float32
	DoubleSided bool

	// ZBias pushes the mesh toward the camera to avoid z-fighting with
	// overlapping cosmetic geometry. Larger values draw closer.
	ZBias float32

	// RenderOrder forces draw ordering for alpha-blended facial layers.
	// Meshes with equal order draw in scene-graph order.
	RenderOrder int
}

// Mesh is a primitive mesh descriptor ready for the renderer.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Material Material
}
