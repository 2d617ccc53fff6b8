package model

import "github.com/playforge/avatarview/pkg/formats"

// boxFace enumerates the cube faces in build order.
type boxFace int

const (
	faceFront boxFace = iota
	faceBack
	faceRight
	faceLeft
	faceTop
	faceBottom
)

// BuildShapeMesh builds a mesh descriptor from a node's shape. atlasW and
// atlasH are the texture dimensions in pixels used for UV normalization.
// Returns nil for shape type "none"; missing size is a malformed document
// and returns formats.ErrMissingShapeSize so the caller can skip just this
// primitive.
func BuildShapeMesh(shape *formats.Shape, atlasW, atlasH float32) (*Mesh, error) {
	switch shape.Type {
	case formats.ShapeNone:
		return nil, nil
	case formats.ShapeBox:
		if shape.Size == nil {
			return nil, formats.ErrMissingShapeSize
		}
		return buildBox(shape, atlasW, atlasH), nil
	case formats.ShapeQuad:
		if shape.Size == nil {
			return nil, formats.ErrMissingShapeSize
		}
		return buildQuad(shape, atlasW, atlasH), nil
	default:
		return nil, formats.ErrUnknownShapeType
	}
}

// buildBox emits six quad faces centered on the shape offset. Each face has
// an independent atlas rectangle with its own rotation/mirror flags.
func buildBox(shape *formats.Shape, atlasW, atlasH float32) *Mesh {
	size := *shape.Size
	stretch := shape.StretchOrDefault()
	w, h, d := size[0], size[1], size[2]

	mesh := &Mesh{}
	for face := faceFront; face <= faceBottom; face++ {
		layout := faceLayout(&shape.TextureLayout, face)
		fw, fh := faceSize(face, w, h, d)
		uv := ResolveFaceUV(fw, fh, layout, atlasW, atlasH)
		appendFace(mesh, faceCorners(face, w, h, d), faceNormal(face), uv, shape.Offset, stretch)
	}
	return mesh
}

// buildQuad emits one front-facing quad using the front layout entry.
func buildQuad(shape *formats.Shape, atlasW, atlasH float32) *Mesh {
	size := *shape.Size
	stretch := shape.StretchOrDefault()
	w, h, d := size[0], size[1], size[2]

	mesh := &Mesh{}
	uv := ResolveFaceUV(w, h, shape.TextureLayout.Front, atlasW, atlasH)
	appendFace(mesh, faceCorners(faceFront, w, h, d), faceNormal(faceFront), uv, shape.Offset, stretch)
	return mesh
}

// faceLayout picks the layout entry for a cube face.
func faceLayout(tl *formats.TextureLayout, face boxFace) *formats.FaceLayout {
	switch face {
	case faceFront:
		return tl.Front
	case faceBack:
		return tl.Back
	case faceRight:
		return tl.Right
	case faceLeft:
		return tl.Left
	case faceTop:
		return tl.Top
	default:
		return tl.Bottom
	}
}

// faceSize returns the face dimensions in atlas pixels. Side faces span the
// box depth, top/bottom span width by depth.
func faceSize(face boxFace, w, h, d float32) (float32, float32) {
	switch face {
	case faceRight, faceLeft:
		return d, h
	case faceTop, faceBottom:
		return w, d
	default:
		return w, h
	}
}

// faceNormal returns the outward normal for a cube face.
func faceNormal(face boxFace) [3]float32 {
	switch face {
	case faceFront:
		return [3]float32{0, 0, 1}
	case faceBack:
		return [3]float32{0, 0, -1}
	case faceRight:
		return [3]float32{1, 0, 0}
	case faceLeft:
		return [3]float32{-1, 0, 0}
	case faceTop:
		return [3]float32{0, 1, 0}
	default:
		return [3]float32{0, -1, 0}
	}
}

// faceCorners returns the face's corner positions in the order bottom-left,
// bottom-right, top-left, top-right as seen from outside the box.
func faceCorners(face boxFace, w, h, d float32) [4][3]float32 {
	hw, hh, hd := w/2, h/2, d/2
	switch face {
	case faceFront:
		return [4][3]float32{{-hw, -hh, hd}, {hw, -hh, hd}, {-hw, hh, hd}, {hw, hh, hd}}
	case faceBack:
		return [4][3]float32{{hw, -hh, -hd}, {-hw, -hh, -hd}, {hw, hh, -hd}, {-hw, hh, -hd}}
	case faceRight:
		return [4][3]float32{{hw, -hh, hd}, {hw, -hh, -hd}, {hw, hh, hd}, {hw, hh, -hd}}
	case faceLeft:
		return [4][3]float32{{-hw, -hh, -hd}, {-hw, -hh, hd}, {-hw, hh, -hd}, {-hw, hh, hd}}
	case faceTop:
		return [4][3]float32{{-hw, hh, hd}, {hw, hh, hd}, {-hw, hh, -hd}, {hw, hh, -hd}}
	default: // bottom
		return [4][3]float32{{-hw, -hh, -hd}, {hw, -hh, -hd}, {-hw, -hh, hd}, {hw, -hh, hd}}
	}
}

// appendFace adds one textured quad (two triangles) to the mesh, applying
// the shape offset and signed stretch to each corner.
func appendFace(mesh *Mesh, corners [4][3]float32, normal [3]float32, uv FaceUV, offset, stretch [3]float32) {
	base := uint32(len(mesh.Vertices))

	texCoords := [4][2]float32{uv.BottomLeft, uv.BottomRight, uv.TopLeft, uv.TopRight}
	for i, c := range corners {
		mesh.Vertices = append(mesh.Vertices, Vertex{
			Position: [3]float32{
				c[0]*stretch[0] + offset[0],
				c[1]*stretch[1] + offset[1],
				c[2]*stretch[2] + offset[2],
			},
			Normal:   normal,
			TexCoord: texCoords[i],
		})
	}

	// Counter-clockwise winding seen from outside: BL, BR, TR / BL, TR, TL.
	mesh.Indices = append(mesh.Indices,
		base, base+1, base+3,
		base, base+3, base+2,
	)
}
