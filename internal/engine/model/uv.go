package model

import "github.com/playforge/avatarview/pkg/formats"

// FaceUV holds the normalized texture coordinates for a quad's four vertex
// slots after atlas-rectangle resolution.
type FaceUV struct {
	BottomLeft  [2]float32
	BottomRight [2]float32
	TopLeft     [2]float32
	TopRight    [2]float32
}

// ResolveFaceUV maps a face's atlas rectangle plus rotation/mirror flags to
// normalized UVs. faceW/faceH are the face dimensions in atlas pixels;
// layout may be nil, which resolves to an unrotated rectangle at the atlas
// origin. The per-angle corner permutation reproduces the authoring tool's
// rotation convention exactly; the tests lock it down.
func ResolveFaceUV(faceW, faceH float32, layout *formats.FaceLayout, atlasW, atlasH float32) FaceUV {
	var offset [2]float32
	angle := 0
	mirrorX, mirrorY := false, false
	if layout != nil {
		offset = layout.Offset
		angle = ((layout.Angle % 360) + 360) % 360
		mirrorX, mirrorY = layout.MirrorX, layout.MirrorY
	}

	w, h := faceW, faceH
	switch angle {
	case 90:
		w, h = h, w
		mirrorX, mirrorY = mirrorY, mirrorX
		mirrorX = !mirrorX
	case 180:
		mirrorX = !mirrorX
		mirrorY = !mirrorY
	case 270:
		w, h = h, w
		mirrorX, mirrorY = mirrorY, mirrorX
		mirrorY = !mirrorY
	}

	// Opposite corners in atlas pixels, mirror sign applied by swapping.
	x1, y1 := offset[0], offset[1]
	x2, y2 := x1+w, y1+h
	if mirrorX {
		x1, x2 = x2, x1
	}
	if mirrorY {
		y1, y2 = y2, y1
	}

	// Normalize with vertical flip to match the renderer's UV origin.
	u1, u2 := x1/atlasW, x2/atlasW
	v1, v2 := 1-y1/atlasH, 1-y2/atlasH

	// Rectangle corners: c00 is the atlas-space top-left of the region.
	c00 := [2]float32{u1, v1}
	c10 := [2]float32{u2, v1}
	c01 := [2]float32{u1, v2}
	c11 := [2]float32{u2, v2}

	// Quarter turns share one remap; the negated mirror axis above picks the
	// turn direction. The 180 case is carried entirely by the double mirror
	// negation, so it keeps the unrotated remap.
	switch angle {
	case 90, 270:
		return FaceUV{BottomLeft: c10, BottomRight: c11, TopLeft: c00, TopRight: c01}
	default:
		return FaceUV{BottomLeft: c01, BottomRight: c11, TopLeft: c00, TopRight: c10}
	}
}
