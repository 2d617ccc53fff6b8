package texture

import "image"

// Eye texture layout constants. The authoring tool places the two eye
// regions side by side in the top 16 rows of the eye atlas.
const (
	eyeRegionSize = 14
	eyeBandHeight = 16
	eyeFadeRows   = 4
	eyeMaxOpacity = 0.25

	leftEyeOffsetX  = 1
	rightEyeOffsetX = 17
	eyeOffsetY      = 1
)

// EyeShadow synthesizes a darkening overlay for a known eye-texture layout.
// The overlay is black, confined to two fixed 14x14 regions inside the top
// 16 rows, with alpha fading linearly from 25% at each region's top edge to
// zero over the first 4 rows. There is no source data for this decal; it
// approximates soft ambient occlusion from the brow.
func EyeShadow(eyeTexture image.Image) *image.NRGBA {
	bounds := eyeTexture.Bounds()
	out := image.NewNRGBA(bounds)

	for _, offsetX := range []int{leftEyeOffsetX, rightEyeOffsetX} {
		drawEyeRegion(out, bounds.Min.X+offsetX, bounds.Min.Y+eyeOffsetY)
	}

	return out
}

// drawEyeRegion fills one 14x14 region with the fading shadow rows.
func drawEyeRegion(img *image.NRGBA, x0, y0 int) {
	bounds := img.Bounds()
	for row := 0; row < eyeRegionSize; row++ {
		y := y0 + row
		if y >= bounds.Max.Y || y0+row >= bounds.Min.Y+eyeBandHeight {
			break
		}

		alpha := eyeRowAlpha(row)
		if alpha == 0 {
			continue
		}

		for col := 0; col < eyeRegionSize; col++ {
			x := x0 + col
			if x >= bounds.Max.X {
				break
			}
			i := img.PixOffset(x, y)
			img.Pix[i+3] = alpha
		}
	}
}

// eyeRowAlpha returns the shadow alpha for a row within a region: 25% at
// row 0 fading linearly to 0 at row 4, zero below.
func eyeRowAlpha(row int) uint8 {
	if row >= eyeFadeRows {
		return 0
	}
	fade := eyeMaxOpacity * float32(eyeFadeRows-row) / float32(eyeFadeRows)
	return uint8(fade * 255)
}
