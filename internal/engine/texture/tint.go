// Package texture provides per-pixel recoloring and synthetic overlay
// generation for avatar textures.
package texture

import (
	"image"
	"image/color"

	"github.com/playforge/avatarview/pkg/formats"
)

// Tint recolors the grayscale marker pixels of src and returns a new image.
// A marker pixel has nonzero alpha and R==G==B. For markers:
//
//   - with a gradient image, the gradient's columns are indexed by the grey
//     value (clamped to the gradient width) and its RGB copied over;
//   - with a flat base color, each channel becomes base*2*grey/255, clamped
//     to 255 (over-bright at grey>128, matching the authoring tool);
//   - with neither, the grey value passes through unchanged.
//
// Non-grayscale and fully transparent pixels are untouched. The source
// alpha is always preserved.
func Tint(src image.Image, base *formats.Color, gradient image.Image) *image.NRGBA {
	bounds := src.Bounds()
	out := image.NewNRGBA(bounds)

	var gradientW int
	if gradient != nil {
		gradientW = gradient.Bounds().Dx()
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)

			if px.A == 0 || px.R != px.G || px.G != px.B {
				out.SetNRGBA(x, y, px)
				continue
			}

			grey := px.R
			switch {
			case gradient != nil:
				gx := int(grey)
				if gx >= gradientW {
					gx = gradientW - 1
				}
				gb := gradient.Bounds()
				gpx := color.NRGBAModel.Convert(gradient.At(gb.Min.X+gx, gb.Min.Y)).(color.NRGBA)
				px.R, px.G, px.B = gpx.R, gpx.G, gpx.B
			case base != nil:
				px.R = scaleChannel(base.R, grey)
				px.G = scaleChannel(base.G, grey)
				px.B = scaleChannel(base.B, grey)
			}

			out.SetNRGBA(x, y, px)
		}
	}

	return out
}

// scaleChannel applies the flat-color formula c*2*grey/255, clamped.
func scaleChannel(c, grey uint8) uint8 {
	v := uint32(c) * 2 * uint32(grey) / 255
	if v > 255 {
		return 255
	}
	return uint8(v)
}
