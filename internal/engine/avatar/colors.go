package avatar

import (
	"fmt"

	"github.com/playforge/avatarview/pkg/formats"
)

// skinTones maps the descriptor's 2-digit code to a flat skin color. The
// matching gradient texture recolors greyscale body parts; the flat color
// is the fallback and the source for face/ear meshes.
var skinTones = map[string]formats.Color{
	"01": {R: 0xff, G: 0xdb, B: 0xac},
	"02": {R: 0xf1, G: 0xc2, B: 0x7d},
	"03": {R: 0xe0, G: 0xac, B: 0x69},
	"04": {R: 0xc6, G: 0x86, B: 0x42},
	"05": {R: 0x8d, G: 0x55, B: 0x24},
	"06": {R: 0x80, G: 0x55, B: 0x2d},
	"07": {R: 0x5a, G: 0x3a, B: 0x1e},
	"08": {R: 0x3b, G: 0x26, B: 0x19},
}

// defaultSkinTone is used when the descriptor names an unknown code.
const defaultSkinTone = "01"

// SkinColor returns the flat color for a skin-tone code.
func SkinColor(tone string) formats.Color {
	if c, ok := skinTones[tone]; ok {
		return c
	}
	return skinTones[defaultSkinTone]
}

// SkinGradientPath returns the gradient lookup texture for a tone.
func SkinGradientPath(tone string) string {
	if _, ok := skinTones[tone]; !ok {
		tone = defaultSkinTone
	}
	return fmt.Sprintf("gradients/skin_%s.png", tone)
}

// slotDefaultColors are the fallback flat colors per slot when a part
// carries neither an explicit color nor a skin affinity.
var slotDefaultColors = map[Slot]formats.Color{
	SlotUnderwear:  {R: 0xdd, G: 0xdd, B: 0xdd},
	SlotPants:      {R: 0x3f, G: 0x51, B: 0x6b},
	SlotOverpants:  {R: 0x2d, G: 0x2d, B: 0x2d},
	SlotShoes:      {R: 0x4a, G: 0x3c, B: 0x31},
	SlotUndertop:   {R: 0xc8, G: 0xc8, B: 0xc8},
	SlotOvertop:    {R: 0x6b, G: 0x3f, B: 0x3f},
	SlotGloves:     {R: 0x55, G: 0x55, B: 0x55},
	SlotMouth:      {R: 0xb0, G: 0x5b, B: 0x4f},
	SlotEyes:       {R: 0xff, G: 0xff, B: 0xff},
	SlotEyebrows:   {R: 0x3a, G: 0x2a, B: 0x1a},
	SlotHaircut:    {R: 0x3a, G: 0x2a, B: 0x1a},
	SlotFacialHair: {R: 0x3a, G: 0x2a, B: 0x1a},
}

// neutralColor is white: flat-shaded meshes keep their texture colors.
var neutralColor = formats.Color{R: 0xff, G: 0xff, B: 0xff}

// resolveColor picks the color source for a cosmetic part: explicit model
// color first, skin tone for face and ears, then the per-slot default.
func resolveColor(slot Slot, part *formats.Part, tone string) formats.Color {
	if part.BaseColor != nil {
		return *part.BaseColor
	}
	if slot == SlotFace || slot == SlotEars {
		return SkinColor(tone)
	}
	if c, ok := slotDefaultColors[slot]; ok {
		return c
	}
	return neutralColor
}

// colorVec converts a color to the normalized vector the material carries.
func colorVec(c formats.Color) [3]float32 {
	return [3]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}
