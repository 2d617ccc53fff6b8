// Package avatar assembles a character scene graph from a base skeleton,
// equipped cosmetic parts and a skin tone, and owns the per-avatar
// animation state.
package avatar

import "strings"

// Slot identifies one equippable cosmetic position.
type Slot string

// Known cosmetic slots.
const (
	SlotUnderwear     Slot = "underwear"
	SlotPants         Slot = "pants"
	SlotOverpants     Slot = "overpants"
	SlotShoes         Slot = "shoes"
	SlotUndertop      Slot = "undertop"
	SlotOvertop       Slot = "overtop"
	SlotGloves        Slot = "gloves"
	SlotFace          Slot = "face"
	SlotMouth         Slot = "mouth"
	SlotEyes          Slot = "eyes"
	SlotEyebrows      Slot = "eyebrows"
	SlotEars          Slot = "ears"
	SlotHaircut       Slot = "haircut"
	SlotFacialHair    Slot = "facialHair"
	SlotHeadAccessory Slot = "headAccessory"
	SlotFaceAccessory Slot = "faceAccessory"
	SlotEarAccessory  Slot = "earAccessory"
	SlotCape          Slot = "cape"
)

// RenderOrder is the fixed authored order in which equipped slots are
// instantiated. Later slots draw over earlier ones via a growing z-bias.
var RenderOrder = []Slot{
	SlotUnderwear,
	SlotPants,
	SlotOverpants,
	SlotShoes,
	SlotUndertop,
	SlotOvertop,
	SlotGloves,
	SlotFace,
	SlotMouth,
	SlotEyes,
	SlotEyebrows,
	SlotEars,
	SlotHaircut,
	SlotFacialHair,
	SlotHeadAccessory,
	SlotFaceAccessory,
	SlotEarAccessory,
	SlotCape,
}

// slotZBiasStep separates consecutive slots in depth.
const slotZBiasStep = 0.001

// selfOffsetBias is applied to base-skeleton meshes whose bones are in the
// offset set, so worn tops do not z-fight with the arms underneath.
const selfOffsetBias = -0.0005

// Occlusion tables. Hand-authored to match the cosmetic meshes, not derived
// from geometry.
var (
	legBones   = []string{"Pelvis", "L-Thigh", "R-Thigh", "L-Calf", "R-Calf"}
	torsoBones = []string{"Belly", "Chest"}
	footBones  = []string{"L-Foot", "R-Foot"}
	hairBones  = []string{"Head-Top", "Hair-Base"}
	armBones   = []string{"L-UpperArm", "L-LowerArm", "R-UpperArm", "R-LowerArm"}
)

// HiddenParts returns the set of bone names whose base meshes are occluded
// by the equipped slots. Hidden bones still emit transform groups so the
// hierarchy and attachments are preserved.
func HiddenParts(equipped map[Slot]bool) map[string]bool {
	hidden := make(map[string]bool)
	if equipped[SlotPants] || equipped[SlotOverpants] {
		addAll(hidden, legBones)
	}
	if equipped[SlotUndertop] || equipped[SlotOvertop] {
		addAll(hidden, torsoBones)
	}
	if equipped[SlotShoes] {
		addAll(hidden, footBones)
	}
	if equipped[SlotHaircut] {
		addAll(hidden, hairBones)
	}
	return hidden
}

// OffsetParts returns the set of bone names rendered with a
// self-intersection-avoidance bias when a top is worn over them.
func OffsetParts(equipped map[Slot]bool) map[string]bool {
	offset := make(map[string]bool)
	if equipped[SlotUndertop] || equipped[SlotOvertop] {
		addAll(offset, armBones)
	}
	return offset
}

func addAll(set map[string]bool, names []string) {
	for _, n := range names {
		set[n] = true
	}
}

// Facial render-order overrides. Alpha-blended facial layers must composite
// back to front regardless of scene-graph order.
const (
	renderOrderFaceMesh      = 10
	renderOrderMouth         = 20
	renderOrderEyeBackground = 30
	renderOrderEyeShadow     = 35
	renderOrderIris          = 40
)

// renderOrderFor returns the forced draw order for a cosmetic mesh, or 0
// for default ordering. Eye trees author their layers as nodes named
// "*Background" and "*Iris".
func renderOrderFor(slot Slot, nodeName string) int {
	switch slot {
	case SlotFace:
		return renderOrderFaceMesh
	case SlotMouth:
		return renderOrderMouth
	case SlotEyes:
		if strings.Contains(strings.ToLower(nodeName), "iris") {
			return renderOrderIris
		}
		return renderOrderEyeBackground
	default:
		return 0
	}
}
