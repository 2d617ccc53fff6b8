package avatar

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/playforge/avatarview/internal/engine/model"
	"github.com/playforge/avatarview/internal/engine/texture"
	"github.com/playforge/avatarview/pkg/formats"
	"github.com/playforge/avatarview/pkg/math"
)

// defaultAtlasSize is assumed when a mesh has no texture to take atlas
// dimensions from.
const defaultAtlasSize = 64

// TextureSource resolves texture paths to decoded images.
type TextureSource interface {
	Texture(path string) (*image.NRGBA, error)
}

// EquippedPart pairs a slot's parsed model tree with its styling.
type EquippedPart struct {
	Doc  *formats.Model
	Part formats.Part
}

// Assembler builds avatar scene graphs. Tinted textures are cached for the
// assembler's lifetime, keyed by source path only.
type Assembler struct {
	textures TextureSource
	tinted   map[string]*image.NRGBA
	log      *zap.Logger
}

// NewAssembler creates an assembler over a texture source.
func NewAssembler(textures TextureSource, log *zap.Logger) *Assembler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assembler{
		textures: textures,
		tinted:   make(map[string]*image.NRGBA),
		log:      log,
	}
}

// Build assembles the full avatar scene graph: the base skeleton with
// occlusion applied, then each equipped cosmetic in fixed render order. A
// failing cosmetic slot is logged and skipped; only a broken base skeleton
// fails the build.
func (a *Assembler) Build(base *formats.Model, skinTone, bodyType string, parts map[Slot]EquippedPart) (*model.Scene, error) {
	if base == nil || len(base.Nodes) == 0 {
		return nil, formats.ErrNoNodes
	}

	equipped := make(map[Slot]bool, len(parts))
	for slot := range parts {
		equipped[slot] = true
	}
	hidden := HiddenParts(equipped)
	offset := OffsetParts(equipped)

	skin := SkinColor(skinTone)
	bodyImg := a.bodyTexture(skinTone, bodyType)

	scene := model.NewScene()
	bones := make(map[string]*model.Node)
	for i := range base.Nodes {
		a.buildSkeletonNode(scene, scene.Root, &base.Nodes[i], bones, hidden, offset, bodyImg, skin)
	}

	for i, slot := range RenderOrder {
		ep, ok := parts[slot]
		if !ok {
			continue
		}
		if err := a.attachPart(scene, bones, slot, ep, skinTone, float32(i+1)*slotZBiasStep); err != nil {
			a.log.Warn("skipping cosmetic slot",
				zap.String("slot", string(slot)),
				zap.Error(err),
			)
		}
	}

	return scene, nil
}

// buildSkeletonNode instantiates one base node and its subtree. Hidden
// bones become empty transform groups; their children still attach so the
// hierarchy survives occlusion.
func (a *Assembler) buildSkeletonNode(scene *model.Scene, parent *model.Node, src *formats.ModelNode, bones map[string]*model.Node, hidden, offset map[string]bool, bodyImg *image.NRGBA, skin formats.Color) {
	n := newNodeFrom(src)
	parent.AddChild(n)
	scene.Register(n)
	if _, ok := bones[src.Name]; !ok {
		bones[src.Name] = n
	}

	if !hidden[src.Name] && src.Shape != nil && src.Shape.IsVisible() {
		mesh, err := a.buildMesh(src.Shape, bodyImg)
		if err != nil {
			a.log.Warn("skipping malformed base primitive",
				zap.String("node", src.Name),
				zap.Error(err),
			)
		} else if mesh != nil {
			mesh.Material = model.Material{
				Image:       bodyImg,
				Color:       colorVec(skin),
				DoubleSided: src.Shape.DoubleSided,
			}
			if offset[src.Name] {
				mesh.Material.ZBias = selfOffsetBias
			}
			n.Mesh = mesh
		}
	}

	for i := range src.Children {
		a.buildSkeletonNode(scene, n, &src.Children[i], bones, hidden, offset, bodyImg, skin)
	}
}

// attachPart instantiates one cosmetic tree onto the skeleton.
func (a *Assembler) attachPart(scene *model.Scene, bones map[string]*model.Node, slot Slot, ep EquippedPart, skinTone string, zBias float32) error {
	if ep.Doc == nil || len(ep.Doc.Nodes) == 0 {
		return fmt.Errorf("slot %s: %w", slot, formats.ErrNoNodes)
	}

	color := resolveColor(slot, &ep.Part, skinTone)
	img := a.partTexture(slot, &ep.Part, skinTone)

	// Eye textures get a synthetic brow shadow decal layered between the
	// background and iris meshes.
	var shadow *image.NRGBA
	if slot == SlotEyes && img != nil {
		shadow = texture.EyeShadow(img)
	}

	for i := range ep.Doc.Nodes {
		a.attachCosmeticNode(scene, scene.Root, &ep.Doc.Nodes[i], bones, slot, img, shadow, color, zBias)
	}
	return nil
}

// attachCosmeticNode grafts one cosmetic node. A node whose name matches a
// base-skeleton bone attaches as that bone's child with its authored
// orientation but zero position: the bone already places it. The match
// consults the skeleton-only bone index, never cosmetic nodes from other
// slots, so decorative names may repeat across parts. Unmatched nodes keep
// their full authored transform under their cosmetic parent.
func (a *Assembler) attachCosmeticNode(scene *model.Scene, parent *model.Node, src *formats.ModelNode, bones map[string]*model.Node, slot Slot, img, shadow *image.NRGBA, color formats.Color, zBias float32) {
	var n *model.Node
	if bone := bones[src.Name]; bone != nil {
		n = model.NewNode(src.Name)
		q := src.OrientationOrIdentity()
		n.Orientation = math.Quat{X: q[0], Y: q[1], Z: q[2], W: q[3]}
		bone.AddChild(n)
	} else {
		n = newNodeFrom(src)
		parent.AddChild(n)
	}
	// First-wins: a graft named after its bone never displaces the bone.
	scene.Register(n)

	if src.Shape != nil && src.Shape.IsVisible() {
		mesh, err := a.buildMesh(src.Shape, img)
		if err != nil {
			a.log.Warn("skipping malformed cosmetic primitive",
				zap.String("slot", string(slot)),
				zap.String("node", src.Name),
				zap.Error(err),
			)
		} else if mesh != nil {
			order := renderOrderFor(slot, src.Name)
			mesh.Material = model.Material{
				Image:       img,
				Color:       colorVec(color),
				DoubleSided: src.Shape.DoubleSided,
				ZBias:       zBias,
				RenderOrder: order,
			}
			n.Mesh = mesh

			if shadow != nil && order == renderOrderEyeBackground {
				a.addEyeShadow(n, src.Shape, shadow, zBias)
			}
		}
	}

	for i := range src.Children {
		a.attachCosmeticNode(scene, n, &src.Children[i], bones, slot, img, shadow, color, zBias)
	}
}

// addEyeShadow duplicates an eye background mesh as a shadow decal drawn
// just above it.
func (a *Assembler) addEyeShadow(parent *model.Node, shape *formats.Shape, shadow *image.NRGBA, zBias float32) {
	mesh, err := a.buildMesh(shape, shadow)
	if err != nil || mesh == nil {
		return
	}
	mesh.Material = model.Material{
		Image:       shadow,
		Color:       colorVec(neutralColor),
		DoubleSided: shape.DoubleSided,
		ZBias:       zBias,
		RenderOrder: renderOrderEyeShadow,
	}
	decal := model.NewNode(parent.Name + "-shadow")
	decal.Mesh = mesh
	parent.AddChild(decal)
}

// buildMesh builds a primitive mesh, taking atlas dimensions from the
// texture or falling back to the default atlas size.
func (a *Assembler) buildMesh(shape *formats.Shape, img *image.NRGBA) (*model.Mesh, error) {
	atlasW, atlasH := float32(defaultAtlasSize), float32(defaultAtlasSize)
	if img != nil {
		atlasW = float32(img.Bounds().Dx())
		atlasH = float32(img.Bounds().Dy())
	}
	return model.BuildShapeMesh(shape, atlasW, atlasH)
}

// partTexture resolves a cosmetic's texture image. A direct texture takes
// precedence; otherwise the greyscale source is tinted by gradient or flat
// color. Any resolution failure degrades to a flat-color material.
func (a *Assembler) partTexture(slot Slot, part *formats.Part, skinTone string) *image.NRGBA {
	if part.Texture != "" {
		img, err := a.textures.Texture(part.Texture)
		if err != nil {
			a.log.Warn("texture not resolved, using flat color",
				zap.String("slot", string(slot)),
				zap.String("path", part.Texture),
				zap.Error(err),
			)
			return nil
		}
		return img
	}

	if part.GreyscaleTexture == "" {
		return nil
	}

	gradientPath := part.GradientTexture
	if part.GradientSet {
		gradientPath = SkinGradientPath(skinTone)
	}
	img, err := a.tintedTexture(part.GreyscaleTexture, part.BaseColor, gradientPath)
	if err != nil {
		a.log.Warn("greyscale texture not resolved, using flat color",
			zap.String("slot", string(slot)),
			zap.String("path", part.GreyscaleTexture),
			zap.Error(err),
		)
		return nil
	}
	return img
}

// bodyTexture loads and skin-tints the base body texture for a body type.
func (a *Assembler) bodyTexture(skinTone, bodyType string) *image.NRGBA {
	path := bodyTexturePath(bodyType)
	img, err := a.tintedTexture(path, nil, SkinGradientPath(skinTone))
	if err != nil {
		a.log.Warn("body texture not resolved, using flat skin color",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil
	}
	return img
}

// tintedTexture loads a greyscale source and recolors it, caching the
// result by source path for the assembler's lifetime. The cache key ignores
// the tint parameters: parts sharing a greyscale source get the first tint.
func (a *Assembler) tintedTexture(path string, base *formats.Color, gradientPath string) (*image.NRGBA, error) {
	if img, ok := a.tinted[path]; ok {
		return img, nil
	}

	src, err := a.textures.Texture(path)
	if err != nil {
		return nil, err
	}

	var gradient *image.NRGBA
	if gradientPath != "" {
		gradient, err = a.textures.Texture(gradientPath)
		if err != nil {
			a.log.Warn("gradient not resolved, tinting with flat color",
				zap.String("path", gradientPath),
				zap.Error(err),
			)
			gradient = nil
		}
	}

	var img *image.NRGBA
	if gradient != nil {
		img = texture.Tint(src, nil, gradient)
	} else {
		img = texture.Tint(src, base, nil)
	}

	a.tinted[path] = img
	return img, nil
}

// bodyTexturePath maps a body type to its greyscale texture.
func bodyTexturePath(bodyType string) string {
	if bodyType == formats.BodyMuscular {
		return "textures/body_muscular.png"
	}
	return "textures/body_regular.png"
}

// newNodeFrom creates a scene node with a model node's authored transform.
func newNodeFrom(src *formats.ModelNode) *model.Node {
	n := model.NewNode(src.Name)
	n.Position = math.Vec3{X: src.Position[0], Y: src.Position[1], Z: src.Position[2]}
	q := src.OrientationOrIdentity()
	n.Orientation = math.Quat{X: q[0], Y: q[1], Z: q[2], W: q[3]}
	return n
}
