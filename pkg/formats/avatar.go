package formats

import (
	"encoding/json"
	"fmt"
)

// Body types.
const (
	BodyRegular  = "Regular"
	BodyMuscular = "Muscular"
)

// Color is an opaque RGB color, encoded in JSON as "#rrggbb".
type Color struct {
	R, G, B uint8
}

// UnmarshalJSON parses the "#rrggbb" hex form.
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if len(s) != 7 || s[0] != '#' {
		return fmt.Errorf("%q: %w", s, ErrBadColor)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return fmt.Errorf("%q: %w", s, ErrBadColor)
	}
	c.R, c.G, c.B = r, g, b
	return nil
}

// MarshalJSON emits the "#rrggbb" hex form.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// Part is one equippable cosmetic: a model-tree reference plus styling.
// Texture and GreyscaleTexture are alternative sources; a direct Texture
// takes precedence over the tinted greyscale path.
type Part struct {
	Model            string `json:"model"`
	Texture          string `json:"texture"`
	GreyscaleTexture string `json:"greyscaleTexture"`
	GradientTexture  string `json:"gradientTexture"`
	BaseColor        *Color `json:"baseColor"`
	GradientSet      bool   `json:"gradientSet"`
}

// AvatarDescriptor describes one identity's look: skin tone, body build and
// equipped cosmetics keyed by slot name.
type AvatarDescriptor struct {
	SkinTone string          `json:"skinTone"`
	BodyType string          `json:"bodyType"`
	Parts    map[string]Part `json:"parts"`
}

// ParseAvatar decodes and validates an avatar descriptor.
func ParseAvatar(data []byte) (*AvatarDescriptor, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	var d AvatarDescriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decoding avatar descriptor: %w", err)
	}

	if len(d.SkinTone) != 2 || !isDigit(d.SkinTone[0]) || !isDigit(d.SkinTone[1]) {
		return nil, fmt.Errorf("%q: %w", d.SkinTone, ErrBadSkinTone)
	}

	switch d.BodyType {
	case "":
		d.BodyType = BodyRegular
	case BodyRegular, BodyMuscular:
	default:
		return nil, fmt.Errorf("%q: %w", d.BodyType, ErrUnknownBodyType)
	}

	return &d, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
