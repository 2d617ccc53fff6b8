// Package formats provides parsers for avatar asset documents.
// All documents are JSON produced by the authoring tool: model trees,
// keyframe animations, and avatar descriptors.
package formats

import "errors"

// Document validation errors.
var (
	ErrEmptyDocument        = errors.New("empty document")
	ErrNoNodes              = errors.New("model has no nodes")
	ErrUnnamedNode          = errors.New("model node has no name")
	ErrDuplicateNodeName    = errors.New("duplicate node name in model tree")
	ErrUnknownShapeType     = errors.New("unknown shape type")
	ErrMissingShapeSize     = errors.New("shape has no size")
	ErrNonPositiveDuration  = errors.New("animation duration must be positive")
	ErrUnknownInterpolation = errors.New("unknown interpolation type")
	ErrBadDeltaLength       = errors.New("keyframe delta has wrong component count")
	ErrBadSkinTone          = errors.New("skin tone must be a 2-digit code")
	ErrUnknownBodyType      = errors.New("unknown body type")
	ErrBadColor             = errors.New("color must be #rrggbb hex")
)
