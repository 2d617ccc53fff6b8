package formats

import (
	"encoding/json"
	"fmt"
)

// Interpolation types for keyframes.
const (
	InterpLinear = "linear"
	InterpSmooth = "smooth"
)

// DefaultAnimationFPS is the tick rate assumed when a document omits fps.
const DefaultAnimationFPS = 24.0

// Keyframe is one sampled delta on a track. Delta has 3 components for
// position tracks and 4 (x,y,z,w quaternion) for orientation tracks; it is
// an offset composed onto the node's rest pose, never an absolute pose.
type Keyframe struct {
	Time          float32   `json:"time"`
	Delta         []float32 `json:"delta"`
	Interpolation string    `json:"interpolationType"`
}

// NodeTracks holds the keyframe tracks for one named node.
type NodeTracks struct {
	Position    []Keyframe `json:"position"`
	Orientation []Keyframe `json:"orientation"`
}

// Animation is a parsed animation document. Duration bounds the time domain
// in ticks at FPS ticks per second; HoldLastKeyframe freezes sampling at
// Duration instead of looping.
type Animation struct {
	Duration         float32               `json:"duration"`
	HoldLastKeyframe bool                  `json:"holdLastKeyframe"`
	FPS              float32               `json:"fps"`
	NodeAnimations   map[string]NodeTracks `json:"nodeAnimations"`
}

// TicksPerSecond returns the document's tick rate, defaulting to 24.
func (a *Animation) TicksPerSecond() float32 {
	if a.FPS <= 0 {
		return DefaultAnimationFPS
	}
	return a.FPS
}

// ParseAnimation decodes and validates an animation document.
func ParseAnimation(data []byte) (*Animation, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	var a Animation
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decoding animation document: %w", err)
	}
	if a.Duration <= 0 {
		return nil, ErrNonPositiveDuration
	}

	for name, tracks := range a.NodeAnimations {
		if err := validateTrack(name, "position", tracks.Position, 3); err != nil {
			return nil, err
		}
		if err := validateTrack(name, "orientation", tracks.Orientation, 4); err != nil {
			return nil, err
		}
	}
	return &a, nil
}

func validateTrack(node, kind string, keys []Keyframe, wantComponents int) error {
	for i, k := range keys {
		switch k.Interpolation {
		case "", InterpLinear, InterpSmooth:
		default:
			return fmt.Errorf("node %q %s key %d type %q: %w",
				node, kind, i, k.Interpolation, ErrUnknownInterpolation)
		}
		if len(k.Delta) != wantComponents {
			return fmt.Errorf("node %q %s key %d has %d components: %w",
				node, kind, i, len(k.Delta), ErrBadDeltaLength)
		}
	}
	return nil
}
