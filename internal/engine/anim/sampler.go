// Package anim samples keyframe animation tracks onto a scene graph.
package anim

import (
	"sort"

	"github.com/playforge/avatarview/internal/engine/model"
	"github.com/playforge/avatarview/pkg/formats"
	"github.com/playforge/avatarview/pkg/math"
)

// PositionScale converts authored position deltas (model units) to world
// units.
const PositionScale = 1.0 / 16.0

// MaxFrameDeltaMs caps the wall-clock delta applied per tick, so a stalled
// frame does not jump the animation.
const MaxFrameDeltaMs = 100.0

// pose is a node's rest transform captured before any animation delta.
type pose struct {
	position    math.Vec3
	orientation math.Quat
}

// Sampler resolves per-node pose deltas from an animation at a time cursor
// and applies them over cached rest poses. The rest cache is scoped to one
// avatar instance and dropped wholesale on rebuild.
type Sampler struct {
	anim   *formats.Animation
	tracks map[string]formats.NodeTracks
	ticks  float32
	rest   map[string]pose
}

// NewSampler creates an empty sampler.
func NewSampler() *Sampler {
	return &Sampler{rest: make(map[string]pose)}
}

// SetAnimation installs an animation and rewinds the time cursor. Tracks
// are copied and sorted by keyframe time once, up front. A nil animation
// only detaches; use Clear to also restore rest poses.
func (s *Sampler) SetAnimation(a *formats.Animation) {
	s.ticks = 0
	s.anim = a
	s.tracks = nil
	if a == nil {
		return
	}

	s.tracks = make(map[string]formats.NodeTracks, len(a.NodeAnimations))
	for name, t := range a.NodeAnimations {
		s.tracks[name] = formats.NodeTracks{
			Position:    sortedKeys(t.Position),
			Orientation: sortedKeys(t.Orientation),
		}
	}
}

// Clear detaches the current animation and restores every touched node to
// its cached rest pose.
func (s *Sampler) Clear(scene *model.Scene) {
	for name, p := range s.rest {
		if node := scene.Node(name); node != nil {
			node.Position = p.position
			node.Orientation = p.orientation
		}
	}
	s.SetAnimation(nil)
}

// Reset drops all sampler state. Called when the avatar is rebuilt; rest
// poses must never survive across unrelated scene graphs.
func (s *Sampler) Reset() {
	s.anim = nil
	s.tracks = nil
	s.ticks = 0
	s.rest = make(map[string]pose)
}

// Advance moves the time cursor by a wall-clock delta in milliseconds,
// clamped to MaxFrameDeltaMs and converted to the animation's tick rate.
// With holdLastKeyframe the cursor saturates at the duration.
func (s *Sampler) Advance(deltaMs float32) {
	if s.anim == nil {
		return
	}
	if deltaMs > MaxFrameDeltaMs {
		deltaMs = MaxFrameDeltaMs
	}
	s.ticks += deltaMs / 1000 * s.anim.TicksPerSecond()
	if s.anim.HoldLastKeyframe && s.ticks > s.anim.Duration {
		s.ticks = s.anim.Duration
	}
}

// Time returns the current cursor in ticks.
func (s *Sampler) Time() float32 {
	return s.ticks
}

// Apply samples every track at the current cursor and writes the resulting
// poses into the scene. Missing nodes, absent tracks and empty keyframe
// lists each degrade to a no-op for that node; nothing aborts the frame.
func (s *Sampler) Apply(scene *model.Scene) {
	if s.anim == nil {
		return
	}

	t := s.ticks
	if s.anim.HoldLastKeyframe {
		if t > s.anim.Duration {
			t = s.anim.Duration
		}
	} else {
		t = WrapTime(t, s.anim.Duration)
	}

	for name, tracks := range s.tracks {
		node := scene.Node(name)
		if node == nil {
			continue
		}

		restPose := s.restPose(name, node)

		if len(tracks.Orientation) > 0 {
			delta := SampleOrientation(tracks.Orientation, t, s.anim.Duration)
			node.Orientation = restPose.orientation.Mul(delta)
		}
		if len(tracks.Position) > 0 {
			delta := SamplePosition(tracks.Position, t, s.anim.Duration)
			node.Position = restPose.position.Add(delta.Scale(PositionScale))
		}
	}
}

// restPose returns the cached rest pose for a node, capturing it lazily the
// first time any animation touches the node.
func (s *Sampler) restPose(name string, node *model.Node) pose {
	if p, ok := s.rest[name]; ok {
		return p
	}
	p := pose{position: node.Position, orientation: node.Orientation}
	s.rest[name] = p
	return p
}

// WrapTime folds t into [0, duration) so negative or overflowed time still
// resolves. Hold-last tracks bypass this.
func WrapTime(t, duration float32) float32 {
	if duration <= 0 {
		return 0
	}
	wrapped := t - duration*float32(int(t/duration))
	if wrapped < 0 {
		wrapped += duration
	}
	return wrapped
}

// SmoothStep applies the smooth interpolation curve f^2*(3-2f).
func SmoothStep(f float32) float32 {
	return f * f * (3 - 2*f)
}

// SampleOrientation interpolates an orientation track at t, returning the
// delta quaternion to compose onto the rest orientation.
func SampleOrientation(keys []formats.Keyframe, t, duration float32) math.Quat {
	k0, k1, f := bracket(keys, t, duration)
	q0 := quatFromDelta(k0.Delta)
	q1 := quatFromDelta(k1.Delta)
	return q0.Slerp(q1, f)
}

// SamplePosition interpolates a position track at t, returning the delta in
// model units.
func SamplePosition(keys []formats.Keyframe, t, duration float32) math.Vec3 {
	k0, k1, f := bracket(keys, t, duration)
	p0 := vec3FromDelta(k0.Delta)
	p1 := vec3FromDelta(k1.Delta)
	return p0.Lerp(p1, f)
}

// bracket finds the keyframe pair straddling t and the interpolation
// fraction between them. Outside the keyed range the track is treated as
// cyclic: the bracket runs from the last keyframe back to the first, with
// the first's time extended by +duration so the fraction stays continuous
// across the loop seam. The earlier keyframe's interpolation type selects
// the curve.
func bracket(keys []formats.Keyframe, t, duration float32) (k0, k1 formats.Keyframe, f float32) {
	if len(keys) == 1 {
		return keys[0], keys[0], 0
	}

	first := keys[0]
	last := keys[len(keys)-1]

	if t < first.Time || t > last.Time {
		k0, k1 = last, first
		k1Time := first.Time + duration
		tt := t
		if tt < first.Time {
			tt += duration
		}
		f = fraction(tt, k0.Time, k1Time)
	} else {
		k0, k1 = first, first
		for i := 1; i < len(keys); i++ {
			if keys[i].Time >= t {
				k0, k1 = keys[i-1], keys[i]
				break
			}
		}
		f = fraction(t, k0.Time, k1.Time)
	}

	if k0.Interpolation == formats.InterpSmooth {
		f = SmoothStep(f)
	}
	return k0, k1, f
}

// fraction computes the clamped interpolation fraction of t in [t0, t1].
func fraction(t, t0, t1 float32) float32 {
	if t1 <= t0 {
		return 0
	}
	f := (t - t0) / (t1 - t0)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func quatFromDelta(delta []float32) math.Quat {
	if len(delta) < 4 {
		return math.QuatIdentity()
	}
	return math.Quat{X: delta[0], Y: delta[1], Z: delta[2], W: delta[3]}
}

func vec3FromDelta(delta []float32) math.Vec3 {
	if len(delta) < 3 {
		return math.Vec3{}
	}
	return math.Vec3{X: delta[0], Y: delta[1], Z: delta[2]}
}

// sortedKeys returns a time-sorted copy of a keyframe list.
func sortedKeys(keys []formats.Keyframe) []formats.Keyframe {
	out := make([]formats.Keyframe, len(keys))
	copy(out, keys)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}
