package avatar

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/playforge/avatarview/internal/engine/anim"
	"github.com/playforge/avatarview/internal/engine/model"
	"github.com/playforge/avatarview/pkg/formats"
)

// errNotBuilt guards facade methods called before a successful Load.
var errNotBuilt = errors.New("avatar not built")

// AssetSource provides the already-fetched documents and images an avatar
// needs. Network or disk retrieval lives behind this interface.
type AssetSource interface {
	TextureSource
	Model(path string) (*formats.Model, error)
	Animation(path string) (*formats.Animation, error)
}

// Callbacks fire at the avatar lifecycle milestones. Nil members are
// skipped.
type Callbacks struct {
	OnFetchStart      func(path string)
	OnModelBuilt      func()
	OnAnimationLoaded func(path string)
	OnError           func(err error)
}

// Avatar is the viewer-facing facade: it owns one assembled scene graph
// and the animation sampler mutating it, and is driven by an external
// frame loop through Tick.
type Avatar struct {
	assets    AssetSource
	asm       *Assembler
	sampler   *anim.Sampler
	callbacks Callbacks
	log       *zap.Logger

	// generation invalidates in-flight loads: each Load bumps it, and
	// continuations discard their results when it has moved on.
	generation atomic.Int64

	mu    sync.Mutex
	scene *model.Scene
}

// New creates an avatar over an asset source.
func New(assets AssetSource, callbacks Callbacks, log *zap.Logger) *Avatar {
	if log == nil {
		log = zap.NewNop()
	}
	return &Avatar{
		assets:    assets,
		asm:       NewAssembler(assets, log),
		sampler:   anim.NewSampler(),
		callbacks: callbacks,
		log:       log,
	}
}

// Load replaces the current scene graph from an avatar descriptor. The base
// model failing to load is fatal and reported through OnError; a failing
// cosmetic slot only loses that slot. A Load superseded by a newer one
// discards its result and returns nil.
func (av *Avatar) Load(desc *formats.AvatarDescriptor) error {
	gen := av.generation.Add(1)

	basePath := baseModelPath(desc.BodyType)
	av.fetchStart(basePath)
	base, err := av.assets.Model(basePath)
	if err != nil {
		err = fmt.Errorf("loading base model %s: %w", basePath, err)
		av.fail(err)
		return err
	}

	parts := make(map[Slot]EquippedPart, len(desc.Parts))
	for slotName, part := range desc.Parts {
		slot := Slot(slotName)
		if !knownSlot(slot) {
			av.log.Warn("unknown cosmetic slot", zap.String("slot", slotName))
			continue
		}
		if part.Model == "" {
			av.log.Warn("cosmetic part without model", zap.String("slot", slotName))
			continue
		}
		av.fetchStart(part.Model)
		doc, err := av.assets.Model(part.Model)
		if err != nil {
			av.log.Warn("skipping cosmetic slot",
				zap.String("slot", slotName),
				zap.String("path", part.Model),
				zap.Error(err),
			)
			continue
		}
		parts[slot] = EquippedPart{Doc: doc, Part: part}
	}

	scene, err := av.asm.Build(base, desc.SkinTone, desc.BodyType, parts)
	if err != nil {
		err = fmt.Errorf("assembling avatar: %w", err)
		av.fail(err)
		return err
	}

	// A newer Load superseded this one; drop the stale scene.
	if av.generation.Load() != gen {
		av.log.Debug("discarding stale avatar build")
		return nil
	}

	av.mu.Lock()
	av.scene = scene
	av.sampler.Reset()
	av.mu.Unlock()

	if av.callbacks.OnModelBuilt != nil {
		av.callbacks.OnModelBuilt()
	}
	return nil
}

// SetAnimation loads and installs an animation by path. An empty path
// clears the current animation and restores rest poses.
func (av *Avatar) SetAnimation(path string) error {
	av.mu.Lock()
	defer av.mu.Unlock()

	if av.scene == nil {
		return errNotBuilt
	}
	if path == "" {
		av.sampler.Clear(av.scene)
		return nil
	}

	av.fetchStart(path)
	a, err := av.assets.Animation(path)
	if err != nil {
		err = fmt.Errorf("loading animation %s: %w", path, err)
		av.fail(err)
		return err
	}
	av.sampler.SetAnimation(a)

	if av.callbacks.OnAnimationLoaded != nil {
		av.callbacks.OnAnimationLoaded(path)
	}
	return nil
}

// Tick advances animation time by a wall-clock delta in milliseconds and
// applies the sampled poses. Called once per rendered frame by the host's
// frame driver.
func (av *Avatar) Tick(deltaMs float32) {
	av.mu.Lock()
	defer av.mu.Unlock()

	if av.scene == nil {
		return
	}
	av.sampler.Advance(deltaMs)
	av.sampler.Apply(av.scene)
}

// Scene returns the current scene graph, or nil before the first Load.
func (av *Avatar) Scene() *model.Scene {
	av.mu.Lock()
	defer av.mu.Unlock()
	return av.scene
}

func (av *Avatar) fetchStart(path string) {
	if av.callbacks.OnFetchStart != nil {
		av.callbacks.OnFetchStart(path)
	}
}

func (av *Avatar) fail(err error) {
	av.log.Error("avatar load failed", zap.Error(err))
	if av.callbacks.OnError != nil {
		av.callbacks.OnError(err)
	}
}

// knownSlot reports whether a slot name is in the render-order table.
func knownSlot(slot Slot) bool {
	for _, s := range RenderOrder {
		if s == slot {
			return true
		}
	}
	return false
}

// baseModelPath maps a body type to the base skeleton document.
func baseModelPath(bodyType string) string {
	if bodyType == formats.BodyMuscular {
		return "models/body_muscular.json"
	}
	return "models/body_regular.json"
}
