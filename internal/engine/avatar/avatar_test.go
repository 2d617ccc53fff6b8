package avatar

import (
	"errors"
	"testing"

	"github.com/playforge/avatarview/pkg/formats"
)

func regularDescriptor(parts map[string]formats.Part) *formats.AvatarDescriptor {
	return &formats.AvatarDescriptor{
		SkinTone: "01",
		BodyType: formats.BodyRegular,
		Parts:    parts,
	}
}

func TestAvatarLoad_MissingBaseIsFatal(t *testing.T) {
	assets := newFakeAssets()

	var reported error
	av := New(assets, Callbacks{OnError: func(err error) { reported = err }}, nil)

	err := av.Load(regularDescriptor(nil))
	if err == nil {
		t.Fatal("missing base model must fail the load")
	}
	if reported == nil {
		t.Error("OnError callback not fired")
	}
	if av.Scene() != nil {
		t.Error("failed load must not install a scene")
	}
}

func TestAvatarLoad_Success(t *testing.T) {
	assets := newFakeAssets()
	assets.models["models/body_regular.json"] = baseSkeleton()

	var built bool
	var fetched []string
	av := New(assets, Callbacks{
		OnModelBuilt: func() { built = true },
		OnFetchStart: func(path string) { fetched = append(fetched, path) },
	}, nil)

	if err := av.Load(regularDescriptor(nil)); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if !built {
		t.Error("OnModelBuilt not fired")
	}
	if av.Scene() == nil {
		t.Fatal("scene missing after load")
	}
	if len(fetched) == 0 || fetched[0] != "models/body_regular.json" {
		t.Errorf("fetch callbacks: %v", fetched)
	}
}

func TestAvatarLoad_MuscularBody(t *testing.T) {
	assets := newFakeAssets()
	assets.models["models/body_muscular.json"] = baseSkeleton()

	av := New(assets, Callbacks{}, nil)
	desc := regularDescriptor(nil)
	desc.BodyType = formats.BodyMuscular

	if err := av.Load(desc); err != nil {
		t.Fatalf("load failed: %v", err)
	}
}

func TestAvatarLoad_BrokenSlotSkipped(t *testing.T) {
	assets := newFakeAssets()
	assets.models["models/body_regular.json"] = baseSkeleton()
	assets.models["models/pants.json"] = &formats.Model{
		Nodes: []formats.ModelNode{boneNode("PantsMesh")},
	}

	desc := regularDescriptor(map[string]formats.Part{
		"pants":  {Model: "models/pants.json"},
		"gloves": {Model: "models/gloves_missing.json"},
		"hat":    {Model: "models/unknown_slot.json"},
	})

	av := New(assets, Callbacks{}, nil)
	if err := av.Load(desc); err != nil {
		t.Fatalf("broken cosmetic slots must not fail the load: %v", err)
	}

	scene := av.Scene()
	if scene.Node("PantsMesh") == nil {
		t.Error("healthy pants slot should be attached")
	}
	// Pants occlusion applied even though gloves failed
	if n := scene.Node("Pelvis"); n == nil || n.Mesh != nil {
		t.Error("pants occlusion missing")
	}
}

func TestAvatarLoad_ReplacesScene(t *testing.T) {
	assets := newFakeAssets()
	assets.models["models/body_regular.json"] = baseSkeleton()

	var builds int
	av := New(assets, Callbacks{OnModelBuilt: func() { builds++ }}, nil)
	if err := av.Load(regularDescriptor(nil)); err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	first := av.Scene()

	if err := av.Load(regularDescriptor(nil)); err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	if av.Scene() == first {
		t.Error("reload must replace the scene graph")
	}

	// Hosts release per-scene resources from this callback, so it must
	// fire for every rebuild
	if builds != 2 {
		t.Errorf("OnModelBuilt fired %d times, want 2", builds)
	}
}

func TestAvatarSetAnimation_BeforeLoad(t *testing.T) {
	av := New(newFakeAssets(), Callbacks{}, nil)
	if err := av.SetAnimation("animations/idle.json"); !errors.Is(err, errNotBuilt) {
		t.Errorf("expected errNotBuilt, got %v", err)
	}
}

func TestAvatarTick_AnimatesAndClears(t *testing.T) {
	assets := newFakeAssets()
	assets.models["models/body_regular.json"] = baseSkeleton()
	assets.anims["animations/wave.json"] = &formats.Animation{
		Duration: 10,
		FPS:      1000,
		NodeAnimations: map[string]formats.NodeTracks{
			"Chest": {
				Position: []formats.Keyframe{
					{Time: 0, Delta: []float32{0, 0, 0}},
					{Time: 5, Delta: []float32{16, 0, 0}},
				},
			},
		},
	}

	var animated string
	av := New(assets, Callbacks{
		OnAnimationLoaded: func(path string) { animated = path },
	}, nil)

	if err := av.Load(regularDescriptor(nil)); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := av.SetAnimation("animations/wave.json"); err != nil {
		t.Fatalf("set animation failed: %v", err)
	}
	if animated != "animations/wave.json" {
		t.Errorf("OnAnimationLoaded got %q", animated)
	}

	chest := av.Scene().Node("Chest")
	rest := chest.Position

	av.Tick(5)
	if chest.Position == rest {
		t.Fatal("tick should move the animated bone")
	}

	// Clearing the animation restores the rest pose
	if err := av.SetAnimation(""); err != nil {
		t.Fatalf("clearing animation failed: %v", err)
	}
	if chest.Position != rest {
		t.Errorf("rest pose not restored: %+v", chest.Position)
	}
}

func TestAvatarSetAnimation_MissingDocument(t *testing.T) {
	assets := newFakeAssets()
	assets.models["models/body_regular.json"] = baseSkeleton()

	var reported error
	av := New(assets, Callbacks{OnError: func(err error) { reported = err }}, nil)

	if err := av.Load(regularDescriptor(nil)); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := av.SetAnimation("animations/missing.json"); err == nil {
		t.Fatal("missing animation should error")
	}
	if reported == nil {
		t.Error("OnError callback not fired")
	}
}
