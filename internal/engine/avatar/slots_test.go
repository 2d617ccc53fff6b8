package avatar

import "testing"

func TestHiddenParts(t *testing.T) {
	tests := []struct {
		name     string
		equipped map[Slot]bool
		want     []string
	}{
		{"nothing equipped", map[Slot]bool{}, nil},
		{"pants hide legs", map[Slot]bool{SlotPants: true},
			[]string{"Pelvis", "L-Thigh", "R-Thigh", "L-Calf", "R-Calf"}},
		{"overpants hide legs too", map[Slot]bool{SlotOverpants: true},
			[]string{"Pelvis", "L-Thigh", "R-Thigh", "L-Calf", "R-Calf"}},
		{"top hides torso", map[Slot]bool{SlotOvertop: true},
			[]string{"Belly", "Chest"}},
		{"shoes hide feet", map[Slot]bool{SlotShoes: true},
			[]string{"L-Foot", "R-Foot"}},
		{"haircut hides scalp", map[Slot]bool{SlotHaircut: true},
			[]string{"Head-Top", "Hair-Base"}},
		{"unrelated slot hides nothing", map[Slot]bool{SlotGloves: true}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hidden := HiddenParts(tt.equipped)
			if len(hidden) != len(tt.want) {
				t.Fatalf("got %d hidden bones %v, want %d", len(hidden), hidden, len(tt.want))
			}
			for _, name := range tt.want {
				if !hidden[name] {
					t.Errorf("expected %q hidden", name)
				}
			}
		})
	}
}

func TestOffsetParts(t *testing.T) {
	offset := OffsetParts(map[Slot]bool{SlotUndertop: true})
	want := []string{"L-UpperArm", "L-LowerArm", "R-UpperArm", "R-LowerArm"}
	if len(offset) != len(want) {
		t.Fatalf("got %v", offset)
	}
	for _, name := range want {
		if !offset[name] {
			t.Errorf("expected %q offset", name)
		}
	}

	if len(OffsetParts(map[Slot]bool{SlotPants: true})) != 0 {
		t.Error("pants should not offset anything")
	}
}

func TestRenderOrderFor(t *testing.T) {
	tests := []struct {
		slot Slot
		node string
		want int
	}{
		{SlotFace, "Face", renderOrderFaceMesh},
		{SlotMouth, "Mouth", renderOrderMouth},
		{SlotEyes, "EyeBackground", renderOrderEyeBackground},
		{SlotEyes, "LeftIris", renderOrderIris},
		{SlotEyes, "right-iris", renderOrderIris},
		{SlotPants, "Pelvis", 0},
	}
	for _, tt := range tests {
		if got := renderOrderFor(tt.slot, tt.node); got != tt.want {
			t.Errorf("renderOrderFor(%s, %s) = %d, want %d", tt.slot, tt.node, got, tt.want)
		}
	}
}

func TestRenderOrderCoversAllSlots(t *testing.T) {
	if len(RenderOrder) != 18 {
		t.Fatalf("render order lists %d slots, want 18", len(RenderOrder))
	}
	seen := map[Slot]bool{}
	for _, s := range RenderOrder {
		if seen[s] {
			t.Errorf("slot %s listed twice", s)
		}
		seen[s] = true
	}
}
