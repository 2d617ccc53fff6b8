package formats

import (
	"errors"
	"testing"
)

func TestParseAvatar_BadSkinTone(t *testing.T) {
	for _, doc := range []string{
		`{"skinTone": ""}`,
		`{"skinTone": "1"}`,
		`{"skinTone": "ab"}`,
		`{"skinTone": "123"}`,
	} {
		_, err := ParseAvatar([]byte(doc))
		if !errors.Is(err, ErrBadSkinTone) {
			t.Errorf("%s: expected ErrBadSkinTone, got %v", doc, err)
		}
	}
}

func TestParseAvatar_UnknownBodyType(t *testing.T) {
	_, err := ParseAvatar([]byte(`{"skinTone": "01", "bodyType": "Slim"}`))
	if !errors.Is(err, ErrUnknownBodyType) {
		t.Errorf("expected ErrUnknownBodyType, got %v", err)
	}
}

func TestParseAvatar_DefaultBodyType(t *testing.T) {
	d, err := ParseAvatar([]byte(`{"skinTone": "03"}`))
	if err != nil {
		t.Fatalf("failed to parse avatar: %v", err)
	}
	if d.BodyType != BodyRegular {
		t.Errorf("missing bodyType should default to Regular, got %q", d.BodyType)
	}
}

func TestParseAvatar_Valid(t *testing.T) {
	doc := `{
		"skinTone": "05",
		"bodyType": "Muscular",
		"parts": {
			"pants": {"model": "models/pants_basic.json", "baseColor": "#3f516b"},
			"eyes": {"model": "models/eyes_round.json", "texture": "eyes_round"}
		}
	}`

	d, err := ParseAvatar([]byte(doc))
	if err != nil {
		t.Fatalf("failed to parse avatar: %v", err)
	}

	if d.SkinTone != "05" || d.BodyType != BodyMuscular {
		t.Errorf("header: got tone=%q body=%q", d.SkinTone, d.BodyType)
	}

	pants, ok := d.Parts["pants"]
	if !ok {
		t.Fatal("pants part missing")
	}
	if pants.BaseColor == nil || *pants.BaseColor != (Color{R: 0x3f, G: 0x51, B: 0x6b}) {
		t.Errorf("pants baseColor: got %+v", pants.BaseColor)
	}
}

func TestColorRoundTrip(t *testing.T) {
	c := Color{R: 0xab, G: 0x00, B: 0xff}
	data, err := c.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"#ab00ff"` {
		t.Errorf("expected \"#ab00ff\", got %s", data)
	}

	var back Color
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != c {
		t.Errorf("round trip: got %+v, want %+v", back, c)
	}
}

func TestColorUnmarshal_Bad(t *testing.T) {
	for _, s := range []string{`"ab00ff"`, `"#ab00f"`, `"#zz00ff"`, `42`} {
		var c Color
		if err := c.UnmarshalJSON([]byte(s)); err == nil {
			t.Errorf("%s: expected error", s)
		}
	}
}
