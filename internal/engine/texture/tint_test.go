package texture

import (
	"image"
	"image/color"
	"testing"

	"github.com/playforge/avatarview/pkg/formats"
)

func greyImage(pixels ...uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, len(pixels), 1))
	for i, g := range pixels {
		img.SetNRGBA(i, 0, color.NRGBA{R: g, G: g, B: g, A: 255})
	}
	return img
}

func TestTint_FlatColorFormula(t *testing.T) {
	base := &formats.Color{R: 200, G: 100, B: 50}

	tests := []struct {
		name string
		grey uint8
		want color.NRGBA
	}{
		// channel = base*2*grey/255, clamped
		{"mid grey is identity", 127, color.NRGBA{R: 199, G: 99, B: 49, A: 255}},
		{"black stays black", 0, color.NRGBA{R: 0, G: 0, B: 0, A: 255}},
		{"bright grey over-brightens and clamps", 255, color.NRGBA{R: 255, G: 200, B: 100, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Tint(greyImage(tt.grey), base, nil)
			got := out.NRGBAAt(0, 0)
			if got != tt.want {
				t.Errorf("grey %d: got %+v, want %+v", tt.grey, got, tt.want)
			}
		})
	}
}

func TestTint_NonMarkerPixelsUntouched(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	colored := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	transparent := color.NRGBA{R: 128, G: 128, B: 128, A: 0}
	translucentGrey := color.NRGBA{R: 100, G: 100, B: 100, A: 80}
	img.SetNRGBA(0, 0, colored)
	img.SetNRGBA(1, 0, transparent)
	img.SetNRGBA(2, 0, translucentGrey)

	out := Tint(img, &formats.Color{R: 255, G: 0, B: 0}, nil)

	if got := out.NRGBAAt(0, 0); got != colored {
		t.Errorf("colored pixel changed: %+v", got)
	}
	if got := out.NRGBAAt(1, 0); got != transparent {
		t.Errorf("transparent pixel changed: %+v", got)
	}
	// Translucent marker is still a marker; only RGB changes, alpha survives
	if got := out.NRGBAAt(2, 0); got.A != 80 {
		t.Errorf("marker alpha not preserved: %+v", got)
	}
}

func TestTint_GradientLookup(t *testing.T) {
	// 4-column gradient: distinct colors per column
	gradient := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	for i := 0; i < 4; i++ {
		gradient.SetNRGBA(i, 0, color.NRGBA{R: uint8(i * 10), G: 0, B: 0, A: 255})
	}

	out := Tint(greyImage(0, 2, 200), nil, gradient)

	if got := out.NRGBAAt(0, 0); got.R != 0 {
		t.Errorf("grey 0 should read column 0, got %+v", got)
	}
	if got := out.NRGBAAt(1, 0); got.R != 20 {
		t.Errorf("grey 2 should read column 2, got %+v", got)
	}
	// Grey beyond the gradient width clamps to the last column
	if got := out.NRGBAAt(2, 0); got.R != 30 {
		t.Errorf("grey 200 should clamp to column 3, got %+v", got)
	}
}

func TestTint_NoParamsPassesThrough(t *testing.T) {
	out := Tint(greyImage(42), nil, nil)
	want := color.NRGBA{R: 42, G: 42, B: 42, A: 255}
	if got := out.NRGBAAt(0, 0); got != want {
		t.Errorf("untinted marker should pass through: got %+v, want %+v", got, want)
	}
}
