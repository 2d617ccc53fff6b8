package texture

import (
	"image"
	"testing"
)

func TestEyeShadow_Regions(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	out := EyeShadow(src)

	if out.Bounds() != src.Bounds() {
		t.Fatalf("overlay bounds %v differ from source %v", out.Bounds(), src.Bounds())
	}

	// Top row of both regions carries the 25% shadow (0.25*255 truncated)
	wantTop := uint8(63)
	for _, x := range []int{1, 14, 17, 30} {
		if got := out.NRGBAAt(x, 1); got.A != wantTop {
			t.Errorf("(%d,1): alpha %d, want %d", x, got.A, wantTop)
		}
		if got := out.NRGBAAt(x, 1); got.R != 0 || got.G != 0 || got.B != 0 {
			t.Errorf("(%d,1): shadow must be black, got %+v", x, got)
		}
	}

	// Outside the regions stays fully transparent
	for _, p := range [][2]int{{0, 1}, {15, 1}, {16, 1}, {31, 1}, {1, 0}, {1, 20}} {
		if got := out.NRGBAAt(p[0], p[1]); got.A != 0 {
			t.Errorf("(%d,%d): expected transparent, got alpha %d", p[0], p[1], got.A)
		}
	}
}

func TestEyeShadow_Fade(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	out := EyeShadow(src)

	// Alpha fades linearly over the first 4 region rows, then zero
	wantRows := []uint8{63, 47, 31, 15, 0}
	for row, want := range wantRows {
		got := out.NRGBAAt(2, 1+row).A
		if got != want {
			t.Errorf("region row %d: alpha %d, want %d", row, got, want)
		}
	}
}

func TestEyeShadow_SmallTexture(t *testing.T) {
	// A texture narrower than the right region must not panic
	src := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	out := EyeShadow(src)

	if got := out.NRGBAAt(2, 1).A; got == 0 {
		t.Error("left region should still be shadowed")
	}
}
