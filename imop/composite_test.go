package imop

import (
	"image"
	"image/color"
	"testing"
)

var (
	opaqueRed   = color.NRGBA{R: 255, A: 255}
	opaqueBlue  = color.NRGBA{B: 255, A: 255}
	transparent = color.NRGBA{}
)

func uniform(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestOp_Valid(t *testing.T) {
	for _, op := range Ops {
		if !op.Valid() {
			t.Errorf("%s not recognized as valid", op)
		}
	}
	if Op("src_over_typo").Valid() {
		t.Error("unknown operator reported valid")
	}
}

func TestComposite_OpaqueLayers(t *testing.T) {
	testCases := []struct {
		op   Op
		want color.NRGBA
	}{
		{op: Copy, want: opaqueRed},
		{op: SrcOver, want: opaqueRed},
		{op: DstOver, want: opaqueBlue},
		{op: SrcIn, want: opaqueRed},
		{op: DstIn, want: opaqueBlue},
		{op: SrcOut, want: transparent},
		{op: DstOut, want: transparent},
		{op: SrcAtop, want: opaqueRed},
		{op: DstAtop, want: opaqueBlue},
		{op: Xor, want: transparent},
	}

	for _, tc := range testCases {
		t.Run(string(tc.op), func(t *testing.T) {
			dst := uniform(opaqueBlue)
			Composite(dst, uniform(opaqueRed), tc.op, nil)
			if got := dst.NRGBAAt(1, 1); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestComposite_TransparentSource(t *testing.T) {
	testCases := []struct {
		op   Op
		want color.NRGBA
	}{
		{op: SrcOver, want: opaqueBlue},
		{op: Copy, want: transparent},
		{op: DstIn, want: transparent},
		{op: DstOut, want: opaqueBlue},
		{op: Xor, want: opaqueBlue},
	}

	for _, tc := range testCases {
		t.Run(string(tc.op), func(t *testing.T) {
			dst := uniform(opaqueBlue)
			Composite(dst, uniform(transparent), tc.op, nil)
			if got := dst.NRGBAAt(0, 0); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestComposite_UnknownOpFallsBackToSrcOver(t *testing.T) {
	dst := uniform(opaqueBlue)
	Composite(dst, uniform(opaqueRed), Op("bogus"), nil)
	if got := dst.NRGBAAt(0, 0); got != opaqueRed {
		t.Errorf("got %v, want %v", got, opaqueRed)
	}
}

func TestComposite_OutsideOverlapUntouched(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			dst.SetNRGBA(x, y, opaqueBlue)
		}
	}
	Composite(dst, uniform(opaqueRed), Copy, nil)

	if got := dst.NRGBAAt(1, 1); got != opaqueRed {
		t.Errorf("inside overlap: got %v, want %v", got, opaqueRed)
	}
	if got := dst.NRGBAAt(3, 3); got != opaqueBlue {
		t.Errorf("outside overlap: got %v, want %v", got, opaqueBlue)
	}
}

func TestFlatten(t *testing.T) {
	dst := uniform(opaqueBlue)
	src := uniform(transparent)
	src.SetNRGBA(0, 0, opaqueRed)
	Flatten(dst, src)

	if got := dst.NRGBAAt(0, 0); got != opaqueRed {
		t.Errorf("covered pixel: got %v, want %v", got, opaqueRed)
	}
	if got := dst.NRGBAAt(1, 1); got != opaqueBlue {
		t.Errorf("uncovered pixel: got %v, want %v", got, opaqueBlue)
	}
}

func TestBlend_Modes(t *testing.T) {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.NRGBA{A: 255}
	magenta := color.NRGBA{R: 255, B: 255, A: 255}

	testCases := []struct {
		name     string
		mode     Mode
		src, dst color.NRGBA
		want     color.NRGBA
	}{
		{name: "darken picks channel minima", mode: Darken, src: opaqueRed, dst: opaqueBlue, want: black},
		{name: "lighten picks channel maxima", mode: Lighten, src: opaqueRed, dst: opaqueBlue, want: magenta},
		{name: "multiply by white is identity", mode: Multiply, src: opaqueRed, dst: white, want: opaqueRed},
		{name: "multiply by black is black", mode: Multiply, src: opaqueRed, dst: black, want: black},
		{name: "screen of red over blue", mode: Screen, src: opaqueRed, dst: opaqueBlue, want: magenta},
		{name: "overlay on black stays black", mode: Overlay, src: opaqueRed, dst: black, want: black},
		{name: "overlay on white stays white", mode: Overlay, src: opaqueRed, dst: white, want: white},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dst := uniform(tc.dst)
			Composite(dst, uniform(tc.src), SrcOver, NewBlend(tc.mode))
			if got := dst.NRGBAAt(0, 0); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBlend_SetIgnoresUnknownMode(t *testing.T) {
	b := NewBlend(Multiply)
	b.Set(Mode("plasma"))
	if got := b.Get(); got != Multiply {
		t.Errorf("mode = %q, want %q", got, Multiply)
	}

	// An unknown initial mode leaves the blend inactive: apply is identity.
	inactive := NewBlend(Mode("plasma"))
	if got := inactive.Get(); got != "" {
		t.Errorf("mode = %q, want inactive", got)
	}
	dst := uniform(opaqueBlue)
	Composite(dst, uniform(opaqueRed), SrcOver, inactive)
	if got := dst.NRGBAAt(0, 0); got != opaqueRed {
		t.Errorf("inactive blend altered source: got %v", got)
	}
}
