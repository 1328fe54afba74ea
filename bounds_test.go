package iconforge

import (
	"math"
	"testing"
)

const boundsEpsilon = 0.5

func TestMeasureBounds_FullCanvasGlyph(t *testing.T) {
	markup := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><rect width="24" height="24" fill="#000"/></svg>`

	b, ok := MeasureBounds(markup, 24, 24, 0)
	if !ok {
		t.Fatal("expected measurable bounds")
	}
	for _, check := range []struct {
		name      string
		got, want float64
	}{
		{"minX", b.MinX, 0},
		{"minY", b.MinY, 0},
		{"maxX", b.MaxX, 24},
		{"maxY", b.MaxY, 24},
	} {
		if math.Abs(check.got-check.want) > boundsEpsilon {
			t.Errorf("%s = %v, want %v", check.name, check.got, check.want)
		}
	}
}

func TestMeasureBounds_OffCenterGlyph(t *testing.T) {
	// The glyph occupies only the left half; its visual center sits at
	// x=6, a quarter of the canvas.
	markup := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><rect x="0" y="0" width="12" height="24" fill="#000"/></svg>`

	b, ok := MeasureBounds(markup, 24, 24, 0)
	if !ok {
		t.Fatal("expected measurable bounds")
	}
	if math.Abs(b.CenterX()-6) > boundsEpsilon {
		t.Errorf("CenterX = %v, want 6", b.CenterX())
	}
	if math.Abs(b.CenterY()-12) > boundsEpsilon {
		t.Errorf("CenterY = %v, want 12", b.CenterY())
	}

	dx, dy := centerOffset(b, ViewBox{W: 24, H: 24})
	if math.Abs(dx-6) > boundsEpsilon {
		t.Errorf("centering correction dx = %v, want 6", dx)
	}
	if math.Abs(dy) > boundsEpsilon {
		t.Errorf("centering correction dy = %v, want 0", dy)
	}
}

func TestMeasureBounds_StrokeExpandsBox(t *testing.T) {
	markup := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><rect x="8" y="8" width="8" height="8" fill="#000"/></svg>`

	plain, ok := MeasureBounds(markup, 24, 24, 0)
	if !ok {
		t.Fatal("expected measurable bounds")
	}
	stroked, ok := MeasureBounds(markup, 24, 24, 2)
	if !ok {
		t.Fatal("expected measurable bounds")
	}
	if stroked.Width() <= plain.Width() || stroked.Height() <= plain.Height() {
		t.Errorf("stroke did not expand bounds: %v vs %v", stroked, plain)
	}
}

func TestMeasureBounds_Unmeasurable(t *testing.T) {
	testCases := []struct {
		name   string
		markup string
	}{
		{name: "unparsable", markup: "<svg><unterminated"},
		{name: "empty document", markup: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"></svg>`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := MeasureBounds(tc.markup, 24, 24, 0); ok {
				t.Error("expected measurement to be unavailable")
			}
		})
	}
}
