package iconforge

import (
	"image"
	"math"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Bounds is the visual pixel extent of rendered vector content, expressed
// in the glyph's own coordinate space.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent of the box.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the box.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// CenterX returns the horizontal visual center.
func (b Bounds) CenterX() float64 { return b.MinX + (b.MaxX-b.MinX)/2 }

// CenterY returns the vertical visual center.
func (b Bounds) CenterY() float64 { return b.MinY + (b.MaxY-b.MinY)/2 }

// measureRes is the supersampling resolution used when measuring visual
// bounds. Icon sets ship glyphs at 16-48 units; scanning at the intrinsic
// size would quantize thin strokes away.
const measureRes = 256

// MeasureBounds computes the actual rendered extent of the vector content,
// which can differ from the declared rectangle because some upstream icon
// sets ship glyphs whose visual centroid is offset from the nominal center.
// The markup is rasterized off-screen and the opaque pixel extent scanned,
// so measurement works identically in headless environments. strokeWidth
// expands the box by half the stroke per side.
//
// The second return value is false when the markup cannot be parsed or
// paints no pixels; callers must fall back to declared-rectangle centering.
func MeasureBounds(markup string, declaredW, declaredH, strokeWidth float64) (Bounds, bool) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(markup))
	if err != nil {
		return Bounds{}, false
	}
	if declaredW <= 0 || declaredH <= 0 {
		declaredW, declaredH = icon.ViewBox.W, icon.ViewBox.H
	}
	if declaredW <= 0 || declaredH <= 0 {
		return Bounds{}, false
	}

	scale := measureRes / math.Max(declaredW, declaredH)
	w := int(math.Ceil(declaredW * scale))
	h := int(math.Ceil(declaredH * scale))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	minX, minY := w, h
	maxX, maxY := -1, -1
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			if row[x*4+3] == 0 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < 0 {
		return Bounds{}, false
	}

	half := strokeWidth / 2
	return Bounds{
		MinX: float64(minX)/scale - half,
		MinY: float64(minY)/scale - half,
		MaxX: float64(maxX+1)/scale + half,
		MaxY: float64(maxY+1)/scale + half,
	}, true
}

// centerOffset derives the translation that moves the visual center of the
// measured content onto the declared-rectangle center. A zero offset means
// the glyph is already visually centered.
func centerOffset(b Bounds, view ViewBox) (dx, dy float64) {
	dx = (view.X + view.W/2) - b.CenterX()
	dy = (view.Y + view.H/2) - b.CenterY()
	return dx, dy
}
