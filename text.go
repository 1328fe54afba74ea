package iconforge

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	textFontOnce sync.Once
	textFont     *opentype.Font
	textFontErr  error
)

// loadTextFont parses the bundled Go Regular face once.
func loadTextFont() (*opentype.Font, error) {
	textFontOnce.Do(func() {
		textFont, textFontErr = opentype.Parse(goregular.TTF)
	})
	return textFont, textFontErr
}

// drawText rasterizes a text layer onto a tightly sized transparent sheet
// using the bundled Go Regular face at the given point size.
func drawText(text string, size float64, hexColor string) (*image.NRGBA, error) {
	if text == "" {
		return nil, &RenderError{Err: fmt.Errorf("text layer has no content")}
	}
	fnt, err := loadTextFont()
	if err != nil {
		return nil, &RenderError{Err: fmt.Errorf("text face unavailable: %w", err)}
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, &RenderError{Err: err}
	}
	defer face.Close()

	cr, cg, cb, ok := parseHexColor(hexColor)
	if !ok {
		cr, cg, cb = 0, 0, 0
	}

	d := &font.Drawer{
		Src:  image.NewUniform(color.NRGBA{R: cr, G: cg, B: cb, A: 0xff}),
		Face: face,
	}
	width := d.MeasureString(text).Ceil()
	metrics := face.Metrics()
	height := (metrics.Ascent + metrics.Descent).Ceil()
	if width <= 0 || height <= 0 {
		return nil, &RenderError{Err: fmt.Errorf("text %q measures to zero pixels", text)}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	d.Dst = dst
	d.Dot = fixed.Point26_6{X: 0, Y: metrics.Ascent}
	d.DrawString(text)
	return dst, nil
}
