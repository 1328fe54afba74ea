package iconforge

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// backdropTransparent is the fully transparent canvas fill.
var backdropTransparent = color.NRGBA{}

// decodeRaster decodes uploaded bitmap bytes into an NRGBA image.
func decodeRaster(data []byte) (*image.NRGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode the raster source: %w", err)
	}
	return imgToNRGBA(img), nil
}

// imgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
func imgToNRGBA(img image.Image) *image.NRGBA {
	if src, ok := img.(*image.NRGBA); ok && src.Bounds().Min == (image.Point{}) {
		return src
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// flattenOver composites an image over an opaque backdrop color, removing
// any remaining alpha. Used for formats without an alpha channel.
func flattenOver(img image.Image, backdrop color.NRGBA) *image.NRGBA {
	backdrop.A = 0xff
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(backdrop), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

// backdropColor picks the opaque color an alpha-less format flattens onto:
// the solid background if one is set, the first gradient stop otherwise,
// white as the last resort.
func backdropColor(bg ColorValue) color.NRGBA {
	c := bg.Solid
	if bg.Gradient != nil && len(bg.Gradient.Stops) > 0 {
		c = bg.Gradient.Stops[0].Color
	}
	if r, g, b, ok := parseHexColor(c); ok {
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}
	}
	return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
}

// innerSVG strips the outer <svg> wrapper of an icon's markup, returning
// the drawable content that gets re-wrapped inside the output document.
// Markup without a wrapper is returned as is.
func innerSVG(markup string) string {
	loc := svgOpenRe.FindStringIndex(markup)
	if loc == nil {
		return strings.TrimSpace(markup)
	}
	inner := markup[loc[1]:]
	if i := strings.LastIndex(inner, "</svg>"); i >= 0 {
		inner = inner[:i]
	}
	return strings.TrimSpace(inner)
}
