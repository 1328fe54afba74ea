package iconforge

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// redPNG encodes a solid red bitmap for raster-source tests.
func redPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 0xff, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test bitmap: %v", err)
	}
	return buf.Bytes()
}
