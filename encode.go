package iconforge

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	ico "github.com/biessek/golang-ico"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

// Format identifies an export file format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatWebP Format = "webp"
	FormatSVG  Format = "svg"
	FormatICO  Format = "ico"
)

// RequiresVector reports whether the format needs a vector-capable source.
// ICO entries encode pixels, but the bundle contract treats ico like svg:
// both are only produced from a single vector icon.
func (f Format) RequiresVector() bool {
	return f == FormatSVG || f == FormatICO
}

// Raster reports whether the format encodes pixel data.
func (f Format) Raster() bool {
	return f != FormatSVG
}

// DefaultQuality is used for lossy formats when no quality is requested.
const DefaultQuality = 90

// EncodeImage encodes a pixel buffer to the target raster format. The
// backdrop color is used to flatten alpha away for formats without an
// alpha channel (JPEG).
func EncodeImage(img image.Image, format Format, quality int, backdrop color.NRGBA) ([]byte, error) {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}

	var buf bytes.Buffer
	switch format {
	case FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	case FormatJPEG:
		flat := flattenOver(img, backdrop)
		if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
	case FormatWebP:
		opts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(quality))
		if err != nil {
			return nil, err
		}
		if err := webp.Encode(&buf, img, opts); err != nil {
			return nil, err
		}
	case FormatICO:
		if err := ico.Encode(&buf, img); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported raster format %q", format)
	}
	return buf.Bytes(), nil
}
