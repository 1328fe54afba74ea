// Package imop implements the Porter-Duff composition operations used for
// flattening composition layers onto a shared canvas. Porter and Duff
// presented twelve different composition operations, but the image/draw
// core package implements only source-over-destination and source. This
// package covers the missing operators and the common separable blend
// modes applied as per-layer paint effects.
package imop

import (
	"image"
	"image/color"

	"github.com/iconforge/iconforge/utils"
)

// Op selects a Porter-Duff composition operator.
type Op string

const (
	Copy    Op = "copy"
	SrcOver Op = "src_over"
	DstOver Op = "dst_over"
	SrcIn   Op = "src_in"
	DstIn   Op = "dst_in"
	SrcOut  Op = "src_out"
	DstOut  Op = "dst_out"
	SrcAtop Op = "src_atop"
	DstAtop Op = "dst_atop"
	Xor     Op = "xor"
)

// Ops lists every supported composition operator.
var Ops = []Op{Copy, SrcOver, DstOver, SrcIn, DstIn, SrcOut, DstOut, SrcAtop, DstAtop, Xor}

// Valid reports whether the operator is one of the supported set.
func (op Op) Valid() bool {
	for _, o := range Ops {
		if o == op {
			return true
		}
	}
	return false
}

// rgba holds one normalized, non-premultiplied pixel.
type rgba struct {
	r, g, b, a float64
}

func normalize(c color.NRGBA) rgba {
	return rgba{
		r: float64(c.R) / 255,
		g: float64(c.G) / 255,
		b: float64(c.B) / 255,
		a: float64(c.A) / 255,
	}
}

func denormalize(p rgba) color.NRGBA {
	return color.NRGBA{
		R: uint8(utils.Clamp(p.r, 0, 1) * 255),
		G: uint8(utils.Clamp(p.g, 0, 1) * 255),
		B: uint8(utils.Clamp(p.b, 0, 1) * 255),
		A: uint8(utils.Clamp(p.a, 0, 1) * 255),
	}
}

// compose applies the alpha composition formula for one pixel pair.
// s is the source (layer) pixel, d the destination (canvas) pixel.
func compose(s, d rgba, op Op) rgba {
	var fs, fd float64
	switch op {
	case Copy:
		fs, fd = 1, 0
	case SrcOver:
		fs, fd = 1, 1-s.a
	case DstOver:
		fs, fd = 1-d.a, 1
	case SrcIn:
		fs, fd = d.a, 0
	case DstIn:
		fs, fd = 0, s.a
	case SrcOut:
		fs, fd = 1-d.a, 0
	case DstOut:
		fs, fd = 0, 1-s.a
	case SrcAtop:
		fs, fd = d.a, 1-s.a
	case DstAtop:
		fs, fd = 1-d.a, s.a
	case Xor:
		fs, fd = 1-d.a, 1-s.a
	default:
		fs, fd = 1, 1-s.a
	}

	out := rgba{a: s.a*fs + d.a*fd}
	if out.a == 0 {
		return out
	}
	// Composition happens on premultiplied components; the result is
	// divided back out to keep the canvas non-premultiplied.
	out.r = (s.a*s.r*fs + d.a*d.r*fd) / out.a
	out.g = (s.a*s.g*fs + d.a*d.g*fd) / out.a
	out.b = (s.a*s.b*fs + d.a*d.b*fd) / out.a
	return out
}

// Composite flattens src onto dst in place using the given operator and an
// optional blend mode. Pixels outside the overlapping region keep their
// destination value. src and dst must share the same origin.
func Composite(dst, src *image.NRGBA, op Op, blend *Blend) {
	if !op.Valid() {
		op = SrcOver
	}
	bounds := dst.Bounds().Intersect(src.Bounds())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			s := normalize(src.NRGBAAt(x, y))
			d := normalize(dst.NRGBAAt(x, y))

			if blend != nil {
				s = blend.apply(s, d)
			}
			dst.SetNRGBA(x, y, denormalize(compose(s, d, op)))
		}
	}
}

// Flatten is the layer stacking operation: src over dst.
func Flatten(dst, src *image.NRGBA) {
	Composite(dst, src, SrcOver, nil)
}
