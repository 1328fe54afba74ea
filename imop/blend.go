package imop

import "github.com/iconforge/iconforge/utils"

// Mode selects a separable blend mode applied before composition.
type Mode string

const (
	Darken   Mode = "darken"
	Lighten  Mode = "lighten"
	Multiply Mode = "multiply"
	Screen   Mode = "screen"
	Overlay  Mode = "overlay"
)

// Modes lists every supported blend mode.
var Modes = []Mode{Darken, Lighten, Multiply, Screen, Overlay}

// Blend holds the currently active blend mode.
type Blend struct {
	mode Mode
}

// NewBlend initializes a Blend with the given mode. An unknown mode
// leaves the blend inactive.
func NewBlend(mode Mode) *Blend {
	b := &Blend{}
	b.Set(mode)
	return b
}

// Set activates one of the supported blend modes.
func (b *Blend) Set(mode Mode) {
	for _, m := range Modes {
		if m == mode {
			b.mode = mode
			return
		}
	}
}

// Get returns the currently active blend mode.
func (b *Blend) Get() Mode {
	return b.mode
}

// apply blends the source pixel with its backdrop channel by channel.
func (b *Blend) apply(s, d rgba) rgba {
	switch b.mode {
	case Darken:
		return rgba{utils.Min(s.r, d.r), utils.Min(s.g, d.g), utils.Min(s.b, d.b), s.a}
	case Lighten:
		return rgba{utils.Max(s.r, d.r), utils.Max(s.g, d.g), utils.Max(s.b, d.b), s.a}
	case Multiply:
		return rgba{s.r * d.r, s.g * d.g, s.b * d.b, s.a}
	case Screen:
		return rgba{
			1 - (1-s.r)*(1-d.r),
			1 - (1-s.g)*(1-d.g),
			1 - (1-s.b)*(1-d.b),
			s.a,
		}
	case Overlay:
		return rgba{overlay(s.r, d.r), overlay(s.g, d.g), overlay(s.b, d.b), s.a}
	default:
		return s
	}
}

func overlay(s, d float64) float64 {
	if d <= 0.5 {
		return 2 * s * d
	}
	return 1 - 2*(1-s)*(1-d)
}
