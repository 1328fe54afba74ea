package iconforge

import (
	"strconv"
	"strings"
)

// Restriction is the optional collaborator used in restricted host modes:
// it narrows the allowed export presets and pins layer and icon colors to a
// fixed palette.
type Restriction struct {
	// PresetIDs lists the allowed export preset ids. Empty allows all.
	PresetIDs []string

	// Palette lists the allowed colors. Empty allows any color.
	Palette []string
}

// AllowsPreset reports whether the preset id may be exported.
func (r *Restriction) AllowsPreset(id string) bool {
	if r == nil || len(r.PresetIDs) == 0 {
		return true
	}
	for _, p := range r.PresetIDs {
		if p == id {
			return true
		}
	}
	return false
}

// ClampColor substitutes the nearest allowed palette entry for a color
// outside the palette. Colors that cannot be parsed fall back to the first
// palette entry. With no palette the color passes through unchanged.
func (r *Restriction) ClampColor(c string) string {
	if r == nil || len(r.Palette) == 0 {
		return c
	}
	cr, cg, cb, ok := parseHexColor(c)
	if !ok {
		return r.Palette[0]
	}

	best := r.Palette[0]
	bestDist := -1
	for _, p := range r.Palette {
		pr, pg, pb, ok := parseHexColor(p)
		if !ok {
			continue
		}
		dr, dg, db := int(cr)-int(pr), int(cg)-int(pg), int(cb)-int(pb)
		dist := dr*dr + dg*dg + db*db
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			best = p
		}
	}
	return best
}

// parseHexColor parses #rgb and #rrggbb color strings.
func parseHexColor(s string) (r, g, b uint8, ok bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}
