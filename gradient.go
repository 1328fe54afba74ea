package iconforge

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// GradientKind discriminates between the supported gradient geometries.
type GradientKind string

const (
	// LinearGradient interpolates stops along a straight line at an angle.
	LinearGradient GradientKind = "linear"
	// RadialGradient interpolates stops outwards from a center point.
	RadialGradient GradientKind = "radial"
)

// GradientStop represents a color at a specific position in a gradient.
// Offsets are expressed in percent, 0 to 100.
type GradientStop struct {
	Color  string
	Offset float64
}

// Gradient describes a linear or radial color ramp. Linear gradients use
// Angle (degrees, CSS convention: 0 points up, 90 points right); radial
// gradients use CenterX/CenterY/Radius, all in percent of the defining box.
type Gradient struct {
	Kind    GradientKind
	Angle   float64
	CenterX float64
	CenterY float64
	Radius  float64
	Stops   []GradientStop
}

// ColorValue is either a solid color string or a gradient. Exactly one of
// the two fields is set.
type ColorValue struct {
	Solid    string
	Gradient *Gradient
}

// Solid wraps a plain color string into a ColorValue.
func Solid(color string) ColorValue {
	return ColorValue{Solid: color}
}

// WithGradient wraps a gradient into a ColorValue.
func WithGradient(g Gradient) ColorValue {
	return ColorValue{Gradient: &g}
}

// IsGradient reports whether the value carries a gradient.
func (v ColorValue) IsGradient() bool {
	return v.Gradient != nil
}

// Validate checks the structural invariants of a gradient: at least two
// stops, offsets within [0,100] and sorted ascending, non-empty colors.
func (g Gradient) Validate() error {
	if g.Kind != LinearGradient && g.Kind != RadialGradient {
		return &ValidationError{Field: "gradient.kind", Reason: fmt.Sprintf("unknown kind %q", g.Kind)}
	}
	if len(g.Stops) < 2 {
		return &ValidationError{Field: "gradient.stops", Reason: "at least two stops are required"}
	}
	for i, s := range g.Stops {
		if s.Color == "" {
			return &ValidationError{Field: "gradient.stops", Reason: fmt.Sprintf("stop %d has no color", i)}
		}
		if s.Offset < 0 || s.Offset > 100 {
			return &ValidationError{Field: "gradient.stops", Reason: fmt.Sprintf("stop %d offset %v outside [0,100]", i, s.Offset)}
		}
		if i > 0 && s.Offset < g.Stops[i-1].Offset {
			return &ValidationError{Field: "gradient.stops", Reason: fmt.Sprintf("stop %d offset %v out of order", i, s.Offset)}
		}
	}
	return nil
}

// sortStops returns a copy of the stops sorted by ascending offset.
// The original slice is never modified.
func sortStops(stops []GradientStop) []GradientStop {
	sorted := make([]GradientStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

// fmtNum formats a float the way CSS expects: no trailing zeros, no
// exponent notation for the value ranges gradients use.
func fmtNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// LinearCSS renders the gradient as a CSS linear-gradient() string with
// each stop in order.
func (g Gradient) LinearCSS() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "linear-gradient(%sdeg", fmtNum(g.Angle))
	for _, s := range g.Stops {
		fmt.Fprintf(&sb, ", %s %s%%", s.Color, fmtNum(s.Offset))
	}
	sb.WriteString(")")
	return sb.String()
}

// RadialCSS renders the gradient as a CSS radial-gradient() string.
func (g Gradient) RadialCSS() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "radial-gradient(circle %s%% at %s%% %s%%",
		fmtNum(g.Radius), fmtNum(g.CenterX), fmtNum(g.CenterY))
	for _, s := range g.Stops {
		fmt.Fprintf(&sb, ", %s %s%%", s.Color, fmtNum(s.Offset))
	}
	sb.WriteString(")")
	return sb.String()
}

// CSS dispatches on the gradient kind and returns the CSS string form.
func (g Gradient) CSS() string {
	if g.Kind == RadialGradient {
		return g.RadialCSS()
	}
	return g.LinearCSS()
}

// CSSString returns the unified CSS string form of a color value.
func CSSString(v ColorValue) string {
	if v.Gradient != nil {
		return v.Gradient.CSS()
	}
	return v.Solid
}

// SVGDef renders the gradient as an SVG <defs> block containing a linear
// or radial gradient element with the given id and the same ordered stops.
// Radial center and radius are emitted as fractions of the defining box
// (objectBoundingBox units), matching vector-graphics convention.
func (g Gradient) SVGDef(id string) string {
	var sb strings.Builder
	sb.WriteString("<defs>")
	switch g.Kind {
	case RadialGradient:
		fmt.Fprintf(&sb, `<radialGradient id="%s" cx="%s" cy="%s" r="%s">`,
			id, fmtNum(g.CenterX/100), fmtNum(g.CenterY/100), fmtNum(g.Radius/100))
		writeStops(&sb, g.Stops)
		sb.WriteString("</radialGradient>")
	default:
		// The CSS angle convention has 0deg pointing up; the gradient
		// line runs through the box center in that direction.
		rad := (g.Angle - 90) * math.Pi / 180
		dx, dy := math.Cos(rad)/2, math.Sin(rad)/2
		fmt.Fprintf(&sb, `<linearGradient id="%s" x1="%s" y1="%s" x2="%s" y2="%s">`,
			id, fmtNum(round3(0.5-dx)), fmtNum(round3(0.5-dy)),
			fmtNum(round3(0.5+dx)), fmtNum(round3(0.5+dy)))
		writeStops(&sb, g.Stops)
		sb.WriteString("</linearGradient>")
	}
	sb.WriteString("</defs>")
	return sb.String()
}

func writeStops(sb *strings.Builder, stops []GradientStop) {
	for _, s := range stops {
		fmt.Fprintf(sb, `<stop offset="%s%%" stop-color="%s"/>`, fmtNum(s.Offset), s.Color)
	}
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

// Brand color ramp used to seed the default gradient constructors.
var brandRamp = []string{"#063940", "#17494d", "#30aabc"}

// DefaultAngle is the angle used by the default linear gradient.
const DefaultAngle = 135.0

// DefaultLinear builds the default two-stop linear gradient from the given
// color down to the darkest entry of the brand ramp.
func DefaultLinear(color string) Gradient {
	return Gradient{
		Kind:  LinearGradient,
		Angle: DefaultAngle,
		Stops: []GradientStop{
			{Color: color, Offset: 0},
			{Color: brandRamp[0], Offset: 100},
		},
	}
}

// DefaultRadial builds the default centered radial gradient from the given
// color out to the darkest entry of the brand ramp.
func DefaultRadial(color string) Gradient {
	return Gradient{
		Kind:    RadialGradient,
		CenterX: 50,
		CenterY: 50,
		Radius:  75,
		Stops: []GradientStop{
			{Color: color, Offset: 0},
			{Color: brandRamp[0], Offset: 100},
		},
	}
}

// GradientPresets is the fixed table of named gradients offered by the
// engine. The map must be treated as read-only.
var GradientPresets = map[string]Gradient{
	"deep-sea": {
		Kind:  LinearGradient,
		Angle: 135,
		Stops: []GradientStop{
			{Color: "#063940", Offset: 0},
			{Color: "#30aabc", Offset: 100},
		},
	},
	"sunrise": {
		Kind:  LinearGradient,
		Angle: 45,
		Stops: []GradientStop{
			{Color: "#f6a623", Offset: 0},
			{Color: "#eb6651", Offset: 55},
			{Color: "#a8326e", Offset: 100},
		},
	},
	"meadow": {
		Kind:  LinearGradient,
		Angle: 90,
		Stops: []GradientStop{
			{Color: "#1f73b7", Offset: 0},
			{Color: "#038153", Offset: 100},
		},
	},
	"halo": {
		Kind:    RadialGradient,
		CenterX: 50,
		CenterY: 40,
		Radius:  70,
		Stops: []GradientStop{
			{Color: "#ffffff", Offset: 0},
			{Color: "#17494d", Offset: 100},
		},
	},
	"ember": {
		Kind:    RadialGradient,
		CenterX: 50,
		CenterY: 50,
		Radius:  75,
		Stops: []GradientStop{
			{Color: "#ffb648", Offset: 0},
			{Color: "#eb6651", Offset: 60},
			{Color: "#56262b", Offset: 100},
		},
	},
}
