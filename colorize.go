package iconforge

import (
	"regexp"
	"strings"
)

// Paint-bearing attribute and inline style patterns. Third-party icon sets
// are inconsistent about quoting and spacing, so matching stays permissive.
var (
	paintAttrRe   = regexp.MustCompile(`(fill|stroke)\s*=\s*"([^"]*)"`)
	paintAttrSqRe = regexp.MustCompile(`(fill|stroke)\s*=\s*'([^']*)'`)
	styleAttrRe   = regexp.MustCompile(`style\s*=\s*"([^"]*)"`)
	stylePaintRe  = regexp.MustCompile(`(fill|stroke)\s*:\s*([^;]+)`)
)

// preservePaint reports whether a paint value is semantically "no solid
// paint" and must survive recoloring intact: none, transparent and
// references to a gradient or pattern definition.
func preservePaint(v string) bool {
	t := strings.ToLower(strings.TrimSpace(v))
	return t == "none" || t == "transparent" || strings.HasPrefix(t, "url(")
}

// RecolorSVG rewrites every paint-bearing attribute in the markup to the
// target color: fill and stroke attributes plus the fill/stroke properties
// of inline style declarations. Literal colors and the currentColor theme
// token are replaced; none, transparent and url(#...) references are left
// untouched. Recoloring is best-effort: markup the patterns cannot match
// passes through unchanged, it never blocks rendering.
func RecolorSVG(markup, color string) string {
	out := replacePaintAttr(markup, paintAttrRe, `"`, color)
	out = replacePaintAttr(out, paintAttrSqRe, `'`, color)

	return styleAttrRe.ReplaceAllStringFunc(out, func(m string) string {
		sub := styleAttrRe.FindStringSubmatch(m)
		body := stylePaintRe.ReplaceAllStringFunc(sub[1], func(d string) string {
			ds := stylePaintRe.FindStringSubmatch(d)
			if preservePaint(ds[2]) {
				return d
			}
			return ds[1] + ":" + color
		})
		return `style="` + body + `"`
	})
}

func replacePaintAttr(markup string, re *regexp.Regexp, quote, color string) string {
	return re.ReplaceAllStringFunc(markup, func(m string) string {
		sub := re.FindStringSubmatch(m)
		if preservePaint(sub[2]) {
			return m
		}
		return sub[1] + "=" + quote + color + quote
	})
}

// RecolorIcon applies RecolorSVG to an icon's markup, honoring the icon's
// flags: pre-rasterized icons carry no markup to rewrite and icons with
// intentionally fixed multi-color art opt out of paint substitution.
func RecolorIcon(def IconDefinition, color string) string {
	if def.IsRasterized || !def.AllowColorOverride {
		return def.Markup
	}
	return RecolorSVG(def.Markup, color)
}
