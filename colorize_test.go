package iconforge

import (
	"strings"
	"testing"
)

func TestRecolorSVG_ReplacesLiteralColors(t *testing.T) {
	testCases := []struct {
		name   string
		markup string
		want   string
	}{
		{
			name:   "fill attribute",
			markup: `<path fill="#123456" d="M0 0h24v24H0z"/>`,
			want:   `<path fill="#ff00ff" d="M0 0h24v24H0z"/>`,
		},
		{
			name:   "stroke attribute",
			markup: `<circle stroke="red" cx="12" cy="12" r="10"/>`,
			want:   `<circle stroke="#ff00ff" cx="12" cy="12" r="10"/>`,
		},
		{
			name:   "theme token",
			markup: `<path fill="currentColor"/>`,
			want:   `<path fill="#ff00ff"/>`,
		},
		{
			name:   "single quoted attribute",
			markup: `<path fill='#000000'/>`,
			want:   `<path fill='#ff00ff'/>`,
		},
		{
			name:   "style declaration",
			markup: `<path style="fill:#999999;stroke:#000"/>`,
			want:   `<path style="fill:#ff00ff;stroke:#ff00ff"/>`,
		},
		{
			name:   "multiple elements",
			markup: `<g><path fill="#111"/><rect fill="#222"/></g>`,
			want:   `<g><path fill="#ff00ff"/><rect fill="#ff00ff"/></g>`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RecolorSVG(tc.markup, "#ff00ff"); got != tc.want {
				t.Errorf("RecolorSVG = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRecolorSVG_PreservesSpecialTokens(t *testing.T) {
	testCases := []struct {
		name   string
		markup string
	}{
		{name: "none", markup: `<path fill="none" stroke="none"/>`},
		{name: "transparent", markup: `<rect fill="transparent"/>`},
		{name: "gradient reference", markup: `<rect fill="url(#grad-1)"/>`},
		{name: "style none", markup: `<path style="fill:none;opacity:0.5"/>`},
		{name: "style reference", markup: `<path style="fill:url(#p);stroke:none"/>`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			once := RecolorSVG(tc.markup, "#ff00ff")
			if once != tc.markup {
				t.Errorf("special token altered: %q -> %q", tc.markup, once)
			}
			// Repeated application never alters them either.
			if twice := RecolorSVG(once, "#00ff00"); twice != once {
				t.Errorf("recoloring is not idempotent on special tokens: %q -> %q", once, twice)
			}
		})
	}
}

func TestRecolorSVG_MalformedPassesThrough(t *testing.T) {
	for _, markup := range []string{"", "not markup at all", "<svg><broken"} {
		if got := RecolorSVG(markup, "#ff00ff"); got != markup {
			t.Errorf("malformed markup changed: %q -> %q", markup, got)
		}
	}
}

func TestRecolorIcon_HonorsFlags(t *testing.T) {
	markup := `<path fill="#123456"/>`

	fixed := IconDefinition{Markup: markup, AllowColorOverride: false}
	if got := RecolorIcon(fixed, "#ff00ff"); got != markup {
		t.Errorf("fixed-art icon was recolored: %q", got)
	}

	raster := IconDefinition{Markup: markup, IsRasterized: true, AllowColorOverride: true}
	if got := RecolorIcon(raster, "#ff00ff"); got != markup {
		t.Errorf("rasterized icon markup changed: %q", got)
	}

	normal := IconDefinition{Markup: markup, AllowColorOverride: true}
	if got := RecolorIcon(normal, "#ff00ff"); !strings.Contains(got, "#ff00ff") {
		t.Errorf("recolorable icon kept its color: %q", got)
	}
}
