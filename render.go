package iconforge

import (
	"errors"
	"fmt"
	"image"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/iconforge/iconforge/cache"
)

var svgOpenRe = regexp.MustCompile(`(?is)<svg[^>]*>`)

// RenderRequest describes one icon render. It is ephemeral: requests are
// built per call and never persisted.
type RenderRequest struct {
	// IconID references a catalog entry. Icon, when non-nil, bypasses
	// the catalog lookup.
	IconID string
	Icon   *IconDefinition

	Background ColorValue
	IconColor  string

	// IconSize is the logical glyph size on the output canvas. When
	// Padding is zero and IconSize is set, the padding is derived so
	// the glyph renders at exactly IconSize, centered.
	IconSize float64

	// Padding is the explicit canvas padding in output pixels.
	Padding float64

	// OutputSize is the square output canvas size in pixels.
	OutputSize int

	// StrokeWidth feeds the visual bounds measurement for stroked glyphs.
	StrokeWidth float64

	// ChromeMode renders a host-UI-embedded icon: the background is
	// suppressed and the currentColor theme token is left unresolved so
	// the host can re-theme it.
	ChromeMode bool
}

// Renderer assembles standalone vector documents and rasterizes them onto
// a single shared off-screen surface. The zero value is not usable; create
// renderers with NewRenderer.
type Renderer struct {
	// Store supplies user-uploaded content for raster icons whose bytes
	// live outside the catalog. Optional.
	Store ContentStore

	// Cache, when set, memoizes encoded render output. The cache is
	// owned by the caller; the renderer only reads and fills it.
	Cache *cache.LRU[string, []byte]

	// Restriction, when set, clamps icon and background colors to the
	// allowed palette.
	Restriction *Restriction

	catalog Catalog

	// mu serializes access to the off-screen rendering surface. Renders
	// inside one export run strictly in preset order.
	mu      sync.Mutex
	gradSeq atomic.Uint64
}

// NewRenderer creates a renderer reading icon definitions from the catalog.
func NewRenderer(catalog Catalog) *Renderer {
	return &Renderer{catalog: catalog}
}

// resolveIcon fetches the request's icon from the request itself or the
// catalog.
func (r *Renderer) resolveIcon(req RenderRequest) (IconDefinition, error) {
	if req.Icon != nil {
		return *req.Icon, nil
	}
	if req.IconID == "" {
		return IconDefinition{}, ErrNothingToRender
	}
	if r.catalog == nil {
		return IconDefinition{}, fmt.Errorf("no catalog configured: %w", ErrNotFound)
	}
	return r.catalog.GetIconByID(req.IconID)
}

// padding derives the effective canvas padding: explicit padding wins,
// otherwise it is computed from the logical icon size.
func (req RenderRequest) padding() float64 {
	if req.Padding > 0 {
		return req.Padding
	}
	if req.IconSize > 0 && req.IconSize < float64(req.OutputSize) {
		return (float64(req.OutputSize) - req.IconSize) / 2
	}
	return 0
}

// fmtCoord formats a document coordinate with sub-pixel precision and no
// trailing zeros.
func fmtCoord(f float64) string {
	return strconv.FormatFloat(math.Round(f*10000)/10000, 'f', -1, 64)
}

// BuildSVG assembles a complete, self-contained vector document for the
// request: background first (a filled rectangle referencing a gradient
// definition when the background is not solid; omitted in chrome mode),
// then the recolored glyph group, scaled and centered. When the visual
// bounds of the glyph are measurable the centering translate uses the
// visual-center correction; declared-rectangle centering is the fallback.
func (r *Renderer) BuildSVG(req RenderRequest) (string, error) {
	def, err := r.resolveIcon(req)
	if err != nil {
		return "", err
	}
	if def.IsRasterized {
		return "", &UnsupportedFormatError{
			Format: FormatSVG,
			Reason: "a vector document requires a vector-capable source",
		}
	}
	if req.OutputSize <= 0 {
		return "", &ValidationError{Field: "outputSize", Reason: "must be positive"}
	}
	view := def.View
	if view.W <= 0 || view.H <= 0 {
		return "", &ValidationError{Field: "icon.view", Reason: "icon has no intrinsic size"}
	}
	if req.Background.Gradient != nil {
		if err := req.Background.Gradient.Validate(); err != nil {
			return "", err
		}
	}

	out := float64(req.OutputSize)
	pad := req.padding()
	scale := (out - 2*pad) / math.Max(view.W, view.H)
	if scale <= 0 {
		return "", &ValidationError{Field: "padding", Reason: "padding leaves no room for the icon"}
	}

	iconColor := req.IconColor
	bg := req.Background
	if r.Restriction != nil {
		iconColor = r.Restriction.ClampColor(iconColor)
		if !bg.IsGradient() && bg.Solid != "" {
			bg = Solid(r.Restriction.ClampColor(bg.Solid))
		}
	}

	// Chrome mode keeps the theme token unresolved for the host.
	markup := def.Markup
	if !req.ChromeMode {
		markup = RecolorIcon(def, iconColor)
	}

	dx, dy := 0.0, 0.0
	if b, ok := MeasureBounds(markup, view.W, view.H, req.StrokeWidth); ok {
		dx, dy = centerOffset(b, view)
	}
	tx := pad + scale*(dx-view.X)
	ty := pad + scale*(dy-view.Y)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		req.OutputSize, req.OutputSize, req.OutputSize, req.OutputSize)
	if !req.ChromeMode {
		r.writeBackground(&sb, bg, req.OutputSize)
	}
	fmt.Fprintf(&sb, `<g transform="translate(%s %s) scale(%s)">%s</g>`,
		fmtCoord(tx), fmtCoord(ty), fmtCoord(scale), innerSVG(markup))
	sb.WriteString("</svg>")
	return sb.String(), nil
}

// writeBackground emits the background rectangle, preceded by a gradient
// definition when the paint is not solid. The definition id is unique per
// render pass and stable within it.
func (r *Renderer) writeBackground(sb *strings.Builder, bg ColorValue, size int) {
	fill := bg.Solid
	if bg.Gradient != nil {
		id := fmt.Sprintf("iconforge-grad-%d", r.gradSeq.Add(1))
		sb.WriteString(bg.Gradient.SVGDef(id))
		fill = "url(#" + id + ")"
	}
	if fill == "" {
		return
	}
	fmt.Fprintf(sb, `<rect width="%d" height="%d" fill="%s"/>`, size, size, fill)
}

// Rasterize draws a vector document onto an off-screen pixel surface at
// the exact requested dimensions and encodes it to the target raster
// format. The call is synchronous and deterministic for given inputs; the
// shared surface admits one rasterization at a time.
func (r *Renderer) Rasterize(svg string, width, height int, format Format, quality int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, &RenderError{Err: errors.New("zero-size canvas")}
	}
	icon, err := parseSVG(svg)
	if err != nil {
		return nil, &RenderError{Err: err}
	}

	img := r.drawSVG(icon, width, height)

	buf, err := EncodeImage(img, format, quality, backdropColor(ColorValue{}))
	if err != nil {
		return nil, &RenderError{Err: err}
	}
	return buf, nil
}

// parseSVG parses a vector document for rasterization.
func parseSVG(svg string) (*oksvg.SvgIcon, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("corrupt markup: %w", err)
	}
	return icon, nil
}

// drawSVG rasterizes a parsed document onto the shared off-screen surface.
// Only one draw may be in flight at a time.
func (r *Renderer) drawSVG(icon *oksvg.SvgIcon, width, height int) *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	icon.SetTarget(0, 0, float64(width), float64(height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)
	return img
}

// Render executes a full single-icon render: document assembly plus
// rasterization, or the document itself for the svg format. Output is
// memoized in the caller-owned cache when one is attached.
func (r *Renderer) Render(req RenderRequest, format Format, quality int) ([]byte, error) {
	def, err := r.resolveIcon(req)
	if err != nil {
		return nil, err
	}

	key := renderKey(def, req, format, quality)
	if r.Cache != nil {
		if buf, ok := r.Cache.Get(key); ok {
			return buf, nil
		}
	}

	var buf []byte
	switch {
	case format == FormatSVG:
		doc, err := r.BuildSVG(req)
		if err != nil {
			return nil, err
		}
		buf = []byte(doc)
	case def.IsRasterized:
		buf, err = r.renderRasterIcon(def, req, format, quality)
		if err != nil {
			return nil, err
		}
	default:
		doc, err := r.BuildSVG(req)
		if err != nil {
			return nil, err
		}
		Logger().Debug("rasterizing icon", "icon", def.ID, "size", req.OutputSize, "format", format)
		buf, err = r.Rasterize(doc, req.OutputSize, req.OutputSize, format, quality)
		if err != nil {
			return nil, err
		}
	}

	if r.Cache != nil {
		r.Cache.Put(key, buf)
	}
	return buf, nil
}

// renderRasterIcon renders a pre-baked bitmap icon: the stored pixels are
// resampled to the logical icon area and composited over the painted
// background. Recoloring never applies to raster sources.
func (r *Renderer) renderRasterIcon(def IconDefinition, req RenderRequest, format Format, quality int) ([]byte, error) {
	if req.OutputSize <= 0 {
		return nil, &ValidationError{Field: "outputSize", Reason: "must be positive"}
	}
	data := def.Raster
	if len(data) == 0 && r.Store != nil {
		stored, err := r.Store.Get(def.ID)
		if err != nil {
			return nil, err
		}
		data = stored
	}
	src, err := decodeRaster(data)
	if err != nil {
		return nil, &RenderError{Err: err}
	}

	out := req.OutputSize
	pad := int(req.padding())
	area := out - 2*pad
	if area <= 0 {
		return nil, &ValidationError{Field: "padding", Reason: "padding leaves no room for the icon"}
	}

	bg := req.Background
	if req.ChromeMode {
		bg = ColorValue{}
	}
	canvas, err := r.backgroundImage(bg, out)
	if err != nil {
		return nil, err
	}

	fitted := imaging.Fit(src, area, area, imaging.Lanczos)
	fb := fitted.Bounds()
	offX := pad + (area-fb.Dx())/2
	offY := pad + (area-fb.Dy())/2
	canvas = imaging.Overlay(canvas, fitted, image.Pt(offX, offY), 1.0)

	buf, err := EncodeImage(canvas, format, quality, backdropColor(req.Background))
	if err != nil {
		return nil, &RenderError{Err: err}
	}
	return buf, nil
}

// backgroundImage rasterizes the background paint alone, so gradient
// backgrounds render identically under vector and raster icons.
func (r *Renderer) backgroundImage(bg ColorValue, size int) (*image.NRGBA, error) {
	if !bg.IsGradient() && bg.Solid == "" {
		return imaging.New(size, size, backdropTransparent), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		size, size, size, size)
	r.writeBackground(&sb, bg, size)
	sb.WriteString("</svg>")

	icon, err := parseSVG(sb.String())
	if err != nil {
		return nil, &RenderError{Err: err}
	}
	return imgToNRGBA(r.drawSVG(icon, size, size)), nil
}

// renderKey fingerprints a render request for cache lookup.
func renderKey(def IconDefinition, req RenderRequest, format Format, quality int) string {
	return strings.Join([]string{
		def.ID,
		req.IconColor,
		CSSString(req.Background),
		fmtCoord(req.IconSize),
		fmtCoord(req.Padding),
		strconv.Itoa(req.OutputSize),
		fmtCoord(req.StrokeWidth),
		strconv.FormatBool(req.ChromeMode),
		string(format),
		strconv.Itoa(quality),
	}, "|")
}
