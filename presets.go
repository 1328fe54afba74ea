package iconforge

import "fmt"

// ExportVariant is one desired output file: a literal filename, exact
// pixel dimensions and a target format. Quality applies to lossy formats
// only; zero selects the default.
type ExportVariant struct {
	Filename string
	Width    int
	Height   int
	Format   Format
	Quality  int
}

// ExportPreset is a named, ordered collection of output variants.
type ExportPreset struct {
	ID          string
	Name        string
	Description string
	Variants    []ExportVariant
	Builtin     bool

	// WithManifest adds a site.webmanifest entry to the archive,
	// matching the favicon bundle convention.
	WithManifest bool
}

// Validate checks the preset invariants before any rendering begins:
// at least one variant, unique filenames, positive dimensions.
func (p ExportPreset) Validate() error {
	if len(p.Variants) == 0 {
		return &ValidationError{Field: "preset.variants", Reason: "preset has no variants"}
	}
	seen := make(map[string]struct{}, len(p.Variants))
	for _, v := range p.Variants {
		if v.Filename == "" {
			return &ValidationError{Field: "preset.variants", Reason: "variant has no filename"}
		}
		if _, dup := seen[v.Filename]; dup {
			return &ValidationError{Field: "preset.variants", Reason: fmt.Sprintf("duplicate filename %q", v.Filename)}
		}
		seen[v.Filename] = struct{}{}
		if v.Width <= 0 || v.Height <= 0 {
			return &ValidationError{Field: "preset.variants", Reason: fmt.Sprintf("%s: dimensions must be positive", v.Filename)}
		}
	}
	return nil
}

// MarketplacePreset is the standard app listing bundle: two raster logos
// plus the three chrome-embedded vector icons.
func MarketplacePreset() ExportPreset {
	return ExportPreset{
		ID:          "marketplace",
		Name:        "Marketplace bundle",
		Description: "App listing logos and host chrome icons",
		Builtin:     true,
		Variants: []ExportVariant{
			{Filename: "logo.png", Width: 320, Height: 320, Format: FormatPNG},
			{Filename: "logo-small.png", Width: 128, Height: 128, Format: FormatPNG},
			{Filename: "icon_top_bar.svg", Width: 26, Height: 26, Format: FormatSVG},
			{Filename: "icon_nav_bar.svg", Width: 26, Height: 26, Format: FormatSVG},
			{Filename: "icon_ticket_editor.svg", Width: 20, Height: 20, Format: FormatSVG},
		},
	}
}

// FaviconPreset is the web favicon bundle: the sizes a modern web app
// links from its markup, plus favicon.ico and a site.webmanifest.
func FaviconPreset() ExportPreset {
	return ExportPreset{
		ID:           "favicon",
		Name:         "Favicon bundle",
		Description:  "Favicons, touch icons and web manifest",
		Builtin:      true,
		WithManifest: true,
		Variants: []ExportVariant{
			{Filename: "favicon-16x16.png", Width: 16, Height: 16, Format: FormatPNG},
			{Filename: "favicon-32x32.png", Width: 32, Height: 32, Format: FormatPNG},
			{Filename: "apple-touch-icon.png", Width: 180, Height: 180, Format: FormatPNG},
			{Filename: "android-chrome-192x192.png", Width: 192, Height: 192, Format: FormatPNG},
			{Filename: "android-chrome-512x512.png", Width: 512, Height: 512, Format: FormatPNG},
			{Filename: "favicon.ico", Width: 32, Height: 32, Format: FormatICO},
		},
	}
}

// BuiltinPresets returns every built-in preset in display order.
func BuiltinPresets() []ExportPreset {
	return []ExportPreset{MarketplacePreset(), FaviconPreset()}
}

// FindPreset looks a built-in preset up by id.
func FindPreset(id string) (ExportPreset, error) {
	for _, p := range BuiltinPresets() {
		if p.ID == id {
			return p, nil
		}
	}
	return ExportPreset{}, fmt.Errorf("preset %q: %w", id, ErrNotFound)
}
