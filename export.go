package iconforge

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// SourceKind classifies what an export renders from. Vector output formats
// require a vector-capable source.
type SourceKind int

const (
	// SourceVectorIcon is a single icon with vector markup.
	SourceVectorIcon SourceKind = iota
	// SourceRasterIcon is a single pre-baked bitmap (an uploaded image).
	SourceRasterIcon
	// SourceComposition is a flattened multi-layer canvas.
	SourceComposition
)

// ExportState carries the current selection an export renders from:
// either a single-icon render request or a composition, never both.
type ExportState struct {
	Request     *RenderRequest
	Composition *Composition
}

// Kind derives the source kind of the state. A composition is always
// raster-only once flattened; a single icon follows its definition.
func (s ExportState) Kind(catalog Catalog) SourceKind {
	if s.Composition != nil {
		return SourceComposition
	}
	if s.Request != nil {
		def := s.Request.Icon
		if def == nil && catalog != nil {
			if d, err := catalog.GetIconByID(s.Request.IconID); err == nil {
				def = &d
			}
		}
		if def != nil && def.IsRasterized {
			return SourceRasterIcon
		}
	}
	return SourceVectorIcon
}

// SkippedVariant is a variant excluded from an export plan, with the
// reason it cannot be produced. Skips are reported, never silently
// dropped.
type SkippedVariant struct {
	Variant ExportVariant
	Reason  string
}

// FailedVariant records a per-file render failure inside an export.
type FailedVariant struct {
	Variant ExportVariant
	Err     error
}

// ExportPlan partitions a preset's variants into the producible set and
// the skipped set for a given source kind.
type ExportPlan struct {
	Preset     ExportPreset
	Producible []ExportVariant
	Skipped    []SkippedVariant
}

// PlanExport validates the preset and partitions its variants by the
// compatibility rule: raster-only and composited sources cannot yield
// vector output formats, so their svg and ico variants are skipped.
// Validation failures abort before any rendering.
func PlanExport(preset ExportPreset, kind SourceKind) (ExportPlan, error) {
	if err := preset.Validate(); err != nil {
		return ExportPlan{}, err
	}

	plan := ExportPlan{Preset: preset}
	for _, v := range preset.Variants {
		if v.Format.RequiresVector() && kind != SourceVectorIcon {
			reason := (&UnsupportedFormatError{
				Filename: v.Filename,
				Format:   v.Format,
				Reason:   "a vector output format requires a vector-capable source",
			}).Error()
			plan.Skipped = append(plan.Skipped, SkippedVariant{Variant: v, Reason: reason})
			continue
		}
		plan.Producible = append(plan.Producible, v)
	}
	return plan, nil
}

// ExportFile is one named output buffer of a resolved export.
type ExportFile struct {
	Name string
	Data []byte
}

// ExportResult is the outcome of resolving a plan: the rendered files in
// preset order, the per-file failures and skips, and the combined archive.
type ExportResult struct {
	Files   []ExportFile
	Failed  []FailedVariant
	Skipped []SkippedVariant
	Archive []byte
}

// validate checks the selection's gradient invariants. A malformed
// background gradient aborts the whole export before any variant renders,
// instead of degrading every file one by one.
func (s ExportState) validate() error {
	switch {
	case s.Request != nil && s.Request.Background.Gradient != nil:
		return s.Request.Background.Gradient.Validate()
	case s.Composition != nil && s.Composition.Background.Gradient != nil:
		return s.Composition.Background.Gradient.Validate()
	}
	return nil
}

// ResolveExport renders each producible variant in the preset's declared
// order and packages the results into one zip archive preserving insertion
// order and literal filenames. A failure on one variant degrades that file
// only; sibling variants always complete. A missing or empty selection and
// a malformed background gradient are fatal for the whole export.
func (r *Renderer) ResolveExport(plan ExportPlan, state ExportState) (*ExportResult, error) {
	if state.Request == nil && state.Composition == nil {
		return nil, fmt.Errorf("export %q: %w", plan.Preset.ID, ErrNothingToRender)
	}
	if state.Composition != nil && len(state.Composition.VisibleLayers()) == 0 {
		return nil, fmt.Errorf("export %q: composition has no visible layers: %w", plan.Preset.ID, ErrNothingToRender)
	}
	if !r.Restriction.AllowsPreset(plan.Preset.ID) {
		return nil, &ValidationError{Field: "preset", Reason: fmt.Sprintf("preset %q is not allowed in this mode", plan.Preset.ID)}
	}
	if err := state.validate(); err != nil {
		return nil, err
	}

	res := &ExportResult{Skipped: plan.Skipped}
	for _, s := range plan.Skipped {
		Logger().Warn("variant skipped", "preset", plan.Preset.ID, "file", s.Variant.Filename, "reason", s.Reason)
	}

	for _, v := range plan.Producible {
		data, err := r.renderVariant(v, state)
		if err != nil {
			Logger().Warn("variant failed", "preset", plan.Preset.ID, "file", v.Filename, "err", err)
			res.Failed = append(res.Failed, FailedVariant{Variant: v, Err: &RenderError{Filename: v.Filename, Err: err}})
			continue
		}
		res.Files = append(res.Files, ExportFile{Name: v.Filename, Data: data})
	}

	if plan.Preset.WithManifest {
		res.Files = append(res.Files, ExportFile{
			Name: "site.webmanifest",
			Data: webManifest(state),
		})
	}

	archive, err := packArchive(res.Files)
	if err != nil {
		return nil, err
	}
	res.Archive = archive
	return res, nil
}

// renderVariant renders one variant from the current selection at the
// variant's exact dimensions and format.
func (r *Renderer) renderVariant(v ExportVariant, state ExportState) ([]byte, error) {
	if state.Composition != nil {
		return r.RenderComposition(*state.Composition, v.Width, v.Format, v.Quality)
	}

	req := *state.Request
	// The logical icon size and padding scale with the variant so every
	// output keeps the proportions of the previewed canvas.
	if req.OutputSize > 0 && req.OutputSize != v.Width {
		ratio := float64(v.Width) / float64(req.OutputSize)
		req.IconSize *= ratio
		req.Padding *= ratio
	}
	req.OutputSize = v.Width
	if v.Format == FormatSVG {
		// Chrome icons ship with the theme token unresolved so the
		// host can style them.
		req.ChromeMode = true
		doc, err := r.BuildSVG(req)
		if err != nil {
			return nil, err
		}
		return []byte(doc), nil
	}
	if v.Width == v.Height {
		return r.Render(req, v.Format, v.Quality)
	}

	// Non-square raster variants rasterize the square document at the
	// variant's exact pixel dimensions.
	doc, err := r.BuildSVG(req)
	if err != nil {
		return nil, err
	}
	return r.Rasterize(doc, v.Width, v.Height, v.Format, v.Quality)
}

// packArchive zips the rendered files, preserving their order and names.
func packArchive(files []ExportFile) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.Name)
		if err != nil {
			return nil, fmt.Errorf("archive entry %s: %w", f.Name, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, fmt.Errorf("archive entry %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// webManifest renders the site.webmanifest entry of the favicon bundle.
// Theme and background colors follow the export's background when it is a
// solid color.
func webManifest(state ExportState) []byte {
	theme := "#063940"
	switch {
	case state.Request != nil && !state.Request.Background.IsGradient() && state.Request.Background.Solid != "":
		theme = state.Request.Background.Solid
	case state.Composition != nil && !state.Composition.Background.IsGradient() && state.Composition.Background.Solid != "":
		theme = state.Composition.Background.Solid
	}
	manifest := fmt.Sprintf(`{
  "name": "App Icon Bundle",
  "short_name": "Icons",
  "icons": [
    {
      "src": "/android-chrome-192x192.png",
      "sizes": "192x192",
      "type": "image/png"
    },
    {
      "src": "/android-chrome-512x512.png",
      "sizes": "512x512",
      "type": "image/png"
    }
  ],
  "theme_color": "%s",
  "background_color": "%s",
  "display": "standalone",
  "start_url": "/"
}
`, theme, theme)
	return []byte(manifest)
}
