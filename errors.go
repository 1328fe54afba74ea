package iconforge

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced icon id is missing from the
// catalog. It is fatal only for operations whose entire input is that icon.
var ErrNotFound = errors.New("icon not found")

// ErrNothingToRender is returned by an export when no icon or composition
// has been selected at all.
var ErrNothingToRender = errors.New("nothing to render")

// ValidationError reports invalid input detected before any rendering
// begins: a malformed gradient stop list, duplicate variant filenames and
// the like. It always aborts the whole operation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// UnsupportedFormatError marks an export variant whose format cannot be
// produced from the selected source, e.g. an svg variant requested against
// a raster-only upload. It is surfaced as a skipped plan entry, never as an
// abort.
type UnsupportedFormatError struct {
	Filename string
	Format   Format
	Reason   string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: %s output not supported: %s", e.Filename, e.Format, e.Reason)
}

// RenderError reports that one specific document could not be rasterized.
// During an export it degrades a single file; the sibling variants still
// complete.
type RenderError struct {
	Filename string
	Err      error
}

func (e *RenderError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("render failed: %v", e.Err)
	}
	return fmt.Sprintf("render failed for %s: %v", e.Filename, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
