package iconforge

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// ViewBox is the declared coordinate rectangle of a vector document.
type ViewBox struct {
	X, Y, W, H float64
}

// IconDefinition is an immutable catalog entry. Icon definitions are owned
// by the catalog and treated as read-only by the engine.
type IconDefinition struct {
	ID     string
	Pack   string
	Markup string
	View   ViewBox

	// Raster holds the pre-baked bitmap bytes for rasterized entries.
	Raster []byte

	// IsRasterized marks entries with no vector markup to recolor.
	IsRasterized bool

	// AllowColorOverride is false for icons with intentionally fixed
	// multi-color art: paint substitution is skipped entirely.
	AllowColorOverride bool
}

var (
	viewBoxRe = regexp.MustCompile(`(?i)viewBox\s*=\s*"([^"]+)"`)
	dimAttrRe = regexp.MustCompile(`(?i)\b(width|height)\s*=\s*"([0-9.]+)`)
)

// ParseViewBox extracts the declared rectangle of an SVG document, falling
// back to its width/height attributes when no viewBox is declared.
func ParseViewBox(markup string) (ViewBox, bool) {
	// Only the document's opening tag declares the canvas; nested
	// elements carry width/height attributes of their own.
	if tag := svgOpenRe.FindString(markup); tag != "" {
		markup = tag
	}
	if m := viewBoxRe.FindStringSubmatch(markup); m != nil {
		parts := strings.Fields(strings.ReplaceAll(m[1], ",", " "))
		if len(parts) == 4 {
			var vals [4]float64
			ok := true
			for i, p := range parts {
				v, err := strconv.ParseFloat(p, 64)
				if err != nil {
					ok = false
					break
				}
				vals[i] = v
			}
			if ok && vals[2] > 0 && vals[3] > 0 {
				return ViewBox{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}, true
			}
		}
	}

	var vb ViewBox
	for _, m := range dimAttrRe.FindAllStringSubmatch(markup, -1) {
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		if strings.EqualFold(m[1], "width") && vb.W == 0 {
			vb.W = v
		} else if strings.EqualFold(m[1], "height") && vb.H == 0 {
			vb.H = v
		}
	}
	if vb.W > 0 && vb.H > 0 {
		return vb, true
	}
	return ViewBox{}, false
}

// Catalog is the external collaborator supplying icon definitions.
// Lookup failure is reported as ErrNotFound.
type Catalog interface {
	GetIconByID(id string) (IconDefinition, error)
}

// Watcher receives catalog change notifications. Changes accumulate until
// the consumer drains them with Pending, so a view layer can query for
// updates synchronously on its own schedule.
type Watcher struct {
	mu      sync.Mutex
	pending []string
}

func (w *Watcher) notify(id string) {
	w.mu.Lock()
	w.pending = append(w.pending, id)
	w.mu.Unlock()
}

// Pending returns the ids changed since the last call, in change order,
// and clears the backlog.
func (w *Watcher) Pending() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	p := w.pending
	w.pending = nil
	return p
}

// MemoryCatalog is an in-memory Catalog implementation with explicit
// change subscriptions.
type MemoryCatalog struct {
	mu       sync.RWMutex
	icons    map[string]IconDefinition
	watchers []*Watcher
}

// NewMemoryCatalog creates an empty in-memory catalog.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{icons: make(map[string]IconDefinition)}
}

// GetIconByID implements Catalog.
func (c *MemoryCatalog) GetIconByID(id string) (IconDefinition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.icons[id]
	if !ok {
		return IconDefinition{}, fmt.Errorf("catalog lookup %q: %w", id, ErrNotFound)
	}
	return def, nil
}

// Add stores or replaces a definition and notifies every watcher.
func (c *MemoryCatalog) Add(def IconDefinition) {
	c.mu.Lock()
	c.icons[def.ID] = def
	watchers := make([]*Watcher, len(c.watchers))
	copy(watchers, c.watchers)
	c.mu.Unlock()

	for _, w := range watchers {
		w.notify(def.ID)
	}
}

// Remove deletes a definition and notifies every watcher.
func (c *MemoryCatalog) Remove(id string) {
	c.mu.Lock()
	delete(c.icons, id)
	watchers := make([]*Watcher, len(c.watchers))
	copy(watchers, c.watchers)
	c.mu.Unlock()

	for _, w := range watchers {
		w.notify(id)
	}
}

// Watch registers a new change watcher.
func (c *MemoryCatalog) Watch() *Watcher {
	w := &Watcher{}
	c.mu.Lock()
	c.watchers = append(c.watchers, w)
	c.mu.Unlock()
	return w
}

// Unwatch removes a previously registered watcher.
func (c *MemoryCatalog) Unwatch(w *Watcher) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, cur := range c.watchers {
		if cur == w {
			c.watchers = append(c.watchers[:i], c.watchers[i+1:]...)
			return
		}
	}
}
