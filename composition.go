package iconforge

import (
	"fmt"
	"image"
	"sort"

	"github.com/disintegration/imaging"

	"github.com/iconforge/iconforge/imop"
)

// LayerKind discriminates layer payloads.
type LayerKind string

const (
	LayerIcon  LayerKind = "icon"
	LayerImage LayerKind = "image"
	LayerText  LayerKind = "text"
)

// Transform positions a layer on the canvas. X and Y are offsets in output
// pixels, Scale is relative to the canvas (1.0 fills it), Rotation is in
// degrees counter-clockwise.
type Transform struct {
	X, Y     float64
	Scale    float64
	Rotation float64
}

// Layer is one positioned, independently transformable element of a
// composition. Layers are value types: operations never mutate an
// existing layer.
type Layer struct {
	ID        string
	Kind      LayerKind
	Transform Transform
	ZIndex    int
	Visible   bool

	// PaintOverride recolors icon layers; nil uses the composition's
	// icon color conventions (currentColor resolves to black).
	PaintOverride *ColorValue

	// Blend optionally mixes the layer with its backdrop.
	Blend imop.Mode

	// Kind-specific payload.
	IconID   string  // icon layers
	Image    []byte  // image layers, encoded bitmap bytes
	Text     string  // text layers
	TextSize float64 // text layers, point size at Scale 1.0
}

// Composition is an ordered, immutable set of layers over a shared
// background. Every operation returns a new composition value; the old
// value is never modified.
type Composition struct {
	Layers     []Layer
	Background ColorValue
	Selected   string
}

// NewComposition creates an empty composition over the given background.
func NewComposition(bg ColorValue) Composition {
	return Composition{Background: bg}
}

// cloneLayers copies the layer slice so derived compositions never share
// backing storage with their ancestors.
func (c Composition) cloneLayers() []Layer {
	layers := make([]Layer, len(c.Layers))
	copy(layers, c.Layers)
	return layers
}

// nextZIndex returns a z-index above every existing layer.
func (c Composition) nextZIndex() int {
	z := 0
	for _, l := range c.Layers {
		if l.ZIndex >= z {
			z = l.ZIndex + 1
		}
	}
	return z
}

// AddLayer appends a new layer of the given kind, assigning a unique id
// and the topmost z-index. The new layer becomes the selection.
func (c Composition) AddLayer(kind LayerKind, l Layer) Composition {
	l.Kind = kind
	if l.ID == "" {
		l.ID = fmt.Sprintf("layer-%d", len(c.Layers)+1)
		for c.layerIndex(l.ID) >= 0 {
			l.ID += "x"
		}
	}
	if l.Transform.Scale == 0 {
		l.Transform.Scale = 1
	}
	l.ZIndex = c.nextZIndex()
	l.Visible = true

	out := c
	out.Layers = append(c.cloneLayers(), l)
	out.Selected = l.ID
	return out
}

// UpdateLayer applies a patch function to one layer and returns the new
// composition. The patch receives a copy; identity fields (id, kind,
// z-index) are preserved regardless of what it returns.
func (c Composition) UpdateLayer(id string, patch func(Layer) Layer) Composition {
	i := c.layerIndex(id)
	if i < 0 {
		return c
	}
	out := c
	out.Layers = c.cloneLayers()

	updated := patch(out.Layers[i])
	updated.ID = out.Layers[i].ID
	updated.Kind = out.Layers[i].Kind
	updated.ZIndex = out.Layers[i].ZIndex
	out.Layers[i] = updated
	return out
}

// RemoveLayer drops one layer. Removing the selected layer clears the
// selection.
func (c Composition) RemoveLayer(id string) Composition {
	i := c.layerIndex(id)
	if i < 0 {
		return c
	}
	out := c
	out.Layers = append(c.cloneLayers()[:i], c.Layers[i+1:]...)
	if out.Selected == id {
		out.Selected = ""
	}
	return out
}

// Reorder moves a layer to a new z-index, shifting the layers in between
// so z-indexes stay unique.
func (c Composition) Reorder(id string, newZ int) Composition {
	i := c.layerIndex(id)
	if i < 0 {
		return c
	}
	out := c
	out.Layers = c.cloneLayers()
	oldZ := out.Layers[i].ZIndex

	for j := range out.Layers {
		switch {
		case j == i:
			out.Layers[j].ZIndex = newZ
		case oldZ < newZ && out.Layers[j].ZIndex > oldZ && out.Layers[j].ZIndex <= newZ:
			out.Layers[j].ZIndex--
		case oldZ > newZ && out.Layers[j].ZIndex >= newZ && out.Layers[j].ZIndex < oldZ:
			out.Layers[j].ZIndex++
		}
	}
	return out
}

// SelectLayer marks one layer as selected. Unknown ids clear the
// selection.
func (c Composition) SelectLayer(id string) Composition {
	out := c
	if c.layerIndex(id) < 0 {
		out.Selected = ""
		return out
	}
	out.Selected = id
	return out
}

// VisibleLayers returns the visible layers in ascending z-order.
func (c Composition) VisibleLayers() []Layer {
	visible := make([]Layer, 0, len(c.Layers))
	for _, l := range c.Layers {
		if l.Visible {
			visible = append(visible, l)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].ZIndex < visible[j].ZIndex
	})
	return visible
}

func (c Composition) layerIndex(id string) int {
	for i, l := range c.Layers {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// RenderComposition paints the background first, then flattens every
// visible layer in ascending z-order onto one shared canvas of the target
// size and encodes the result. A composition with zero visible layers has
// nothing to export.
func (r *Renderer) RenderComposition(c Composition, size int, format Format, quality int) ([]byte, error) {
	if size <= 0 {
		return nil, &ValidationError{Field: "outputSize", Reason: "must be positive"}
	}
	layers := c.VisibleLayers()
	if len(layers) == 0 {
		return nil, fmt.Errorf("composition has no visible layers: %w", ErrNothingToRender)
	}
	if c.Background.Gradient != nil {
		if err := c.Background.Gradient.Validate(); err != nil {
			return nil, err
		}
	}

	canvas, err := r.backgroundImage(c.Background, size)
	if err != nil {
		return nil, err
	}

	for _, l := range layers {
		content, err := r.renderLayer(l, size)
		if err != nil {
			return nil, err
		}
		placed := placeLayer(content, l.Transform, size)
		var blend *imop.Blend
		if l.Blend != "" {
			blend = imop.NewBlend(l.Blend)
		}
		imop.Composite(canvas, placed, imop.SrcOver, blend)
	}

	buf, err := EncodeImage(canvas, format, quality, backdropColor(c.Background))
	if err != nil {
		return nil, &RenderError{Err: err}
	}
	return buf, nil
}

// renderLayer produces the pixel content for one layer. This is the single
// dispatch point over the layer kinds.
func (r *Renderer) renderLayer(l Layer, size int) (*image.NRGBA, error) {
	scale := l.Transform.Scale
	if scale <= 0 {
		scale = 1
	}
	extent := int(float64(size) * scale)
	if extent <= 0 {
		return nil, &RenderError{Filename: l.ID, Err: fmt.Errorf("layer scale %v leaves no pixels", scale)}
	}

	switch l.Kind {
	case LayerIcon:
		iconColor := "#000000"
		if l.PaintOverride != nil && l.PaintOverride.Solid != "" {
			iconColor = l.PaintOverride.Solid
		}
		doc, err := r.BuildSVG(RenderRequest{
			IconID:     l.IconID,
			IconColor:  iconColor,
			OutputSize: extent,
		})
		if err != nil {
			return nil, err
		}
		img, err := r.rasterizeToImage(doc, extent, extent)
		if err != nil {
			return nil, err
		}
		return img, nil
	case LayerImage:
		src, err := decodeRaster(l.Image)
		if err != nil {
			return nil, &RenderError{Filename: l.ID, Err: err}
		}
		return imaging.Fit(src, extent, extent, imaging.Lanczos), nil
	case LayerText:
		pt := l.TextSize
		if pt <= 0 {
			pt = float64(size) / 4
		}
		textColor := "#000000"
		if l.PaintOverride != nil && l.PaintOverride.Solid != "" {
			textColor = l.PaintOverride.Solid
		}
		return drawText(l.Text, pt*scale, r.Restriction.ClampColor(textColor))
	default:
		return nil, &RenderError{Filename: l.ID, Err: fmt.Errorf("unknown layer kind %q", l.Kind)}
	}
}

// rasterizeToImage draws a vector document into a pixel buffer without
// encoding it.
func (r *Renderer) rasterizeToImage(svg string, width, height int) (*image.NRGBA, error) {
	icon, err := parseSVG(svg)
	if err != nil {
		return nil, &RenderError{Err: err}
	}
	return imgToNRGBA(r.drawSVG(icon, width, height)), nil
}

// placeLayer rotates the layer content and positions it on a canvas-sized
// transparent sheet at the layer's offset, ready for flattening.
func placeLayer(content *image.NRGBA, t Transform, size int) *image.NRGBA {
	if t.Rotation != 0 {
		content = imaging.Rotate(content, t.Rotation, backdropTransparent)
	}
	sheet := imaging.New(size, size, backdropTransparent)
	return imaging.Overlay(sheet, content, image.Pt(int(t.X), int(t.Y)), 1.0)
}
