package flowicon

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/esimov/flowicon/utils"
)

// minGlyphCanvas is the smallest canvas on which the glyph is guaranteed to fit.
const minGlyphCanvas = 32

// GlyphSpec is the resolved mark: an ordered list of rectangles sharing one fill color.
type GlyphSpec struct {
	Rects []image.Rectangle
	Color color.NRGBA
}

// Bounds returns the smallest rectangle containing every glyph rectangle.
func (g GlyphSpec) Bounds() image.Rectangle {
	var r image.Rectangle
	for _, rect := range g.Rects {
		r = r.Union(rect)
	}
	return r
}

// GlyphLayer renders the stylized "F" in the middle of the icon.
type GlyphLayer struct {
	Config GlyphConfig
}

// NewGlyphLayer returns the glyph layer described by the configuration.
func NewGlyphLayer(c GlyphConfig) *GlyphLayer {
	return &GlyphLayer{Config: c}
}

// Spec resolves the glyph rectangles for the given canvas size: a vertical bar,
// a top bar half the symbol wide and a middle bar a third of the symbol wide.
func (l *GlyphLayer) Spec(size int) (GlyphSpec, error) {
	if size <= 0 {
		return GlyphSpec{}, invalidGeometry("canvas size %d should be positive", size)
	}
	if l.Config.Color.A != 0xff {
		return GlyphSpec{}, invalidConfig("glyph color %s should be opaque", l.Config.Color)
	}

	var (
		center = size / 2
		symbol = int(float64(size) * l.Config.Size)
		stroke = utils.Max(1, int(float64(size)*l.Config.Stroke))
		x      = center - symbol/3
		y      = center - symbol/2
		my     = y + symbol/3
	)

	spec := GlyphSpec{
		Rects: []image.Rectangle{
			image.Rect(x, y, x+stroke, y+symbol),
			image.Rect(x, y, x+symbol/2, y+stroke),
			image.Rect(x, my, x+symbol/3, my+stroke),
		},
		Color: l.Config.Color.NRGBA,
	}

	canvas := image.Rect(0, 0, size, size)
	for i, r := range spec.Rects {
		if r.Empty() {
			return GlyphSpec{}, invalidGeometry("glyph rectangle %d is empty on a %dpx canvas", i, size)
		}
		if !r.In(canvas) {
			return GlyphSpec{}, invalidGeometry("glyph rectangle %d %v exceeds the %dpx canvas", i, r, size)
		}
	}
	return spec, nil
}

// Render fills the glyph rectangles with their opaque color on a transparent layer.
func (l *GlyphLayer) Render(size int) (*image.NRGBA, error) {
	spec, err := l.Spec(size)
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	src := image.NewUniform(spec.Color)
	for _, r := range spec.Rects {
		draw.Draw(img, r, src, image.Point{}, draw.Src)
	}
	return img, nil
}
