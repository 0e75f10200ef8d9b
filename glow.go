package flowicon

import (
	"image"
	"image/color"
	"math"

	"github.com/esimov/flowicon/imop"
	"github.com/esimov/flowicon/utils"
)

// GlowStep is one halo ring around the glyph: the glyph rectangles grown by
// Expansion pixels on every side and filled with the glow color at Alpha.
type GlowStep struct {
	Expansion int
	Alpha     uint8
}

// GlowSpec is the resolved glow: the steps ordered from the innermost to the outermost one.
type GlowSpec struct {
	Steps []GlowStep
	Color color.NRGBA
	Blur  int
}

// GlowLayer renders the soft halo beneath the glyph.
type GlowLayer struct {
	Config GlowConfig
	Glyph  *GlyphLayer
}

// NewGlowLayer returns the glow layer of the given glyph.
func NewGlowLayer(c GlowConfig, glyph *GlyphLayer) *GlowLayer {
	return &GlowLayer{Config: c, Glyph: glyph}
}

// Spec resolves the glow steps for the given canvas size.
// The alpha decreases strictly with every step; the steps whose alpha
// would drop to zero or below are left out.
func (l *GlowLayer) Spec(size int) (GlowSpec, error) {
	if size <= 0 {
		return GlowSpec{}, invalidGeometry("canvas size %d should be positive", size)
	}
	c := l.Config
	if c.Steps < 0 || c.Steps > MaxGlowSteps {
		return GlowSpec{}, invalidGeometry("glow steps %d should be within [0, %d]", c.Steps, MaxGlowSteps)
	}
	if c.Steps > 1 && c.Decrement <= 0 {
		return GlowSpec{}, invalidConfig("glow alpha decrement %d should be positive", c.Decrement)
	}

	unit := int(math.Round(float64(size) * c.Unit))
	if c.Unit > 0 {
		unit = utils.Max(unit, 1)
	}

	spec := GlowSpec{
		Color: c.Color.NRGBA,
		Blur:  int(math.Round(float64(size) * c.Blur)),
	}
	for step := 0; step < c.Steps; step++ {
		alpha := c.BaseAlpha - step*c.Decrement
		if alpha <= 0 {
			break
		}
		spec.Steps = append(spec.Steps, GlowStep{
			Expansion: step * unit,
			Alpha:     uint8(utils.Min(alpha, 255)),
		})
	}
	return spec, nil
}

// Render draws the glow steps from the outermost to the innermost one.
// Every step is the union of the grown glyph rectangles, so overlapping
// rectangles of the same step do not add up.
func (l *GlowLayer) Render(size int) (*image.NRGBA, error) {
	glyph, err := l.Glyph.Spec(size)
	if err != nil {
		return nil, err
	}
	spec, err := l.Spec(size)
	if err != nil {
		return nil, err
	}

	canvas := image.Rect(0, 0, size, size)
	layer := image.NewNRGBA(canvas)

	// Transparent pixels carry the glow color, so blurring does not pull in black.
	base := spec.Color
	base.A = 0
	fillNRGBA(layer, canvas, base)

	op := imop.InitOp()
	for i := len(spec.Steps) - 1; i >= 0; i-- {
		step := spec.Steps[i]

		var bounds image.Rectangle
		for _, r := range glyph.Rects {
			bounds = bounds.Union(r.Inset(-step.Expansion))
		}
		bounds = bounds.Intersect(canvas)

		col := spec.Color
		col.A = step.Alpha

		mask := image.NewNRGBA(bounds)
		for _, r := range glyph.Rects {
			fillNRGBA(mask, r.Inset(-step.Expansion), col)
		}
		op.Draw(layer, mask, nil)
	}

	if spec.Blur > 0 {
		StackBlur(layer, spec.Blur)
	}
	return layer, nil
}
