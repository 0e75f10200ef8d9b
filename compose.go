package flowicon

import (
	"image"
	"time"

	"github.com/esimov/flowicon/imop"
	"github.com/esimov/flowicon/utils"
)

// Layer renders one stage of the icon on a transparent square canvas.
type Layer interface {
	Render(size int) (*image.NRGBA, error)
}

// Compositor stacks the icon layers in their fixed order: the gradient disc,
// the ring bands and on top the mark made of the glyph with its glow beneath.
type Compositor struct {
	Gradient Layer
	Rings    Layer
	Glyph    Layer
	Glow     Layer

	// RingBlend is applied when the ring layer is composited over the gradient.
	RingBlend *imop.Blend
}

// NewCompositor wires the layers described by the configuration.
func NewCompositor(c Config) (*Compositor, error) {
	blend := imop.NewBlend()
	if c.Rings.Blend != "" {
		if err := blend.Set(c.Rings.Blend); err != nil {
			return nil, invalidConfig("%v", err)
		}
	}
	glyph := NewGlyphLayer(c.Glyph)

	return &Compositor{
		Gradient:  NewGradientLayer(c.Gradient),
		Rings:     NewRingLayer(c.Rings),
		Glyph:     glyph,
		Glow:      NewGlowLayer(c.Glow, glyph),
		RingBlend: blend,
	}, nil
}

// Compose renders every layer at the given size and composites them
// into a new canvas, each one with the source over operator.
func (c *Compositor) Compose(size int) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, invalidGeometry("canvas size %d should be positive", size)
	}
	log := Logger()

	render := func(name string, l Layer) (*image.NRGBA, error) {
		now := time.Now()
		img, err := l.Render(size)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("layer", name).Int("size", size).
			Str("took", utils.FormatTime(time.Since(now))).Msg("layer rendered")
		return img, nil
	}

	gradient, err := render("gradient", c.Gradient)
	if err != nil {
		return nil, err
	}
	rings, err := render("rings", c.Rings)
	if err != nil {
		return nil, err
	}
	glyph, err := render("glyph", c.Glyph)
	if err != nil {
		return nil, err
	}
	glow, err := render("glow", c.Glow)
	if err != nil {
		return nil, err
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
	op := imop.InitOp()

	// The canvas starts out transparent, so copying the gradient equals drawing it over.
	op.Set(imop.Copy)
	op.Draw(canvas, gradient, nil)

	op.Set(imop.SrcOver)
	op.Draw(canvas, rings, c.RingBlend)

	// The glow goes beneath the glyph inside the mark group,
	// which keeps the glyph topmost whatever the glow covers.
	op.Set(imop.DstOver)
	op.Draw(glyph, glow, nil)

	op.Set(imop.SrcOver)
	op.Draw(canvas, glyph, nil)

	return canvas, nil
}
