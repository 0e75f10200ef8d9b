package flowicon

import (
	"image"
	"image/color"
	"math"

	"github.com/esimov/flowicon/utils"
)

// GradientLayer renders the base disc: a radial gradient going from
// the start color in the center to the end color on the rim.
type GradientLayer struct {
	Spec GradientSpec
}

// NewGradientLayer returns the gradient layer described by the configuration.
func NewGradientLayer(c GradientConfig) *GradientLayer {
	return &GradientLayer{
		Spec: GradientSpec{Start: c.Start.NRGBA, End: c.End.NRGBA, Space: c.Space},
	}
}

// Render evaluates the gradient per pixel. A pixel at distance d from the center
// takes the color of the ratio round(d)/maxRadius, which is the same result as
// painting concentric discs from the outermost to the innermost one.
// The rim is anti-aliased over one pixel.
func (g *GradientLayer) Render(size int) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, invalidGeometry("canvas size %d should be positive", size)
	}
	maxRadius := size / 2
	if maxRadius <= 0 {
		return nil, invalidGeometry("canvas size %d gives an empty gradient disc", size)
	}

	// Only maxRadius+1 distinct colors exist, evaluate them once.
	lut := make([]color.NRGBA, maxRadius+1)
	for r := range lut {
		lut[r] = g.Spec.At(float64(r) / float64(maxRadius))
	}

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	center := float64(maxRadius)
	rim := float64(maxRadius) + 0.5

	for y := 0; y < size; y++ {
		dy := float64(y) - center
		i := img.PixOffset(0, y)
		for x := 0; x < size; x++ {
			dx := float64(x) - center
			d := math.Hypot(dx, dy)

			if cov := utils.Clamp(rim-d, 0, 1); cov > 0 {
				c := lut[utils.Min(int(math.Round(d)), maxRadius)]
				img.Pix[i+0] = c.R
				img.Pix[i+1] = c.G
				img.Pix[i+2] = c.B
				img.Pix[i+3] = uint8(math.Round(float64(c.A) * cov))
			}
			i += 4
		}
	}

	return img, nil
}
