package flowicon

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/esimov/flowicon/imop"
	"github.com/esimov/flowicon/utils"
	"golang.org/x/image/math/f32"
	"golang.org/x/image/vector"
)

// GapPolicy reports whether the segment centered at the given angle (in degrees) is drawn.
type GapPolicy func(angle int) bool

// PeriodicGap draws the segments whose angle falls in the first drawn degrees of every period.
func PeriodicGap(period, drawn int) GapPolicy {
	return func(angle int) bool {
		return angle%period < drawn
	}
}

// ArcSegment is an annular wedge between two radii and two angles, expressed in radians.
type ArcSegment struct {
	Inner, Outer float64
	Start, End   float64
	Samples      int
}

// Polygon approximates the wedge centered at (cx, cy) with a closed polygon:
// the inner arc is walked forward, then the outer arc backward.
func (s ArcSegment) Polygon(cx, cy float64) []f32.Vec2 {
	n := utils.Max(s.Samples, minArcSamples)
	poly := make([]f32.Vec2, 0, 2*n)

	point := func(r float64, i int) f32.Vec2 {
		theta := s.Start + (s.End-s.Start)*float64(i)/float64(n-1)
		return f32.Vec2{
			float32(cx + r*math.Cos(theta)),
			float32(cy + r*math.Sin(theta)),
		}
	}
	for i := 0; i < n; i++ {
		poly = append(poly, point(s.Inner, i))
	}
	for i := n - 1; i >= 0; i-- {
		poly = append(poly, point(s.Outer, i))
	}
	return poly
}

// RingSpec describes one resolved ring band.
type RingSpec struct {
	Radius       float64
	Thickness    float64
	ColorRatio   float64
	Color        color.NRGBA
	StepDeg      int
	PeriodDeg    int
	HalfWidthDeg float64
	Samples      int
	Gap          GapPolicy
}

// Angles returns the centers (in degrees) of the segments which pass the gap policy.
func (r RingSpec) Angles() []int {
	var angles []int
	if r.StepDeg <= 0 {
		return nil
	}
	for a := 0; a < 360; a += r.StepDeg {
		if r.Gap == nil || r.Gap(a) {
			angles = append(angles, a)
		}
	}
	return angles
}

// Segments returns the drawn wedges of the ring.
func (r RingSpec) Segments() []ArcSegment {
	angles := r.Angles()
	segs := make([]ArcSegment, 0, len(angles))
	half := r.HalfWidthDeg * math.Pi / 180

	for _, a := range angles {
		theta := float64(a) * math.Pi / 180
		segs = append(segs, ArcSegment{
			Inner:   r.Radius - r.Thickness/2,
			Outer:   r.Radius + r.Thickness/2,
			Start:   theta - half,
			End:     theta + half,
			Samples: r.Samples,
		})
	}
	return segs
}

// RingLayer renders the concentric, angularly gapped ring bands.
type RingLayer struct {
	Config RingConfig
}

// NewRingLayer returns the ring layer described by the configuration.
func NewRingLayer(c RingConfig) *RingLayer {
	return &RingLayer{Config: c}
}

// Specs resolves the ring geometry for the given canvas size, innermost ring first.
func (l *RingLayer) Specs(size int) ([]RingSpec, error) {
	if size <= 0 {
		return nil, invalidGeometry("canvas size %d should be positive", size)
	}
	c := l.Config
	if c.Count < 1 {
		return nil, invalidGeometry("at least one ring is required, got %d", c.Count)
	}
	if c.StepDeg <= 0 || c.PeriodDeg <= 0 {
		return nil, invalidGeometry("ring angular step and period should be positive")
	}

	center := float64(size / 2)
	base := c.Base * center
	step := c.Step * center
	thickness := math.Max(1, math.Floor(float64(size)*c.Thickness))

	specs := make([]RingSpec, 0, c.Count)
	for i := 0; i < c.Count; i++ {
		radius := base + float64(i)*step

		if thickness >= radius {
			return nil, invalidGeometry("ring %d: thickness %.1f should be smaller than its radius %.1f", i, thickness, radius)
		}
		if i > 0 && radius <= specs[i-1].Radius {
			return nil, invalidGeometry("ring %d: radius %.1f should be larger than the previous one", i, radius)
		}
		if radius+thickness/2 > center {
			return nil, invalidGeometry("ring %d: radius %.1f exceeds the canvas radius %.1f", i, radius, center)
		}

		ratio := 0.0
		if c.Count > 1 {
			ratio = float64(i) / float64(c.Count-1)
		}
		col := Blend(c.Start.NRGBA, c.End.NRGBA, ratio)
		col.A = uint8(utils.Clamp(c.BaseAlpha-i*c.AlphaStep, 0, 255))

		specs = append(specs, RingSpec{
			Radius:       radius,
			Thickness:    thickness,
			ColorRatio:   ratio,
			Color:        col,
			StepDeg:      c.StepDeg,
			PeriodDeg:    c.PeriodDeg,
			HalfWidthDeg: c.HalfWidthDeg,
			Samples:      c.Samples,
			Gap:          PeriodicGap(c.PeriodDeg, c.DrawnDeg),
		})
	}
	return specs, nil
}

// Render rasterizes every ring into one transparent layer, outermost ring first.
func (l *RingLayer) Render(size int) (*image.NRGBA, error) {
	specs, err := l.Specs(size)
	if err != nil {
		return nil, err
	}

	rect := image.Rect(0, 0, size, size)
	layer := image.NewNRGBA(rect)
	band := image.NewNRGBA(rect)
	mask := image.NewAlpha(rect)

	z := vector.NewRasterizer(size, size)
	op := imop.InitOp()
	// Pixel centers sit at half integer coordinates in the rasterizer space.
	cx := float64(size/2) + 0.5

	for i := len(specs) - 1; i >= 0; i-- {
		spec := specs[i]

		// Reset restores the default Over operator.
		z.Reset(size, size)
		z.DrawOp = draw.Src
		for _, seg := range spec.Segments() {
			poly := seg.Polygon(cx, cx)
			z.MoveTo(poly[0][0], poly[0][1])
			for _, p := range poly[1:] {
				z.LineTo(p[0], p[1])
			}
			z.ClosePath()
		}
		z.Draw(mask, rect, image.Opaque, image.Point{})

		fillBand(band, mask, spec.Color)
		op.Draw(layer, band, nil)
	}
	return layer, nil
}

// fillBand paints col into dst using the coverage mask, scaling the color alpha by it.
func fillBand(dst *image.NRGBA, mask *image.Alpha, col color.NRGBA) {
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		di := dst.PixOffset(b.Min.X, y)
		mi := mask.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			m := uint32(mask.Pix[mi])
			dst.Pix[di+0] = col.R
			dst.Pix[di+1] = col.G
			dst.Pix[di+2] = col.B
			dst.Pix[di+3] = uint8((uint32(col.A)*m + 127) / 255)
			di += 4
			mi++
		}
	}
}
