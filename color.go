package flowicon

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/esimov/flowicon/utils"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorSpace names the space in which gradient colors are interpolated.
type ColorSpace string

const (
	RGB ColorSpace = "rgb"
	Lab ColorSpace = "lab"
	HCL ColorSpace = "hcl"
	Luv ColorSpace = "luv"
)

var colorSpaces = []ColorSpace{RGB, Lab, HCL, Luv}

// Blend interpolates linearly between c0 and c1. The ratio t is clamped to [0, 1],
// so Blend(c0, c1, 0) is exactly c0 and Blend(c0, c1, 1) is exactly c1.
func Blend(c0, c1 color.NRGBA, t float64) color.NRGBA {
	t = utils.Clamp(t, 0, 1)
	return color.NRGBA{
		R: lerp(c0.R, c1.R, t),
		G: lerp(c0.G, c1.G, t),
		B: lerp(c0.B, c1.B, t),
		A: lerp(c0.A, c1.A, t),
	}
}

func lerp(a, b uint8, t float64) uint8 {
	v := math.Round(float64(a) + (float64(b)-float64(a))*t)
	return uint8(utils.Clamp(v, 0, 255))
}

// GradientSpec is an ordered color pair with the interpolation evaluated in Space.
type GradientSpec struct {
	Start color.NRGBA
	End   color.NRGBA
	Space ColorSpace
}

// At returns the gradient color at ratio t. The endpoints are returned unchanged
// whatever the color space is, since a round trip through Lab or HCL may drift by one step.
func (g GradientSpec) At(t float64) color.NRGBA {
	t = utils.Clamp(t, 0, 1)
	switch {
	case t == 0:
		return g.Start
	case t == 1:
		return g.End
	}

	c0, c1 := toColorful(g.Start), toColorful(g.End)

	var c colorful.Color
	switch g.Space {
	case Lab:
		c = c0.BlendLab(c1, t)
	case HCL:
		c = c0.BlendHcl(c1, t)
	case Luv:
		c = c0.BlendLuv(c1, t)
	default:
		return Blend(g.Start, g.End, t)
	}
	r, gr, b := c.Clamped().RGB255()

	return color.NRGBA{R: r, G: gr, B: b, A: lerp(g.Start.A, g.End.A, t)}
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// HexColor is a color which reads and writes itself as #rrggbb or #rrggbbaa.
type HexColor struct {
	color.NRGBA
}

// Hex returns a HexColor from its textual form and panics on malformed input.
// It is meant for package level defaults.
func Hex(s string) HexColor {
	var h HexColor
	if err := h.UnmarshalText([]byte(s)); err != nil {
		panic(err)
	}
	return h
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *HexColor) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}

	alpha := uint8(0xff)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return invalidConfig("malformed alpha in color %q", s)
		}
		alpha = uint8(a)
		s = s[:7]
	}

	if len(s) != 7 && len(s) != 4 {
		return invalidConfig("malformed color %q", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return invalidConfig("malformed color %q", s)
	}
	r, g, b := c.RGB255()
	h.NRGBA = color.NRGBA{R: r, G: g, B: b, A: alpha}

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (h HexColor) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h HexColor) String() string {
	if h.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", h.R, h.G, h.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", h.R, h.G, h.B, h.A)
}
