package flowicon

import (
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

var (
	deepPurple = color.NRGBA{R: 0x67, G: 0x3a, B: 0xb7, A: 0xff}
	coralPink  = color.NRGBA{R: 0xf0, G: 0x62, B: 0x92, A: 0xff}
)

func TestColor_BlendEndpoints(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(deepPurple, Blend(deepPurple, coralPink, 0))
	assert.Equal(coralPink, Blend(deepPurple, coralPink, 1))

	// the ratio is clamped
	assert.Equal(deepPurple, Blend(deepPurple, coralPink, -0.5))
	assert.Equal(coralPink, Blend(deepPurple, coralPink, 1.5))
}

func TestColor_BlendMidpoint(t *testing.T) {
	c := Blend(deepPurple, coralPink, 0.5)
	assert.Equal(t, color.NRGBA{R: 172, G: 78, B: 165, A: 255}, c)
}

func TestColor_BlendSymmetry(t *testing.T) {
	assert := assert.New(t)

	pairs := [][2]color.NRGBA{
		{deepPurple, coralPink},
		{{R: 255, G: 255, B: 255, A: 200}, {R: 255, G: 183, B: 197, A: 100}},
		{{R: 0, G: 0, B: 0, A: 0}, {R: 1, G: 254, B: 3, A: 255}},
	}
	for _, p := range pairs {
		for _, r := range []float64{0, 0.125, 0.25, 0.5, 0.75, 1} {
			assert.Equal(Blend(p[0], p[1], r), Blend(p[1], p[0], 1-r), "ratio %v", r)
		}
	}
}

func TestColor_GradientSpecEndpoints(t *testing.T) {
	for _, space := range colorSpaces {
		t.Run(string(space), func(t *testing.T) {
			assert := assert.New(t)

			g := GradientSpec{Start: deepPurple, End: coralPink, Space: space}
			assert.Equal(deepPurple, g.At(0))
			assert.Equal(coralPink, g.At(1))
			assert.Equal(coralPink, g.At(2))
			assert.Equal(uint8(0xff), g.At(0.3).A)
		})
	}
}

func TestColor_GradientSpecDefaultsToRGB(t *testing.T) {
	g := GradientSpec{Start: deepPurple, End: coralPink}
	assert.Equal(t, Blend(deepPurple, coralPink, 0.4), g.At(0.4))
}

func TestColor_HexColor(t *testing.T) {
	testCases := []struct {
		in   string
		want color.NRGBA
		str  string
	}{
		{"#673AB7", deepPurple, "#673ab7"},
		{"f06292", coralPink, "#f06292"},
		{"#ffb7c580", color.NRGBA{R: 0xff, G: 0xb7, B: 0xc5, A: 0x80}, "#ffb7c580"},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert := assert.New(t)

			var h HexColor
			assert.NoError(h.UnmarshalText([]byte(tc.in)))
			assert.Equal(tc.want, h.NRGBA)
			assert.Equal(tc.str, h.String())

			text, err := h.MarshalText()
			assert.NoError(err)
			assert.Equal(tc.str, string(text))
		})
	}
}

func TestColor_HexColorMalformed(t *testing.T) {
	assert := assert.New(t)

	for _, in := range []string{"#zz0000", "#12345", "#112233zz"} {
		var h HexColor
		err := h.UnmarshalText([]byte(in))
		assert.Error(err, in)
		assert.True(errors.Is(err, ErrInvalidConfig), in)
	}
	assert.Panics(func() { Hex("not a color") })
}
