package flowicon

import (
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGlowLayer(c GlowConfig) *GlowLayer {
	return NewGlowLayer(c, NewGlyphLayer(DefaultConfig().Glyph))
}

func TestGlow_Steps(t *testing.T) {
	spec, err := newGlowLayer(DefaultConfig().Glow).Spec(1024)
	require.NoError(t, err)

	assert.Equal(t, []GlowStep{
		{Expansion: 0, Alpha: 30},
		{Expansion: 1, Alpha: 25},
		{Expansion: 2, Alpha: 20},
		{Expansion: 3, Alpha: 15},
		{Expansion: 4, Alpha: 10},
	}, spec.Steps)
	assert.Equal(t, 0, spec.Blur)
}

func TestGlow_StepsScaleWithSize(t *testing.T) {
	spec, err := newGlowLayer(DefaultConfig().Glow).Spec(4096)
	require.NoError(t, err)
	assert.Equal(t, 16, spec.Steps[4].Expansion)

	// the unit never drops below one pixel
	spec, err = newGlowLayer(DefaultConfig().Glow).Spec(64)
	require.NoError(t, err)
	assert.Equal(t, 4, spec.Steps[4].Expansion)
}

func TestGlow_AlphaStrictlyDecreasing(t *testing.T) {
	testCases := []struct {
		base, decrement, steps int
		want                   int
	}{
		{30, 5, 5, 5},
		{30, 10, 5, 3},
		{10, 5, 8, 2},
		{0, 5, 4, 0},
		{255, 1, 8, 8},
	}

	for _, tc := range testCases {
		cfg := DefaultConfig().Glow
		cfg.BaseAlpha, cfg.Decrement, cfg.Steps = tc.base, tc.decrement, tc.steps

		spec, err := newGlowLayer(cfg).Spec(1024)
		require.NoError(t, err)
		require.Len(t, spec.Steps, tc.want)
		assert.LessOrEqual(t, len(spec.Steps), MaxGlowSteps)

		for i, s := range spec.Steps {
			assert.Greater(t, s.Alpha, uint8(0))
			if i > 0 {
				assert.Less(t, s.Alpha, spec.Steps[i-1].Alpha)
			}
		}
	}
}

func TestGlow_InvalidParameters(t *testing.T) {
	cfg := DefaultConfig().Glow
	cfg.Steps = MaxGlowSteps + 1
	_, err := newGlowLayer(cfg).Render(1024)
	assert.True(t, errors.Is(err, ErrInvalidGeometry))

	cfg = DefaultConfig().Glow
	cfg.Decrement = 0
	_, err = newGlowLayer(cfg).Spec(1024)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	// the configuration check reports the same kind of error
	full := DefaultConfig()
	full.Glow = cfg
	assert.True(t, errors.Is(full.Validate(), ErrInvalidConfig))

	_, err = newGlowLayer(DefaultConfig().Glow).Render(-4)
	assert.True(t, errors.Is(err, ErrInvalidGeometry))
}

func TestGlow_Render(t *testing.T) {
	assert := assert.New(t)

	img, err := newGlowLayer(DefaultConfig().Glow).Render(1024)
	require.NoError(t, err)

	// the glow is symmetric: it grows on every side of the glyph
	left := img.NRGBAAt(453, 500)
	right := img.NRGBAAt(483, 550)
	top := img.NRGBAAt(470, 424)
	assert.Greater(left.A, uint8(0))
	assert.Greater(right.A, uint8(0))
	assert.Greater(top.A, uint8(0))
	assert.Equal(left.A, right.A)
	assert.Equal(left.A, top.A)

	// closer to the glyph the steps stack up
	assert.Greater(img.NRGBAAt(470, 500).A, img.NRGBAAt(452, 500).A)

	assert.Equal(uint8(0), img.NRGBAAt(451, 500).A)
	assert.Equal(uint8(0), img.NRGBAAt(512, 512).A)
	assert.Equal(color.NRGBA{R: 255, G: 255, B: 255}, img.NRGBAAt(0, 0))
}

func TestGlow_Blur(t *testing.T) {
	cfg := DefaultConfig().Glow
	cfg.Blur = 1.0 / 128

	img, err := newGlowLayer(cfg).Render(1024)
	require.NoError(t, err)

	// the blur spreads the halo past the outermost step
	assert.Greater(t, img.NRGBAAt(449, 500).A, uint8(0))
	// while the color of the halo is kept
	c := img.NRGBAAt(449, 500)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(255), c.G)
	assert.Equal(t, uint8(255), c.B)
}

func TestGlow_BlurKeepsHaloColor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Glow.Blur = 1.0 / 128

	c, err := NewCompositor(cfg)
	require.NoError(t, err)

	img, err := c.Compose(1024)
	require.NoError(t, err)
	disc, err := c.Gradient.Render(1024)
	require.NoError(t, err)

	// a white halo can only lighten the disc, even where the blur thins it out
	for _, x := range []int{446, 448, 450, 453} {
		got, base := img.NRGBAAt(x, 500), disc.NRGBAAt(x, 500)
		assert.GreaterOrEqual(t, got.R, base.R, "x=%d", x)
		assert.GreaterOrEqual(t, got.G, base.G, "x=%d", x)
		assert.GreaterOrEqual(t, got.B, base.B, "x=%d", x)
	}
	assert.Greater(t, img.NRGBAAt(450, 500).G, disc.NRGBAAt(450, 500).G)
}
