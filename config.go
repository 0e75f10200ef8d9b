package flowicon

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/esimov/flowicon/imop"
	"github.com/esimov/flowicon/utils"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultMasterSize is the side length of the master canvas.
const DefaultMasterSize = 1024

// MaxGlowSteps bounds the length of the glow sequence.
const MaxGlowSteps = 8

// minArcSamples is the lowest arc resolution which still reads as a smooth band.
const minArcSamples = 8

// Config holds the palette and shape parameters of the icon.
// Lengths are expressed as fractions of the canvas size, so the same
// configuration renders at any master size.
type Config struct {
	Name     string         `yaml:"name" toml:"name"`
	Current  string         `yaml:"current" toml:"current"`
	Sizes    []int          `yaml:"sizes" toml:"sizes"`
	Filter   string         `yaml:"filter" toml:"filter"`
	Gradient GradientConfig `yaml:"gradient" toml:"gradient"`
	Rings    RingConfig     `yaml:"rings" toml:"rings"`
	Glyph    GlyphConfig    `yaml:"glyph" toml:"glyph"`
	Glow     GlowConfig     `yaml:"glow" toml:"glow"`
}

// GradientConfig describes the base disc.
type GradientConfig struct {
	Start HexColor   `yaml:"start" toml:"start"`
	End   HexColor   `yaml:"end" toml:"end"`
	Space ColorSpace `yaml:"space" toml:"space"`
}

// RingConfig describes the decorative ring bands.
type RingConfig struct {
	Count        int      `yaml:"count" toml:"count"`
	Base         float64  `yaml:"base" toml:"base"`           // radius of the innermost ring, relative to the canvas radius
	Step         float64  `yaml:"step" toml:"step"`           // radius increment, relative to the canvas radius
	Thickness    float64  `yaml:"thickness" toml:"thickness"` // relative to the canvas size
	Start        HexColor `yaml:"start" toml:"start"`
	End          HexColor `yaml:"end" toml:"end"`
	BaseAlpha    int      `yaml:"base_alpha" toml:"base_alpha"`
	AlphaStep    int      `yaml:"alpha_step" toml:"alpha_step"`
	StepDeg      int      `yaml:"step_deg" toml:"step_deg"`
	PeriodDeg    int      `yaml:"period_deg" toml:"period_deg"`
	DrawnDeg     int      `yaml:"drawn_deg" toml:"drawn_deg"`
	HalfWidthDeg float64  `yaml:"half_width_deg" toml:"half_width_deg"`
	Samples      int      `yaml:"samples" toml:"samples"`
	Blend        string   `yaml:"blend" toml:"blend"`
}

// GlyphConfig describes the central mark.
type GlyphConfig struct {
	Color  HexColor `yaml:"color" toml:"color"`
	Size   float64  `yaml:"size" toml:"size"`
	Stroke float64  `yaml:"stroke" toml:"stroke"`
}

// GlowConfig describes the halo drawn beneath the glyph.
type GlowConfig struct {
	Color     HexColor `yaml:"color" toml:"color"`
	Steps     int      `yaml:"steps" toml:"steps"`
	BaseAlpha int      `yaml:"base_alpha" toml:"base_alpha"`
	Decrement int      `yaml:"decrement" toml:"decrement"`
	Unit      float64  `yaml:"unit" toml:"unit"` // expansion per step, relative to the canvas size
	Blur      float64  `yaml:"blur" toml:"blur"` // stack blur radius, relative to the canvas size
}

// DefaultConfig returns the reference FlowSense icon parameters.
func DefaultConfig() Config {
	return Config{
		Name:    "flowsense_icon",
		Current: "flowsense_current",
		Sizes:   []int{1024, 512, 256, 128, 64, 32},
		Filter:  Lanczos,
		Gradient: GradientConfig{
			Start: Hex("#673ab7"), // deep purple
			End:   Hex("#f06292"), // coral pink
			Space: RGB,
		},
		Rings: RingConfig{
			Count:        3,
			Base:         0.3,
			Step:         0.15,
			Thickness:    1.0 / 40,
			Start:        Hex("#ffffff"),
			End:          Hex("#ffb7c5"), // light pink
			BaseAlpha:    200,
			AlphaStep:    50,
			StepDeg:      15,
			PeriodDeg:    45,
			DrawnDeg:     30,
			HalfWidthDeg: 7,
			Samples:      20,
			Blend:        imop.Normal,
		},
		Glyph: GlyphConfig{
			Color:  Hex("#ffffff"),
			Size:   1.0 / 6,
			Stroke: 1.0 / 40,
		},
		Glow: GlowConfig{
			Color:     Hex("#ffffff"),
			Steps:     5,
			BaseAlpha: 30,
			Decrement: 5,
			Unit:      1.0 / 1024,
		},
	}
}

// LoadConfig reads a YAML or TOML file on top of the default configuration.
// Keys missing from the file keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "could not read the config file")
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		_, err = toml.Decode(string(data), &cfg)
	default:
		return cfg, invalidConfig("unsupported config file type %q", ext)
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "could not decode %s", filepath.Base(path))
	}

	return cfg, cfg.Validate()
}

// Validate checks the size independent invariants of the configuration.
// The size dependent ones are checked when the layer geometry is resolved.
func (c Config) Validate() error {
	if c.Name == "" {
		return invalidConfig("the icon name is empty")
	}
	for _, s := range c.Sizes {
		if s <= 0 {
			return invalidGeometry("icon size %d should be positive", s)
		}
	}
	if _, err := resampleFilter(c.Filter); err != nil {
		return err
	}
	if c.Gradient.Space != "" && !utils.Contains(colorSpaces, c.Gradient.Space) {
		return invalidConfig("unsupported color space %q", c.Gradient.Space)
	}

	r := c.Rings
	if r.Count < 1 {
		return invalidGeometry("at least one ring is required, got %d", r.Count)
	}
	if r.Base <= 0 || r.Base >= 1 {
		return invalidGeometry("ring base radius %.3f should be within (0, 1)", r.Base)
	}
	if r.Step <= 0 {
		return invalidGeometry("ring radius step %.3f should be positive for increasing radii", r.Step)
	}
	if r.Thickness <= 0 {
		return invalidGeometry("ring thickness %.3f should be positive", r.Thickness)
	}
	if r.AlphaStep < 0 {
		return invalidConfig("ring alpha step %d should not be negative", r.AlphaStep)
	}
	if r.StepDeg <= 0 || r.PeriodDeg <= 0 {
		return invalidGeometry("ring angular step and period should be positive")
	}
	if r.HalfWidthDeg <= 0 {
		return invalidGeometry("ring segment half width %.2f should be positive", r.HalfWidthDeg)
	}
	if r.Blend != "" {
		if err := imop.NewBlend().Set(r.Blend); err != nil {
			return invalidConfig("%v", err)
		}
	}

	if c.Glyph.Size <= 0 || c.Glyph.Stroke <= 0 {
		return invalidGeometry("glyph size and stroke should be positive")
	}
	if c.Glyph.Color.A != 0xff {
		return invalidConfig("glyph color %s should be opaque", c.Glyph.Color)
	}

	g := c.Glow
	if g.Steps < 0 || g.Steps > MaxGlowSteps {
		return invalidGeometry("glow steps %d should be within [0, %d]", g.Steps, MaxGlowSteps)
	}
	if g.Steps > 1 && g.Decrement <= 0 {
		return invalidConfig("glow alpha decrement %d should be positive", g.Decrement)
	}
	if g.BaseAlpha < 0 || g.BaseAlpha > 255 {
		return invalidConfig("glow base alpha %d should be within [0, 255]", g.BaseAlpha)
	}
	if g.Unit < 0 || g.Blur < 0 {
		return invalidGeometry("glow unit and blur should not be negative")
	}

	return nil
}
