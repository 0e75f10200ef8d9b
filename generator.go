package flowicon

import (
	"image"
	"slices"
	"time"

	"github.com/esimov/flowicon/utils"
	"github.com/pkg/errors"
)

// Generator renders the icon family. It probes its backend once per call
// of Generate and picks either the raster strategy or the static fallback.
type Generator struct {
	Config  Config
	Backend Backend
	Sink    Sink
	// Workers is the number of renditions resized concurrently.
	Workers int
}

// IconFamily holds the generated renditions, or the fallback artifact
// when no raster capability was available.
type IconFamily struct {
	Name       string
	MasterSize int
	Icons      []Icon
	Fallback   *FallbackArtifact
}

// Master returns the master rendition, nil for a fallback family.
func (f *IconFamily) Master() *image.NRGBA {
	icon, ok := f.Icon(f.MasterSize)
	if !ok {
		return nil
	}
	return icon.Image
}

// Icon returns the rendition of the given size.
func (f *IconFamily) Icon(size int) (Icon, bool) {
	for _, icon := range f.Icons {
		if icon.Size == size {
			return icon, true
		}
	}
	return Icon{}, false
}

// Sizes returns the sizes of the renditions, largest first.
func (f *IconFamily) Sizes() []int {
	sizes := make([]int, 0, len(f.Icons))
	for _, icon := range f.Icons {
		sizes = append(sizes, icon.Size)
	}
	return sizes
}

// strategy produces the icon family once the backend has been probed.
type strategy interface {
	generate(g *Generator, masterSize int) (*IconFamily, error)
}

// NewGenerator returns a generator using the default backend.
func NewGenerator(cfg Config, sink Sink) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{
		Config:  cfg,
		Backend: DefaultBackend(),
		Sink:    sink,
		Workers: 1,
	}, nil
}

// Generate renders the icon family on top of a master canvas of the given size
// with the default configuration, without persisting anything.
func Generate(masterSize int) (*IconFamily, error) {
	g, err := NewGenerator(DefaultConfig(), nil)
	if err != nil {
		return nil, err
	}
	return g.Generate(masterSize)
}

// Generate renders the icon family on top of a master canvas of the given size.
// A missing raster capability is not an error: the static artifact is handed
// to the sink instead and returned as the family fallback.
func (g *Generator) Generate(masterSize int) (*IconFamily, error) {
	if masterSize <= 0 {
		return nil, invalidGeometry("master size %d should be positive", masterSize)
	}
	if err := g.Config.Validate(); err != nil {
		return nil, err
	}

	s, err := g.strategy()
	if err != nil {
		return nil, err
	}
	return s.generate(g, masterSize)
}

func (g *Generator) strategy() (strategy, error) {
	backend := g.Backend
	if backend == nil {
		backend = DefaultBackend()
	}

	err := backend.Probe()
	switch {
	case err == nil:
		return rasterStrategy{}, nil
	case errors.Is(err, ErrCapabilityUnavailable):
		Logger().Warn().Err(err).Str("backend", backend.Name()).
			Msg("raster capability unavailable, using the static fallback")
		return staticStrategy{}, nil
	default:
		return nil, errors.Wrapf(err, "probing the %s backend", backend.Name())
	}
}

type rasterStrategy struct{}

func (rasterStrategy) generate(g *Generator, masterSize int) (*IconFamily, error) {
	cfg := g.Config

	c, err := NewCompositor(cfg)
	if err != nil {
		return nil, err
	}
	r, err := NewResampler(cfg.Filter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	master, err := c.Compose(masterSize)
	if err != nil {
		return nil, err
	}
	Logger().Debug().Int("size", masterSize).
		Str("took", utils.FormatTime(time.Since(now))).Msg("master composed")

	e := &Exporter{
		Name:      cfg.Name,
		Current:   cfg.Current,
		Sizes:     familySizes(cfg.Sizes, masterSize),
		Resampler: r,
		Workers:   g.Workers,
		Sink:      g.Sink,
	}
	icons, err := e.Export(master)
	if err != nil {
		return nil, err
	}

	return &IconFamily{
		Name:       cfg.Name,
		MasterSize: masterSize,
		Icons:      icons,
	}, nil
}

// familySizes returns the distinct sizes which fit the master, the master size included.
func familySizes(sizes []int, masterSize int) []int {
	family := []int{masterSize}
	for _, size := range sizes {
		if size > masterSize {
			Logger().Warn().Int("size", size).Int("master", masterSize).
				Msg("icon size larger than the master, skipped")
			continue
		}
		if !utils.Contains(family, size) {
			family = append(family, size)
		}
	}
	slices.SortFunc(family, func(a, b int) int { return b - a })
	return family
}

type staticStrategy struct{}

func (staticStrategy) generate(g *Generator, masterSize int) (*IconFamily, error) {
	artifact := &FallbackArtifact{
		Name: FallbackName(g.Config.Name),
		Data: FallbackSVG(),
	}
	if g.Sink != nil {
		if err := g.Sink.SaveFile(artifact.Name, artifact.Data); err != nil {
			return nil, errors.Wrapf(err, "could not save %s", artifact.Name)
		}
	}

	return &IconFamily{
		Name:       g.Config.Name,
		MasterSize: masterSize,
		Fallback:   artifact,
	}, nil
}
