package flowicon

import (
	"image"
	"image/draw"
	"io"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"golang.org/x/image/vector"
)

// Backend is the raster capability the pipeline depends on.
// Probe reports ErrCapabilityUnavailable when nothing can be rasterized or
// encoded, in which case the generator falls back to the static artifact.
type Backend interface {
	Name() string
	Probe() error
}

// DefaultBackend returns the software backend built on the vector rasterizer.
func DefaultBackend() Backend {
	return vectorBackend{}
}

type vectorBackend struct{}

func (vectorBackend) Name() string { return "vector" }

// Probe rasterizes a small triangle and encodes it, recovering from any panic
// raised on the way.
func (vectorBackend) Probe() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(ErrCapabilityUnavailable, "vector backend: %v", r)
		}
	}()

	const size = 8
	mask := image.NewAlpha(image.Rect(0, 0, size, size))

	z := vector.NewRasterizer(size, size)
	z.DrawOp = draw.Src
	z.MoveTo(1, 1)
	z.LineTo(7, 1)
	z.LineTo(4, 7)
	z.ClosePath()
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	if mask.AlphaAt(4, 3).A == 0 {
		return errors.Wrap(ErrCapabilityUnavailable, "vector backend produced an empty raster")
	}
	if err := imaging.Encode(io.Discard, mask, imaging.PNG); err != nil {
		return errors.Wrapf(ErrCapabilityUnavailable, "vector backend could not encode: %v", err)
	}
	return nil
}

// Unavailable returns a backend which always reports the capability as missing.
// It forces the static fallback, e.g. on hosts without a usable raster stack.
func Unavailable(reason string) Backend {
	return unavailableBackend{reason: reason}
}

type unavailableBackend struct {
	reason string
}

func (unavailableBackend) Name() string { return "unavailable" }

func (b unavailableBackend) Probe() error {
	return errors.Wrap(ErrCapabilityUnavailable, b.reason)
}
