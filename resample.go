package flowicon

import (
	"image"
	"iter"

	"github.com/disintegration/imaging"
)

// The supported resampling filters.
const (
	Lanczos    = "lanczos"
	Box        = "box"
	CatmullRom = "catmullrom"
	Linear     = "linear"
)

var resampleFilters = map[string]imaging.ResampleFilter{
	Lanczos:    imaging.Lanczos,
	Box:        imaging.Box,
	CatmullRom: imaging.CatmullRom,
	Linear:     imaging.Linear,
}

func resampleFilter(name string) (imaging.ResampleFilter, error) {
	if name == "" {
		return imaging.Lanczos, nil
	}
	f, ok := resampleFilters[name]
	if !ok {
		return imaging.ResampleFilter{}, invalidConfig("unsupported resampling filter %q", name)
	}
	return f, nil
}

// Resampler derives the smaller renditions of the master canvas.
type Resampler struct {
	Filter imaging.ResampleFilter
}

// NewResampler returns a resampler using the named filter, Lanczos by default.
func NewResampler(filter string) (*Resampler, error) {
	f, err := resampleFilter(filter)
	if err != nil {
		return nil, err
	}
	return &Resampler{Filter: f}, nil
}

// Resize returns the master scaled to a size x size canvas.
// The master size itself yields the master unchanged.
func (r *Resampler) Resize(master image.Image, size int) (*image.NRGBA, error) {
	if err := checkResize(master, size); err != nil {
		return nil, err
	}
	return r.resize(master, size), nil
}

// resize expects a size already checked against the master.
func (r *Resampler) resize(master image.Image, size int) *image.NRGBA {
	if size == master.Bounds().Dx() {
		return imgToNRGBA(master)
	}
	return imaging.Resize(master, size, size, r.Filter)
}

// Family returns a lazy sequence of the master resized to every requested size,
// in the given order. The sizes are all checked before the sequence is returned.
func (r *Resampler) Family(master image.Image, sizes []int) (iter.Seq2[int, *image.NRGBA], error) {
	for _, size := range sizes {
		if err := checkResize(master, size); err != nil {
			return nil, err
		}
	}

	return func(yield func(int, *image.NRGBA) bool) {
		for _, size := range sizes {
			if !yield(size, r.resize(master, size)) {
				return
			}
		}
	}, nil
}

func checkResize(master image.Image, size int) error {
	b := master.Bounds()
	if b.Dx() != b.Dy() {
		return invalidGeometry("master canvas %dx%d should be square", b.Dx(), b.Dy())
	}
	if size <= 0 || size > b.Dx() {
		return invalidGeometry("icon size %d should be within (0, %d]", size, b.Dx())
	}
	return nil
}
