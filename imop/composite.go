// Package imop implements the Porter-Duff composition operations
// used for mixing a graphic element with its backdrop.
// The image/draw core package implements only the source-over-destination and source,
// and works in premultiplied space; the icon layers are kept as non-premultiplied
// NRGBA canvases, so the operators here read and write NRGBA pixels directly.
package imop

import (
	"fmt"
	"image"
	"math"

	"github.com/esimov/flowicon/utils"
)

const (
	Copy    = "copy"
	SrcOver = "src_over"
	DstOver = "dst_over"
)

// Composite holds the currently active composition operation.
type Composite struct {
	current string
	ops     []string
}

// InitOp initializes a new composite operation, defaulting to SrcOver.
func InitOp() *Composite {
	return &Composite{
		current: SrcOver,
		ops:     []string{Copy, SrcOver, DstOver},
	}
}

// Set activates one of the supported composition operations.
func (op *Composite) Set(cop string) error {
	if !utils.Contains(op.ops, cop) {
		return fmt.Errorf("unsupported composite operation: %q", cop)
	}
	op.current = cop
	return nil
}

// Get returns the currently active composition operation.
func (op *Composite) Get() string {
	return op.current
}

// Draw composites src onto dst in place: dst acts as the backdrop and receives the result.
// Only the overlapping region of the two images is touched.
// The blend mode, if any, is applied to the source color before composition.
func (op *Composite) Draw(dst, src *image.NRGBA, blend *Blend) {
	rect := dst.Bounds().Intersect(src.Bounds())
	if rect.Empty() {
		return
	}

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		di := dst.PixOffset(rect.Min.X, y)
		si := src.PixOffset(rect.Min.X, y)
		for x := rect.Min.X; x < rect.Max.X; x++ {
			s := src.Pix[si : si+4 : si+4]
			d := dst.Pix[di : di+4 : di+4]
			op.pixel(d, s, blend)
			di += 4
			si += 4
		}
	}
}

// pixel writes the composition of the source pixel s over the backdrop pixel d into d.
func (op *Composite) pixel(d, s []uint8, blend *Blend) {
	switch op.current {
	case Copy:
		copy(d, s)
		return
	case SrcOver:
		if s[3] == 0 {
			return
		}
		if s[3] == 0xff && !blend.active() {
			copy(d, s)
			return
		}
	case DstOver:
		if d[3] == 0xff || s[3] == 0 {
			return
		}
		if d[3] == 0 {
			copy(d, s)
			return
		}
	}

	as := float64(s[3]) / 255
	ab := float64(d[3]) / 255

	var ao float64
	switch op.current {
	case SrcOver:
		ao = as + ab*(1-as)
	case DstOver:
		ao = ab + as*(1-ab)
	}
	if ao == 0 {
		d[0], d[1], d[2], d[3] = 0, 0, 0, 0
		return
	}

	for i := 0; i < 3; i++ {
		cs := float64(s[i]) / 255
		cb := float64(d[i]) / 255

		if op.current == SrcOver && blend.active() {
			cs = (1-ab)*cs + ab*blend.apply(cb, cs)
		}

		// premultiplied result, normalized back by the output alpha
		var co float64
		switch op.current {
		case SrcOver:
			co = as*cs + ab*cb*(1-as)
		case DstOver:
			co = ab*cb + as*cs*(1-ab)
		}
		d[i] = toUint8(co / ao)
	}
	d[3] = toUint8(ao)
}

func toUint8(v float64) uint8 {
	return uint8(utils.Clamp(math.Round(v*255), 0, 255))
}
