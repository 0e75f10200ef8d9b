// Go implementation of StackBlur algorithm described here:
// http://incubator.quasimondo.com/processing/fast_blur_deluxe.php

package flowicon

import (
	"image"

	"github.com/esimov/flowicon/utils"
)

// maxBlurRadius is the largest radius covered by the lookup tables.
const maxBlurRadius = 254

var mulTable = [...]uint32{
	512, 512, 456, 512, 328, 456, 335, 512, 405, 328, 271, 456, 388, 335, 292, 512,
	454, 405, 364, 328, 298, 271, 496, 456, 420, 388, 360, 335, 312, 292, 273, 512,
	482, 454, 428, 405, 383, 364, 345, 328, 312, 298, 284, 271, 259, 496, 475, 456,
	437, 420, 404, 388, 374, 360, 347, 335, 323, 312, 302, 292, 282, 273, 265, 512,
	497, 482, 468, 454, 441, 428, 417, 405, 394, 383, 373, 364, 354, 345, 337, 328,
	320, 312, 305, 298, 291, 284, 278, 271, 265, 259, 507, 496, 485, 475, 465, 456,
	446, 437, 428, 420, 412, 404, 396, 388, 381, 374, 367, 360, 354, 347, 341, 335,
	329, 323, 318, 312, 307, 302, 297, 292, 287, 282, 278, 273, 269, 265, 261, 512,
	505, 497, 489, 482, 475, 468, 461, 454, 447, 441, 435, 428, 422, 417, 411, 405,
	399, 394, 389, 383, 378, 373, 368, 364, 359, 354, 350, 345, 341, 337, 332, 328,
	324, 320, 316, 312, 309, 305, 301, 298, 294, 291, 287, 284, 281, 278, 274, 271,
	268, 265, 262, 259, 257, 507, 501, 496, 491, 485, 480, 475, 470, 465, 460, 456,
	451, 446, 442, 437, 433, 428, 424, 420, 416, 412, 408, 404, 400, 396, 392, 388,
	385, 381, 377, 374, 370, 367, 363, 360, 357, 354, 350, 347, 344, 341, 338, 335,
	332, 329, 326, 323, 320, 318, 315, 312, 310, 307, 304, 302, 299, 297, 294, 292,
	289, 287, 285, 282, 280, 278, 275, 273, 271, 269, 267, 265, 263, 261, 259,
}

var shgTable = [...]uint32{
	9, 11, 12, 13, 13, 14, 14, 15, 15, 15, 15, 16, 16, 16, 16, 17,
	17, 17, 17, 17, 17, 17, 18, 18, 18, 18, 18, 18, 18, 18, 18, 19,
	19, 19, 19, 19, 19, 19, 19, 19, 19, 19, 19, 19, 19, 20, 20, 20,
	20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 20, 21,
	21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21,
	21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 22, 22, 22, 22, 22, 22,
	22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22,
	22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22, 23,
	23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23,
	23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23,
	23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23, 23,
	23, 23, 23, 23, 23, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24,
	24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24,
	24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24,
	24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24,
	24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24, 24,
}

// StackBlur blurs img in place with the given radius, first along the rows, then along the columns.
// The channels are blurred independently, so the RGB of transparent pixels should be set
// to a meaningful color before blurring translucent content.
func StackBlur(img *image.NRGBA, radius int) {
	if radius < 1 {
		return
	}
	radius = utils.Min(radius, maxBlurRadius)

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}
	stack := make([]uint32, 4*(2*radius+1))

	for y := b.Min.Y; y < b.Max.Y; y++ {
		blurLine(img.Pix, img.PixOffset(b.Min.X, y), 4, w, radius, stack)
	}
	for x := b.Min.X; x < b.Max.X; x++ {
		blurLine(img.Pix, img.PixOffset(x, b.Min.Y), img.Stride, h, radius, stack)
	}
}

// blurLine blurs n pixels starting at off and spaced by step bytes.
// The stack is a circular buffer of 2*radius+1 pixels.
func blurLine(pix []uint8, off, step, n, radius int, stack []uint32) {
	var sum, sumIn, sumOut [4]uint32

	div := 2*radius + 1
	last := n - 1
	mul := uint64(mulTable[radius])
	shg := shgTable[radius]

	at := func(i int) int { return off + utils.Min(i, last)*step }

	for i := 0; i <= radius; i++ {
		p := at(0)
		for c := 0; c < 4; c++ {
			v := uint32(pix[p+c])
			stack[i*4+c] = v
			sum[c] += v * uint32(i+1)
			sumOut[c] += v
		}
	}
	for i := 1; i <= radius; i++ {
		p := at(i)
		for c := 0; c < 4; c++ {
			v := uint32(pix[p+c])
			stack[(i+radius)*4+c] = v
			sum[c] += v * uint32(radius+1-i)
			sumIn[c] += v
		}
	}

	sp := radius
	for x := 0; x < n; x++ {
		d := off + x*step
		for c := 0; c < 4; c++ {
			pix[d+c] = uint8((uint64(sum[c]) * mul) >> shg)
		}

		start := sp + div - radius
		if start >= div {
			start -= div
		}
		p := at(x + radius + 1)
		for c := 0; c < 4; c++ {
			sum[c] -= sumOut[c]
			sumOut[c] -= stack[start*4+c]
			v := uint32(pix[p+c])
			stack[start*4+c] = v
			sumIn[c] += v
			sum[c] += sumIn[c]
		}

		if sp++; sp >= div {
			sp = 0
		}
		for c := 0; c < 4; c++ {
			v := stack[sp*4+c]
			sumOut[c] += v
			sumIn[c] -= v
		}
	}
}
