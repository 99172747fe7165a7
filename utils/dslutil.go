package utils

import (
	"fmt"
	"image/color"
	"math"
	"unsafe"

	"gonum.org/v1/gonum/floats"
)

//Bounds returns the min and max of the finite entries of values.
//No finite entries gives (0, 0).
func Bounds(values []float64) (lo, hi float64) {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return 0, 0
	}
	return floats.Min(finite), floats.Max(finite)
}

//ScaleValue maps v from [lo,hi] onto [0,1] with clamping. A collapsed range
//maps everything to 0.5, non-finite values to NaN.
func ScaleValue(v, lo, hi float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return math.NaN()
	}
	if hi <= lo {
		return 0.5
	}
	t := (v - lo) / (hi - lo)
	return math.Max(0, math.Min(1, t))
}

//ScaleValues writes ScaleValue of each value into dst (len(dst) >= len(values))
func ScaleValues(dst, values []float64, lo, hi float64) {
	for i, v := range values {
		dst[i] = ScaleValue(v, lo, hi)
	}
}

//PaletteIndex picks the lookup entry for a scaled value. NaN returns -1.
func PaletteIndex(t float64, size int) int {
	if math.IsNaN(t) || size <= 0 {
		return -1
	}
	i := int(t * float64(size-1))
	if i < 0 {
		i = 0
	}
	if i >= size {
		i = size - 1
	}
	return i
}

//Colorize writes one RGBA pixel per value into pix (4 bytes per value)
//through the lookup table. Non-finite values become opaque black.
func Colorize(pix []uint8, values []float64, lo, hi float64, lut []color.RGBA) error {
	if len(pix) < 4*len(values) {
		return fmt.Errorf("utils: pixel buffer holds %d values, need %d", len(pix)/4, len(values))
	}
	for i, v := range values {
		c := color.RGBA{A: 255}
		if idx := PaletteIndex(ScaleValue(v, lo, hi), len(lut)); idx >= 0 {
			c = lut[idx]
		}
		pix[4*i] = c.R
		pix[4*i+1] = c.G
		pix[4*i+2] = c.B
		pix[4*i+3] = c.A
	}
	return nil
}

//FlipRows mirrors an RGBA buffer vertically in place, converting between
//top-left image origin and bottom-left texture origin.
func FlipRows(pix []uint8, width, height int) {
	stride := 4 * width
	tmp := make([]uint8, stride)
	for y := 0; y < height/2; y++ {
		a := pix[y*stride : (y+1)*stride]
		b := pix[(height-1-y)*stride : (height-y)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

//TransferPixelData streams count bytes of pix to ptr. Intended for mapped
//graphics memory but works for any pointer to a large enough go buffer.
func TransferPixelData(ptr unsafe.Pointer, pix []uint8, count int) error {
	if count <= 0 || count > len(pix) {
		return fmt.Errorf("utils: pixel transfer size out of bounds: %d", count)
	}
	if ptr == nil {
		return fmt.Errorf("utils: no valid pointer to graphics memory")
	}
	dst := unsafe.Slice((*uint8)(ptr), count)
	copy(dst, pix[:count])
	return nil
}
