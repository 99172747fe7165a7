package utils

import (
	"image/color"
	"math"
	"testing"
	"unsafe"
)

func TestTransfer(t *testing.T) {
	pix := []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	dst := make([]uint8, len(pix))
	ptr := unsafe.Pointer(&dst[0])

	if err := TransferPixelData(ptr, pix, len(pix)-4); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(pix)-4; i++ {
		if dst[i] != pix[i] {
			t.Errorf("Improper buffer load at index %d", i)
		}
	}
	for i := len(pix) - 4; i < len(pix); i++ {
		if dst[i] != 0 {
			t.Errorf("Byte %d written past count", i)
		}
	}
	if err := TransferPixelData(ptr, pix, len(pix)+1); err == nil {
		t.Errorf("Expected out of bounds error")
	}
	if err := TransferPixelData(nil, pix, 4); err == nil {
		t.Errorf("Expected nil pointer error")
	}
}

func TestBounds(t *testing.T) {
	lo, hi := Bounds([]float64{3, math.NaN(), -1, math.Inf(-1), 2})
	if lo != -1 || hi != 3 {
		t.Errorf("Bounds = (%g,%g), want (-1,3)", lo, hi)
	}
	lo, hi = Bounds(nil)
	if lo != 0 || hi != 0 {
		t.Errorf("Empty bounds = (%g,%g)", lo, hi)
	}
}

func TestScaleValues(t *testing.T) {
	dst := make([]float64, 5)
	ScaleValues(dst, []float64{0, 5, 10, 20, -4}, 0, 10)
	want := []float64{0, 0.5, 1, 1, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("scaled[%d] = %g, want %g", i, dst[i], want[i])
		}
	}
	if ScaleValue(3, 1, 1) != 0.5 {
		t.Errorf("Collapsed range should map to midpoint")
	}
	if !math.IsNaN(ScaleValue(math.NaN(), 0, 1)) {
		t.Errorf("NaN should stay NaN")
	}
}

func TestColorize(t *testing.T) {
	lut := []color.RGBA{{R: 255, A: 255}, {G: 255, A: 255}, {B: 255, A: 255}}
	pix := make([]uint8, 16)
	if err := Colorize(pix, []float64{0, 0.5, 1, math.NaN()}, 0, 1, lut); err != nil {
		t.Fatal(err)
	}
	want := []uint8{255, 0, 0, 255, 0, 255, 0, 255, 0, 0, 255, 255, 0, 0, 0, 255}
	for i := range want {
		if pix[i] != want[i] {
			t.Errorf("pix[%d] = %d, want %d", i, pix[i], want[i])
		}
	}
	if err := Colorize(pix[:4], []float64{0, 1}, 0, 1, lut); err == nil {
		t.Errorf("Expected short buffer error")
	}
}

func TestFlipRows(t *testing.T) {
	pix := []uint8{
		1, 1, 1, 1,
		2, 2, 2, 2,
		3, 3, 3, 3,
	}
	FlipRows(pix, 1, 3)
	if pix[0] != 3 || pix[4] != 2 || pix[8] != 1 {
		t.Errorf("FlipRows = %v", pix)
	}
}

func TestParallelRangeVisitsEachIndexOnce(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 64} {
		seen := make([]int, 37)
		ParallelRange(0, 37, workers, func(i int) { seen[i]++ })
		for i, n := range seen {
			if n != 1 {
				t.Errorf("index %d visited %d times with %d workers", i, n, workers)
			}
		}
	}
	ParallelRange(5, 5, 4, func(int) { t.Fatal("empty range visited") })
	ParallelRange(3, 7, 2, func(i int) {
		if i < 3 || i >= 7 {
			t.Errorf("index %d outside [3,7)", i)
		}
	})
}
