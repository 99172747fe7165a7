package fluid

import (
	"fmt"

	"diesel.com/lattice/geometry"
)

//ApplyWall copies the outgoing populations of the second-to-last column into
//the last column on both x edges, so flow leaves the domain without
//reflecting back through the periodic wrap.
func ApplyWall(f *Field) {
	last, inner := f.NX-1, f.NX-2
	for y := 0; y < f.NY; y++ {
		east := f.Cell(last, y)
		eastIn := f.Cell(inner, y)
		for _, k := range westward {
			east[k] = eastIn[k]
		}
		west := f.Cell(0, y)
		westIn := f.Cell(1, y)
		for _, k := range eastward {
			west[k] = westIn[k]
		}
	}
}

//ApplyObstacle computes the macroscopic fields into m, then reverses the
//populations of every solid cell (full-way bounce-back) and zeroes their
//velocity. Density is left as computed from the pre-reversal populations.
func ApplyObstacle(f *Field, mask *geometry.Mask, m *Macro) {
	if mask.NX != f.NX || mask.NY != f.NY {
		panic(fmt.Sprintf("fluid: mask %v does not match field %dx%d", mask.Lattice, f.NX, f.NY))
	}
	f.Macroscopic(m)
	for _, idx := range mask.Indexes() {
		cell := f.cellAt(idx)
		var old [Q]float64
		copy(old[:], cell)
		for k := 0; k < Q; k++ {
			cell[k] = old[opposite[k]]
		}
		m.Ux[idx] = 0
		m.Uy[idx] = 0
	}
}
