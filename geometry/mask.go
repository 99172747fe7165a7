package geometry

import "fmt"

//Mask - boolean occupancy grid (row-major). Cells marked true are solid.
type Mask struct {
	Lattice
	cells []bool
	solid []int //row-major indexes of solid cells, fixed at construction
}

//NewMask samples shape at every integer lattice site
func NewMask(l Lattice, shape Shape) *Mask {
	m := &Mask{Lattice: l, cells: make([]bool, l.Cells())}
	for y := 0; y < l.NY; y++ {
		for x := 0; x < l.NX; x++ {
			m.cells[l.Index(x, y)] = shape.Contains(float64(x), float64(y))
		}
	}
	m.index()
	return m
}

//MaskFromRows copies a [y][x] boolean grid
func MaskFromRows(rows [][]bool) (*Mask, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyLattice
	}
	l := Lattice{NX: len(rows[0]), NY: len(rows)}
	m := &Mask{Lattice: l, cells: make([]bool, l.Cells())}
	for y, row := range rows {
		if len(row) != l.NX {
			return nil, fmt.Errorf("geometry: row %d has %d cells, want %d", y, len(row), l.NX)
		}
		copy(m.cells[y*l.NX:(y+1)*l.NX], row)
	}
	m.index()
	return m, nil
}

func (m *Mask) index() {
	n := 0
	for _, c := range m.cells {
		if c {
			n++
		}
	}
	m.solid = make([]int, 0, n)
	for i, c := range m.cells {
		if c {
			m.solid = append(m.solid, i)
		}
	}
}

//Solid panics outside the lattice like any slice access
func (m *Mask) Solid(x, y int) bool {
	return m.cells[m.Index(x, y)]
}

//SolidAt is the row-major form of Solid
func (m *Mask) SolidAt(idx int) bool {
	return m.cells[idx]
}

//Count of solid cells
func (m *Mask) Count() int {
	return len(m.solid)
}

//Indexes lists the row-major indexes of solid cells in ascending order. The
//slice is shared by every caller and must not be modified.
func (m *Mask) Indexes() []int {
	return m.solid
}
