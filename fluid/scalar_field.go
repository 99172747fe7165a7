package fluid

import (
	"fmt"
	"math"

	"diesel.com/lattice/utils"
)

//ScalarField is a 2-D grid of float64 values stored row-major. Speed and
//Curl produce one per frame for rendering.
type ScalarField struct {
	NX, NY int
	Values []float64
}

//NewScalarField allocates a zeroed field.
func NewScalarField(nx, ny int) *ScalarField {
	if nx < 0 {
		nx = 0
	}
	if ny < 0 {
		ny = 0
	}
	return &ScalarField{NX: nx, NY: ny, Values: make([]float64, nx*ny)}
}

//Value returns the value at (x,y) after a range check.
func (s *ScalarField) Value(x, y int) (float64, error) {
	if x < 0 || x >= s.NX || y < 0 || y >= s.NY {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrIndexRange, x, y, s.NX, s.NY)
	}
	return s.Values[y*s.NX+x], nil
}

//At returns the value at (x,y) without checks.
func (s *ScalarField) At(x, y int) float64 {
	return s.Values[y*s.NX+x]
}

func (s *ScalarField) Set(x, y int, v float64) {
	s.Values[y*s.NX+x] = v
}

//Dims returns the grid extents.
func (s *ScalarField) Dims() (int, int) {
	return s.NX, s.NY
}

//Range returns the minimum and maximum finite values. An empty or fully
//non-finite field reports (0,0).
func (s *ScalarField) Range() (lo, hi float64) {
	return utils.Bounds(s.Values)
}

//Speed returns |u| per cell.
func Speed(m *Macro) *ScalarField {
	s := NewScalarField(m.NX, m.NY)
	for i := range s.Values {
		s.Values[i] = math.Hypot(m.Ux[i], m.Uy[i])
	}
	return s
}

//Curl returns the central-difference vorticity over interior cells. The
//result is (NX-2)x(NY-2); cell (x-1,y-1) holds
//(ux[y+1][x]-ux[y-1][x]) - (uy[y][x+1]-uy[y][x-1]).
func Curl(m *Macro) *ScalarField {
	s := NewScalarField(m.NX-2, m.NY-2)
	nx := m.NX
	for y := 1; y < m.NY-1; y++ {
		for x := 1; x < m.NX-1; x++ {
			dux := m.Ux[(y+1)*nx+x] - m.Ux[(y-1)*nx+x]
			duy := m.Uy[y*nx+x+1] - m.Uy[y*nx+x-1]
			s.Values[(y-1)*s.NX+x-1] = dux - duy
		}
	}
	return s
}
