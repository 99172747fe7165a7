package fluid

import (
	"fmt"

	"diesel.com/lattice/utils"
	V "diesel.com/lattice/vector"
)

//Macro - density and velocity derived from a Field. Recomputed every step,
//never the source of truth.
type Macro struct {
	NX, NY int
	Rho    []float64
	Ux     []float64
	Uy     []float64
}

func NewMacro(nx, ny int) *Macro {
	n := nx * ny
	return &Macro{
		NX:  nx,
		NY:  ny,
		Rho: make([]float64, n),
		Ux:  make([]float64, n),
		Uy:  make([]float64, n),
	}
}

//Clone deep copies the three grids
func (m *Macro) Clone() *Macro {
	c := NewMacro(m.NX, m.NY)
	copy(c.Rho, m.Rho)
	copy(c.Ux, m.Ux)
	copy(c.Uy, m.Uy)
	return c
}

func (m *Macro) Velocity(x, y int) V.Vec2 {
	i := y*m.NX + x
	return V.Vec2{m.Ux[i], m.Uy[i]}
}

func (m *Macro) Density(x, y int) float64 {
	return m.Rho[y*m.NX+x]
}

//moments returns rho and the momentum of one cell
func moments(cell []float64) (rho, jx, jy float64) {
	for k := 0; k < Q; k++ {
		rho += cell[k]
		jx += cell[k] * float64(directions[k][0])
		jy += cell[k] * float64(directions[k][1])
	}
	return rho, jx, jy
}

//Density - rho(x,y) = sum_k F[k]
func (f *Field) Density(x, y int) float64 {
	rho, _, _ := moments(f.Cell(x, y))
	return rho
}

//Velocity - momentum over density. Division by a zero density yields
//non-finite components, which CheckStable reports.
func (f *Field) Velocity(x, y int) V.Vec2 {
	rho, jx, jy := moments(f.Cell(x, y))
	return V.Vec2{jx / rho, jy / rho}
}

//Macroscopic fills m with density and velocity for every cell
func (f *Field) Macroscopic(m *Macro) {
	if m.NX != f.NX || m.NY != f.NY {
		panic(fmt.Sprintf("fluid: macro %dx%d does not match field %dx%d", m.NX, m.NY, f.NX, f.NY))
	}
	utils.ParallelRange(0, f.NY, f.Workers, func(y int) {
		for x := 0; x < f.NX; x++ {
			i := y*f.NX + x
			rho, jx, jy := moments(f.cellAt(i))
			m.Rho[i] = rho
			m.Ux[i] = jx / rho
			m.Uy[i] = jy / rho
		}
	})
}
