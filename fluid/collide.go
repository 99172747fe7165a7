package fluid

import "diesel.com/lattice/utils"

//Equilibrium writes the second-order BGK equilibrium for (rho, ux, uy)
//into feq.
func Equilibrium(rho, ux, uy float64, feq *[Q]float64) {
	usq := ux*ux + uy*uy
	for k := 0; k < Q; k++ {
		eu := float64(directions[k][0])*ux + float64(directions[k][1])*uy
		feq[k] = rho * weights[k] * (1 + 3*eu + 4.5*eu*eu - 1.5*usq)
	}
}

//Collide relaxes every cell towards its equilibrium using the supplied
//macroscopic fields: F += -(1/tau)(F - Feq).
func Collide(f *Field, m *Macro, tau float64) {
	omega := 1.0 / tau
	utils.ParallelRange(0, f.NY, f.Workers, func(y int) {
		var feq [Q]float64
		for x := 0; x < f.NX; x++ {
			i := y*f.NX + x
			Equilibrium(m.Rho[i], m.Ux[i], m.Uy[i], &feq)
			cell := f.cellAt(i)
			for k := 0; k < Q; k++ {
				cell[k] += -omega * (cell[k] - feq[k])
			}
		}
	})
}
