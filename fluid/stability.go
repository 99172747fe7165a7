package fluid

import (
	"fmt"
	"math"
)

//CheckStable reports the first cell whose density is non-positive or
//non-finite, or whose velocity is non-finite.
func CheckStable(m *Macro) error {
	for i := range m.Rho {
		rho, ux, uy := m.Rho[i], m.Ux[i], m.Uy[i]
		if !(rho > 0) || math.IsInf(rho, 0) || !finite(ux) || !finite(uy) {
			return fmt.Errorf("%w: cell (%d,%d) rho=%g ux=%g uy=%g",
				ErrUnstable, i%m.NX, i/m.NX, rho, ux, uy)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
