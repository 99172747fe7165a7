package jacobi

import (
	"diesel.com/lattice/utils"
	"gonum.org/v1/gonum/mat"
)

//Solve runs iterations of four-point Jacobi averaging over the interior of
//psi. Boundary rows and columns are never written. Rows of each sweep are
//split across workers goroutines (<= 0 uses GOMAXPROCS).
func Solve(psi *mat.Dense, iterations, workers int) {
	rows, cols := psi.Dims()
	if rows < 3 || cols < 3 {
		return
	}
	tmp := mat.NewDense(rows, cols, nil)
	for it := 0; it < iterations; it++ {
		utils.ParallelRange(1, rows-1, workers, func(i int) {
			for j := 1; j < cols-1; j++ {
				tmp.Set(i, j, 0.25*(psi.At(i+1, j)+psi.At(i-1, j)+psi.At(i, j+1)+psi.At(i, j-1)))
			}
		})
		utils.ParallelRange(1, rows-1, workers, func(i int) {
			for j := 1; j < cols-1; j++ {
				psi.Set(i, j, tmp.At(i, j))
			}
		})
	}
}

//Residual is the largest absolute change a further sweep would make.
func Residual(psi *mat.Dense) float64 {
	rows, cols := psi.Dims()
	worst := 0.0
	for i := 1; i < rows-1; i++ {
		for j := 1; j < cols-1; j++ {
			d := 0.25*(psi.At(i+1, j)+psi.At(i-1, j)+psi.At(i, j+1)+psi.At(i, j-1)) - psi.At(i, j)
			if d < 0 {
				d = -d
			}
			if d > worst {
				worst = d
			}
		}
	}
	return worst
}
