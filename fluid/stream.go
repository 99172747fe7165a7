package fluid

import "diesel.com/lattice/utils"

func wrap(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}

//Stream moves every population one cell along its direction with periodic
//wrap on both axes: new(x,y,k) = old(x-vx, y-vy, k).
func Stream(f *Field) {
	nx, ny := f.NX, f.NY
	for k := 1; k < Q; k++ {
		dx, dy := directions[k][0], directions[k][1]
		utils.ParallelRange(0, ny, f.Workers, func(y int) {
			row := y * nx
			for x := 0; x < nx; x++ {
				f.scratch[row+x] = f.data[(row+x)*Q+k]
			}
		})
		utils.ParallelRange(0, ny, f.Workers, func(y int) {
			src := wrap(y-dy, ny) * nx
			row := y * nx
			for x := 0; x < nx; x++ {
				f.data[(row+x)*Q+k] = f.scratch[src+wrap(x-dx, nx)]
			}
		})
	}
}
