package jacobi

import "gonum.org/v1/gonum/mat"

//Grid views a matrix with x as column and y as row.
type Grid struct {
	M *mat.Dense
}

func (g Grid) Dims() (int, int) {
	r, c := g.M.Dims()
	return c, r
}

func (g Grid) At(x, y int) float64 {
	return g.M.At(y, x)
}

//SpeedGrid is the scaled speed of the interior records.
func (fl *Flow) SpeedGrid() Grid {
	return Grid{M: fl.Speed.Slice(0, fl.Rows, 0, fl.Cols).(*mat.Dense)}
}

//Dims of the record area, columns first.
func (fl *Flow) Dims() (int, int) {
	return fl.Cols, fl.Rows
}

//Vector returns the velocity stored for column x, row y.
func (fl *Flow) Vector(x, y int) (float64, float64) {
	return fl.Vx.At(y, x), fl.Vy.At(y, x)
}
