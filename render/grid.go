package render

import (
	"os"
	"path/filepath"

	"diesel.com/lattice/utils"
	"github.com/spf13/afero"
)

//Grid is a read-only 2-D scalar field. Column x, row y; row 0 is drawn at
//the top of raster images and at the bottom of plots.
type Grid interface {
	Dims() (nx, ny int)
	At(x, y int) float64
}

//values flattens g row-major.
func values(g Grid) []float64 {
	nx, ny := g.Dims()
	v := make([]float64, 0, nx*ny)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			v = append(v, g.At(x, y))
		}
	}
	return v
}

//Bounds of the finite values of g.
func Bounds(g Grid) (lo, hi float64) {
	return utils.Bounds(values(g))
}

//createFile makes the parent directory and truncates path.
func createFile(fs afero.Fs, path string) (afero.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return fs.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
}
