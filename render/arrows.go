package render

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//VectorGrid is a read-only 2-D vector field, columns first.
type VectorGrid interface {
	Dims() (nx, ny int)
	Vector(x, y int) (vx, vy float64)
}

//fieldXY adapts a VectorGrid to plotter.FieldXY, keeping every stride-th
//cell in each direction.
type fieldXY struct {
	g      VectorGrid
	stride int
}

func (f fieldXY) Dims() (int, int) {
	nx, ny := f.g.Dims()
	return (nx + f.stride - 1) / f.stride, (ny + f.stride - 1) / f.stride
}

func (f fieldXY) Vector(c, r int) plotter.XY {
	vx, vy := f.g.Vector(c*f.stride, r*f.stride)
	return plotter.XY{X: vx, Y: vy}
}

func (f fieldXY) X(c int) float64 { return float64(c * f.stride) }
func (f fieldXY) Y(r int) float64 { return float64(r * f.stride) }

//AddArrows overlays black velocity arrows on p, one per stride cells.
func AddArrows(p *plot.Plot, g VectorGrid, stride int) {
	if stride < 1 {
		stride = 1
	}
	f := plotter.NewField(fieldXY{g: g, stride: stride})
	f.LineStyle.Color = color.Black
	f.LineStyle.Width = vg.Points(0.5)
	p.Add(f)
}
