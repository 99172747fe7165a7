package render

import (
	"fmt"
	"image/color"

	"github.com/spf13/afero"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//gridXYZ adapts a Grid to plotter.GridXYZ with unit cell spacing.
type gridXYZ struct{ Grid }

func (g gridXYZ) Z(c, r int) float64 { return g.At(c, r) }
func (g gridXYZ) X(c int) float64    { return float64(c) }
func (g gridXYZ) Y(r int) float64    { return float64(r) }

//HeatmapOptions configures Heatmap. Zero Width uses 8 inches.
type HeatmapOptions struct {
	Title   string
	XLabel  string
	YLabel  string
	Palette Palette
	Width   vg.Length
}

//Heatmap builds a plot of g coloured by opts.Palette over the finite range
//of g. Non-finite cells are left blank.
func Heatmap(g Grid, opts HeatmapOptions) (*plot.Plot, error) {
	nx, ny := g.Dims()
	if nx == 0 || ny == 0 {
		return nil, fmt.Errorf("render: empty grid %dx%d", nx, ny)
	}
	pal := opts.Palette
	if len(pal) == 0 {
		pal = MustPalette(PaletteViridis)
	}
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel

	h := plotter.NewHeatMap(gridXYZ{g}, pal)
	lo, hi := Bounds(g)
	if hi <= lo {
		hi = lo + 1
	}
	h.Min, h.Max = lo, hi
	h.NaN = color.Transparent
	p.Add(h)
	p.X.Min, p.X.Max = -0.5, float64(nx)-0.5
	p.Y.Min, p.Y.Max = -0.5, float64(ny)-0.5
	return p, nil
}

//Size returns the canvas extents for a grid at the given width, keeping the
//lattice aspect ratio plus room for the title and axes.
func Size(g Grid, width vg.Length) (vg.Length, vg.Length) {
	if width == 0 {
		width = 8 * vg.Inch
	}
	nx, ny := g.Dims()
	return width, width*vg.Length(float64(ny)/float64(nx)) + vg.Inch
}

//SaveHeatmap renders a heatmap of g to a PNG at path on fs.
func SaveHeatmap(fs afero.Fs, path string, g Grid, opts HeatmapOptions) error {
	p, err := Heatmap(g, opts)
	if err != nil {
		return err
	}
	return SavePlot(fs, path, p, g, opts.Width)
}

//SavePlot writes any plot sized for g as PNG.
func SavePlot(fs afero.Fs, path string, p *plot.Plot, g Grid, width vg.Length) error {
	w, h := Size(g, width)
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return err
	}
	f, err := createFile(fs, path)
	if err != nil {
		return err
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
