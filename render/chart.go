package render

import (
	"io"

	"github.com/spf13/afero"
	"github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/floats"
)

//Series is one named y(x) line.
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

//TimeSeriesChart plots primary against the left axis and, when non-empty,
//secondary against the right axis.
type TimeSeriesChart struct {
	Title     string
	XLabel    string
	Width     int
	Height    int
	Primary   Series
	Secondary Series
}

func paddedRange(v []float64) *chart.ContinuousRange {
	lo, hi := floats.Min(v), floats.Max(v)
	pad := 0.05 * (hi - lo)
	if pad == 0 {
		pad = 0.5
		if lo != 0 {
			pad = 0.05 * abs(lo)
		}
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

//Render writes the chart as PNG.
func (c TimeSeriesChart) Render(w io.Writer) error {
	if len(c.Primary.X) < 2 || len(c.Primary.X) != len(c.Primary.Y) {
		return ErrTooFewSamples
	}
	width, height := c.Width, c.Height
	if width == 0 {
		width = 800
	}
	if height == 0 {
		height = 400
	}
	graph := chart.Chart{
		Title:  c.Title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  c.XLabel,
			Range: &chart.ContinuousRange{Min: c.Primary.X[0], Max: c.Primary.X[len(c.Primary.X)-1]},
		},
		YAxis: chart.YAxis{
			Name:  c.Primary.Name,
			Range: paddedRange(c.Primary.Y),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    c.Primary.Name,
				XValues: c.Primary.X,
				YValues: c.Primary.Y,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2},
			},
		},
	}
	if len(c.Secondary.Y) > 1 && len(c.Secondary.X) == len(c.Secondary.Y) {
		graph.YAxisSecondary = chart.YAxis{
			Name:  c.Secondary.Name,
			Range: paddedRange(c.Secondary.Y),
		}
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    c.Secondary.Name,
			YAxis:   chart.YAxisSecondary,
			XValues: c.Secondary.X,
			YValues: c.Secondary.Y,
			Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2},
		})
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}

//Save renders the chart into path on fs.
func (c TimeSeriesChart) Save(fs afero.Fs, path string) error {
	f, err := createFile(fs, path)
	if err != nil {
		return err
	}
	if err := c.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
