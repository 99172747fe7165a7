package render

import (
	"bytes"
	"image/gif"
	"math"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testGrid struct {
	nx, ny int
	f      func(x, y int) float64
}

func (g testGrid) Dims() (int, int)    { return g.nx, g.ny }
func (g testGrid) At(x, y int) float64 { return g.f(x, y) }

func ramp(nx, ny int) testGrid {
	return testGrid{nx, ny, func(x, y int) float64 { return float64(x + y) }}
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestPalettes(t *testing.T) {
	for _, name := range []string{PaletteViridis, PaletteInferno, PaletteTurbo, PaletteBWR, PaletteJet} {
		p, err := NewPalette(name)
		require.NoError(t, err, name)
		assert.Len(t, p, lutSize, name)
		assert.Len(t, p.Colors(), lutSize, name)
		assert.Equal(t, uint8(255), p.At(0.5).A, name)
	}
	bwr := MustPalette(PaletteBWR)
	assert.Equal(t, bwr[0], bwr.At(-1))
	assert.Greater(t, bwr[0].B, bwr[0].R)
	assert.Greater(t, bwr.At(2).R, bwr.At(2).B)

	_, err := NewPalette("sepia")
	assert.ErrorIs(t, err, ErrUnknownPalette)
}

func TestBoundsIgnoresNaN(t *testing.T) {
	g := testGrid{3, 1, func(x, _ int) float64 {
		if x == 1 {
			return math.NaN()
		}
		return float64(x)
	}}
	lo, hi := Bounds(g)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 2.0, hi)
}

func TestAnimationEncode(t *testing.T) {
	a := NewAnimation(MustPalette(PaletteViridis), 2, 5)
	require.ErrorIs(t, a.Encode(&bytes.Buffer{}), ErrNoFrames)

	g := ramp(40, 20)
	lo, hi := Bounds(g)
	a.AddFrame(g, lo, hi, "Time 0")
	a.AddFrame(g, lo, hi, "")
	assert.Equal(t, 2, a.Len())

	var buf bytes.Buffer
	require.NoError(t, a.Encode(&buf))
	out, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	require.Len(t, out.Image, 2)
	assert.Equal(t, 80, out.Image[0].Bounds().Dx())
	assert.Equal(t, 40, out.Image[0].Bounds().Dy())
	assert.Equal(t, []int{5, 5}, out.Delay)
	//unlabelled corner holds the lowest value
	assert.Equal(t, uint8(0), out.Image[1].ColorIndexAt(0, 0))
}

func TestAnimationSave(t *testing.T) {
	fs := afero.NewMemMapFs()
	a := NewAnimation(MustPalette(PaletteBWR), 1, 2)
	require.ErrorIs(t, a.Save(fs, "out/empty.gif"), ErrNoFrames)
	a.AddFrame(ramp(10, 10), 0, 18, "Time 5")
	require.NoError(t, a.Save(fs, "out/anim.gif"))
	data, err := afero.ReadFile(fs, "out/anim.gif")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("GIF89a")))
}

func TestSaveHeatmap(t *testing.T) {
	fs := afero.NewMemMapFs()
	err := SaveHeatmap(fs, "images/speed.png", ramp(30, 10), HeatmapOptions{Title: "Time 10"})
	require.NoError(t, err)
	data, err := afero.ReadFile(fs, "images/speed.png")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))

	//constant fields still get a usable colour range
	flat := testGrid{4, 4, func(int, int) float64 { return 2 }}
	require.NoError(t, SaveHeatmap(fs, "flat.png", flat, HeatmapOptions{Palette: MustPalette(PaletteJet)}))

	_, err = Heatmap(testGrid{0, 0, nil}, HeatmapOptions{})
	assert.Error(t, err)
}

func TestTimeSeriesChart(t *testing.T) {
	c := TimeSeriesChart{
		Title:     "diagnostics",
		XLabel:    "step",
		Primary:   Series{Name: "mass", X: []float64{0, 5, 10}, Y: []float64{1, 1, 1}},
		Secondary: Series{Name: "max speed", X: []float64{0, 5, 10}, Y: []float64{0.1, 0.2, 0.15}},
	}
	fs := afero.NewMemMapFs()
	require.NoError(t, c.Save(fs, "charts/diag.png"))
	data, err := afero.ReadFile(fs, "charts/diag.png")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))

	short := TimeSeriesChart{Primary: Series{Name: "mass", X: []float64{0}, Y: []float64{1}}}
	assert.ErrorIs(t, short.Render(&bytes.Buffer{}), ErrTooFewSamples)
}
