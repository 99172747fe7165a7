package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/mazznoer/colorgrad"
)

//Palette names understood by NewPalette.
const (
	PaletteViridis = "viridis"
	PaletteInferno = "inferno"
	PaletteTurbo   = "turbo"
	PaletteBWR     = "bwr"
	PaletteJet     = "jet"
)

//lutSize is the number of entries sampled from a gradient.
const lutSize = 254

//Palette is a lookup table from low to high values. It satisfies the
//gonum/plot palette.Palette interface.
type Palette []color.RGBA

//Colors implements palette.Palette.
func (p Palette) Colors() []color.Color {
	out := make([]color.Color, len(p))
	for i, c := range p {
		out[i] = c
	}
	return out
}

//At returns the entry for a value already scaled to [0,1].
func (p Palette) At(t float64) color.RGBA {
	if t <= 0 {
		return p[0]
	}
	if t >= 1 {
		return p[len(p)-1]
	}
	return p[int(t*float64(len(p)-1))]
}

//NewPalette samples the named gradient.
func NewPalette(name string) (Palette, error) {
	var (
		grad colorgrad.Gradient
		err  error
	)
	switch strings.ToLower(name) {
	case PaletteViridis:
		grad = colorgrad.Viridis()
	case PaletteInferno:
		grad = colorgrad.Inferno()
	case PaletteTurbo:
		grad = colorgrad.Turbo()
	case PaletteBWR:
		grad, err = colorgrad.NewGradient().HtmlColors("blue", "white", "red").Build()
	case PaletteJet:
		grad, err = colorgrad.NewGradient().
			HtmlColors("#00007f", "#0000ff", "#00ffff", "#ffff00", "#ff0000", "#7f0000").
			Build()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
	}
	if err != nil {
		return nil, fmt.Errorf("render: building %s gradient: %w", name, err)
	}
	cols := grad.Colors(lutSize)
	p := make(Palette, len(cols))
	for i, c := range cols {
		p[i] = color.RGBAModel.Convert(c).(color.RGBA)
	}
	return p, nil
}

//MustPalette is NewPalette for the built-in names.
func MustPalette(name string) Palette {
	p, err := NewPalette(name)
	if err != nil {
		panic(err)
	}
	return p
}
