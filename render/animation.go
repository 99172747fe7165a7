package render

import (
	"image"
	"image/color"
	"image/gif"
	"io"

	"diesel.com/lattice/utils"
	"github.com/spf13/afero"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

//Animation accumulates paletted frames for a GIF.
type Animation struct {
	Scale int //pixels per lattice cell, at least 1
	Delay int //per frame, 100ths of a second

	palette color.Palette
	black   uint8
	white   uint8
	frames  []*image.Paletted
	delays  []int
}

//NewAnimation uses p for values; black and white are appended for
//non-finite cells and labels.
func NewAnimation(p Palette, scale, delay int) *Animation {
	if scale < 1 {
		scale = 1
	}
	pal := make(color.Palette, 0, len(p)+2)
	for _, c := range p {
		pal = append(pal, c)
	}
	a := &Animation{Scale: scale, Delay: delay, black: uint8(len(pal)), white: uint8(len(pal) + 1)}
	a.palette = append(pal, color.Black, color.White)
	return a
}

//Len is the number of frames added so far.
func (a *Animation) Len() int {
	return len(a.frames)
}

//AddFrame rasterises g between lo and hi and stamps label top left.
func (a *Animation) AddFrame(g Grid, lo, hi float64, label string) {
	nx, ny := g.Dims()
	s := a.Scale
	img := image.NewPaletted(image.Rect(0, 0, nx*s, ny*s), a.palette)
	size := len(a.palette) - 2
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			idx := a.black
			if i := utils.PaletteIndex(utils.ScaleValue(g.At(x, y), lo, hi), size); i >= 0 {
				idx = uint8(i)
			}
			for py := y * s; py < (y+1)*s; py++ {
				row := py * img.Stride
				for px := x * s; px < (x+1)*s; px++ {
					img.Pix[row+px] = idx
				}
			}
		}
	}
	if label != "" {
		a.label(img, label)
	}
	a.frames = append(a.frames, img)
	a.delays = append(a.delays, a.Delay)
}

func (a *Animation) label(img *image.Paletted, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(a.palette[a.white]),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(4), Y: fixed.I(4 + basicfont.Face7x13.Ascent)},
	}
	d.DrawString(text)
}

//Encode writes every frame as a looping GIF.
func (a *Animation) Encode(w io.Writer) error {
	if len(a.frames) == 0 {
		return ErrNoFrames
	}
	return gif.EncodeAll(w, &gif.GIF{Image: a.frames, Delay: a.delays})
}

//Save encodes into path on fs, creating the directory.
func (a *Animation) Save(fs afero.Fs, path string) error {
	if len(a.frames) == 0 {
		return ErrNoFrames
	}
	f, err := createFile(fs, path)
	if err != nil {
		return err
	}
	if err := a.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
