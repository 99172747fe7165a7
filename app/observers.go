package app

import (
	"math"
	"path/filepath"

	"diesel.com/lattice/fluid"
	"diesel.com/lattice/render"
	"diesel.com/lattice/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gonum.org/v1/gonum/floats"
)

//PaletteFor picks the configured palette or the mode default: viridis for
//speed, blue-white-red for vortices.
func PaletteFor(cfg Config) (render.Palette, error) {
	name := cfg.Output.Palette
	if name == "" {
		name = render.PaletteViridis
		if cfg.Mode == ModeVortices {
			name = render.PaletteBWR
		}
	}
	return render.NewPalette(name)
}

//FrameRange is the colour range for a frame. Curl is centred on zero so
//white marks irrotational flow.
func FrameRange(fr *Frame) (lo, hi float64) {
	lo, hi = fr.Scalar.Range()
	if fr.Mode == ModeVortices {
		m := math.Max(math.Abs(lo), math.Abs(hi))
		return -m, m
	}
	return lo, hi
}

//ProgressLogger logs each frame at debug and every tenth of the run at info
type ProgressLogger struct {
	Log   logrus.FieldLogger
	Total int

	lastDecile int
}

func (p *ProgressLogger) Observe(fr *Frame) error {
	pct := 100.0
	if p.Total > 0 {
		pct = 100 * float64(fr.Step) / float64(p.Total)
	}
	entry := p.Log.WithFields(logrus.Fields{"step": fr.Step, "percent": math.Round(pct)})
	if d := int(pct / 10); d > p.lastDecile || fr.Step == 0 {
		p.lastDecile = d
		entry.Info("progress")
		return nil
	}
	entry.Debug("frame")
	return nil
}

func (p *ProgressLogger) Finish() error {
	p.Log.Info("simulation complete")
	return nil
}

//GIFRecorder collects every frame into an animation saved on Finish
type GIFRecorder struct {
	Fs   afero.Fs
	Path string
	Log  logrus.FieldLogger

	anim *render.Animation
}

func NewGIFRecorder(fs afero.Fs, path string, pal render.Palette, scale int, log logrus.FieldLogger) *GIFRecorder {
	return &GIFRecorder{Fs: fs, Path: path, Log: log, anim: render.NewAnimation(pal, scale, 5)}
}

func (g *GIFRecorder) Observe(fr *Frame) error {
	lo, hi := FrameRange(fr)
	g.anim.AddFrame(fr.Scalar, lo, hi, fr.Label())
	return nil
}

func (g *GIFRecorder) Finish() error {
	if g.anim.Len() == 0 {
		return nil
	}
	if err := g.anim.Save(g.Fs, g.Path); err != nil {
		return err
	}
	g.Log.WithFields(logrus.Fields{"path": g.Path, "frames": g.anim.Len()}).Info("animation written")
	return nil
}

//HeatmapWriter keeps the latest frame and plots it on Finish
type HeatmapWriter struct {
	Fs      afero.Fs
	Path    string
	Palette render.Palette
	Log     logrus.FieldLogger

	last *Frame
}

func (h *HeatmapWriter) Observe(fr *Frame) error {
	h.last = fr
	return nil
}

//Last frame seen, nil before the first
func (h *HeatmapWriter) Last() *Frame {
	return h.last
}

func (h *HeatmapWriter) Finish() error {
	if h.last == nil {
		return nil
	}
	label := "Speeds"
	if h.last.Mode == ModeVortices {
		label = "Curl"
	}
	err := render.SaveHeatmap(h.Fs, h.Path, h.last.Scalar, render.HeatmapOptions{
		Title:   h.last.Label() + " (" + label + ")",
		XLabel:  "x",
		YLabel:  "y",
		Palette: h.Palette,
	})
	if err != nil {
		return err
	}
	h.Log.WithField("path", h.Path).Info("heatmap written")
	return nil
}

//DiagnosticsRecorder tracks total mass and peak speed per frame and charts
//them on Finish
type DiagnosticsRecorder struct {
	Fs   afero.Fs
	Path string
	Log  logrus.FieldLogger

	Steps    []float64
	Mass     []float64
	MaxSpeed []float64
}

func (d *DiagnosticsRecorder) Observe(fr *Frame) error {
	speed := fluid.Speed(fr.Macro)
	_, hi := utils.Bounds(speed.Values)
	d.Steps = append(d.Steps, float64(fr.Step))
	d.Mass = append(d.Mass, fr.Mass)
	d.MaxSpeed = append(d.MaxSpeed, hi)
	return nil
}

func (d *DiagnosticsRecorder) Finish() error {
	if len(d.Steps) < 2 {
		d.Log.WithField("frames", len(d.Steps)).Warn("too few frames for a diagnostics chart")
		return nil
	}
	c := render.TimeSeriesChart{
		Title:     "Lattice diagnostics",
		XLabel:    "step",
		Primary:   render.Series{Name: "total mass", X: d.Steps, Y: d.Mass},
		Secondary: render.Series{Name: "max speed", X: d.Steps, Y: d.MaxSpeed},
	}
	if err := c.Save(d.Fs, d.Path); err != nil {
		return err
	}
	d.Log.WithFields(logrus.Fields{
		"path":       d.Path,
		"mass_drift": floats.Max(d.Mass) - floats.Min(d.Mass),
	}).Info("diagnostics written")
	return nil
}

//Outputs builds the file observers enabled in cfg plus a progress logger.
//File names share the run's output name inside cfg.Output.Dir.
func Outputs(cfg Config, fs afero.Fs, log logrus.FieldLogger) ([]Observer, error) {
	pal, err := PaletteFor(cfg)
	if err != nil {
		return nil, err
	}
	base := filepath.Join(cfg.Output.Dir, cfg.OutputName())
	obs := []Observer{&ProgressLogger{Log: log, Total: cfg.Timesteps}}
	if cfg.Output.Heatmap {
		obs = append(obs, &HeatmapWriter{Fs: fs, Path: base + ".png", Palette: pal, Log: log})
	}
	if cfg.Output.GIF {
		obs = append(obs, NewGIFRecorder(fs, base+".gif", pal, cfg.Output.Scale, log))
	}
	if cfg.Output.Chart {
		obs = append(obs, &DiagnosticsRecorder{Fs: fs, Path: base + "_diagnostics.png", Log: log})
	}
	return obs, nil
}
