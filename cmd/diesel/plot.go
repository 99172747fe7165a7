package main

import (
	"diesel.com/lattice/jacobi"
	"diesel.com/lattice/render"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newPlotCmd(g *globals) *cobra.Command {
	var (
		in, out     string
		paletteName string
		arrows      int
	)
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render a Jacobi flow data file as a speed heatmap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := afero.NewOsFs()
			flow, err := jacobi.LoadData(fs, in)
			if err != nil {
				return err
			}
			pal, err := render.NewPalette(paletteName)
			if err != nil {
				return err
			}
			grid := flow.SpeedGrid()
			p, err := render.Heatmap(grid, render.HeatmapOptions{
				Title:   "Speed (scaled)",
				XLabel:  "column",
				YLabel:  "row",
				Palette: pal,
			})
			if err != nil {
				return err
			}
			if arrows > 0 {
				render.AddArrows(p, flow, arrows)
			}
			if err := render.SavePlot(fs, out, p, grid, 0); err != nil {
				return err
			}
			g.log.WithField("path", out).Info("figure saved")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in, "in", "datafiles/jacobi_flow.dat", "data file to read")
	f.StringVar(&out, "out", "images/jacobi_flow.png", "image to write")
	f.StringVar(&paletteName, "palette", render.PaletteJet, "palette name")
	f.IntVar(&arrows, "arrows", 4, "draw a velocity arrow every n cells (0 disables)")
	return cmd
}
