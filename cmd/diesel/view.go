package main

import (
	"errors"

	"diesel.com/lattice/app"
	"diesel.com/lattice/app/viewer"
	"github.com/spf13/cobra"
)

func newViewCmd(g *globals) *cobra.Command {
	var maxWidth int
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Run a simulation in a live OpenGL window",
		Long:  "Run a simulation in a live OpenGL window. Space pauses, Escape or Q closes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			sim, err := app.NewSimulation(cfg, app.WithLogger(g.log))
			if err != nil {
				return err
			}
			pal, err := app.PaletteFor(cfg)
			if err != nil {
				return err
			}
			win := viewer.WindowFor(cfg.Width, cfg.Height, maxWidth, "diesel lattice - "+sim.OutputName())
			view, err := viewer.NewViewer(win, pal, g.log)
			if err != nil {
				return err
			}
			defer view.Close()

			g.log.Info(sim.Summary())
			err = sim.Run(&app.ProgressLogger{Log: g.log, Total: cfg.Timesteps}, view)
			if errors.Is(err, app.ErrViewerClosed) {
				g.log.WithField("step", sim.NextStep()).Info("window closed")
				return nil
			}
			return err
		},
	}
	app.RegisterFlags(cmd.Flags())
	cmd.Flags().IntVar(&maxWidth, "window-width", 1440, "largest window width in pixels")
	return cmd
}
